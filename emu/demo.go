package emu

// DemoTrace returns a built-in register trace: a 640x480 8bpp mode with
// a palette ramp, solid-fill rectangles sweeping the screen, a pattern
// blit and radiating short vectors. Used when no trace file is given.
func DemoTrace() []byte {
	w := NewTraceWriter(TGUI9680)

	// 640x480, 640-byte rows. The row offset write triggers the
	// timing recalculation, so it goes last.
	w.PortB(0x3d4, 0x01)
	w.PortB(0x3d5, 79)
	w.PortB(0x3d4, 0x07)
	w.PortB(0x3d5, 0x02)
	w.PortB(0x3d4, 0x12)
	w.PortB(0x3d5, 0xdf)
	w.PortB(0x3d4, 0x13)
	w.PortB(0x3d5, 80)

	// The 9680 clips, and the clip rectangle resets to a single pixel
	// at the origin; open it to the full screen first.
	w.PortW(0x2148, 0)
	w.PortW(0x214a, 0)
	w.PortW(0x214c, 639)
	w.PortW(0x214e, 479)

	w.PortB(0x3c8, 0)
	for i := 0; i < 256; i++ {
		w.PortB(0x3c9, uint8(i>>2))
		w.PortB(0x3c9, uint8((255-i)>>2))
		w.PortB(0x3c9, 0x18)
	}

	demoFill(w, 0, 0, 640, 480, 0x00)

	// A checkerboard pattern tile in the top-left corner.
	for y := 0; y < 8; y++ {
		w.PortB(0x2180+uint16(y), 0xaa>>(uint(y)&1))
	}
	w.PortL(0x2128, flagSrcPat|flagPatMono)
	w.PortL(0x212c, 0xe0)
	w.PortL(0x2130, 0x40)
	w.PortW(0x2138, 16)
	w.PortW(0x213a, 16)
	w.PortW(0x2140, 63)
	w.PortW(0x2142, 63)
	w.PortL(0x2124, cmdBitBLT|0xf0<<24)

	w.EndFrame()

	for f := 0; f < 240; f++ {
		x := (f * 4) % 560
		y := 120 + (f*2)%280
		demoFill(w, uint16(x), uint16(y), 64, 48, uint8(0x40+f&0x3f))

		// Radiating vectors from screen center, one octant per frame.
		w.PortL(0x2128, 0)
		w.PortL(0x212c, uint32(0xc0+f&0x1f))
		w.PortW(0x2138, 320)
		w.PortW(0x213a, 240)
		w.PortW(0x2142, uint16(f&7)<<13|100)
		w.PortL(0x2124, cmdShortVector|0xf0<<24)

		w.EndFrame()
	}
	return w.Bytes()
}

// demoFill records a solid rectangle fill.
func demoFill(w *TraceWriter, x, y, wd, ht uint16, col uint8) {
	w.PortL(0x2128, flagSolidFill)
	w.PortL(0x212c, uint32(col))
	w.PortW(0x2138, x)
	w.PortW(0x213a, y)
	w.PortW(0x2140, wd-1)
	w.PortW(0x2142, ht-1)
	w.PortL(0x2124, cmdBitBLT|0xf0<<24)
}
