package emu

import "encoding/binary"

const (
	// DefaultVRAMSize is the amount of video memory installed when no
	// size is requested. Power of two; addressing wraps at the mask.
	DefaultVRAMSize = 2 << 20

	// Change tracking works on 4KB pages, the granularity the display
	// composition path uses to decide what needs re-rendering.
	pageShift = 12
)

// DisplaySurface is the accelerator engine's view of display memory:
// pixel accessors parameterized by the active width class, the scanline
// stride and the display pixel depth. The SVGA core implements it; tests
// can substitute their own.
type DisplaySurface interface {
	// PixelDepth returns the display mode's bits per pixel (8, 15, 16,
	// 24 or 32).
	PixelDepth() int

	// RowOffset returns the scanline stride in CRTC units (8 bytes).
	RowOffset() uint32

	// ReadPixel reads one pixel at the given width class. class 0 reads
	// a byte, class 1 a 16-bit word, class 3 a 32-bit dword; addr is in
	// units of that width and wraps at the VRAM mask.
	ReadPixel(class int, addr uint32) uint32

	// WritePixel writes one pixel and marks the touched page changed.
	WritePixel(class int, addr uint32, val uint32)
}

// SVGA holds the display-timing side of the card: the VGA register file,
// VRAM with its wrap mask, 4KB-page change tracking, the DAC palette and
// bank switching. The accelerator consumes it through DisplaySurface; the
// render path reads it directly.
type SVGA struct {
	vram     []byte
	vramMask uint32

	changed []bool // per-4KB-page dirty flags

	crtc [256]uint8
	gdc  [64]uint8
	seq  [16]uint8

	crtcIdx uint8
	gdcIdx  uint8
	seqIdx  uint8

	ramdacCtrl  uint8
	ramdacState int

	pal      [256]uint32 // packed 0x00RRGGBB
	dacMask  uint8
	dacAddr  uint8
	dacStage int
	dacRGB   [3]uint8

	bpp       int
	rowOffset uint32

	readBank   uint32
	writeBank  uint32
	bankedMask uint32

	hdisp        int
	vdisp        int
	memaddrLatch uint32
}

// NewSVGA creates the display state with the given VRAM size, rounded up
// to a power of two.
func NewSVGA(vramSize int) *SVGA {
	size := 1
	for size < vramSize {
		size <<= 1
	}
	s := &SVGA{
		vram:       make([]byte, size),
		vramMask:   uint32(size - 1),
		changed:    make([]bool, size>>pageShift),
		bpp:        8,
		rowOffset:  0x100,
		bankedMask: 0xffff,
		dacMask:    0xff,
		hdisp:      640,
		vdisp:      480,
	}
	for i := range s.pal {
		// Grey ramp until the DAC is programmed.
		v := uint32(i)
		s.pal[i] = v<<16 | v<<8 | v
	}
	return s
}

// VRAMSize returns the installed video memory size in bytes.
func (s *SVGA) VRAMSize() int { return len(s.vram) }

// PixelDepth implements DisplaySurface.
func (s *SVGA) PixelDepth() int { return s.bpp }

// RowOffset implements DisplaySurface.
func (s *SVGA) RowOffset() uint32 { return s.rowOffset }

// ReadPixel implements DisplaySurface.
func (s *SVGA) ReadPixel(class int, addr uint32) uint32 {
	switch class {
	case 1:
		a := (addr & (s.vramMask >> 1)) << 1
		return uint32(binary.LittleEndian.Uint16(s.vram[a:]))
	case 3:
		a := (addr & (s.vramMask >> 2)) << 2
		return binary.LittleEndian.Uint32(s.vram[a:])
	default:
		return uint32(s.vram[addr&s.vramMask])
	}
}

// WritePixel implements DisplaySurface.
func (s *SVGA) WritePixel(class int, addr uint32, val uint32) {
	switch class {
	case 1:
		a := (addr & (s.vramMask >> 1)) << 1
		binary.LittleEndian.PutUint16(s.vram[a:], uint16(val))
		s.changed[a>>pageShift] = true
	case 3:
		a := (addr & (s.vramMask >> 2)) << 2
		binary.LittleEndian.PutUint32(s.vram[a:], val)
		s.changed[a>>pageShift] = true
	default:
		a := addr & s.vramMask
		s.vram[a] = uint8(val)
		s.changed[a>>pageShift] = true
	}
}

// writeLinear is the plain framebuffer byte write used when no extended
// write mode or blitter intercept applies.
func (s *SVGA) writeLinear(addr uint32, val uint8) {
	a := addr & s.vramMask
	s.vram[a] = val
	s.changed[a>>pageShift] = true
}

func (s *SVGA) readLinear(addr uint32) uint8 {
	return s.vram[addr&s.vramMask]
}

// markChanged flags the page containing a byte address as dirty.
func (s *SVGA) markChanged(addr uint32) {
	s.changed[(addr&s.vramMask)>>pageShift] = true
}

// dirtySpan returns the first and last dirty byte addresses, or ok=false
// when nothing changed since the last flush. Flushing clears the flags.
func (s *SVGA) dirtySpan(flush bool) (lo, hi uint32, ok bool) {
	first, last := -1, -1
	for i, d := range s.changed {
		if d {
			if first < 0 {
				first = i
			}
			last = i
			if flush {
				s.changed[i] = false
			}
		}
	}
	if first < 0 {
		return 0, 0, false
	}
	return uint32(first) << pageShift, (uint32(last) << pageShift) + (1 << pageShift) - 1, true
}

// updateBanks derives the read/write banks from GDC 0xF and the Trident
// bank registers at 0x3D8/0x3D9.
func (s *SVGA) updateBanks(bank3d8, bank3d9 uint8) {
	if s.gdc[0xf]&4 != 0 {
		s.writeBank = uint32(bank3d8&0x3f) * 65536
		if s.gdc[0xf]&1 == 0 {
			s.readBank = s.writeBank
		}
	} else {
		s.writeBank = 0
	}
	if s.gdc[0xf]&5 == 5 {
		s.readBank = uint32(bank3d9&0x3f) * 65536
	} else if s.gdc[0xf]&4 == 0 {
		s.readBank = 0
	}
}

// recalc re-derives pixel depth, stride and visible geometry from the
// register file. Depth selection through the RAMDAC control register only
// exists from the 9440 on; the 9400CXi stays at the sequencer-programmed
// depth.
func (s *SVGA) recalc(chip ChipType) {
	if chip >= TGUI9440 {
		if s.crtc[0x38]&0x19 == 0x09 {
			s.bpp = 32
		} else {
			switch (s.ramdacCtrl >> 4) & 0x0f {
			case 0x01:
				s.bpp = 15
			case 0x03:
				s.bpp = 16
			case 0x0d:
				s.bpp = 24
			default:
				s.bpp = 8
			}
		}
	}

	s.rowOffset = uint32(s.crtc[0x13])
	if (s.crtc[0x29]&0x30 != 0 && s.bpp >= 15) || s.rowOffset == 0 {
		s.rowOffset |= 0x100
	}

	s.hdisp = (int(s.crtc[1]) + 1) << 3
	s.vdisp = (int(s.crtc[0x12]) | int(s.crtc[7]&0x02)<<7 | int(s.crtc[7]&0x40)<<3) + 1
	s.memaddrLatch = uint32(s.crtc[0xc])<<8 | uint32(s.crtc[0xd])
}

// dacWrite handles a write to the palette data port (0x3C9).
func (s *SVGA) dacWrite(val uint8) {
	s.dacRGB[s.dacStage] = val & 0x3f
	s.dacStage++
	if s.dacStage == 3 {
		s.dacStage = 0
		r := uint32(s.dacRGB[0]) << 2
		g := uint32(s.dacRGB[1]) << 2
		b := uint32(s.dacRGB[2]) << 2
		s.pal[s.dacAddr] = r<<16 | g<<8 | b
		s.dacAddr++
	}
}
