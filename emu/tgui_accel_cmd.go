package emu

// runCommand is the drawing engine core. count == -1 starts the
// programmed command; a positive count feeds that many bits of CPU
// source data in cpuData, packed most significant bit first.
//
// The pattern cache, pitch and transparency color are recomputed on
// every invocation, so register writes between feeds take effect
// mid-command exactly as they would on hardware.
func (t *TGUI) runCommand(count int, cpuData uint32) {
	a := &t.accel

	xdir := int32(1)
	if a.flags&flagXRev != 0 {
		xdir = -1
	}
	ydir := int32(1)
	if a.flags&flagYRev != 0 {
		ydir = -1
	}

	transCol := a.bgCol
	if a.flags&flagTransRev != 0 {
		transCol = a.fgCol
	}
	transCol = a.maskPixel(transCol)

	// The first feed of a mono source row discards the programmed
	// number of left-edge bits.
	if count != -1 && a.x == 0 && a.flags&flagSrcMono != 0 {
		skip := uint(a.flags >> 24 & 7)
		count -= int(skip)
		cpuData <<= skip
	}

	if count == -1 {
		a.x, a.y = 0, 0
	}

	a.pattern32Idx = 0
	t.buildPatternCache()
	t.updatePitch()

	switch a.command {
	case cmdBitBLT:
		t.runBitBLT(count, cpuData, xdir, ydir, transCol)
	case cmdScanline:
		t.runScanline(count, xdir, ydir, transCol)
	case cmdBresenhamLine:
		t.runBresenham(count)
	case cmdShortVector:
		t.runShortVector(count)
	case cmdFastLine:
		t.runFastLine(count)
	}
}

// updatePitch derives the scanline pitch in pixels from the CRTC row
// offset. The register counts 8-byte units, so the shift depends on the
// display depth.
func (t *TGUI) updatePitch() {
	p := int32(t.surf.RowOffset())
	switch t.surf.PixelDepth() {
	case 15, 16:
		p <<= 2
	case 32:
		p <<= 1
	default:
		p <<= 3
	}
	t.accel.pitch = p
}

// loadClip latches the clip rectangle for the starting command. The
// registers hold byte coordinates, scaled down here to pixels.
func (t *TGUI) loadClip() {
	a := &t.accel
	a.left = a.srcXClip & 0xfff
	a.right = a.dstXClip & 0xfff
	a.top = a.srcYClip & 0xfff
	a.bottom = a.dstYClip & 0xfff
	switch a.bppClass {
	case 1:
		a.left >>= 1
		a.right >>= 1
	case 3:
		a.left >>= 2
		a.right >>= 2
	}
}

// blitClipped reports whether the current blit position is outside the
// clip rectangle. Only the 96xx generation clips; earlier variants
// always draw.
func (t *TGUI) blitClipped() bool {
	if !t.caps.supportsClip {
		return false
	}
	a := &t.accel
	return a.dx < a.left || a.dx > a.right || a.dy < a.top || a.dy > a.bottom
}

// lineClipped is the line-drawing variant; line positions wrap at 12
// bits before comparing.
func (t *TGUI) lineClipped() bool {
	if !t.caps.supportsClip {
		return false
	}
	a := &t.accel
	dx := a.dx & 0xfff
	dy := a.dy & 0xfff
	return dx < a.left || dx > a.right || dy < a.top || dy > a.bottom
}

// stepBlit advances a CPU-sourced blit one pixel, wrapping to the next
// row at the end of the extent. It reports when the caller must stop:
// at completion, or at a row end when more source data is needed.
func (t *TGUI) stepBlit(xdir, ydir int32) (stop bool) {
	a := &t.accel
	a.src += uint32(xdir)
	a.dst += uint32(xdir)
	a.patX += xdir
	if t.caps.supportsClip {
		a.dx += int16(xdir)
	}
	a.x++
	if a.x > a.sizeX {
		a.x = 0
		a.patX = int32(a.dstX)
		a.patY += ydir
		if t.caps.supportsClip {
			a.dx = a.dstX & 0xfff
			a.dy += int16(ydir)
		}
		a.srcOld += uint32(ydir * a.pitch)
		a.dstOld += uint32(ydir * a.pitch)
		a.src = a.srcOld
		a.dst = a.dstOld
		a.y++
		if a.y > a.sizeY {
			if t.blitterApertureOn() {
				t.writeBlitter = false
			}
			return true
		}
		if a.useSrc {
			return true
		}
	}
	return false
}

func (t *TGUI) runBitBLT(count int, cpuData uint32, xdir, ydir int32, transCol uint32) {
	a := &t.accel
	if count == -1 {
		a.srcOld = uint32(int32(a.srcX) + int32(a.srcY)*a.pitch)
		a.src = a.srcOld
		a.dstOld = uint32(int32(a.dstX) + int32(a.dstY)*a.pitch)
		a.dst = a.dstOld
		a.patX = int32(a.dstX)
		a.patY = int32(a.dstY)
		a.dx = a.dstX & 0xfff
		a.dy = a.dstY & 0xfff
		t.loadClip()
	}

	switch a.flags & (flagSrcMono | flagSrcDisp) {
	case 0:
		// Raw pixels streamed from the CPU. The feed is counted in
		// bits; wider pixels burn extra counts per pixel.
		if count == -1 {
			if t.blitterApertureOn() {
				t.writeBlitter = true
			}
			if a.useSrc {
				return
			}
		} else {
			count >>= 3
		}
		for count != 0 {
			if !t.blitClipped() {
				var srcDat uint32
				switch a.bppClass {
				case 0:
					srcDat = cpuData >> 24
					cpuData <<= 8
				case 1:
					srcDat = cpuData>>24 | cpuData>>8&0xff00
					cpuData <<= 16
					count--
				default:
					srcDat = cpuData>>24 | cpuData>>8&0x0000ff00 | cpuData<<8&0x00ff0000
					cpuData <<= 16
					count -= 3
				}
				dstDat := t.surf.ReadPixel(a.bppClass, a.dst)
				patDat := a.patPixel()
				pm := a.flags & (flagPatMono | flagTransEna)
				if (pm == flagPatMono|flagTransEna && patDat != transCol) ||
					a.flags&flagPatMono == 0 || pm == flagPatMono || a.ger22&0x200 != 0 {
					out := ropTable[a.rop](dstDat, srcDat, patDat)
					t.surf.WritePixel(a.bppClass, a.dst, out)
				}
			}
			if t.stepBlit(xdir, ydir) {
				return
			}
			count--
		}

	case flagSrcMono:
		// Mono bitmap streamed from the CPU, one bit per pixel,
		// expanded through the foreground and background colors.
		if count == -1 {
			if t.blitterApertureOn() {
				t.writeBlitter = true
			}
			if a.useSrc {
				return
			}
		}
		for count != 0 {
			count--
			if !t.blitClipped() {
				srcDat := a.bgCol
				if cpuData>>31 != 0 {
					srcDat = a.fgCol
				}
				srcDat = a.maskPixel(srcDat)
				dstDat := t.surf.ReadPixel(a.bppClass, a.dst)
				patDat := a.patPixel()
				if a.flags&flagTransEna == 0 || srcDat != transCol {
					out := ropTable[a.rop](dstDat, srcDat, patDat)
					t.surf.WritePixel(a.bppClass, a.dst, out)
				}
			}
			cpuData <<= 1
			if t.stepBlit(xdir, ydir) {
				return
			}
		}

	default:
		// Display or pattern sourced; runs to completion with no CPU
		// involvement and no clipping.
		for count != 0 {
			count--
			srcDat := t.surf.ReadPixel(a.bppClass, a.src)
			dstDat := t.surf.ReadPixel(a.bppClass, a.dst)
			patDat := a.patPixel()
			if a.flags&flagTransEna == 0 || srcDat != transCol {
				out := ropTable[a.rop](dstDat, srcDat, patDat)
				t.surf.WritePixel(a.bppClass, a.dst, out)
			}
			a.src += uint32(xdir)
			a.dst += uint32(xdir)
			a.patX += xdir
			a.x++
			if a.x > a.sizeX {
				a.x = 0
				a.y++
				a.patX = int32(a.dstX)
				a.patY += ydir
				a.srcOld += uint32(ydir * a.pitch)
				a.dstOld += uint32(ydir * a.pitch)
				a.src = a.srcOld
				a.dst = a.dstOld
				if a.y > a.sizeY {
					return
				}
			}
		}
	}
}

// runScanline draws exactly one row of the extent per start, advancing
// the row pointers so the next start continues one row further.
func (t *TGUI) runScanline(count int, xdir, ydir int32, transCol uint32) {
	a := &t.accel
	if count == -1 {
		a.srcOld = uint32(int32(a.srcX) + int32(a.srcY)*a.pitch)
		a.src = a.srcOld
		a.dstOld = uint32(int32(a.dstX) + int32(a.dstY)*a.pitch)
		a.dst = a.dstOld
		a.patX = int32(a.dstX)
		a.patY = int32(a.dstY)
	}

	for count != 0 {
		count--
		srcDat := t.surf.ReadPixel(a.bppClass, a.src)
		dstDat := t.surf.ReadPixel(a.bppClass, a.dst)
		patDat := a.patPixel()
		if a.flags&flagTransEna == 0 || srcDat != transCol {
			out := ropTable[a.rop](dstDat, srcDat, patDat)
			t.surf.WritePixel(a.bppClass, a.dst, out)
		}
		a.src += uint32(xdir)
		a.dst += uint32(xdir)
		a.patX += xdir
		a.x++
		if a.x > a.sizeX {
			a.x = 0
			a.patX = int32(a.dstX)
			a.srcOld += uint32(ydir * a.pitch)
			a.dstOld += uint32(ydir * a.pitch)
			a.src = a.srcOld
			a.dst = a.dstOld
			a.patY += ydir
			return
		}
	}
}

// linePixel plots one foreground pixel at the current line position
// through the ROP, subject to the clip rectangle.
func (t *TGUI) linePixel() {
	a := &t.accel
	if t.lineClipped() {
		return
	}
	addr := uint32(int32(a.dx) + int32(a.dy)*a.pitch)
	dstDat := t.surf.ReadPixel(a.bppClass, addr)
	out := ropTable[a.rop](dstDat, 0, a.fgCol)
	t.surf.WritePixel(a.bppClass, addr, out)
}

// runBresenham walks a line with the hardware's error-term stepping:
// size X carries the running error, src X the diagonal step constant
// and src Y the axial step constant. Flag bits 8-10 select the octant.
func (t *TGUI) runBresenham(count int) {
	a := &t.accel
	if count == -1 {
		a.dx = a.dstX & 0xfff
		a.dy = a.dstY & 0xfff
		a.y = a.sizeY
		t.loadClip()
	}

	for count != 0 {
		count--
		t.linePixel()
		if a.y == 0 {
			break
		}

		if a.sizeX >= 0 {
			a.sizeX += a.srcX
			// Minor axis step.
			switch a.flags >> 8 & 7 {
			case 0, 2:
				a.dy++
			case 1, 3:
				a.dy--
			case 4, 5:
				a.dx++
			case 6, 7:
				a.dx--
			}
		} else {
			a.sizeX += a.srcY
		}

		// Major axis step.
		switch a.flags >> 8 & 7 {
		case 0, 1:
			a.dx++
		case 2, 3:
			a.dx--
		case 4, 6:
			a.dy++
		case 5, 7:
			a.dy--
		}

		a.y--
		a.dx &= 0xfff
		a.dy &= 0xfff
	}
}

// stepVector advances one pixel along the axis-aligned or diagonal
// direction in the top three bits of code.
func (a *accelState) stepVector(code uint8) {
	switch code & 0xe0 {
	case 0x00:
		a.dx++
	case 0x20:
		a.dx++
		a.dy--
	case 0x40:
		a.dy--
	case 0x60:
		a.dx--
		a.dy--
	case 0x80:
		a.dx--
	case 0xa0:
		a.dx--
		a.dy++
	case 0xc0:
		a.dy++
	case 0xe0:
		a.dx++
		a.dy++
	}
	a.dx &= 0xfff
	a.dy &= 0xfff
}

// runShortVector draws a short axis-aligned or diagonal line. The full
// width size Y register packs the octant in its top byte and the pixel
// count in its low 12 bits.
func (t *TGUI) runShortVector(count int) {
	a := &t.accel
	if count == -1 {
		a.dx = a.dstX & 0xfff
		a.dy = a.dstY & 0xfff
		a.y = int16(a.svSizeY & 0xfff)
		t.loadClip()
	}

	code := uint8(a.svSizeY >> 8)
	for count != 0 {
		count--
		t.linePixel()
		if a.y == 0 {
			break
		}
		a.stepVector(code)
		a.y--
	}
}

// runFastLine is the 96xx-only short vector variant that takes its
// octant from the masked size Y register. Earlier variants ignore the
// command entirely.
func (t *TGUI) runFastLine(count int) {
	if !t.caps.supportsFastLine {
		return
	}
	a := &t.accel
	if count == -1 {
		a.dx = a.dstX & 0xfff
		a.dy = a.dstY & 0xfff
		a.y = a.sizeY
		t.loadClip()
	}

	code := uint8(uint16(a.sizeY) >> 8)
	for count != 0 {
		count--
		t.linePixel()
		if a.y == 0 {
			break
		}
		a.stepVector(code)
		a.y--
	}
}
