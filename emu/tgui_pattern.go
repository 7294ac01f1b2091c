package emu

// buildPatternCache expands the active pattern into 64 pixel values
// indexed ((y&7)*8)+(x&7). The cache is rebuilt on every engine
// invocation so register changes between data feeds take effect.
//
// Solid fill and mono patterns store mirrored in x: bit 7 of a pattern
// byte is the leftmost pixel. Color patterns read the 128-byte store at
// 8 and 16bpp and the rolling 256-byte store at 32bpp.
func (t *TGUI) buildPatternCache() {
	a := &t.accel
	switch {
	case a.flags&flagSolidFill != 0:
		for i := range a.cache {
			a.cache[i] = a.fgCol
		}

	case a.flags&flagPatMono != 0:
		for y := 0; y < 8; y++ {
			bits := a.pattern[y]
			for x := 0; x < 8; x++ {
				col := a.bgCol
				if bits&(1<<uint(x)) != 0 {
					col = a.fgCol
				}
				a.cache[y*8+(7-x)] = col
			}
		}

	default:
		switch a.bppClass {
		case 1:
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					o := x*2 + y*16
					a.cache[y*8+x] = uint32(a.pattern[o]) | uint32(a.pattern[o+1])<<8
				}
			}
		case 3:
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					o := x*4 + y*32
					a.cache[y*8+x] = uint32(a.pattern32[o]) | uint32(a.pattern32[o+1])<<8 |
						uint32(a.pattern32[o+2])<<16 | uint32(a.pattern32[o+3])<<24
				}
			}
		default:
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					a.cache[y*8+x] = uint32(a.pattern[y*8+x])
				}
			}
		}
	}
}

// patPixel returns the pattern pixel for the current pattern position,
// masked to the engine width.
func (a *accelState) patPixel() uint32 {
	return a.maskPixel(a.cache[(a.patY&7)*8+(a.patX&7)])
}

// maskPixel trims a value to the engine's pixel width. The 32-bit class
// passes through untouched.
func (a *accelState) maskPixel(v uint32) uint32 {
	switch a.bppClass {
	case 0:
		return v & 0xff
	case 1:
		return v & 0xffff
	}
	return v
}
