package emu

// 9400CXi extended write control bits in GDC register 0x10.
const (
	extCtrl16Bit           = 0x01
	extCtrlMonoExpansion   = 0x02
	extCtrlMonoTransparent = 0x04
	extCtrlLatchCopy       = 0x08
)

// dwordRemap converts a linear address to the chain-4 style doubleword
// memory layout the 9400CXi uses for its extended write modes.
func dwordRemap(addr uint32) uint32 {
	return (addr<<2)&0x3fff0 | (addr>>14)&0xc | addr&^uint32(0x3fffc)
}

// extWriteActive reports whether framebuffer writes go through the
// 9400CXi extended write logic instead of landing directly.
func (t *TGUI) extWriteActive() bool {
	return t.caps.usesDwordRemap &&
		t.svga.gdc[0x10]&(extCtrlLatchCopy|extCtrlMonoExpansion) != 0
}

// extReadActive reports whether framebuffer reads refill the copy
// latch. Only the latch-copy mode changes the read path.
func (t *TGUI) extReadActive() bool {
	return t.caps.usesDwordRemap && t.svga.gdc[0x10]&extCtrlLatchCopy != 0
}

// extStep advances a remapped address to the next plane-interleaved
// byte: one byte within a group of four, then a 13-byte hop to the next
// group.
func extStep(addr uint32, i int) uint32 {
	if i&3 == 3 {
		return addr + 0x0d
	}
	return addr + 0x01
}

// extLinearReadB reads one byte in latch-copy mode. The read fills the
// 16-byte copy latch from the surrounding remapped group as a side
// effect.
func (t *TGUI) extLinearReadB(addr uint32) uint8 {
	s := t.svga
	addr &= s.vramMask
	addr &^= 0x0f
	addr = dwordRemap(addr)

	for i := 0; i < 16; i++ {
		t.copyLatch[i] = s.vram[addr&s.vramMask]
		addr = extStep(addr, i)
	}

	return s.vram[addr&s.vramMask]
}

// extLinearWriteB performs one extended write: each bit of val selects
// one remapped byte, filled from the copy latch, the foreground color
// or the foreground/background pair depending on the mode bits.
func (t *TGUI) extLinearWriteB(addr uint32, val uint8) {
	s := t.svga
	ctl := s.gdc[0x10]
	wide := ctl&extCtrl16Bit != 0
	fg := [2]uint8{s.gdc[0x14], s.gdc[0x15]}
	bg := [2]uint8{s.gdc[0x11], s.gdc[0x12]}

	addr &= s.vramMask
	if ctl&extCtrlLatchCopy != 0 {
		addr &^= 0x0f
	} else {
		addr &^= 0x07
	}
	addr = dwordRemap(addr)
	s.markChanged(addr)

	switch {
	case ctl&extCtrlLatchCopy != 0:
		for i := 0; i < 8; i++ {
			if val&(0x80>>uint(i)) != 0 {
				s.vram[addr&s.vramMask] = t.copyLatch[i]
			}
			addr = extStep(addr, i) & s.vramMask
		}

	case ctl&extCtrlMonoTransparent != 0:
		for i := 0; i < 8; i++ {
			if val&(0x80>>uint(i)) != 0 {
				if wide {
					s.vram[addr&s.vramMask] = fg[i&1]
				} else {
					s.vram[addr&s.vramMask] = fg[0]
				}
			}
			addr = extStep(addr, i) & s.vramMask
		}

	default:
		// Mono expansion with the plane mask in GDC 0x17.
		for i := 0; i < 8; i++ {
			if s.gdc[0x17]&(0x80>>uint(i)) != 0 {
				c := bg
				if val&(0x80>>uint(i)) != 0 {
					c = fg
				}
				if wide {
					s.vram[addr&s.vramMask] = c[i&1]
				} else {
					s.vram[addr&s.vramMask] = c[0]
				}
			}
			addr = extStep(addr, i) & s.vramMask
		}
	}
}

// extLinearWriteW is the 16-bit variant: the value is byte swapped so
// its bits stream out most significant byte first, and the mask widens
// to GDC 0x17:0x18.
func (t *TGUI) extLinearWriteW(addr uint32, val uint16) {
	s := t.svga
	ctl := s.gdc[0x10]
	wide := ctl&extCtrl16Bit != 0
	fg := [2]uint8{s.gdc[0x14], s.gdc[0x15]}
	bg := [2]uint8{s.gdc[0x11], s.gdc[0x12]}
	mask := uint16(s.gdc[0x18]) | uint16(s.gdc[0x17])<<8

	addr &= s.vramMask
	addr &^= 0x0f
	addr = dwordRemap(addr)
	s.markChanged(addr)

	val = val>>8 | val<<8

	switch {
	case ctl&extCtrlLatchCopy != 0:
		for i := 0; i < 16; i++ {
			if val&(0x8000>>uint(i)) != 0 {
				s.vram[addr&s.vramMask] = t.copyLatch[i]
			}
			addr = extStep(addr, i) & s.vramMask
		}

	case ctl&extCtrlMonoTransparent != 0:
		for i := 0; i < 16; i++ {
			if val&(0x8000>>uint(i)) != 0 {
				if wide {
					s.vram[addr&s.vramMask] = fg[i&1]
				} else {
					s.vram[addr&s.vramMask] = fg[0]
				}
			}
			addr = extStep(addr, i) & s.vramMask
		}

	default:
		for i := 0; i < 16; i++ {
			if mask&(0x8000>>uint(i)) != 0 {
				c := bg
				if val&(0x8000>>uint(i)) != 0 {
					c = fg
				}
				if wide {
					s.vram[addr&s.vramMask] = c[i&1]
				} else {
					s.vram[addr&s.vramMask] = c[0]
				}
			}
			addr = extStep(addr, i) & s.vramMask
		}
	}
}
