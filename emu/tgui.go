package emu

// TGUI is one Trident TGUI-family display adapter: the VGA-compatible
// register file, the banked and linear framebuffer apertures, the
// memory-mapped register window and the 2D drawing engine.
//
// The CPU-facing surface is byte oriented. Word and dword accesses are
// decomposed into byte operations at ascending addresses, with the one
// exception of the atomic 32-bit command register write which the
// drawing engine handles as a unit.
type TGUI struct {
	chip ChipType
	caps capabilities

	svga *SVGA
	surf DisplaySurface

	accel accelState

	// Trident paged-memory bank registers.
	bank3d8 uint8
	bank3d9 uint8

	// Sequencer old/new mode select and the control registers banked
	// behind it.
	oldMode  bool
	oldCtrl1 uint8
	oldCtrl2 uint8
	newCtrl2 uint8

	geBase uint32

	// writeBlitter redirects framebuffer aperture writes into the
	// drawing engine while a CPU-sourced command is in flight.
	writeBlitter bool

	// 9400CXi extended write-mode latch.
	copyLatch [16]uint8
}

// NewTGUI creates a card of the given variant with vramSize bytes of
// video memory. Pass 0 for the default size.
func NewTGUI(chip ChipType, vramSize int) *TGUI {
	if vramSize <= 0 {
		vramSize = DefaultVRAMSize
	}
	svga := NewSVGA(vramSize)
	t := &TGUI{
		chip: chip,
		caps: capabilitiesFor(chip),
		svga: svga,
		surf: svga,
	}
	t.updateAccelDepth()
	return t
}

// Chip returns the emulated variant.
func (t *TGUI) Chip() ChipType { return t.chip }

// OutB writes one byte to an I/O port. The accelerator port range only
// responds from the 9440 on.
func (t *TGUI) OutB(port uint16, val uint8) {
	if port >= 0x2120 && port <= 0x21ff {
		if t.chip >= TGUI9440 {
			t.accelOut(port, val)
		}
		return
	}
	t.vgaOut(port, val)
}

// OutW writes a 16-bit value as two byte writes, except in the
// accelerator range where the engine's own word path applies.
func (t *TGUI) OutW(port uint16, val uint16) {
	if port >= 0x2120 && port <= 0x21ff {
		if t.chip >= TGUI9440 {
			t.accelOutW(port, val)
		}
		return
	}
	t.vgaOut(port, uint8(val))
	t.vgaOut(port+1, uint8(val>>8))
}

// OutL writes a 32-bit value. A dword write to the command register
// carries the ROP in its top byte and starts the command atomically.
func (t *TGUI) OutL(port uint16, val uint32) {
	if port >= 0x2120 && port <= 0x21ff {
		if t.chip >= TGUI9440 {
			t.accelOutL(port, val)
		}
		return
	}
	t.vgaOut(port, uint8(val))
	t.vgaOut(port+1, uint8(val>>8))
	t.vgaOut(port+2, uint8(val>>16))
	t.vgaOut(port+3, uint8(val>>24))
}

// InB reads one byte from an I/O port.
func (t *TGUI) InB(port uint16) uint8 {
	if port >= 0x2120 && port <= 0x21ff {
		if t.chip >= TGUI9440 {
			return t.accelIn(port)
		}
		return 0xff
	}
	return t.vgaIn(port)
}

// InW reads a 16-bit value as two byte reads.
func (t *TGUI) InW(port uint16) uint16 {
	if port >= 0x2120 && port <= 0x21ff {
		if t.chip >= TGUI9440 {
			return t.accelInW(port)
		}
		return 0xffff
	}
	return uint16(t.vgaIn(port)) | uint16(t.vgaIn(port+1))<<8
}

// InL reads a 32-bit value as four byte reads.
func (t *TGUI) InL(port uint16) uint32 {
	if port >= 0x2120 && port <= 0x21ff {
		if t.chip >= TGUI9440 {
			return t.accelInL(port)
		}
		return 0xffffffff
	}
	return uint32(t.InW(port)) | uint32(t.InW(port+2))<<16
}

func (t *TGUI) vgaOut(port uint16, val uint8) {
	s := t.svga
	switch port {
	case 0x3c4:
		s.seqIdx = val
	case 0x3c5:
		switch s.seqIdx & 0x0f {
		case 0x0b:
			// Reading 0x3C5 with index B would switch back to new
			// mode; a write selects the old register set.
			t.oldMode = true
		case 0x0d:
			if t.oldMode {
				t.oldCtrl2 = val
			} else {
				t.newCtrl2 = val
			}
		case 0x0e:
			if t.oldMode {
				t.oldCtrl1 = val
				s.writeBank = uint32(val&0x3f) * 65536
			} else {
				s.seq[0x0e] = val ^ 2
				s.writeBank = uint32((val^2)&0x3f) * 65536
			}
			if s.gdc[0xf]&1 == 0 {
				s.readBank = s.writeBank
			}
			return
		}
		if int(s.seqIdx) < len(s.seq) {
			s.seq[s.seqIdx] = val
		}

	case 0x3c6:
		if s.ramdacState == 4 {
			s.ramdacState = 0
			s.ramdacCtrl = val
			s.recalc(t.chip)
			t.updateAccelDepth()
			return
		}
		s.dacMask = val
	case 0x3c7:
		s.ramdacState = 0
		s.dacAddr = val
		s.dacStage = 0
	case 0x3c8:
		s.ramdacState = 0
		s.dacAddr = val
		s.dacStage = 0
	case 0x3c9:
		s.ramdacState = 0
		s.dacWrite(val)

	case 0x3ce:
		s.gdcIdx = val
	case 0x3cf:
		idx := s.gdcIdx & 0x3f
		s.gdc[idx] = val
		switch idx {
		case 0x0e:
			s.gdc[0x0e] = val ^ 2
			if s.gdc[0xf]&1 == 1 {
				s.readBank = uint32((val^2)&0x3f) * 65536
			}
		case 0x0f:
			if val&1 != 0 {
				s.readBank = uint32(s.gdc[0x0e]&0x3f) * 65536
			} else if t.oldMode {
				s.readBank = uint32(t.oldCtrl1&0x3f) * 65536
			} else {
				s.readBank = uint32(s.seq[0x0e]&0x3f) * 65536
			}
			if t.oldMode {
				s.writeBank = uint32(t.oldCtrl1&0x3f) * 65536
			} else {
				s.writeBank = uint32(s.seq[0x0e]&0x3f) * 65536
			}
		}

	case 0x3d4:
		s.crtcIdx = val
	case 0x3d5:
		if s.crtcIdx < 7 && s.crtc[0x11]&0x80 != 0 {
			return
		}
		if s.crtcIdx == 7 && s.crtc[0x11]&0x80 != 0 {
			val = (s.crtc[7] &^ 0x10) | (val & 0x10)
		}
		s.crtc[s.crtcIdx] = val
		switch s.crtcIdx {
		case 0x34, 0x35:
			if t.chip >= TGUI9440 {
				t.geBase = uint32(s.crtc[0x35])<<24 | uint32(s.crtc[0x34])<<16
			}
		case 0x13, 0x29, 0x38:
			s.recalc(t.chip)
			t.updateAccelDepth()
		}

	case 0x3d8:
		t.bank3d8 = val
		s.updateBanks(t.bank3d8, t.bank3d9)
	case 0x3d9:
		t.bank3d9 = val
		s.updateBanks(t.bank3d8, t.bank3d9)
	}
}

func (t *TGUI) vgaIn(port uint16) uint8 {
	s := t.svga
	switch port {
	case 0x3c4:
		return s.seqIdx
	case 0x3c5:
		switch s.seqIdx & 0x0f {
		case 0x0b:
			// The read reports the chip family and flips the register
			// file back to new mode.
			t.oldMode = false
			switch t.chip {
			case TGUI9400CXi:
				return 0x93
			case TGUI9440:
				return 0xe3
			default:
				return 0xd3
			}
		case 0x0d:
			if t.oldMode {
				return t.oldCtrl2
			}
			return t.newCtrl2
		case 0x0e:
			if t.oldMode {
				return t.oldCtrl1
			}
		}
		if int(s.seqIdx) < len(s.seq) {
			return s.seq[s.seqIdx]
		}
		return 0
	case 0x3c6:
		if s.ramdacState < 4 {
			s.ramdacState++
			if s.ramdacState == 4 {
				return s.ramdacCtrl
			}
		}
		return s.dacMask
	case 0x3c8:
		return s.dacAddr
	case 0x3ce:
		return s.gdcIdx
	case 0x3cf:
		return s.gdc[s.gdcIdx&0x3f]
	case 0x3d4:
		return s.crtcIdx
	case 0x3d5:
		return s.crtc[s.crtcIdx]
	case 0x3d8:
		return t.bank3d8
	case 0x3d9:
		return t.bank3d9
	}
	return 0
}

// geWindow returns the graphics-engine aperture mode from CRTC 0x36:
// 0 maps the registers into the MMIO window, 1 and 2 map them into a
// 256-byte window at the top of one of the legacy apertures.
func (t *TGUI) geWindow() uint8 {
	return t.svga.crtc[0x36] & 0x03
}

// blitterApertureOn reports whether CPU-sourced commands take their data
// through framebuffer writes.
func (t *TGUI) blitterApertureOn() bool {
	return t.svga.crtc[0x21]&0x20 != 0
}

// AccelApertureWriteB handles a byte write in a legacy accelerator
// aperture. Only the 256-byte window selected by CRTC 0x36 responds;
// writes elsewhere in the aperture are dropped.
func (t *TGUI) AccelApertureWriteB(addr uint32, val uint8) {
	switch t.geWindow() {
	case 2:
		if addr&^0xff != 0xbff00 {
			return
		}
	case 1:
		if addr&^0xff != 0xb7f00 {
			return
		}
	}
	t.accelOut(uint16(addr&0xff)+0x2100, val)
}

// AccelApertureWriteW decomposes into byte writes.
func (t *TGUI) AccelApertureWriteW(addr uint32, val uint16) {
	t.AccelApertureWriteB(addr, uint8(val))
	t.AccelApertureWriteB(addr+1, uint8(val>>8))
}

// AccelApertureWriteL decomposes into byte writes, except at the command
// register where the full dword is consumed atomically.
func (t *TGUI) AccelApertureWriteL(addr uint32, val uint32) {
	if addr&0xff == 0x24 {
		switch t.geWindow() {
		case 2:
			if addr&^0xff != 0xbff00 {
				return
			}
		case 1:
			if addr&^0xff != 0xb7f00 {
				return
			}
		}
		t.accelOutL(0x2124, val)
		return
	}
	t.AccelApertureWriteW(addr, uint16(val))
	t.AccelApertureWriteW(addr+2, uint16(val>>16))
}

// AccelApertureReadB reads back an accelerator register through the
// legacy aperture.
func (t *TGUI) AccelApertureReadB(addr uint32) uint8 {
	return t.accelIn(uint16(addr&0xff) + 0x2100)
}

func (t *TGUI) AccelApertureReadW(addr uint32) uint16 {
	return uint16(t.AccelApertureReadB(addr)) | uint16(t.AccelApertureReadB(addr+1))<<8
}

func (t *TGUI) AccelApertureReadL(addr uint32) uint32 {
	return uint32(t.AccelApertureReadW(addr)) | uint32(t.AccelApertureReadW(addr+2))<<16
}

// MMIOWriteB dispatches a byte write in the 64KB memory-mapped window.
// With CRTC 0x36 mode 0 the accelerator registers appear at their port
// numbers; otherwise the window falls through to the I/O decoder.
func (t *TGUI) MMIOWriteB(addr uint32, val uint8) {
	addr &= 0xffff
	switch {
	case t.geWindow() == 0 && addr >= 0x2100 && addr <= 0x21ff:
		if t.chip >= TGUI9440 {
			t.accelOut(uint16(addr), val)
		}
	case t.geWindow() > 0 && addr <= 0xff:
		t.AccelApertureWriteB(addr, val)
	default:
		t.vgaOut(uint16(addr), val)
	}
}

func (t *TGUI) MMIOWriteW(addr uint32, val uint16) {
	addr &= 0xffff
	switch {
	case t.geWindow() == 0 && addr >= 0x2100 && addr <= 0x21ff:
		if t.chip >= TGUI9440 {
			t.accelOutW(uint16(addr), val)
		}
	case t.geWindow() > 0 && addr <= 0xff:
		t.AccelApertureWriteW(addr, val)
	default:
		t.vgaOut(uint16(addr), uint8(val))
		t.vgaOut(uint16(addr)+1, uint8(val>>8))
	}
}

func (t *TGUI) MMIOWriteL(addr uint32, val uint32) {
	addr &= 0xffff
	switch {
	case t.geWindow() == 0 && addr >= 0x2100 && addr <= 0x21ff:
		if t.chip >= TGUI9440 {
			t.accelOutL(uint16(addr), val)
		}
	case t.geWindow() > 0 && addr <= 0xff:
		t.AccelApertureWriteL(addr, val)
	default:
		t.vgaOut(uint16(addr), uint8(val))
		t.vgaOut(uint16(addr)+1, uint8(val>>8))
		t.vgaOut(uint16(addr)+2, uint8(val>>16))
		t.vgaOut(uint16(addr)+3, uint8(val>>24))
	}
}

// MMIOReadB dispatches a byte read in the memory-mapped window.
func (t *TGUI) MMIOReadB(addr uint32) uint8 {
	addr &= 0xffff
	switch {
	case t.geWindow() == 0 && addr >= 0x2100 && addr <= 0x21ff:
		if t.chip >= TGUI9440 {
			return t.accelIn(uint16(addr))
		}
		return 0xff
	case t.geWindow() > 0 && addr <= 0xff:
		return t.AccelApertureReadB(addr)
	default:
		return t.vgaIn(uint16(addr))
	}
}

func (t *TGUI) MMIOReadW(addr uint32) uint16 {
	addr &= 0xffff
	switch {
	case t.geWindow() == 0 && addr >= 0x2100 && addr <= 0x21ff:
		if t.chip >= TGUI9440 {
			return t.accelInW(uint16(addr))
		}
		return 0xffff
	case t.geWindow() > 0 && addr <= 0xff:
		return t.AccelApertureReadW(addr)
	default:
		return uint16(t.vgaIn(uint16(addr))) | uint16(t.vgaIn(uint16(addr)+1))<<8
	}
}

func (t *TGUI) MMIOReadL(addr uint32) uint32 {
	addr &= 0xffff
	switch {
	case t.geWindow() == 0 && addr >= 0x2100 && addr <= 0x21ff:
		if t.chip >= TGUI9440 {
			return t.accelInL(uint16(addr))
		}
		return 0xffffffff
	case t.geWindow() > 0 && addr <= 0xff:
		return t.AccelApertureReadL(addr)
	default:
		return uint32(t.MMIOReadW(addr)) | uint32(t.MMIOReadW(addr+2))<<16
	}
}

// FBWriteB writes one byte into the linear framebuffer aperture. While a
// CPU-sourced drawing command is active the write is consumed by the
// engine as 8 bits of source data instead of landing in memory.
func (t *TGUI) FBWriteB(addr uint32, val uint8) {
	if t.writeBlitter {
		t.FeedBlitter(8, uint32(val)<<24)
		return
	}
	if t.extWriteActive() {
		t.extLinearWriteB(addr, val)
		return
	}
	t.svga.writeLinear(addr, val)
}

// FBWriteW writes 16 bits. Blitter feeds are repacked most significant
// byte first so the engine shifts source data out of the top of the
// accumulator.
func (t *TGUI) FBWriteW(addr uint32, val uint16) {
	if t.writeBlitter {
		t.FeedBlitter(16, uint32(val>>8|val<<8)<<16)
		return
	}
	if t.extWriteActive() {
		t.extLinearWriteW(addr, val)
		return
	}
	t.svga.writeLinear(addr, uint8(val))
	t.svga.writeLinear(addr+1, uint8(val>>8))
}

// FBWriteL writes 32 bits, byte reversed when feeding the blitter.
func (t *TGUI) FBWriteL(addr uint32, val uint32) {
	if t.writeBlitter {
		t.FeedBlitter(32, val>>24|val>>8&0xff00|val<<8&0xff0000|val<<24)
		return
	}
	if t.extWriteActive() {
		// The hardware treats dword extended writes as word writes.
		t.extLinearWriteW(addr, uint16(val))
		return
	}
	t.svga.writeLinear(addr, uint8(val))
	t.svga.writeLinear(addr+1, uint8(val>>8))
	t.svga.writeLinear(addr+2, uint8(val>>16))
	t.svga.writeLinear(addr+3, uint8(val>>24))
}

// FBReadB reads one byte from the linear framebuffer aperture. In
// latch-copy mode the read also refills the copy latch.
func (t *TGUI) FBReadB(addr uint32) uint8 {
	if t.extReadActive() {
		return t.extLinearReadB(addr)
	}
	return t.svga.readLinear(addr)
}

func (t *TGUI) FBReadW(addr uint32) uint16 {
	return uint16(t.FBReadB(addr)) | uint16(t.FBReadB(addr+1))<<8
}

func (t *TGUI) FBReadL(addr uint32) uint32 {
	return uint32(t.FBReadW(addr)) | uint32(t.FBReadW(addr+2))<<16
}

// BankedWriteB writes through the legacy 64KB window using the current
// write bank.
func (t *TGUI) BankedWriteB(addr uint32, val uint8) {
	t.FBWriteB(t.svga.writeBank+(addr&t.svga.bankedMask), val)
}

func (t *TGUI) BankedWriteW(addr uint32, val uint16) {
	t.FBWriteW(t.svga.writeBank+(addr&t.svga.bankedMask), val)
}

func (t *TGUI) BankedWriteL(addr uint32, val uint32) {
	t.FBWriteL(t.svga.writeBank+(addr&t.svga.bankedMask), val)
}

// BankedReadB reads through the legacy window using the read bank.
func (t *TGUI) BankedReadB(addr uint32) uint8 {
	return t.FBReadB(t.svga.readBank + (addr & t.svga.bankedMask))
}

func (t *TGUI) BankedReadW(addr uint32) uint16 {
	return t.FBReadW(t.svga.readBank + (addr & t.svga.bankedMask))
}

func (t *TGUI) BankedReadL(addr uint32) uint32 {
	return t.FBReadL(t.svga.readBank + (addr & t.svga.bankedMask))
}
