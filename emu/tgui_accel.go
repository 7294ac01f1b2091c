package emu

// Drawing engine command codes.
const (
	cmdBitBLT        = 0x01
	cmdScanline      = 0x03
	cmdBresenhamLine = 0x04
	cmdShortVector   = 0x05
	cmdFastLine      = 0x06
)

// Drawing flag register bits. Bits 8-10 double as the Bresenham octant
// code; for screen-to-screen blits bit 9 selects right-to-left stepping
// and bit 8 bottom-to-top. Bits 24-26 hold the mono source left-edge
// skip count.
const (
	flagSrcPat    = 0x00000002
	flagSrcDisp   = 0x00000004
	flagPatMono   = 0x00000020
	flagYRev      = 0x00000100
	flagXRev      = 0x00000200
	flagSrcMono   = 0x00000040
	flagTransEna  = 0x00001000
	flagTransRev  = 0x00002000
	flagSolidFill = 0x00004000
	flagStencil   = 0x00008000
)

// accelState is the drawing engine register file plus the progress of
// the command in flight. Commands survive across calls so that CPU
// sourced data can arrive in arbitrarily sized pieces.
type accelState struct {
	command uint8
	rop     uint8
	useSrc  bool
	flags   uint32
	ger22   uint16

	fgCol uint32
	bgCol uint32
	style uint32
	ckey  uint32

	dstX, dstY int16
	srcX, srcY int16
	sizeX      int16
	sizeY      int16
	svSizeY    uint16

	srcXClip, srcYClip int16
	dstXClip, dstYClip int16

	patLoc       uint16
	pattern      [0x80]uint8
	pattern32    [0x100]uint8
	pattern32Idx int

	// Command progress. x,y count pixels within the extent; dx,dy track
	// the destination position for clipping; src/dst walk display
	// memory with the row-start copies used for row wrap.
	x, y                     int16
	dx, dy                   int16
	left, right, top, bottom int16
	src, srcOld              uint32
	dst, dstOld              uint32
	patX, patY               int32

	bppClass int
	pitch    int32
	cache    [64]uint32
}

// updateAccelDepth re-derives the engine's pixel width class from the
// display depth. 8 and 24bpp modes run the engine byte wide.
func (t *TGUI) updateAccelDepth() {
	switch t.surf.PixelDepth() {
	case 15, 16:
		t.accel.bppClass = 1
	case 32:
		t.accel.bppClass = 3
	default:
		t.accel.bppClass = 0
	}
}

// StartCommand begins execution of the programmed command. Commands with
// no CPU source run to completion; CPU sourced commands initialize their
// state and then wait for data through FeedBlitter.
func (t *TGUI) StartCommand() {
	t.runCommand(-1, 0)
}

// FeedBlitter supplies bits of CPU source data to the command in flight.
// Data is packed most significant bit first; bits is 8, 16 or 32.
func (t *TGUI) FeedBlitter(bits int, data uint32) {
	t.runCommand(bits, data)
}

// accelOut handles a byte write to a drawing engine register.
func (t *TGUI) accelOut(port uint16, val uint8) {
	a := &t.accel
	switch port {
	case 0x2122:
		a.ger22 = a.ger22&0xff00 | uint16(val)
		t.updateAccelDepth()
	case 0x2123:
		a.ger22 = a.ger22&0x00ff | uint16(val)<<8
		t.updateAccelDepth()

	case 0x2124:
		a.command = val
		t.StartCommand()

	case 0x2127:
		a.rop = val
		a.useSrc = ropUsesSource(val)

	case 0x2128, 0x2129, 0x212a, 0x212b:
		sh := uint(port&3) * 8
		a.flags = a.flags&^(0xff<<sh) | uint32(val)<<sh

	case 0x212c, 0x212d, 0x212e, 0x212f, 0x2178, 0x2179, 0x217a, 0x217b:
		sh := uint(port&3) * 8
		a.fgCol = a.fgCol&^(0xff<<sh) | uint32(val)<<sh
	case 0x2130, 0x2131, 0x2132, 0x2133, 0x217c, 0x217d, 0x217e, 0x217f:
		sh := uint(port&3) * 8
		a.bgCol = a.bgCol&^(0xff<<sh) | uint32(val)<<sh

	case 0x2134:
		a.patLoc = a.patLoc&0xff00 | uint16(val)
	case 0x2135:
		a.patLoc = a.patLoc&0x00ff | uint16(val)<<8

	case 0x2138:
		a.dstX = int16(uint16(a.dstX)&0xff00 | uint16(val))
	case 0x2139:
		a.dstX = int16(uint16(a.dstX)&0x00ff | uint16(val)<<8)
	case 0x213a:
		a.dstY = int16(uint16(a.dstY)&0xff00 | uint16(val))
	case 0x213b:
		a.dstY = int16(uint16(a.dstY)&0x00ff | uint16(val)<<8)

	// Source X/Y double as the line diagonal and axial step constants,
	// sign extended from 14 bits.
	case 0x213c:
		a.srcX = int16(uint16(a.srcX)&0x3f00 | uint16(val))
	case 0x213d:
		a.srcX = int16(uint16(a.srcX)&0x00ff | uint16(val&0x3f)<<8)
		if val&0x20 != 0 {
			a.srcX |= ^int16(0x3fff)
		}
	case 0x213e:
		a.srcY = int16(uint16(a.srcY)&0x3f00 | uint16(val))
	case 0x213f:
		a.srcY = int16(uint16(a.srcY)&0x00ff | uint16(val&0x3f)<<8)
		if val&0x20 != 0 {
			a.srcY |= ^int16(0x3fff)
		}

	// Size X doubles as the line error term, sign extended from 13
	// bits. Size Y keeps a separate full-width copy for the short
	// vector command, which packs its octant into the top byte.
	case 0x2140:
		a.sizeX = int16(uint16(a.sizeX)&0x3f00 | uint16(val))
	case 0x2141:
		a.sizeX = int16(uint16(a.sizeX)&0x00ff | uint16(val&0x3f)<<8)
		if val&0x20 != 0 {
			a.sizeX |= ^int16(0x1fff)
		}
	case 0x2142:
		a.sizeY = int16(uint16(a.sizeY)&0x0f00 | uint16(val))
		a.svSizeY = a.svSizeY&0xff00 | uint16(val)
	case 0x2143:
		a.sizeY = int16(uint16(a.sizeY)&0x00ff | uint16(val&0x0f)<<8)
		a.svSizeY = a.svSizeY&0x00ff | uint16(val)<<8

	case 0x2144, 0x2145, 0x2146, 0x2147:
		sh := uint(port&3) * 8
		a.style = a.style&^(0xff<<sh) | uint32(val)<<sh

	case 0x2148:
		a.srcXClip = int16(uint16(a.srcXClip)&0xff00 | uint16(val))
	case 0x2149:
		a.srcXClip = int16(uint16(a.srcXClip)&0x00ff | uint16(val)<<8)
	case 0x214a:
		a.srcYClip = int16(uint16(a.srcYClip)&0xff00 | uint16(val))
	case 0x214b:
		a.srcYClip = int16(uint16(a.srcYClip)&0x00ff | uint16(val)<<8)
	case 0x214c:
		a.dstXClip = int16(uint16(a.dstXClip)&0xff00 | uint16(val))
	case 0x214d:
		a.dstXClip = int16(uint16(a.dstXClip)&0x00ff | uint16(val)<<8)
	case 0x214e:
		a.dstYClip = int16(uint16(a.dstYClip)&0xff00 | uint16(val))
	case 0x214f:
		a.dstYClip = int16(uint16(a.dstYClip)&0x00ff | uint16(val)<<8)

	case 0x2168, 0x2169, 0x216a, 0x216b:
		sh := uint(port&3) * 8
		a.ckey = a.ckey&^(0xff<<sh) | uint32(val)<<sh

	default:
		if port >= 0x2180 && port <= 0x21ff {
			// Pattern writes land in both stores: the 128-byte mono
			// and 8/16bpp buffer addressed by register offset, and
			// the rolling 256-byte 32bpp buffer whose cursor resets
			// when a command starts.
			a.pattern[port&0x7f] = val
			a.pattern32[a.pattern32Idx] = val
			a.pattern32Idx = (a.pattern32Idx + 1) & 0xff
		}
	}
}

// accelOutW decomposes into byte writes at ascending register addresses.
func (t *TGUI) accelOutW(port uint16, val uint16) {
	t.accelOut(port, uint8(val))
	t.accelOut(port+1, uint8(val>>8))
}

// accelOutL decomposes into byte writes, except at the command register
// where the dword carries command and ROP together and starts execution
// atomically.
func (t *TGUI) accelOutL(port uint16, val uint32) {
	if port == 0x2124 {
		a := &t.accel
		a.command = uint8(val)
		a.rop = uint8(val >> 24)
		a.useSrc = ropUsesSource(a.rop)
		t.StartCommand()
		return
	}
	t.accelOut(port, uint8(val))
	t.accelOut(port+1, uint8(val>>8))
	t.accelOut(port+2, uint8(val>>16))
	t.accelOut(port+3, uint8(val>>24))
}

// accelIn reads back a drawing engine register. The engine completes
// every command within the triggering write, so status always reads
// idle. Unassigned registers read zero.
func (t *TGUI) accelIn(port uint16) uint8 {
	a := &t.accel
	switch port {
	case 0x2120:
		return 0

	case 0x2122:
		return uint8(a.ger22)
	case 0x2123:
		return uint8(a.ger22 >> 8)

	case 0x2127:
		return a.rop

	case 0x2128, 0x2129, 0x212a, 0x212b:
		return uint8(a.flags >> (uint(port&3) * 8))

	case 0x212c, 0x212d, 0x212e, 0x212f, 0x2178, 0x2179, 0x217a, 0x217b:
		return uint8(a.fgCol >> (uint(port&3) * 8))
	case 0x2130, 0x2131, 0x2132, 0x2133, 0x217c, 0x217d, 0x217e, 0x217f:
		return uint8(a.bgCol >> (uint(port&3) * 8))

	case 0x2134:
		return uint8(a.patLoc)
	case 0x2135:
		return uint8(a.patLoc >> 8)

	case 0x2138:
		return uint8(a.dstX)
	case 0x2139:
		return uint8(uint16(a.dstX) >> 8)
	case 0x213a:
		return uint8(a.dstY)
	case 0x213b:
		return uint8(uint16(a.dstY) >> 8)
	case 0x213c:
		return uint8(a.srcX)
	case 0x213d:
		return uint8(uint16(a.srcX) >> 8)
	case 0x213e:
		return uint8(a.srcY)
	case 0x213f:
		return uint8(uint16(a.srcY) >> 8)
	case 0x2140:
		return uint8(a.sizeX)
	case 0x2141:
		return uint8(uint16(a.sizeX) >> 8)
	case 0x2142:
		return uint8(a.sizeY)
	case 0x2143:
		return uint8(uint16(a.sizeY) >> 8)

	case 0x2144, 0x2145, 0x2146, 0x2147:
		return uint8(a.style >> (uint(port&3) * 8))

	case 0x2148:
		return uint8(a.srcXClip)
	case 0x2149:
		return uint8(uint16(a.srcXClip) >> 8)
	case 0x214a:
		return uint8(a.srcYClip)
	case 0x214b:
		return uint8(uint16(a.srcYClip) >> 8)
	case 0x214c:
		return uint8(a.dstXClip)
	case 0x214d:
		return uint8(uint16(a.dstXClip) >> 8)
	case 0x214e:
		return uint8(a.dstYClip)
	case 0x214f:
		return uint8(uint16(a.dstYClip) >> 8)

	case 0x2168, 0x2169, 0x216a, 0x216b:
		return uint8(a.ckey >> (uint(port&3) * 8))

	default:
		if port >= 0x2180 && port <= 0x21ff {
			return a.pattern[port&0x7f]
		}
	}
	return 0
}

func (t *TGUI) accelInW(port uint16) uint16 {
	return uint16(t.accelIn(port)) | uint16(t.accelIn(port+1))<<8
}

func (t *TGUI) accelInL(port uint16) uint32 {
	return uint32(t.accelInW(port)) | uint32(t.accelInW(port+2))<<16
}
