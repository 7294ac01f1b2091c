package emu

import (
	"encoding/binary"
	"errors"
)

const (
	tguiSerializeVersion = 1
	// tguiSerializeFixedSize is the bytes needed for card state
	// excluding VRAM.
	// version(1) +
	// banks(2) + oldMode(1) + ctrl(3) + geBase(4) + writeBlitter(1) +
	// copyLatch(16) +
	// accel: command(1) + rop(1) + useSrc(1) + flags(4) + ger22(2) +
	// colors(16) + extent(14) + clips(8) + patLoc(2) + pattern(128) +
	// pattern32(256) + pattern32Idx(4) + progress(16) + rowStarts(16) +
	// patPos(8) + bppClass(4) + pitch(4) + cache(256) +
	// svga: crtc(256) + gdc(64) + seq(16) + indexes(3) + ramdac(5) +
	// pal(1024) + dac(9) + mode(8) + banks(12) + geometry(12)
	tguiSerializeFixedSize = 2178
)

// SerializeSize returns the bytes needed to serialize the card,
// including VRAM.
func (t *TGUI) SerializeSize() int {
	return tguiSerializeFixedSize + t.svga.VRAMSize()
}

// Serialize writes the full card state to buf.
func (t *TGUI) Serialize(buf []byte) error {
	if len(buf) < t.SerializeSize() {
		return errors.New("card serialize buffer too small")
	}

	offset := 0

	// Version
	buf[offset] = tguiSerializeVersion
	offset++

	// Bank and mode-select registers
	buf[offset] = t.bank3d8
	offset++
	buf[offset] = t.bank3d9
	offset++
	buf[offset] = boolByte(t.oldMode)
	offset++
	buf[offset] = t.oldCtrl1
	offset++
	buf[offset] = t.oldCtrl2
	offset++
	buf[offset] = t.newCtrl2
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], t.geBase)
	offset += 4
	buf[offset] = boolByte(t.writeBlitter)
	offset++
	copy(buf[offset:], t.copyLatch[:])
	offset += len(t.copyLatch)

	offset = t.serializeAccel(buf, offset)
	offset = t.svga.serialize(buf, offset)
	_ = offset

	return nil
}

// Deserialize restores the full card state from buf.
func (t *TGUI) Deserialize(buf []byte) error {
	if len(buf) < t.SerializeSize() {
		return errors.New("card state too short")
	}
	if buf[0] > tguiSerializeVersion {
		return errors.New("unsupported card state version")
	}

	offset := 1

	t.bank3d8 = buf[offset]
	offset++
	t.bank3d9 = buf[offset]
	offset++
	t.oldMode = buf[offset] != 0
	offset++
	t.oldCtrl1 = buf[offset]
	offset++
	t.oldCtrl2 = buf[offset]
	offset++
	t.newCtrl2 = buf[offset]
	offset++
	t.geBase = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	t.writeBlitter = buf[offset] != 0
	offset++
	copy(t.copyLatch[:], buf[offset:offset+len(t.copyLatch)])
	offset += len(t.copyLatch)

	offset = t.deserializeAccel(buf, offset)
	offset = t.svga.deserialize(buf, offset)
	_ = offset

	return nil
}

// serializeAccel writes the drawing engine state to buf.
func (t *TGUI) serializeAccel(buf []byte, offset int) int {
	a := &t.accel

	buf[offset] = a.command
	offset++
	buf[offset] = a.rop
	offset++
	buf[offset] = boolByte(a.useSrc)
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], a.flags)
	offset += 4
	binary.LittleEndian.PutUint16(buf[offset:], a.ger22)
	offset += 2

	binary.LittleEndian.PutUint32(buf[offset:], a.fgCol)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], a.bgCol)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], a.style)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], a.ckey)
	offset += 4

	for _, v := range []int16{a.dstX, a.dstY, a.srcX, a.srcY, a.sizeX, a.sizeY} {
		binary.LittleEndian.PutUint16(buf[offset:], uint16(v))
		offset += 2
	}
	binary.LittleEndian.PutUint16(buf[offset:], a.svSizeY)
	offset += 2

	for _, v := range []int16{a.srcXClip, a.srcYClip, a.dstXClip, a.dstYClip} {
		binary.LittleEndian.PutUint16(buf[offset:], uint16(v))
		offset += 2
	}

	binary.LittleEndian.PutUint16(buf[offset:], a.patLoc)
	offset += 2
	copy(buf[offset:], a.pattern[:])
	offset += len(a.pattern)
	copy(buf[offset:], a.pattern32[:])
	offset += len(a.pattern32)
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(a.pattern32Idx)))
	offset += 4

	for _, v := range []int16{a.x, a.y, a.dx, a.dy, a.left, a.right, a.top, a.bottom} {
		binary.LittleEndian.PutUint16(buf[offset:], uint16(v))
		offset += 2
	}
	for _, v := range []uint32{a.src, a.srcOld, a.dst, a.dstOld} {
		binary.LittleEndian.PutUint32(buf[offset:], v)
		offset += 4
	}
	binary.LittleEndian.PutUint32(buf[offset:], uint32(a.patX))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(a.patY))
	offset += 4

	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(a.bppClass)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(a.pitch))
	offset += 4
	for _, v := range a.cache {
		binary.LittleEndian.PutUint32(buf[offset:], v)
		offset += 4
	}

	return offset
}

// deserializeAccel reads the drawing engine state from buf.
func (t *TGUI) deserializeAccel(buf []byte, offset int) int {
	a := &t.accel

	a.command = buf[offset]
	offset++
	a.rop = buf[offset]
	offset++
	a.useSrc = buf[offset] != 0
	offset++
	a.flags = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	a.ger22 = binary.LittleEndian.Uint16(buf[offset:])
	offset += 2

	a.fgCol = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	a.bgCol = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	a.style = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	a.ckey = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4

	for _, p := range []*int16{&a.dstX, &a.dstY, &a.srcX, &a.srcY, &a.sizeX, &a.sizeY} {
		*p = int16(binary.LittleEndian.Uint16(buf[offset:]))
		offset += 2
	}
	a.svSizeY = binary.LittleEndian.Uint16(buf[offset:])
	offset += 2

	for _, p := range []*int16{&a.srcXClip, &a.srcYClip, &a.dstXClip, &a.dstYClip} {
		*p = int16(binary.LittleEndian.Uint16(buf[offset:]))
		offset += 2
	}

	a.patLoc = binary.LittleEndian.Uint16(buf[offset:])
	offset += 2
	copy(a.pattern[:], buf[offset:offset+len(a.pattern)])
	offset += len(a.pattern)
	copy(a.pattern32[:], buf[offset:offset+len(a.pattern32)])
	offset += len(a.pattern32)
	a.pattern32Idx = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4

	for _, p := range []*int16{&a.x, &a.y, &a.dx, &a.dy, &a.left, &a.right, &a.top, &a.bottom} {
		*p = int16(binary.LittleEndian.Uint16(buf[offset:]))
		offset += 2
	}
	for _, p := range []*uint32{&a.src, &a.srcOld, &a.dst, &a.dstOld} {
		*p = binary.LittleEndian.Uint32(buf[offset:])
		offset += 4
	}
	a.patX = int32(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4
	a.patY = int32(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4

	a.bppClass = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	a.pitch = int32(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4
	for i := range a.cache {
		a.cache[i] = binary.LittleEndian.Uint32(buf[offset:])
		offset += 4
	}

	return offset
}

// serialize writes display state and VRAM to buf.
func (s *SVGA) serialize(buf []byte, offset int) int {
	copy(buf[offset:], s.crtc[:])
	offset += len(s.crtc)
	copy(buf[offset:], s.gdc[:])
	offset += len(s.gdc)
	copy(buf[offset:], s.seq[:])
	offset += len(s.seq)
	buf[offset] = s.crtcIdx
	offset++
	buf[offset] = s.gdcIdx
	offset++
	buf[offset] = s.seqIdx
	offset++

	buf[offset] = s.ramdacCtrl
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.ramdacState)))
	offset += 4

	for _, v := range s.pal {
		binary.LittleEndian.PutUint32(buf[offset:], v)
		offset += 4
	}
	buf[offset] = s.dacMask
	offset++
	buf[offset] = s.dacAddr
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.dacStage)))
	offset += 4
	copy(buf[offset:], s.dacRGB[:])
	offset += len(s.dacRGB)

	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.bpp)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], s.rowOffset)
	offset += 4

	binary.LittleEndian.PutUint32(buf[offset:], s.readBank)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], s.writeBank)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], s.bankedMask)
	offset += 4

	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.hdisp)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.vdisp)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], s.memaddrLatch)
	offset += 4

	copy(buf[offset:], s.vram)
	offset += len(s.vram)

	return offset
}

// deserialize reads display state and VRAM from buf. Every page is
// marked changed so the next frame re-renders in full.
func (s *SVGA) deserialize(buf []byte, offset int) int {
	copy(s.crtc[:], buf[offset:offset+len(s.crtc)])
	offset += len(s.crtc)
	copy(s.gdc[:], buf[offset:offset+len(s.gdc)])
	offset += len(s.gdc)
	copy(s.seq[:], buf[offset:offset+len(s.seq)])
	offset += len(s.seq)
	s.crtcIdx = buf[offset]
	offset++
	s.gdcIdx = buf[offset]
	offset++
	s.seqIdx = buf[offset]
	offset++

	s.ramdacCtrl = buf[offset]
	offset++
	s.ramdacState = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4

	for i := range s.pal {
		s.pal[i] = binary.LittleEndian.Uint32(buf[offset:])
		offset += 4
	}
	s.dacMask = buf[offset]
	offset++
	s.dacAddr = buf[offset]
	offset++
	s.dacStage = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	copy(s.dacRGB[:], buf[offset:offset+len(s.dacRGB)])
	offset += len(s.dacRGB)

	s.bpp = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.rowOffset = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4

	s.readBank = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	s.writeBank = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	s.bankedMask = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4

	s.hdisp = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.vdisp = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.memaddrLatch = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4

	copy(s.vram, buf[offset:offset+len(s.vram)])
	offset += len(s.vram)

	for i := range s.changed {
		s.changed[i] = true
	}

	return offset
}
