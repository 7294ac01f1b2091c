package emu

import "testing"

// setGDC programs one graphics controller register through the ports.
func setGDC(c *TGUI, idx, val uint8) {
	c.OutB(0x3ce, idx)
	c.OutB(0x3cf, val)
}

func TestDwordRemap(t *testing.T) {
	tests := []struct {
		in, want uint32
	}{
		{0x00000, 0x00000},
		{0x00001, 0x00005},
		{0x00004, 0x00010},
		{0x04000, 0x10000},
		{0x10000, 0x00004},
		{0x40000, 0x40000},
	}
	for _, tt := range tests {
		if got := dwordRemap(tt.in); got != tt.want {
			t.Errorf("dwordRemap(%#x) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestExtMonoExpansion(t *testing.T) {
	c := newTestCard(TGUI9400CXi)
	setGDC(c, 0x10, extCtrlMonoExpansion)
	setGDC(c, 0x14, 0xab) // foreground
	setGDC(c, 0x11, 0xcd) // background
	setGDC(c, 0x17, 0xff) // plane mask

	c.FBWriteB(0, 0xa0)

	// Bits stream out MSB first through the remapped group: one byte
	// within each group of four, then a hop to the next group.
	want := map[uint32]uint8{
		0x00: 0xab, 0x01: 0xcd, 0x02: 0xab, 0x03: 0xcd,
		0x10: 0xcd, 0x11: 0xcd, 0x12: 0xcd, 0x13: 0xcd,
	}
	for addr, w := range want {
		if got := c.svga.vram[addr]; got != w {
			t.Errorf("vram[%#x] = %#x, want %#x", addr, got, w)
		}
	}
}

func TestExtMonoExpansionPlaneMask(t *testing.T) {
	c := newTestCard(TGUI9400CXi)
	setGDC(c, 0x10, extCtrlMonoExpansion)
	setGDC(c, 0x14, 0xab)
	setGDC(c, 0x11, 0xcd)
	setGDC(c, 0x17, 0x80) // only the first pixel of the group

	c.FBWriteB(0, 0xff)

	if c.svga.vram[0] != 0xab {
		t.Errorf("vram[0] = %#x, want 0xab", c.svga.vram[0])
	}
	for _, addr := range []uint32{1, 2, 3, 0x10} {
		if c.svga.vram[addr] != 0 {
			t.Errorf("vram[%#x] = %#x, masked byte must stay untouched", addr, c.svga.vram[addr])
		}
	}
}

func TestExtMonoTransparent(t *testing.T) {
	c := newTestCard(TGUI9400CXi)
	setGDC(c, 0x10, extCtrlMonoExpansion|extCtrlMonoTransparent)
	setGDC(c, 0x14, 0xab)
	setGDC(c, 0x11, 0xcd)
	setGDC(c, 0x17, 0xff)

	c.FBWriteB(0, 0x80)

	if c.svga.vram[0] != 0xab {
		t.Errorf("vram[0] = %#x, want foreground", c.svga.vram[0])
	}
	// Zero bits write nothing in transparent mode.
	if c.svga.vram[1] != 0 {
		t.Errorf("vram[1] = %#x, transparent zero bit must not write", c.svga.vram[1])
	}
}

func TestExtLatchCopy(t *testing.T) {
	c := newTestCard(TGUI9400CXi)
	setGDC(c, 0x10, extCtrlLatchCopy)

	// Fill the source group in its remapped layout.
	srcAddrs := []uint32{0x00, 0x01, 0x02, 0x03, 0x10, 0x11, 0x12, 0x13}
	for i, a := range srcAddrs {
		c.svga.vram[a] = uint8(0x30 + i)
	}

	// A read loads the 16-byte copy latch.
	c.FBReadB(0)
	for i, a := range srcAddrs {
		if c.copyLatch[i] != c.svga.vram[a] {
			t.Fatalf("copyLatch[%d] = %#x, want %#x", i, c.copyLatch[i], c.svga.vram[a])
		}
	}

	// A write with all bits set copies the latch to the destination
	// group; dest 0x40 remaps to 0x100.
	c.FBWriteB(0x40, 0xff)
	dstAddrs := []uint32{0x100, 0x101, 0x102, 0x103, 0x110, 0x111, 0x112, 0x113}
	for i, a := range dstAddrs {
		if got := c.svga.vram[a]; got != uint8(0x30+i) {
			t.Errorf("vram[%#x] = %#x, want %#x", a, got, 0x30+i)
		}
	}
}

// On chips without the dword remap the extended control bits do
// nothing; framebuffer writes land directly.
func TestExtModesOnlyOn9400CXi(t *testing.T) {
	c := newTestCard(TGUI9440)
	setGDC(c, 0x10, extCtrlMonoExpansion)
	setGDC(c, 0x17, 0xff)

	c.FBWriteB(5, 0x77)
	if c.svga.vram[5] != 0x77 {
		t.Errorf("vram[5] = %#x, want plain write on 9440", c.svga.vram[5])
	}
}
