package emu

import (
	"bytes"
	"testing"
)

const testPitch = 640

// fbAddr returns the VRAM byte address of a pixel in the default 8bpp
// test mode.
func fbAddr(x, y int) uint32 {
	return uint32(y*testPitch + x)
}

func TestSolidFillRect(t *testing.T) {
	c := newTestCard(TGUI9440)

	c.OutL(0x2128, flagSolidFill)
	c.OutL(0x212c, 0x5a)
	c.OutW(0x2138, 10) // dst X
	c.OutW(0x213a, 5)  // dst Y
	c.OutW(0x2140, 15) // width - 1
	c.OutW(0x2142, 7)  // height - 1
	c.OutL(0x2124, cmdBitBLT|0xf0<<24)

	for y := 5; y <= 12; y++ {
		for x := 10; x <= 25; x++ {
			if got := c.svga.vram[fbAddr(x, y)]; got != 0x5a {
				t.Fatalf("pixel (%d,%d) = %#x, want 0x5a", x, y, got)
			}
		}
	}
	for _, p := range [][2]int{{9, 5}, {26, 5}, {10, 4}, {10, 13}} {
		if got := c.svga.vram[fbAddr(p[0], p[1])]; got != 0 {
			t.Errorf("pixel (%d,%d) = %#x, want untouched", p[0], p[1], got)
		}
	}
}

func TestScreenToScreenCopy(t *testing.T) {
	c := newTestCard(TGUI9440)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c.svga.vram[fbAddr(x, y)] = uint8(0x10 + y*4 + x)
		}
	}

	c.OutL(0x2128, flagSrcDisp)
	c.OutW(0x213c, 0)   // src X
	c.OutW(0x213e, 0)   // src Y
	c.OutW(0x2138, 100) // dst X
	c.OutW(0x213a, 50)  // dst Y
	c.OutW(0x2140, 3)
	c.OutW(0x2142, 3)
	c.OutL(0x2124, cmdBitBLT|0xcc<<24)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint8(0x10 + y*4 + x)
			if got := c.svga.vram[fbAddr(100+x, 50+y)]; got != want {
				t.Fatalf("pixel (%d,%d) = %#x, want %#x", 100+x, 50+y, got, want)
			}
		}
	}
}

// A reversed copy walks both rectangles from their bottom-right corner,
// producing the same image when the rectangles do not overlap.
func TestReversedCopy(t *testing.T) {
	c := newTestCard(TGUI9440)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c.svga.vram[fbAddr(x, y)] = uint8(1 + y*3 + x)
		}
	}

	c.OutL(0x2128, flagSrcDisp|flagXRev|flagYRev)
	c.OutW(0x213c, 2) // src bottom-right corner
	c.OutW(0x213e, 2)
	c.OutW(0x2138, 22) // dst bottom-right corner
	c.OutW(0x213a, 12)
	c.OutW(0x2140, 2)
	c.OutW(0x2142, 2)
	c.OutL(0x2124, cmdBitBLT|0xcc<<24)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := uint8(1 + y*3 + x)
			if got := c.svga.vram[fbAddr(20+x, 10+y)]; got != want {
				t.Fatalf("pixel (%d,%d) = %#x, want %#x", 20+x, 10+y, got, want)
			}
		}
	}
}

func TestTransparentCopySkipsKeyColor(t *testing.T) {
	c := newTestCard(TGUI9440)

	src := []uint8{0x41, 0x99, 0x42, 0x99}
	for x, v := range src {
		c.svga.vram[fbAddr(x, 0)] = v
	}
	for x := 0; x < 4; x++ {
		c.svga.vram[fbAddr(200+x, 0)] = 0xee
	}

	c.OutL(0x2128, flagSrcDisp|flagTransEna)
	c.OutL(0x2130, 0x99) // bg color doubles as the transparency key
	c.OutW(0x213c, 0)
	c.OutW(0x213e, 0)
	c.OutW(0x2138, 200)
	c.OutW(0x213a, 0)
	c.OutW(0x2140, 3)
	c.OutW(0x2142, 0)
	c.OutL(0x2124, cmdBitBLT|0xcc<<24)

	want := []uint8{0x41, 0xee, 0x42, 0xee}
	for x, w := range want {
		if got := c.svga.vram[fbAddr(200+x, 0)]; got != w {
			t.Errorf("pixel %d = %#x, want %#x", x, got, w)
		}
	}
}

func TestCPUSourcedBlit(t *testing.T) {
	c := newTestCard(TGUI9440)

	c.OutL(0x2128, 0) // raw CPU source
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 0)
	c.OutW(0x2140, 3)
	c.OutW(0x2142, 1)
	c.OutL(0x2124, cmdBitBLT|0xcc<<24)

	// Source-using ROP: the start only arms the engine.
	if c.svga.vram[0] != 0 {
		t.Fatal("engine drew before any source data arrived")
	}

	c.FeedBlitter(32, 0xaabbccdd)
	c.FeedBlitter(32, 0x11223344)

	wantRow0 := []uint8{0xaa, 0xbb, 0xcc, 0xdd}
	wantRow1 := []uint8{0x11, 0x22, 0x33, 0x44}
	for x := 0; x < 4; x++ {
		if got := c.svga.vram[fbAddr(x, 0)]; got != wantRow0[x] {
			t.Errorf("row 0 pixel %d = %#x, want %#x", x, got, wantRow0[x])
		}
		if got := c.svga.vram[fbAddr(x, 1)]; got != wantRow1[x] {
			t.Errorf("row 1 pixel %d = %#x, want %#x", x, got, wantRow1[x])
		}
	}
}

// The same blit fed in byte-sized pieces must produce the same result.
func TestCPUSourcedBlitChunked(t *testing.T) {
	c := newTestCard(TGUI9440)

	c.OutL(0x2128, 0)
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 0)
	c.OutW(0x2140, 3)
	c.OutW(0x2142, 0)
	c.OutL(0x2124, cmdBitBLT|0xcc<<24)

	for _, b := range []uint8{0xde, 0xad, 0xbe, 0xef} {
		c.FeedBlitter(8, uint32(b)<<24)
	}

	want := []uint8{0xde, 0xad, 0xbe, 0xef}
	for x, w := range want {
		if got := c.svga.vram[fbAddr(x, 0)]; got != w {
			t.Errorf("pixel %d = %#x, want %#x", x, got, w)
		}
	}
}

// With the blitter aperture enabled, framebuffer writes feed the
// engine instead of landing in memory, and the redirect clears itself
// when the extent completes.
func TestBlitterApertureFeed(t *testing.T) {
	c := newTestCard(TGUI9440)
	c.OutB(0x3d4, 0x21)
	c.OutB(0x3d5, 0x20)

	c.OutL(0x2128, 0)
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 0)
	c.OutW(0x2140, 3)
	c.OutW(0x2142, 0)
	c.OutL(0x2124, cmdBitBLT|0xcc<<24)

	if !c.writeBlitter {
		t.Fatal("writeBlitter not armed by CPU-sourced start")
	}

	// Word writes stream low byte first, as they land in memory.
	c.FBWriteW(0, 0xbbaa)
	c.FBWriteW(2, 0xddcc)

	want := []uint8{0xaa, 0xbb, 0xcc, 0xdd}
	for x, w := range want {
		if got := c.svga.vram[fbAddr(x, 0)]; got != w {
			t.Errorf("pixel %d = %#x, want %#x", x, got, w)
		}
	}
	if c.writeBlitter {
		t.Error("writeBlitter still set after extent completed")
	}

	// Subsequent writes land in memory again.
	c.FBWriteB(fbAddr(10, 10), 0x77)
	if c.svga.vram[fbAddr(10, 10)] != 0x77 {
		t.Error("framebuffer write after completion did not land")
	}
}

func TestMonoSourceExpansion(t *testing.T) {
	c := newTestCard(TGUI9440)

	c.OutL(0x2128, flagSrcMono|2<<24) // skip 2 left-edge bits per row
	c.OutL(0x212c, 0x01)
	c.OutL(0x2130, 0x02)
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 0)
	c.OutW(0x2140, 5) // 6 pixels wide
	c.OutW(0x2142, 0)
	c.OutL(0x2124, cmdBitBLT|0xcc<<24)

	// 0b10_110100: two skipped bits, then fg fg bg fg bg bg.
	c.FeedBlitter(8, 0xb4<<24)

	want := []uint8{1, 1, 2, 1, 2, 2}
	for x, w := range want {
		if got := c.svga.vram[fbAddr(x, 0)]; got != w {
			t.Errorf("pixel %d = %#x, want %#x", x, got, w)
		}
	}
}

func TestMonoPatternFill(t *testing.T) {
	c := newTestCard(TGUI9440)

	// Alternating columns: bit 7 is the leftmost pixel.
	for y := 0; y < 8; y++ {
		c.OutB(0x2180+uint16(y), 0xaa)
	}
	c.OutL(0x2128, flagPatMono)
	c.OutL(0x212c, 0x0f)
	c.OutL(0x2130, 0xf0)
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 0)
	c.OutW(0x2140, 7)
	c.OutW(0x2142, 0)
	c.OutL(0x2124, cmdBitBLT|0xf0<<24)

	for x := 0; x < 8; x++ {
		want := uint8(0x0f)
		if x&1 == 1 {
			want = 0xf0
		}
		if got := c.svga.vram[fbAddr(x, 0)]; got != want {
			t.Errorf("pixel %d = %#x, want %#x", x, got, want)
		}
	}
}

// Clipping only exists on the 96xx generation; the 9440 ignores the
// clip rectangle and always draws.
func TestClipRectanglePerVariant(t *testing.T) {
	run := func(chip ChipType) *TGUI {
		c := newTestCard(chip)
		c.OutW(0x2148, 0) // left
		c.OutW(0x214a, 0) // top
		c.OutW(0x214c, 5) // right
		c.OutW(0x214e, 5) // bottom
		c.OutL(0x2128, flagSolidFill)
		c.OutL(0x212c, 0x33)
		c.OutW(0x2138, 0)
		c.OutW(0x213a, 0)
		c.OutW(0x2140, 9)
		c.OutW(0x2142, 0)
		c.OutL(0x2124, cmdBitBLT|0xf0<<24)
		return c
	}

	clipped := run(TGUI9660)
	for x := 0; x <= 5; x++ {
		if clipped.svga.vram[fbAddr(x, 0)] != 0x33 {
			t.Errorf("9660 pixel %d inside clip not drawn", x)
		}
	}
	for x := 6; x <= 9; x++ {
		if clipped.svga.vram[fbAddr(x, 0)] != 0 {
			t.Errorf("9660 pixel %d outside clip drawn", x)
		}
	}

	free := run(TGUI9440)
	for x := 0; x <= 9; x++ {
		if free.svga.vram[fbAddr(x, 0)] != 0x33 {
			t.Errorf("9440 pixel %d not drawn; clip must be ignored", x)
		}
	}
}

func TestBresenhamHorizontalLine(t *testing.T) {
	c := newTestCard(TGUI9440)

	c.OutL(0x2128, 0) // octant 0: major step east
	c.OutL(0x212c, 0xcd)
	c.OutW(0x2138, 20)
	c.OutW(0x213a, 30)
	c.OutW(0x2142, 5) // pixel count
	c.OutW(0x213e, 0) // axial constant
	// Error term stays negative the whole run.
	c.OutB(0x2140, 0xfb)
	c.OutB(0x2141, 0x3f)
	c.OutL(0x2124, cmdBresenhamLine|0xf0<<24)

	for x := 20; x <= 25; x++ {
		if got := c.svga.vram[fbAddr(x, 30)]; got != 0xcd {
			t.Errorf("pixel (%d,30) = %#x, want 0xcd", x, got)
		}
	}
	if c.svga.vram[fbAddr(26, 30)] != 0 {
		t.Error("line overran its pixel count")
	}
}

func TestBresenhamDiagonalLine(t *testing.T) {
	c := newTestCard(TGUI9440)

	// Octant 0 with the error term always non-negative steps the
	// minor axis every pixel: a perfect diagonal.
	c.OutL(0x2128, 0)
	c.OutL(0x212c, 0xcd)
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 0)
	c.OutW(0x2142, 4)
	c.OutW(0x213c, 0) // diagonal constant keeps the term non-negative
	c.OutW(0x2140, 0)
	c.OutL(0x2124, cmdBresenhamLine|0xf0<<24)

	for i := 0; i <= 4; i++ {
		if got := c.svga.vram[fbAddr(i, i)]; got != 0xcd {
			t.Errorf("pixel (%d,%d) = %#x, want 0xcd", i, i, got)
		}
	}
}

func TestShortVector(t *testing.T) {
	c := newTestCard(TGUI9440)

	c.OutL(0x2128, 0)
	c.OutL(0x212c, 0x44)
	c.OutW(0x2138, 10)
	c.OutW(0x213a, 10)
	c.OutW(0x2142, 0xe004) // southeast diagonal, 4 steps
	c.OutL(0x2124, cmdShortVector|0xf0<<24)

	for i := 0; i <= 4; i++ {
		if got := c.svga.vram[fbAddr(10+i, 10+i)]; got != 0x44 {
			t.Errorf("pixel (%d,%d) = %#x, want 0x44", 10+i, 10+i, got)
		}
	}
	if c.svga.vram[fbAddr(15, 15)] != 0 {
		t.Error("vector overran its step count")
	}
}

func TestFastLinePerVariant(t *testing.T) {
	run := func(chip ChipType) *TGUI {
		c := newTestCard(chip)
		c.OutW(0x214c, 0xfff) // clip wide open on variants that clip
		c.OutW(0x214e, 0xfff)
		c.OutL(0x2128, 0)
		c.OutL(0x212c, 0x55)
		c.OutW(0x2138, 0)
		c.OutW(0x213a, 0)
		c.OutW(0x2142, 5)
		c.OutL(0x2124, cmdFastLine|0xf0<<24)
		return c
	}

	drawn := run(TGUI9660)
	for x := 0; x <= 5; x++ {
		if drawn.svga.vram[fbAddr(x, 0)] != 0x55 {
			t.Errorf("9660 fast line pixel %d missing", x)
		}
	}

	ignored := run(TGUI9440)
	for x := 0; x <= 5; x++ {
		if ignored.svga.vram[fbAddr(x, 0)] != 0 {
			t.Errorf("9440 executed fast line; it must ignore the command")
		}
	}
}

// The scanline command draws exactly one row of the extent per start.
func TestScanlineSingleRow(t *testing.T) {
	c := newTestCard(TGUI9440)

	for x := 0; x < 4; x++ {
		c.svga.vram[fbAddr(x, 0)] = uint8(0x60 + x)
	}

	c.OutL(0x2128, flagSrcDisp)
	c.OutW(0x213c, 0)
	c.OutW(0x213e, 0)
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 100)
	c.OutW(0x2140, 3)
	c.OutW(0x2142, 7)
	c.OutL(0x2124, cmdScanline|0xcc<<24)

	for x := 0; x < 4; x++ {
		if got := c.svga.vram[fbAddr(x, 100)]; got != uint8(0x60+x) {
			t.Errorf("row pixel %d = %#x, want %#x", x, got, 0x60+x)
		}
	}
	if c.svga.vram[fbAddr(0, 101)] != 0 {
		t.Error("scanline drew more than one row")
	}
}

func TestCopyFidelitySizes(t *testing.T) {
	for _, size := range []int{1, 8, 17, 64} {
		c := newTestCard(TGUI9440)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c.svga.vram[fbAddr(x, y)] = uint8(1 + (y*size+x)&0x7f)
			}
		}

		c.OutL(0x2128, flagSrcDisp)
		c.OutW(0x213c, 0)
		c.OutW(0x213e, 0)
		c.OutW(0x2138, 200)
		c.OutW(0x213a, 100)
		c.OutW(0x2140, uint16(size-1))
		c.OutW(0x2142, uint16(size-1))
		c.OutL(0x2124, cmdBitBLT|0xcc<<24)

		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				want := uint8(1 + (y*size+x)&0x7f)
				if got := c.svga.vram[fbAddr(200+x, 100+y)]; got != want {
					t.Fatalf("size %d: pixel (%d,%d) = %#x, want %#x", size, x, y, got, want)
				}
			}
		}
	}
}

func TestSolidFillIdempotent(t *testing.T) {
	fill := func(c *TGUI) {
		c.OutL(0x2128, flagSolidFill)
		c.OutL(0x212c, 0x77)
		c.OutW(0x2138, 30)
		c.OutW(0x213a, 40)
		c.OutW(0x2140, 9)
		c.OutW(0x2142, 9)
		c.OutL(0x2124, cmdBitBLT|0xf0<<24)
	}

	c := newTestCard(TGUI9440)
	fill(c)
	once := append([]byte(nil), c.svga.vram...)
	fill(c)

	for i, b := range c.svga.vram {
		if b != once[i] {
			t.Fatalf("vram[%#x] changed on the second fill: %#x -> %#x", i, once[i], b)
		}
	}
}

// Streaming the same source data in 1, 2 and 4 byte chunks must leave
// identical framebuffer contents.
func TestStreamingChunkEquivalence(t *testing.T) {
	data := make([]uint8, 16)
	for i := range data {
		data[i] = uint8(0xc0 + i)
	}

	run := func(feed func(c *TGUI)) []byte {
		c := newTestCard(TGUI9440)
		c.OutL(0x2128, 0)
		c.OutW(0x213c, 0)
		c.OutW(0x213e, 0)
		c.OutW(0x2138, 100)
		c.OutW(0x213a, 100)
		c.OutW(0x2140, 3)
		c.OutW(0x2142, 3)
		c.OutL(0x2124, cmdBitBLT|0xcc<<24)
		feed(c)
		return append([]byte(nil), c.svga.vram...)
	}

	byBytes := run(func(c *TGUI) {
		for _, b := range data {
			c.FeedBlitter(8, uint32(b)<<24)
		}
	})
	byWords := run(func(c *TGUI) {
		for i := 0; i < len(data); i += 2 {
			c.FeedBlitter(16, uint32(data[i])<<24|uint32(data[i+1])<<16)
		}
	})
	byDwords := run(func(c *TGUI) {
		for i := 0; i < len(data); i += 4 {
			c.FeedBlitter(32, uint32(data[i])<<24|uint32(data[i+1])<<16|
				uint32(data[i+2])<<8|uint32(data[i+3]))
		}
	})

	if !bytes.Equal(byBytes, byWords) {
		t.Error("byte and word feeds disagree")
	}
	if !bytes.Equal(byBytes, byDwords) {
		t.Error("byte and dword feeds disagree")
	}
	if got := byBytes[fbAddr(100, 100)]; got != 0xc0 {
		t.Errorf("first pixel = %#x, want 0xc0", got)
	}
}

// A 7-by-3 line covers max(dx,dy)+1 pixels, monotonic along the major
// axis.
func TestBresenhamLineCoverage(t *testing.T) {
	c := newTestCard(TGUI9440)

	// dx=7, dy=3, octant 0: error 2dy-dx, diagonal 2(dy-dx), axial 2dy.
	errTerm := int16(2*3 - 7)
	diag := int16(2 * (3 - 7))
	c.OutW(0x2138, 0)
	c.OutW(0x213a, 0)
	c.OutW(0x2140, uint16(errTerm)&0x3fff)
	c.OutW(0x213c, uint16(diag)&0x3fff)
	c.OutW(0x213e, 2*3)
	c.OutW(0x2142, 7)
	c.OutL(0x2128, 0)
	c.OutL(0x212c, 0x33)
	c.OutL(0x2124, cmdBresenhamLine|0xf0<<24)

	want := [][2]int{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 2}, {6, 3}, {7, 3}}
	plotted := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if c.svga.vram[fbAddr(x, y)] != 0 {
				plotted++
			}
		}
	}
	if plotted != len(want) {
		t.Errorf("plotted %d pixels, want %d", plotted, len(want))
	}
	for _, p := range want {
		if got := c.svga.vram[fbAddr(p[0], p[1])]; got != 0x33 {
			t.Errorf("pixel (%d,%d) = %#x, want 0x33", p[0], p[1], got)
		}
	}
}
