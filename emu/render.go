package emu

import "encoding/binary"

// Display geometry limits. The default mode is 640x480; high resolution
// modes on the 96xx go up to 1024x768.
const (
	ScreenWidth         = 640
	DefaultScreenHeight = 480
	MaxScreenWidth      = 1024
	MaxScreenHeight     = 768
)

// Width returns the programmed horizontal display width in pixels,
// clamped to the renderable maximum.
func (s *SVGA) Width() int {
	w := s.hdisp
	if w < 1 {
		w = 1
	}
	if w > MaxScreenWidth {
		w = MaxScreenWidth
	}
	return w
}

// Height returns the programmed vertical display height in scanlines,
// clamped to the renderable maximum.
func (s *SVGA) Height() int {
	h := s.vdisp
	if h < 1 {
		h = 1
	}
	if h > MaxScreenHeight {
		h = MaxScreenHeight
	}
	return h
}

// RenderRGBA converts the visible framebuffer into 8-bit RGBA rows in
// out, which must hold Width()*Height()*4 bytes. The scan start and
// stride come from the CRTC; pixels decode per the active depth.
func (s *SVGA) RenderRGBA(out []byte) {
	width := s.Width()
	height := s.Height()
	rowBytes := s.rowOffset << 3
	base := s.memaddrLatch << 2

	di := 0
	for y := 0; y < height; y++ {
		row := base + uint32(y)*rowBytes
		for x := 0; x < width; x++ {
			var r, g, b uint8
			switch s.bpp {
			case 15:
				v := binary.LittleEndian.Uint16(s.pixBytes(row+uint32(x)*2, 2))
				r = uint8(v>>10&0x1f) << 3
				g = uint8(v>>5&0x1f) << 3
				b = uint8(v&0x1f) << 3
			case 16:
				v := binary.LittleEndian.Uint16(s.pixBytes(row+uint32(x)*2, 2))
				r = uint8(v>>11&0x1f) << 3
				g = uint8(v>>5&0x3f) << 2
				b = uint8(v&0x1f) << 3
			case 24:
				p := s.pixBytes(row+uint32(x)*3, 3)
				b, g, r = p[0], p[1], p[2]
			case 32:
				p := s.pixBytes(row+uint32(x)*4, 4)
				b, g, r = p[0], p[1], p[2]
			default:
				c := s.pal[s.vram[(row+uint32(x))&s.vramMask]]
				r = uint8(c >> 16)
				g = uint8(c >> 8)
				b = uint8(c)
			}
			out[di] = r
			out[di+1] = g
			out[di+2] = b
			out[di+3] = 0xff
			di += 4
		}
	}
}

// pixBytes returns n VRAM bytes starting at addr, copying only when the
// span wraps the VRAM boundary.
func (s *SVGA) pixBytes(addr uint32, n int) []byte {
	a := addr & s.vramMask
	if int(a)+n <= len(s.vram) {
		return s.vram[a : int(a)+n]
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = s.vram[(addr+uint32(i))&s.vramMask]
	}
	return buf
}
