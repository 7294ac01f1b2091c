package emu

import "testing"

func TestRopTable(t *testing.T) {
	const d, s, p = 0xAA, 0xCC, 0xF0

	tests := []struct {
		name string
		rop  uint8
		want uint32
	}{
		{"blackness", 0x00, 0x00},
		{"notsrcerase", 0x11, ^uint32(d | s)},
		{"srcand", 0x88, d & s},
		{"dstnop", 0xAA, d},
		{"srccopy", 0xCC, s},
		{"srcxor", 0x66, d ^ s},
		{"srcpaint", 0xEE, d | s},
		{"patcopy", 0xF0, p},
		{"patxor", 0x5A, d ^ p},
		{"patnot", 0x0F, ^uint32(p)},
		{"srcnot", 0x33, ^uint32(s)},
		{"dstinvert", 0x55, ^uint32(d)},
		{"whiteness", 0xFF, ^uint32(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ropTable[tt.rop](d, s, p)
			if got != tt.want {
				t.Errorf("rop %#02x = %#x, want %#x", tt.rop, got, tt.want)
			}
		})
	}
}

// Every function of (d, p) alone must be classified as source free, and
// anything that mixes s in must not be.
func TestRopUsesSource(t *testing.T) {
	tests := []struct {
		rop  uint8
		want bool
	}{
		{0x00, false},
		{0xFF, false},
		{0xAA, false},
		{0xF0, false},
		{0x5A, false},
		{0xCC, true},
		{0x66, true},
		{0x88, true},
		{0xEE, true},
		{0x11, true},
	}

	for _, tt := range tests {
		if got := ropUsesSource(tt.rop); got != tt.want {
			t.Errorf("ropUsesSource(%#02x) = %v, want %v", tt.rop, got, tt.want)
		}
	}
}

// The classification must agree with the table: a rop is source free
// exactly when its output never changes with s.
func TestRopUsesSourceMatchesTable(t *testing.T) {
	for rop := 0; rop < 256; rop++ {
		varies := false
		for _, d := range []uint32{0x00, 0xFF, 0xA5} {
			for _, p := range []uint32{0x00, 0xFF, 0x3C} {
				if ropTable[rop](d, 0x00, p)&0xff != ropTable[rop](d, 0xFF, p)&0xff {
					varies = true
				}
			}
		}
		if got := ropUsesSource(uint8(rop)); got != varies {
			t.Errorf("ropUsesSource(%#02x) = %v, but table varies with source: %v", rop, got, varies)
		}
	}
}
