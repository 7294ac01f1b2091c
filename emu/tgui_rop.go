package emu

// ropFunc is one ternary raster operation: destination, source and
// pattern in, result out. Operands are already masked to the active
// pixel-width class by the caller.
type ropFunc func(d, s, p uint32) uint32

// ropTable holds all 256 ternary raster operations, indexed by the 8-bit
// ROP code. The expressions follow the standard BitBlt ROP3 enumeration;
// drivers probe arbitrary codes so every entry matters.
var ropTable = [256]ropFunc{
	0x00: func(d, s, p uint32) uint32 { return 0 },
	0x01: func(d, s, p uint32) uint32 { return ^(d | (p | s)) },
	0x02: func(d, s, p uint32) uint32 { return d & ^(p | s) },
	0x03: func(d, s, p uint32) uint32 { return ^(p | s) },
	0x04: func(d, s, p uint32) uint32 { return s & ^(d | p) },
	0x05: func(d, s, p uint32) uint32 { return ^(d | p) },
	0x06: func(d, s, p uint32) uint32 { return ^(p | ^(d ^ s)) },
	0x07: func(d, s, p uint32) uint32 { return ^(p | (d & s)) },
	0x08: func(d, s, p uint32) uint32 { return s & (d & ^p) },
	0x09: func(d, s, p uint32) uint32 { return ^(p | (d ^ s)) },
	0x0a: func(d, s, p uint32) uint32 { return d & ^p },
	0x0b: func(d, s, p uint32) uint32 { return ^(p | (s & ^d)) },
	0x0c: func(d, s, p uint32) uint32 { return s & ^p },
	0x0d: func(d, s, p uint32) uint32 { return ^(p | (d & ^s)) },
	0x0e: func(d, s, p uint32) uint32 { return ^(p | ^(d | s)) },
	0x0f: func(d, s, p uint32) uint32 { return ^p },
	0x10: func(d, s, p uint32) uint32 { return p & ^(d | s) },
	0x11: func(d, s, p uint32) uint32 { return ^(d | s) },
	0x12: func(d, s, p uint32) uint32 { return ^(s | ^(d ^ p)) },
	0x13: func(d, s, p uint32) uint32 { return ^(s | (d & p)) },
	0x14: func(d, s, p uint32) uint32 { return ^(d | ^(p ^ s)) },
	0x15: func(d, s, p uint32) uint32 { return ^(d | (p & s)) },
	0x16: func(d, s, p uint32) uint32 { return p ^ (s ^ (d & ^(p & s))) },
	0x17: func(d, s, p uint32) uint32 { return ^(s ^ ((s ^ p) & (d ^ s))) },
	0x18: func(d, s, p uint32) uint32 { return (s ^ p) & (p ^ d) },
	0x19: func(d, s, p uint32) uint32 { return ^(s ^ (d & ^(p & s))) },
	0x1a: func(d, s, p uint32) uint32 { return p ^ (d | (s & p)) },
	0x1b: func(d, s, p uint32) uint32 { return ^(s ^ (d & (p ^ s))) },
	0x1c: func(d, s, p uint32) uint32 { return p ^ (s | (d & p)) },
	0x1d: func(d, s, p uint32) uint32 { return ^(d ^ (s & (p ^ d))) },
	0x1e: func(d, s, p uint32) uint32 { return p ^ (d | s) },
	0x1f: func(d, s, p uint32) uint32 { return ^(p & (d | s)) },
	0x20: func(d, s, p uint32) uint32 { return d & (p & ^s) },
	0x21: func(d, s, p uint32) uint32 { return ^(s | (d ^ p)) },
	0x22: func(d, s, p uint32) uint32 { return d & ^s },
	0x23: func(d, s, p uint32) uint32 { return ^(s | (p & ^d)) },
	0x24: func(d, s, p uint32) uint32 { return (s ^ p) & (d ^ s) },
	0x25: func(d, s, p uint32) uint32 { return ^(p ^ (d & ^(s & p))) },
	0x26: func(d, s, p uint32) uint32 { return s ^ (d | (p & s)) },
	0x27: func(d, s, p uint32) uint32 { return s ^ (d | ^(p ^ s)) },
	0x28: func(d, s, p uint32) uint32 { return d & (p ^ s) },
	0x29: func(d, s, p uint32) uint32 { return ^(p ^ (s ^ (d | (p & s)))) },
	0x2a: func(d, s, p uint32) uint32 { return d & ^(p & s) },
	0x2b: func(d, s, p uint32) uint32 { return ^(s ^ ((s ^ p) & (p ^ d))) },
	0x2c: func(d, s, p uint32) uint32 { return s ^ (p & (d | s)) },
	0x2d: func(d, s, p uint32) uint32 { return p ^ (s | ^d) },
	0x2e: func(d, s, p uint32) uint32 { return p ^ (s | (d ^ p)) },
	0x2f: func(d, s, p uint32) uint32 { return ^(p & (s | ^d)) },
	0x30: func(d, s, p uint32) uint32 { return p & ^s },
	0x31: func(d, s, p uint32) uint32 { return ^(s | (d & ^p)) },
	0x32: func(d, s, p uint32) uint32 { return s ^ (d | (p | s)) },
	0x33: func(d, s, p uint32) uint32 { return ^s },
	0x34: func(d, s, p uint32) uint32 { return s ^ (p | (d & s)) },
	0x35: func(d, s, p uint32) uint32 { return s ^ (p | ^(d ^ s)) },
	0x36: func(d, s, p uint32) uint32 { return s ^ (d | p) },
	0x37: func(d, s, p uint32) uint32 { return ^(s & (d | p)) },
	0x38: func(d, s, p uint32) uint32 { return p ^ (s & (d | p)) },
	0x39: func(d, s, p uint32) uint32 { return s ^ (p | ^d) },
	0x3a: func(d, s, p uint32) uint32 { return s ^ (p | (d ^ s)) },
	0x3b: func(d, s, p uint32) uint32 { return ^(s & (p | ^d)) },
	0x3c: func(d, s, p uint32) uint32 { return p ^ s },
	0x3d: func(d, s, p uint32) uint32 { return s ^ (p | ^(d | s)) },
	0x3e: func(d, s, p uint32) uint32 { return s ^ (p | (d & ^s)) },
	0x3f: func(d, s, p uint32) uint32 { return ^(p & s) },
	0x40: func(d, s, p uint32) uint32 { return p & (s & ^d) },
	0x41: func(d, s, p uint32) uint32 { return ^(d | (p ^ s)) },
	0x42: func(d, s, p uint32) uint32 { return (s ^ d) & (p ^ d) },
	0x43: func(d, s, p uint32) uint32 { return ^(s ^ (p & ^(d & s))) },
	0x44: func(d, s, p uint32) uint32 { return s & ^d },
	0x45: func(d, s, p uint32) uint32 { return ^(d | (p & ^s)) },
	0x46: func(d, s, p uint32) uint32 { return d ^ (s | (p & d)) },
	0x47: func(d, s, p uint32) uint32 { return ^(p ^ (s & (d ^ p))) },
	0x48: func(d, s, p uint32) uint32 { return s & (d ^ p) },
	0x49: func(d, s, p uint32) uint32 { return ^(p ^ (d ^ (s | (p & d)))) },
	0x4a: func(d, s, p uint32) uint32 { return d ^ (p & (s | d)) },
	0x4b: func(d, s, p uint32) uint32 { return p ^ (d | ^s) },
	0x4c: func(d, s, p uint32) uint32 { return s & ^(d & p) },
	0x4d: func(d, s, p uint32) uint32 { return ^(s ^ ((s ^ p) | (d ^ s))) },
	0x4e: func(d, s, p uint32) uint32 { return p ^ (d | (s ^ p)) },
	0x4f: func(d, s, p uint32) uint32 { return ^(p & (d | ^s)) },
	0x50: func(d, s, p uint32) uint32 { return p & ^d },
	0x51: func(d, s, p uint32) uint32 { return ^(d | (s & ^p)) },
	0x52: func(d, s, p uint32) uint32 { return d ^ (p | (s & d)) },
	0x53: func(d, s, p uint32) uint32 { return ^(s ^ (p & (d ^ s))) },
	0x54: func(d, s, p uint32) uint32 { return ^(d | ^(p | s)) },
	0x55: func(d, s, p uint32) uint32 { return ^d },
	0x56: func(d, s, p uint32) uint32 { return d ^ (p | s) },
	0x57: func(d, s, p uint32) uint32 { return ^(d & (p | s)) },
	0x58: func(d, s, p uint32) uint32 { return p ^ (d & (s | p)) },
	0x59: func(d, s, p uint32) uint32 { return d ^ (p | ^s) },
	0x5a: func(d, s, p uint32) uint32 { return d ^ p },
	0x5b: func(d, s, p uint32) uint32 { return d ^ (p | ^(s | d)) },
	0x5c: func(d, s, p uint32) uint32 { return d ^ (p | (s ^ d)) },
	0x5d: func(d, s, p uint32) uint32 { return ^(d & (p | ^s)) },
	0x5e: func(d, s, p uint32) uint32 { return d ^ (p | (s & ^d)) },
	0x5f: func(d, s, p uint32) uint32 { return ^(d & p) },
	0x60: func(d, s, p uint32) uint32 { return p & (d ^ s) },
	0x61: func(d, s, p uint32) uint32 { return ^(d ^ (s ^ (p | (d & s)))) },
	0x62: func(d, s, p uint32) uint32 { return d ^ (s & (p | d)) },
	0x63: func(d, s, p uint32) uint32 { return s ^ (d | ^p) },
	0x64: func(d, s, p uint32) uint32 { return s ^ (d & (p | s)) },
	0x65: func(d, s, p uint32) uint32 { return d ^ (s | ^p) },
	0x66: func(d, s, p uint32) uint32 { return d ^ s },
	0x67: func(d, s, p uint32) uint32 { return s ^ (d | ^(p | s)) },
	0x68: func(d, s, p uint32) uint32 { return ^(d ^ (s ^ (p | ^(d | s)))) },
	0x69: func(d, s, p uint32) uint32 { return ^(p ^ (d ^ s)) },
	0x6a: func(d, s, p uint32) uint32 { return d ^ (p & s) },
	0x6b: func(d, s, p uint32) uint32 { return ^(p ^ (s ^ (d & (p | s)))) },
	0x6c: func(d, s, p uint32) uint32 { return s ^ (d & p) },
	0x6d: func(d, s, p uint32) uint32 { return ^(p ^ (d ^ (s & (p | d)))) },
	0x6e: func(d, s, p uint32) uint32 { return s ^ (d & (p | ^s)) },
	0x6f: func(d, s, p uint32) uint32 { return ^(p & ^(d ^ s)) },
	0x70: func(d, s, p uint32) uint32 { return p & ^(d & s) },
	0x71: func(d, s, p uint32) uint32 { return ^(s ^ ((s ^ d) & (p ^ d))) },
	0x72: func(d, s, p uint32) uint32 { return s ^ (d | (p ^ s)) },
	0x73: func(d, s, p uint32) uint32 { return ^(s & (d | ^p)) },
	0x74: func(d, s, p uint32) uint32 { return d ^ (s | (p ^ d)) },
	0x75: func(d, s, p uint32) uint32 { return ^(d & (s | ^p)) },
	0x76: func(d, s, p uint32) uint32 { return s ^ (d | (p & ^s)) },
	0x77: func(d, s, p uint32) uint32 { return ^(d & s) },
	0x78: func(d, s, p uint32) uint32 { return p ^ (d & s) },
	0x79: func(d, s, p uint32) uint32 { return ^(d ^ (s ^ (p & (d | s)))) },
	0x7a: func(d, s, p uint32) uint32 { return d ^ (p & (s | ^d)) },
	0x7b: func(d, s, p uint32) uint32 { return ^(s & ^(d ^ p)) },
	0x7c: func(d, s, p uint32) uint32 { return s ^ (p & (d | ^s)) },
	0x7d: func(d, s, p uint32) uint32 { return ^(d & ^(p ^ s)) },
	0x7e: func(d, s, p uint32) uint32 { return (s ^ p) | (d ^ s) },
	0x7f: func(d, s, p uint32) uint32 { return ^(d & (p & s)) },
	0x80: func(d, s, p uint32) uint32 { return d & (p & s) },
	0x81: func(d, s, p uint32) uint32 { return ^((s ^ p) | (d ^ s)) },
	0x82: func(d, s, p uint32) uint32 { return d & ^(p ^ s) },
	0x83: func(d, s, p uint32) uint32 { return ^(s ^ (p & (d | ^s))) },
	0x84: func(d, s, p uint32) uint32 { return s & ^(d ^ p) },
	0x85: func(d, s, p uint32) uint32 { return ^(p ^ (d & (s | ^p))) },
	0x86: func(d, s, p uint32) uint32 { return d ^ (s ^ (p & (d | s))) },
	0x87: func(d, s, p uint32) uint32 { return ^(p ^ (d & s)) },
	0x88: func(d, s, p uint32) uint32 { return d & s },
	0x89: func(d, s, p uint32) uint32 { return ^(s ^ (d | (p & ^s))) },
	0x8a: func(d, s, p uint32) uint32 { return d & (s | ^p) },
	0x8b: func(d, s, p uint32) uint32 { return ^(d ^ (s | (p ^ d))) },
	0x8c: func(d, s, p uint32) uint32 { return s & (d | ^p) },
	0x8d: func(d, s, p uint32) uint32 { return ^(s ^ (d | (p ^ s))) },
	0x8e: func(d, s, p uint32) uint32 { return s ^ ((s ^ d) & (p ^ d)) },
	0x8f: func(d, s, p uint32) uint32 { return ^(p & ^(d & s)) },
	0x90: func(d, s, p uint32) uint32 { return p & ^(d ^ s) },
	0x91: func(d, s, p uint32) uint32 { return ^(s ^ (d & (p | ^s))) },
	0x92: func(d, s, p uint32) uint32 { return d ^ (p ^ (s & (d | p))) },
	0x93: func(d, s, p uint32) uint32 { return ^(s ^ (p & d)) },
	0x94: func(d, s, p uint32) uint32 { return p ^ (s ^ (d & (p | s))) },
	0x95: func(d, s, p uint32) uint32 { return ^(d ^ (p & s)) },
	0x96: func(d, s, p uint32) uint32 { return d ^ (p ^ s) },
	0x97: func(d, s, p uint32) uint32 { return p ^ (s ^ (d | ^(p | s))) },
	0x98: func(d, s, p uint32) uint32 { return ^(s ^ (d | ^(p | s))) },
	0x99: func(d, s, p uint32) uint32 { return ^(d ^ s) },
	0x9a: func(d, s, p uint32) uint32 { return d ^ (p & ^s) },
	0x9b: func(d, s, p uint32) uint32 { return ^(s ^ (d & (p | s))) },
	0x9c: func(d, s, p uint32) uint32 { return s ^ (p & ^d) },
	0x9d: func(d, s, p uint32) uint32 { return ^(d ^ (s & (p | d))) },
	0x9e: func(d, s, p uint32) uint32 { return d ^ (s ^ (p | (d & s))) },
	0x9f: func(d, s, p uint32) uint32 { return ^(p & (d ^ s)) },
	0xa0: func(d, s, p uint32) uint32 { return d & p },
	0xa1: func(d, s, p uint32) uint32 { return ^(p ^ (d | (s & ^p))) },
	0xa2: func(d, s, p uint32) uint32 { return d & (p | ^s) },
	0xa3: func(d, s, p uint32) uint32 { return ^(d ^ (p | (s ^ d))) },
	0xa4: func(d, s, p uint32) uint32 { return ^(p ^ (d | ^(s | p))) },
	0xa5: func(d, s, p uint32) uint32 { return ^(p ^ d) },
	0xa6: func(d, s, p uint32) uint32 { return d ^ (s & ^p) },
	0xa7: func(d, s, p uint32) uint32 { return ^(p ^ (d & (s | p))) },
	0xa8: func(d, s, p uint32) uint32 { return d & (p | s) },
	0xa9: func(d, s, p uint32) uint32 { return ^(d ^ (p | s)) },
	0xaa: func(d, s, p uint32) uint32 { return d },
	0xab: func(d, s, p uint32) uint32 { return d | ^(p | s) },
	0xac: func(d, s, p uint32) uint32 { return s ^ (p & (d ^ s)) },
	0xad: func(d, s, p uint32) uint32 { return ^(d ^ (p | (s & d))) },
	0xae: func(d, s, p uint32) uint32 { return d | (s & ^p) },
	0xaf: func(d, s, p uint32) uint32 { return d | ^p },
	0xb0: func(d, s, p uint32) uint32 { return p & (d | ^s) },
	0xb1: func(d, s, p uint32) uint32 { return ^(p ^ (d | (s ^ p))) },
	0xb2: func(d, s, p uint32) uint32 { return s ^ ((s ^ p) | (d ^ s)) },
	0xb3: func(d, s, p uint32) uint32 { return ^(s & ^(d & p)) },
	0xb4: func(d, s, p uint32) uint32 { return p ^ (s & ^d) },
	0xb5: func(d, s, p uint32) uint32 { return ^(d ^ (p & (s | d))) },
	0xb6: func(d, s, p uint32) uint32 { return d ^ (p ^ (s | (d & p))) },
	0xb7: func(d, s, p uint32) uint32 { return ^(s & (d ^ p)) },
	0xb8: func(d, s, p uint32) uint32 { return p ^ (s & (d ^ p)) },
	0xb9: func(d, s, p uint32) uint32 { return ^(d ^ (s | (p & d))) },
	0xba: func(d, s, p uint32) uint32 { return d | (p & ^s) },
	0xbb: func(d, s, p uint32) uint32 { return d | ^s },
	0xbc: func(d, s, p uint32) uint32 { return s ^ (p & ^(d & s)) },
	0xbd: func(d, s, p uint32) uint32 { return ^((s ^ d) & (p ^ d)) },
	0xbe: func(d, s, p uint32) uint32 { return d | (p ^ s) },
	0xbf: func(d, s, p uint32) uint32 { return d | ^(p & s) },
	0xc0: func(d, s, p uint32) uint32 { return p & s },
	0xc1: func(d, s, p uint32) uint32 { return ^(s ^ (p | (d & ^s))) },
	0xc2: func(d, s, p uint32) uint32 { return ^(s ^ (p | ^(d | s))) },
	0xc3: func(d, s, p uint32) uint32 { return ^(p ^ s) },
	0xc4: func(d, s, p uint32) uint32 { return s & (p | ^d) },
	0xc5: func(d, s, p uint32) uint32 { return ^(s ^ (p | (d ^ s))) },
	0xc6: func(d, s, p uint32) uint32 { return s ^ (d & ^p) },
	0xc7: func(d, s, p uint32) uint32 { return ^(p ^ (s & (d | p))) },
	0xc8: func(d, s, p uint32) uint32 { return s & (d | p) },
	0xc9: func(d, s, p uint32) uint32 { return ^(s ^ (p | d)) },
	0xca: func(d, s, p uint32) uint32 { return d ^ (p & (s ^ d)) },
	0xcb: func(d, s, p uint32) uint32 { return ^(s ^ (p | (d & s))) },
	0xcc: func(d, s, p uint32) uint32 { return s },
	0xcd: func(d, s, p uint32) uint32 { return s | ^(d | p) },
	0xce: func(d, s, p uint32) uint32 { return s | (d & ^p) },
	0xcf: func(d, s, p uint32) uint32 { return s | ^p },
	0xd0: func(d, s, p uint32) uint32 { return p & (s | ^d) },
	0xd1: func(d, s, p uint32) uint32 { return ^(p ^ (s | (d ^ p))) },
	0xd2: func(d, s, p uint32) uint32 { return p ^ (d & ^s) },
	0xd3: func(d, s, p uint32) uint32 { return ^(s ^ (p & (d | s))) },
	0xd4: func(d, s, p uint32) uint32 { return s ^ ((s ^ p) & (p ^ d)) },
	0xd5: func(d, s, p uint32) uint32 { return ^(d & ^(p & s)) },
	0xd6: func(d, s, p uint32) uint32 { return p ^ (s ^ (d | (p & s))) },
	0xd7: func(d, s, p uint32) uint32 { return ^(d & (p ^ s)) },
	0xd8: func(d, s, p uint32) uint32 { return p ^ (d & (s ^ p)) },
	0xd9: func(d, s, p uint32) uint32 { return ^(s ^ (d | (p & s))) },
	0xda: func(d, s, p uint32) uint32 { return d ^ (p & ^(s & d)) },
	0xdb: func(d, s, p uint32) uint32 { return ^((s ^ p) & (d ^ s)) },
	0xdc: func(d, s, p uint32) uint32 { return s | (p & ^d) },
	0xdd: func(d, s, p uint32) uint32 { return s | ^d },
	0xde: func(d, s, p uint32) uint32 { return s | (d ^ p) },
	0xdf: func(d, s, p uint32) uint32 { return s | ^(d & p) },
	0xe0: func(d, s, p uint32) uint32 { return p & (d | s) },
	0xe1: func(d, s, p uint32) uint32 { return ^(p ^ (d | s)) },
	0xe2: func(d, s, p uint32) uint32 { return d ^ (s & (p ^ d)) },
	0xe3: func(d, s, p uint32) uint32 { return ^(p ^ (s | (d & p))) },
	0xe4: func(d, s, p uint32) uint32 { return s ^ (d & (p ^ s)) },
	0xe5: func(d, s, p uint32) uint32 { return ^(p ^ (d | (s & p))) },
	0xe6: func(d, s, p uint32) uint32 { return s ^ (d & ^(p & s)) },
	0xe7: func(d, s, p uint32) uint32 { return ^((s ^ p) & (p ^ d)) },
	0xe8: func(d, s, p uint32) uint32 { return s ^ ((s ^ p) & (d ^ s)) },
	0xe9: func(d, s, p uint32) uint32 { return ^(d ^ (s ^ (p & ^(d & s)))) },
	0xea: func(d, s, p uint32) uint32 { return d | (p & s) },
	0xeb: func(d, s, p uint32) uint32 { return d | ^(p ^ s) },
	0xec: func(d, s, p uint32) uint32 { return s | (d & p) },
	0xed: func(d, s, p uint32) uint32 { return s | ^(d ^ p) },
	0xee: func(d, s, p uint32) uint32 { return d | s },
	0xef: func(d, s, p uint32) uint32 { return s | (d | ^p) },
	0xf0: func(d, s, p uint32) uint32 { return p },
	0xf1: func(d, s, p uint32) uint32 { return p | ^(d | s) },
	0xf2: func(d, s, p uint32) uint32 { return p | (d & ^s) },
	0xf3: func(d, s, p uint32) uint32 { return p | ^s },
	0xf4: func(d, s, p uint32) uint32 { return p | (s & ^d) },
	0xf5: func(d, s, p uint32) uint32 { return p | ^d },
	0xf6: func(d, s, p uint32) uint32 { return p | (d ^ s) },
	0xf7: func(d, s, p uint32) uint32 { return p | ^(d & s) },
	0xf8: func(d, s, p uint32) uint32 { return p | (d & s) },
	0xf9: func(d, s, p uint32) uint32 { return p | ^(d ^ s) },
	0xfa: func(d, s, p uint32) uint32 { return d | p },
	0xfb: func(d, s, p uint32) uint32 { return d | (p | ^s) },
	0xfc: func(d, s, p uint32) uint32 { return p | s },
	0xfd: func(d, s, p uint32) uint32 { return p | (s | ^d) },
	0xfe: func(d, s, p uint32) uint32 { return d | (p | s) },
	0xff: func(d, s, p uint32) uint32 { return ^uint32(0) },
}

// ropUsesSource reports whether a raster op reads the source operand.
// CPU-sourced commands with a source-free ROP run at start instead of
// waiting for streamed data.
func ropUsesSource(rop uint8) bool {
	return (rop&0x33)^((rop>>2)&0x33) != 0
}
