package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Register trace format. A trace is a recorded stream of CPU accesses
// to the card, split into frames: the emulator replays one frame of
// accesses per RunFrame and loops when the stream ends. This is the
// file format behind the .tgt extension.
const (
	traceMagic      = "TGUITRC\x00"
	traceVersion    = 1
	traceHeaderSize = 16 // magic(8) + version(2) + chip(1) + reserved(1) + frames(4)
)

// Trace event opcodes.
const (
	evEndFrame = 0x00

	evPortB = 0x01
	evPortW = 0x02
	evPortL = 0x03

	evMMIOB = 0x04
	evMMIOW = 0x05
	evMMIOL = 0x06

	evFBB = 0x07
	evFBW = 0x08
	evFBL = 0x09

	evBankedB = 0x0a
	evBankedW = 0x0b
	evBankedL = 0x0c

	evApertureB = 0x0d
	evApertureW = 0x0e
	evApertureL = 0x0f
)

var (
	ErrTraceMagic     = errors.New("not a register trace")
	ErrTraceVersion   = errors.New("unsupported trace version")
	ErrTraceTruncated = errors.New("trace truncated")
)

type traceEvent struct {
	op   uint8
	addr uint32
	val  uint32
}

// Trace is a parsed register trace.
type Trace struct {
	Chip   ChipType
	events []traceEvent
	frames []int // event index where each frame starts
}

// FrameCount returns the number of recorded frames.
func (tr *Trace) FrameCount() int { return len(tr.frames) }

// opSize returns the operand width in bytes for an event opcode, or -1
// for an unknown opcode.
func opSize(op uint8) int {
	switch op {
	case evEndFrame:
		return 0
	case evPortB:
		return 3
	case evPortW:
		return 4
	case evPortL:
		return 6
	case evMMIOB, evFBB, evBankedB, evApertureB:
		return 5
	case evMMIOW, evFBW, evBankedW, evApertureW:
		return 6
	case evMMIOL, evFBL, evBankedL, evApertureL:
		return 8
	}
	return -1
}

// ParseTrace decodes a trace file.
func ParseTrace(data []byte) (*Trace, error) {
	if len(data) < traceHeaderSize || string(data[0:8]) != traceMagic {
		return nil, ErrTraceMagic
	}
	version := binary.LittleEndian.Uint16(data[8:10])
	if version > traceVersion {
		return nil, ErrTraceVersion
	}
	chip := ChipType(data[10])
	if chip < TGUI9400CXi || chip > TGUI9680 {
		return nil, fmt.Errorf("bad chip id %d in trace", data[10])
	}
	declared := binary.LittleEndian.Uint32(data[12:16])

	tr := &Trace{Chip: chip}
	tr.frames = append(tr.frames, 0)

	off := traceHeaderSize
	for off < len(data) {
		op := data[off]
		off++
		n := opSize(op)
		if n < 0 {
			return nil, fmt.Errorf("unknown trace opcode %#02x at offset %d", op, off-1)
		}
		if off+n > len(data) {
			return nil, ErrTraceTruncated
		}

		var ev traceEvent
		ev.op = op
		switch op {
		case evEndFrame:
		case evPortB:
			ev.addr = uint32(binary.LittleEndian.Uint16(data[off:]))
			ev.val = uint32(data[off+2])
		case evPortW:
			ev.addr = uint32(binary.LittleEndian.Uint16(data[off:]))
			ev.val = uint32(binary.LittleEndian.Uint16(data[off+2:]))
		case evPortL:
			ev.addr = uint32(binary.LittleEndian.Uint16(data[off:]))
			ev.val = binary.LittleEndian.Uint32(data[off+2:])
		case evMMIOB, evFBB, evBankedB, evApertureB:
			ev.addr = binary.LittleEndian.Uint32(data[off:])
			ev.val = uint32(data[off+4])
		case evMMIOW, evFBW, evBankedW, evApertureW:
			ev.addr = binary.LittleEndian.Uint32(data[off:])
			ev.val = uint32(binary.LittleEndian.Uint16(data[off+4:]))
		default:
			ev.addr = binary.LittleEndian.Uint32(data[off:])
			ev.val = binary.LittleEndian.Uint32(data[off+4:])
		}
		off += n

		if op == evEndFrame {
			tr.frames = append(tr.frames, len(tr.events))
		} else {
			tr.events = append(tr.events, ev)
		}
	}

	// Drop a trailing empty frame marker; an unterminated final frame
	// still counts.
	if last := tr.frames[len(tr.frames)-1]; last == len(tr.events) {
		tr.frames = tr.frames[:len(tr.frames)-1]
	}
	if len(tr.frames) == 0 {
		tr.frames = append(tr.frames, 0)
	}
	if declared != 0 && int(declared) < len(tr.frames) {
		tr.frames = tr.frames[:declared]
	}
	return tr, nil
}

// playFrame applies one frame of recorded accesses to the card.
func (tr *Trace) playFrame(t *TGUI, frame int) {
	if frame < 0 || frame >= len(tr.frames) {
		return
	}
	start := tr.frames[frame]
	end := len(tr.events)
	if frame+1 < len(tr.frames) {
		end = tr.frames[frame+1]
	}
	for _, ev := range tr.events[start:end] {
		switch ev.op {
		case evPortB:
			t.OutB(uint16(ev.addr), uint8(ev.val))
		case evPortW:
			t.OutW(uint16(ev.addr), uint16(ev.val))
		case evPortL:
			t.OutL(uint16(ev.addr), ev.val)
		case evMMIOB:
			t.MMIOWriteB(ev.addr, uint8(ev.val))
		case evMMIOW:
			t.MMIOWriteW(ev.addr, uint16(ev.val))
		case evMMIOL:
			t.MMIOWriteL(ev.addr, ev.val)
		case evFBB:
			t.FBWriteB(ev.addr, uint8(ev.val))
		case evFBW:
			t.FBWriteW(ev.addr, uint16(ev.val))
		case evFBL:
			t.FBWriteL(ev.addr, ev.val)
		case evBankedB:
			t.BankedWriteB(ev.addr, uint8(ev.val))
		case evBankedW:
			t.BankedWriteW(ev.addr, uint16(ev.val))
		case evBankedL:
			t.BankedWriteL(ev.addr, ev.val)
		case evApertureB:
			t.AccelApertureWriteB(ev.addr, uint8(ev.val))
		case evApertureW:
			t.AccelApertureWriteW(ev.addr, uint16(ev.val))
		case evApertureL:
			t.AccelApertureWriteL(ev.addr, ev.val)
		}
	}
}

// TraceWriter builds a trace file in memory.
type TraceWriter struct {
	buf    []byte
	frames uint32
}

// NewTraceWriter starts a trace targeting the given chip variant.
func NewTraceWriter(chip ChipType) *TraceWriter {
	w := &TraceWriter{}
	w.buf = append(w.buf, traceMagic...)
	w.buf = append(w.buf, 0, 0, 0, 0, 0, 0, 0, 0)
	binary.LittleEndian.PutUint16(w.buf[8:10], traceVersion)
	w.buf[10] = uint8(chip)
	return w
}

func (w *TraceWriter) addr32(op uint8, addr uint32) {
	w.buf = append(w.buf, op)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, addr)
}

// PortB records a byte write to an I/O port.
func (w *TraceWriter) PortB(port uint16, val uint8) {
	w.buf = append(w.buf, evPortB)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, port)
	w.buf = append(w.buf, val)
}

// PortW records a word write to an I/O port.
func (w *TraceWriter) PortW(port uint16, val uint16) {
	w.buf = append(w.buf, evPortW)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, port)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, val)
}

// PortL records a dword write to an I/O port.
func (w *TraceWriter) PortL(port uint16, val uint32) {
	w.buf = append(w.buf, evPortL)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, port)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, val)
}

// MMIOB records a byte write in the MMIO window.
func (w *TraceWriter) MMIOB(addr uint32, val uint8) {
	w.addr32(evMMIOB, addr)
	w.buf = append(w.buf, val)
}

// MMIOW records a word write in the MMIO window.
func (w *TraceWriter) MMIOW(addr uint32, val uint16) {
	w.addr32(evMMIOW, addr)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, val)
}

// MMIOL records a dword write in the MMIO window.
func (w *TraceWriter) MMIOL(addr uint32, val uint32) {
	w.addr32(evMMIOL, addr)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, val)
}

// FBB records a byte write to the linear framebuffer.
func (w *TraceWriter) FBB(addr uint32, val uint8) {
	w.addr32(evFBB, addr)
	w.buf = append(w.buf, val)
}

// FBW records a word write to the linear framebuffer.
func (w *TraceWriter) FBW(addr uint32, val uint16) {
	w.addr32(evFBW, addr)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, val)
}

// FBL records a dword write to the linear framebuffer.
func (w *TraceWriter) FBL(addr uint32, val uint32) {
	w.addr32(evFBL, addr)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, val)
}

// BankedB records a byte write through the banked window.
func (w *TraceWriter) BankedB(addr uint32, val uint8) {
	w.addr32(evBankedB, addr)
	w.buf = append(w.buf, val)
}

// ApertureL records a dword write in the legacy accelerator aperture.
func (w *TraceWriter) ApertureL(addr uint32, val uint32) {
	w.addr32(evApertureL, addr)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, val)
}

// EndFrame closes the current frame.
func (w *TraceWriter) EndFrame() {
	w.buf = append(w.buf, evEndFrame)
	w.frames++
}

// Bytes finalizes the header and returns the encoded trace.
func (w *TraceWriter) Bytes() []byte {
	binary.LittleEndian.PutUint32(w.buf[12:16], w.frames)
	return w.buf
}
