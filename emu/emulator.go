package emu

import (
	"hash/crc32"

	emucore "github.com/user-none/eblitui/api"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.SaveStater = (*Emulator)(nil)
var _ emucore.BatterySaver = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

// Core identity.
const (
	Name    = "tguiemu"
	Version = "0.1.0"
)

const sampleRate = 48000

// Emulator replays a recorded register trace against an emulated card
// and scans the resulting VRAM out as RGBA frames. The trace stands in
// for the host CPU: each frame of events is applied to the ports,
// apertures and drawing engine, then the display is rendered.
type Emulator struct {
	tgui  *TGUI
	trace *Trace
	frame int

	// Region timing
	region Region
	timing RegionTiming

	traceCRC uint32

	// Scan-out buffer, sized for the largest supported mode.
	fb []byte

	// The card has no audio hardware; a buffer of silence keeps
	// downstream players fed at a constant rate.
	audioBuffer []int16
}

// NewEmulator creates an emulator replaying the given trace. An empty
// trace selects the built-in demonstration. The chip variant and VRAM
// size come from the trace header.
func NewEmulator(trace []byte, region Region) (Emulator, error) {
	if len(trace) == 0 {
		trace = DemoTrace()
	}
	tr, err := ParseTrace(trace)
	if err != nil {
		return Emulator{}, err
	}

	timing := GetTimingForRegion(region)
	return Emulator{
		tgui:        NewTGUI(tr.Chip, 0),
		trace:       tr,
		region:      region,
		timing:      timing,
		traceCRC:    crc32.ChecksumIEEE(trace),
		fb:          make([]byte, MaxScreenWidth*MaxScreenHeight*4),
		audioBuffer: make([]int16, sampleRate/timing.FPS*2),
	}, nil
}

// RunFrame applies one frame of trace events and renders the display.
// Playback loops when the trace runs out.
func (e *Emulator) RunFrame() {
	if n := e.trace.FrameCount(); n > 0 {
		e.trace.playFrame(e.tgui, e.frame)
		e.frame++
		if e.frame >= n {
			e.frame = 0
		}
	}

	s := e.tgui.svga
	e.tgui.svga.RenderRGBA(e.fb[:s.Width()*s.Height()*4])
}

// SetInput is a no-op; the card has no input devices.
func (e *Emulator) SetInput(player int, buttons uint32) {}

// GetFramebuffer returns raw RGBA pixel data for current frame.
func (e *Emulator) GetFramebuffer() []byte {
	s := e.tgui.svga
	return e.fb[:s.Width()*s.Height()*4]
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return e.tgui.svga.Width() * 4
}

// GetActiveHeight returns the current active display height.
func (e *Emulator) GetActiveHeight() int {
	return e.tgui.svga.Height()
}

// GetRegion returns the emulator's region setting.
func (e *Emulator) GetRegion() Region {
	return e.region
}

// GetTiming returns FPS and scanline count for the current region.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       e.timing.FPS,
		Scanlines: e.timing.Scanlines,
	}
}

// SetRegion updates the emulator's region configuration.
func (e *Emulator) SetRegion(region Region) {
	e.region = region
	e.timing = GetTimingForRegion(region)
	e.audioBuffer = make([]int16, sampleRate/e.timing.FPS*2)
}

// GetAudioSamples returns one frame of silence as 16-bit stereo PCM.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// HasSRAM reports whether the core has battery-backed storage. The card
// has none.
func (e *Emulator) HasSRAM() bool {
	return false
}

// GetSRAM returns nil; there is no battery-backed storage.
func (e *Emulator) GetSRAM() []byte {
	return nil
}

// SetSRAM is a no-op; there is no battery-backed storage.
func (e *Emulator) SetSRAM(data []byte) {}

// ReadVRAM reads a single byte of video memory.
func (e *Emulator) ReadVRAM(addr uint32) byte {
	s := e.tgui.svga
	return s.vram[addr&s.vramMask]
}

// GetVRAM returns a copy of the video memory.
func (e *Emulator) GetVRAM() []byte {
	s := e.tgui.svga
	out := make([]byte, len(s.vram))
	copy(out, s.vram)
	return out
}

// SetVRAM writes data into video memory.
func (e *Emulator) SetVRAM(data []byte) {
	s := e.tgui.svga
	copy(s.vram, data)
	for i := range s.changed {
		s.changed[i] = true
	}
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// SetOption applies a core option change identified by key. No options
// are defined.
func (e *Emulator) SetOption(key string, value string) {}

// ReadMemory reads from a flat VRAM address into buf and returns the
// number of bytes read.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	s := e.tgui.svga
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		if cur >= uint32(len(s.vram)) {
			return count
		}
		buf[i] = s.vram[cur]
		count++
	}
	return count
}

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: e.tgui.svga.VRAMSize()},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		return e.GetVRAM()
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	switch regionType {
	case emucore.MemorySystemRAM:
		e.SetVRAM(data)
	}
}
