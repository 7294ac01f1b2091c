package emu

import (
	"bytes"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	src, err := NewEmulator(nil, RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	src.RunFrame()
	src.RunFrame()

	state, err := src.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if len(state) != src.SerializeSize() {
		t.Fatalf("state size = %d, want %d", len(state), src.SerializeSize())
	}

	dst, err := NewEmulator(nil, RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	if err := dst.Deserialize(state); err != nil {
		t.Fatal(err)
	}

	if dst.frame != src.frame {
		t.Errorf("frame = %d, want %d", dst.frame, src.frame)
	}
	if !bytes.Equal(dst.tgui.svga.vram, src.tgui.svga.vram) {
		t.Error("VRAM differs after restore")
	}
	if dst.tgui.svga.crtc != src.tgui.svga.crtc {
		t.Error("CRTC registers differ after restore")
	}
	if dst.tgui.svga.pal != src.tgui.svga.pal {
		t.Error("palette differs after restore")
	}
	if dst.tgui.accel != src.tgui.accel {
		t.Error("accelerator state differs after restore")
	}

	// Both must render identically from here.
	src.RunFrame()
	dst.RunFrame()
	if !bytes.Equal(src.GetFramebuffer(), dst.GetFramebuffer()) {
		t.Error("framebuffers diverge after restore")
	}
}

func TestVerifyStateRejectsBadMagic(t *testing.T) {
	e, err := NewEmulator(nil, RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	state, err := e.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	state[0] = 'X'
	if err := e.VerifyState(state); err == nil {
		t.Error("corrupt magic accepted")
	}
}

func TestVerifyStateRejectsShortData(t *testing.T) {
	e, err := NewEmulator(nil, RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.VerifyState(make([]byte, 16)); err == nil {
		t.Error("short state accepted")
	}
}

func TestVerifyStateRejectsCorruptPayload(t *testing.T) {
	e, err := NewEmulator(nil, RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	state, err := e.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	state[stateHeaderSize+100] ^= 0xff
	if err := e.VerifyState(state); err == nil {
		t.Error("corrupt payload accepted")
	}
}

func TestVerifyStateRejectsDifferentTrace(t *testing.T) {
	e, err := NewEmulator(nil, RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	state, err := e.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	w := NewTraceWriter(TGUI9680)
	w.PortB(0x3d4, 0x13)
	w.PortB(0x3d5, 80)
	w.EndFrame()
	other, err := NewEmulator(w.Bytes(), RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	if err := other.VerifyState(state); err == nil {
		t.Error("state from a different trace accepted")
	}
}

func TestSerializeSizeConstant(t *testing.T) {
	e, err := NewEmulator(nil, RegionNTSC)
	if err != nil {
		t.Fatal(err)
	}
	if e.SerializeSize() != SerializeSize() {
		t.Errorf("method SerializeSize = %d, package SerializeSize = %d",
			e.SerializeSize(), SerializeSize())
	}
}

func TestTGUISerializeFixedSize(t *testing.T) {
	c := NewTGUI(TGUI9680, 0)
	if got := c.SerializeSize(); got != tguiSerializeFixedSize+DefaultVRAMSize {
		t.Errorf("SerializeSize = %d, want %d", got, tguiSerializeFixedSize+DefaultVRAMSize)
	}

	buf := make([]byte, c.SerializeSize())
	if err := c.Serialize(buf); err != nil {
		t.Fatal(err)
	}
}
