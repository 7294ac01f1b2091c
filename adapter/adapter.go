package adapter

import (
	"github.com/colcross/tguiemu/emu"
	emucore "github.com/user-none/eblitui/api"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the TGUI trace player.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "tguiemu",
		ConsoleName:     "Trident TGUI",
		Extensions:      []string{".tgt"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.MaxScreenHeight,
		AspectRatio:     4.0 / 3.0,
		SampleRate:      48000,
		Buttons:         nil,
		Players:         0,
		CoreOptions:     nil,
		DataDirName:     "tguiemu",
		CoreName:        emu.Name,
		CoreVersion:     emu.Version,
		SerializeSize:   emu.SerializeSize(),
	}
}

// CreateEmulator creates a new emulator instance replaying the given
// trace. An empty trace selects the built-in demonstration.
func (f *Factory) CreateEmulator(trace []byte, region emucore.Region) (emucore.Emulator, error) {
	e, err := emu.NewEmulator(trace, region)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DetectRegion returns the playback timing region. Traces carry no
// region data, so this is always NTSC and never a database lookup.
func (f *Factory) DetectRegion(trace []byte) (emucore.Region, bool) {
	return emu.DetectRegion(trace), false
}
