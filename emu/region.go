package emu

import emucore "github.com/user-none/eblitui/api"

// Region is an alias for emucore.Region so internal code compiles unchanged.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds the vertical timing used for frame pacing. The
// card generates its own sync, so only the refresh rate and the total
// line count of the default 480-line mode matter here.
type RegionTiming struct {
	Scanlines int // Total scanlines per frame
	FPS       int // Frames per second
}

// 60 Hz timing: 525 total lines, matching the VESA 640x480 mode.
var NTSCTiming = RegionTiming{
	Scanlines: 525,
	FPS:       60,
}

// 50 Hz timing for hosts that pace at PAL rates.
var PALTiming = RegionTiming{
	Scanlines: 625,
	FPS:       50,
}

// GetTimingForRegion returns the appropriate timing constants
func GetTimingForRegion(r Region) RegionTiming {
	if r == RegionPAL {
		return PALTiming
	}
	return NTSCTiming
}

// DetectRegion returns the display timing region for a trace. Traces
// carry no timing information, so playback always runs at 60 Hz.
func DetectRegion(trace []byte) Region {
	return RegionNTSC
}

// DefaultRegion returns the default region (NTSC).
func DefaultRegion() Region {
	return RegionNTSC
}
