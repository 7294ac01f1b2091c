package emu

// ChipType selects which TGUI variant is emulated. Variant behavior is
// expressed through a capability set chosen at construction rather than
// type comparisons scattered through the drawing code.
type ChipType int

const (
	TGUI9400CXi ChipType = iota
	TGUI9440
	TGUI9660
	TGUI9680
)

// String returns the marketing name of the chip.
func (c ChipType) String() string {
	switch c {
	case TGUI9400CXi:
		return "TGUI9400CXi"
	case TGUI9440:
		return "TGUI9440"
	case TGUI9660:
		return "TGUI9660"
	case TGUI9680:
		return "TGUI9680"
	}
	return "TGUI?"
}

// ChipFromName maps a lower-case option value to a ChipType.
// Unknown names select the TGUI9440.
func ChipFromName(name string) ChipType {
	switch name {
	case "9400cxi":
		return TGUI9400CXi
	case "9660":
		return TGUI9660
	case "9680":
		return TGUI9680
	default:
		return TGUI9440
	}
}

// capabilities describes per-variant hardware behavior.
//
// clipping only exists on the 96xx generation: the 9400CXi and 9440
// ignore the clip rectangle registers and always draw. This asymmetry is
// real hardware behavior that drivers depend on, not something to unify.
type capabilities struct {
	supportsClip     bool // clip rectangle enforced in drawing commands
	supportsFastLine bool // fast-line command exists (96xx only)
	usesDwordRemap   bool // chain-4 style dword remapping on extended writes (9400CXi)
}

func capabilitiesFor(c ChipType) capabilities {
	return capabilities{
		supportsClip:     c >= TGUI9660,
		supportsFastLine: c >= TGUI9660,
		usesDwordRemap:   c == TGUI9400CXi,
	}
}
