package emu

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "TGUISState\x00\x00"
	stateHeaderSize = 22 // magic(12) + version(2) + traceCRC(4) + dataCRC(4)
)

// emulatorSerializeSize covers the inline playback state: frame(4).
const emulatorSerializeSize = 4

// boolByte converts a bool to a uint8 (0 or 1).
func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// SerializeSize returns the save state size for a card with the default
// VRAM configuration.
func SerializeSize() int {
	return stateHeaderSize + tguiSerializeFixedSize + DefaultVRAMSize +
		emulatorSerializeSize
}

// SerializeSize returns the total size in bytes needed for a save state.
// VRAM size varies per card, so this is also a method on Emulator.
func (e *Emulator) SerializeSize() int {
	return stateHeaderSize + e.tgui.SerializeSize() + emulatorSerializeSize
}

// Serialize creates a save state and returns it as a byte slice.
func (e *Emulator) Serialize() ([]byte, error) {
	size := e.SerializeSize()
	data := make([]byte, size)

	// Write header
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], e.traceCRC)

	offset := stateHeaderSize

	// Card
	if err := e.tgui.Serialize(data[offset:]); err != nil {
		return nil, err
	}
	offset += e.tgui.SerializeSize()

	// Playback position
	binary.LittleEndian.PutUint32(data[offset:], uint32(int32(e.frame)))

	// Calculate and write data CRC32 (over everything after header)
	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[18:22], dataCRC)

	return data, nil
}

// Deserialize restores emulator state from a save state byte slice.
// Region is NOT restored - the current region setting is preserved.
func (e *Emulator) Deserialize(data []byte) error {
	if err := e.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize

	// Card
	if err := e.tgui.Deserialize(data[offset:]); err != nil {
		return err
	}
	offset += e.tgui.SerializeSize()

	// Playback position
	e.frame = int(int32(binary.LittleEndian.Uint32(data[offset:])))
	if n := e.trace.FrameCount(); e.frame < 0 || e.frame >= n {
		e.frame = 0
	}

	return nil
}

// VerifyState checks if a save state is valid without loading it.
func (e *Emulator) VerifyState(data []byte) error {
	expectedSize := e.SerializeSize()
	if len(data) < expectedSize {
		return errors.New("save state too short")
	}

	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	version := binary.LittleEndian.Uint16(data[12:14])
	if version > stateVersion {
		return errors.New("unsupported save state version")
	}

	traceCRC := binary.LittleEndian.Uint32(data[14:18])
	if traceCRC != e.traceCRC {
		return errors.New("save state is for a different trace")
	}

	expectedCRC := binary.LittleEndian.Uint32(data[18:22])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	return nil
}
