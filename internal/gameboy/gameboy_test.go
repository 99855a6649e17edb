package gameboy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmgcore/dmgcore/internal/cartridge"
	"github.com/dmgcore/dmgcore/internal/timer"
)

// buildLoopROM returns a minimal, header-valid 32 KiB ROM-only
// cartridge whose entry point is an infinite `JP 0x0100`, enough to
// exercise a full frame of CPU/PPU/timer stepping without crashing on
// an unimplemented opcode.
func buildLoopROM() []byte {
	rom := make([]byte, 32*1024)
	rom[0x0100] = 0xC3 // JP a16
	rom[0x0101] = 0x00
	rom[0x0102] = 0x01

	copy(rom[0x0134:], "LOOP")
	rom[0x0147] = 0x00 // ROM only
	rom[0x0148] = 0x00 // 32 KiB
	rom[0x0149] = 0x00 // no RAM

	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	rom[0x014D] = sum

	return rom
}

func TestRunFrameAdvancesPPUAndTimer(t *testing.T) {
	cart, err := cartridge.Load(buildLoopROM(), nil)
	require.NoError(t, err)

	gb := New(cart, nil)
	fb := gb.RunFrame()
	require.NotNil(t, fb)

	// RunFrame always crosses at least one VBlank boundary, since a
	// frame is defined as one full 154-line sweep.
	require.True(t, gb.PPU.FrameReady())

	// the timer's free-running divider has advanced too.
	require.NotZero(t, gb.Timer.Read(timer.DIVRegister))
}

func TestLoadSaveRoundTripsWhenNoBattery(t *testing.T) {
	cart, err := cartridge.Load(buildLoopROM(), nil)
	require.NoError(t, err)
	gb := New(cart, nil)

	require.NoError(t, gb.LoadSave("/nonexistent/path.sav"))
	require.NoError(t, gb.WriteSave(t.TempDir()+"/out.sav"))
}
