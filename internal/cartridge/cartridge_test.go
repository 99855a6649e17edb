package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildROM constructs a minimal, header-valid ROM image of the given
// size with the given type/RAM size codes, stamping the bank number N
// into byte 0 of bank N so tests can assert which bank got mapped in.
func buildROM(t *testing.T, size int, cartType, ramCode uint8) []byte {
	t.Helper()
	rom := make([]byte, size)
	for bank := 0; bank*0x4000 < size; bank++ {
		rom[bank*0x4000] = uint8(bank)
	}

	copy(rom[0x0134:], "TESTROM")
	rom[0x0147] = cartType
	rom[0x0149] = ramCode

	// ROM size code: size = 32KiB << code
	code := uint8(0)
	sz := size / (32 * 1024)
	for sz > 1 {
		sz >>= 1
		code++
	}
	rom[0x0148] = code

	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	rom[0x014D] = sum

	return rom
}

func TestLoadROMOnly(t *testing.T) {
	rom := buildROM(t, 32*1024, uint8(ROMOnly), 0x00)
	c, err := Load(rom, nil)
	require.NoError(t, err)
	require.Equal(t, "TESTROM", c.Header.Title)
	require.Equal(t, uint(2), c.Header.ROMBanks())
	require.False(t, c.Header.HasBattery())
}

func TestLoadRejectsBadChecksum(t *testing.T) {
	rom := buildROM(t, 32*1024, uint8(ROMOnly), 0x00)
	rom[0x014D] ^= 0xFF
	_, err := Load(rom, nil)
	require.Error(t, err)
}

func TestLoadRejectsSizeMismatch(t *testing.T) {
	rom := buildROM(t, 32*1024, uint8(ROMOnly), 0x00)
	rom = rom[:len(rom)-1]
	_, err := Load(rom, nil)
	require.Error(t, err)
}

func TestMBC1BankSwitch(t *testing.T) {
	// 1 MiB -> 64 banks, needs both bankLo and bankHi bits.
	rom := buildROM(t, 1024*1024, uint8(MBC1RAMBattery), 0x02)
	c, err := Load(rom, nil)
	require.NoError(t, err)
	require.True(t, c.Header.HasBattery())

	// bank 0 fixed at 0x0000 in simple mode.
	require.Equal(t, uint8(0), c.Read(0x0000))

	// select bank 5 via bankLo.
	c.Write(0x2000, 0x05)
	require.Equal(t, uint8(5), c.Read(0x4000))

	// select bank 0x25 (0x20|0x05) via bankHi in simple mode; low
	// window still shows bank 0.
	c.Write(0x4000, 0x01)
	require.Equal(t, uint8(0x25), c.Read(0x4000))
	require.Equal(t, uint8(0), c.Read(0x0000))
}

func TestMBC1BankZeroQuirk(t *testing.T) {
	rom := buildROM(t, 1024*1024, uint8(MBC1), 0x00)
	c, err := Load(rom, nil)
	require.NoError(t, err)

	// writing 0 to bankLo must still map bank 1, not bank 0, at 0x4000.
	c.Write(0x2000, 0x00)
	require.Equal(t, uint8(1), c.Read(0x4000))

	// with bankLo still 0, bankHi selecting 0x20 gives bank 0x20,
	// which must still bump to bank 0x21.
	c.Write(0x4000, 0x01)
	require.Equal(t, uint8(0x21), c.Read(0x4000))
}

func TestMBC1RAMEnableAndPersist(t *testing.T) {
	rom := buildROM(t, 32*1024, uint8(MBC1RAMBattery), 0x02) // 8KiB RAM
	c, err := Load(rom, nil)
	require.NoError(t, err)

	// RAM reads as 0xFF until explicitly enabled.
	require.Equal(t, uint8(0xFF), c.Read(0xA000))

	c.Write(0x0000, 0x0A)
	c.Write(0xA000, 0x42)
	require.Equal(t, uint8(0x42), c.Read(0xA000))

	saved := c.SaveRAM()
	require.Len(t, saved, 8*1024)
	require.Equal(t, uint8(0x42), saved[0])

	c2, err := Load(rom, nil)
	require.NoError(t, err)
	c2.LoadRAM(saved)
	c2.Write(0x0000, 0x0A)
	require.Equal(t, uint8(0x42), c2.Read(0xA000))
}

func TestMBC2FallsBackToMBC1Banking(t *testing.T) {
	rom := buildROM(t, 64*1024, uint8(MBC2), 0x00)
	c, err := Load(rom, nil)
	require.NoError(t, err)
	c.Write(0x2000, 0x03)
	require.Equal(t, uint8(3), c.Read(0x4000))
}
