package mmu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmgcore/dmgcore/internal/cartridge"
	"github.com/dmgcore/dmgcore/internal/interrupts"
	"github.com/dmgcore/dmgcore/internal/joypad"
	"github.com/dmgcore/dmgcore/internal/ppu"
	"github.com/dmgcore/dmgcore/internal/timer"
)

func buildROM() []byte {
	rom := make([]byte, 32*1024)
	rom[0x0147] = 0x00
	rom[0x0148] = 0x00
	rom[0x0149] = 0x00
	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	rom[0x014D] = sum
	return rom
}

func newTestMMU(t *testing.T) *MMU {
	t.Helper()
	cart, err := cartridge.Load(buildROM(), nil)
	require.NoError(t, err)
	irq := interrupts.NewService()
	p := ppu.New(irq)
	tm := timer.NewController(irq)
	j := joypad.NewController(irq)
	return New(cart, p, tm, j, irq, nil)
}

func TestWRAMReadWrite(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xC123, 0x42)
	require.Equal(t, uint8(0x42), m.Read(0xC123))
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xC005, 0x77)
	require.Equal(t, uint8(0x77), m.Read(0xE005))

	m.Write(0xE006, 0x88)
	require.Equal(t, uint8(0x88), m.Read(0xC006))
}

func TestHRAMReadWrite(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xFF90, 0x11)
	require.Equal(t, uint8(0x11), m.Read(0xFF90))
}

func TestUnmappedIOReadsFF(t *testing.T) {
	m := newTestMMU(t)
	require.Equal(t, uint8(0xFF), m.Read(0xFEA5)) // OAM corruption region
}

func TestOAMDMACopiesFromSourcePage(t *testing.T) {
	m := newTestMMU(t)
	for i := 0; i < 0xA0; i++ {
		m.wram[i] = byte(i)
	}
	// LCD off, so OAM is freely accessible to the copy and the reads below.
	m.Write(0xFF40, 0x00)
	// 0xC000 maps to wram[0]; DMA source page 0xC0 is WRAM page 0.
	m.Write(0xFF46, 0xC0)

	for i := uint16(0); i < 0xA0; i++ {
		require.Equal(t, byte(i), m.ppu.Read(0xFE00+i))
	}
}

func TestOAMDMARejectsSourceAboveDF(t *testing.T) {
	m := newTestMMU(t)
	require.Panics(t, func() { m.Write(0xFF46, 0xFE) }) // invalid source page is a fatal error
}

func TestInterruptRegistersRoundTrip(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xFFFF, 0x1F)
	require.Equal(t, uint8(0x1F), m.Read(0xFFFF))
}
