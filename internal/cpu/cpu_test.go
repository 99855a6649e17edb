package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmgcore/dmgcore/internal/interrupts"
)

// fakeBus is a flat 64 KiB RAM-backed bus for instruction-level tests;
// it has no peripherals, only Update bookkeeping so tests can assert
// how many ticks an instruction reported.
type fakeBus struct {
	mem        [0x10000]byte
	updateSum  uint32
	updateCall int
}

func (b *fakeBus) Read(a uint16) uint8      { return b.mem[a] }
func (b *fakeBus) Write(a uint16, v uint8)  { b.mem[a] = v }
func (b *fakeBus) Update(tick uint8) {
	b.updateSum += uint32(tick)
	b.updateCall++
}

func newTestCPU() (*CPU, *fakeBus) {
	bus := &fakeBus{}
	irq := interrupts.NewService()
	c := New(bus, irq)
	c.PC = 0xC000
	return c, bus
}

func TestRegistersAFMasksLowNibble(t *testing.T) {
	var r Registers
	r.SetAF(0x1234)
	require.Equal(t, uint8(0x12), r.A)
	require.Equal(t, uint8(0x30), r.F) // low nibble of F always reads 0
}

func TestADD8SetsHalfCarryAndCarry(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.A = 0x0F
	c.Reg.A = c.add8(c.Reg.A, 0x01, false)
	require.Equal(t, uint8(0x10), c.Reg.A)
	require.True(t, c.Reg.halfCarry())
	require.False(t, c.Reg.carry())

	c.Reg.A = 0xFF
	c.Reg.A = c.add8(c.Reg.A, 0x01, false)
	require.Equal(t, uint8(0x00), c.Reg.A)
	require.True(t, c.Reg.zero())
	require.True(t, c.Reg.carry())
	require.True(t, c.Reg.halfCarry())
}

func TestSUB8SetsSubtractAndBorrow(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.A = 0x00
	c.Reg.A = c.sub8(c.Reg.A, 0x01, false)
	require.Equal(t, uint8(0xFF), c.Reg.A)
	require.True(t, c.Reg.subtract())
	require.True(t, c.Reg.carry())
	require.True(t, c.Reg.halfCarry())
}

func TestINCDoesNotTouchCarry(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.setFlags(false, false, false, true)
	c.Reg.A = c.inc8(0xFF)
	require.Equal(t, uint8(0x00), c.Reg.A)
	require.True(t, c.Reg.zero())
	require.True(t, c.Reg.carry()) // preserved, not recomputed
}

func TestDAAAfterBCDAddition(t *testing.T) {
	c, _ := newTestCPU()
	// 0x15 + 0x27 in BCD should be 0x42, not the raw binary 0x3C.
	c.Reg.A = 0x15
	c.Reg.A = c.add8(c.Reg.A, 0x27, false)
	require.Equal(t, uint8(0x3C), c.Reg.A)
	c.daa()
	require.Equal(t, uint8(0x42), c.Reg.A)
	require.False(t, c.Reg.carry())
}

func TestLDRRInstructionCostsFourTicks(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xC000] = 0x78 // LD A,B
	c.Reg.B = 0x99
	n := c.Step()
	require.Equal(t, uint8(0x99), c.Reg.A)
	require.Equal(t, uint8(4), n)
	require.Equal(t, 1, bus.updateCall)
}

func TestJRTakenVsNotTaken(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xC000] = 0x20 // JR NZ,e8
	bus.mem[0xC001] = 0x05
	c.Reg.setFlags(true, false, false, false) // Z set, so NZ is false: not taken
	n := c.Step()
	require.Equal(t, uint8(8), n)
	require.Equal(t, uint16(0xC002), c.PC)

	c, bus = newTestCPU()
	bus.mem[0xC000] = 0x20
	bus.mem[0xC001] = 0x05
	n = c.Step()
	require.Equal(t, uint8(12), n)
	require.Equal(t, uint16(0xC007), c.PC)
}

func TestHaltWakesOnPendingInterruptEvenWithIMEClear(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xC000] = 0x76 // HALT
	c.irq.IME = false
	c.Step()
	require.True(t, c.halted)

	c.irq.Enable = 1 << interrupts.VBlankFlag
	c.irq.Request(interrupts.VBlankFlag)
	c.Step()
	require.False(t, c.halted)
}

func TestInterruptDispatchPushesPCAndJumps(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xC000] = 0x00 // NOP
	c.SP = 0xD000
	c.irq.IME = true
	c.irq.Enable = 1 << interrupts.TimerFlag
	c.irq.Request(interrupts.TimerFlag)

	c.Step()

	require.Equal(t, interrupts.Timer, c.PC)
	require.False(t, c.irq.IME)
	require.Equal(t, uint16(0xD000-2), c.SP)
	lo := bus.mem[0xD000-2]
	hi := bus.mem[0xD000-1]
	require.Equal(t, uint16(0xC001), uint16(hi)<<8|uint16(lo))
}
