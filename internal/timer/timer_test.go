package timer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmgcore/dmgcore/internal/interrupts"
)

func TestDIVIncrementsAndResetsOnWrite(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)

	c.Update(255)
	require.Equal(t, uint8(0), c.Read(DIVRegister)) // high byte of 255 is still 0

	c.Update(128)
	c.Update(128)
	require.Equal(t, uint8(1), c.Read(DIVRegister)) // counter now 511, high byte 1

	c.Write(DIVRegister, 0xFF)
	require.Equal(t, uint8(0), c.Read(DIVRegister))
}

func TestTIMAOverflowReloadsFromTMAAndRaisesIRQ(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)

	c.Write(TACRegister, 0x05) // enabled, divider 16
	c.Write(TIMARegister, 0xFF)
	c.Write(TMARegister, 0xA0)

	c.Update(16)

	require.Equal(t, uint8(0xA0), c.Read(TIMARegister))
	require.NotZero(t, irq.Flag&(1<<interrupts.TimerFlag))
}

func TestTIMADoesNotIncrementWhenDisabled(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(TACRegister, 0x01) // divider 16, disabled (bit 2 clear)
	c.Update(64)
	require.Equal(t, uint8(0), c.Read(TIMARegister))
}

func TestTACReadBackHasUpperBitsSet(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(TACRegister, 0x02)
	require.Equal(t, uint8(0xFA), c.Read(TACRegister))
}
