package joypad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmgcore/dmgcore/internal/interrupts"
)

func TestReadWhenDeselectedReportsAllOnes(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	require.Equal(t, uint8(0xFF), c.Read(Register))
}

func TestReadSelectedDirectionRow(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.KeyDown(ButtonUp)
	c.Write(Register, 0x20) // select direction row (bit4 low)
	v := c.Read(Register)
	require.Equal(t, uint8(0), v&0x04) // Up bit (bit 2 of row) is active-low = 0
}

func TestKeyDownRequestsJoypadIRQOnlyWhenRowSelected(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	irq.Enable = 1 << interrupts.JoypadFlag

	c.Write(Register, 0x10) // select button row only
	c.KeyDown(ButtonUp)     // direction button, not selected row
	require.False(t, irq.Pending())

	c.KeyDown(ButtonA) // button row selected
	require.True(t, irq.Pending())
}

func TestKeyUpClearsPressedState(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.KeyDown(ButtonB)
	c.KeyUp(ButtonB)
	require.Zero(t, c.pressed&uint8(ButtonB))
}
