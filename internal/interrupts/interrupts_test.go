package interrupts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestAndPending(t *testing.T) {
	s := NewService()
	require.False(t, s.Pending())

	s.Request(TimerFlag)
	require.False(t, s.Pending()) // not enabled yet

	s.Enable = 1 << TimerFlag
	require.True(t, s.Pending())
}

func TestNextVectorPicksHighestPriorityAndClearsState(t *testing.T) {
	s := NewService()
	s.Enable = 0xFF
	s.Request(TimerFlag)
	s.Request(VBlankFlag)
	s.IME = true

	v := s.NextVector()
	require.Equal(t, VBlank, v) // VBlank (bit 0) outranks Timer (bit 2)
	require.False(t, s.IME)
	require.Zero(t, s.Flag&(1<<VBlankFlag))
	require.NotZero(t, s.Flag&(1<<TimerFlag)) // Timer still pending

	s.IME = true
	v = s.NextVector()
	require.Equal(t, Timer, v)
}

func TestNextVectorPanicsWhenNothingPending(t *testing.T) {
	s := NewService()
	require.Panics(t, func() { s.NextVector() })
}

func TestIFReadHasUpperBitsSet(t *testing.T) {
	s := NewService()
	s.Flag = 0x05
	require.Equal(t, uint8(0xE5), s.Read(FlagRegister))
}
