package lcd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerWriteReadRoundTrip(t *testing.T) {
	c := NewController()
	c.Write(ControlRegister, 0x93) // enabled, BG tile map 9800, unsigned tile data, BG+sprite on

	require.True(t, c.Enabled)
	require.True(t, c.BackgroundEnabled)
	require.True(t, c.SpriteEnabled)
	require.False(t, c.WindowEnabled)
	require.Equal(t, uint16(0x8000), c.TileDataAddress)
	require.False(t, c.UsingSignedTileData())
	require.Equal(t, uint8(0x93), c.Read(ControlRegister))
}

func TestControllerSignedTileDataWhenBitClear(t *testing.T) {
	c := NewController()
	c.Write(ControlRegister, 0x81) // bit 4 clear
	require.True(t, c.UsingSignedTileData())
}

func TestStatusReadAlwaysSetsBit7(t *testing.T) {
	s := NewStatus()
	require.Equal(t, uint8(0x80), s.Read(StatusRegister))
}

func TestStatusModeBitsReflectCurrentMode(t *testing.T) {
	s := NewStatus()
	s.SetMode(PixelTransfer)
	require.Equal(t, uint8(0x83), s.Read(StatusRegister))
}

func TestStatusWriteOnlyTouchesInterruptEnableBits(t *testing.T) {
	s := NewStatus()
	s.SetMode(VBlank)
	s.Coincidence = true

	s.Write(StatusRegister, 0x78) // all four interrupt-enable bits set

	require.True(t, s.LYCInterrupt)
	require.True(t, s.OAMInterrupt)
	require.True(t, s.VBlankInterrupt)
	require.True(t, s.HBlankInterrupt)
	require.Equal(t, VBlank, s.Mode) // untouched by the write
	require.True(t, s.Coincidence)   // untouched by the write
}
