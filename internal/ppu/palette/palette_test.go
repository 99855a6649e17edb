package palette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByNameResolvesKnownNames(t *testing.T) {
	require.Equal(t, Green, ByName("green"))
	require.Equal(t, Red, ByName("red"))
	require.Equal(t, Yellow, ByName("yellow"))
}

func TestByNameDefaultsToGreyscale(t *testing.T) {
	require.Equal(t, Greyscale, ByName("nonsense"))
	require.Equal(t, Greyscale, ByName(""))
}

func TestGetIndexesShadeWithinPalette(t *testing.T) {
	require.Equal(t, [3]uint8{0xFF, 0xFF, 0xFF}, Get(Greyscale, 0))
	require.Equal(t, [3]uint8{0x00, 0x00, 0x00}, Get(Greyscale, 3))
	require.Equal(t, [3]uint8{0x9B, 0xBC, 0x0F}, Get(Green, 0))
}
