package rom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02, 0x03}, 0o644))

	data, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, data)
}

func TestSavePathReplacesExtension(t *testing.T) {
	require.Equal(t, "/roms/tetris.sav", SavePath("/roms/tetris.gb"))
	require.Equal(t, "/roms/pokemon.sav", SavePath("/roms/pokemon.gbc"))
}
