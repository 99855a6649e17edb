//go:build !test

package rom

import "github.com/sqweek/dialog"

// AskForFile opens a native "open file" dialog pre-filtered to Game
// Boy ROM extensions and returns the chosen path, or an error if the
// user cancels.
func AskForFile(startingDir string) (string, error) {
	return dialog.File().
		Filter("Game Boy ROM", "gb", "gbc", "zip", "7z", "gz").
		SetStartDir(startingDir).
		Title("Open ROM").
		Load()
}
