// Package palette provides the RGB recolouring tables the display
// drivers use to turn a 2-bit DMG shade index into an on-screen
// colour. The hardware itself only ever produces 4 shades of grey;
// everything beyond Greyscale here is host-side recolouring, the same
// liberty most Game Boy emulators take (spec.md is silent on display
// colour, so this is purely additive).
package palette

// ID selects one of the built-in Palettes entries.
type ID int

const (
	Greyscale ID = iota
	Green
	Red
	Yellow
)

// Palette is 4 RGB triples, one per 2-bit shade index (0 = lightest).
type Palette struct {
	Colors [4][3]uint8
}

// Palettes is indexed by ID.
var Palettes = []Palette{
	Greyscale: {
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xAA, 0xAA, 0xAA},
			{0x55, 0x55, 0x55},
			{0x00, 0x00, 0x00},
		},
	},
	Green: {
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	Red: {
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0x00},
			{0xCC, 0x00, 0x00},
			{0x77, 0x00, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
	Yellow: {
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0x00},
			{0xCC, 0xCC, 0x00},
			{0x77, 0x77, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
}

// ByName resolves the -palette CLI flag value to an ID, defaulting to
// Greyscale for anything unrecognized.
func ByName(name string) ID {
	switch name {
	case "green":
		return Green
	case "red":
		return Red
	case "yellow":
		return Yellow
	default:
		return Greyscale
	}
}

// Get returns the RGB triple for shade index within the given palette.
// Each PPU instance owns its own ID rather than sharing a package
// global, so multiple emulator instances (e.g. the web driver serving
// several sessions) can run distinct palettes concurrently.
func Get(id ID, index uint8) [3]uint8 {
	return Palettes[id].Colors[index]
}
