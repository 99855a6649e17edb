// Package lcd holds the bit-field views of the two PPU control
// registers, LCDC (0xFF40) and STAT (0xFF41), plus the Mode enum they
// share. Keeping them here instead of inline in package ppu lets the
// PPU's mode state machine and scanline renderer read as intent
// ("lcd.BackgroundEnabled") rather than repeated shift-and-mask
// arithmetic against a raw byte.
package lcd

import (
	"fmt"

	"github.com/dmgcore/dmgcore/pkg/bits"
)

// Mode is one of the four PPU modes; its numeric value is also the
// value reported in STAT bits 1-0.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMSearch
	PixelTransfer
)

const (
	ControlRegister uint16 = 0xFF40
	StatusRegister  uint16 = 0xFF41
)

// Controller is the LCDC bit field (spec §4.4):
//
//	Bit 7 - LCD Enable
//	Bit 6 - Window Tile Map Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Enable
//	Bit 4 - BG & Window Tile Data Select (0=8800-97FF signed, 1=8000-8FFF unsigned)
//	Bit 3 - BG Tile Map Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - Sprite Size (0=8x8, 1=8x16)
//	Bit 1 - Sprite Enable
//	Bit 0 - BG/Window Enable
type Controller struct {
	Enabled                  bool
	WindowTileMapAddress     uint16
	WindowEnabled            bool
	TileDataAddress          uint16
	BackgroundTileMapAddress uint16
	SpriteHeight             uint8
	SpriteEnabled            bool
	BackgroundEnabled        bool
}

// NewController returns the post-boot-ROM reset state of LCDC (0x91).
func NewController() *Controller {
	return &Controller{
		WindowTileMapAddress:     0x9800,
		BackgroundTileMapAddress: 0x9800,
		TileDataAddress:          0x8000,
		SpriteHeight:             8,
		BackgroundEnabled:        true,
		SpriteEnabled:            false,
		WindowEnabled:            false,
		Enabled:                  true,
	}
}

func (c *Controller) Write(address uint16, value uint8) {
	if address != ControlRegister {
		panic(fmt.Sprintf("lcd: illegal write to controller at %04X", address))
	}
	c.Enabled = bits.Test(value, 7)
	if bits.Test(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	} else {
		c.WindowTileMapAddress = 0x9800
	}
	c.WindowEnabled = bits.Test(value, 5)
	if bits.Test(value, 4) {
		c.TileDataAddress = 0x8000
	} else {
		c.TileDataAddress = 0x8800
	}
	if bits.Test(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	} else {
		c.BackgroundTileMapAddress = 0x9800
	}
	c.SpriteHeight = 8 + uint8(bits.Val(value, 2))*8
	c.SpriteEnabled = bits.Test(value, 1)
	c.BackgroundEnabled = bits.Test(value, 0)
}

func (c *Controller) Read(address uint16) uint8 {
	if address != ControlRegister {
		panic(fmt.Sprintf("lcd: illegal read from controller at %04X", address))
	}
	var v uint8
	v = bits.SetIf(v, 7, c.Enabled)
	v = bits.SetIf(v, 6, c.WindowTileMapAddress == 0x9C00)
	v = bits.SetIf(v, 5, c.WindowEnabled)
	v = bits.SetIf(v, 4, c.TileDataAddress == 0x8000)
	v = bits.SetIf(v, 3, c.BackgroundTileMapAddress == 0x9C00)
	v = bits.SetIf(v, 2, c.SpriteHeight == 16)
	v = bits.SetIf(v, 1, c.SpriteEnabled)
	v = bits.SetIf(v, 0, c.BackgroundEnabled)
	return v
}

// UsingSignedTileData reports whether BG/window tile indices address
// 0x8800-0x97FF as a signed offset from 0x9000, rather than
// 0x8000-0x8FFF as an unsigned offset.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}

// Status is the STAT bit field. The two mode bits are write-protected
// in hardware (only the PPU's own SetMode changes them); the
// coincidence flag is likewise PPU-owned.
type Status struct {
	LYCInterrupt    bool
	OAMInterrupt    bool
	VBlankInterrupt bool
	HBlankInterrupt bool
	Coincidence     bool
	Mode            Mode
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) SetMode(mode Mode) {
	s.Mode = mode
}

func (s *Status) Write(address uint16, value uint8) {
	if address != StatusRegister {
		panic(fmt.Sprintf("lcd: illegal write to status at %04X", address))
	}
	s.LYCInterrupt = bits.Test(value, 6)
	s.OAMInterrupt = bits.Test(value, 5)
	s.VBlankInterrupt = bits.Test(value, 4)
	s.HBlankInterrupt = bits.Test(value, 3)
	// bits 2-0 are read-only, owned by the PPU's mode/coincidence state.
}

func (s *Status) Read(address uint16) uint8 {
	if address != StatusRegister {
		panic(fmt.Sprintf("lcd: illegal read from status at %04X", address))
	}
	var v uint8
	v = bits.SetIf(v, 6, s.LYCInterrupt)
	v = bits.SetIf(v, 5, s.OAMInterrupt)
	v = bits.SetIf(v, 4, s.VBlankInterrupt)
	v = bits.SetIf(v, 3, s.HBlankInterrupt)
	v = bits.SetIf(v, 2, s.Coincidence)
	v |= uint8(s.Mode) & 0x03
	return v | 0x80
}
