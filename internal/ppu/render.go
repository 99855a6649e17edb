package ppu

import "github.com/dmgcore/dmgcore/internal/ppu/palette"

// renderScanline draws one full row of FrameBuffer: background, then
// window, then sprites, respecting LCDC's enable bits and OBJ
// priority (spec §4.4). It is called once per line, at the
// PixelTransfer-to-HBlank boundary.
func (p *PPU) renderScanline(ly uint8) {
	if ly >= ScreenHeight {
		return
	}

	var bgIndex [ScreenWidth]uint8 // raw 2-bit colour index per pixel, for sprite priority

	if p.lcdc.BackgroundEnabled {
		p.renderBackground(ly, &bgIndex)
	} else {
		for x := range bgIndex {
			bgIndex[x] = 0
			p.plot(x, int(ly), p.shade(p.bgp, 0))
		}
	}

	if p.lcdc.WindowEnabled && ly >= p.wy {
		p.renderWindow(ly, &bgIndex)
	}

	if p.lcdc.SpriteEnabled {
		p.renderSprites(ly, &bgIndex)
	}
}

// renderBackground fills bgIndex and FrameBuffer for the background
// layer, wrapping the 256x256 tile map by SCX/SCY.
func (p *PPU) renderBackground(ly uint8, bgIndex *[ScreenWidth]uint8) {
	y := ly + p.scy
	tileRow := uint16(y/8) * 32

	for x := 0; x < ScreenWidth; x++ {
		effX := uint8(x) + p.scx
		tileCol := uint16(effX / 8)

		tileNumAddr := p.lcdc.BackgroundTileMapAddress + tileRow + tileCol
		tileNum := p.vram[tileNumAddr-0x8000]

		tileDataAddr := p.tileAddress(tileNum)
		line := y % 8
		lo := p.vram[tileDataAddr+uint16(line)*2-0x8000]
		hi := p.vram[tileDataAddr+uint16(line)*2+1-0x8000]

		bit := 7 - (effX % 8)
		idx := colourIndex(lo, hi, bit)

		bgIndex[x] = idx
		p.plot(x, int(ly), p.shade(p.bgp, idx))
	}
}

// renderWindow overlays the window layer starting at screen column
// WX-7, for lines at or below WY. The window's own internal line
// counter (how many window rows have been drawn so far) is
// approximated here as ly-wy, which is exact as long as the window is
// not toggled off and back on mid-frame — a case spec.md does not
// require modelling precisely.
func (p *PPU) renderWindow(ly uint8, bgIndex *[ScreenWidth]uint8) {
	windowLine := ly - p.wy
	tileRow := uint16(windowLine/8) * 32

	startX := int(p.wx) - 7
	for x := 0; x < ScreenWidth; x++ {
		if x < startX {
			continue
		}
		wx := uint8(x - startX)
		tileCol := uint16(wx / 8)

		tileNumAddr := p.lcdc.WindowTileMapAddress + tileRow + tileCol
		tileNum := p.vram[tileNumAddr-0x8000]

		tileDataAddr := p.tileAddress(tileNum)
		line := windowLine % 8
		lo := p.vram[tileDataAddr+uint16(line)*2-0x8000]
		hi := p.vram[tileDataAddr+uint16(line)*2+1-0x8000]

		bit := 7 - (wx % 8)
		idx := colourIndex(lo, hi, bit)

		bgIndex[x] = idx
		p.plot(x, int(ly), p.shade(p.bgp, idx))
	}
}

// renderSprites draws up to 10 OAM entries intersecting line ly,
// lowest OAM index wins ties, sprites closer to the front of OAM take
// priority over later ones at the same X (spec §4.4).
func (p *PPU) renderSprites(ly uint8, bgIndex *[ScreenWidth]uint8) {
	height := int(p.lcdc.SpriteHeight)

	var visible []spriteEntry
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := i * 4
		y := int(p.oam[base]) - 16
		if int(ly) < y || int(ly) >= y+height {
			continue
		}
		visible = append(visible, spriteEntry{
			y:        p.oam[base],
			x:        p.oam[base+1],
			tile:     p.oam[base+2],
			attr:     p.oam[base+3],
			oamIndex: i,
		})
	}

	// Lower X draws on top; for equal X, lower OAM index draws on top.
	// Sort highest priority first, then draw from the end of the list
	// so each later draw overwrites the lower-priority sprites beneath.
	for i := 0; i < len(visible); i++ {
		for j := i + 1; j < len(visible); j++ {
			if higherPriority(visible[j], visible[i]) {
				visible[i], visible[j] = visible[j], visible[i]
			}
		}
	}

	for k := len(visible) - 1; k >= 0; k-- {
		p.drawSprite(visible[k], ly, height, bgIndex)
	}
}

// higherPriority reports whether a should be drawn after (on top of) b.
func higherPriority(a, b spriteEntry) bool {
	if a.x != b.x {
		return a.x < b.x
	}
	return a.oamIndex < b.oamIndex
}

func (p *PPU) drawSprite(s spriteEntry, ly uint8, height int, bgIndex *[ScreenWidth]uint8) {
	spriteX := int(s.x) - 8
	spriteY := int(s.y) - 16

	line := int(ly) - spriteY
	yFlip := s.attr&0x40 != 0
	if yFlip {
		line = height - 1 - line
	}

	tile := s.tile
	if height == 16 {
		tile &^= 0x01
		if line >= 8 {
			tile |= 0x01
			line -= 8
		}
	}

	tileDataAddr := 0x8000 + uint16(tile)*16
	lo := p.vram[tileDataAddr+uint16(line)*2-0x8000]
	hi := p.vram[tileDataAddr+uint16(line)*2+1-0x8000]

	xFlip := s.attr&0x20 != 0
	behindBG := s.attr&0x80 != 0
	palReg := p.obp0
	if s.attr&0x10 != 0 {
		palReg = p.obp1
	}

	for col := 0; col < 8; col++ {
		screenX := spriteX + col
		if screenX < 0 || screenX >= ScreenWidth {
			continue
		}
		bit := uint8(col)
		if !xFlip {
			bit = 7 - bit
		}
		idx := colourIndex(lo, hi, bit)
		if idx == 0 {
			continue // transparent
		}
		if behindBG && bgIndex[screenX] != 0 {
			continue
		}
		p.plot(screenX, int(ly), p.shade(palReg, idx))
	}
}

// tileAddress resolves a tile number to its base VRAM address per
// LCDC's signed/unsigned tile-data addressing mode.
func (p *PPU) tileAddress(tileNum uint8) uint16 {
	if p.lcdc.UsingSignedTileData() {
		return uint16(0x9000 + int(int8(tileNum))*16)
	}
	return p.lcdc.TileDataAddress + uint16(tileNum)*16
}

// colourIndex extracts the 2-bit colour index for one pixel from a
// tile row's two bitplane bytes.
func colourIndex(lo, hi uint8, bit uint8) uint8 {
	l := (lo >> bit) & 1
	h := (hi >> bit) & 1
	return h<<1 | l
}

// shade applies a BGP/OBP0/OBP1 palette register to a raw 2-bit colour
// index, then looks the result up in the host recolouring table.
func (p *PPU) shade(paletteRegister uint8, index uint8) [3]uint8 {
	shade := (paletteRegister >> (index * 2)) & 0x03
	return palette.Get(p.paletteID, shade)
}

func (p *PPU) plot(x, y int, rgb [3]uint8) {
	p.FrameBuffer[y*ScreenWidth+x] = rgb
}
