// Package ppu implements the picture processing unit: VRAM, OAM, the
// mode state machine, and the background/window/sprite scanline
// renderer (spec §4.4). It renders one full scanline at a time rather
// than pixel-by-pixel, which is sufficient for the batched tick model
// the rest of the module uses — nothing downstream observes
// mid-scanline PPU state.
package ppu

import (
	"fmt"

	"github.com/dmgcore/dmgcore/internal/interrupts"
	"github.com/dmgcore/dmgcore/internal/ppu/lcd"
	"github.com/dmgcore/dmgcore/internal/ppu/palette"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	oamSearchDots     = 80
	pixelTransferDots = 172
	hblankDots        = 204
	lineDots          = oamSearchDots + pixelTransferDots + hblankDots // 456
	vblankLines       = 10
	totalLines        = ScreenHeight + vblankLines // 154
)

const (
	lcdcRegister = lcd.ControlRegister
	statRegister = lcd.StatusRegister
	scyRegister  = 0xFF42
	scxRegister  = 0xFF43
	lyRegister   = 0xFF44
	lycRegister  = 0xFF45
	bgpRegister  = 0xFF47
	obp0Register = 0xFF48
	obp1Register = 0xFF49
	wyRegister   = 0xFF4A
	wxRegister   = 0xFF4B
)

// spriteEntry is one 4-byte OAM record.
type spriteEntry struct {
	y, x, tile, attr uint8
	oamIndex         int
}

// PPU is the bus-facing handle for VRAM (0x8000-0x9FFF), OAM
// (0xFE00-0xFE9F), and the LCD register block (0xFF40-0xFF4B; the
// 0xFF46 DMA register is handled by the MMU).
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc *lcd.Controller
	stat *lcd.Status

	scy, scx uint8
	ly, lyc  uint8
	wy, wx   uint8
	bgp      uint8
	obp0     uint8
	obp1     uint8

	paletteID palette.ID

	dot uint32 // position within the current scanline, 0..455

	// FrameBuffer holds the most recently completed frame as packed
	// RGB triples, row-major, ScreenWidth*ScreenHeight long.
	FrameBuffer [ScreenWidth * ScreenHeight][3]uint8
	frameReady  bool

	irq *interrupts.Service
}

// New returns a PPU with LCDC/STAT in their post-boot-ROM reset state.
func New(irq *interrupts.Service) *PPU {
	p := &PPU{
		lcdc: lcd.NewController(),
		stat: lcd.NewStatus(),
		bgp:  0xFC,
		irq:  irq,
	}
	p.stat.SetMode(lcd.OAMSearch)
	return p
}

// SetPalette changes the host-side recolouring applied when reading
// out FrameBuffer; it has no effect on emulated state.
func (p *PPU) SetPalette(id palette.ID) {
	p.paletteID = id
}

// FrameReady reports and clears whether a new frame has completed
// since the last call, so a display driver can poll it once per host
// vsync instead of copying FrameBuffer on every PPU update.
func (p *PPU) FrameReady() bool {
	r := p.frameReady
	p.frameReady = false
	return r
}

// Read serves VRAM, OAM, and the LCD register block. VRAM is
// inaccessible (reads 0xFF) during PixelTransfer, and OAM during
// OAMSearch and PixelTransfer, mirroring real hardware's bus
// contention; when the LCD is off, everything is always accessible.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if p.lcdc.Enabled && p.stat.Mode == lcd.PixelTransfer {
			return 0xFF
		}
		return p.vram[address-0x8000]
	case address >= 0xFE00 && address < 0xFEA0:
		if p.lcdc.Enabled && (p.stat.Mode == lcd.OAMSearch || p.stat.Mode == lcd.PixelTransfer) {
			return 0xFF
		}
		return p.oam[address-0xFE00]
	case address == lcdcRegister:
		return p.lcdc.Read(address)
	case address == statRegister:
		return p.stat.Read(address)
	case address == scyRegister:
		return p.scy
	case address == scxRegister:
		return p.scx
	case address == lyRegister:
		return p.ly
	case address == lycRegister:
		return p.lyc
	case address == bgpRegister:
		return p.bgp
	case address == obp0Register:
		return p.obp0
	case address == obp1Register:
		return p.obp1
	case address == wyRegister:
		return p.wy
	case address == wxRegister:
		return p.wx
	}
	panic(fmt.Sprintf("ppu: illegal read from address %04X", address))
}

// Write mirrors Read's accessibility gating, and additionally handles
// the LY-is-read-only and STAT-mode/coincidence-bits-are-read-only
// rules.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if p.lcdc.Enabled && p.stat.Mode == lcd.PixelTransfer {
			return
		}
		p.vram[address-0x8000] = value
	case address >= 0xFE00 && address < 0xFEA0:
		if p.lcdc.Enabled && (p.stat.Mode == lcd.OAMSearch || p.stat.Mode == lcd.PixelTransfer) {
			return
		}
		p.oam[address-0xFE00] = value
	case address == lcdcRegister:
		wasEnabled := p.lcdc.Enabled
		p.lcdc.Write(address, value)
		switch {
		case wasEnabled && !p.lcdc.Enabled:
			p.ly = 0
			p.dot = 0
			p.stat.SetMode(lcd.HBlank)
		case !wasEnabled && p.lcdc.Enabled:
			p.ly = 0
			p.dot = 0
			p.stat.SetMode(lcd.OAMSearch)
		}
	case address == statRegister:
		p.stat.Write(address, value)
	case address == scyRegister:
		p.scy = value
	case address == scxRegister:
		p.scx = value
	case address == lyRegister:
		// LY is read-only on real hardware.
	case address == lycRegister:
		p.lyc = value
		p.checkCoincidence()
	case address == bgpRegister:
		p.bgp = value
	case address == obp0Register:
		p.obp0 = value
	case address == obp1Register:
		p.obp1 = value
	case address == wyRegister:
		p.wy = value
	case address == wxRegister:
		p.wx = value
	default:
		panic(fmt.Sprintf("ppu: illegal write to address %04X", address))
	}
}

// Update advances the mode state machine by tick T-cycles. It is a
// loop rather than a single arithmetic step because tick can span a
// mode boundary (the longest instruction is 24 T-cycles, always well
// under any single phase's length, but never assume that invariant
// holds for every future caller).
func (p *PPU) Update(tick uint8) {
	if !p.lcdc.Enabled {
		return
	}
	remaining := uint32(tick)
	for remaining > 0 {
		step := p.stepOnce(remaining)
		remaining -= step
	}
}

// stepOnce advances at most to the next mode/line boundary and
// returns how many dots it consumed.
func (p *PPU) stepOnce(budget uint32) uint32 {
	var boundary uint32
	switch {
	case p.ly >= ScreenHeight:
		boundary = lineDots
	case p.dot < oamSearchDots:
		boundary = oamSearchDots
	case p.dot < oamSearchDots+pixelTransferDots:
		boundary = oamSearchDots + pixelTransferDots
	default:
		boundary = lineDots
	}

	step := boundary - p.dot
	if step > budget {
		step = budget
	}
	p.dot += step

	if p.dot >= boundary {
		p.advanceMode()
	}
	return step
}

// advanceMode is called exactly when p.dot has just reached a phase
// boundary; it transitions mode, renders a scanline when leaving
// PixelTransfer, and rolls LY over at the end of a line.
func (p *PPU) advanceMode() {
	switch {
	case p.ly >= ScreenHeight:
		// inside VBlank; each of its 10 lines is one full lineDots tick.
		p.dot = 0
		p.ly++
		if p.ly >= totalLines {
			p.ly = 0
			p.stat.SetMode(lcd.OAMSearch)
			p.requestStatIfEnabled(p.stat.OAMInterrupt)
		}
		p.checkCoincidence()
		return
	case p.dot == oamSearchDots:
		p.stat.SetMode(lcd.PixelTransfer)
	case p.dot == oamSearchDots+pixelTransferDots:
		p.renderScanline(p.ly)
		p.stat.SetMode(lcd.HBlank)
		p.requestStatIfEnabled(p.stat.HBlankInterrupt)
	case p.dot == lineDots:
		p.dot = 0
		p.ly++
		if p.ly == ScreenHeight {
			p.stat.SetMode(lcd.VBlank)
			p.irq.Request(interrupts.VBlankFlag)
			p.requestStatIfEnabled(p.stat.VBlankInterrupt)
			p.frameReady = true
		} else {
			p.stat.SetMode(lcd.OAMSearch)
			p.requestStatIfEnabled(p.stat.OAMInterrupt)
		}
		p.checkCoincidence()
	}
}

func (p *PPU) requestStatIfEnabled(enabled bool) {
	if enabled {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// checkCoincidence updates STAT's coincidence flag and fires the LCD
// interrupt on a 0-to-1 transition condition (spec §4.4).
func (p *PPU) checkCoincidence() {
	match := p.ly == p.lyc
	rising := match && !p.stat.Coincidence
	p.stat.Coincidence = match
	if rising {
		p.requestStatIfEnabled(p.stat.LYCInterrupt)
	}
}
