// Package gameboy wires the CPU, MMU, PPU, timer, joypad, and
// cartridge into one runnable machine and drives it one frame at a
// time, matching spec §6's top-level operations.
package gameboy

import (
	"os"

	"github.com/dmgcore/dmgcore/internal/cartridge"
	"github.com/dmgcore/dmgcore/internal/cpu"
	"github.com/dmgcore/dmgcore/internal/interrupts"
	"github.com/dmgcore/dmgcore/internal/joypad"
	"github.com/dmgcore/dmgcore/internal/mmu"
	"github.com/dmgcore/dmgcore/internal/ppu"
	"github.com/dmgcore/dmgcore/internal/ppu/palette"
	"github.com/dmgcore/dmgcore/internal/timer"
	"github.com/dmgcore/dmgcore/pkg/log"
)

// TicksPerFrame is the number of T-cycles in one 59.7 Hz video frame:
// 154 scanlines * 456 dots.
const TicksPerFrame = 154 * 456

// GameBoy is the assembled machine.
type GameBoy struct {
	CPU     *cpu.CPU
	MMU     *mmu.MMU
	PPU     *ppu.PPU
	Timer   *timer.Controller
	Joypad  *joypad.Controller
	Cart    *cartridge.Cartridge
	IRQ     *interrupts.Service

	log log.Logger
}

// New assembles a machine around an already-loaded cartridge.
func New(cart *cartridge.Cartridge, logger log.Logger) *GameBoy {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	irq := interrupts.NewService()
	p := ppu.New(irq)
	t := timer.NewController(irq)
	j := joypad.NewController(irq)
	m := mmu.New(cart, p, t, j, irq, logger)
	cc := cpu.New(m, irq)

	return &GameBoy{
		CPU:    cc,
		MMU:    m,
		PPU:    p,
		Timer:  t,
		Joypad: j,
		Cart:   cart,
		IRQ:    irq,
		log:    logger,
	}
}

// SetPalette forwards a host recolouring choice to the PPU.
func (g *GameBoy) SetPalette(id palette.ID) {
	g.PPU.SetPalette(id)
}

// RunFrame steps the CPU until at least one full frame's worth of
// T-cycles has elapsed, and returns the rendered frame buffer. Because
// instructions aren't divisible, a frame's final instruction may carry
// a handful of cycles past the boundary; the count starts again from
// zero on the next call, so that overshoot is not subtracted from the
// next frame.
func (g *GameBoy) RunFrame() *[ppu.ScreenWidth * ppu.ScreenHeight][3]uint8 {
	var elapsed uint32
	for elapsed < TicksPerFrame {
		elapsed += uint32(g.CPU.Step())
	}
	return &g.PPU.FrameBuffer
}

// KeyDown/KeyUp forward host input events to the joypad.
func (g *GameBoy) KeyDown(b joypad.Button) { g.Joypad.KeyDown(b) }
func (g *GameBoy) KeyUp(b joypad.Button)    { g.Joypad.KeyUp(b) }

// WriteSave persists battery-backed cartridge RAM to path, doing
// nothing if the cartridge has no battery.
func (g *GameBoy) WriteSave(path string) error {
	if !g.Cart.Header.HasBattery() {
		return nil
	}
	return os.WriteFile(path, g.Cart.SaveRAM(), 0o644)
}

// LoadSave restores battery-backed cartridge RAM from path. A missing
// file is not an error: it just means this is the cartridge's first
// run.
func (g *GameBoy) LoadSave(path string) error {
	if !g.Cart.Header.HasBattery() {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	g.Cart.LoadRAM(data)
	return nil
}
