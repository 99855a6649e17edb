// Package mmu provides the memory management unit binding the CPU to
// every other component. The MMU owns no simulation logic of its own:
// it decodes addresses and dispatches reads/writes to whichever
// component is mapped there, and fans a batch of elapsed T-cycles out
// to every peripheral once per instruction (spec §4.1, §4.5).
package mmu

import (
	"github.com/dmgcore/dmgcore/internal/cartridge"
	"github.com/dmgcore/dmgcore/internal/interrupts"
	"github.com/dmgcore/dmgcore/internal/joypad"
	"github.com/dmgcore/dmgcore/internal/ppu"
	"github.com/dmgcore/dmgcore/internal/timer"
	"github.com/dmgcore/dmgcore/pkg/log"
)

// IODevice is the contract every bus-mapped component satisfies:
// register-level read/write plus a batched tick update, mirroring
// spec §4.1's IODevice trait.
type IODevice interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Update(tick uint8)
}

const (
	wramSize = 0x2000 // 0xC000-0xDFFF, no CGB bank switching (spec §3)
	hramSize = 0x7F   // 0xFF80-0xFFFE
)

// MMU is the 64 KiB address space router.
type MMU struct {
	cart    *cartridge.Cartridge
	ppu     *ppu.PPU
	timer   *timer.Controller
	joypad  *joypad.Controller
	irq     *interrupts.Service

	wram [wramSize]byte
	hram [hramSize]byte

	log log.Logger
}

// New constructs an MMU wired to every peripheral. All five are
// expected to be fully constructed (including sharing the same
// *interrupts.Service) before this call.
func New(cart *cartridge.Cartridge, p *ppu.PPU, t *timer.Controller, j *joypad.Controller, irq *interrupts.Service, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.New()
	}
	return &MMU{
		cart:   cart,
		ppu:    p,
		timer:  t,
		joypad: j,
		irq:    irq,
		log:    logger,
	}
}

// Read decodes address and returns the byte mapped there. Unmapped
// holes, the OAM-corruption region 0xFEA0-0xFEFF included, read back
// as 0xFF, matching spec §3's "reads as 0xFF" convention for
// unimplemented I/O.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.cart.Read(address)
	case address < 0xA000:
		return m.ppu.Read(address)
	case address < 0xC000:
		return m.cart.Read(address)
	case address < 0xE000:
		return m.wram[address-0xC000]
	case address < 0xFE00:
		return m.wram[address-0xE000] // echo RAM mirrors 0xC000-0xDDFF
	case address < 0xFEA0:
		return m.ppu.Read(address)
	case address < 0xFF00:
		return 0xFF // OAM corruption region, not modeled
	case address == joypad.Register:
		return m.joypad.Read(address)
	case address >= timer.DIVRegister && address <= timer.TACRegister:
		return m.timer.Read(address)
	case address == interrupts.FlagRegister:
		return m.irq.Read(address)
	case address == 0xFF46:
		return 0xFF // OAM DMA trigger: handled by Write, not readable
	case address >= 0xFF40 && address <= 0xFF4B:
		return m.ppu.Read(address)
	case address >= 0xFF80 && address < 0xFFFF:
		return m.hram[address-0xFF80]
	case address == interrupts.EnableRegister:
		return m.irq.Read(address)
	}
	return 0xFF
}

// Write decodes address and routes the write. 0xFF46 (OAM DMA) is
// handled instantaneously here rather than by the PPU, per spec §6's
// allowance that DMA timing need not be modeled cycle-accurately.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.cart.Write(address, value)
	case address < 0xA000:
		m.ppu.Write(address, value)
	case address < 0xC000:
		m.cart.Write(address, value)
	case address < 0xE000:
		m.wram[address-0xC000] = value
	case address < 0xFE00:
		m.wram[address-0xE000] = value
	case address < 0xFEA0:
		m.ppu.Write(address, value)
	case address < 0xFF00:
		// OAM corruption region, writes discarded.
	case address == 0xFF46:
		m.performOAMDMA(value)
	case address == joypad.Register:
		m.joypad.Write(address, value)
	case address >= timer.DIVRegister && address <= timer.TACRegister:
		m.timer.Write(address, value)
	case address == interrupts.FlagRegister:
		m.irq.Write(address, value)
	case address >= 0xFF40 && address <= 0xFF4B:
		m.ppu.Write(address, value)
	case address >= 0xFF80 && address < 0xFFFF:
		m.hram[address-0xFF80] = value
	case address == interrupts.EnableRegister:
		m.irq.Write(address, value)
	default:
		// remaining unmapped I/O holes (sound, serial, etc; spec's
		// explicit non-goals) swallow writes silently.
	}
}

// performOAMDMA copies 160 bytes from src*0x100 into OAM. Source pages
// above 0xDF (which would read echo RAM, OAM, or I/O) are a fatal
// error and panic.
func (m *MMU) performOAMDMA(src uint8) {
	if src > 0xDF {
		panic("mmu: OAM DMA requested from a source page above 0xDF")
	}
	base := uint16(src) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.ppu.Write(0xFE00+i, m.Read(base+i))
	}
}

// Update fans the elapsed T-cycles out to every peripheral. Cartridge
// goes first (it has no interrupt source today but may gain an RTC
// later), then PPU, timer, and joypad, matching spec §4.5's fan-out
// order. Peripherals raise their interrupts on the shared
// interrupts.Service themselves, so nothing is transferred here.
func (m *MMU) Update(tick uint8) {
	m.cart.Update(tick)
	m.ppu.Update(tick)
	m.timer.Update(tick)
	m.joypad.Update(tick)
}
