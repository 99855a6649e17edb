// Package joypad emulates the P1 button matrix register (0xFF00). Key
// up/down events are delivered by the host glue via KeyDown/KeyUp; the
// package itself has no notion of keyboards, SDL scancodes, or
// anything else host-specific (spec §5's "shared-resource policy").
package joypad

import (
	"github.com/dmgcore/dmgcore/internal/interrupts"
)

// Button identifies one of the eight physical buttons.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

const Register uint16 = 0xFF00

// directionMask and buttonMask split the 8 buttons into the two rows P1
// multiplexes: directions report on bits 3..0 when bit 4 (select
// direction) is low, buttons report on the same nibble when bit 5
// (select buttons) is low.
const (
	directionMask = ButtonRight | ButtonLeft | ButtonUp | ButtonDown
	buttonMask    = ButtonA | ButtonB | ButtonSelect | ButtonStart
)

// Controller is the joypad's P1 register plus the host-visible button
// state (1 = pressed, opposite polarity of the bus-visible register,
// which is active-low).
type Controller struct {
	// selectLines holds bits 5 (select buttons) and 4 (select
	// direction) of P1 as written by the game; both start high
	// (deselected).
	selectLines uint8
	// pressed is a 1 bit per currently held-down button.
	pressed uint8

	irq *interrupts.Service
}

// NewController returns a joypad with nothing pressed and both select
// lines deselected.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{selectLines: 0x30, irq: irq}
}

// Read returns the current value of P1. Bits 7..6 always read 1; when
// both select lines are high (deselected) bits 3..0 read 1 (spec §6).
func (c *Controller) Read(address uint16) uint8 {
	if address != Register {
		panic("joypad: illegal read outside P1")
	}
	row := uint8(0x0F)
	if c.selectLines&0x10 == 0 { // direction row selected
		row &= ^c.rowBits(uint8(directionMask), 4)
	}
	if c.selectLines&0x20 == 0 { // button row selected
		row &= ^c.rowBits(uint8(buttonMask), 0)
	}
	return 0xC0 | c.selectLines | row
}

// rowBits extracts the 4 buttons of mask from the pressed state and
// packs them into the low nibble, shifting direction buttons down by
// `shift` bits first (Right/Left/Up/Down occupy bits 4..7 of Button).
func (c *Controller) rowBits(mask uint8, shift uint8) uint8 {
	return (c.pressed & mask) >> shift
}

// Write updates the select lines (bits 5..4); bits 3..0 of P1 are
// read-only from the bus.
func (c *Controller) Write(address uint16, value uint8) {
	if address != Register {
		panic("joypad: illegal write outside P1")
	}
	c.selectLines = (c.selectLines & 0xCF) | (value & 0x30)
}

// Update satisfies the IODevice contract; the joypad has no internal
// clock to advance.
func (c *Controller) Update(uint8) {}

// KeyDown marks a button as held and requests the joypad interrupt if
// the game is currently selecting the row that button belongs to and
// it was not already held (spec §6).
func (c *Controller) KeyDown(k Button) {
	already := c.pressed&uint8(k) != 0
	c.pressed |= uint8(k)

	selected := false
	if k&directionMask != 0 && c.selectLines&0x10 == 0 {
		selected = true
	}
	if k&buttonMask != 0 && c.selectLines&0x20 == 0 {
		selected = true
	}
	if !already && selected {
		c.irq.Request(interrupts.JoypadFlag)
	}
}

// KeyUp marks a button as released.
func (c *Controller) KeyUp(k Button) {
	c.pressed &^= uint8(k)
}
