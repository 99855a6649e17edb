// Package cpu implements the Sharp LR35902 instruction set. It runs
// one instruction at a time via Step, accumulating the T-cycles every
// memory access and internal delay costs into a per-instruction
// counter, then hands that batch to the bus's Update once the
// instruction (and any interrupt dispatch that follows it) completes —
// the batched tick-accounting model of spec §2 and §4.1, rather than
// the teacher's per-T-cycle scheduler tick.
package cpu

import (
	"github.com/dmgcore/dmgcore/internal/interrupts"
)

// Bus is everything the CPU needs from the rest of the machine: bus
// access plus the batched peripheral update.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Update(tick uint8)
}

// CPU is the Sharp LR35902 core.
type CPU struct {
	Reg Registers
	SP  uint16
	PC  uint16

	halted bool

	bus Bus
	irq *interrupts.Service

	ticks uint8 // T-cycles spent so far in the instruction in progress
}

// EI sets IME the moment it executes rather than after the following
// instruction, trading the one piece of real hardware's interrupt
// fidelity (the `EI; RET` atomic-return idiom) for a simpler dispatch
// loop. See the EI case in execute.

// New returns a CPU in its reset state with the boot ROM skipped: PC
// at the cartridge entry point 0x0100 and every other register, SP and
// F included, zero.
func New(bus Bus, irq *interrupts.Service) *CPU {
	return &CPU{
		bus: bus,
		irq: irq,
		PC:  0x0100,
	}
}

// Step executes exactly one instruction (or, if halted, advances in
// 4-cycle increments waiting for a wakeup), services at most one
// interrupt if IME is set and one is pending, and returns the total
// number of T-cycles consumed. The bus's peripherals are advanced
// through Update exactly once for the instruction body and, if an
// interrupt was serviced, once more for the dispatch overhead.
func (c *CPU) Step() uint8 {
	c.ticks = 0

	if c.halted {
		if c.irq.Pending() {
			c.halted = false
		} else {
			c.tick(4)
			c.bus.Update(c.ticks)
			return c.ticks
		}
	}

	if !c.halted {
		opcode := c.fetch8()
		c.execute(opcode)
	}

	c.bus.Update(c.ticks)
	instructionTicks := c.ticks

	var dispatchTicks uint8
	if c.irq.IME && c.irq.Pending() {
		c.ticks = 0
		c.dispatchInterrupt()
		c.bus.Update(c.ticks)
		dispatchTicks = c.ticks
	}

	return instructionTicks + dispatchTicks
}

// dispatchInterrupt performs the hardware interrupt-acknowledge
// sequence: two wait states, push PC, jump to the serviced vector.
// NextVector has already cleared the corresponding IF bit and IME.
func (c *CPU) dispatchInterrupt() {
	c.tick(8) // two internal delay cycles
	vector := c.irq.NextVector()
	c.push16(c.PC)
	c.PC = vector
}

// tick adds n T-cycles to the instruction's running total. Every bus
// access and every documented internal delay goes through this so the
// accumulator matches the real instruction timing table.
func (c *CPU) tick(n uint8) {
	c.ticks += n
}

func (c *CPU) readByte(address uint16) uint8 {
	v := c.bus.Read(address)
	c.tick(4)
	return v
}

func (c *CPU) writeByte(address uint16, value uint8) {
	c.bus.Write(address, value)
	c.tick(4)
}

func (c *CPU) readWord(address uint16) uint16 {
	lo := c.readByte(address)
	hi := c.readByte(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(address uint16, value uint16) {
	c.writeByte(address, uint8(value))
	c.writeByte(address+1, uint8(value>>8))
}

func (c *CPU) fetch8() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	v := c.readWord(c.PC)
	c.PC += 2
	return v
}

func (c *CPU) push16(value uint16) {
	c.SP -= 2
	c.writeWord(c.SP, value)
}

func (c *CPU) pop16() uint16 {
	v := c.readWord(c.SP)
	c.SP += 2
	return v
}

// internalDelay accounts for an instruction cycle that touches no bus
// address (e.g. the extra cycle ADD SP,e8 spends computing the
// result before loading it into SP).
func (c *CPU) internalDelay() {
	c.tick(4)
}
