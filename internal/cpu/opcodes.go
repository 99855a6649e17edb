package cpu

import "fmt"

// execute decodes and runs a single base-table opcode. The two large
// regular regions of the table (0x40-0x7F LD r,r' and 0x80-0xBF ALU
// A,r') are handled by bit decomposition rather than 128 explicit
// cases; everything else is enumerated, matching how the table is
// actually laid out in the CPU manual.
func (c *CPU) execute(opcode uint8) {
	switch {
	case opcode == 0x76:
		// HALT latches halted whatever the state of IME; Step clears it
		// as soon as an enabled interrupt is pending. The HALT bug (PC
		// failing to advance past the next opcode when IME is clear and
		// an interrupt is already pending) is not modelled — SPEC_FULL
		// §4 records this choice.
		c.halted = true
		return
	case opcode >= 0x40 && opcode <= 0x7F:
		dst := (opcode >> 3) & 0x07
		src := opcode & 0x07
		c.setR8(dst, c.getR8(src))
		return
	case opcode >= 0x80 && opcode <= 0xBF:
		c.executeALUBlock(opcode)
		return
	}

	switch opcode {
	case 0x00: // NOP
	case 0x10: // STOP
		c.fetch8() // STOP is followed by a padding byte on real hardware
	case 0xF3: // DI
		c.irq.IME = false
	case 0xFB: // EI
		c.irq.IME = true

	// 8-bit immediate loads: LD r,d8
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E:
		dst := (opcode >> 3) & 0x07
		c.setR8(dst, c.fetch8())

	// 16-bit immediate loads: LD rr,d16
	case 0x01, 0x11, 0x21, 0x31:
		pair := (opcode >> 4) & 0x03
		c.setR16sp(pair, c.fetch16())

	case 0x08: // LD (a16),SP
		addr := c.fetch16()
		c.writeWord(addr, c.SP)

	case 0xF9: // LD SP,HL
		c.SP = c.Reg.HL()
		c.internalDelay()

	case 0xF8: // LD HL,SP+e8
		e := int8(c.fetch8())
		c.Reg.SetHL(c.addSPSigned(e))
		c.internalDelay()

	case 0xE8: // ADD SP,e8
		e := int8(c.fetch8())
		c.SP = c.addSPSigned(e)
		c.internalDelay()
		c.internalDelay()

	// indirect A loads
	case 0x02: // LD (BC),A
		c.writeByte(c.Reg.BC(), c.Reg.A)
	case 0x12: // LD (DE),A
		c.writeByte(c.Reg.DE(), c.Reg.A)
	case 0x0A: // LD A,(BC)
		c.Reg.A = c.readByte(c.Reg.BC())
	case 0x1A: // LD A,(DE)
		c.Reg.A = c.readByte(c.Reg.DE())
	case 0x22: // LD (HL+),A
		c.writeByte(c.Reg.HL(), c.Reg.A)
		c.Reg.SetHL(c.Reg.HL() + 1)
	case 0x2A: // LD A,(HL+)
		c.Reg.A = c.readByte(c.Reg.HL())
		c.Reg.SetHL(c.Reg.HL() + 1)
	case 0x32: // LD (HL-),A
		c.writeByte(c.Reg.HL(), c.Reg.A)
		c.Reg.SetHL(c.Reg.HL() - 1)
	case 0x3A: // LD A,(HL-)
		c.Reg.A = c.readByte(c.Reg.HL())
		c.Reg.SetHL(c.Reg.HL() - 1)
	case 0xE0: // LDH (a8),A
		c.writeByte(0xFF00+uint16(c.fetch8()), c.Reg.A)
	case 0xF0: // LDH A,(a8)
		c.Reg.A = c.readByte(0xFF00 + uint16(c.fetch8()))
	case 0xE2: // LD (C),A
		c.writeByte(0xFF00+uint16(c.Reg.C), c.Reg.A)
	case 0xF2: // LD A,(C)
		c.Reg.A = c.readByte(0xFF00 + uint16(c.Reg.C))
	case 0xEA: // LD (a16),A
		c.writeByte(c.fetch16(), c.Reg.A)
	case 0xFA: // LD A,(a16)
		c.Reg.A = c.readByte(c.fetch16())

	// 16-bit INC/DEC (no flags affected)
	case 0x03, 0x13, 0x23, 0x33:
		pair := (opcode >> 4) & 0x03
		c.setR16sp(pair, c.getR16sp(pair)+1)
		c.internalDelay()
	case 0x0B, 0x1B, 0x2B, 0x3B:
		pair := (opcode >> 4) & 0x03
		c.setR16sp(pair, c.getR16sp(pair)-1)
		c.internalDelay()

	// 8-bit INC/DEC
	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C:
		r := (opcode >> 3) & 0x07
		c.setR8(r, c.inc8(c.getR8(r)))
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D:
		r := (opcode >> 3) & 0x07
		c.setR8(r, c.dec8(c.getR8(r)))

	// ADD HL,rr
	case 0x09, 0x19, 0x29, 0x39:
		pair := (opcode >> 4) & 0x03
		c.addHL16(c.getR16sp(pair))

	// rotate-accumulator shortcuts: unlike the CB-prefixed rotate
	// instructions, these never set Z regardless of the result.
	case 0x07: // RLCA
		c.Reg.A = c.rotateLeft(c.Reg.A, false, false)
	case 0x17: // RLA
		c.Reg.A = c.rotateLeft(c.Reg.A, true, false)
	case 0x0F: // RRCA
		c.Reg.A = c.rotateRight(c.Reg.A, false, false)
	case 0x1F: // RRA
		c.Reg.A = c.rotateRight(c.Reg.A, true, false)

	case 0x27: // DAA
		c.daa()
	case 0x2F: // CPL
		c.cpl()
	case 0x37: // SCF
		c.scf()
	case 0x3F: // CCF
		c.ccf()

	// relative jumps
	case 0x18: // JR e8
		c.jumpRelative(true)
	case 0x20, 0x28, 0x30, 0x38:
		cc := (opcode >> 3) & 0x03
		c.jumpRelative(c.checkCond(cc))

	// absolute jumps
	case 0xC3: // JP a16
		c.PC = c.fetch16()
		c.internalDelay()
	case 0xE9: // JP HL (no internal delay: the only jump that doesn't read the target through the bus)
		c.PC = c.Reg.HL()
	case 0xC2, 0xCA, 0xD2, 0xDA:
		cc := (opcode >> 3) & 0x03
		target := c.fetch16()
		if c.checkCond(cc) {
			c.PC = target
			c.internalDelay()
		}

	// calls
	case 0xCD: // CALL a16
		target := c.fetch16()
		c.internalDelay()
		c.push16(c.PC)
		c.PC = target
	case 0xC4, 0xCC, 0xD4, 0xDC:
		cc := (opcode >> 3) & 0x03
		target := c.fetch16()
		if c.checkCond(cc) {
			c.internalDelay()
			c.push16(c.PC)
			c.PC = target
		}

	// returns
	case 0xC9: // RET
		c.PC = c.pop16()
		c.internalDelay()
	case 0xD9: // RETI
		c.PC = c.pop16()
		c.irq.IME = true
		c.internalDelay()
	case 0xC0, 0xC8, 0xD0, 0xD8:
		cc := (opcode >> 3) & 0x03
		c.internalDelay()
		if c.checkCond(cc) {
			c.PC = c.pop16()
			c.internalDelay()
		}

	// restarts
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		target := uint16(opcode & 0x38)
		c.internalDelay()
		c.push16(c.PC)
		c.PC = target

	// stack
	case 0xC1, 0xD1, 0xE1, 0xF1:
		pair := (opcode >> 4) & 0x03
		c.setR16af(pair, c.pop16())
	case 0xC5, 0xD5, 0xE5, 0xF5:
		pair := (opcode >> 4) & 0x03
		c.internalDelay()
		c.push16(c.getR16af(pair))

	// ALU A,d8 immediate forms
	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE:
		op := (opcode >> 3) & 0x07
		c.aluOp(op, c.fetch8())

	case 0xCB:
		c.executeCB(c.fetch8())

	default:
		panic(fmt.Sprintf("cpu: illegal/unimplemented opcode %#02x at PC=%#04x", opcode, c.PC-1))
	}
}

// executeALUBlock handles the 0x80-0xBF region: ADD/ADC/SUB/SBC/AND/
// XOR/OR/CP, A against each of the eight r8 operands.
func (c *CPU) executeALUBlock(opcode uint8) {
	op := (opcode >> 3) & 0x07
	value := c.getR8(opcode & 0x07)
	c.aluOp(op, value)
}

// aluOp applies one of the 8 ALU operations to A and an already-
// fetched operand; shared by the 0x80-0xBF block and the 0xC6-0xFE
// immediate forms.
func (c *CPU) aluOp(op uint8, value uint8) {
	switch op {
	case 0:
		c.Reg.A = c.add8(c.Reg.A, value, false)
	case 1:
		c.Reg.A = c.add8(c.Reg.A, value, true)
	case 2:
		c.Reg.A = c.sub8(c.Reg.A, value, false)
	case 3:
		c.Reg.A = c.sub8(c.Reg.A, value, true)
	case 4:
		c.Reg.A = c.and8(c.Reg.A, value)
	case 5:
		c.Reg.A = c.xor8(c.Reg.A, value)
	case 6:
		c.Reg.A = c.or8(c.Reg.A, value)
	case 7:
		c.sub8(c.Reg.A, value, false) // CP: compute flags, discard result
	}
}

// jumpRelative reads the signed displacement byte unconditionally
// (the fetch itself always costs time), then applies PC += e and the
// extra internal cycle only if taken is true.
func (c *CPU) jumpRelative(taken bool) {
	e := int8(c.fetch8())
	if taken {
		c.PC = uint16(int32(c.PC) + int32(e))
		c.internalDelay()
	}
}
