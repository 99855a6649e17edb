package cpu

// executeCB decodes and runs a 0xCB-prefixed opcode. The table is
// fully regular: bits 7-6 select the operation group, bits 5-3 select
// either the rotate/shift variant or the bit index, and bits 2-0
// select the r8 operand exactly as in the base table.
func (c *CPU) executeCB(opcode uint8) {
	group := opcode >> 6
	sub := (opcode >> 3) & 0x07
	r := opcode & 0x07

	switch group {
	case 0: // rotate/shift
		v := c.getR8(r)
		switch sub {
		case 0: // RLC
			v = c.rotateLeft(v, false, true)
		case 1: // RRC
			v = c.rotateRight(v, false, true)
		case 2: // RL
			v = c.rotateLeft(v, true, true)
		case 3: // RR
			v = c.rotateRight(v, true, true)
		case 4: // SLA
			v = c.shiftLeftArithmetic(v)
		case 5: // SRA
			v = c.shiftRightArithmetic(v)
		case 6: // SWAP
			v = c.swap(v)
		case 7: // SRL
			v = c.shiftRightLogical(v)
		}
		c.setR8(r, v)

	case 1: // BIT
		c.bit(c.getR8(r), sub)

	case 2: // RES
		c.setR8(r, resBit(c.getR8(r), sub))

	case 3: // SET
		c.setR8(r, setBit(c.getR8(r), sub))
	}
}
