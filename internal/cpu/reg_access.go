package cpu

// getR8/setR8 decode the standard 3-bit register field shared by most
// of the opcode map: B C D E H L (HL) A. Index 6, (HL), costs a bus
// access exactly like a real register would cost none, which is why
// callers never need to special-case it.
func (c *CPU) getR8(i uint8) uint8 {
	switch i {
	case 0:
		return c.Reg.B
	case 1:
		return c.Reg.C
	case 2:
		return c.Reg.D
	case 3:
		return c.Reg.E
	case 4:
		return c.Reg.H
	case 5:
		return c.Reg.L
	case 6:
		return c.readByte(c.Reg.HL())
	default:
		return c.Reg.A
	}
}

func (c *CPU) setR8(i uint8, v uint8) {
	switch i {
	case 0:
		c.Reg.B = v
	case 1:
		c.Reg.C = v
	case 2:
		c.Reg.D = v
	case 3:
		c.Reg.E = v
	case 4:
		c.Reg.H = v
	case 5:
		c.Reg.L = v
	case 6:
		c.writeByte(c.Reg.HL(), v)
	default:
		c.Reg.A = v
	}
}

// getR16sp/setR16sp decode the BC/DE/HL/SP register-pair field used by
// 16-bit loads, INC rr/DEC rr, and ADD HL,rr.
func (c *CPU) getR16sp(i uint8) uint16 {
	switch i {
	case 0:
		return c.Reg.BC()
	case 1:
		return c.Reg.DE()
	case 2:
		return c.Reg.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setR16sp(i uint8, v uint16) {
	switch i {
	case 0:
		c.Reg.SetBC(v)
	case 1:
		c.Reg.SetDE(v)
	case 2:
		c.Reg.SetHL(v)
	default:
		c.SP = v
	}
}

// getR16af/setR16af decode the BC/DE/HL/AF register-pair field used by
// PUSH/POP, which uses AF instead of SP in the fourth slot.
func (c *CPU) getR16af(i uint8) uint16 {
	switch i {
	case 0:
		return c.Reg.BC()
	case 1:
		return c.Reg.DE()
	case 2:
		return c.Reg.HL()
	default:
		return c.Reg.AF()
	}
}

func (c *CPU) setR16af(i uint8, v uint16) {
	switch i {
	case 0:
		c.Reg.SetBC(v)
	case 1:
		c.Reg.SetDE(v)
	case 2:
		c.Reg.SetHL(v)
	default:
		c.Reg.SetAF(v)
	}
}

// checkCond decodes the 2-bit condition-code field used by conditional
// JR/JP/CALL/RET: NZ Z NC C.
func (c *CPU) checkCond(i uint8) bool {
	switch i {
	case 0:
		return !c.Reg.zero()
	case 1:
		return c.Reg.zero()
	case 2:
		return !c.Reg.carry()
	default:
		return c.Reg.carry()
	}
}
