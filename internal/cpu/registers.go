package cpu

// Registers holds the eight 8-bit registers, addressable individually
// or pairwise as AF/BC/DE/HL. F's low nibble is always zero; the four
// flag bits live at bits 7-4 (spec §4.6).
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
}

const (
	flagZ uint8 = 1 << 7
	flagN uint8 = 1 << 6
	flagH uint8 = 1 << 5
	flagC uint8 = 1 << 4
)

func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F = uint8(v) & 0xF0 // POP AF masks the low nibble of F (spec §4.6)
}
func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }

func (r *Registers) zero() bool      { return r.F&flagZ != 0 }
func (r *Registers) subtract() bool  { return r.F&flagN != 0 }
func (r *Registers) halfCarry() bool { return r.F&flagH != 0 }
func (r *Registers) carry() bool     { return r.F&flagC != 0 }

// setFlags rewrites F from scratch; any parameter of -1-equivalent
// "leave alone" isn't needed because every instruction that touches
// flags at all specifies all four explicitly once expressed this way.
func (r *Registers) setFlags(z, n, h, c bool) {
	var f uint8
	if z {
		f |= flagZ
	}
	if n {
		f |= flagN
	}
	if h {
		f |= flagH
	}
	if c {
		f |= flagC
	}
	r.F = f
}
