package cartridge

// mbc1 implements the MBC1 bank-switching contract of spec §4.2. It is
// also the fallback banking scheme for header types spec.md explicitly
// allows to be treated this way (ROM-only and the recognized-but-not-
// fully-supported MBC2/MBC3/MBC5 families); see Load in cartridge.go.
type mbc1 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	// bankLo is the 5-bit primary bank register (0x2000-0x3FFF).
	bankLo uint8
	// bankHi is the 2-bit secondary bank register (0x4000-0x5FFF),
	// meaning differs by mode: ROM bank bits 6-5 in mode 0, RAM bank (or
	// ROM bank bits 6-5 for large-ROM carts) in mode 1.
	bankHi uint8
	// mode is the banking mode register (0x6000-0x7FFF): 0 selects
	// "simple" banking (bankHi only affects 0x4000-0x7FFF), 1 selects
	// "advanced" banking (bankHi also affects 0x0000-0x3FFF and RAM
	// bank selection).
	mode uint8

	romBanks uint
	ramBanks uint
}

func newMBC1(rom []byte, ramSize uint, romBanks uint) *mbc1 {
	ramBanks := ramSize / 0x2000
	if ramBanks == 0 && ramSize > 0 {
		ramBanks = 1
	}
	return &mbc1{
		rom:      rom,
		ram:      make([]byte, ramSize),
		romBanks: romBanks,
		ramBanks: ramBanks,
	}
}

// romBankLow returns the bank mapped at 0x0000-0x3FFF: bank 0 normally,
// or the bankHi bits alone (shifted into bank-number position, masked
// to romBanks) when in advanced mode on a cartridge with enough ROM for
// bankHi to address bank0 at all (spec §4.2 "bank-zero quirk" mirrored
// onto the low window).
func (m *mbc1) romBankLow() uint {
	if m.mode == 1 {
		return m.effectiveHighBits() & (m.romBanks - 1)
	}
	return 0
}

// effectiveHighBits returns bankHi shifted into bit positions 6-5 of
// the bank number.
func (m *mbc1) effectiveHighBits() uint {
	return uint(m.bankHi) << 5
}

// bankLoMasked applies the spec §4.2 bank-zero quirk: when the 5-bit
// bank-lo register is 0 it is read as 1, so once bankHi is folded in
// the effective banks 0x00/0x20/0x40/0x60 become 0x01/0x21/0x41/0x61.
func (m *mbc1) bankLoMasked() uint8 {
	lo := m.bankLo & 0x1F
	if lo == 0 {
		return 1
	}
	return lo
}

func (m *mbc1) readROM(address uint16) uint8 {
	switch {
	case address < 0x4000:
		bank := m.romBankLow()
		offset := bank*0x4000 + uint(address)
		return m.rom[offset%uint(len(m.rom))]
	case address < 0x8000:
		lo := uint(m.bankLoMasked())
		bank := (m.effectiveHighBits() | lo) & (m.romBanks - 1)
		offset := bank*0x4000 + uint(address-0x4000)
		return m.rom[offset%uint(len(m.rom))]
	}
	panic("cartridge: illegal ROM read")
}

func (m *mbc1) writeROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.bankLo = value & 0x1F
	case address < 0x6000:
		m.bankHi = value & 0x03
	case address < 0x8000:
		m.mode = value & 0x01
	default:
		panic("cartridge: illegal ROM write")
	}
}

func (m *mbc1) ramBank() uint {
	if m.mode == 1 && m.ramBanks > 1 {
		return uint(m.bankHi) % m.ramBanks
	}
	return 0
}

func (m *mbc1) readRAM(address uint16) uint8 {
	if !m.ramEnabled || len(m.ram) == 0 {
		return 0xFF
	}
	offset := m.ramBank()*0x2000 + uint(address-0xA000)
	return m.ram[offset%uint(len(m.ram))]
}

func (m *mbc1) writeRAM(address uint16, value uint8) {
	if !m.ramEnabled || len(m.ram) == 0 {
		return
	}
	offset := m.ramBank()*0x2000 + uint(address-0xA000)
	m.ram[offset%uint(len(m.ram))] = value
}
