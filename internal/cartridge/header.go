package cartridge

import "fmt"

// Type is the MBC family declared at header offset 0x0147.
type Type uint8

const (
	ROMOnly           Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBattery    Type = 0x03
	MBC2              Type = 0x05
	MBC2Battery       Type = 0x06
	MBC3TimerBattery  Type = 0x0F
	MBC3TimerRAMBatt  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBattery    Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBattery    Type = 0x1B
	MBC5Rumble        Type = 0x1C
	MBC5RumbleRAM     Type = 0x1D
	MBC5RumbleRAMBatt Type = 0x1E
)

// ramSizeCodes maps header offset 0x0149 to the external RAM size in
// bytes (spec §4.2).
var ramSizeCodes = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the parsed 0x0100-0x014F cartridge header.
type Header struct {
	Title           string
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	HeaderChecksum  uint8
	romBanks        uint
	hasBattery      bool
}

// HasBattery reports whether this cartridge's type code includes
// battery-backed RAM, i.e. whether a save file should be written on
// shutdown.
func (h *Header) HasBattery() bool {
	return h.hasBattery
}

// ROMBanks returns the number of 16 KiB ROM banks implied by the
// header, i.e. num_rom_banks in spec §3 invariant (vii).
func (h *Header) ROMBanks() uint {
	return h.romBanks
}

// String renders a short human-readable summary, used in load-time log
// lines.
func (h *Header) String() string {
	return fmt.Sprintf("%q (type=%#02x rom=%dKiB ram=%dKiB)", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}

// hasBatteryTypes lists every header type byte whose cartridge has
// battery-backed save RAM.
var hasBatteryTypes = map[Type]bool{
	MBC1RAMBattery:    true,
	MBC2Battery:       true,
	MBC3TimerBattery:  true,
	MBC3TimerRAMBatt:  true,
	MBC3RAMBattery:    true,
	MBC5RAMBattery:    true,
	MBC5RumbleRAMBatt: true,
}

// mbc1Family is the set of header type bytes spec §4.2 requires full
// MBC1 support for.
var mbc1Family = map[Type]bool{
	ROMOnly:        true,
	MBC1:           true,
	MBC1RAM:        true,
	MBC1RAMBattery: true,
}

// parseHeader parses the 0x0100-0x014F region of rom and validates it
// against spec §4.2: the header-implied ROM size must equal the file's
// length, and the header checksum must match the byte at 0x014D.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x0150 {
		return Header{}, fmt.Errorf("cartridge: file too short to contain a header (%d bytes)", len(rom))
	}

	h := Header{}

	// title occupies 0x0134-0x0143; trim the trailing NUL padding.
	title := rom[0x0134:0x0144]
	end := len(title)
	for end > 0 && title[end-1] == 0 {
		end--
	}
	h.Title = string(title[:end])

	h.CartridgeType = Type(rom[0x0147])
	h.hasBattery = hasBatteryTypes[h.CartridgeType]

	romCode := rom[0x0148]
	if romCode == 0 {
		h.ROMSize = 32 * 1024
	} else {
		h.ROMSize = (32 * 1024) << romCode
	}
	h.romBanks = h.ROMSize / 0x4000

	ramCode := rom[0x0149]
	ramSize, ok := ramSizeCodes[ramCode]
	if !ok {
		return Header{}, fmt.Errorf("cartridge: invalid RAM size code %#02x", ramCode)
	}
	h.RAMSize = ramSize

	h.HeaderChecksum = rom[0x014D]
	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	if sum != h.HeaderChecksum {
		return Header{}, fmt.Errorf("cartridge: header checksum mismatch (computed %#02x, header says %#02x)", sum, h.HeaderChecksum)
	}

	if uint(len(rom)) != h.ROMSize {
		return Header{}, fmt.Errorf("cartridge: file size %d does not match header-declared ROM size %d", len(rom), h.ROMSize)
	}

	return h, nil
}
