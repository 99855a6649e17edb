// Package cartridge parses a Game Boy ROM image and serves the
// 0x0000-0x7FFF and 0xA000-0xBFFF bus windows through a bank-switching
// controller. Only the MBC1 scheme is fully implemented; header types
// outside that family are recognized and logged but fall back to the
// MBC1 contract, per spec.md §4.2's explicit allowance that "other
// values may be parsed but behave as MBC1."
package cartridge

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/dmgcore/dmgcore/pkg/log"
)

// Cartridge is the bus-facing handle for an inserted ROM: header
// metadata plus the bank-switch controller (currently always an mbc1).
type Cartridge struct {
	Header Header
	ctrl   *mbc1
	log    log.Logger
}

// Load parses rom (a raw, uncompressed ROM image — archive unwrapping
// happens in pkg/rom before this is called) and constructs the
// matching bank-switch controller.
func Load(rom []byte, logger log.Logger) (*Cartridge, error) {
	if logger == nil {
		logger = log.NewNullLogger()
	}

	h, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	if !mbc1Family[h.CartridgeType] {
		logger.Infof("cartridge: header type %#02x (%s) is not a fully supported MBC; falling back to MBC1 banking", h.CartridgeType, mbcFamilyName(h.CartridgeType))
	}

	logger.Infof("cartridge: loaded %s, content hash %016x", h.String(), xxhash.Sum64(rom))

	c := &Cartridge{
		Header: h,
		ctrl:   newMBC1(rom, h.RAMSize, h.ROMBanks()),
		log:    logger,
	}
	return c, nil
}

// mbcFamilyName gives a short human label for a recognized-but-
// unsupported header type, for the fallback log line.
func mbcFamilyName(t Type) string {
	switch {
	case t == MBC2 || t == MBC2Battery:
		return "MBC2"
	case t >= MBC3TimerBattery && t <= MBC3RAMBattery:
		return "MBC3"
	case t >= MBC5 && t <= MBC5RumbleRAMBatt:
		return "MBC5"
	default:
		return "unknown"
	}
}

// Read serves the ROM (0x0000-0x7FFF) and external RAM (0xA000-0xBFFF)
// bus windows.
func (c *Cartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return c.ctrl.readROM(address)
	case address >= 0xA000 && address < 0xC000:
		return c.ctrl.readRAM(address)
	}
	panic(fmt.Sprintf("cartridge: illegal read from address %04X", address))
}

// Write serves the same two windows; writes to the ROM window program
// the bank-switch registers rather than ROM contents.
func (c *Cartridge) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		c.ctrl.writeROM(address, value)
	case address >= 0xA000 && address < 0xC000:
		c.ctrl.writeRAM(address, value)
	default:
		panic(fmt.Sprintf("cartridge: illegal write to address %04X", address))
	}
}

// Update satisfies the IODevice contract; cartridges without an
// onboard RTC (i.e. every cartridge this package fully supports) have
// no internal clock to advance.
func (c *Cartridge) Update(uint8) {}

// SaveRAM returns a copy of the external RAM contents, for persisting
// battery-backed saves to disk.
func (c *Cartridge) SaveRAM() []byte {
	out := make([]byte, len(c.ctrl.ram))
	copy(out, c.ctrl.ram)
	return out
}

// LoadRAM restores external RAM from a previously-saved image. A
// length mismatch against the cartridge's own RAM size is logged and
// the overlapping prefix is still applied, rather than refusing to
// load a save file from a different emulator's slightly-off RAM sizing.
func (c *Cartridge) LoadRAM(data []byte) {
	if len(data) != len(c.ctrl.ram) {
		c.log.Errorf("cartridge: save RAM size %d does not match cartridge RAM size %d", len(data), len(c.ctrl.ram))
	}
	n := copy(c.ctrl.ram, data)
	_ = n
}
