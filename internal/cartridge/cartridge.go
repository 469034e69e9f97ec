// Package cartridge loads ROM images and implements the
// banking controllers that map them into the address space.
package cartridge

import (
	"github.com/cespare/xxhash"
)

// Controller routes reads and writes within the cartridge's
// address windows (0x0000 - 0x7FFF and 0xA000 - 0xBFFF)
// according to one banking scheme. Writes to the ROM windows
// reprogram the controller rather than storing anything.
//
// Controllers never fault on out of range bank selections:
// indices are reduced modulo the bank count at write time, so
// every subsequent access lands inside the image.
type Controller interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	// RAM returns the controller's external RAM, nil when the
	// cartridge has none. Used for battery saves.
	RAM() []byte
	// LoadRAM restores previously saved external RAM.
	LoadRAM(data []byte)
}

// Cartridge is a loaded ROM image together with the banking
// controller its header selected.
type Cartridge struct {
	Controller

	Header Header

	rom []byte
}

// NewCartridge parses and validates the image's header,
// selects the banking controller it names, and returns the
// loaded cartridge. A *LoadError is returned when the image is
// malformed or names an unsupported controller.
func NewCartridge(rom []byte) (*Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{
		Header: header,
		rom:    rom,
	}

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		c.Controller = newROMController(rom, header)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		c.Controller = newMBC1(rom, header)
	case MBC2, MBC2BATT:
		c.Controller = newMBC2(rom, header)
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		c.Controller = newMBC3(rom, header)
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		c.Controller = newMBC5(rom, header)
	default:
		return nil, unsupportedController(header.CartridgeType)
	}

	return c, nil
}

// Title returns the game title from the header.
func (c *Cartridge) Title() string {
	return c.Header.Title
}

// HasBattery reports whether the cartridge persists its RAM.
func (c *Cartridge) HasBattery() bool {
	return c.Header.CartridgeType.hasBattery()
}

// Fingerprint returns a hash of the ROM image, used to key
// save files when the ROM's path is unavailable.
func (c *Cartridge) Fingerprint() uint64 {
	return xxhash.Sum64(c.rom)
}

// romBankCount returns the number of 16KiB ROM banks in the
// image.
func romBankCount(rom []byte) uint32 {
	return uint32(len(rom) / 0x4000)
}

// ramBankCount returns the number of 8KiB RAM banks.
func ramBankCount(ram []byte) uint32 {
	return uint32(len(ram) / 0x2000)
}
