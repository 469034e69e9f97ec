package cartridge

import "fmt"

// ramMAP translates the RAM size code at 0x0149 into a size in
// bytes.
var ramMAP = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type is the cartridge controller type code at 0x0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
)

func (t Type) String() string {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return "ROM"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2BATT:
		return "MBC2"
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// hasBattery reports whether the controller type persists its
// RAM across power cycles.
func (t Type) hasBattery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MBC3TIMERBATT,
		MBC3TIMERRAMBATT, MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT:
		return true
	}
	return false
}

// hasTimer reports whether the controller type carries the
// MBC3 real time clock.
func (t Type) hasTimer() bool {
	return t == MBC3TIMERBATT || t == MBC3TIMERRAMBATT
}

// Header is the cartridge header at 0x0100 - 0x014F. Only the
// fields this emulator acts on are parsed.
type Header struct {
	// Title of the game, at 0x0134 - 0x0143.
	Title string
	// CartridgeType selects the banking controller, at 0x0147.
	CartridgeType Type
	// ROMSize in bytes, decoded from the code at 0x0148 as
	// 32KiB << n.
	ROMSize uint
	// RAMSize in bytes, decoded from the code at 0x0149.
	RAMSize uint
	// HeaderChecksum over 0x0134 - 0x014C, at 0x014D.
	HeaderChecksum uint8
}

// parseHeader parses and validates the header region of a ROM
// image. The full image is passed so the declared sizes can be
// checked against its length.
func parseHeader(rom []byte) (Header, error) {
	h := Header{}

	if len(rom) < 0x0150 {
		return h, invalidHeader("image of %d bytes has no header", len(rom))
	}

	title := rom[0x0134:0x0144]
	for i, c := range title {
		if c == 0 {
			title = title[:i]
			break
		}
	}
	h.Title = string(title)

	h.CartridgeType = Type(rom[0x0147])

	romCode := rom[0x0148]
	if romCode > 0x08 {
		return h, invalidHeader("unknown ROM size code 0x%02X", romCode)
	}
	h.ROMSize = (32 * 1024) << romCode

	ramSize, ok := ramMAP[rom[0x0149]]
	if !ok {
		return h, invalidHeader("unknown RAM size code 0x%02X", rom[0x0149])
	}
	h.RAMSize = ramSize

	h.HeaderChecksum = rom[0x014D]

	if h.ROMSize > uint(len(rom)) {
		return h, invalidHeader("header declares %d bytes of ROM, image has %d", h.ROMSize, len(rom))
	}

	return h, nil
}

func (h Header) String() string {
	return fmt.Sprintf("%s | %s | ROM: %dKiB | RAM: %dKiB",
		h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
