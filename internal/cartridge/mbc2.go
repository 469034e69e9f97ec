package cartridge

// memoryBankedCartridge2 implements the MBC2 controller: up to
// 256KiB of ROM and a built-in 512x4 bit RAM. Bit 8 of the
// write address picks between the RAM enable and the ROM bank
// registers, both living in 0x0000 - 0x3FFF.
type memoryBankedCartridge2 struct {
	rom     []byte
	romBank uint32

	ram        [512]uint8 // only the low nibbles exist
	ramEnabled bool
}

func newMBC2(rom []byte, header Header) *memoryBankedCartridge2 {
	return &memoryBankedCartridge2{
		rom:     rom,
		romBank: 1,
	}
}

func (m *memoryBankedCartridge2) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.rom[uint32(address-0x4000)+m.romBank*0x4000]
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		// the 512 nibbles repeat through the whole window
		return m.ram[address&0x01FF] | 0xF0
	}
	return 0xFF
}

func (m *memoryBankedCartridge2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		if address&0x0100 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
		} else {
			bank := uint32(value & 0x0F)
			if bank == 0 {
				bank = 1
			}
			if banks := romBankCount(m.rom); bank >= banks {
				bank %= banks
				if bank == 0 {
					bank = 1
				}
			}
			m.romBank = bank
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.ram[address&0x01FF] = value & 0x0F
		}
	}
}

func (m *memoryBankedCartridge2) RAM() []byte {
	return m.ram[:]
}

func (m *memoryBankedCartridge2) LoadRAM(data []byte) {
	copy(m.ram[:], data)
}
