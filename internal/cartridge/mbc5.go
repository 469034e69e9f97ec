package cartridge

// memoryBankedCartridge5 implements the MBC5 controller: up to
// 8MiB of ROM with a 9-bit bank register split over two write
// windows, and up to 128KiB of RAM. Unlike the earlier
// controllers bank 0 is selectable.
type memoryBankedCartridge5 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    uint32
	ramEnabled bool
}

func newMBC5(rom []byte, header Header) *memoryBankedCartridge5 {
	return &memoryBankedCartridge5{
		rom:     rom,
		romBank: 1,
		ram:     make([]byte, header.RAMSize),
	}
}

func (m *memoryBankedCartridge5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.rom[uint32(address-0x4000)+m.romBank*0x4000]
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[(uint32(address-0xA000)+m.ramBank*0x2000)%uint32(len(m.ram))]
	}
	return 0xFF
}

func (m *memoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		m.setROMBank(m.romBank&0x100 | uint32(value))
	case address < 0x4000:
		m.setROMBank(m.romBank&0x0FF | uint32(value&0x01)<<8)
	case address < 0x6000:
		m.ramBank = uint32(value & 0x0F)
		if banks := ramBankCount(m.ram); banks > 0 {
			m.ramBank %= banks
		} else {
			m.ramBank = 0
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[(uint32(address-0xA000)+m.ramBank*0x2000)%uint32(len(m.ram))] = value
		}
	}
}

func (m *memoryBankedCartridge5) setROMBank(bank uint32) {
	if banks := romBankCount(m.rom); bank >= banks {
		bank %= banks
	}
	m.romBank = bank
}

func (m *memoryBankedCartridge5) RAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	return m.ram
}

func (m *memoryBankedCartridge5) LoadRAM(data []byte) {
	copy(m.ram, data)
}
