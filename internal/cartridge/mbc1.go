package cartridge

// memoryBankedCartridge1 implements the MBC1 controller: up to
// 2MiB of ROM in 16KiB banks and up to 32KiB of RAM in 8KiB
// banks. The 2-bit upper register feeds either the ROM bank's
// high bits or the RAM bank, depending on the banking mode.
type memoryBankedCartridge1 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    uint32
	ramEnabled bool

	// advanced banking mode: the 2-bit register selects the
	// RAM bank instead of the ROM bank's bits 5-6
	advancedMode bool

	upperBits uint32
}

func newMBC1(rom []byte, header Header) *memoryBankedCartridge1 {
	return &memoryBankedCartridge1{
		rom:     rom,
		romBank: 1,
		ram:     make([]byte, header.RAMSize),
	}
}

func (m *memoryBankedCartridge1) Read(address uint16) uint8 {
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

func (m *memoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// low 5 bits of the ROM bank, with 0 coerced to 1
		low := uint32(value & 0x1F)
		if low == 0 {
			low = 1
		}
		m.romBank = low
		m.applyUpperBits()
	case address < 0x6000:
		m.upperBits = uint32(value & 0x03)
		if m.advancedMode {
			m.ramBank = m.upperBits
			if banks := ramBankCount(m.ram); banks > 0 {
				m.ramBank %= banks
			} else {
				m.ramBank = 0
			}
		} else {
			m.applyUpperBits()
		}
	case address < 0x8000:
		m.advancedMode = value&0x01 == 0x01
		if !m.advancedMode {
			m.ramBank = 0
			m.applyUpperBits()
		} else {
			m.ramBank = m.upperBits
			if banks := ramBankCount(m.ram); banks > 0 {
				m.ramBank %= banks
			} else {
				m.ramBank = 0
			}
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[(uint32(address-0xA000)+m.ramBank*0x2000)%uint32(len(m.ram))] = value
		}
	}
}

// applyUpperBits folds the 2-bit upper register into the ROM
// bank and reduces the result modulo the bank count.
func (m *memoryBankedCartridge1) applyUpperBits() {
	bank := (m.romBank & 0x1F) | m.upperBits<<5
	if m.advancedMode {
		bank = m.romBank & 0x1F
	}
	if banks := romBankCount(m.rom); bank >= banks {
		bank %= banks
	}
	if bank == 0 {
		bank = 1
	}
	m.romBank = bank
}

func (m *memoryBankedCartridge1) RAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	return m.ram
}

func (m *memoryBankedCartridge1) LoadRAM(data []byte) {
	copy(m.ram, data)
}
