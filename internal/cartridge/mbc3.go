package cartridge

import "time"

// memoryBankedCartridge3 implements the MBC3 controller: up to
// 2MiB of ROM, 32KiB of RAM and an optional real time clock.
// The RAM bank register doubles as the RTC register selector
// when written with 0x08 - 0x0C.
type memoryBankedCartridge3 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    uint32
	ramEnabled bool

	hasRTC    bool
	rtcSelect uint8 // selected RTC register, 0 when RAM is mapped
	rtc       [5]uint8
	latched   [5]uint8
	latchArm  bool
	rtcBase   time.Time
}

func newMBC3(rom []byte, header Header) *memoryBankedCartridge3 {
	return &memoryBankedCartridge3{
		rom:     rom,
		romBank: 1,
		ram:     make([]byte, header.RAMSize),
		hasRTC:  header.CartridgeType.hasTimer(),
		rtcBase: time.Now(),
	}
}

func (m *memoryBankedCartridge3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.rom[uint32(address-0x4000)+m.romBank*0x4000]
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.rtcSelect != 0 {
			return m.latched[m.rtcSelect-0x08]
		}
		if len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[(uint32(address-0xA000)+m.ramBank*0x2000)%uint32(len(m.ram))]
	}
	return 0xFF
}

func (m *memoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// full 7-bit ROM bank, 0 coerced to 1
		bank := uint32(value & 0x7F)
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
	case address < 0x6000:
		if m.hasRTC && value >= 0x08 && value <= 0x0C {
			m.rtcSelect = value
			return
		}
		m.rtcSelect = 0
		m.ramBank = uint32(value & 0x03)
		if banks := ramBankCount(m.ram); banks > 0 {
			m.ramBank %= banks
		} else {
			m.ramBank = 0
		}
	case address < 0x8000:
		// writing 0x00 then 0x01 latches the clock
		if m.hasRTC {
			if value == 0x00 {
				m.latchArm = true
			} else if value == 0x01 && m.latchArm {
				m.latchClock()
				m.latchArm = false
			} else {
				m.latchArm = false
			}
		}
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.rtcSelect != 0 {
			m.rtc[m.rtcSelect-0x08] = value
			return
		}
		if len(m.ram) > 0 {
			m.ram[(uint32(address-0xA000)+m.ramBank*0x2000)%uint32(len(m.ram))] = value
		}
	}
}

// latchClock snapshots the wall clock into the latched RTC
// registers: seconds, minutes, hours, day counter low, and the
// day counter high bit in the flags register.
func (m *memoryBankedCartridge3) latchClock() {
	elapsed := time.Since(m.rtcBase)
	days := uint16(elapsed / (24 * time.Hour))
	m.latched[0] = uint8(int64(elapsed.Seconds()) % 60)
	m.latched[1] = uint8(int64(elapsed.Minutes()) % 60)
	m.latched[2] = uint8(int64(elapsed.Hours()) % 24)
	m.latched[3] = uint8(days)
	m.latched[4] = uint8(days>>8) & 0x01
}

func (m *memoryBankedCartridge3) RAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	return m.ram
}

func (m *memoryBankedCartridge3) LoadRAM(data []byte) {
	copy(m.ram, data)
}
