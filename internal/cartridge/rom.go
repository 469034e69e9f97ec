package cartridge

// romController is the degenerate controller for cartridges
// without banking hardware: 32KiB of ROM mapped flat, with an
// optional fixed RAM bank. Writes to the ROM windows do
// nothing at all.
type romController struct {
	rom []byte
	ram []byte
}

func newROMController(rom []byte, header Header) *romController {
	return &romController{
		rom: rom,
		ram: make([]byte, header.RAMSize),
	}
}

func (r *romController) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if int(address) < len(r.rom) {
			return r.rom[address]
		}
		return 0xFF
	case address >= 0xA000 && address < 0xC000:
		if offset := int(address - 0xA000); offset < len(r.ram) {
			return r.ram[offset]
		}
		return 0xFF
	}
	return 0xFF
}

func (r *romController) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 {
		if offset := int(address - 0xA000); offset < len(r.ram) {
			r.ram[offset] = value
		}
	}
	// ROM is immutable, all other writes are dropped
}

func (r *romController) RAM() []byte {
	if len(r.ram) == 0 {
		return nil
	}
	return r.ram
}

func (r *romController) LoadRAM(data []byte) {
	copy(r.ram, data)
}
