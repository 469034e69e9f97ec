package cpu

import "fmt"

// loadRegister16 loads the next 16-bit operand into the given
// RegisterPair.
//
//	LD nn, d16
//	nn = 16-bit register
//
// Flags affected:
//
//	None.
func (c *CPU) loadRegister16(register *RegisterPair) {
	register.SetUint16(c.readOperand16())
}

// loadHLSPSigned loads SP plus the next operand, read as
// signed, into HL. Carries come from the low byte, as with
// ADD SP.
//
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) loadHLSPSigned() {
	c.HL.SetUint16(c.addSPSigned())
}

func init() {
	DefineInstruction(0x01, "LD BC, d16", func(c *CPU) { c.loadRegister16(c.BC) })
	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	DefineInstruction(0x06, "LD B, d8", func(c *CPU) { c.B = c.readOperand() })
	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	DefineInstruction(0x0E, "LD C, d8", func(c *CPU) { c.C = c.readOperand() })
	DefineInstruction(0x11, "LD DE, d16", func(c *CPU) { c.loadRegister16(c.DE) })
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	DefineInstruction(0x16, "LD D, d8", func(c *CPU) { c.D = c.readOperand() })
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })
	DefineInstruction(0x1E, "LD E, d8", func(c *CPU) { c.E = c.readOperand() })
	DefineInstruction(0x21, "LD HL, d16", func(c *CPU) { c.loadRegister16(c.HL) })
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x26, "LD H, d8", func(c *CPU) { c.H = c.readOperand() })
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x2E, "LD L, d8", func(c *CPU) { c.L = c.readOperand() })
	DefineInstruction(0x31, "LD SP, d16", func(c *CPU) { c.SP = c.readOperand16() })
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x36, "LD (HL), d8", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.readOperand())
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x3E, "LD A, d8", func(c *CPU) { c.A = c.readOperand() })

	// the load block at 0x40 - 0x7F: LD r, r' for every source
	// and destination pairing. 0x76, where LD (HL), (HL) would
	// sit, is HALT.
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue
			}
			dst, src := dst, src
			opcode := 0x40 + dst*8 + src
			name := fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src])
			switch {
			case dst == 6:
				DefineInstruction(opcode, name, func(c *CPU) {
					c.writeByte(c.HL.Uint16(), *c.register(src))
				})
			case src == 6:
				DefineInstruction(opcode, name, func(c *CPU) {
					*c.register(dst) = c.readByte(c.HL.Uint16())
				})
			default:
				DefineInstruction(opcode, name, func(c *CPU) {
					*c.register(dst) = *c.register(src)
				})
			}
		}
	}

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.readOperand()), c.A)
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.C), c.A)
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.writeByte(c.readOperand16(), c.A)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.readOperand()))
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.C))
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) { c.loadHLSPSigned() })
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tick(4)
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.A = c.readByte(c.readOperand16())
	})
}
