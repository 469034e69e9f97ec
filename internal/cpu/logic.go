package cpu

import "fmt"

// and performs a bitwise AND of A with the value.
//
//	AND n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(value uint8) {
	c.A &= value
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR of A with the value.
//
//	OR n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(value uint8) {
	c.A |= value
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR of A with the value.
//
//	XOR n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(value uint8) {
	c.A ^= value
	c.setFlags(c.A == 0, false, false, false)
}

// compare sets the flags as a subtraction of the value from A
// would, discarding the result.
//
//	CP n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if A equals n.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if A is less than n.
func (c *CPU) compare(value uint8) {
	c.sub(c.A, value, false)
}

func init() {
	// the logic block at 0xA0 - 0xBF: AND, XOR, OR, CP against
	// each operand in the conventional ordering
	for i := uint8(0); i < 8; i++ {
		i := i
		if i == 6 {
			DefineInstruction(0xA6, "AND (HL)", func(c *CPU) { c.and(c.readByte(c.HL.Uint16())) })
			DefineInstruction(0xAE, "XOR (HL)", func(c *CPU) { c.xor(c.readByte(c.HL.Uint16())) })
			DefineInstruction(0xB6, "OR (HL)", func(c *CPU) { c.or(c.readByte(c.HL.Uint16())) })
			DefineInstruction(0xBE, "CP (HL)", func(c *CPU) { c.compare(c.readByte(c.HL.Uint16())) })
			continue
		}
		DefineInstruction(0xA0+i, fmt.Sprintf("AND %s", registerNames[i]), func(c *CPU) {
			c.and(*c.register(i))
		})
		DefineInstruction(0xA8+i, fmt.Sprintf("XOR %s", registerNames[i]), func(c *CPU) {
			c.xor(*c.register(i))
		})
		DefineInstruction(0xB0+i, fmt.Sprintf("OR %s", registerNames[i]), func(c *CPU) {
			c.or(*c.register(i))
		})
		DefineInstruction(0xB8+i, fmt.Sprintf("CP %s", registerNames[i]), func(c *CPU) {
			c.compare(*c.register(i))
		})
	}

	DefineInstruction(0xE6, "AND d8", func(c *CPU) { c.and(c.readOperand()) })
	DefineInstruction(0xEE, "XOR d8", func(c *CPU) { c.xor(c.readOperand()) })
	DefineInstruction(0xF6, "OR d8", func(c *CPU) { c.or(c.readOperand()) })
	DefineInstruction(0xFE, "CP d8", func(c *CPU) { c.compare(c.readOperand()) })
}
