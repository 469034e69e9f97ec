package cpu

// rotateLeft rotates the value left by one bit, with bit 7
// wrapping around to bit 0 and into the carry flag.
//
//	RLC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7.
func (c *CPU) rotateLeft(value uint8) uint8 {
	carry := value >> 7
	rotated := value<<1 | carry
	c.setFlags(rotated == 0, false, false, carry == 1)
	return rotated
}

// rotateRight rotates the value right by one bit, with bit 0
// wrapping around to bit 7 and into the carry flag.
//
//	RRC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) rotateRight(value uint8) uint8 {
	carry := value & 1
	rotated := value>>1 | carry<<7
	c.setFlags(rotated == 0, false, false, carry == 1)
	return rotated
}

// rotateLeftThroughCarry rotates the value left by one bit
// through the carry flag.
//
//	RL n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7.
func (c *CPU) rotateLeftThroughCarry(value uint8) uint8 {
	rotated := value << 1
	if c.isFlagSet(FlagCarry) {
		rotated |= 1
	}
	c.setFlags(rotated == 0, false, false, value&0x80 != 0)
	return rotated
}

// rotateRightThroughCarry rotates the value right by one bit
// through the carry flag.
//
//	RR n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) rotateRightThroughCarry(value uint8) uint8 {
	rotated := value >> 1
	if c.isFlagSet(FlagCarry) {
		rotated |= 0x80
	}
	c.setFlags(rotated == 0, false, false, value&1 != 0)
	return rotated
}

func init() {
	// the accumulator rotates always clear the zero flag,
	// unlike their CB prefixed forms
	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		c.A = c.rotateLeft(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.A = c.rotateRight(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
}
