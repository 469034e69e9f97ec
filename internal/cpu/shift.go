package cpu

// shiftLeftIntoCarry shifts the value left by one bit, bit 7
// moving into the carry flag and bit 0 becoming zero.
//
//	SLA n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7.
func (c *CPU) shiftLeftIntoCarry(value uint8) uint8 {
	shifted := value << 1
	c.setFlags(shifted == 0, false, false, value&0x80 != 0)
	return shifted
}

// shiftRightIntoCarry shifts the value right by one bit, bit 0
// moving into the carry flag and bit 7 keeping its value (an
// arithmetic shift).
//
//	SRA n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) shiftRightIntoCarry(value uint8) uint8 {
	shifted := value>>1 | value&0x80
	c.setFlags(shifted == 0, false, false, value&1 != 0)
	return shifted
}

// shiftRightLogical shifts the value right by one bit, bit 0
// moving into the carry flag and bit 7 becoming zero.
//
//	SRL n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) shiftRightLogical(value uint8) uint8 {
	shifted := value >> 1
	c.setFlags(shifted == 0, false, false, value&1 != 0)
	return shifted
}

// swap exchanges the high and low nibbles of the value.
//
//	SWAP n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(value uint8) uint8 {
	swapped := value<<4 | value>>4
	c.setFlags(swapped == 0, false, false, false)
	return swapped
}

// testBit sets the zero flag to the complement of the given
// bit of the value.
//
//	BIT b, n
//	b = bit index, n = 8-bit value
//
// Flags affected:
//
//	Z - Set if the bit is zero.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, bit uint8) {
	c.setFlags(value&(1<<bit) == 0, false, true, c.isFlagSet(FlagCarry))
}
