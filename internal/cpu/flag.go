package cpu

// The flag bits of the F register. The low nibble of F always
// reads as zero.
const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero = 7
	// FlagSubtract is set when the last operation subtracted.
	FlagSubtract = 6
	// FlagHalfCarry is set on carry out of the low nibble (or
	// low byte for 16-bit operations).
	FlagHalfCarry = 5
	// FlagCarry is set on carry out of the high bit.
	FlagCarry = 4
)

// setFlags writes all four flags at once. The unused low
// nibble of F stays zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	v := uint8(0)
	if zero {
		v |= 1 << FlagZero
	}
	if subtract {
		v |= 1 << FlagSubtract
	}
	if halfCarry {
		v |= 1 << FlagHalfCarry
	}
	if carry {
		v |= 1 << FlagCarry
	}
	c.F = v
}

// isFlagSet reports whether the given flag is set.
func (c *CPU) isFlagSet(flag uint8) bool {
	return c.F&(1<<flag) != 0
}

// setFlag sets the given flag without touching the others.
func (c *CPU) setFlag(flag uint8) {
	c.F |= 1 << flag
}

// clearFlag clears the given flag without touching the others.
func (c *CPU) clearFlag(flag uint8) {
	c.F &^= 1 << flag
}
