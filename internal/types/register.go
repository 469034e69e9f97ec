package types

// Register is a single 8-bit CPU register. The CPU has 8 of
// them: A, B, C, D, E, H, L and the flags register F.
type Register = uint8

// RegisterPair is a view of two registers as one 16-bit value,
// high byte first. The CPU exposes the pairs AF, BC, DE and HL.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the combined 16-bit value of the pair.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 splits value into the pair's two registers.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers holds the CPU register file together with the
// pair views over it. The pair pointers must be wired up to
// the fields they cover before use.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}
