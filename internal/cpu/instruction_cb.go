package cpu

import "fmt"

// The CB prefixed table is uniform: 8 operation rows of 8
// operands each for the rotates, shifts and SWAP, then the
// BIT, RES and SET quarters. It is generated rather than
// written out.

// cbOperation pairs a mnemonic with the value transforming
// helper it applies.
type cbOperation struct {
	name string
	fn   func(*CPU, uint8) uint8
}

// cbOperations are the first 8 rows of the CB table, at
// opcodes base 0x00 + row*8.
var cbOperations = [8]cbOperation{
	{"RLC", (*CPU).rotateLeft},
	{"RRC", (*CPU).rotateRight},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftIntoCarry},
	{"SRA", (*CPU).shiftRightIntoCarry},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

func init() {
	for row := uint8(0); row < 8; row++ {
		op := cbOperations[row]
		for operand := uint8(0); operand < 8; operand++ {
			operand := operand
			opcode := row*8 + operand
			if operand == 6 {
				DefineInstructionCB(opcode, fmt.Sprintf("%s (HL)", op.name), func(c *CPU) {
					c.writeByte(c.HL.Uint16(), op.fn(c, c.readByte(c.HL.Uint16())))
				})
				continue
			}
			DefineInstructionCB(opcode, fmt.Sprintf("%s %s", op.name, registerNames[operand]), func(c *CPU) {
				r := c.register(operand)
				*r = op.fn(c, *r)
			})
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		bit := bit
		for operand := uint8(0); operand < 8; operand++ {
			operand := operand
			offset := bit*8 + operand
			if operand == 6 {
				// BIT only reads, so it is 4 cycles cheaper
				// than the writing RES and SET
				DefineInstructionCB(0x40+offset, fmt.Sprintf("BIT %d, (HL)", bit), func(c *CPU) {
					c.testBit(c.readByte(c.HL.Uint16()), bit)
				})
				DefineInstructionCB(0x80+offset, fmt.Sprintf("RES %d, (HL)", bit), func(c *CPU) {
					c.writeByte(c.HL.Uint16(), c.readByte(c.HL.Uint16())&^(1<<bit))
				})
				DefineInstructionCB(0xC0+offset, fmt.Sprintf("SET %d, (HL)", bit), func(c *CPU) {
					c.writeByte(c.HL.Uint16(), c.readByte(c.HL.Uint16())|1<<bit)
				})
				continue
			}
			DefineInstructionCB(0x40+offset, fmt.Sprintf("BIT %d, %s", bit, registerNames[operand]), func(c *CPU) {
				c.testBit(*c.register(operand), bit)
			})
			DefineInstructionCB(0x80+offset, fmt.Sprintf("RES %d, %s", bit, registerNames[operand]), func(c *CPU) {
				*c.register(operand) &^= 1 << bit
			})
			DefineInstructionCB(0xC0+offset, fmt.Sprintf("SET %d, %s", bit, registerNames[operand]), func(c *CPU) {
				*c.register(operand) |= 1 << bit
			})
		}
	}
}
