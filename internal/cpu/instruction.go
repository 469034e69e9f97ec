package cpu

import "fmt"

// Instruction is one entry of the opcode tables: a mnemonic
// and the function implementing the opcode's effect. The
// function performs its own cycle accounting through the CPU's
// memory access helpers.
type Instruction struct {
	name string
	fn   func(*CPU)
}

// Name returns the instruction's mnemonic.
func (i Instruction) Name() string {
	return i.name
}

// InstructionSet is the base opcode table, a total function
// from opcode byte to instruction. The table is populated by
// DefineInstruction calls across the package's init functions.
var InstructionSet [256]Instruction

// InstructionSetCB is the table reached through the 0xCB
// prefix.
var InstructionSetCB [256]Instruction

// DefineInstruction adds an instruction to the base table.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB adds an instruction to the CB table.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// disallowedOpcodes are the opcode bytes with no defined
// mapping. Executing one locks the CPU up permanently, as on
// hardware.
var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		// the padding byte after STOP is consumed
		c.readOperand()
		c.mode = ModeStop
	})
	DefineInstruction(0x27, "DAA", (*CPU).decimalAdjust)
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlags(c.isFlagSet(FlagZero), true, true, c.isFlagSet(FlagCarry))
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.ime && c.irq.Pending() {
			// halt bug: the next opcode byte will be fetched
			// twice
			c.mode = ModeHaltBug
		} else {
			c.mode = ModeHalt
		}
	})
	DefineInstruction(0xCB, "CB", func(c *CPU) {
		InstructionSetCB[c.readOperand()].fn(c)
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.ime = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		// delayed: IME turns on at the start of the next step
		c.mode = ModeEnableIME
	})

	for _, opcode := range disallowedOpcodes {
		opcode := opcode
		DefineInstruction(opcode, fmt.Sprintf("ILLEGAL(0x%02X)", opcode), func(c *CPU) {
			c.fault = &IllegalOpcodeError{Opcode: opcode, PC: c.PC - 1}
		})
	}
}

// decimalAdjust implements DAA, correcting A into binary coded
// decimal after an addition or subtraction.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or unchanged per the adjustment.
func (c *CPU) decimalAdjust() {
	a := c.A
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			a -= 0x06
		}
	}
	c.A = a
	c.setFlags(a == 0, c.isFlagSet(FlagSubtract), false, carry)
}
