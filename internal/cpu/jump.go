package cpu

import "fmt"

// jumpAbsolute reads a 16-bit address and jumps to it when the
// condition holds. The jump itself costs an extra cycle, which
// is how the taken and not taken variants differ in cost.
//
//	JP cc, a16
//
// Flags affected:
//
//	None.
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.tick(4)
	}
}

// jumpRelative reads a signed offset and adds it to PC when
// the condition holds.
//
//	JR cc, r8
//
// Flags affected:
//
//	None.
func (c *CPU) jumpRelative(condition bool) {
	value := c.readOperand()
	if condition {
		c.PC = uint16(int32(c.PC) + int32(int8(value)))
		c.tick(4)
	}
}

// call reads a 16-bit address and, when the condition holds,
// pushes PC and jumps there.
//
//	CALL cc, a16
//
// Flags affected:
//
//	None.
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.tick(4)
		c.push(uint8(c.PC>>8), uint8(c.PC))
		c.PC = address
	}
}

// ret pops the return address off the stack when the condition
// holds.
//
//	RET cc
//
// Flags affected:
//
//	None.
func (c *CPU) ret(condition bool) {
	if condition {
		low := c.readByte(c.SP)
		c.SP++
		high := c.readByte(c.SP)
		c.SP++
		c.PC = uint16(high)<<8 | uint16(low)
		c.tick(4)
	}
}

// rst pushes PC and jumps to the fixed handler address.
//
//	RST n
//
// Flags affected:
//
//	None.
func (c *CPU) rst(address uint16) {
	c.tick(4)
	c.push(uint8(c.PC>>8), uint8(c.PC))
	c.PC = address
}

func init() {
	DefineInstruction(0x18, "JR r8", func(c *CPU) { c.jumpRelative(true) })
	DefineInstruction(0x20, "JR NZ, r8", func(c *CPU) { c.jumpRelative(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0x28, "JR Z, r8", func(c *CPU) { c.jumpRelative(c.isFlagSet(FlagZero)) })
	DefineInstruction(0x30, "JR NC, r8", func(c *CPU) { c.jumpRelative(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0x38, "JR C, r8", func(c *CPU) { c.jumpRelative(c.isFlagSet(FlagCarry)) })

	DefineInstruction(0xC0, "RET NZ", func(c *CPU) { c.tick(4); c.ret(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC2, "JP NZ, a16", func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.jumpAbsolute(true) })
	DefineInstruction(0xC4, "CALL NZ, a16", func(c *CPU) { c.call(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC8, "RET Z", func(c *CPU) { c.tick(4); c.ret(c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret(true) })
	DefineInstruction(0xCA, "JP Z, a16", func(c *CPU) { c.jumpAbsolute(c.isFlagSet(FlagZero)) })
	DefineInstruction(0xCC, "CALL Z, a16", func(c *CPU) { c.call(c.isFlagSet(FlagZero)) })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(true) })
	DefineInstruction(0xD0, "RET NC", func(c *CPU) { c.tick(4); c.ret(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD2, "JP NC, a16", func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD4, "CALL NC, a16", func(c *CPU) { c.call(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD8, "RET C", func(c *CPU) { c.tick(4); c.ret(c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret(true)
		c.ime = true
	})
	DefineInstruction(0xDA, "JP C, a16", func(c *CPU) { c.jumpAbsolute(c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xDC, "CALL C, a16", func(c *CPU) { c.call(c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })

	for i := uint8(0); i < 8; i++ {
		address := uint16(i) * 8
		DefineInstruction(0xC7+i*8, fmt.Sprintf("RST %02XH", address), func(c *CPU) {
			c.rst(address)
		})
	}
}
