// Package cpu implements the CPU core: the fetch, decode,
// execute loop over the instruction set, interrupt servicing,
// and the cycle accounting that drives the rest of the
// machine.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/mmu"
	"github.com/thelolagemann/gameboy/internal/types"
)

// Register is an 8-bit CPU register.
type Register = types.Register

// RegisterPair is a 16-bit view of two registers.
type RegisterPair = types.RegisterPair

// Mode is the execution mode the CPU is in between steps.
type Mode = uint8

const (
	// ModeNormal fetches and executes instructions.
	ModeNormal Mode = iota
	// ModeHalt idles until an enabled interrupt is requested.
	ModeHalt
	// ModeStop idles until a button press. Nothing else in the
	// machine advances while stopped.
	ModeStop
	// ModeHaltBug replays the next opcode byte: entered when
	// HALT executes with interrupts globally disabled but an
	// enabled interrupt already pending.
	ModeHaltBug
	// ModeEnableIME turns the master enable on at the start of
	// the next step, the delayed effect of EI. A pending
	// interrupt is serviced then, before another instruction.
	ModeEnableIME
)

// IllegalOpcodeError is the fault raised by an opcode with no
// defined mapping. Real hardware locks up permanently on these
// opcodes, so the CPU makes no further progress once one is
// hit.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// CPU is the processor core. It owns the register file and
// drives the machine: each Step executes one instruction (or
// services one interrupt) and reports the cycles consumed, by
// which the caller advances the other components.
type CPU struct {
	types.Registers

	PC uint16
	SP uint16

	// ime is the interrupt master enable.
	ime  bool
	mode Mode

	// currentTick counts the cycles consumed by the step in
	// progress. Every memory access costs 4.
	currentTick uint8

	b   mmu.IOBus
	irq *interrupts.Service

	fault *IllegalOpcodeError
}

// NewCPU returns a CPU reading and writing through the given
// bus. Registers start at the post boot ROM values; Boot
// resets them for use with a boot ROM overlay.
func NewCPU(b mmu.IOBus, irq *interrupts.Service) *CPU {
	c := &CPU{
		b:   b,
		irq: irq,
	}

	c.AF = &RegisterPair{High: &c.A, Low: &c.F}
	c.BC = &RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &RegisterPair{High: &c.H, Low: &c.L}

	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100

	return c
}

// Boot resets the CPU to power on state, for executing a boot
// ROM from address 0.
func (c *CPU) Boot() {
	c.A, c.F = 0, 0
	c.B, c.C = 0, 0
	c.D, c.E = 0, 0
	c.H, c.L = 0, 0
	c.SP = 0
	c.PC = 0
}

// Step performs one unit of CPU work: servicing the highest
// priority pending interrupt if the master enable allows,
// otherwise executing the instruction at PC. It returns the
// number of cycles consumed. Once an illegal opcode has been
// hit every subsequent Step returns the same fault without
// progress.
func (c *CPU) Step() (uint8, error) {
	if c.fault != nil {
		return 0, c.fault
	}
	c.currentTick = 0

	switch c.mode {
	case ModeNormal:
		if c.ime && c.irq.Pending() {
			c.executeInterrupt()
			return c.currentTick, nil
		}
		c.execute(c.readInstruction())
	case ModeHalt:
		if c.irq.Pending() {
			// execution resumes whether or not interrupts are
			// globally enabled; without IME nothing is serviced
			c.mode = ModeNormal
			if c.ime {
				c.executeInterrupt()
				return c.currentTick, nil
			}
			c.execute(c.readInstruction())
		} else {
			c.tick(4)
		}
	case ModeStop:
		// woken externally by a button press
		c.tick(4)
	case ModeHaltBug:
		// the opcode byte after HALT is fetched twice
		opcode := c.b.Read(c.PC)
		c.tick(4)
		c.mode = ModeNormal
		c.execute(opcode)
	case ModeEnableIME:
		c.ime = true
		c.mode = ModeNormal
		if c.irq.Pending() {
			c.executeInterrupt()
			return c.currentTick, nil
		}
		c.execute(c.readInstruction())
	}

	if c.fault != nil {
		return 0, c.fault
	}
	return c.currentTick, nil
}

// Stopped reports whether the CPU is in stop mode, during
// which the caller must not advance the other components.
func (c *CPU) Stopped() bool {
	return c.mode == ModeStop
}

// Wake leaves stop mode. Called on a button press.
func (c *CPU) Wake() {
	if c.mode == ModeStop {
		c.mode = ModeNormal
	}
}

func (c *CPU) execute(opcode uint8) {
	InstructionSet[opcode].fn(c)
}

// executeInterrupt services the highest priority pending
// interrupt: the master enable is cleared, PC is pushed, and
// execution continues at the interrupt's vector. Costs 20
// cycles.
func (c *CPU) executeInterrupt() {
	c.ime = false
	c.tick(8)

	c.b.Write(c.SP-1, uint8(c.PC>>8))
	c.b.Write(c.SP-2, uint8(c.PC))
	c.SP -= 2
	c.tick(8)

	c.PC = c.irq.Vector()
	c.tick(4)
}

// tick accounts cycles against the step in progress.
func (c *CPU) tick(cycles uint8) {
	c.currentTick += cycles
}

// readInstruction fetches the opcode byte at PC.
func (c *CPU) readInstruction() uint8 {
	value := c.b.Read(c.PC)
	c.PC++
	c.tick(4)
	return value
}

// readOperand fetches the next operand byte of the current
// instruction.
func (c *CPU) readOperand() uint8 {
	value := c.b.Read(c.PC)
	c.PC++
	c.tick(4)
	return value
}

// readOperand16 fetches a 16-bit operand, low byte first.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) readByte(address uint16) uint8 {
	c.tick(4)
	return c.b.Read(address)
}

func (c *CPU) writeByte(address uint16, value uint8) {
	c.tick(4)
	c.b.Write(address, value)
}

// push writes the two bytes onto the stack, high byte first.
func (c *CPU) push(high, low uint8) {
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// registerNames indexes the conventional operand ordering of
// the instruction set: B, C, D, E, H, L, (HL), A.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// register returns the 8-bit register at the given operand
// index. Index 6, (HL), has no register and must be handled by
// the caller.
func (c *CPU) register(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("cpu: no register at operand index %d", index))
}
