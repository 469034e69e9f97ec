package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/types"
)

// testBus is a flat 64KiB RAM standing in for the MMU.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read(address uint16) uint8 {
	return b.mem[address]
}

func (b *testBus) Write(address uint16, value uint8) {
	b.mem[address] = value
}

// newTestCPU returns a CPU on a flat bus, with the program
// counter at 0x0100.
func newTestCPU() (*CPU, *testBus, *interrupts.Service) {
	types.Lock.Lock()
	defer types.Lock.Unlock()
	irq := interrupts.NewService()
	types.CollectHardwareRegisters() // discard, tests drive the service directly
	bus := &testBus{}
	c := NewCPU(bus, irq)
	return c, bus, irq
}

// run loads the program at PC and executes one Step, returning
// the cycle cost.
func run(t *testing.T, c *CPU, bus *testBus, program ...uint8) uint8 {
	t.Helper()
	copy(bus.mem[c.PC:], program)
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	return cycles
}

func TestInstructionSet_Total(t *testing.T) {
	for opcode := 0; opcode < 256; opcode++ {
		if InstructionSet[opcode].fn == nil {
			t.Errorf("base opcode 0x%02X has no instruction", opcode)
		}
		if InstructionSetCB[opcode].fn == nil {
			t.Errorf("CB opcode 0x%02X has no instruction", opcode)
		}
	}
}

func TestStep_CycleCosts(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		setup   func(c *CPU)
		cycles  uint8
	}{
		{"NOP", []uint8{0x00}, nil, 4},
		{"LD B, C", []uint8{0x41}, nil, 4},
		{"LD B, d8", []uint8{0x06, 0x42}, nil, 8},
		{"LD B, (HL)", []uint8{0x46}, nil, 8},
		{"LD (HL), d8", []uint8{0x36, 0x42}, func(c *CPU) { c.HL.SetUint16(0xC000) }, 12},
		{"LD BC, d16", []uint8{0x01, 0x34, 0x12}, nil, 12},
		{"LD (a16), SP", []uint8{0x08, 0x00, 0xC0}, nil, 20},
		{"LDH (a8), A", []uint8{0xE0, 0x80}, nil, 12},
		{"ADD A, B", []uint8{0x80}, nil, 4},
		{"ADD A, d8", []uint8{0xC6, 0x01}, nil, 8},
		{"INC BC", []uint8{0x03}, nil, 8},
		{"ADD HL, DE", []uint8{0x19}, nil, 8},
		{"ADD SP, r8", []uint8{0xE8, 0x01}, nil, 16},
		{"LD HL, SP+r8", []uint8{0xF8, 0x01}, nil, 12},
		{"LD SP, HL", []uint8{0xF9}, nil, 8},
		{"JP taken", []uint8{0xC3, 0x00, 0x02}, nil, 16},
		{"JP NZ not taken", []uint8{0xC2, 0x00, 0x02}, func(c *CPU) { c.setFlag(FlagZero) }, 12},
		{"JR taken", []uint8{0x18, 0x05}, nil, 12},
		{"JR Z not taken", []uint8{0x28, 0x05}, func(c *CPU) { c.clearFlag(FlagZero) }, 8},
		{"CALL taken", []uint8{0xCD, 0x00, 0x02}, func(c *CPU) { c.SP = 0xFFFE }, 24},
		{"CALL C not taken", []uint8{0xDC, 0x00, 0x02}, func(c *CPU) { c.clearFlag(FlagCarry) }, 12},
		{"RET", []uint8{0xC9}, func(c *CPU) { c.SP = 0xFFF0 }, 16},
		{"RET NZ taken", []uint8{0xC0}, func(c *CPU) { c.clearFlag(FlagZero); c.SP = 0xFFF0 }, 20},
		{"RET Z not taken", []uint8{0xC8}, func(c *CPU) { c.clearFlag(FlagZero) }, 8},
		{"RETI", []uint8{0xD9}, func(c *CPU) { c.SP = 0xFFF0 }, 16},
		{"RST 08H", []uint8{0xCF}, func(c *CPU) { c.SP = 0xFFFE }, 16},
		{"PUSH BC", []uint8{0xC5}, func(c *CPU) { c.SP = 0xFFFE }, 16},
		{"POP BC", []uint8{0xC1}, func(c *CPU) { c.SP = 0xFFF0 }, 12},
		{"JP HL", []uint8{0xE9}, nil, 4},
		{"RLC B", []uint8{0xCB, 0x00}, nil, 8},
		{"RLC (HL)", []uint8{0xCB, 0x06}, func(c *CPU) { c.HL.SetUint16(0xC000) }, 16},
		{"BIT 0, (HL)", []uint8{0xCB, 0x46}, func(c *CPU) { c.HL.SetUint16(0xC000) }, 12},
		{"SET 7, A", []uint8{0xCB, 0xFF}, nil, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus, _ := newTestCPU()
			if tt.setup != nil {
				tt.setup(c)
			}
			if cycles := run(t, c, bus, tt.program...); cycles != tt.cycles {
				t.Errorf("expected %d cycles, got %d", tt.cycles, cycles)
			}
		})
	}
}

func TestLoadImmediate(t *testing.T) {
	c, bus, _ := newTestCPU()
	cycles := run(t, c, bus, 0x06, 0x42) // LD B, 0x42
	if c.B != 0x42 {
		t.Errorf("expected B to hold 0x42, got 0x%02X", c.B)
	}
	if cycles != 8 {
		t.Errorf("expected 8 cycles, got %d", cycles)
	}
}

func TestIncrementDecrement_PreservesCarry(t *testing.T) {
	// INC then DEC restores the register and never touches the
	// carry flag, for every value and either carry state
	for _, carry := range []bool{false, true} {
		for value := 0; value < 256; value++ {
			c, _, _ := newTestCPU()
			c.B = uint8(value)
			c.setFlags(false, false, false, carry)

			c.B = c.increment(c.B)
			if got := c.isFlagSet(FlagCarry); got != carry {
				t.Fatalf("INC B with value 0x%02X changed carry from %t to %t", value, carry, got)
			}
			c.B = c.decrement(c.B)
			if got := c.isFlagSet(FlagCarry); got != carry {
				t.Fatalf("DEC B with value 0x%02X changed carry from %t to %t", value, carry, got)
			}
			if c.B != uint8(value) {
				t.Fatalf("INC then DEC changed 0x%02X to 0x%02X", value, c.B)
			}
		}
	}
}

func TestInterrupt_Service(t *testing.T) {
	c, bus, irq := newTestCPU()
	c.SP = 0xFFFE
	bus.mem[0x0100] = 0x00 // NOP, pre-empted by the interrupt

	c.ime = true
	irq.Enable = interrupts.VBlankFlag
	irq.Request(interrupts.VBlankFlag)

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if cycles != 20 {
		t.Errorf("expected service to cost 20 cycles, got %d", cycles)
	}
	if c.PC != 0x0040 {
		t.Errorf("expected PC at the V-Blank vector 0x0040, got 0x%04X", c.PC)
	}
	if c.ime {
		t.Error("expected IME to be cleared by servicing")
	}
	if irq.Flag&interrupts.VBlankFlag != 0 {
		t.Error("expected the request bit to be cleared by servicing")
	}
	// the old PC is on the stack
	if lo, hi := bus.mem[0xFFFC], bus.mem[0xFFFD]; lo != 0x00 || hi != 0x01 {
		t.Errorf("expected 0x0100 pushed, got 0x%02X%02X", hi, lo)
	}
}

func TestInterrupt_Priority(t *testing.T) {
	c, _, irq := newTestCPU()
	c.SP = 0xFFFE
	c.ime = true
	irq.Enable = interrupts.VBlankFlag | interrupts.TimerFlag
	irq.Request(interrupts.TimerFlag)
	irq.Request(interrupts.VBlankFlag)

	if _, err := c.Step(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if c.PC != 0x0040 {
		t.Errorf("expected the V-Blank vector to win, got 0x%04X", c.PC)
	}
	if irq.Flag&interrupts.TimerFlag == 0 {
		t.Error("expected the timer request to stay pending")
	}
}

func TestHalt(t *testing.T) {
	t.Run("idles until pending", func(t *testing.T) {
		c, bus, irq := newTestCPU()
		run(t, c, bus, 0x76) // HALT
		if cycles := run(t, c, bus); cycles != 4 {
			t.Errorf("expected an idle step of 4 cycles, got %d", cycles)
		}
		if c.PC != 0x0101 {
			t.Errorf("expected PC to stay at 0x0101, got 0x%04X", c.PC)
		}

		// an enabled request wakes the CPU even with IME off,
		// resuming without servicing
		irq.Enable = interrupts.TimerFlag
		irq.Request(interrupts.TimerFlag)
		bus.mem[0x0101] = 0x04 // INC B
		if _, err := c.Step(); err != nil {
			t.Fatalf("unexpected fault: %v", err)
		}
		if c.B != 1 {
			t.Error("expected execution to resume with INC B")
		}
		if irq.Flag&interrupts.TimerFlag == 0 {
			t.Error("expected the request to stay pending without IME")
		}
	})

	t.Run("halt bug replays the next byte", func(t *testing.T) {
		c, bus, irq := newTestCPU()
		irq.Enable = interrupts.TimerFlag
		irq.Request(interrupts.TimerFlag)
		// IME off with a pending, enabled interrupt: the byte
		// after HALT executes twice
		run(t, c, bus, 0x76, 0x04) // HALT; INC B
		if _, err := c.Step(); err != nil {
			t.Fatalf("unexpected fault: %v", err)
		}
		if _, err := c.Step(); err != nil {
			t.Fatalf("unexpected fault: %v", err)
		}
		if c.B != 2 {
			t.Errorf("expected INC B to run twice, got B=%d", c.B)
		}
	})
}

func TestEI_Delayed(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.Enable = interrupts.TimerFlag
	irq.Request(interrupts.TimerFlag)
	c.SP = 0xFFFE

	run(t, c, bus, 0xFB, 0x00) // EI; NOP
	if c.ime {
		t.Error("expected IME to still be off right after EI")
	}
	// the next step enables IME and services before the NOP
	if _, err := c.Step(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if c.PC != 0x0050 {
		t.Errorf("expected the timer vector 0x0050, got 0x%04X", c.PC)
	}
}

func TestIllegalOpcode(t *testing.T) {
	c, bus, _ := newTestCPU()
	bus.mem[0x0100] = 0xD3

	_, err := c.Step()
	var fault *IllegalOpcodeError
	if !errors.As(err, &fault) {
		t.Fatalf("expected an IllegalOpcodeError, got %v", err)
	}
	if fault.Opcode != 0xD3 || fault.PC != 0x0100 {
		t.Errorf("expected opcode 0xD3 at 0x0100, got 0x%02X at 0x%04X", fault.Opcode, fault.PC)
	}

	// the fault is permanent: no further progress
	pc := c.PC
	if _, err := c.Step(); err == nil {
		t.Fatal("expected the fault to persist")
	}
	if c.PC != pc {
		t.Error("expected no progress after the fault")
	}
}

func TestStop_ConsumesOperand(t *testing.T) {
	c, bus, _ := newTestCPU()
	run(t, c, bus, 0x10, 0x00)
	if !c.Stopped() {
		t.Error("expected the CPU to be stopped")
	}
	if c.PC != 0x0102 {
		t.Errorf("expected the padding byte consumed, PC at 0x0102, got 0x%04X", c.PC)
	}

	c.Wake()
	if c.Stopped() {
		t.Error("expected Wake to leave stop mode")
	}
}

func TestDAA(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *CPU)
		a    uint8
		z, c bool
	}{
		{"0x15 + 0x27", func(c *CPU) { c.A = c.add(0x15, 0x27, false) }, 0x42, false, false},
		{"0x99 + 0x01", func(c *CPU) { c.A = c.add(0x99, 0x01, false) }, 0x00, true, true},
		{"0x42 - 0x13", func(c *CPU) { c.A = c.sub(0x42, 0x13, false) }, 0x29, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU()
			tt.run(c)
			c.decimalAdjust()
			if c.A != tt.a {
				t.Errorf("expected A=0x%02X, got 0x%02X", tt.a, c.A)
			}
			if c.isFlagSet(FlagZero) != tt.z {
				t.Errorf("expected Z=%t", tt.z)
			}
			if c.isFlagSet(FlagCarry) != tt.c {
				t.Errorf("expected C=%t", tt.c)
			}
		})
	}
}
