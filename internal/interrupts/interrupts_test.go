package interrupts

import (
	"testing"

	"github.com/thelolagemann/gameboy/internal/types"
)

func newTestService() (*Service, types.HardwareRegisters) {
	types.Lock.Lock()
	defer types.Lock.Unlock()
	s := NewService()
	regs := types.CollectHardwareRegisters()
	return s, regs
}

func TestVector_PriorityOrder(t *testing.T) {
	s, _ := newTestService()
	s.Enable = 0x1F
	s.Flag = VBlankFlag | TimerFlag | JoypadFlag

	vectors := []uint16{0x0040, 0x0050, 0x0060}
	for _, want := range vectors {
		if !s.Pending() {
			t.Fatalf("expected a pending interrupt before vector 0x%04X", want)
		}
		if got := s.Vector(); got != want {
			t.Fatalf("expected vector 0x%04X, got 0x%04X", want, got)
		}
	}
	if s.Pending() {
		t.Error("expected all requests drained")
	}
}

func TestVector_HonoursEnable(t *testing.T) {
	s, _ := newTestService()
	s.Enable = TimerFlag
	s.Flag = VBlankFlag | TimerFlag

	if got := s.Vector(); got != 0x0050 {
		t.Errorf("expected the timer vector with V-Blank disabled, got 0x%04X", got)
	}
	if s.Flag&VBlankFlag == 0 {
		t.Error("expected the disabled request left pending")
	}
}

func TestRegisters(t *testing.T) {
	s, regs := newTestService()

	regs.Write(types.IF, 0xFF)
	if s.Flag != 0x1F {
		t.Errorf("expected IF masked to the 5 sources, got 0x%02X", s.Flag)
	}
	if v := regs.Read(types.IF); v != 0xFF {
		t.Errorf("expected IF to read with the upper bits set, got 0x%02X", v)
	}

	regs.Write(types.IE, 0xAB)
	if v := regs.Read(types.IE); v != 0xAB {
		t.Errorf("expected IE to read back verbatim, got 0x%02X", v)
	}
}
