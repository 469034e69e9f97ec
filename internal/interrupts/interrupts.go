// Package interrupts implements the interrupt controller: the
// IF/IE register pair and the priority resolution the CPU uses
// to find the next interrupt vector.
package interrupts

import (
	"github.com/thelolagemann/gameboy/internal/types"
)

const (
	// VBlankFlag (bit 0) is requested when the display enters
	// V-Blank at scanline 144.
	VBlankFlag = types.Bit0
	// LCDFlag (bit 1) is requested by the STAT register when
	// one of its enabled conditions is met.
	LCDFlag = types.Bit1
	// TimerFlag (bit 2) is requested when TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag (bit 3) is requested when a serial transfer
	// completes.
	SerialFlag = types.Bit3
	// JoypadFlag (bit 4) is requested when a selected joypad
	// line goes low.
	JoypadFlag = types.Bit4
)

// Service owns the interrupt request register (IF) and the
// interrupt enable register (IE). Components request
// interrupts by setting bits in Flag; the CPU consults
// Pending and Vector when deciding whether to service one.
//
// Priority is fixed by bit position: V-Blank (bit 0) is
// highest, joypad (bit 4) lowest.
type Service struct {
	Flag   uint8 // interrupt request register (types.IF)
	Enable uint8 // interrupt enable register (types.IE)
}

// NewService returns a new interrupt Service with its IF and
// IE registers mapped.
func NewService() *Service {
	s := &Service{}
	types.RegisterHardware(
		types.IF,
		func(v uint8) {
			s.Flag = v & 0x1F // only 5 interrupt sources exist
		}, func() uint8 {
			return s.Flag | 0xE0 // upper 3 bits read as set
		},
	)
	types.RegisterHardware(
		types.IE,
		func(v uint8) {
			s.Enable = v
		}, func() uint8 {
			return s.Enable
		},
	)
	return s
}

// Request sets the given interrupt flag, latching the request
// until the CPU services or the program clears it.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Pending reports whether any requested interrupt is also
// enabled.
func (s *Service) Pending() bool {
	return s.Flag&s.Enable&0x1F != 0
}

// Vector returns the service address of the highest priority
// pending and enabled interrupt, clearing its request bit. It
// must only be called when Pending is true; with nothing to
// service it returns 0.
func (s *Service) Vector() uint16 {
	for i := uint8(0); i < 5; i++ {
		if s.Flag&(1<<i) != 0 && s.Enable&(1<<i) != 0 {
			s.Flag &^= 1 << i
			return uint16(0x0040 + i*8)
		}
	}
	return 0
}
