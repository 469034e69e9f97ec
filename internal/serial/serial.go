// Package serial exposes the serial port registers. The core
// does not emulate a link partner: SB is stored verbatim and a
// started transfer completes immediately against an open line,
// shifting in 0xFF. A host side callback observes every byte
// sent, which is how test ROM output is captured.
package serial

import (
	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/types"
)

// Controller is the serial port.
type Controller struct {
	data    uint8 // SB
	control uint8 // SC

	irq *interrupts.Service

	// OnTransfer, when set, receives every byte the program
	// sends.
	OnTransfer func(b uint8)
}

// NewController returns a new serial Controller with SB and SC
// mapped.
func NewController(irq *interrupts.Service) *Controller {
	c := &Controller{
		irq: irq,
	}
	types.RegisterHardware(
		types.SB,
		func(v uint8) {
			c.data = v
		}, func() uint8 {
			return c.data
		},
	)
	types.RegisterHardware(
		types.SC,
		func(v uint8) {
			c.control = v & 0x81
			if v&types.Bit7 != 0 && v&types.Bit0 != 0 {
				// internal clock with no partner: the transfer
				// completes against an open line
				if c.OnTransfer != nil {
					c.OnTransfer(c.data)
				}
				c.data = 0xFF
				c.control &^= types.Bit7
				c.irq.Request(interrupts.SerialFlag)
			}
		}, func() uint8 {
			return c.control | 0x7E
		},
	)
	return c
}
