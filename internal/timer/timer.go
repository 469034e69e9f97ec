// Package timer implements the divider and the programmable
// timer (DIV, TIMA, TMA, TAC).
package timer

import (
	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/types"
)

// timaBits holds the bit of the internal counter monitored for
// each TAC rate. TIMA increments on the falling edge of the
// monitored bit, which yields the four selectable periods of
// 1024, 16, 64 and 256 cycles.
var timaBits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// Controller is the timer unit. An internal 16-bit counter
// advances once per cycle; DIV is the counter divided by 16,
// truncated to 8 bits, so it visibly increments every 16
// cycles and any write resets the whole counter.
type Controller struct {
	divider uint16 // internal counter, DIV reads divider >> 4

	tima uint8
	tma  uint8
	tac  uint8

	irq *interrupts.Service
}

// NewController returns a new timer Controller with its
// hardware registers mapped.
func NewController(irq *interrupts.Service) *Controller {
	c := &Controller{
		irq: irq,
	}

	types.RegisterHardware(
		types.DIV,
		func(v uint8) {
			// any written value resets the internal counter,
			// which may also clock TIMA via the falling edge
			old := c.divider
			c.divider = 0
			c.detectEdge(old, 0)
		}, func() uint8 {
			return uint8(c.divider >> 4)
		},
	)
	types.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			c.tima = v
		}, func() uint8 {
			return c.tima
		},
	)
	types.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
		}, func() uint8 {
			return c.tma
		},
	)
	types.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0x07
		}, func() uint8 {
			return c.tac | 0xF8
		},
	)

	return c
}

// Tick advances the timer by the given number of cycles.
func (c *Controller) Tick(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		old := c.divider
		c.divider++
		c.detectEdge(old, c.divider)
	}
}

// detectEdge clocks TIMA when the monitored counter bit falls
// while the timer is enabled. On overflow TIMA reloads from
// TMA and a timer interrupt is requested.
func (c *Controller) detectEdge(old, new uint16) {
	if c.tac&types.Bit2 == 0 {
		return
	}
	bit := timaBits[c.tac&0x03]
	if old&bit != 0 && new&bit == 0 {
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
}
