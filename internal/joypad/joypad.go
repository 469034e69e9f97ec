// Package joypad implements the button matrix behind the P1
// register. Button state is injected by the host; the selected
// half of the matrix is read back through P1.
package joypad

import (
	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/types"
)

// Button identifies one of the eight inputs.
type Button = uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// State holds the pressed buttons as a bit per Button, and
// answers P1 reads for whichever matrix half is selected.
type State struct {
	// state has a set bit for every held button
	state uint8
	// select bits 4 and 5 of P1, written by the program
	selection uint8

	irq *interrupts.Service

	// onPress is invoked on every press, to wake a stopped CPU
	onPress func()
}

// New returns a new joypad State with P1 mapped.
func New(irq *interrupts.Service) *State {
	s := &State{
		irq:       irq,
		selection: 0x30,
	}
	types.RegisterHardware(
		types.P1,
		func(v uint8) {
			s.selection = v & 0x30
		}, func() uint8 {
			return s.read()
		},
	)
	return s
}

// SetWakeHandler registers a callback run on every press.
func (s *State) SetWakeHandler(fn func()) {
	s.onPress = fn
}

// read composes P1: the select bits written by the program and
// the selected button lines, low when pressed.
func (s *State) read() uint8 {
	p1 := 0xC0 | s.selection | 0x0F
	if s.selection&types.Bit5 == 0 {
		// action buttons: A, B, Select, Start on bits 0-3
		p1 &^= s.state & 0x0F
	}
	if s.selection&types.Bit4 == 0 {
		// direction buttons: Right, Left, Up, Down on bits 0-3
		p1 &^= s.state >> 4
	}
	return p1
}

// Press marks the given button held, requests a joypad
// interrupt and wakes a stopped CPU.
func (s *State) Press(button Button) {
	s.state |= 1 << button
	s.irq.Request(interrupts.JoypadFlag)
	if s.onPress != nil {
		s.onPress()
	}
}

// Release marks the given button no longer held.
func (s *State) Release(button Button) {
	s.state &^= 1 << button
}

// SetInput replaces the whole button state with the given
// mask, a bit per Button. Newly pressed buttons request a
// joypad interrupt.
func (s *State) SetInput(mask uint8) {
	pressed := mask &^ s.state
	s.state = mask
	if pressed != 0 {
		s.irq.Request(interrupts.JoypadFlag)
		if s.onPress != nil {
			s.onPress()
		}
	}
}
