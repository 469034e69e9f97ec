package web

import (
	"testing"

	"github.com/thelolagemann/gameboy/internal/gameboy"
	"github.com/thelolagemann/gameboy/internal/joypad"
	"github.com/thelolagemann/gameboy/internal/types"
	"github.com/thelolagemann/gameboy/pkg/log"
)

func TestParseKeyMessage(t *testing.T) {
	tests := []struct {
		message string
		want    keyEvent
		ok      bool
	}{
		{"d0", keyEvent{button: joypad.ButtonA, press: true}, true},
		{"u0", keyEvent{button: joypad.ButtonA}, true},
		{"d7", keyEvent{button: joypad.ButtonDown, press: true}, true},
		{"d8", keyEvent{}, false},  // past the last button
		{"d-1", keyEvent{}, false}, // negative button numbers
		{"x0", keyEvent{}, false},  // unknown verb
		{"d", keyEvent{}, false},
		{"", keyEvent{}, false},
		{"dzz", keyEvent{}, false},
	}
	for _, tt := range tests {
		got, ok := parseKeyMessage([]byte(tt.message))
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseKeyMessage(%q) = %+v, %t; want %+v, %t",
				tt.message, got, ok, tt.want, tt.ok)
		}
	}
}

func TestApplyKey(t *testing.T) {
	rom := make([]byte, 0x8000)
	gb, err := gameboy.NewGameBoy(rom, gameboy.WithLogger(log.NewNullLogger()))
	if err != nil {
		t.Fatalf("constructing machine: %v", err)
	}
	s := NewServer(gb, 1, log.NewNullLogger())

	e, ok := parseKeyMessage([]byte("d4")) // press Right
	if !ok {
		t.Fatal("expected the message to parse")
	}
	s.applyKey(e)

	gb.WriteIO(types.P1, 0x20) // select the direction half
	if v := gb.ReadIO(types.P1); v != 0xEE {
		t.Errorf("expected P1 to read 0xEE with Right held, got 0x%02X", v)
	}

	e, _ = parseKeyMessage([]byte("u4"))
	s.applyKey(e)
	if v := gb.ReadIO(types.P1); v != 0xEF {
		t.Errorf("expected P1 to read 0xEF after release, got 0x%02X", v)
	}
}
