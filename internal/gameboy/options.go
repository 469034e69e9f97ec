package gameboy

import (
	"github.com/thelolagemann/gameboy/internal/boot"
	"github.com/thelolagemann/gameboy/pkg/log"
)

// Opt configures a GameBoy during construction.
type Opt func(*GameBoy) error

// WithBootROM overlays the given boot ROM image over the start
// of the address space and resets the CPU to power on state so
// execution begins in the overlay.
func WithBootROM(data []byte) Opt {
	return func(g *GameBoy) error {
		rom, err := boot.NewROM(data)
		if err != nil {
			return err
		}
		g.MMU.SetBootROM(rom)
		g.CPU.Boot()
		return nil
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger log.Logger) Opt {
	return func(g *GameBoy) error {
		g.Logger = logger
		g.MMU.Log = logger
		return nil
	}
}

// WithSerialReceiver registers a callback observing every byte
// the program sends over the serial port.
func WithSerialReceiver(fn func(b uint8)) Opt {
	return func(g *GameBoy) error {
		g.Serial.OnTransfer = fn
		return nil
	}
}

// WithSaveData restores previously saved cartridge RAM.
func WithSaveData(data []byte) Opt {
	return func(g *GameBoy) error {
		g.Cartridge.LoadRAM(data)
		return nil
	}
}
