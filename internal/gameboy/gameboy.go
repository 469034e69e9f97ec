// Package gameboy wires the components into a machine and
// exposes the API the host drives: construct from a ROM, step
// or run whole frames, inject input, read the framebuffer.
package gameboy

import (
	"github.com/thelolagemann/gameboy/internal/cartridge"
	"github.com/thelolagemann/gameboy/internal/cpu"
	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/joypad"
	"github.com/thelolagemann/gameboy/internal/mmu"
	"github.com/thelolagemann/gameboy/internal/ppu"
	"github.com/thelolagemann/gameboy/internal/serial"
	"github.com/thelolagemann/gameboy/internal/timer"
	"github.com/thelolagemann/gameboy/internal/types"
	"github.com/thelolagemann/gameboy/pkg/log"
)

const (
	// ClockSpeed is the clock rate in cycles per second.
	ClockSpeed = 4194304
	// FrameRate is the refresh rate of the display in Hz.
	FrameRate = 59.97
	// CyclesPerFrame is the number of cycles per frame.
	CyclesPerFrame = ClockSpeed / FrameRate

	// frameCycleBudget bounds a Frame call when nothing will
	// ever complete a frame (display off, CPU stopped).
	frameCycleBudget = 70224 * 2
)

// IllegalOpcodeError is the fault surfaced when the program
// runs into an opcode with no defined mapping.
type IllegalOpcodeError = cpu.IllegalOpcodeError

// GameBoy is a complete machine.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Timer      *timer.Controller
	Serial     *serial.Controller
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Cartridge  *cartridge.Cartridge

	Logger log.Logger
}

// NewGameBoy loads the given ROM image and returns a machine
// ready to step. Loading fails with a *cartridge.LoadError
// when the image is malformed or needs an unsupported banking
// controller.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	// the hardware register table is package level state, so
	// machines must be constructed one at a time
	types.Lock.Lock()
	defer types.Lock.Unlock()

	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		return nil, err
	}

	logger := log.New()

	irq := interrupts.NewService()
	pad := joypad.New(irq)
	controller := timer.NewController(irq)
	serialCtl := serial.NewController(irq)
	memBus := mmu.NewMMU(cart, logger)
	video := ppu.NewPPU(irq)
	memBus.AttachVideo(video)
	processor := cpu.NewCPU(memBus, irq)

	g := &GameBoy{
		CPU:        processor,
		MMU:        memBus,
		PPU:        video,
		Timer:      controller,
		Serial:     serialCtl,
		Joypad:     pad,
		Interrupts: irq,
		Cartridge:  cart,
		Logger:     logger,
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	memBus.CollectRegisters()
	pad.SetWakeHandler(processor.Wake)

	g.Logger.Infof("loaded cartridge: %s", cart.Header)
	return g, nil
}

// Step executes one CPU step and advances the timer and the
// display by its cycle cost. While the CPU is stopped nothing
// else in the machine advances. The fault of an illegal opcode
// is returned as a *IllegalOpcodeError and the machine makes
// no further progress.
func (g *GameBoy) Step() (uint8, error) {
	cycles, err := g.CPU.Step()
	if err != nil {
		return 0, err
	}
	if !g.CPU.Stopped() {
		g.Timer.Tick(cycles)
		g.PPU.Tick(cycles)
	}
	return cycles, nil
}

// Frame steps the machine until the display completes a frame.
// When the display is off or the CPU is stopped, it returns
// after about two frames worth of cycles instead, so a host
// pacing on Frame keeps its rhythm.
func (g *GameBoy) Frame() error {
	var elapsed uint32
	for !g.PPU.HasFrame() {
		cycles, err := g.Step()
		if err != nil {
			return err
		}
		if elapsed += uint32(cycles); elapsed >= frameCycleBudget {
			return nil
		}
	}
	g.PPU.ClearRefresh()
	return nil
}

// Framebuffer returns the last completed frame.
func (g *GameBoy) Framebuffer() [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8 {
	return g.PPU.PreparedFrame
}

// SetInput replaces the joypad state with the given mask, a
// bit per joypad.Button.
func (g *GameBoy) SetInput(mask uint8) {
	g.Joypad.SetInput(mask)
}

// Press presses a button.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases a button.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// ReadIO reads an address on the bus. Intended for host side
// collaborators observing registers the core stores verbatim.
func (g *GameBoy) ReadIO(address uint16) uint8 {
	return g.MMU.Read(address)
}

// WriteIO writes an address on the bus.
func (g *GameBoy) WriteIO(address uint16, value uint8) {
	g.MMU.Write(address, value)
}
