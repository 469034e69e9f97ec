// Package ppu implements the display pipeline: a per scanline
// state machine that consumes cycles in lockstep with the CPU,
// produces the framebuffer one row at a time, and raises
// V-Blank and STAT interrupts at mode boundaries.
package ppu

import (
	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144

	// CyclesPerScanline is the number of cycles one scanline
	// consumes, over all of its modes.
	CyclesPerScanline = 456
	// ScanlineCount is the total number of scanlines, the
	// visible 144 plus the 10 V-Blank lines.
	ScanlineCount = 154

	// oamScanEnd is the dot at which OAM scan gives way to
	// pixel transfer.
	oamScanEnd = 80
	// pixelTransferEnd is the dot at which pixel transfer
	// gives way to H-Blank, using the baseline transfer cost.
	pixelTransferEnd = 80 + 172
)

// Mode is the display mode reported in STAT bits 0-1.
type Mode = uint8

const (
	// ModeHBlank is the idle tail of a visible scanline. The
	// CPU has full bus access.
	ModeHBlank Mode = iota
	// ModeVBlank covers scanlines 144-153.
	ModeVBlank
	// ModeOAM is the sprite scan at the start of a visible
	// scanline. OAM is inaccessible to the CPU.
	ModeOAM
	// ModeVRAM is the pixel transfer. VRAM and OAM are
	// inaccessible to the CPU.
	ModeVRAM
)

// LCDC bits.
const (
	BGEnable      = types.Bit0
	OBJEnable     = types.Bit1
	OBJSize       = types.Bit2
	BGTileMap     = types.Bit3
	TileData      = types.Bit4
	WindowEnable  = types.Bit5
	WindowTileMap = types.Bit6
	Enable        = types.Bit7
)

// STAT bits.
const (
	Coincidence       = types.Bit2
	HBlankInterrupt   = types.Bit3
	VBlankInterrupt   = types.Bit4
	OAMInterrupt      = types.Bit5
	LYCInterrupt      = types.Bit6
)

// PPU is the display pipeline. It owns video RAM, the object
// attribute table and the framebuffer, and advances only when
// the CPU hands it cycles.
type PPU struct {
	// Mode is the current display mode.
	Mode Mode

	lcdc   uint8
	status uint8 // STAT bits 3-6, the writable interrupt enables

	// dot counter within the current scanline, 0-455
	currentCycle uint16

	ly  uint8
	lyc uint8

	scy, scx uint8
	wy, wx   uint8

	bgp        uint8
	obp0, obp1 uint8

	vram [0x2000]uint8
	oam  [0xA0]uint8

	// frame being composited, one row per H-Blank entry
	frame [ScreenHeight][ScreenWidth][3]uint8
	// PreparedFrame is the last completed frame, copied out at
	// the V-Blank transition.
	PreparedFrame [ScreenHeight][ScreenWidth][3]uint8

	frameReady bool

	// bgLine holds the palette indices of the background row
	// most recently composited, consulted for sprite priority.
	bgLine [ScreenWidth]uint8

	irq *interrupts.Service
}

// NewPPU returns a new PPU with its hardware registers mapped.
func NewPPU(irq *interrupts.Service) *PPU {
	p := &PPU{
		irq: irq,
		// a disabled display reports H-Blank; OAM scan begins
		// when LCDC enables it
		Mode: ModeHBlank,
	}
	p.init()
	return p
}

func (p *PPU) init() {
	types.RegisterHardware(
		types.LCDC,
		func(v uint8) {
			wasEnabled := p.Enabled()
			p.lcdc = v
			if wasEnabled && !p.Enabled() {
				// display switched off: reset the scanline
				// machinery, hold the framebuffer
				p.ly = 0
				p.currentCycle = 0
				p.Mode = ModeHBlank
			} else if !wasEnabled && p.Enabled() {
				p.currentCycle = 0
				p.Mode = ModeOAM
				p.compareLYC()
			}
		}, func() uint8 {
			return p.lcdc
		},
	)
	types.RegisterHardware(
		types.STAT,
		func(v uint8) {
			// only the interrupt enables are writable
			p.status = v & 0x78
		}, func() uint8 {
			stat := types.Bit7 | p.status | p.Mode
			if p.ly == p.lyc {
				stat |= Coincidence
			}
			return stat
		},
	)
	types.RegisterHardware(
		types.SCY,
		func(v uint8) { p.scy = v },
		func() uint8 { return p.scy },
	)
	types.RegisterHardware(
		types.SCX,
		func(v uint8) { p.scx = v },
		func() uint8 { return p.scx },
	)
	types.RegisterHardware(
		types.LY,
		types.NoWrite,
		func() uint8 { return p.ly },
	)
	types.RegisterHardware(
		types.LYC,
		func(v uint8) {
			p.lyc = v
			if p.Enabled() {
				p.compareLYC()
			}
		},
		func() uint8 { return p.lyc },
	)
	types.RegisterHardware(
		types.BGP,
		func(v uint8) { p.bgp = v },
		func() uint8 { return p.bgp },
	)
	types.RegisterHardware(
		types.OBP0,
		func(v uint8) { p.obp0 = v },
		func() uint8 { return p.obp0 },
	)
	types.RegisterHardware(
		types.OBP1,
		func(v uint8) { p.obp1 = v },
		func() uint8 { return p.obp1 },
	)
	types.RegisterHardware(
		types.WY,
		func(v uint8) { p.wy = v },
		func() uint8 { return p.wy },
	)
	types.RegisterHardware(
		types.WX,
		func(v uint8) { p.wx = v },
		func() uint8 { return p.wx },
	)
}

// Enabled reports whether the display is switched on.
func (p *PPU) Enabled() bool {
	return p.lcdc&Enable != 0
}

// Tick advances the display by the given number of cycles.
// While the display is disabled this is a no-op.
func (p *PPU) Tick(cycles uint8) {
	if !p.Enabled() {
		return
	}
	for i := uint8(0); i < cycles; i++ {
		p.tickCycle()
	}
}

func (p *PPU) tickCycle() {
	p.currentCycle++

	if p.ly >= ScreenHeight {
		// V-Blank lines have no internal mode subdivision
		if p.currentCycle == CyclesPerScanline {
			p.currentCycle = 0
			p.setLY(p.ly + 1)
		}
		return
	}

	switch p.currentCycle {
	case oamScanEnd:
		p.setMode(ModeVRAM)
	case pixelTransferEnd:
		p.setMode(ModeHBlank)
		p.renderScanline()
	case CyclesPerScanline:
		p.currentCycle = 0
		p.setLY(p.ly + 1)
	}
}

// setLY advances to the given scanline, wrapping 153 to 0, and
// performs the mode transition the new line begins with.
func (p *PPU) setLY(ly uint8) {
	if ly == ScanlineCount {
		ly = 0
	}
	p.ly = ly
	p.compareLYC()

	switch {
	case ly == ScreenHeight:
		// the frame is complete at the V-Blank transition
		p.setMode(ModeVBlank)
		p.irq.Request(interrupts.VBlankFlag)
		p.PreparedFrame = p.frame
		p.frameReady = true
	case ly < ScreenHeight:
		p.setMode(ModeOAM)
	}
}

// setMode enters the given mode and raises a STAT interrupt
// when the mode's enable bit is set.
func (p *PPU) setMode(mode Mode) {
	p.Mode = mode
	switch mode {
	case ModeHBlank:
		if p.status&HBlankInterrupt != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	case ModeVBlank:
		if p.status&VBlankInterrupt != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	case ModeOAM:
		if p.status&OAMInterrupt != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	}
}

// compareLYC raises a STAT interrupt when LY matches LYC and
// the coincidence source is enabled.
func (p *PPU) compareLYC() {
	if p.ly == p.lyc && p.status&LYCInterrupt != 0 {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// HasFrame reports whether a completed frame is waiting to be
// consumed.
func (p *PPU) HasFrame() bool {
	return p.frameReady
}

// ClearRefresh marks the prepared frame as consumed.
func (p *PPU) ClearRefresh() {
	p.frameReady = false
}

// Read returns the value at the given VRAM or OAM address,
// honouring the bus blocking of the current mode: VRAM is
// unreadable during pixel transfer, OAM during OAM scan and
// pixel transfer.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if p.vramBlocked() {
			return 0xFF
		}
		return p.vram[address-0x8000]
	case address >= 0xFE00 && address < 0xFEA0:
		if p.oamBlocked() {
			return 0xFF
		}
		return p.oam[address-0xFE00]
	}
	return 0xFF
}

// Write writes the value to the given VRAM or OAM address,
// dropped while the region is blocked.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if !p.vramBlocked() {
			p.vram[address-0x8000] = value
		}
	case address >= 0xFE00 && address < 0xFEA0:
		if !p.oamBlocked() {
			p.oam[address-0xFE00] = value
		}
	}
}

// DMAWrite writes a byte into OAM regardless of mode. Used by
// the DMA transfer, which owns the bus it runs on.
func (p *PPU) DMAWrite(offset uint8, value uint8) {
	if offset < 0xA0 {
		p.oam[offset] = value
	}
}

func (p *PPU) vramBlocked() bool {
	return p.Enabled() && p.Mode == ModeVRAM
}

func (p *PPU) oamBlocked() bool {
	return p.Enabled() && (p.Mode == ModeOAM || p.Mode == ModeVRAM)
}
