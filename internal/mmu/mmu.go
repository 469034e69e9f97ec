// Package mmu provides the memory management unit. The MMU is
// unaware of the other components; it routes every read and
// write of the 64KiB address space to the right backing region
// through the IOBus interface.
package mmu

import (
	"github.com/thelolagemann/gameboy/internal/boot"
	"github.com/thelolagemann/gameboy/internal/cartridge"
	"github.com/thelolagemann/gameboy/internal/ram"
	"github.com/thelolagemann/gameboy/internal/types"
	"github.com/thelolagemann/gameboy/pkg/log"
)

// IOBus is the interface the MMU uses to talk to the other
// components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// VideoBus is the IOBus of the display, extended with a direct
// OAM write path for DMA transfers, which land even while the
// CPU is locked out of OAM.
type VideoBus interface {
	IOBus
	DMAWrite(offset uint8, value uint8)
}

// MMU routes all memory reads and writes of the 64KiB address
// space, delegating to the other components through the IOBus
// interface.
type MMU struct {
	// 64KiB address space dispatch
	raw [65536]*types.Address

	// 0x0000 - 0x00FF - boot ROM overlay, until 0xFF50 written
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM, 0xA000 - 0xBFFF - external RAM
	Cart *cartridge.Cartridge

	// 0x8000 - 0x9FFF - video RAM, 0xFE00 - 0xFE9F - OAM
	Video VideoBus

	// 0xC000 - 0xDFFF - work RAM, echoed at 0xE000 - 0xFDFF
	wRAM ram.RAM

	// 0xFF80 - 0xFFFE - high RAM
	hRAM ram.RAM

	// 0xFF00 - 0xFF7F and 0xFFFF - hardware registers
	registers types.HardwareRegisters

	// backing bytes for the I/O addresses no component claims
	// (the audio block among them): stored verbatim for host
	// side collaborators to act on
	ioStore [0x80]uint8

	Log log.Logger
}

// NewMMU returns a new MMU routing the given cartridge. The
// video bus is attached separately, and the hardware register
// table is collected once every component has registered.
func NewMMU(cart *cartridge.Cartridge, logger log.Logger) *MMU {
	m := &MMU{
		Cart: cart,
		wRAM: ram.NewRAM(0x2000),
		hRAM: ram.NewRAM(0x7F),
		Log:  logger,
	}
	for i := range m.ioStore {
		m.ioStore[i] = 0xFF
	}
	m.init()
	return m
}

func (m *MMU) init() {
	types.RegisterHardware(
		types.BDIS,
		func(v uint8) {
			// any write unmaps the boot ROM overlay
			m.bootROMDone = true
		}, types.NoRead)
	types.RegisterHardware(
		types.DMA,
		func(v uint8) {
			m.doDMA(v)
		}, types.NoRead)

	addresses := []types.Address{
		{Read: m.readCart, Write: m.Cart.Write},
		{Read: m.Cart.Read, Write: m.Cart.Write},
		{Read: readOffset(m.wRAM.Read, 0xC000), Write: writeOffset(m.wRAM.Write, 0xC000)},
		{Read: readOffset(m.wRAM.Read, 0xE000), Write: writeOffset(m.wRAM.Write, 0xE000)},
		{Read: readOffset(m.hRAM.Read, 0xFF80), Write: writeOffset(m.hRAM.Write, 0xFF80)},
		{Read: m.readIO, Write: m.writeIO},
		{Read: func(address uint16) uint8 { return 0xFF }, Write: func(address uint16, value uint8) {}},
	}

	// 0x0000 - 0x7FFF - cartridge ROM, boot overlay on the
	// first page
	for i := 0x0000; i < 0x8000; i++ {
		if i < boot.Size {
			m.raw[i] = &addresses[0]
		} else {
			m.raw[i] = &addresses[1]
		}
	}

	// 0xA000 - 0xBFFF - cartridge external RAM
	for i := 0xA000; i < 0xC000; i++ {
		m.raw[i] = &addresses[1]
	}

	// 0xC000 - 0xDFFF - work RAM
	for i := 0xC000; i < 0xE000; i++ {
		m.raw[i] = &addresses[2]
	}

	// 0xE000 - 0xFDFF - echo of work RAM
	for i := 0xE000; i < 0xFE00; i++ {
		m.raw[i] = &addresses[3]
	}

	// 0xFEA0 - 0xFEFF - prohibited
	for i := 0xFEA0; i < 0xFF00; i++ {
		m.raw[i] = &addresses[6]
	}

	// 0xFF00 - 0xFF7F and 0xFFFF - hardware registers
	for i := 0xFF00; i < 0xFF80; i++ {
		m.raw[i] = &addresses[5]
	}
	m.raw[0xFFFF] = &addresses[5]

	// 0xFF80 - 0xFFFE - high RAM
	for i := 0xFF80; i < 0xFFFF; i++ {
		m.raw[i] = &addresses[4]
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

// AttachVideo attaches the display to the bus, mapping video
// RAM and OAM. The display applies its own mode based access
// blocking.
func (m *MMU) AttachVideo(video VideoBus) {
	m.Video = video
	address := &types.Address{Read: video.Read, Write: video.Write}
	for i := 0x8000; i < 0xA000; i++ {
		m.raw[i] = address
	}
	for i := 0xFE00; i < 0xFEA0; i++ {
		m.raw[i] = address
	}
}

// CollectRegisters takes ownership of the hardware registers
// defined by the components built so far. Must be called once
// after every component has been constructed.
func (m *MMU) CollectRegisters() {
	m.registers = types.CollectHardwareRegisters()
}

// SetBootROM installs a boot ROM overlay over 0x0000 - 0x00FF.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
}

// IsBootROMDone reports whether the boot overlay has been
// unmapped (or was never installed).
func (m *MMU) IsBootROMDone() bool {
	return m.bootROM == nil || m.bootROMDone
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}

func (m *MMU) readCart(address uint16) uint8 {
	if m.bootROM != nil && !m.bootROMDone {
		return m.bootROM.Read(address)
	}
	return m.Cart.Read(address)
}

// readIO reads a hardware register, falling back to the
// verbatim store for addresses no component claims.
func (m *MMU) readIO(address uint16) uint8 {
	if m.registers.Has(address) {
		return m.registers.Read(address)
	}
	if address >= 0xFF00 && address < 0xFF80 {
		return m.ioStore[address&0x7F]
	}
	return 0xFF
}

func (m *MMU) writeIO(address uint16, value uint8) {
	if m.registers.Has(address) {
		m.registers.Write(address, value)
		return
	}
	if address >= 0xFF00 && address < 0xFF80 {
		m.ioStore[address&0x7F] = value
	}
}

// doDMA copies 160 bytes from page << 8 into OAM. The copy
// bypasses the display's access blocking.
func (m *MMU) doDMA(page uint8) {
	if m.Video == nil {
		return
	}
	source := uint16(page) << 8
	for i := uint8(0); i < 0xA0; i++ {
		m.Video.DMAWrite(i, m.Read(source+uint16(i)))
	}
}
