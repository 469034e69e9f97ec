package types

import (
	"fmt"
	"sync"
)

var (
	hardwareRegisters = HardwareRegisters{}
	// Lock guards the package level register table while a
	// machine is being constructed.
	Lock sync.Mutex
)

// HardwareRegisters is the set of hardware registers of a
// single machine, indexed by the register address ANDed with
// 0x007F. IE (0xFFFF) shares index 0x7F with 0xFF7F, which is
// unmapped on this hardware.
type HardwareRegisters [0x80]*HardwareRegister

// Read returns the value of the hardware register at the given
// address, or 0xFF when no register is mapped there.
func (h HardwareRegisters) Read(address uint16) uint8 {
	if address == 0xFFFF {
		return h[0x7F].Read()
	}
	if h[address&0x007F] == nil || address == 0xFF7F {
		return 0xFF
	}
	return h[address&0x007F].Read()
}

// Write writes the given value to the hardware register at the
// given address. Writes to unmapped addresses are dropped.
func (h HardwareRegisters) Write(address uint16, value uint8) {
	if h[address&0x007F] == nil {
		return
	}
	h[address&0x007F].Write(value)
}

// CollectHardwareRegisters returns the registers defined since
// the last collection and clears the package table, so that
// several machines can be constructed in one process.
func CollectHardwareRegisters() HardwareRegisters {
	hardware := hardwareRegisters
	hardwareRegisters = HardwareRegisters{}
	return hardware
}

// Has reports whether a register is mapped at the given
// address.
func (h HardwareRegisters) Has(address uint16) bool {
	if address == 0xFF7F {
		return false
	}
	return h[address&0x007F] != nil
}

// HardwareRegister is a single hardware register: an address
// and the read/write behaviour the owning component gave it.
type HardwareRegister struct {
	address HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// RegisterHardware maps a hardware register at the given
// address. Either function may be nil, making the register
// write-only or read-only respectively.
func RegisterHardware(address HardwareAddress, write func(v uint8), read func() uint8) {
	hardwareRegisters[address&0x007F] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

func (h *HardwareRegister) Read() uint8 {
	if h.read != nil {
		return h.read()
	}
	panic(fmt.Sprintf("hardware: no read function for address 0x%04X", h.address))
}

func (h *HardwareRegister) Write(value uint8) {
	if h.write != nil {
		h.write(value)
		return
	}
	panic(fmt.Sprintf("hardware: no write function for address 0x%04X", h.address))
}

// NoRead is a read function for registers that always read as
// 0xFF.
func NoRead() uint8 {
	return 0xFF
}

// NoWrite is a write function for registers that ignore writes.
func NoWrite(v uint8) {
	// do nothing
}
