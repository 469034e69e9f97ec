// Package boot holds the optional boot ROM overlay mapped at
// 0x0000 - 0x00FF until the program writes to 0xFF50.
package boot

import "fmt"

// Size of the DMG boot ROM in bytes.
const Size = 0x100

// ROM is a boot ROM image.
type ROM struct {
	data [Size]uint8
}

// NewROM returns a boot ROM from the given image. The image
// must be exactly Size bytes.
func NewROM(data []byte) (*ROM, error) {
	if len(data) != Size {
		return nil, fmt.Errorf("boot: expected %d byte image, got %d", Size, len(data))
	}
	r := &ROM{}
	copy(r.data[:], data)
	return r, nil
}

// Read returns the byte at the given address of the overlay.
func (r *ROM) Read(address uint16) uint8 {
	return r.data[address]
}
