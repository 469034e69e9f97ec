package cartridge

import "fmt"

// LoadErrorReason classifies why a ROM image was rejected.
type LoadErrorReason uint8

const (
	// UnsupportedController means the header names a cartridge
	// controller this emulator has no banking behaviour for.
	UnsupportedController LoadErrorReason = iota
	// InvalidHeader means the image is too short to contain a
	// header, or the sizes the header declares don't match the
	// image.
	InvalidHeader
)

// LoadError is returned when a ROM image cannot be loaded. The
// machine is never constructed when loading fails.
type LoadError struct {
	Reason LoadErrorReason
	Detail string
}

func (e *LoadError) Error() string {
	switch e.Reason {
	case UnsupportedController:
		return fmt.Sprintf("cartridge: unsupported controller: %s", e.Detail)
	case InvalidHeader:
		return fmt.Sprintf("cartridge: invalid header: %s", e.Detail)
	}
	return fmt.Sprintf("cartridge: load error: %s", e.Detail)
}

func unsupportedController(t Type) error {
	return &LoadError{Reason: UnsupportedController, Detail: fmt.Sprintf("0x%02X", uint8(t))}
}

func invalidHeader(format string, args ...interface{}) error {
	return &LoadError{Reason: InvalidHeader, Detail: fmt.Sprintf(format, args...)}
}
