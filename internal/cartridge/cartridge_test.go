package cartridge

import (
	"errors"
	"testing"
	"time"
)

// makeROM builds a ROM image of the given size code with every
// bank stamped with its own index at the start of the bank, so
// tests can tell which bank a read came from.
func makeROM(cartType Type, romCode, ramCode uint8) []byte {
	size := (32 * 1024) << romCode
	rom := make([]byte, size)
	rom[0x0147] = uint8(cartType)
	rom[0x0148] = romCode
	rom[0x0149] = ramCode
	copy(rom[0x0134:], "TEST")
	for bank := 0; bank < size/0x4000; bank++ {
		rom[bank*0x4000] = uint8(bank)
	}
	return rom
}

func TestNewCartridge(t *testing.T) {
	tests := []struct {
		name     string
		cartType Type
	}{
		{"ROM", ROM},
		{"MBC1", MBC1RAMBATT},
		{"MBC2", MBC2BATT},
		{"MBC3", MBC3RAMBATT},
		{"MBC5", MBC5RAMBATT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ramCode := uint8(0x03)
			if tt.cartType == MBC2BATT {
				ramCode = 0x00
			}
			c, err := NewCartridge(makeROM(tt.cartType, 2, ramCode))
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if c.Title() != "TEST" {
				t.Errorf("expected title TEST, got %q", c.Title())
			}
			if got := c.Header.CartridgeType.String(); got != tt.name {
				t.Errorf("expected controller %s, got %s", tt.name, got)
			}
		})
	}
}

func TestNewCartridge_Errors(t *testing.T) {
	t.Run("unsupported controller", func(t *testing.T) {
		rom := makeROM(ROM, 0, 0)
		rom[0x0147] = 0xFD // unimplemented controller
		_, err := NewCartridge(rom)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) || loadErr.Reason != UnsupportedController {
			t.Fatalf("expected UnsupportedController, got %v", err)
		}
	})
	t.Run("truncated image", func(t *testing.T) {
		_, err := NewCartridge(make([]byte, 0x100))
		var loadErr *LoadError
		if !errors.As(err, &loadErr) || loadErr.Reason != InvalidHeader {
			t.Fatalf("expected InvalidHeader, got %v", err)
		}
	})
	t.Run("declared size exceeds image", func(t *testing.T) {
		rom := makeROM(ROM, 0, 0)
		rom[0x0148] = 0x05 // claims 1MiB, image is 32KiB
		_, err := NewCartridge(rom)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) || loadErr.Reason != InvalidHeader {
			t.Fatalf("expected InvalidHeader, got %v", err)
		}
	})
}

func TestROMController_Immutable(t *testing.T) {
	c, err := NewCartridge(makeROM(ROM, 0, 0))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	before := c.Read(0x4000)
	// bank select window writes must have no effect at all
	c.Write(0x2000, 0x01)
	c.Write(0x2000, 0x42)
	c.Write(0x6000, 0x01)
	if got := c.Read(0x4000); got != before {
		t.Errorf("switchable region changed after bank writes: %02X -> %02X", before, got)
	}
}

func TestMBC1_BankZeroCoercion(t *testing.T) {
	c, err := NewCartridge(makeROM(MBC1, 2, 0))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	c.Write(0x2000, 0x00)
	if got := c.Read(0x4000); got != 1 {
		t.Errorf("writing 0x00 to the bank window should select bank 1, got bank %d", got)
	}
}

func TestMBC1_BankModulo(t *testing.T) {
	// 128KiB image: 8 banks, so selecting bank 10 wraps to 2
	c, err := NewCartridge(makeROM(MBC1, 2, 0))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	c.Write(0x2000, 10)
	if got := c.Read(0x4000); got != 2 {
		t.Errorf("bank 10 of 8 should reduce to bank 2, got bank %d", got)
	}
}

func TestMBC1_RAMEnable(t *testing.T) {
	c, err := NewCartridge(makeROM(MBC1RAM, 2, 0x03))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// disabled RAM reads as 0xFF and swallows writes
	c.Write(0xA000, 0x42)
	if got := c.Read(0xA000); got != 0xFF {
		t.Errorf("disabled RAM should read 0xFF, got %02X", got)
	}

	c.Write(0x0000, 0x0A)
	c.Write(0xA000, 0x42)
	if got := c.Read(0xA000); got != 0x42 {
		t.Errorf("enabled RAM should read back 0x42, got %02X", got)
	}

	// any non-0x0A nibble disables again
	c.Write(0x0000, 0x00)
	if got := c.Read(0xA000); got != 0xFF {
		t.Errorf("re-disabled RAM should read 0xFF, got %02X", got)
	}
}

func TestMBC1_UpperBits(t *testing.T) {
	// 1MiB image: 32 banks, bank 0x21 needs the upper register
	c, err := NewCartridge(makeROM(MBC1, 5, 0))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	c.Write(0x2000, 0x01)
	c.Write(0x4000, 0x01) // upper bits = 1 -> bank 0x21
	if got := c.Read(0x4000); got != 0x21 {
		t.Errorf("expected bank 0x21, got bank %d", got)
	}
}

func TestMBC2_BuiltinRAM(t *testing.T) {
	c, err := NewCartridge(makeROM(MBC2BATT, 2, 0))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	c.Write(0x0000, 0x0A) // bit 8 clear: RAM enable
	c.Write(0xA000, 0x5A)
	if got := c.Read(0xA000); got != 0xFA {
		t.Errorf("MBC2 RAM stores nibbles, expected 0xFA, got %02X", got)
	}
	// the 512 nibbles mirror through the window
	if got := c.Read(0xA200); got != 0xFA {
		t.Errorf("MBC2 RAM should mirror, got %02X", got)
	}

	c.Write(0x0100, 0x03) // bit 8 set: ROM bank select
	if got := c.Read(0x4000); got != 3 {
		t.Errorf("expected bank 3, got bank %d", got)
	}
}

func TestMBC5_BankZeroSelectable(t *testing.T) {
	c, err := NewCartridge(makeROM(MBC5, 2, 0))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	c.Write(0x2000, 0x00)
	if got := c.Read(0x4000); got != 0 {
		t.Errorf("MBC5 allows bank 0 in the switchable region, got bank %d", got)
	}
	c.Write(0x2000, 0x05)
	if got := c.Read(0x4000); got != 5 {
		t.Errorf("expected bank 5, got bank %d", got)
	}
}

func TestMBC3_RTCLatch(t *testing.T) {
	c, err := NewCartridge(makeROM(MBC3TIMERRAMBATT, 2, 0x03))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	c.Write(0x0000, 0x0A)
	c.Write(0x4000, 0x08) // select RTC seconds
	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x01) // latch
	if got := c.Read(0xA000); got > 59 {
		t.Errorf("latched seconds out of range: %d", got)
	}

	// switching back to a RAM bank unmaps the RTC
	c.Write(0x4000, 0x00)
	c.Write(0xA000, 0x42)
	if got := c.Read(0xA000); got != 0x42 {
		t.Errorf("expected RAM read 0x42 after unmapping RTC, got %02X", got)
	}
}

func TestMBC3_RTCLongElapsed(t *testing.T) {
	c, err := NewCartridge(makeROM(MBC3TIMERRAMBATT, 2, 0x03))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	// 1000 seconds elapsed: 16 minutes, 40 seconds
	mbc := c.Controller.(*memoryBankedCartridge3)
	mbc.rtcBase = time.Now().Add(-1000 * time.Second)

	c.Write(0x0000, 0x0A)
	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x01) // latch

	c.Write(0x4000, 0x08)
	// a little slack for the wall clock between Now and the latch
	if got := c.Read(0xA000); got < 40 || got > 44 {
		t.Errorf("expected about 40 latched seconds, got %d", got)
	}
	c.Write(0x4000, 0x09)
	if got := c.Read(0xA000); got != 16 {
		t.Errorf("expected 16 latched minutes, got %d", got)
	}
	c.Write(0x4000, 0x0A)
	if got := c.Read(0xA000); got != 0 {
		t.Errorf("expected 0 latched hours, got %d", got)
	}
}
