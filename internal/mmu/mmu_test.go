package mmu

import (
	"testing"

	"github.com/thelolagemann/gameboy/internal/boot"
	"github.com/thelolagemann/gameboy/internal/cartridge"
	"github.com/thelolagemann/gameboy/internal/interrupts"
	"github.com/thelolagemann/gameboy/internal/types"
	"github.com/thelolagemann/gameboy/pkg/log"
)

// fakeVideo is a VideoBus with no access blocking.
type fakeVideo struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8
}

func (v *fakeVideo) Read(address uint16) uint8 {
	if address >= 0xFE00 {
		return v.oam[address-0xFE00]
	}
	return v.vram[address-0x8000]
}

func (v *fakeVideo) Write(address uint16, value uint8) {
	if address >= 0xFE00 {
		v.oam[address-0xFE00] = value
		return
	}
	v.vram[address-0x8000] = value
}

func (v *fakeVideo) DMAWrite(offset uint8, value uint8) {
	v.oam[offset] = value
}

func testROM() []byte {
	rom := make([]byte, 0x8000)
	// header: ROM only controller, 32KiB ROM, no RAM
	for i := range rom[0x4000:] {
		rom[0x4000+i] = 0xA5
	}
	return rom
}

func newTestMMU(t *testing.T) (*MMU, *fakeVideo, *interrupts.Service) {
	t.Helper()
	types.Lock.Lock()
	defer types.Lock.Unlock()

	cart, err := cartridge.NewCartridge(testROM())
	if err != nil {
		t.Fatalf("building cartridge: %v", err)
	}
	irq := interrupts.NewService()
	m := NewMMU(cart, log.NewNullLogger())
	video := &fakeVideo{}
	m.AttachVideo(video)
	m.CollectRegisters()
	return m, video, irq
}

func TestEchoRAM(t *testing.T) {
	m, _, _ := newTestMMU(t)

	// work RAM is visible through the echo region
	m.Write(0xC123, 0x42)
	if v := m.Read(0xE123); v != 0x42 {
		t.Errorf("expected 0xE123 to echo 0xC123, got 0x%02X", v)
	}

	// and writes to the echo land in work RAM
	m.Write(0xF000, 0x99)
	if v := m.Read(0xD000); v != 0x99 {
		t.Errorf("expected 0xF000 to write through to 0xD000, got 0x%02X", v)
	}
}

func TestProhibitedRegion(t *testing.T) {
	m, _, _ := newTestMMU(t)

	m.Write(0xFEA5, 0x42)
	if v := m.Read(0xFEA5); v != 0xFF {
		t.Errorf("expected the prohibited region to read 0xFF, got 0x%02X", v)
	}
}

func TestHighRAM(t *testing.T) {
	m, _, _ := newTestMMU(t)

	m.Write(0xFF80, 0x11)
	m.Write(0xFFFE, 0x22)
	if v := m.Read(0xFF80); v != 0x11 {
		t.Errorf("expected 0x11 at 0xFF80, got 0x%02X", v)
	}
	if v := m.Read(0xFFFE); v != 0x22 {
		t.Errorf("expected 0x22 at 0xFFFE, got 0x%02X", v)
	}
}

func TestIO(t *testing.T) {
	t.Run("claimed registers are routed", func(t *testing.T) {
		m, _, irq := newTestMMU(t)

		m.Write(types.IF, 0xFF)
		if irq.Flag != 0x1F {
			t.Errorf("expected the IF write routed and masked, got 0x%02X", irq.Flag)
		}
		if v := m.Read(types.IF); v != 0xFF {
			t.Errorf("expected IF to read with the upper bits set, got 0x%02X", v)
		}
		m.Write(types.IE, 0x15)
		if v := m.Read(types.IE); v != 0x15 {
			t.Errorf("expected IE to read back verbatim, got 0x%02X", v)
		}
	})

	t.Run("unclaimed addresses store verbatim", func(t *testing.T) {
		m, _, _ := newTestMMU(t)

		// nothing claims the audio block here; the bytes are kept
		// for host side collaborators
		m.Write(0xFF26, 0x80)
		if v := m.Read(0xFF26); v != 0x80 {
			t.Errorf("expected 0xFF26 stored verbatim, got 0x%02X", v)
		}
		if v := m.Read(0xFF25); v != 0xFF {
			t.Errorf("expected an untouched unclaimed address to read 0xFF, got 0x%02X", v)
		}
	})
}

func TestDMA(t *testing.T) {
	m, video, _ := newTestMMU(t)

	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xC000+i, uint8(i)+1)
	}
	m.Write(types.DMA, 0xC0)

	for i := 0; i < 0xA0; i++ {
		if video.oam[i] != uint8(i)+1 {
			t.Fatalf("expected OAM byte %d to be 0x%02X, got 0x%02X", i, uint8(i)+1, video.oam[i])
		}
	}
}

func TestBootROMOverlay(t *testing.T) {
	m, _, _ := newTestMMU(t)

	data := make([]byte, boot.Size)
	for i := range data {
		data[i] = 0x5A
	}
	bootROM, err := boot.NewROM(data)
	if err != nil {
		t.Fatalf("building boot ROM: %v", err)
	}
	m.SetBootROM(bootROM)

	if m.IsBootROMDone() {
		t.Fatal("expected the overlay mapped after SetBootROM")
	}
	if v := m.Read(0x0000); v != 0x5A {
		t.Errorf("expected the overlay at 0x0000, got 0x%02X", v)
	}
	// the overlay only covers the first page
	if v := m.Read(0x4000); v != 0xA5 {
		t.Errorf("expected cartridge ROM at 0x4000, got 0x%02X", v)
	}

	m.Write(types.BDIS, 0x01)
	if !m.IsBootROMDone() {
		t.Error("expected the overlay unmapped after writing 0xFF50")
	}
	if v := m.Read(0x0000); v != 0x00 {
		t.Errorf("expected cartridge ROM at 0x0000 after unmapping, got 0x%02X", v)
	}
}
