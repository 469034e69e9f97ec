package gameboy

import (
	"fmt"
	"os"
	"path/filepath"
)

// saveName derives the save file name from the cartridge
// title, falling back to the ROM fingerprint for carts with a
// blank title.
func (g *GameBoy) saveName() string {
	if title := g.Cartridge.Title(); title != "" {
		return title + ".sav"
	}
	return fmt.Sprintf("%016x.sav", g.Cartridge.Fingerprint())
}

// SaveRAM writes the cartridge RAM to a save file in dir. A
// no-op for cartridges without battery backed RAM.
func (g *GameBoy) SaveRAM(dir string) error {
	if !g.Cartridge.HasBattery() {
		return nil
	}
	ram := g.Cartridge.RAM()
	if ram == nil {
		return nil
	}
	path := filepath.Join(dir, g.saveName())
	if err := os.WriteFile(path, ram, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	g.Logger.Debugf("saved %d bytes to %s", len(ram), path)
	return nil
}

// LoadRAMFile restores the cartridge RAM from its save file in
// dir, if one exists.
func (g *GameBoy) LoadRAMFile(dir string) error {
	if !g.Cartridge.HasBattery() {
		return nil
	}
	path := filepath.Join(dir, g.saveName())
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading save: %w", err)
	}
	g.Cartridge.LoadRAM(data)
	g.Logger.Debugf("loaded %d bytes from %s", len(data), path)
	return nil
}
