// Package sdl is the desktop front-end: an SDL window that
// runs the machine, blits each completed frame and feeds
// keyboard state back into the joypad.
package sdl

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/thelolagemann/gameboy/internal/gameboy"
	"github.com/thelolagemann/gameboy/internal/joypad"
	"github.com/thelolagemann/gameboy/internal/ppu"
)

// keymap maps SDL keycodes onto joypad buttons.
var keymap = map[sdl.Keycode]joypad.Button{
	sdl.K_z:         joypad.ButtonA,
	sdl.K_x:         joypad.ButtonB,
	sdl.K_RETURN:    joypad.ButtonStart,
	sdl.K_BACKSPACE: joypad.ButtonSelect,
	sdl.K_RIGHT:     joypad.ButtonRight,
	sdl.K_LEFT:      joypad.ButtonLeft,
	sdl.K_UP:        joypad.ButtonUp,
	sdl.K_DOWN:      joypad.ButtonDown,
}

// Window is an SDL window presenting a machine.
type Window struct {
	gb *gameboy.GameBoy

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels [ppu.ScreenHeight * ppu.ScreenWidth * 3]byte
}

// NewWindow opens a window scaled up from the native
// resolution by the given factor.
func NewWindow(gb *gameboy.GameBoy, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initialising SDL: %w", err)
	}

	w := &Window{gb: gb}

	var err error
	w.window, err = sdl.CreateWindow(
		gb.Cartridge.Title(),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.ScreenWidth*scale), int32(ppu.ScreenHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	w.texture, err = w.renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight,
	)
	if err != nil {
		return nil, fmt.Errorf("creating texture: %w", err)
	}

	return w, nil
}

// Run drives the machine frame by frame until the window is
// closed or the machine faults.
func (w *Window) Run() error {
	frameDuration := time.Duration(float64(time.Second) / gameboy.FrameRate)
	next := time.Now()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				button, ok := keymap[e.Keysym.Sym]
				if !ok {
					break
				}
				if e.Type == sdl.KEYDOWN {
					w.gb.Press(button)
				} else if e.Type == sdl.KEYUP {
					w.gb.Release(button)
				}
			}
		}

		if err := w.gb.Frame(); err != nil {
			return err
		}
		w.present()

		next = next.Add(frameDuration)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		} else {
			// too far behind to catch up, drop the debt
			next = time.Now()
		}
	}
}

func (w *Window) present() {
	frame := w.gb.Framebuffer()
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			offset := (y*ppu.ScreenWidth + x) * 3
			w.pixels[offset] = frame[y][x][0]
			w.pixels[offset+1] = frame[y][x][1]
			w.pixels[offset+2] = frame[y][x][2]
		}
	}

	_ = w.texture.Update(nil, unsafe.Pointer(&w.pixels[0]), ppu.ScreenWidth*3)
	_ = w.renderer.Clear()
	_ = w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
}

// Destroy releases the window's SDL resources.
func (w *Window) Destroy() {
	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.window != nil {
		_ = w.window.Destroy()
	}
	sdl.Quit()
}
