// Package fyne is the alternate windowed backend: a fyne/v2
// canvas.Raster updated from the PPU frame buffer, driven by a
// periodic ticker rather than the sdl backend's blocking render loop,
// since fyne owns its own event loop via app.Run.
package fyne

import (
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/dmgcore/dmgcore/internal/gameboy"
	"github.com/dmgcore/dmgcore/internal/joypad"
	"github.com/dmgcore/dmgcore/internal/ppu"
	"github.com/dmgcore/dmgcore/pkg/display"
)

var keymap = map[fyne.KeyName]joypad.Button{
	fyne.KeyZ:         joypad.ButtonA,
	fyne.KeyX:         joypad.ButtonB,
	fyne.KeyReturn:    joypad.ButtonStart,
	fyne.KeyBackspace: joypad.ButtonSelect,
	fyne.KeyUp:        joypad.ButtonUp,
	fyne.KeyDown:      joypad.ButtonDown,
	fyne.KeyLeft:      joypad.ButtonLeft,
	fyne.KeyRight:     joypad.ButtonRight,
}

type driver struct {
	app    fyne.App
	window fyne.Window
	scale  float64

	stopped chan struct{}
}

func init() {
	d := &driver{scale: 4.0, stopped: make(chan struct{})}
	display.Install("fyne", d, []display.Option{
		{Name: "scale", Default: 4.0, Value: &d.scale, Type: "float", Description: "window scale factor"},
	})
}

func (d *driver) Start(gb *gameboy.GameBoy) error {
	a := app.NewWithID("dmgcore")
	d.app = a

	window := a.NewWindow("dmgcore")
	window.SetMaster()
	window.Resize(fyne.NewSize(float32(ppu.ScreenWidth)*float32(d.scale), float32(ppu.ScreenHeight)*float32(d.scale)))
	window.SetPadded(false)
	d.window = window

	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	raster := canvas.NewRasterFromImage(img)
	raster.ScaleMode = canvas.ImageScalePixels
	window.SetContent(raster)

	if desk, ok := window.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if b, ok := keymap[e.Name]; ok {
				gb.KeyDown(b)
			}
		})
		desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
			if b, ok := keymap[e.Name]; ok {
				gb.KeyUp(b)
			}
		})
	}

	go d.runFrames(gb, img, raster)

	window.Show()
	a.Run()
	return nil
}

// runFrames steps the emulator and repaints the raster roughly at the
// DMG's native ~59.7 Hz, independent of fyne's own redraw cadence.
func (d *driver) runFrames(gb *gameboy.GameBoy, img *image.RGBA, raster *canvas.Raster) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopped:
			return
		case <-ticker.C:
			frame := gb.RunFrame()
			for i, rgb := range frame {
				x := i % ppu.ScreenWidth
				y := i / ppu.ScreenWidth
				img.Set(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF})
			}
			raster.Refresh()
		}
	}
}

func (d *driver) Stop() error {
	close(d.stopped)
	if d.window != nil {
		d.window.Close()
	}
	return nil
}
