// Package sdl is the default display backend: a single go-sdl2 window
// presenting the PPU's frame buffer through a streaming texture, with
// keyboard input mapped straight onto the joypad.
package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dmgcore/dmgcore/internal/gameboy"
	"github.com/dmgcore/dmgcore/internal/joypad"
	"github.com/dmgcore/dmgcore/internal/ppu"
	"github.com/dmgcore/dmgcore/pkg/display"
)

var keymap = map[sdl.Keycode]joypad.Button{
	sdl.K_z:         joypad.ButtonA,
	sdl.K_x:         joypad.ButtonB,
	sdl.K_RETURN:    joypad.ButtonStart,
	sdl.K_BACKSPACE: joypad.ButtonSelect,
	sdl.K_UP:        joypad.ButtonUp,
	sdl.K_DOWN:      joypad.ButtonDown,
	sdl.K_LEFT:      joypad.ButtonLeft,
	sdl.K_RIGHT:     joypad.ButtonRight,
}

type driver struct {
	scale      float64
	fullscreen bool

	window  *sdl.Window
	render  *sdl.Renderer
	texture *sdl.Texture
	quit    bool
}

func init() {
	d := &driver{scale: 4.0}
	display.Install("sdl", d, []display.Option{
		{Name: "scale", Default: 4.0, Value: &d.scale, Type: "float", Description: "window scale factor"},
		{Name: "fullscreen", Default: false, Value: &d.fullscreen, Type: "bool", Description: "start in fullscreen"},
	})
}

func (d *driver) Start(gb *gameboy.GameBoy) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	w := int32(ppu.ScreenWidth * d.scale)
	h := int32(ppu.ScreenHeight * d.scale)

	windowFlags := uint32(sdl.WINDOW_SHOWN)
	if d.fullscreen {
		windowFlags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := sdl.CreateWindow("dmgcore", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, windowFlags)
	if err != nil {
		return err
	}
	d.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return err
	}
	d.render = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING, ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return err
	}
	d.texture = texture

	for !d.quit {
		d.pumpEvents(gb)

		frame := gb.RunFrame()
		d.present(frame)
	}

	return nil
}

func (d *driver) pumpEvents(gb *gameboy.GameBoy) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			d.quit = true
		case *sdl.KeyboardEvent:
			button, ok := keymap[e.Keysym.Sym]
			if !ok {
				continue
			}
			switch e.Type {
			case sdl.KEYDOWN:
				gb.KeyDown(button)
			case sdl.KEYUP:
				gb.KeyUp(button)
			}
		}
	}
}

func (d *driver) present(frame *[ppu.ScreenWidth * ppu.ScreenHeight][3]uint8) {
	pixels := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*3)
	for i, rgb := range frame {
		pixels[i*3] = rgb[0]
		pixels[i*3+1] = rgb[1]
		pixels[i*3+2] = rgb[2]
	}
	d.texture.Update(nil, pixels, ppu.ScreenWidth*3)
	d.render.Copy(d.texture, nil, nil)
	d.render.Present()
}

func (d *driver) Stop() error {
	d.quit = true
	if d.texture != nil {
		d.texture.Destroy()
	}
	if d.render != nil {
		d.render.Destroy()
	}
	if d.window != nil {
		d.window.Destroy()
	}
	sdl.Quit()
	return nil
}
