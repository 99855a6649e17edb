// Command dmgcore runs a Game Boy ROM against one of the registered
// display backends.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmgcore/dmgcore/internal/cartridge"
	"github.com/dmgcore/dmgcore/internal/gameboy"
	"github.com/dmgcore/dmgcore/internal/ppu/palette"
	"github.com/dmgcore/dmgcore/pkg/display"
	"github.com/dmgcore/dmgcore/pkg/log"
	"github.com/dmgcore/dmgcore/pkg/rom"

	_ "github.com/dmgcore/dmgcore/pkg/display/fyne"
	_ "github.com/dmgcore/dmgcore/pkg/display/sdl"
	_ "github.com/dmgcore/dmgcore/pkg/display/web"
)

func main() {
	romPath := flag.String("rom", "", "path to a .gb/.gbc ROM, optionally gzip/zip/7z-compressed")
	savePath := flag.String("save", "", "path to the battery-RAM save file (defaults to the ROM path with a .sav extension)")
	backend := flag.String("backend", "sdl", fmt.Sprintf("display backend to use: auto, %v", display.Names()))
	paletteName := flag.String("palette", "greyscale", "colour palette: greyscale, green, red, yellow")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	display.RegisterFlags()
	flag.Parse()

	logger := log.NewLeveled(*logLevel)

	if *romPath == "" {
		picked, err := rom.AskForFile(".")
		if err != nil {
			logger.Errorf("dmgcore: no ROM given and no file selected: %v", err)
			os.Exit(1)
		}
		*romPath = picked
	}

	data, err := rom.Load(*romPath)
	if err != nil {
		logger.Errorf("dmgcore: failed to load ROM %q: %v", *romPath, err)
		os.Exit(1)
	}

	cart, err := cartridge.Load(data, logger)
	if err != nil {
		logger.Errorf("dmgcore: failed to parse cartridge: %v", err)
		os.Exit(1)
	}

	if *savePath == "" {
		*savePath = rom.SavePath(*romPath)
	}

	gb := gameboy.New(cart, logger)
	gb.SetPalette(palette.ByName(*paletteName))

	if err := gb.LoadSave(*savePath); err != nil {
		logger.Errorf("dmgcore: failed to load save file %q: %v", *savePath, err)
	}

	drv := display.GetDriver(*backend)
	if drv == nil {
		logger.Errorf("dmgcore: no display backend named %q installed", *backend)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		drv.Stop()
	}()

	if err := drv.Start(gb); err != nil {
		logger.Errorf("dmgcore: display backend exited with error: %v", err)
	}

	if err := gb.WriteSave(*savePath); err != nil {
		logger.Errorf("dmgcore: failed to write save file %q: %v", *savePath, err)
	}
}
