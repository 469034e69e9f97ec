package main

import (
	"flag"
	"os"

	"github.com/thelolagemann/gameboy/internal/gameboy"
	"github.com/thelolagemann/gameboy/pkg/display/sdl"
	"github.com/thelolagemann/gameboy/pkg/display/web"
	"github.com/thelolagemann/gameboy/pkg/log"
	"github.com/thelolagemann/gameboy/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "path to the ROM to load (a dialog opens when omitted)")
	bootFile := flag.String("boot", "", "path to a boot ROM image")
	scale := flag.Int("scale", 4, "window scale factor")
	serve := flag.String("serve", "", "serve to a browser on this address instead of opening a window")
	saveDir := flag.String("saves", ".", "directory for battery save files")
	logLevel := flag.String("log-level", "info", "log level (debug, info, error)")
	flag.Parse()

	logger := log.NewWithLevel(*logLevel)

	if *romFile == "" {
		chosen, err := utils.AskForFile("Open ROM", ".")
		if err != nil {
			logger.Errorf("no ROM selected: %v", err)
			os.Exit(1)
		}
		*romFile = chosen
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Errorf("loading ROM: %v", err)
		os.Exit(1)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if *bootFile != "" {
		bootROM, err := utils.LoadFile(*bootFile)
		if err != nil {
			logger.Errorf("loading boot ROM: %v", err)
			os.Exit(1)
		}
		opts = append(opts, gameboy.WithBootROM(bootROM))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if err := gb.LoadRAMFile(*saveDir); err != nil {
		logger.Errorf("%v", err)
	}

	if *serve != "" {
		server := web.NewServer(gb, 3, logger)
		if err := server.ListenAndServe(*serve); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		return
	}

	window, err := sdl.NewWindow(gb, *scale)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	defer window.Destroy()

	if err := window.Run(); err != nil {
		logger.Errorf("%v", err)
	}
	if err := gb.SaveRAM(*saveDir); err != nil {
		logger.Errorf("%v", err)
	}
}
