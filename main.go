package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	emubridge "github.com/colcross/tguiemu/bridge/ebiten"
	"github.com/colcross/tguiemu/cli"
	"github.com/colcross/tguiemu/emu"
)

func main() {
	tracePath := flag.String("trace", "", "path to register trace file (built-in demo if omitted)")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc, or pal")
	flag.Parse()

	var traceData []byte
	if *tracePath != "" {
		var err error
		traceData, err = os.ReadFile(*tracePath)
		if err != nil {
			log.Fatalf("Failed to load trace: %v", err)
		}
	}

	// Determine region
	var region emu.Region
	switch strings.ToLower(*regionFlag) {
	case "auto":
		region = emu.DetectRegion(traceData)
	case "ntsc":
		region = emu.RegionNTSC
	case "pal":
		region = emu.RegionPAL
	default:
		log.Fatalf("Invalid region: %s (use auto, ntsc, or pal)", *regionFlag)
	}

	e, err := emubridge.NewEmulator(traceData, region)
	if err != nil {
		log.Fatalf("Failed to initialize emulator: %v", err)
	}

	ebiten.SetWindowSize(emu.ScreenWidth, emu.DefaultScreenHeight)
	ebiten.SetWindowTitle(emu.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(320, 240, -1, -1)
	ebiten.SetTPS(60)

	runner := cli.NewRunner(e)
	defer runner.Close()
	defer e.Close()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
