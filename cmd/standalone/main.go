//go:build !libretro && !ios

package main

import (
	"flag"
	"log"

	"github.com/colcross/tguiemu/adapter"
	"github.com/user-none/eblitui/standalone"
)

func main() {
	tracePath := flag.String("trace", "", "path to trace file (opens UI if not provided)")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc, or pal")
	flag.Parse()

	factory := &adapter.Factory{}

	if *tracePath != "" {
		if err := standalone.RunDirect(factory, *tracePath, *regionFlag, nil); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
