// Command tgtrace writes the built-in demonstration register trace to
// a file for use with the player frontends.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/colcross/tguiemu/emu"
)

func main() {
	out := flag.String("o", "demo.tgt", "output trace file")
	flag.Parse()

	if err := os.WriteFile(*out, emu.DemoTrace(), 0644); err != nil {
		log.Fatal(err)
	}
}
