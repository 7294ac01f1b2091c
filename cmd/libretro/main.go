package main

import (
	"github.com/colcross/tguiemu/adapter"
	libretro "github.com/user-none/eblitui/libretro"
)

func init() {
	// The card has no input devices, so no retropad mappings are
	// registered.
	libretro.RegisterFactory(&adapter.Factory{}, nil)
}

func main() {}
