package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jetsetilly/nora32/emulation"
	"github.com/jetsetilly/nora32/gui"
	"github.com/jetsetilly/nora32/gui/ebiten"
)

func main() {
	env, err := emulation.ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("*** %s\n", err)
		os.Exit(2)
	}

	if env.Headless() {
		if _, err := emulation.Headless(env, os.Stdout); err != nil {
			fmt.Printf("*** %s\n", err)
			os.Exit(1)
		}
		return
	}

	var endGui chan bool
	var endEmulation chan bool
	var resultEmulation chan error

	// buffered channels. this means we don't have to worry about the gui closing
	// before the emulation and vice versa
	endGui = make(chan bool, 1)
	endEmulation = make(chan bool, 1)
	resultEmulation = make(chan error, 1)

	g := gui.NewGUI()
	actx := ebiten.NewAudio(env.SampleRate(), env.QuantumFrames())

	go func() {
		resultEmulation <- emulation.Launch(endEmulation, g, env, actx)
		endGui <- true
	}()

	// the gui must run on the main thread
	if err := ebiten.Launch(endGui, g); err != nil {
		fmt.Printf("*** %s\n", err)
	}
	endEmulation <- true

	if err := <-resultEmulation; err != nil {
		fmt.Printf("*** %s\n", err)
	}
}
