// Package gui is the communication layer between the emulation and the
// graphical user interface. The GUI type is shared by both sides and is
// safe for concurrent use.
//
// The implementation of the graphical interface is in the gui/ebiten
// package.
package gui

import (
	"github.com/jetsetilly/nora32/scheduler"
)

// GUI is the set of channels and the frame exchange connecting the
// emulation to the GUI. All channel sends by either side are non-blocking.
type GUI struct {
	// user input from the GUI to the emulation
	UserInput chan Input

	// the most recent scheduler statistics for the overlay
	Stats chan scheduler.Stats

	// messages that should be shown to the user in a dialog
	ShowError chan string

	// draw commands from the emulation. the Frames field implements the
	// draw.Renderer interface
	Frames *Exchange

	// the filename of the most recently loaded cartridge. used as the starting
	// directory of the file dialog
	LastROM chan string
}

// NewGUI is the preferred method of initialisation for the GUI type.
func NewGUI() *GUI {
	return &GUI{
		UserInput: make(chan Input, 8),
		Stats:     make(chan scheduler.Stats, 1),
		ShowError: make(chan string, 1),
		Frames:    NewExchange(),
		LastROM:   make(chan string, 1),
	}
}

// PushStats replaces any unread statistics with the new value.
func (g *GUI) PushStats(st scheduler.Stats) {
	select {
	case <-g.Stats:
	default:
	}
	select {
	case g.Stats <- st:
	default:
	}
}

// PushError sends a message to be shown to the user. The message is dropped
// if an earlier message has not yet been shown.
func (g *GUI) PushError(msg string) {
	select {
	case g.ShowError <- msg:
	default:
	}
}

// PushInput sends user input to the emulation. Returns false if the input
// could not be queued.
func (g *GUI) PushInput(inp Input) bool {
	select {
	case g.UserInput <- inp:
		return true
	default:
		return false
	}
}

// PushLastROM replaces any unread filename with the new value.
func (g *GUI) PushLastROM(filename string) {
	select {
	case <-g.LastROM:
	default:
	}
	select {
	case g.LastROM <- filename:
	default:
	}
}
