// Package ebiten is the graphical user interface of the emulator. It draws
// the frames received through the gui.Exchange and sends user input to the
// emulation. The Audio type is the real-time audio context used when a
// window is open.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jetsetilly/nora32/gui"
	"github.com/jetsetilly/nora32/logger"
	"github.com/jetsetilly/nora32/version"
	input "github.com/quasilyte/ebitengine-input"
)

var background = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

type guiEbiten struct {
	g    *gui.GUI
	geom windowGeometry

	endGui chan bool

	renderer *renderer
	frame    *gui.Frame

	overlay     *overlay
	showOverlay bool

	inputHandler *input.Handler
	inputSystem  input.System

	// filename of the most recently loaded cartridge. used by the file dialog
	lastROM string
}

func (eg *guiEbiten) Update() error {
	// deal with quit condition
	select {
	case <-eg.endGui:
		return ebiten.Termination
	default:
	}

	// handle user input
	err := eg.inputKeys()
	if err != nil {
		return err
	}

	// drag and drop of files is a special type of input
	err = eg.inputDragAndDrop()
	if err != nil {
		logger.Log(logger.Allow, "gui", err)
	}

	select {
	case msg := <-eg.g.ShowError:
		showError(msg)
	default:
	}

	select {
	case eg.lastROM = <-eg.g.LastROM:
	default:
	}

	select {
	case st := <-eg.g.Stats:
		eg.overlay.setStats(st)
	default:
	}

	// the frame remains valid until the next call to Latest()
	eg.frame, _ = eg.g.Frames.Latest()

	if eg.showOverlay {
		eg.overlay.ui.Update()
	}

	return nil
}

func (eg *guiEbiten) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	eg.renderer.draw(screen, eg.frame)

	if eg.showOverlay {
		eg.overlay.ui.Draw(screen)
	}

	eg.geom.x, eg.geom.y = ebiten.WindowPosition()
	eg.geom.w, eg.geom.h = ebiten.WindowSize()
}

func (eg *guiEbiten) Layout(width, height int) (int, int) {
	return screenWidth, screenHeight
}

// Launch opens the window and runs until the window is closed or until
// endGui is signalled.
func Launch(endGui chan bool, g *gui.GUI) error {
	ebiten.SetWindowTitle(version.Title())
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowPosition(10, 10)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	eg := &guiEbiten{
		endGui:      endGui,
		g:           g,
		renderer:    newRenderer(),
		overlay:     newOverlay(),
		showOverlay: true,
	}

	eg.inputSystem.Init(input.SystemConfig{
		DevicesEnabled: input.AnyDevice,
	})
	eg.inputHandler = eg.inputSystem.NewHandler(0, keymap())

	var err error

	eg.geom, err = onWindowOpen()
	if err != nil {
		logger.Log(logger.Allow, "gui", err)
	}

	defer func() {
		err := onWindowClose(eg.geom)
		if err != nil {
			logger.Log(logger.Allow, "gui", err)
		}
	}()

	return ebiten.RunGame(eg)
}
