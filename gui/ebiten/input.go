package ebiten

import (
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jetsetilly/nora32/gui"
	"github.com/jetsetilly/nora32/logger"
	input "github.com/quasilyte/ebitengine-input"
)

const (
	ActionQuit input.Action = iota
	ActionToggleAudio
	ActionOpenROM
	ActionReset
	ActionOverlay
)

func keymap() input.Keymap {
	return input.Keymap{
		ActionQuit:        {input.KeyEscape},
		ActionToggleAudio: {input.KeyM, input.KeyGamepadBack},
		ActionOpenROM:     {input.KeyO},
		ActionReset:       {input.KeyR, input.KeyGamepadStart},
		ActionOverlay:     {input.KeyTab},
	}
}

// inputKeys returns ebiten.Termination if the quit action has been pressed
func (eg *guiEbiten) inputKeys() error {
	eg.inputSystem.Update()

	if eg.inputHandler.ActionIsJustPressed(ActionQuit) {
		return ebiten.Termination
	}

	if eg.inputHandler.ActionIsJustPressed(ActionToggleAudio) {
		eg.g.PushInput(gui.Input{Action: gui.ToggleAudio})
	}

	if eg.inputHandler.ActionIsJustPressed(ActionReset) {
		eg.g.PushInput(gui.Input{Action: gui.Reset})
	}

	if eg.inputHandler.ActionIsJustPressed(ActionOverlay) {
		eg.showOverlay = !eg.showOverlay
	}

	if eg.inputHandler.ActionIsJustPressed(ActionOpenROM) {
		filename, err := fileRequest(eg.lastROM)
		if err != nil {
			logger.Log(logger.Allow, "gui", err)
		} else if filename != "" {
			eg.g.PushInput(gui.Input{Action: gui.LoadROM, Data: gui.ROM{Filename: filename}})
		}
	}

	return nil
}

// dropped files are read from the fs.FS supplied by ebiten. only the first
// file is loaded
func (eg *guiEbiten) inputDragAndDrop() error {
	df := ebiten.DroppedFiles()
	if df == nil {
		return nil
	}

	entries, err := fs.ReadDir(df, ".")
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		d, err := fs.ReadFile(df, e.Name())
		if err != nil {
			return err
		}

		eg.g.PushInput(gui.Input{Action: gui.LoadROM, Data: gui.ROM{Filename: e.Name(), Data: d}})
		return nil
	}

	return nil
}
