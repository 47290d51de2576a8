package ebiten

import (
	"errors"
	"path/filepath"

	"github.com/jetsetilly/nora32/cartridge"
	"github.com/sqweek/dialog"
)

// fileRequest opens a file dialog in the directory of the most recently
// loaded cartridge. An empty filename is returned if the dialog is
// cancelled.
func fileRequest(lastSelectedROM string) (string, error) {
	dlg := dialog.File()
	dlg = dlg.Title("Select NR32 cartridge")
	dlg = dlg.Filter("NR32 Files", cartridge.Extensions...)
	dlg = dlg.Filter("All Files")
	if lastSelectedROM != "" {
		dlg = dlg.SetStartDir(filepath.Dir(lastSelectedROM))
	}
	filename, err := dlg.Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

func showError(msg string) {
	dialog.Message("%s", msg).Title("Error").Error()
}
