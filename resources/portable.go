package resources

import (
	"os"
	"path/filepath"
)

const portableDir = "nora32_UserData"

// the portable path is set once during package initialisation. it is empty
// if the path to the executable could not be determined
var portablePath string

func init() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	portablePath = filepath.Join(filepath.Dir(exe), portableDir)
}

// checkPortable returns true if an empty portable.txt file is in the same
// directory as the program binary
func checkPortable() bool {
	if portablePath == "" {
		return false
	}
	st, err := os.Stat(filepath.Join(filepath.Dir(portablePath), "portable.txt"))
	if err != nil {
		return false
	}
	return st.Mode().IsRegular() && st.Size() == 0
}
