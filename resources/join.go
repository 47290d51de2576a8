package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Base returns the directory that resources are stored in. This is the
// portable directory if portable.txt is present, otherwise it depends on how
// the program was built.
func Base() (string, error) {
	if checkPortable() {
		return portablePath, nil
	}
	b, err := resourcePath()
	if err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}
	return b, nil
}

// JoinPath returns the path of a resource below the Base() directory. A path
// already rooted in the base directory is not prefixed a second time.
//
// Every directory leading to the resource is created. The resource itself is
// not touched.
func JoinPath(path ...string) (string, error) {
	b, err := Base()
	if err != nil {
		return "", err
	}

	p := filepath.Join(path...)
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}

	return p, nil
}
