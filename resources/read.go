package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Read returns the contents of the named resource with surrounding white
// space removed. A resource that does not exist is not an error and an empty
// string is returned.
func Read(name string) (string, error) {
	pth, err := JoinPath(name)
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(pth)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("resources: %w", err)
	}

	return strings.TrimSpace(string(b)), nil
}

// Write replaces the contents of the named resource. The content is written
// to a temporary file alongside the resource and renamed into place. If the
// write fails the previous contents remain.
func Write(name string, content string) error {
	pth, err := JoinPath(name)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(pth), filepath.Base(pth)+".*")
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	tmp := f.Name()

	_, err = f.WriteString(content + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, pth)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("resources: %w", err)
	}

	return nil
}
