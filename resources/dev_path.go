//go:build !release
// +build !release

package resources

const resourceDir = ".nora32"

func resourcePath() (string, error) {
	return resourceDir, nil
}
