package version_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/nora32/version"
	"github.com/jetsetilly/nora32/test"
)

func TestTitle(t *testing.T) {
	title := version.Title()
	test.ExpectSuccess(t, strings.HasPrefix(title, version.ApplicationName))

	ver, _, _ := version.Version()
	test.ExpectInequality(t, ver, "")
	test.ExpectSuccess(t, strings.Contains(version.Banner(), ver))
}
