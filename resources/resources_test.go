package resources_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/nora32/resources"
	"github.com/jetsetilly/nora32/test"
)

func TestJoinPath(t *testing.T) {
	t.Chdir(t.TempDir())

	pth, err := resources.JoinPath("foo/bar", "baz")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".nora32/foo/bar/baz")

	pth, err = resources.JoinPath("foo", "bar", "baz")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".nora32/foo/bar/baz")

	pth, err = resources.JoinPath("foo/bar", "")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".nora32/foo/bar")

	pth, err = resources.JoinPath("", "baz")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".nora32/baz")

	pth, err = resources.JoinPath("", "")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".nora32")
}

func TestReadWrite(t *testing.T) {
	t.Chdir(t.TempDir())

	// reading a resource that doesn't exist is not an error
	s, err := resources.Read("window")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "")

	test.DemandSuccess(t, resources.Write("window", "10 20 640 480"))

	s, err = resources.Read("window")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "10 20 640 480")
}

func TestWriteReplaces(t *testing.T) {
	t.Chdir(t.TempDir())

	test.DemandSuccess(t, resources.Write("window", "10 20 640 480"))
	test.DemandSuccess(t, resources.Write("window", "0 0 320 240"))

	s, err := resources.Read("window")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "0 0 320 240")

	// no temporary files are left behind
	entries, err := os.ReadDir(".nora32")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 1)
	test.ExpectEquality(t, entries[0].Name(), "window")
}

func TestReadTrims(t *testing.T) {
	t.Chdir(t.TempDir())

	pth, err := resources.JoinPath("window")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.WriteFile(pth, []byte("  1 2 3 4\n\n"), 0600))

	s, err := resources.Read("window")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "1 2 3 4")
}

func TestBase(t *testing.T) {
	b, err := resources.Base()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, ".nora32")
}
