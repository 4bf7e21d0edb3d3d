package utils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/nasa-ammos/vector-convert/testutils"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracks.xml")

	test.That(t, WriteFileAtomic(path, []byte("first"), 0o600), test.ShouldBeNil)
	test.That(t, WriteFileAtomic(path, []byte("second"), 0o644), test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, "second")
	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Mode().Perm(), test.ShouldEqual, os.FileMode(0o644))

	// no temporary files are left behind
	test.That(t, testutils.ListFiles(t, dir), test.ShouldResemble, []string{"tracks.xml"})

	err = WriteFileAtomic(filepath.Join(dir, "missing", "tracks.xml"), []byte("x"), 0o644)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "temporary file")
}

func TestRemoveFileNoError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cameras.xml")
	testutils.WriteFile(t, path, []byte("x"))

	RemoveFileNoError(path)
	_, err := os.Stat(path)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)

	RemoveFileNoError(path)
}
