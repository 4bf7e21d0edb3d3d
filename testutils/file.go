package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// TempDir creates a temporary directory under dir and fails the test if it cannot. The
// directory is removed when the test finishes.
func TempDir(tb testing.TB, dir, pattern string) string {
	tb.Helper()
	dir, err := os.MkdirTemp(dir, pattern)
	test.That(tb, err, test.ShouldBeNil)
	tb.Cleanup(func() {
		test.That(tb, os.RemoveAll(dir), test.ShouldBeNil)
	})
	return dir
}

// WriteFile writes data to path, creating any missing parent directories.
func WriteFile(tb testing.TB, path string, data []byte) {
	tb.Helper()
	test.That(tb, os.MkdirAll(filepath.Dir(path), 0o750), test.ShouldBeNil)
	test.That(tb, os.WriteFile(path, data, 0o600), test.ShouldBeNil)
}

// ListFiles returns the names of the regular files directly inside dir.
func ListFiles(tb testing.TB, dir string) []string {
	tb.Helper()
	entries, err := os.ReadDir(dir)
	test.That(tb, err, test.ShouldBeNil)
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names
}
