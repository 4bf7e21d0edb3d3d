package cli

import (
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestSamePath(t *testing.T) {
	equal, _ := samePath("/x", "/x")
	test.That(t, equal, test.ShouldBeTrue)
	equal, _ = samePath("/x", "x")
	test.That(t, equal, test.ShouldBeFalse)
	equal, _ = samePath("/x/y/../z", "/x/z")
	test.That(t, equal, test.ShouldBeTrue)
}

func TestCheckNotInput(t *testing.T) {
	dir := t.TempDir()
	test.That(t, checkNotInput(filepath.Join(dir, "tracks.xml"), filepath.Join(dir, "tiepoints.xml")), test.ShouldBeNil)

	err := checkNotInput(filepath.Join(dir, ".", "tracks.xml"), "nav.xml", filepath.Join(dir, "tracks.xml"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "would overwrite")
}
