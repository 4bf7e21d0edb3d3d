package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/nasa-ammos/vector-convert/testutils"
)

type testApp struct {
	out    bytes.Buffer
	errOut bytes.Buffer
}

func (a *testApp) run(args ...string) error {
	return NewApp(&a.out, &a.errOut).Run(append([]string{"jpl2vector"}, args...))
}

func TestConvertCommand(t *testing.T) {
	ds := testutils.WriteDataset(t)
	outDir := t.TempDir()

	app := &testApp{}
	err := app.run("convert",
		"-t", ds.Tiepoints,
		"-n", ds.Navigation,
		"-i", ds.Images,
		"-v", ds.Labels,
		"-o", outDir,
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, testutils.ListFiles(t, outDir), test.ShouldResemble, []string{"cameras.xml", "tracks.xml"})
	test.That(t, app.out.String(), test.ShouldContainSubstring, "Wrote 2 tracks (4 points) to "+filepath.Join(outDir, "tracks.xml"))
	test.That(t, app.out.String(), test.ShouldContainSubstring, "Wrote 2 cameras to "+filepath.Join(outDir, "cameras.xml"))
	test.That(t, app.errOut.String(), test.ShouldContainSubstring, "conversion finished")
	test.That(t, app.errOut.String(), test.ShouldNotContainSubstring, "resolved frame chain")
	test.That(t, app.errOut.String(), test.ShouldNotContainSubstring, "WARN")

	inspect := &testApp{}
	test.That(t, inspect.run("inspect", filepath.Join(outDir, "tracks.xml")), test.ShouldBeNil)
	test.That(t, inspect.out.String(), test.ShouldContainSubstring, "track document in SITE_FRAME")
	test.That(t, inspect.out.String(), test.ShouldContainSubstring, "T1")
	test.That(t, inspect.out.String(), test.ShouldContainSubstring, "2 TRACKS")

	inspect = &testApp{}
	test.That(t, inspect.run("inspect", filepath.Join(outDir, "cameras.xml")), test.ShouldBeNil)
	test.That(t, inspect.out.String(), test.ShouldContainSubstring, "camera document in SITE_FRAME")
	test.That(t, inspect.out.String(), test.ShouldContainSubstring, "CAMERA_FRAME > ROVER_FRAME > SITE_FRAME")
	test.That(t, inspect.out.String(), test.ShouldContainSubstring, testutils.DatasetLeftImage)
}

func TestConvertCommandDebug(t *testing.T) {
	ds := testutils.WriteDataset(t)
	outDir := t.TempDir()

	app := &testApp{}
	err := app.run("--debug", "convert",
		"--tiepoints", ds.Tiepoints,
		"--navigation", ds.Navigation,
		"--images", ds.Images,
		"--output-dir", outDir,
		"--tracks-file", "points.xml",
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, testutils.ListFiles(t, outDir), test.ShouldResemble, []string{"cameras.xml", "points.xml"})
	test.That(t, app.errOut.String(), test.ShouldContainSubstring, "no label directory given")
	test.That(t, app.errOut.String(), test.ShouldContainSubstring, "found image files")
}

func TestConvertCommandConfigFile(t *testing.T) {
	ds := testutils.WriteDataset(t)
	outDir := t.TempDir()

	cfgPath := filepath.Join(ds.Dir, "convert.json")
	data, err := json.Marshal(map[string]string{
		"tiepoints":  ds.Tiepoints,
		"navigation": ds.Navigation,
		"images":     filepath.Join(ds.Dir, "elsewhere"),
		"labels":     ds.Labels,
	})
	test.That(t, err, test.ShouldBeNil)
	testutils.WriteFile(t, cfgPath, data)

	// flags win over the file
	app := &testApp{}
	err = app.run("convert", "--config", cfgPath, "-i", ds.Images, "-o", outDir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, testutils.ListFiles(t, outDir), test.ShouldHaveLength, 2)
}

func TestConvertCommandErrors(t *testing.T) {
	ds := testutils.WriteDataset(t)
	outDir := t.TempDir()

	app := &testApp{}
	err := app.run("convert", "-t", ds.Tiepoints, "-n", ds.Navigation, "-o", outDir)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"images" is required`)

	err = app.run("convert", "-t", ds.Tiepoints, "-n", ds.Navigation, "-i", ds.Images, "-o", outDir, "extra")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unexpected arguments")

	err = app.run("convert", "-t", ds.Tiepoints, "-n", ds.Navigation, "-i", ds.Images,
		"-o", ds.Dir, "--tracks-file", filepath.Base(ds.Tiepoints))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "would overwrite")

	badNavigation := filepath.Join(ds.Dir, "bad_navigation.xml")
	testutils.WriteFile(t, badNavigation, []byte(`<navigation><solution><image unique_id="`+
		testutils.DatasetLeftImageID+`"/></solution></navigation>`))
	err = app.run("convert", "-t", ds.Tiepoints, "-n", badNavigation, "-i", ds.Images, "-o", outDir)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "navigation XML")
	test.That(t, testutils.ListFiles(t, outDir), test.ShouldBeEmpty)

	err = app.run("convert", "--config", filepath.Join(ds.Dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInspectErrors(t *testing.T) {
	app := &testApp{}
	err := app.run("inspect")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "exactly one")

	ds := testutils.WriteDataset(t)
	err = app.run("inspect", ds.Tiepoints)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestVersionCommand(t *testing.T) {
	app := &testApp{}
	test.That(t, app.run("version"), test.ShouldBeNil)
	test.That(t, app.out.String(), test.ShouldContainSubstring, "Version (dev)")
	test.That(t, app.out.String(), test.ShouldContainSubstring, "VECTOR=1.0")
}
