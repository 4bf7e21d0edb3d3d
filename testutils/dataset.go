package testutils

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// LabelSize is the LBLSIZE written by LabelFile.
const LabelSize = 2048

// Identifiers used by the dataset written by WriteDataset.
const (
	DatasetReferenceFrame = "SITE_FRAME"
	DatasetLeftImageID    = "NLF_0100_0671234567_ECM_A01"
	DatasetRightImageID   = "NRF_0100_0671234567_ECM_A02"
	DatasetLeftImage      = DatasetLeftImageID + ".PNG"
	DatasetRightImage     = DatasetRightImageID + ".png"
)

// LabelFile returns the bytes of a label file whose header holds the given keyword text,
// followed by a few bytes of image data.
func LabelFile(header string) []byte {
	text := fmt.Sprintf("LBLSIZE=%d  %s", LabelSize, header)
	if len(text) > LabelSize {
		panic("label header too long")
	}
	data := []byte(text + strings.Repeat(" ", LabelSize-len(text)))
	// image data that would tokenize as keywords if it were read as header
	return append(data, []byte("PROPERTY='IMAGE_DATA' COORDINATE_SYSTEM_NAME='BOGUS'\x00\x01\x02\xff")...)
}

// CoordinateSystemGroup returns the header text of a property group declaring a coordinate
// system. rotation is given scalar first.
func CoordinateSystemGroup(property, name, reference, offset, rotation string) string {
	return fmt.Sprintf(
		"PROPERTY='%s' COORDINATE_SYSTEM_NAME='%s' REFERENCE_COORD_SYSTEM_NAME='%s' "+
			"ORIGIN_OFFSET_VECTOR=%s ORIGIN_ROTATION_QUATERNION=%s ",
		property, name, reference, offset, rotation,
	)
}

// DatasetLabelHeader is the label header written for both dataset images. CAMERA_FRAME sits on
// ROVER_FRAME which sits on SITE_FRAME.
var DatasetLabelHeader = "LBLTYPE='VICAR2' FORMAT='BYTE' NL=1024 NS=1024 " +
	"TASK='LABEL' USER='ops' DAT_TIM='2021-03-04' " +
	"PROPERTY='IDENTIFICATION' MISSION_NAME='MARS 2020' " +
	CoordinateSystemGroup("ROVER_COORDINATE_SYSTEM", "ROVER_FRAME", DatasetReferenceFrame,
		"(1.5,-2.25,0.125)", "(0.7071067811865476,0.0,0.0,0.7071067811865476)") +
	CoordinateSystemGroup("CAMERA_COORDINATE_SYSTEM", "CAMERA_FRAME", "ROVER_FRAME",
		"(0.5,0.0,-1.0)", "(1.0,0.0,0.0,0.0)") +
	"TASK='MARSCAHV' USER='nav' "

// DatasetTiepoints is a tiepoint document over the two dataset images. Track T1 is observed
// twice from the same pair of images.
var DatasetTiepoints = `<?xml version="1.0" encoding="UTF-8"?>
<tiepoint_file>
    <tiepoint_set>
        <reference_frame name="SITE" index1="1"/>
        <images>
            <image key="1" unique_id="` + DatasetLeftImageID + `"/>
            <image key="2" unique_id="` + DatasetRightImageID + `"/>
        </images>
        <tiepoints>
            <tie left_key="1" right_key="2" type="0">
                <track id="T1"/>
                <left samp="512.25" line="100.5"/>
                <right samp="498.125" line="101.0"/>
                <left_init_residual samp="0.30" line="0.40"/>
                <left_final_residual samp="0.03" line="0.04"/>
                <right_init_residual samp="-1.0" line="0.0"/>
                <right_final_residual samp="0.0" line="-0.5"/>
                <init_xyz x="10.000001" y="-2.5" z="0.75"/>
                <final_xyz x="10.0" y="-2.50" z="0.7500"/>
            </tie>
            <tie left_key="2" right_key="1" type="0">
                <track id="T1"/>
                <left samp="498.125" line="101.0"/>
                <right samp="512.25" line="100.5"/>
                <left_init_residual samp="-1.0" line="0.0"/>
                <left_final_residual samp="0.0" line="-0.5"/>
                <right_init_residual samp="0.30" line="0.40"/>
                <right_final_residual samp="0.03" line="0.04"/>
            </tie>
            <tie left_key="1" right_key="2" type="0">
                <track id="T2"/>
                <left samp="12" line="13"/>
                <right samp="14" line="15"/>
                <left_init_residual samp="1" line="1"/>
                <left_final_residual samp="0.1" line="0.1"/>
                <right_init_residual samp="2" line="2"/>
                <right_final_residual samp="0.2" line="0.2"/>
                <init_xyz x="1" y="2" z="3"/>
                <final_xyz x="1.1" y="2.1" z="3.1"/>
            </tie>
        </tiepoints>
    </tiepoint_set>
</tiepoint_file>
`

// NavigationSolution returns the navigation XML of one solution whose original model is in
// initialFrame and whose adjusted model is in finalFrame.
func NavigationSolution(imageID, initialFrame, finalFrame string) string {
	model := func(frame, scale string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "<reference_frame name=%q/>\n", frame)
		for i, id := range []string{"C", "A", "H", "V", "O", "R", "E"} {
			fmt.Fprintf(&b, "<parameter id=%q value1=\"%d.%s\" value2=\"-%d.%s\" value3=\"0.%s%d\"/>\n",
				id, i, scale, i, scale, scale, i)
		}
		fmt.Fprintf(&b, "<parameter id=\"T\" value=\"2\"/>\n<parameter id=\"P\" value=\"0.%s\"/>\n", scale)
		return b.String()
	}
	return fmt.Sprintf(`<solution>
<image unique_id=%q>
<original_camera_model>
%s</original_camera_model>
</image>
<camera_model>
%s</camera_model>
</solution>
`, imageID, model(initialFrame, "5"), model(finalFrame, "25"))
}

// NavigationDocument wraps solutions in a navigation document.
func NavigationDocument(solutions ...string) string {
	return "<?xml version=\"1.0\"?>\n<navigation_file>\n" + strings.Join(solutions, "") + "</navigation_file>\n"
}

// Dataset is a complete set of conversion inputs written to disk.
type Dataset struct {
	Dir        string
	Tiepoints  string
	Navigation string
	Images     string
	Labels     string
}

// WriteDataset writes two images with labels, a tiepoint document and a navigation document
// into a fresh temporary directory.
func WriteDataset(tb testing.TB) *Dataset {
	tb.Helper()
	dir := tb.TempDir()
	ds := &Dataset{
		Dir:        dir,
		Tiepoints:  filepath.Join(dir, "tiepoints.xml"),
		Navigation: filepath.Join(dir, "navigation.xml"),
		Images:     filepath.Join(dir, "images"),
		Labels:     filepath.Join(dir, "labels"),
	}

	WriteFile(tb, ds.Tiepoints, []byte(DatasetTiepoints))
	WriteFile(tb, ds.Navigation, []byte(NavigationDocument(
		NavigationSolution(DatasetLeftImageID, "CAMERA_FRAME", "ROVER_FRAME"),
		NavigationSolution(DatasetRightImageID, "CAMERA_FRAME", DatasetReferenceFrame),
	)))

	png := []byte("\x89PNG\r\n\x1a\n")
	WriteFile(tb, filepath.Join(ds.Images, "sol0100", DatasetLeftImage), png)
	WriteFile(tb, filepath.Join(ds.Images, "sol0100", DatasetRightImage), png)
	WriteFile(tb, filepath.Join(ds.Images, "sol0100", DatasetLeftImageID+".jpg"), png)

	label := LabelFile(DatasetLabelHeader)
	WriteFile(tb, filepath.Join(ds.Labels, DatasetLeftImageID+".VIC"), label)
	WriteFile(tb, filepath.Join(ds.Labels, "nested", DatasetRightImageID+".vicb"), label)
	WriteFile(tb, filepath.Join(ds.Labels, "README.txt"), []byte("not a label"))
	return ds
}
