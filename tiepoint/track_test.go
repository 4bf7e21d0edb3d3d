package tiepoint

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

const tieFmt = `<tie left_key="%d" right_key="%d">
	<track id="%s"/>
	<left samp="%d.5" line="1.0"/>
	<right samp="%d.5" line="2.0"/>
	<left_init_residual samp="0.3" line="0.4"/>
	<left_final_residual samp="0.03" line="0.04"/>
	<right_init_residual samp="-1" line="0"/>
	<right_final_residual samp="0" line="-0.5"/>
	<init_xyz x="1.25" y="2.50" z="3.75"/>
	<final_xyz x="1.2500001" y="2.5" z="3.7"/>
</tie>`

func tie(track string, left, right int) string {
	return fmt.Sprintf(tieFmt, left, right, track, left, right)
}

func document(ties ...string) string {
	return `<?xml version="1.0"?>
<data>
	<tiepoint_set>
		<reference_frame name="SITE"/>
		<images>
			<image key="5" unique_id="NLF_0100_CAM5"/>
			<image key="9" unique_id="NRF_0100_CAM9"/>
			<image key="12" unique_id="NLF_0101_CAM12"/>
			<image key="12" unique_id="DUPLICATE"/>
		</images>
		<tiepoints>
` + strings.Join(ties, "\n") + `
		</tiepoints>
	</tiepoint_set>
</data>`
}

func build(t *testing.T, xmlDoc string) (*Tracks, *Sequence, error) {
	t.Helper()
	doc, err := Decode(strings.NewReader(xmlDoc))
	test.That(t, err, test.ShouldBeNil)
	index, err := doc.ImageIndex()
	test.That(t, err, test.ShouldBeNil)
	seq := NewSequence()
	tracks, err := BuildTracks(doc.Ties(), index, seq)
	return tracks, seq, err
}

func TestDocument(t *testing.T) {
	doc, err := Decode(strings.NewReader(document(tie("T1", 5, 9))))
	test.That(t, err, test.ShouldBeNil)

	frame, err := doc.ReferenceFrame("_FRAME")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frame, test.ShouldEqual, "SITE_FRAME")

	index, err := doc.ImageIndex()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, index, test.ShouldHaveLength, 3)
	id, err := index.Resolve(12)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, id, test.ShouldEqual, "NLF_0101_CAM12")

	_, err = index.Resolve(77)
	var unresolved *UnresolvedImageKeyError
	test.That(t, errors.As(err, &unresolved), test.ShouldBeTrue)
	test.That(t, unresolved.Key, test.ShouldEqual, 77)

	test.That(t, doc.Ties(), test.ShouldHaveLength, 1)
}

func TestDocumentMissingSections(t *testing.T) {
	_, err := Decode(strings.NewReader(`<data></data>`))
	test.That(t, err, test.ShouldBeError, NewMissingFieldError("tiepoint_set"))

	_, err = Decode(strings.NewReader(`<data><tiepoint_set`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to parse tiepoint XML")

	doc, err := Decode(strings.NewReader(`<data><tiepoint_set><reference_frame/></tiepoint_set></data>`))
	test.That(t, err, test.ShouldBeNil)
	_, err = doc.ReferenceFrame("_FRAME")
	test.That(t, err, test.ShouldBeError, NewMissingFieldError("reference_frame name"))
	_, err = doc.ImageIndex()
	test.That(t, err, test.ShouldBeError, NewMissingFieldError("images"))

	doc, err = Decode(strings.NewReader(`<data><tiepoint_set><images><image key="one" unique_id="X"/></images></tiepoint_set></data>`))
	test.That(t, err, test.ShouldBeNil)
	_, err = doc.ReferenceFrame("_FRAME")
	test.That(t, err, test.ShouldBeError, NewMissingFieldError("reference_frame"))
	_, err = doc.ImageIndex()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `image key "one" is not an integer`)
}

func TestBuildTracksSharedKey(t *testing.T) {
	tracks, seq, err := build(t, document(tie("T1", 5, 9), tie("T1", 5, 12)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks.Len(), test.ShouldEqual, 1)

	track, ok := tracks.Get("T1")
	test.That(t, ok, test.ShouldBeTrue)
	keys := []int{}
	for _, o := range track.Observations {
		keys = append(keys, o.Key)
	}
	test.That(t, keys, test.ShouldResemble, []int{5, 9, 12})
	test.That(t, seq.Count(), test.ShouldEqual, 3)

	want := &Track{
		ID:         "T1",
		InitialXYZ: Vector3{X: "1.25", Y: "2.50", Z: "3.75"},
		FinalXYZ:   Vector3{X: "1.2500001", Y: "2.5", Z: "3.7"},
		Observations: []*Observation{
			{
				ID: 0, Key: 5, CameraID: "NLF_0100_CAM5",
				Pixel:           Vector2{X: "5.5", Y: "1.0"},
				InitialResidual: Vector2{X: "0.3", Y: "0.4"},
				FinalResidual:   Vector2{X: "0.03", Y: "0.04"},
			},
			{
				ID: 1, Key: 9, CameraID: "NRF_0100_CAM9",
				Pixel:           Vector2{X: "9.5", Y: "2.0"},
				InitialResidual: Vector2{X: "-1", Y: "0"},
				FinalResidual:   Vector2{X: "0", Y: "-0.5"},
			},
			{
				ID: 2, Key: 12, CameraID: "NLF_0101_CAM12",
				Pixel:           Vector2{X: "12.5", Y: "2.0"},
				InitialResidual: Vector2{X: "-1", Y: "0"},
				FinalResidual:   Vector2{X: "0", Y: "-0.5"},
			},
		},
	}
	test.That(t, cmp.Diff(want, track), test.ShouldBeEmpty)
}

func TestBuildTracksDedup(t *testing.T) {
	// the same pair repeated, reversed and a self pair all collapse onto known keys
	tracks, seq, err := build(t, document(
		tie("T1", 5, 9),
		tie("T1", 5, 9),
		tie("T1", 9, 5),
		tie("T2", 12, 12),
	))
	test.That(t, err, test.ShouldBeNil)
	t1, _ := tracks.Get("T1")
	test.That(t, t1.Observations, test.ShouldHaveLength, 2)
	t2, _ := tracks.Get("T2")
	test.That(t, t2.Observations, test.ShouldHaveLength, 1)
	test.That(t, t2.Observations[0].ID, test.ShouldEqual, 2)
	test.That(t, seq.Count(), test.ShouldEqual, 3)
	test.That(t, tracks.Observations(), test.ShouldEqual, 3)
}

func TestBuildTracksOrderAndIDs(t *testing.T) {
	xmlDoc := document(
		tie("B", 5, 9),
		tie("A", 9, 12),
		tie("B", 12, 9),
		tie("7", 5, 12),
		tie("A", 5, 12),
	)
	tracks, seq, err := build(t, xmlDoc)
	test.That(t, err, test.ShouldBeNil)

	ids := []string{}
	for _, track := range tracks.All() {
		ids = append(ids, track.ID)
	}
	test.That(t, ids, test.ShouldResemble, []string{"B", "A", "7"})

	// every id from 0 to N-1 exactly once, in traversal order
	points := map[int]bool{}
	for _, track := range tracks.All() {
		for _, o := range track.Observations {
			test.That(t, points[o.ID], test.ShouldBeFalse)
			points[o.ID] = true
		}
	}
	test.That(t, seq.Count(), test.ShouldEqual, 8)
	test.That(t, len(points), test.ShouldEqual, seq.Count())
	for i := 0; i < seq.Count(); i++ {
		test.That(t, points[i], test.ShouldBeTrue)
	}
	b, _ := tracks.Get("B")
	test.That(t, b.Observations[2].ID, test.ShouldEqual, 4)
	a, _ := tracks.Get("A")
	test.That(t, a.Observations[2].ID, test.ShouldEqual, 7)

	again, _, err := build(t, xmlDoc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cmp.Diff(tracks.All(), again.All()), test.ShouldBeEmpty)
}

func TestBuildTracksMissingFields(t *testing.T) {
	for _, tc := range []struct {
		remove string
		field  string
	}{
		{`left_key="5" `, "left_key"},
		{` right_key="9"`, "right_key"},
		{`<track id="T1"/>`, "track"},
		{`<left samp="5.5" line="1.0"/>`, "left"},
		{`<right_final_residual samp="0" line="-0.5"/>`, "right_final_residual"},
		{`<left_init_residual samp="0.3" line="0.4"/>`, "left_init_residual"},
		{`<init_xyz x="1.25" y="2.50" z="3.75"/>`, "init_xyz"},
		{`<final_xyz x="1.2500001" y="2.5" z="3.7"/>`, "final_xyz"},
		{` line="2.0"`, "right line"},
		{` z="3.7"`, "final_xyz z"},
	} {
		t.Run(tc.field, func(t *testing.T) {
			broken := strings.Replace(tie("T1", 5, 9), tc.remove, "", 1)
			_, _, err := build(t, document(broken))
			var missing *MissingFieldError
			test.That(t, errors.As(err, &missing), test.ShouldBeTrue)
			test.That(t, missing.Field, test.ShouldEqual, tc.field)
		})
	}
}

func TestBuildTracksLaterTieFields(t *testing.T) {
	// a known track only needs the fields of the sides it contributes
	known := strings.Replace(tie("T1", 5, 9), `<init_xyz x="1.25" y="2.50" z="3.75"/>`, "", 1)
	known = strings.Replace(known, `<left samp="5.5" line="1.0"/>`, "", 1)
	tracks, _, err := build(t, document(tie("T1", 5, 9), known))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks.Observations(), test.ShouldEqual, 2)

	// but a new side must be complete
	broken := strings.Replace(tie("T1", 12, 9), `<left samp="12.5" line="1.0"/>`, "", 1)
	_, _, err = build(t, document(tie("T1", 5, 9), broken))
	test.That(t, err, test.ShouldBeError, NewMissingFieldError("left"))
}

func TestBuildTracksUnresolvedKey(t *testing.T) {
	_, _, err := build(t, document(tie("T1", 5, 9), tie("T1", 5, 40)))
	test.That(t, err, test.ShouldNotBeNil)
	var unresolved *UnresolvedImageKeyError
	test.That(t, errors.As(err, &unresolved), test.ShouldBeTrue)
	test.That(t, unresolved.Key, test.ShouldEqual, 40)

	_, _, err = build(t, document(strings.Replace(tie("T1", 5, 9), `left_key="5"`, `left_key="five"`, 1)))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `left_key "five" is not an integer`)
}

func TestResiduals(t *testing.T) {
	r, err := NewResidual(Vector2{X: "0.3", Y: "0.4"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Length, test.ShouldAlmostEqual, 0.5)
	test.That(t, r.Angle, test.ShouldAlmostEqual, math.Atan2(0.4, 0.3)*180/math.Pi)

	r, err = NewResidual(Vector2{X: "0", Y: "-0.5"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Angle, test.ShouldAlmostEqual, 270)

	_, err = NewResidual(Vector2{X: "x", Y: "0"})
	test.That(t, err, test.ShouldNotBeNil)

	tracks, _, err := build(t, document(tie("T1", 5, 9)))
	test.That(t, err, test.ShouldBeNil)
	t1, _ := tracks.Get("T1")
	stats, err := SummarizeResiduals(t1.Observations)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stats.Count, test.ShouldEqual, 2)
	test.That(t, stats.InitialMean, test.ShouldAlmostEqual, 0.75)
	test.That(t, stats.FinalMean, test.ShouldAlmostEqual, 0.275)
	test.That(t, stats.FinalMaxLength, test.ShouldAlmostEqual, 0.5)
	test.That(t, stats.ImprovedFraction, test.ShouldAlmostEqual, 1.0)

	empty, err := SummarizeResiduals(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, empty.Count, test.ShouldEqual, 0)
}
