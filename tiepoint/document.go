// Package tiepoint reads tiepoint documents produced by bundle adjustment and consolidates their
// pairwise stereo observations into multi-observation tracks.
package tiepoint

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// Document is a tiepoint XML document. The root element name is not significant.
type Document struct {
	XMLName     xml.Name
	TiepointSet *TiepointSet `xml:"tiepoint_set"`
}

// TiepointSet holds the reference frame, image catalog and stereo ties of a document.
type TiepointSet struct {
	ReferenceFrame *ReferenceFrame `xml:"reference_frame"`
	Images         *Images         `xml:"images"`
	Tiepoints      []Tie           `xml:"tiepoints>tie"`
}

// ReferenceFrame names the frame the 3-D coordinates are expressed in.
type ReferenceFrame struct {
	Name *string `xml:"name,attr"`
}

// Images is the image catalog of a document.
type Images struct {
	Images []Image `xml:"image"`
}

// Image maps an image key to the unique id of the image.
type Image struct {
	Key      string `xml:"key,attr"`
	UniqueID string `xml:"unique_id,attr"`
}

// TrackRef names the track a tie belongs to.
type TrackRef struct {
	ID *string `xml:"id,attr"`
}

// Sample is a 2-D value given in sample/line order.
type Sample struct {
	Samp *string `xml:"samp,attr"`
	Line *string `xml:"line,attr"`
}

// XYZ is a 3-D coordinate.
type XYZ struct {
	X *string `xml:"x,attr"`
	Y *string `xml:"y,attr"`
	Z *string `xml:"z,attr"`
}

// Tie is one stereo correspondence between a left and a right image observation.
type Tie struct {
	LeftKey            *string   `xml:"left_key,attr"`
	RightKey           *string   `xml:"right_key,attr"`
	Track              *TrackRef `xml:"track"`
	Left               *Sample   `xml:"left"`
	Right              *Sample   `xml:"right"`
	LeftInitResidual   *Sample   `xml:"left_init_residual"`
	LeftFinalResidual  *Sample   `xml:"left_final_residual"`
	RightInitResidual  *Sample   `xml:"right_init_residual"`
	RightFinalResidual *Sample   `xml:"right_final_residual"`
	InitXYZ            *XYZ      `xml:"init_xyz"`
	FinalXYZ           *XYZ      `xml:"final_xyz"`
}

// ReadFile reads a tiepoint document from disk.
func ReadFile(path string) (*Document, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open tiepoint document %q", path)
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return Decode(f)
}

// Decode reads a tiepoint document.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse tiepoint XML")
	}
	if doc.TiepointSet == nil {
		return nil, NewMissingFieldError("tiepoint_set")
	}
	return doc, nil
}

// ReferenceFrame returns the name of the document's reference frame followed by suffix.
func (d *Document) ReferenceFrame(suffix string) (string, error) {
	if d.TiepointSet.ReferenceFrame == nil {
		return "", NewMissingFieldError("reference_frame")
	}
	if d.TiepointSet.ReferenceFrame.Name == nil {
		return "", NewMissingFieldError("reference_frame name")
	}
	return *d.TiepointSet.ReferenceFrame.Name + suffix, nil
}

// ImageIndex returns the document's image catalog. When a key is listed twice the first entry
// is used.
func (d *Document) ImageIndex() (ImageIndex, error) {
	if d.TiepointSet.Images == nil {
		return nil, NewMissingFieldError("images")
	}
	index := ImageIndex{}
	for _, image := range d.TiepointSet.Images.Images {
		key, err := parseKey("image key", &image.Key)
		if err != nil {
			return nil, err
		}
		if image.UniqueID == "" {
			return nil, NewMissingFieldError("image unique_id")
		}
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = image.UniqueID
	}
	return index, nil
}

// Ties returns the stereo ties of the document in document order.
func (d *Document) Ties() []Tie {
	return d.TiepointSet.Tiepoints
}

// ImageIndex resolves an image key to the unique id of the camera that took the image.
type ImageIndex map[int]string

// Resolve returns the camera id for key.
func (idx ImageIndex) Resolve(key int) (string, error) {
	id, ok := idx[key]
	if !ok {
		return "", &UnresolvedImageKeyError{Key: key}
	}
	return id, nil
}

func parseKey(field string, raw *string) (int, error) {
	if raw == nil {
		return 0, NewMissingFieldError(field)
	}
	key, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return 0, errors.Errorf("%s %q is not an integer", field, *raw)
	}
	return key, nil
}
