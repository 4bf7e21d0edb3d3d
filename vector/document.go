// Package vector models the VECTOR interchange format: a track document of consolidated
// tiepoint tracks and a camera document of CAHVORE camera models, both expressed in a shared
// reference frame. Every numeric value is carried as the decimal text it was read with.
package vector

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/nasa-ammos/vector-convert/utils"
)

// Version is the VECTOR format version written by this package.
const Version = "1.0"

// Document formats.
const (
	FormatTrack  = "track"
	FormatCamera = "camera"
)

// Document is the root of a VECTOR document. A track document holds Tracks and a camera
// document holds Cameras.
type Document struct {
	XMLName        xml.Name `xml:"vector"`
	Version        string   `xml:"version,attr"`
	Format         string   `xml:"format,attr"`
	ReferenceFrame string   `xml:"reference_frame,attr"`
	Tracks         []Track  `xml:"track"`
	Cameras        []Camera `xml:"camera"`
}

// XY is a 2-D value.
type XY struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

// XYZ is a 3-D value.
type XYZ struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

// XYZW is a quaternion with the scalar last.
type XYZW struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
	W string `xml:"w,attr"`
}

// Track is a 3-D point and the image observations it was triangulated from.
type Track struct {
	ID         string  `xml:"id,attr"`
	InitialXYZ XYZ     `xml:"initial_xyz"`
	FinalXYZ   XYZ     `xml:"final_xyz"`
	Points     []Point `xml:"points>point"`
}

// Point is one image observation of a track.
type Point struct {
	ID              string `xml:"id,attr"`
	CameraID        string `xml:"camera_id,attr"`
	Pixel           XY     `xml:"pixel"`
	InitialResidual XY     `xml:"initial_residual"`
	FinalResidual   XY     `xml:"final_residual"`
}

// Camera is a camera with its original and adjusted models.
type Camera struct {
	ID      string `xml:"id,attr"`
	Image   string `xml:"image,attr"`
	Model   string `xml:"model,attr"`
	Initial Pose   `xml:"initial"`
	Final   Pose   `xml:"final"`
}

// Pose is one camera model. Transform is the first hop of a nested chain linking
// ReferenceFrame to the document's reference frame.
type Pose struct {
	ReferenceFrame string      `xml:"reference_frame,attr,omitempty"`
	Transform      *Transform  `xml:"transform"`
	Parameters     []Parameter `xml:"parameter"`
}

// Transform is one hop of a chain. Next, when present, is the hop from ReferenceFrame onwards.
type Transform struct {
	ReferenceFrame string     `xml:"reference_frame,attr"`
	Offset         XYZ        `xml:"offset"`
	Rotation       XYZW       `xml:"rotation"`
	Next           *Transform `xml:"transform"`
}

// Parameter is a camera model parameter. Vector parameters set X, Y and Z; scalar parameters
// set V.
type Parameter struct {
	ID string  `xml:"id,attr"`
	X  *string `xml:"x,attr"`
	Y  *string `xml:"y,attr"`
	Z  *string `xml:"z,attr"`
	V  *string `xml:"v,attr"`
}

// Encode writes doc as indented XML with an XML declaration.
func Encode(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrapf(err, "failed to encode %s document", doc.Format)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal returns the encoded form of doc.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes doc and replaces path with it. path is left untouched on failure.
func WriteFile(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, data, 0o644)
}

// Decode reads a VECTOR document.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse VECTOR XML")
	}
	if doc.Format != FormatTrack && doc.Format != FormatCamera {
		return nil, errors.Errorf("unknown VECTOR format %q", doc.Format)
	}
	return doc, nil
}

// ReadFile reads a VECTOR document from disk.
func ReadFile(path string) (*Document, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open VECTOR document %q", path)
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return Decode(f)
}
