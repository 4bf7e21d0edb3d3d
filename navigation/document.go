// Package navigation reads the camera-pose solutions a navigation run produced for each image.
package navigation

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// Document is a navigation XML document holding one solution per image.
type Document struct {
	XMLName   xml.Name
	Solutions []Solution `xml:"solution"`
}

// Solution pairs an image and its original camera model with the adjusted camera model.
type Solution struct {
	Image       *Image       `xml:"image"`
	CameraModel *CameraModel `xml:"camera_model"`
}

// Image identifies the image of a solution and carries the camera model it was taken with.
type Image struct {
	UniqueID            *string      `xml:"unique_id,attr"`
	OriginalCameraModel *CameraModel `xml:"original_camera_model"`
}

// CameraModel is a set of named camera model parameters expressed in a coordinate frame.
type CameraModel struct {
	ReferenceFrame *ReferenceFrame `xml:"reference_frame"`
	Parameters     []Parameter     `xml:"parameter"`
}

// ReferenceFrame names the coordinate frame of a camera model.
type ReferenceFrame struct {
	Name *string `xml:"name,attr"`
}

// Parameter is one camera model parameter. Vector parameters use Value1 to Value3, scalar
// parameters use Value.
type Parameter struct {
	ID     string  `xml:"id,attr"`
	Value  *string `xml:"value,attr"`
	Value1 *string `xml:"value1,attr"`
	Value2 *string `xml:"value2,attr"`
	Value3 *string `xml:"value3,attr"`
}

// ReadFile reads a navigation document from disk.
func ReadFile(path string) (*Document, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open navigation document %q", path)
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return Decode(f)
}

// Decode reads a navigation document.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse navigation XML")
	}
	return doc, nil
}

// ImageID returns the unique id of the solution's image.
func (s *Solution) ImageID() (string, error) {
	if s.Image == nil {
		return "", errors.New("failed to find <image> in navigation XML")
	}
	if s.Image.UniqueID == nil {
		return "", errors.New("failed to find unique_id on <image> in navigation XML")
	}
	return *s.Image.UniqueID, nil
}

// InitialModel returns the camera model the image was originally taken with.
func (s *Solution) InitialModel() (*CameraModel, error) {
	if s.Image == nil || s.Image.OriginalCameraModel == nil {
		return nil, errors.New("failed to find <original_camera_model> in navigation XML")
	}
	return s.Image.OriginalCameraModel, nil
}

// FinalModel returns the adjusted camera model.
func (s *Solution) FinalModel() (*CameraModel, error) {
	if s.CameraModel == nil {
		return nil, errors.New("failed to find <camera_model> in navigation XML")
	}
	return s.CameraModel, nil
}

// Frame returns the name of the coordinate frame the model is expressed in.
func (m *CameraModel) Frame() (string, error) {
	if m.ReferenceFrame == nil {
		return "", errors.New("failed to find <reference_frame> in navigation XML")
	}
	if m.ReferenceFrame.Name == nil {
		return "", errors.New("failed to find name on <reference_frame> in navigation XML")
	}
	return *m.ReferenceFrame.Name, nil
}

// Parameter returns the first parameter with the given id.
func (m *CameraModel) Parameter(id string) (*Parameter, bool) {
	for i := range m.Parameters {
		if m.Parameters[i].ID == id {
			return &m.Parameters[i], true
		}
	}
	return nil, false
}
