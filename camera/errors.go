package camera

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoMatchingImage is returned when no image file matches a solution's image id.
var ErrNoMatchingImage = errors.New("no matching image")

// NewNoMatchingImageError returns an error wrapping ErrNoMatchingImage that names the image id.
func NewNoMatchingImageError(imageID string) error {
	return errors.Wrapf(ErrNoMatchingImage, "image id %q", imageID)
}

// MissingParameterError is returned when a camera model lacks one of the CAHVORE parameters.
type MissingParameterError struct {
	Model string
	ID    string
}

// NewMissingParameterError returns an error naming the parameter id missing from model.
func NewMissingParameterError(model, id string) error {
	return &MissingParameterError{Model: model, ID: id}
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("failed to find camera parameter %q in %s camera model", e.ID, e.Model)
}
