package tiepoint

import "fmt"

// MissingFieldError names a required element or attribute that a tiepoint document lacks.
type MissingFieldError struct {
	Field string
}

// NewMissingFieldError returns an error indicating that field is absent.
func NewMissingFieldError(field string) error {
	return &MissingFieldError{Field: field}
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("failed to find <%s> in tiepoint XML", e.Field)
}

// UnresolvedImageKeyError is returned when a tie refers to an image key missing from the image
// catalog.
type UnresolvedImageKeyError struct {
	Key int
}

func (e *UnresolvedImageKeyError) Error() string {
	return fmt.Sprintf("unresolved image key %d in tiepoint XML", e.Key)
}
