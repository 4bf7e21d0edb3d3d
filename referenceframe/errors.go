package referenceframe

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFrameNotFound is matched by every FrameNotFoundError.
	ErrFrameNotFound = errors.New("frame not found")
	// ErrChainTooDeep is returned when a frame chain does not reach its target within the
	// number of coordinate systems available, which means the chain is cyclic.
	ErrChainTooDeep = errors.New("frame chain exceeded maximum depth")
)

// FrameNotFoundError names a coordinate system that a chain refers to but that no label
// property group declares.
type FrameNotFoundError struct {
	Name string
}

// NewFrameNotFoundError returns an error indicating that the named frame is missing.
func NewFrameNotFoundError(name string) error {
	return &FrameNotFoundError{Name: name}
}

func (e *FrameNotFoundError) Error() string {
	return fmt.Sprintf("frame %q not found in label", e.Name)
}

// Is reports whether target is ErrFrameNotFound.
func (e *FrameNotFoundError) Is(target error) bool {
	return target == ErrFrameNotFound
}

// NewChainTooDeepError returns an error indicating that resolving start towards target did not
// terminate within maxDepth hops.
func NewChainTooDeepError(start, target string, maxDepth int) error {
	return errors.Wrapf(ErrChainTooDeep, "resolving %q to %q (limit %d hops)", start, target, maxDepth)
}

// NewMissingKeywordError returns an error indicating that a coordinate system record lacks a
// required keyword.
func NewMissingKeywordError(frame, keyword string) error {
	return errors.Errorf("coordinate system %q is missing %s", frame, keyword)
}
