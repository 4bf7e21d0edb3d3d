// Package referenceframe resolves the chain of coordinate systems declared in an image label
// from a camera's frame back to a common reference frame.
package referenceframe

import (
	"github.com/pkg/errors"

	"github.com/nasa-ammos/vector-convert/spatialmath"
	"github.com/nasa-ammos/vector-convert/vicar"
)

// CoordinateSystem is one coordinate system record of a label: a named frame, the frame one hop
// closer to the root, and the origin offset and rotation relative to that frame.
type CoordinateSystem struct {
	Name      string
	Reference string
	Offset    spatialmath.Offset
	Rotation  spatialmath.Rotation
}

// NewCoordinateSystem parses a coordinate system record from the keywords of a property group.
func NewCoordinateSystem(keywords map[string]string) (*CoordinateSystem, error) {
	name, ok := keywords[vicar.KeywordCoordinateSystemName]
	if !ok {
		return nil, errors.Errorf("property group is missing %s", vicar.KeywordCoordinateSystemName)
	}
	reference, ok := keywords[vicar.KeywordReferenceSystemName]
	if !ok {
		return nil, NewMissingKeywordError(name, vicar.KeywordReferenceSystemName)
	}
	rawOffset, ok := keywords[vicar.KeywordOriginOffset]
	if !ok {
		return nil, NewMissingKeywordError(name, vicar.KeywordOriginOffset)
	}
	rawRotation, ok := keywords[vicar.KeywordOriginRotation]
	if !ok {
		return nil, NewMissingKeywordError(name, vicar.KeywordOriginRotation)
	}

	offset, err := spatialmath.ParseOffsetVector(rawOffset)
	if err != nil {
		return nil, errors.Wrapf(err, "coordinate system %q", name)
	}
	rotation, err := spatialmath.ParseRotationQuaternion(rawRotation)
	if err != nil {
		return nil, errors.Wrapf(err, "coordinate system %q", name)
	}

	return &CoordinateSystem{
		Name:      name,
		Reference: reference,
		Offset:    offset,
		Rotation:  rotation,
	}, nil
}

// Transform is one hop of a chain: the offset and rotation of a frame relative to Reference.
type Transform struct {
	Reference string
	Offset    spatialmath.Offset
	Rotation  spatialmath.Rotation
}

// TransformChain is an ordered sequence of hops from a frame towards the reference frame. The
// first hop is relative to the nearest ancestor.
type TransformChain []Transform

// Target returns the frame the chain resolves to, or "" for an empty chain.
func (c TransformChain) Target() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1].Reference
}

// Pose composes the chain into the pose of the starting frame expressed in the chain's target
// frame.
func (c TransformChain) Pose() (spatialmath.Pose, error) {
	pose := spatialmath.NewZeroPose()
	for i := len(c) - 1; i >= 0; i-- {
		hop, err := spatialmath.NewPose(c[i].Offset, c[i].Rotation)
		if err != nil {
			return spatialmath.Pose{}, errors.Wrapf(err, "transform to %q", c[i].Reference)
		}
		pose = spatialmath.Compose(pose, hop)
	}
	return pose, nil
}
