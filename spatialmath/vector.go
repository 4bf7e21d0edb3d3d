// Package spatialmath defines the offsets, rotations and poses that make up coordinate frame
// transforms.
//
// Components are carried as the decimal text they were read from so that a converted document
// reproduces its input digits exactly. Numeric views are available for composition.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// Offset is the origin offset of a frame relative to its reference frame.
type Offset struct {
	X, Y, Z string
}

// ParseOffsetVector parses a label value of the form "(x,y,z)".
func ParseOffsetVector(s string) (Offset, error) {
	parts, err := splitTuple(s, 3)
	if err != nil {
		return Offset{}, errors.Wrap(err, "invalid offset vector")
	}
	return Offset{X: parts[0], Y: parts[1], Z: parts[2]}, nil
}

// Vector returns the numeric value of the offset.
func (o Offset) Vector() (r3.Vector, error) {
	v, err := parseComponents(o.X, o.Y, o.Z)
	if err != nil {
		return r3.Vector{}, errors.Wrap(err, "invalid offset vector")
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}

// Rotation is a rotation quaternion in vector-first, scalar-last order.
type Rotation struct {
	X, Y, Z, W string
}

// ParseRotationQuaternion parses a label value of the form "(w,x,y,z)". Labels store the
// scalar component first; the returned Rotation holds it in W.
func ParseRotationQuaternion(s string) (Rotation, error) {
	parts, err := splitTuple(s, 4)
	if err != nil {
		return Rotation{}, errors.Wrap(err, "invalid rotation quaternion")
	}
	return Rotation{X: parts[1], Y: parts[2], Z: parts[3], W: parts[0]}, nil
}

// Quaternion returns the numeric value of the rotation.
func (r Rotation) Quaternion() (quat.Number, error) {
	v, err := parseComponents(r.W, r.X, r.Y, r.Z)
	if err != nil {
		return quat.Number{}, errors.Wrap(err, "invalid rotation quaternion")
	}
	return quat.Number{Real: v[0], Imag: v[1], Jmag: v[2], Kmag: v[3]}, nil
}
