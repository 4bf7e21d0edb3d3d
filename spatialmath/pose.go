package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is the numeric position and orientation of a frame expressed in another frame.
type Pose struct {
	Point       r3.Vector
	Orientation quat.Number
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return Pose{Orientation: NewZeroOrientation()}
}

// NewPose returns the numeric pose described by an offset and a rotation.
func NewPose(offset Offset, rotation Rotation) (Pose, error) {
	pt, err := offset.Vector()
	if err != nil {
		return Pose{}, err
	}
	q, err := rotation.Quaternion()
	if err != nil {
		return Pose{}, err
	}
	return Pose{Point: pt, Orientation: Normalize(q)}, nil
}

// Compose returns the pose of b's frame expressed in the frame a is expressed in, where b is
// expressed relative to a.
func Compose(a, b Pose) Pose {
	return Pose{
		Point:       a.Point.Add(RotateVector(a.Orientation, b.Point)),
		Orientation: Normalize(quat.Mul(a.Orientation, b.Orientation)),
	}
}

// PoseAlmostEqual returns whether two poses are within a small tolerance of each other.
func PoseAlmostEqual(a, b Pose) bool {
	const tol = 1e-6
	return a.Point.Sub(b.Point).Norm() < tol && OrientationAlmostEqual(a.Orientation, b.Orientation)
}

func (p Pose) String() string {
	return fmt.Sprintf("{X:%.6f Y:%.6f Z:%.6f QX:%.6f QY:%.6f QZ:%.6f QW:%.6f}",
		p.Point.X, p.Point.Y, p.Point.Z,
		p.Orientation.Imag, p.Orientation.Jmag, p.Orientation.Kmag, p.Orientation.Real)
}
