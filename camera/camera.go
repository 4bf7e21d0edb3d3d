// Package camera assembles CAHVORE camera records from navigation solutions, resolving the
// coordinate frame of each camera model to the common reference frame through the image's label.
package camera

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/nasa-ammos/vector-convert/logging"
	"github.com/nasa-ammos/vector-convert/navigation"
	"github.com/nasa-ammos/vector-convert/referenceframe"
	"github.com/nasa-ammos/vector-convert/vicar"
)

// ModelCAHVORE is the camera model name written for every camera.
const ModelCAHVORE = "CAHVORE"

// Names of the two camera models of a solution.
const (
	ModelInitial = "initial"
	ModelFinal   = "final"
)

var (
	// VectorParameters are the three-component CAHVORE parameters, in output order.
	VectorParameters = []string{"C", "A", "H", "V", "O", "R", "E"}
	// ScalarParameters are the single-value CAHVORE parameters, in output order.
	ScalarParameters = []string{"T", "P"}
)

// Parameter is one camera model parameter carried as decimal text. Vector parameters set X, Y
// and Z; scalar parameters set V.
type Parameter struct {
	ID     string
	Scalar bool
	X      string
	Y      string
	Z      string
	V      string
}

// Pose is one camera model of a camera: its frame, the chain linking that frame to the
// reference frame and its parameters.
type Pose struct {
	ReferenceFrame string
	Chain          referenceframe.TransformChain
	Parameters     []Parameter
}

// Camera is the record assembled for one navigation solution.
type Camera struct {
	ID      string
	Image   string
	Model   string
	Initial Pose
	Final   Pose
}

// ImageLookup finds the image file and parsed label for an image id. A lookup that finds an
// image but has no labels to search returns a nil label.
type ImageLookup interface {
	Lookup(imageID string) (image string, label *vicar.Label, err error)
}

// An Assembler builds camera records from navigation solutions.
type Assembler struct {
	lookup         ImageLookup
	referenceFrame string
	logger         logging.Logger
}

// NewAssembler returns an Assembler resolving camera frames to referenceFrame.
func NewAssembler(lookup ImageLookup, referenceFrame string, logger logging.Logger) *Assembler {
	return &Assembler{lookup: lookup, referenceFrame: referenceFrame, logger: logger}
}

// AssembleAll assembles one camera per solution, in solution order. The first failure aborts.
func (a *Assembler) AssembleAll(ctx context.Context, solutions []navigation.Solution) ([]*Camera, error) {
	cameras := make([]*Camera, 0, len(solutions))
	for i := range solutions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cam, err := a.Assemble(&solutions[i])
		if err != nil {
			return nil, errors.Wrapf(err, "solution %d", i)
		}
		cameras = append(cameras, cam)
	}
	return cameras, nil
}

// Assemble builds the camera record of one solution.
func (a *Assembler) Assemble(solution *navigation.Solution) (*Camera, error) {
	imageID, err := solution.ImageID()
	if err != nil {
		return nil, err
	}
	image, label, err := a.lookup.Lookup(imageID)
	if err != nil {
		return nil, err
	}

	initialModel, err := solution.InitialModel()
	if err != nil {
		return nil, err
	}
	finalModel, err := solution.FinalModel()
	if err != nil {
		return nil, err
	}

	cam := &Camera{
		ID:    imageID,
		Image: filepath.Base(image),
		Model: ModelCAHVORE,
	}
	if cam.Initial, err = a.pose(imageID, ModelInitial, initialModel, label); err != nil {
		return nil, err
	}
	if cam.Final, err = a.pose(imageID, ModelFinal, finalModel, label); err != nil {
		return nil, err
	}
	return cam, nil
}

func (a *Assembler) pose(imageID, name string, model *navigation.CameraModel, label *vicar.Label) (Pose, error) {
	frame, err := model.Frame()
	if err != nil {
		return Pose{}, err
	}
	pose := Pose{ReferenceFrame: frame}

	if label != nil {
		pose.Chain, err = referenceframe.Resolve(frame, label.CoordinateSystems(), a.referenceFrame)
		if err != nil {
			return Pose{}, errors.Wrapf(err, "resolving %s frame of %q", name, imageID)
		}
		a.logger.Debugw("resolved frame chain",
			"image", imageID,
			"model", name,
			"frames", append([]string{frame}, lo.Map(pose.Chain, func(t referenceframe.Transform, _ int) string {
				return t.Reference
			})...),
		)
	}

	pose.Parameters, err = parameters(name, model)
	if err != nil {
		return Pose{}, err
	}
	return pose, nil
}

func parameters(name string, model *navigation.CameraModel) ([]Parameter, error) {
	params := make([]Parameter, 0, len(VectorParameters)+len(ScalarParameters))
	for _, id := range VectorParameters {
		p, ok := model.Parameter(id)
		if !ok {
			return nil, NewMissingParameterError(name, id)
		}
		if p.Value1 == nil || p.Value2 == nil || p.Value3 == nil {
			return nil, errors.Errorf("camera parameter %q in %s camera model needs value1, value2 and value3", id, name)
		}
		params = append(params, Parameter{ID: id, X: *p.Value1, Y: *p.Value2, Z: *p.Value3})
	}
	for _, id := range ScalarParameters {
		p, ok := model.Parameter(id)
		if !ok {
			return nil, NewMissingParameterError(name, id)
		}
		if p.Value == nil {
			return nil, errors.Errorf("camera parameter %q in %s camera model needs value", id, name)
		}
		params = append(params, Parameter{ID: id, Scalar: true, V: *p.Value})
	}
	return params, nil
}
