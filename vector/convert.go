package vector

import (
	"encoding/xml"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/nasa-ammos/vector-convert/camera"
	"github.com/nasa-ammos/vector-convert/referenceframe"
	"github.com/nasa-ammos/vector-convert/spatialmath"
	"github.com/nasa-ammos/vector-convert/tiepoint"
)

var rootName = xml.Name{Local: "vector"}

// FromTracks builds a track document, keeping the order of tracks and their observations.
func FromTracks(referenceFrame string, tracks *tiepoint.Tracks) *Document {
	return &Document{
		XMLName:        rootName,
		Version:        Version,
		Format:         FormatTrack,
		ReferenceFrame: referenceFrame,
		Tracks: lo.Map(tracks.All(), func(t *tiepoint.Track, _ int) Track {
			return Track{
				ID:         t.ID,
				InitialXYZ: xyz(t.InitialXYZ),
				FinalXYZ:   xyz(t.FinalXYZ),
				Points: lo.Map(t.Observations, func(o *tiepoint.Observation, _ int) Point {
					return Point{
						ID:              strconv.Itoa(o.ID),
						CameraID:        o.CameraID,
						Pixel:           xy(o.Pixel),
						InitialResidual: xy(o.InitialResidual),
						FinalResidual:   xy(o.FinalResidual),
					}
				}),
			}
		}),
	}
}

// FromCameras builds a camera document, keeping the order of cameras.
func FromCameras(referenceFrame string, cameras []*camera.Camera) *Document {
	return &Document{
		XMLName:        rootName,
		Version:        Version,
		Format:         FormatCamera,
		ReferenceFrame: referenceFrame,
		Cameras: lo.Map(cameras, func(c *camera.Camera, _ int) Camera {
			return Camera{
				ID:      c.ID,
				Image:   c.Image,
				Model:   c.Model,
				Initial: pose(c.Initial),
				Final:   pose(c.Final),
			}
		}),
	}
}

func pose(p camera.Pose) Pose {
	return Pose{
		ReferenceFrame: p.ReferenceFrame,
		Transform:      nest(p.Chain),
		Parameters: lo.Map(p.Parameters, func(param camera.Parameter, _ int) Parameter {
			if param.Scalar {
				return Parameter{ID: param.ID, V: lo.ToPtr(param.V)}
			}
			return Parameter{ID: param.ID, X: lo.ToPtr(param.X), Y: lo.ToPtr(param.Y), Z: lo.ToPtr(param.Z)}
		}),
	}
}

// nest turns a chain into nested transforms, innermost last.
func nest(chain referenceframe.TransformChain) *Transform {
	var next *Transform
	for i := len(chain) - 1; i >= 0; i-- {
		hop := chain[i]
		next = &Transform{
			ReferenceFrame: hop.Reference,
			Offset:         XYZ{X: hop.Offset.X, Y: hop.Offset.Y, Z: hop.Offset.Z},
			Rotation:       XYZW{X: hop.Rotation.X, Y: hop.Rotation.Y, Z: hop.Rotation.Z, W: hop.Rotation.W},
			Next:           next,
		}
	}
	return next
}

// Chain flattens the nested transforms of a pose back into a chain.
func (p *Pose) Chain() referenceframe.TransformChain {
	var chain referenceframe.TransformChain
	for t := p.Transform; t != nil; t = t.Next {
		chain = append(chain, referenceframe.Transform{
			Reference: t.ReferenceFrame,
			Offset:    spatialmath.Offset{X: t.Offset.X, Y: t.Offset.Y, Z: t.Offset.Z},
			Rotation:  spatialmath.Rotation{X: t.Rotation.X, Y: t.Rotation.Y, Z: t.Rotation.Z, W: t.Rotation.W},
		})
	}
	return chain
}

// Observations converts the points of a decoded track back into observations. Keys are not
// part of the format and are left zero.
func (t *Track) Observations() ([]*tiepoint.Observation, error) {
	observations := make([]*tiepoint.Observation, 0, len(t.Points))
	for _, p := range t.Points {
		id, err := strconv.Atoi(p.ID)
		if err != nil {
			return nil, errors.Errorf("point id %q of track %q is not an integer", p.ID, t.ID)
		}
		observations = append(observations, &tiepoint.Observation{
			ID:              id,
			CameraID:        p.CameraID,
			Pixel:           tiepoint.Vector2{X: p.Pixel.X, Y: p.Pixel.Y},
			InitialResidual: tiepoint.Vector2{X: p.InitialResidual.X, Y: p.InitialResidual.Y},
			FinalResidual:   tiepoint.Vector2{X: p.FinalResidual.X, Y: p.FinalResidual.Y},
		})
	}
	return observations, nil
}

func xy(v tiepoint.Vector2) XY {
	return XY{X: v.X, Y: v.Y}
}

func xyz(v tiepoint.Vector3) XYZ {
	return XYZ{X: v.X, Y: v.Y, Z: v.Z}
}
