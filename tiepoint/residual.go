package tiepoint

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Residual is a pixel residual in polar form. Angle is in degrees in [0, 360).
type Residual struct {
	Length float64
	Angle  float64
}

// NewResidual converts a residual vector to polar form.
func NewResidual(v Vector2) (Residual, error) {
	x, err := strconv.ParseFloat(v.X, 64)
	if err != nil {
		return Residual{}, errors.Errorf("residual x %q is not a number", v.X)
	}
	y, err := strconv.ParseFloat(v.Y, 64)
	if err != nil {
		return Residual{}, errors.Errorf("residual y %q is not a number", v.Y)
	}
	angle := math.Atan2(y, x) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return Residual{Length: math.Hypot(x, y), Angle: angle}, nil
}

// ResidualStats summarizes residual lengths over a set of observations.
type ResidualStats struct {
	Count            int
	InitialMean      float64
	InitialStdDev    float64
	FinalMean        float64
	FinalStdDev      float64
	FinalMaxLength   float64
	ImprovedFraction float64
}

// SummarizeResiduals computes residual length statistics over observations. The standard
// deviation of a single observation is reported as 0.
func SummarizeResiduals(observations []*Observation) (ResidualStats, error) {
	summary := ResidualStats{Count: len(observations)}
	if len(observations) == 0 {
		return summary, nil
	}

	initial := make([]float64, 0, len(observations))
	final := make([]float64, 0, len(observations))
	improved := 0
	for _, o := range observations {
		i, err := NewResidual(o.InitialResidual)
		if err != nil {
			return ResidualStats{}, errors.Wrapf(err, "point %d", o.ID)
		}
		f, err := NewResidual(o.FinalResidual)
		if err != nil {
			return ResidualStats{}, errors.Wrapf(err, "point %d", o.ID)
		}
		initial = append(initial, i.Length)
		final = append(final, f.Length)
		summary.FinalMaxLength = math.Max(summary.FinalMaxLength, f.Length)
		if f.Length < i.Length {
			improved++
		}
	}

	summary.InitialMean, summary.InitialStdDev = meanStdDev(initial)
	summary.FinalMean, summary.FinalStdDev = meanStdDev(final)
	summary.ImprovedFraction = float64(improved) / float64(len(observations))
	return summary, nil
}

func meanStdDev(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}
