package spatialmath

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// splitTuple is a helper method to split up parenthesized, comma-delimited label values such as
// "(1.25,-0.5,0.0)" into their trimmed components. Every component must parse as a real number;
// the original text of each component is returned unchanged.
func splitTuple(s string, want int) ([]string, error) {
	trimmed := strings.TrimRight(strings.TrimLeft(strings.TrimSpace(s), "("), ")")
	parts := strings.Split(trimmed, ",")
	if len(parts) != want {
		return nil, errors.Errorf("expected %d components in %q but found %d", want, s, len(parts))
	}
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if _, err := strconv.ParseFloat(parts[i], 64); err != nil {
			return nil, errors.Errorf("component %d of %q is not a number", i, s)
		}
	}
	return parts, nil
}

func parseComponents(components ...string) ([]float64, error) {
	values := make([]float64, len(components))
	for i, c := range components {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid component %q", c)
		}
		values[i] = v
	}
	return values, nil
}
