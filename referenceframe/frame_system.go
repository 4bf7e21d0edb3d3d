package referenceframe

import (
	"github.com/pkg/errors"
)

// Resolve walks the REFERENCE_COORD_SYSTEM_NAME links of the given coordinate systems from start
// until target is reached and returns one transform per hop. systems maps a coordinate system
// name to the keywords of the property group that declares it.
//
// A start equal to target yields an empty chain. A frame missing from systems fails with a
// FrameNotFoundError naming it; a chain longer than the number of systems fails with
// ErrChainTooDeep. No partial chain is ever returned.
func Resolve(start string, systems map[string]map[string]string, target string) (TransformChain, error) {
	chain := TransformChain{}
	if start == target {
		return chain, nil
	}

	maxDepth := len(systems)
	cursor := start
	for {
		keywords, ok := systems[cursor]
		if !ok {
			return nil, NewFrameNotFoundError(cursor)
		}
		if len(chain) >= maxDepth {
			return nil, NewChainTooDeepError(start, target, maxDepth)
		}

		cs, err := NewCoordinateSystem(keywords)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %q", start)
		}

		chain = append(chain, Transform{
			Reference: cs.Reference,
			Offset:    cs.Offset,
			Rotation:  cs.Rotation,
		})
		cursor = cs.Reference
		if cursor == target {
			return chain, nil
		}
	}
}

// TracebackFrame returns the names of the frames visited when resolving start to target,
// including both ends.
func TracebackFrame(start string, systems map[string]map[string]string, target string) ([]string, error) {
	chain, err := Resolve(start, systems, target)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(chain)+1)
	names = append(names, start)
	for _, hop := range chain {
		names = append(names, hop.Reference)
	}
	return names, nil
}
