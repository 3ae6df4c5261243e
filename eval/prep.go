package eval

import (
	"context"
	"fmt"
)

// ValidPreparators is the set of recognized preparator names.
var ValidPreparators = map[string]bool{"": true, "none": true, "subsample": true}

// NewPreparator constructs a preparator by name. Empty string and "none"
// select the identity (nil preparator).
func NewPreparator(name string) (Preparator, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "subsample":
		return SubsamplePreparator{}, nil
	default:
		return nil, fmt.Errorf("unknown preparator %q", name)
	}
}

// SubsamplePreparator caps the training set at a fixed size by taking a
// deterministic prefix of the training order. Useful for sweeping training
// volume as a search dimension.
//
// Parameters:
//   - "max_points": cap (0 or absent = no cap)
type SubsamplePreparator struct{}

// Prepare implements Preparator for SubsamplePreparator.
func (SubsamplePreparator) Prepare(_ context.Context, ds Dataset, params Params) (Dataset, error) {
	max := params.Int("max_points", 0)
	if max < 0 {
		return nil, fmt.Errorf("subsample: max_points must be >= 0, got %d", max)
	}
	if max == 0 || max >= ds.Len() {
		return ds, nil
	}
	indices := make([]int, max)
	for i := range indices {
		indices[i] = i
	}
	return NewSubset(ds, indices), nil
}
