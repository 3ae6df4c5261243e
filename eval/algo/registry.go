// Package algo provides reference training collaborators for the eval
// engine: small deterministic classifiers useful as baselines and as
// subjects for hyperparameter search.
package algo

import (
	"fmt"

	"github.com/gridfold/gridfold/eval"
)

// ValidAlgorithms is the set of registered algorithm names.
var ValidAlgorithms = map[string]bool{"majority-class": true, "nearest-centroid": true, "knn": true}

// New constructs an algorithm by registered name.
func New(name string) (eval.Algorithm, error) {
	switch name {
	case "majority-class":
		return MajorityClass{}, nil
	case "nearest-centroid":
		return NearestCentroid{}, nil
	case "knn":
		return KNN{}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", name)
	}
}

// All returns the full registry keyed by name, the Algorithms map for an
// eval.Engine.
func All() map[string]eval.Algorithm {
	out := make(map[string]eval.Algorithm, len(ValidAlgorithms))
	for name := range ValidAlgorithms {
		a, _ := New(name)
		out[name] = a
	}
	return out
}
