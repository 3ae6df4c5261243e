package algo

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/gridfold/gridfold/eval"
)

// NearestCentroid computes one mean feature vector per training label and
// predicts the label of the nearest centroid.
//
// Parameters:
//   - "power": the L-norm for the distance (default 2.0, Euclidean)
type NearestCentroid struct{}

// Train implements eval.Algorithm for NearestCentroid.
func (NearestCentroid) Train(ctx context.Context, training eval.Dataset, params eval.Params) (eval.Model, error) {
	if training.Len() == 0 {
		return nil, fmt.Errorf("nearest-centroid: empty training set")
	}
	power := params.Float("power", 2.0)
	if power <= 0 {
		return nil, fmt.Errorf("nearest-centroid: power must be > 0, got %v", power)
	}

	dim := len(training.At(0).Features)
	sums := make(map[string][]float64)
	counts := make(map[string]int)
	for i := 0; i < training.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := training.At(i)
		if len(p.Features) != dim {
			return nil, fmt.Errorf("nearest-centroid: point %s has %d features, want %d", p.ID, len(p.Features), dim)
		}
		if _, ok := sums[p.Label]; !ok {
			sums[p.Label] = make([]float64, dim)
		}
		floats.Add(sums[p.Label], p.Features)
		counts[p.Label]++
	}

	// Fixed label order makes nearest-centroid ties deterministic.
	labels := make([]string, 0, len(sums))
	for l := range sums {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	centroids := make([][]float64, len(labels))
	for i, l := range labels {
		c := sums[l]
		floats.Scale(1/float64(counts[l]), c)
		centroids[i] = c
	}
	return &centroidModel{labels: labels, centroids: centroids, power: power, dim: dim}, nil
}

type centroidModel struct {
	labels    []string
	centroids [][]float64
	power     float64
	dim       int
}

func (m *centroidModel) Predict(features []float64) (string, error) {
	if len(features) != m.dim {
		return "", fmt.Errorf("nearest-centroid: query has %d features, want %d", len(features), m.dim)
	}
	best := 0
	bestDist := floats.Distance(features, m.centroids[0], m.power)
	for i := 1; i < len(m.centroids); i++ {
		if d := floats.Distance(features, m.centroids[i], m.power); d < bestDist {
			best, bestDist = i, d
		}
	}
	return m.labels[best], nil
}
