package algo

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/gridfold/gridfold/eval"
)

// KNN is a brute-force k-nearest-neighbors classifier. Its "k" is the
// classic subject for a parameter search: the variant list sweeps it while
// everything else stays fixed.
//
// Parameters:
//   - "k": neighbor count (default 3, capped at the training-set size)
//   - "power": the L-norm for the distance (default 2.0)
type KNN struct{}

// Train implements eval.Algorithm for KNN. Training memorizes the
// training set; the work happens at prediction time.
func (KNN) Train(_ context.Context, training eval.Dataset, params eval.Params) (eval.Model, error) {
	if training.Len() == 0 {
		return nil, fmt.Errorf("knn: empty training set")
	}
	k := params.Int("k", 3)
	if k < 1 {
		return nil, fmt.Errorf("knn: k must be >= 1, got %d", k)
	}
	if k > training.Len() {
		k = training.Len()
	}
	power := params.Float("power", 2.0)
	if power <= 0 {
		return nil, fmt.Errorf("knn: power must be > 0, got %v", power)
	}
	return &knnModel{training: training, k: k, power: power}, nil
}

type knnModel struct {
	training eval.Dataset
	k        int
	power    float64
}

type neighbor struct {
	dist  float64
	index int // training index, the deterministic tie-break
	label string
}

func (m *knnModel) Predict(features []float64) (string, error) {
	neighbors := make([]neighbor, m.training.Len())
	for i := 0; i < m.training.Len(); i++ {
		p := m.training.At(i)
		if len(p.Features) != len(features) {
			return "", fmt.Errorf("knn: point %s has %d features, query has %d", p.ID, len(p.Features), len(features))
		}
		neighbors[i] = neighbor{
			dist:  floats.Distance(features, p.Features, m.power),
			index: i,
			label: p.Label,
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].dist != neighbors[j].dist {
			return neighbors[i].dist < neighbors[j].dist
		}
		return neighbors[i].index < neighbors[j].index
	})

	// Vote among the k nearest; ties break to the lexicographically
	// smallest label.
	counts := make(map[string]int, m.k)
	for _, n := range neighbors[:m.k] {
		counts[n.label]++
	}
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	best := labels[0]
	for _, l := range labels[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best, nil
}
