package algo

import (
	"context"
	"fmt"
	"sort"

	"github.com/gridfold/gridfold/eval"
)

// MajorityClass always predicts the most frequent training label. The
// floor baseline: any useful algorithm should beat it.
type MajorityClass struct{}

// Train implements eval.Algorithm for MajorityClass. Ties between equally
// frequent labels break to the lexicographically smallest, so training is
// deterministic for any training-set order.
func (MajorityClass) Train(_ context.Context, training eval.Dataset, _ eval.Params) (eval.Model, error) {
	if training.Len() == 0 {
		return nil, fmt.Errorf("majority-class: empty training set")
	}
	counts := make(map[string]int)
	for i := 0; i < training.Len(); i++ {
		counts[training.At(i).Label]++
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
	return constantModel{label: best}, nil
}

type constantModel struct {
	label string
}

func (m constantModel) Predict(_ []float64) (string, error) {
	return m.label, nil
}
