package eval

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Prediction pairs one validation input with the model's output and the
// ground truth derived from the validation set at split time.
type Prediction struct {
	Input     DataPoint
	Predicted string
	Actual    string
}

// Model is an opaque trained-model handle returned by the training
// collaborator. A model is scoped to exactly one (configuration, fold)
// unit and is discarded after scoring.
type Model interface {
	Predict(features []float64) (string, error)
}

// Algorithm is the training collaborator contract: train a fresh model
// from a training set and this entry's parameter group. Train must not see
// validation data; fold isolation is guaranteed by the split, and the
// runner never feeds prediction feedback back into training.
type Algorithm interface {
	Train(ctx context.Context, training Dataset, params Params) (Model, error)
}

// Preparator transforms a dataset before training (normalization,
// filtering). Optional; nil means identity.
type Preparator interface {
	Prepare(ctx context.Context, ds Dataset, params Params) (Dataset, error)
}

// Serving combines the per-input predictions of a configuration's
// algorithm entries into one served result.
type Serving interface {
	Combine(predictions []string, params Params) string
}

// ValidServings is the set of recognized serving policy names.
// Shared by ExperimentSpec.Validate and NewServing.
var ValidServings = map[string]bool{"": true, "first": true, "majority-vote": true}

// NewServing constructs a serving policy by name. Empty string selects
// "first", the default.
func NewServing(name string) (Serving, error) {
	switch name {
	case "", "first":
		return FirstServing{}, nil
	case "majority-vote":
		return MajorityVoteServing{}, nil
	default:
		return nil, fmt.Errorf("unknown serving policy %q", name)
	}
}

// FirstServing serves the first algorithm entry's prediction. The default
// for single-algorithm configurations.
type FirstServing struct{}

// Combine implements Serving for FirstServing.
func (FirstServing) Combine(predictions []string, _ Params) string {
	return predictions[0]
}

// MajorityVoteServing serves the most frequent prediction across entries.
// Ties break to the lexicographically smallest label so the result is
// deterministic regardless of entry order.
type MajorityVoteServing struct{}

// Combine implements Serving for MajorityVoteServing.
func (MajorityVoteServing) Combine(predictions []string, _ Params) string {
	counts := make(map[string]int, len(predictions))
	for _, p := range predictions {
		counts[p]++
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
	return best
}

// Engine wires the pipeline collaborators a run trains and serves through.
// Algorithms is keyed by AlgorithmParams.Name; the engine never inspects
// implementation identity, only calls through the capability.
type Engine struct {
	Preparator Preparator           // nil = identity
	Algorithms map[string]Algorithm // name → training capability
	Serving    Serving              // nil = FirstServing
}

// Run executes the pipeline once for one (configuration, fold) unit:
// prepare + train on the training set, then query every validation input
// through the trained models and serving. Returns one Prediction per
// validation point, in validation order.
//
// Any preparation, training, or prediction failure aborts this unit and is
// returned raw; the evaluator attributes it to the fold.
func (e *Engine) Run(ctx context.Context, params EngineParams, training, validation Dataset) ([]Prediction, error) {
	if len(params.Algorithms) == 0 {
		return nil, fmt.Errorf("config %q has no algorithm entries", params.Label())
	}

	prepared := training
	if e.Preparator != nil {
		var err error
		prepared, err = e.Preparator.Prepare(ctx, training, params.Preparator)
		if err != nil {
			return nil, fmt.Errorf("preparing training data: %w", err)
		}
	}

	// One fresh model per algorithm entry, trained on this fold only.
	models := make([]Model, len(params.Algorithms))
	for i, entry := range params.Algorithms {
		algo, ok := e.Algorithms[entry.Name]
		if !ok {
			return nil, fmt.Errorf("unknown algorithm %q", entry.Name)
		}
		m, err := algo.Train(ctx, prepared, entry.Params)
		if err != nil {
			return nil, fmt.Errorf("training %q: %w", entry.Name, err)
		}
		models[i] = m
	}

	serving := e.Serving
	if serving == nil {
		serving = FirstServing{}
	}

	logrus.Debugf("config %q: trained %d model(s) on %d points, scoring %d",
		params.Label(), len(models), prepared.Len(), validation.Len())

	out := make([]Prediction, 0, validation.Len())
	votes := make([]string, len(models))
	for i := 0; i < validation.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		point := validation.At(i)
		for j, m := range models {
			p, err := m.Predict(point.Features)
			if err != nil {
				return nil, fmt.Errorf("predicting point %s with %q: %w", point.ID, params.Algorithms[j].Name, err)
			}
			votes[j] = p
		}
		out = append(out, Prediction{
			Input:     point,
			Predicted: serving.Combine(votes, params.Serving),
			Actual:    point.Label,
		})
	}
	return out, nil
}
