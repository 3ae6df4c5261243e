package eval

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Pointwise is the per-example half of a metric: score one
// (input, predicted, actual) triple. Higher is better; no assumed bounds.
// Implementations must be pure functions of their inputs — no hidden state
// across calls — so scoring is reproducible.
type Pointwise interface {
	Calculate(p Prediction) (float64, error)
}

// Aggregator is the reduction half of a metric: combine a sequence of
// scores into one. weights may be nil (unweighted); when non-nil it has
// the same length as scores. The evaluator reuses the same Aggregator
// contract at both levels: pointwise scores → fold score (nil weights) and
// fold scores → configuration score (weights = validation fold sizes).
type Aggregator interface {
	Combine(scores, weights []float64) float64
}

// Metric composes a pointwise function with an aggregation policy. The
// built-in "average metric" shape: NewAverageMetric(pw) is pw + mean.
type Metric struct {
	Pointwise  Pointwise
	Aggregator Aggregator
}

// NewAverageMetric composes pw with mean aggregation, the reference
// metric shape (e.g. accuracy averaged over a fold).
func NewAverageMetric(pw Pointwise) Metric {
	return Metric{Pointwise: pw, Aggregator: MeanAggregator{}}
}

// ValidMetrics is the set of recognized pointwise metric names.
// Shared by ExperimentSpec.Validate and NewPointwise.
var ValidMetrics = map[string]bool{"": true, "accuracy": true, "squared-error": true}

// ValidAggregators is the set of recognized aggregation policy names.
var ValidAggregators = map[string]bool{"": true, "mean": true, "weighted-mean": true, "median": true, "min": true}

// NewPointwise constructs a pointwise metric by name. Empty string selects
// "accuracy", the default.
func NewPointwise(name string) (Pointwise, error) {
	switch name {
	case "", "accuracy":
		return Accuracy{}, nil
	case "squared-error":
		return SquaredError{}, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", name)
	}
}

// NewAggregator constructs an aggregation policy by name. Empty string
// selects "mean", the default.
func NewAggregator(name string) (Aggregator, error) {
	switch name {
	case "", "mean":
		return MeanAggregator{}, nil
	case "weighted-mean":
		return WeightedMeanAggregator{}, nil
	case "median":
		return MedianAggregator{}, nil
	case "min":
		return MinAggregator{}, nil
	default:
		return nil, fmt.Errorf("unknown aggregator %q", name)
	}
}

// Accuracy scores 1.0 when the served label equals the ground truth, else
// 0.0. Averaged over a fold this is the fraction of correct predictions.
type Accuracy struct{}

// Calculate implements Pointwise for Accuracy.
func (Accuracy) Calculate(p Prediction) (float64, error) {
	if p.Predicted == p.Actual {
		return 1.0, nil
	}
	return 0.0, nil
}

// SquaredError scores the negated squared difference of numerically-valued
// labels, so that higher remains better. Fails on non-numeric labels.
type SquaredError struct{}

// Calculate implements Pointwise for SquaredError.
func (SquaredError) Calculate(p Prediction) (float64, error) {
	pred, err := strconv.ParseFloat(p.Predicted, 64)
	if err != nil {
		return 0, fmt.Errorf("squared-error needs numeric labels, got predicted %q", p.Predicted)
	}
	actual, err := strconv.ParseFloat(p.Actual, 64)
	if err != nil {
		return 0, fmt.Errorf("squared-error needs numeric labels, got actual %q", p.Actual)
	}
	d := pred - actual
	return -(d * d), nil
}

// MeanAggregator combines scores with the unweighted arithmetic mean,
// ignoring weights. The default policy.
type MeanAggregator struct{}

// Combine implements Aggregator for MeanAggregator.
func (MeanAggregator) Combine(scores, _ []float64) float64 {
	return stat.Mean(scores, nil)
}

// WeightedMeanAggregator combines scores with a weighted mean. At the
// configuration level the evaluator supplies validation fold sizes as
// weights, so unequal folds (leave-one-out remainders) count
// proportionally. Falls back to the unweighted mean when weights are nil.
type WeightedMeanAggregator struct{}

// Combine implements Aggregator for WeightedMeanAggregator.
func (WeightedMeanAggregator) Combine(scores, weights []float64) float64 {
	return stat.Mean(scores, weights)
}

// MedianAggregator combines scores with the empirical median, ignoring
// weights. Robust to a single outlier fold.
type MedianAggregator struct{}

// Combine implements Aggregator for MedianAggregator.
func (MedianAggregator) Combine(scores, _ []float64) float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// MinAggregator combines scores by taking the worst, ignoring weights.
// Selects for configurations with no bad fold rather than a good average.
type MinAggregator struct{}

// Combine implements Aggregator for MinAggregator.
func (MinAggregator) Combine(scores, _ []float64) float64 {
	return floats.Min(scores)
}
