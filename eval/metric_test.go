package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy_Pointwise(t *testing.T) {
	acc := Accuracy{}

	s, err := acc.Calculate(Prediction{Predicted: "even", Actual: "even"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s)

	s, err = acc.Calculate(Prediction{Predicted: "odd", Actual: "even"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
}

func TestAverageMetric_AllCorrectAllWrongMonotone(t *testing.T) {
	// The averaged accuracy over a fold is 1.0 for all-correct, 0.0 for
	// all-wrong, and monotone in the fraction correct.
	m := NewAverageMetric(Accuracy{})

	score := func(correct, total int) float64 {
		scores := make([]float64, total)
		for i := 0; i < correct; i++ {
			scores[i] = 1.0
		}
		return m.Aggregator.Combine(scores, nil)
	}

	assert.Equal(t, 1.0, score(10, 10))
	assert.Equal(t, 0.0, score(0, 10))
	prev := -1.0
	for correct := 0; correct <= 10; correct++ {
		s := score(correct, 10)
		assert.Greater(t, s, prev, "%d/10 correct", correct)
		prev = s
	}
}

func TestSquaredError_NumericLabels(t *testing.T) {
	se := SquaredError{}

	s, err := se.Calculate(Prediction{Predicted: "3.0", Actual: "5.0"})
	require.NoError(t, err)
	assert.Equal(t, -4.0, s)

	s, err = se.Calculate(Prediction{Predicted: "2", Actual: "2"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s, "exact prediction scores highest")

	_, err = se.Calculate(Prediction{Predicted: "even", Actual: "2"})
	assert.Error(t, err, "non-numeric label must fail, not silently score")
}

func TestAggregators_Combine(t *testing.T) {
	scores := []float64{0.2, 0.8, 0.5}
	weights := []float64{1, 1, 2}

	tests := []struct {
		name string
		want float64
	}{
		{"mean", 0.5},
		{"weighted-mean", (0.2 + 0.8 + 2*0.5) / 4},
		{"median", 0.5},
		{"min", 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := NewAggregator(tt.name)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, agg.Combine(scores, weights), 1e-12)
		})
	}
}

func TestWeightedMeanAggregator_NilWeightsFallsBack(t *testing.T) {
	agg := WeightedMeanAggregator{}
	assert.InDelta(t, 0.5, agg.Combine([]float64{0.2, 0.8}, nil), 1e-12)
}

func TestMetricRegistries(t *testing.T) {
	// Empty names select the defaults.
	pw, err := NewPointwise("")
	require.NoError(t, err)
	assert.IsType(t, Accuracy{}, pw)

	agg, err := NewAggregator("")
	require.NoError(t, err)
	assert.IsType(t, MeanAggregator{}, agg)

	// Unknown names fail.
	_, err = NewPointwise("f1")
	assert.Error(t, err)
	_, err = NewAggregator("harmonic")
	assert.Error(t, err)

	// Valid* sets agree with the constructors.
	for name := range ValidMetrics {
		_, err := NewPointwise(name)
		assert.NoError(t, err, "metric %q", name)
	}
	for name := range ValidAggregators {
		_, err := NewAggregator(name)
		assert.NoError(t, err, "aggregator %q", name)
	}
}
