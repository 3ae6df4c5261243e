package algo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfold/gridfold/eval"
)

// twoClusters builds n points in two well-separated clusters: label "low"
// near the origin, label "high" near (10, 10).
func twoClusters(n int) *eval.MemDataset {
	points := make([]eval.DataPoint, n)
	for i := range points {
		offset := float64(i%5) * 0.1
		if i%2 == 0 {
			points[i] = eval.DataPoint{ID: fmt.Sprintf("p%d", i), Features: []float64{offset, offset}, Label: "low"}
			continue
		}
		points[i] = eval.DataPoint{ID: fmt.Sprintf("p%d", i), Features: []float64{10 + offset, 10 + offset}, Label: "high"}
	}
	return eval.NewMemDataset(points)
}

func TestRegistry(t *testing.T) {
	for name := range ValidAlgorithms {
		a, err := New(name)
		require.NoError(t, err, "algorithm %q", name)
		assert.NotNil(t, a)
	}
	_, err := New("naive-bayes")
	assert.Error(t, err)

	all := All()
	assert.Len(t, all, len(ValidAlgorithms))
}

func TestMajorityClass(t *testing.T) {
	// GIVEN a training set with a 2:1 label majority
	ds := eval.NewMemDataset([]eval.DataPoint{
		{ID: "a", Features: []float64{0}, Label: "cat"},
		{ID: "b", Features: []float64{1}, Label: "cat"},
		{ID: "c", Features: []float64{2}, Label: "dog"},
	})

	// WHEN training and predicting
	m, err := MajorityClass{}.Train(context.Background(), ds, nil)
	require.NoError(t, err)
	got, err := m.Predict([]float64{99})
	require.NoError(t, err)

	// THEN the majority label is served for any input
	assert.Equal(t, "cat", got)
}

func TestMajorityClass_TieBreaksLexicographically(t *testing.T) {
	ds := eval.NewMemDataset([]eval.DataPoint{
		{ID: "a", Features: []float64{0}, Label: "dog"},
		{ID: "b", Features: []float64{1}, Label: "cat"},
	})
	m, err := MajorityClass{}.Train(context.Background(), ds, nil)
	require.NoError(t, err)
	got, err := m.Predict(nil)
	require.NoError(t, err)
	assert.Equal(t, "cat", got)
}

func TestMajorityClass_EmptyTrainingSet(t *testing.T) {
	_, err := MajorityClass{}.Train(context.Background(), eval.NewMemDataset(nil), nil)
	assert.Error(t, err)
}

func TestNearestCentroid_SeparatedClusters(t *testing.T) {
	m, err := NearestCentroid{}.Train(context.Background(), twoClusters(20), nil)
	require.NoError(t, err)

	got, err := m.Predict([]float64{0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, "low", got)

	got, err = m.Predict([]float64{9.5, 9.5})
	require.NoError(t, err)
	assert.Equal(t, "high", got)
}

func TestNearestCentroid_ParamValidation(t *testing.T) {
	ds := twoClusters(10)

	_, err := NearestCentroid{}.Train(context.Background(), ds, eval.Params{"power": -1.0})
	assert.Error(t, err)

	// Manhattan distance is a valid choice.
	m, err := NearestCentroid{}.Train(context.Background(), ds, eval.Params{"power": 1})
	require.NoError(t, err)
	got, err := m.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, "low", got)
}

func TestNearestCentroid_DimensionMismatch(t *testing.T) {
	ds := eval.NewMemDataset([]eval.DataPoint{
		{ID: "a", Features: []float64{0, 0}, Label: "x"},
		{ID: "b", Features: []float64{1}, Label: "x"},
	})
	_, err := NearestCentroid{}.Train(context.Background(), ds, nil)
	assert.Error(t, err, "ragged feature vectors must fail training")

	m, err := NearestCentroid{}.Train(context.Background(), twoClusters(10), nil)
	require.NoError(t, err)
	_, err = m.Predict([]float64{1})
	assert.Error(t, err, "query dimension must match training dimension")
}

func TestKNN_PredictsNearestNeighborLabels(t *testing.T) {
	// Odd-sized dataset: 11 "low" points versus 10 "high", so a vote over
	// the whole training set has a true majority.
	ds := twoClusters(21)

	tests := []struct {
		name  string
		k     int
		query []float64
		want  string
	}{
		{"k=1 low cluster", 1, []float64{0, 0}, "low"},
		{"k=1 high cluster", 1, []float64{10, 10}, "high"},
		{"k=5 low cluster", 5, []float64{1, 1}, "low"},
		{"k exceeding training size is capped", 1000, []float64{0, 0}, "low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := KNN{}.Train(context.Background(), ds, eval.Params{"k": tt.k})
			require.NoError(t, err)
			got, err := m.Predict(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKNN_CappedVoteTieBreaksLexicographically(t *testing.T) {
	// Balanced 10/10 clusters: capping k to the full training set ties the
	// vote, which resolves to the lexicographically smallest label.
	m, err := KNN{}.Train(context.Background(), twoClusters(20), eval.Params{"k": 1000})
	require.NoError(t, err)
	got, err := m.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, "high", got)
}

func TestKNN_ParamValidation(t *testing.T) {
	ds := twoClusters(10)
	_, err := KNN{}.Train(context.Background(), ds, eval.Params{"k": 0})
	assert.Error(t, err)
	_, err = KNN{}.Train(context.Background(), ds, eval.Params{"power": 0})
	assert.Error(t, err)
	_, err = KNN{}.Train(context.Background(), eval.NewMemDataset(nil), nil)
	assert.Error(t, err)
}

func TestKNN_Deterministic(t *testing.T) {
	// Identical training and query: identical prediction, run to run.
	ds := twoClusters(30)
	for i := 0; i < 3; i++ {
		m, err := KNN{}.Train(context.Background(), ds, eval.Params{"k": 3})
		require.NoError(t, err)
		got, err := m.Predict([]float64{5, 5})
		require.NoError(t, err)
		first, err := KNN{}.Train(context.Background(), ds, eval.Params{"k": 3})
		require.NoError(t, err)
		again, err := first.Predict([]float64{5, 5})
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}
