package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfold/gridfold/eval"
)

func specFixture() *eval.ExperimentSpec {
	return &eval.ExperimentSpec{
		Seed:    1,
		Folds:   3,
		Dataset: eval.DatasetSpec{Format: "csv", Path: "spec.csv"},
		Base: eval.EngineParams{
			Algorithms: []eval.AlgorithmParams{{Name: "knn", Params: eval.Params{"k": 3}}},
		},
	}
}

func TestApplyOverrides_OnlyChangedFlags(t *testing.T) {
	// GIVEN a spec and a run command with two flags set
	spec := specFixture()
	require.NoError(t, runCmd.Flags().Set("folds", "10"))
	require.NoError(t, runCmd.Flags().Set("dataset", "cli.csv"))

	// WHEN applying overrides
	applyOverrides(runCmd, spec)

	// THEN changed flags win and untouched spec fields survive
	assert.Equal(t, 10, spec.Folds)
	assert.Equal(t, "cli.csv", spec.Dataset.Path)
	assert.Equal(t, int64(1), spec.Seed, "seed flag not set, spec value kept")
}

func TestCheckAlgorithms(t *testing.T) {
	good := specFixture().ParamsList()
	assert.NoError(t, checkAlgorithms(good))

	bad := []eval.EngineParams{{
		Name:       "c1",
		Algorithms: []eval.AlgorithmParams{{Name: "naive-bayes"}},
	}}
	err := checkAlgorithms(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown algorithm "naive-bayes"`)
}

func TestBuildController_DefaultsAndNames(t *testing.T) {
	spec := specFixture()

	// Defaults: accuracy + mean, first serving, no preparator.
	controller, err := buildController(spec)
	require.NoError(t, err)
	assert.IsType(t, eval.Accuracy{}, controller.Evaluator.Metric.Pointwise)
	assert.IsType(t, eval.MeanAggregator{}, controller.Evaluator.Metric.Aggregator)
	assert.Nil(t, controller.Evaluator.FoldCombiner)
	assert.Nil(t, controller.Evaluator.Engine.Preparator)

	// Named policies resolve.
	spec.Metric = "squared-error"
	spec.ConfigAggregator = "weighted-mean"
	spec.Serving = "majority-vote"
	spec.Preparator = "subsample"
	controller, err = buildController(spec)
	require.NoError(t, err)
	assert.IsType(t, eval.SquaredError{}, controller.Evaluator.Metric.Pointwise)
	assert.IsType(t, eval.WeightedMeanAggregator{}, controller.Evaluator.FoldCombiner)
	assert.IsType(t, eval.MajorityVoteServing{}, controller.Evaluator.Engine.Serving)
	assert.NotNil(t, controller.Evaluator.Engine.Preparator)

	// Unknown names fail.
	spec.Metric = "f1"
	_, err = buildController(spec)
	assert.Error(t, err)
}
