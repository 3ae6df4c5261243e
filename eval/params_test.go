package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParams() EngineParams {
	return EngineParams{
		Name:       "base",
		Preparator: Params{"max_points": 50},
		Algorithms: []AlgorithmParams{{Name: "knn", Params: Params{"k": 3}}},
		Serving:    Params{"mode": "strict"},
	}
}

func TestEngineParams_WithAlgorithmParam_CopiesNotMutates(t *testing.T) {
	// GIVEN a base configuration
	base := baseParams()

	// WHEN deriving a variant with one hyperparameter overridden
	variant := base.WithAlgorithmParam(0, "k", 7).WithName("k7")

	// THEN the variant carries the override
	assert.Equal(t, 7, variant.Algorithms[0].Params["k"])
	assert.Equal(t, "k7", variant.Name)

	// THEN the base is untouched — no aliasing between candidates
	assert.Equal(t, 3, base.Algorithms[0].Params["k"])
	assert.Equal(t, "base", base.Name)
}

func TestEngineParams_WithStageParams_NilGroups(t *testing.T) {
	// Overriding a stage whose group is nil must allocate, not panic.
	p := EngineParams{Algorithms: []AlgorithmParams{{Name: "knn"}}}

	withAlgo := p.WithAlgorithmParam(0, "k", 5)
	assert.Equal(t, 5, withAlgo.Algorithms[0].Params["k"])

	withPrep := p.WithPreparatorParam("max_points", 10)
	assert.Equal(t, 10, withPrep.Preparator["max_points"])

	withServing := p.WithServingParam("mode", "loose")
	assert.Equal(t, "loose", withServing.Serving["mode"])
}

func TestEngineParams_Equal_ByValue(t *testing.T) {
	a := baseParams()
	b := baseParams()

	// Distinct values, equal by value.
	assert.True(t, a.Equal(b))

	// Any field difference breaks equality.
	assert.False(t, a.Equal(b.WithAlgorithmParam(0, "k", 4)))
	assert.False(t, a.Equal(b.WithName("other")))
}

func TestEngineParams_Clone_DeepCopiesGroups(t *testing.T) {
	a := baseParams()
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Preparator["max_points"] = 99
	b.Algorithms[0].Params["k"] = 99
	assert.Equal(t, 50, a.Preparator["max_points"])
	assert.Equal(t, 3, a.Algorithms[0].Params["k"])
}

func TestEngineParams_Label(t *testing.T) {
	assert.Equal(t, "base", baseParams().Label())
	assert.Equal(t, "knn", EngineParams{Algorithms: []AlgorithmParams{{Name: "knn"}}}.Label())
	assert.Equal(t, "unnamed", EngineParams{}.Label())
}

func TestParams_TypedAccessors(t *testing.T) {
	p := Params{"k": 3, "rate": 0.5, "name": "abc", "big": int64(9)}

	assert.Equal(t, 3.0, p.Float("k", -1))
	assert.Equal(t, 0.5, p.Float("rate", -1))
	assert.Equal(t, 9.0, p.Float("big", -1))
	assert.Equal(t, -1.0, p.Float("missing", -1))
	assert.Equal(t, -1.0, p.Float("name", -1), "non-numeric falls back to default")

	assert.Equal(t, 3, p.Int("k", -1))
	assert.Equal(t, 0, p.Int("rate", -1), "float64 truncates")
	assert.Equal(t, -1, p.Int("missing", -1))

	assert.Equal(t, "abc", p.String("name", "def"))
	assert.Equal(t, "def", p.String("k", "def"))
}
