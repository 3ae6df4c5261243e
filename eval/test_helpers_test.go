package eval

import (
	"context"
	"fmt"
)

// parityLabel is the ground truth for synthetic datasets: "even" or "odd"
// by position.
func parityLabel(i int) string {
	if i%2 == 0 {
		return "even"
	}
	return "odd"
}

// makeDataset builds n synthetic points whose first feature encodes the
// position, so scripted models can derive the true label from the input.
func makeDataset(n int) *MemDataset {
	points := make([]DataPoint, n)
	for i := range points {
		points[i] = DataPoint{
			ID:       fmt.Sprintf("p%d", i),
			Features: []float64{float64(i)},
			Label:    parityLabel(i),
		}
	}
	return NewMemDataset(points)
}

// scriptedAlgorithm is a deterministic training collaborator for tests.
//
// Parameters:
//   - "accuracy": fraction of positions predicted correctly — the model is
//     right for positions p with p mod 100 < accuracy*100 (default 1.0)
//   - "train_error": Train fails outright when true
//   - "fail_point": Predict fails on this position (default -1, never)
type scriptedAlgorithm struct{}

func (scriptedAlgorithm) Train(_ context.Context, training Dataset, params Params) (Model, error) {
	if v, ok := params["train_error"].(bool); ok && v {
		return nil, fmt.Errorf("scripted training failure")
	}
	if training.Len() == 0 {
		return nil, fmt.Errorf("empty training set")
	}
	return scriptedModel{
		cut:       int(params.Float("accuracy", 1.0) * 100),
		failPoint: params.Int("fail_point", -1),
	}, nil
}

type scriptedModel struct {
	cut       int
	failPoint int
}

func (m scriptedModel) Predict(features []float64) (string, error) {
	pos := int(features[0])
	if pos == m.failPoint {
		return "", fmt.Errorf("scripted prediction failure at position %d", pos)
	}
	if pos%100 < m.cut {
		return parityLabel(pos), nil
	}
	// Wrong on purpose: flip the parity label.
	if parityLabel(pos) == "even" {
		return "odd", nil
	}
	return "even", nil
}

// scriptedEngine wires the scripted algorithm under the name "scripted".
func scriptedEngine() *Engine {
	return &Engine{Algorithms: map[string]Algorithm{"scripted": scriptedAlgorithm{}}}
}

// scriptedParams builds a one-entry configuration for the scripted
// algorithm.
func scriptedParams(name string, params Params) EngineParams {
	return EngineParams{
		Name:       name,
		Algorithms: []AlgorithmParams{{Name: "scripted", Params: params}},
	}
}
