package eval

import (
	"reflect"
)

// Params is one pipeline stage's named parameters. Values come from YAML or
// programmatic construction; numeric parameters may arrive as int or float64
// depending on how they were written, so readers go through Float/Int.
type Params map[string]any

// Float reads a numeric parameter, accepting int or float64 representations.
// Returns def when the key is absent or non-numeric.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Int reads an integer parameter. Returns def when absent or non-numeric.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// String reads a string parameter. Returns def when absent or not a string.
func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// clone deep-copies one level of the map. Nested values are shared; stage
// params are flat name→scalar maps in practice.
func (p Params) clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// merge returns a copy of p with every entry of over written on top.
func (p Params) merge(over Params) Params {
	if len(over) == 0 {
		return p.clone()
	}
	out := p.clone()
	if out == nil {
		out = make(Params, len(over))
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// AlgorithmParams names one algorithm entry of a configuration together
// with its parameters. A configuration may carry several entries; serving
// combines their per-input predictions.
type AlgorithmParams struct {
	Name   string `yaml:"name"`
	Params Params `yaml:"params,omitempty"`
}

// EngineParams is one candidate configuration: an immutable bundle of
// per-stage parameter groups. Two configurations are distinguished by
// value (Equal), never by identity. Derive variants with the With*
// methods rather than mutating — every With* call copies.
type EngineParams struct {
	Name       string            `yaml:"name,omitempty"` // optional label for reports
	DataSource Params            `yaml:"datasource,omitempty"`
	Preparator Params            `yaml:"preparator,omitempty"`
	Algorithms []AlgorithmParams `yaml:"algorithms"`
	Serving    Params            `yaml:"serving,omitempty"`
}

// Label returns the configuration's display name, falling back to the
// first algorithm name when unnamed.
func (p EngineParams) Label() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.Algorithms) > 0 {
		return p.Algorithms[0].Name
	}
	return "unnamed"
}

// Clone deep-copies the configuration so the copy can be overridden
// without aliasing the original's parameter maps.
func (p EngineParams) Clone() EngineParams {
	out := p
	out.DataSource = p.DataSource.clone()
	out.Preparator = p.Preparator.clone()
	out.Serving = p.Serving.clone()
	out.Algorithms = make([]AlgorithmParams, len(p.Algorithms))
	for i, a := range p.Algorithms {
		out.Algorithms[i] = AlgorithmParams{Name: a.Name, Params: a.Params.clone()}
	}
	return out
}

// Equal reports value-equality of two configurations. Name is part of the
// value: two otherwise identical configurations with different labels are
// distinct candidates.
func (p EngineParams) Equal(o EngineParams) bool {
	return reflect.DeepEqual(p, o)
}

// WithName returns a copy labeled name.
func (p EngineParams) WithName(name string) EngineParams {
	out := p.Clone()
	out.Name = name
	return out
}

// WithAlgorithmParam returns a copy with one algorithm parameter overridden.
// The entry index must be valid; reference configurations have one entry.
func (p EngineParams) WithAlgorithmParam(entry int, key string, value any) EngineParams {
	out := p.Clone()
	if out.Algorithms[entry].Params == nil {
		out.Algorithms[entry].Params = Params{}
	}
	out.Algorithms[entry].Params[key] = value
	return out
}

// WithPreparatorParam returns a copy with one preparator parameter overridden.
func (p EngineParams) WithPreparatorParam(key string, value any) EngineParams {
	out := p.Clone()
	if out.Preparator == nil {
		out.Preparator = Params{}
	}
	out.Preparator[key] = value
	return out
}

// WithServingParam returns a copy with one serving parameter overridden.
func (p EngineParams) WithServingParam(key string, value any) EngineParams {
	out := p.Clone()
	if out.Serving == nil {
		out.Serving = Params{}
	}
	out.Serving[key] = value
	return out
}
