package eval

import (
	"fmt"
	"strings"
)

// InvalidFoldCountError reports a fold count outside [2, dataset size].
// It is fatal and raised before any training work starts.
type InvalidFoldCountError struct {
	K           int
	DatasetSize int
}

func (e *InvalidFoldCountError) Error() string {
	return fmt.Sprintf("invalid fold count %d for dataset of size %d (need 2 <= k <= size)", e.K, e.DatasetSize)
}

// PipelineError reports a training or prediction failure for one
// (configuration, fold) unit. It is isolated: it aborts scoring of that
// unit only, never other folds or other configurations.
type PipelineError struct {
	Params EngineParams
	Fold   int
	Cause  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed for config %q fold %d: %v", e.Params.Label(), e.Fold, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }

// EvaluationError reports that every fold of one configuration failed.
// The configuration is excluded from the ranking; the run continues.
type EvaluationError struct {
	Params EngineParams
	Causes []error // one *PipelineError per failed fold
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("all %d folds failed for config %q: %v", len(e.Causes), e.Params.Label(), e.Causes[0])
}

func (e *EvaluationError) Unwrap() error {
	if len(e.Causes) == 0 {
		return nil
	}
	return e.Causes[0]
}

// NoViableConfigurationError reports that every configuration in a search
// failed to evaluate. Fatal for the run.
type NoViableConfigurationError struct {
	Failures []error // one *EvaluationError per configuration, in input order
}

func (e *NoViableConfigurationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no viable configuration: all %d candidates failed", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  - %v", f)
	}
	return b.String()
}
