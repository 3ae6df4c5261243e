package eval

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FoldScore is one fold's outcome for one configuration. Err non-nil means
// the fold is missing: its pipeline failed and Score is undefined.
type FoldScore struct {
	Fold  int
	Score float64
	Size  int   // validation set size, the weight for weighted aggregation
	Err   error // *PipelineError when the fold failed
}

// EvaluationRecord is one configuration's completed evaluation: the ordered
// per-fold scores (including missing-fold markers) and the aggregate over
// the successful subset. Immutable after aggregation.
type EvaluationRecord struct {
	Params     EngineParams
	FoldScores []FoldScore
	Aggregate  float64
}

// MissingFolds returns the indices of folds whose pipeline failed.
func (r *EvaluationRecord) MissingFolds() []int {
	var missing []int
	for _, fs := range r.FoldScores {
		if fs.Err != nil {
			missing = append(missing, fs.Fold)
		}
	}
	return missing
}

// Evaluator scores one configuration across a precomputed fold split.
// Splitting is logically prior and shared across configurations, so the
// fold pairs are accepted as input rather than recomputed per candidate.
type Evaluator struct {
	Engine *Engine
	Metric Metric

	// FoldCombiner aggregates per-fold scores into the configuration
	// score. Nil reuses Metric.Aggregator, the default policy.
	FoldCombiner Aggregator

	// Workers bounds Evaluate's own fold fan-out. 0 = GOMAXPROCS.
	// SearchController schedules fold units itself and does not use this.
	Workers int
}

// EvaluateFold runs the pipeline and metric for one (configuration, fold)
// unit. Failures are captured in the returned FoldScore, attributed to the
// configuration and fold, never propagated.
func (ev *Evaluator) EvaluateFold(ctx context.Context, params EngineParams, fold FoldPair) FoldScore {
	fs := FoldScore{Fold: fold.Fold, Size: fold.Validation.Len()}

	preds, err := ev.Engine.Run(ctx, params, fold.Training, fold.Validation)
	if err != nil {
		fs.Err = &PipelineError{Params: params, Fold: fold.Fold, Cause: err}
		return fs
	}

	scores := make([]float64, len(preds))
	for i, p := range preds {
		s, err := ev.Metric.Pointwise.Calculate(p)
		if err != nil {
			fs.Err = &PipelineError{Params: params, Fold: fold.Fold, Cause: err}
			return fs
		}
		scores[i] = s
	}
	fs.Score = ev.Metric.Aggregator.Combine(scores, nil)
	return fs
}

// Aggregate combines per-fold outcomes into the configuration's record.
// Missing folds are excluded from aggregation and noted in the record; if
// every fold failed the configuration is not viable and *EvaluationError
// is returned instead.
func (ev *Evaluator) Aggregate(params EngineParams, foldScores []FoldScore) (*EvaluationRecord, error) {
	var (
		scores  []float64
		weights []float64
		causes  []error
	)
	for _, fs := range foldScores {
		if fs.Err != nil {
			causes = append(causes, fs.Err)
			continue
		}
		scores = append(scores, fs.Score)
		weights = append(weights, float64(fs.Size))
	}
	if len(scores) == 0 {
		return nil, &EvaluationError{Params: params, Causes: causes}
	}
	if len(causes) > 0 {
		logrus.Warnf("config %q: aggregating over %d of %d folds (%d failed)",
			params.Label(), len(scores), len(foldScores), len(causes))
	}

	combiner := ev.FoldCombiner
	if combiner == nil {
		combiner = ev.Metric.Aggregator
	}
	return &EvaluationRecord{
		Params:     params,
		FoldScores: foldScores,
		Aggregate:  combiner.Combine(scores, weights),
	}, nil
}

// Evaluate runs the full k-fold cycle for one configuration: every fold
// unit concurrently (bounded by Workers), then the per-configuration join
// and aggregation. Fold failures follow the partial-failure policy of
// Aggregate; only context cancellation is returned as-is.
func (ev *Evaluator) Evaluate(ctx context.Context, params EngineParams, folds []FoldPair) (*EvaluationRecord, error) {
	workers := ev.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]FoldScore, len(folds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, fold := range folds {
		i, fold := i, fold
		g.Go(func() error {
			results[i] = ev.EvaluateFold(gctx, params, fold)
			return nil
		})
	}
	// Join barrier: aggregation waits for every fold unit.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ev.Aggregate(params, results)
}
