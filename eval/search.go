package eval

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SearchController iterates an ordered list of candidate configurations,
// evaluates each over the shared fold split, and selects the one with the
// best aggregate score. Input order is the stable tie-break: of two equal
// aggregates, the earlier configuration ranks higher and wins.
type SearchController struct {
	Evaluator *Evaluator

	// Workers bounds concurrency over the full |configs| × k unit matrix.
	// Every (configuration, fold) pair is an independent unit with no
	// shared mutable state. 0 = GOMAXPROCS.
	Workers int
}

// Search evaluates every configuration and returns the run report:
// best configuration, best score, and the full ranking with enough per-
// configuration detail to re-derive it. Configurations whose folds all
// failed are excluded from the ranking and listed as failed; if every
// configuration failed, *NoViableConfigurationError is returned.
func (sc *SearchController) Search(ctx context.Context, paramsList []EngineParams, folds []FoldPair) (*RunReport, error) {
	if len(paramsList) == 0 {
		return nil, fmt.Errorf("empty configuration list")
	}
	workers := sc.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logrus.Infof("searching %d configurations x %d folds (%d units, %d workers)",
		len(paramsList), len(folds), len(paramsList)*len(folds), workers)
	start := time.Now()

	// Fan out the whole unit matrix; results are written into per-
	// configuration slots, so the only synchronization is the join.
	results := make([][]FoldScore, len(paramsList))
	for ci := range results {
		results[ci] = make([]FoldScore, len(folds))
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for ci, params := range paramsList {
		ci, params := ci, params
		for fi, fold := range folds {
			fi, fold := fi, fold
			g.Go(func() error {
				results[ci][fi] = sc.Evaluator.EvaluateFold(gctx, params, fold)
				return nil
			})
		}
	}
	// Run-level join barrier: ranking waits for every unit.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Per-configuration aggregation, in input order.
	var (
		records  []*EvaluationRecord
		failed   []*EvaluationError
		failures []error
	)
	for ci, params := range paramsList {
		rec, err := sc.Evaluator.Aggregate(params, results[ci])
		if err != nil {
			evalErr := err.(*EvaluationError)
			logrus.Warnf("config %q excluded from ranking: %v", params.Label(), evalErr)
			failed = append(failed, evalErr)
			failures = append(failures, err)
			continue
		}
		logrus.Infof("config %q: aggregate score %.4f (missing folds: %v)",
			params.Label(), rec.Aggregate, rec.MissingFolds())
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &NoViableConfigurationError{Failures: failures}
	}

	// Stable sort keeps input order among equal aggregates, so the first
	// configuration achieving the max is ranked first and selected.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Aggregate > records[j].Aggregate
	})

	logrus.Infof("search complete in %v: best %q with score %.4f",
		time.Since(start).Round(time.Millisecond), records[0].Params.Label(), records[0].Aggregate)

	return &RunReport{
		Best:    records[0],
		Ranking: records,
		Failed:  failed,
		Folds:   len(folds),
	}, nil
}
