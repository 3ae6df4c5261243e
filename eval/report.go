package eval

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunReport is the audit output of one search run: the winning
// configuration, the full ranking of viable candidates, and the candidates
// excluded because every fold failed. Owned by the caller; the search
// holds no state across runs.
type RunReport struct {
	Best    *EvaluationRecord
	Ranking []*EvaluationRecord // viable candidates, best first
	Failed  []*EvaluationError  // excluded candidates, in input order
	Folds   int
}

// BestScore returns the winning aggregate score.
func (r *RunReport) BestScore() float64 { return r.Best.Aggregate }

// BestParamsYAML renders the winning configuration as YAML, the full
// structured value rather than just its label.
func (r *RunReport) BestParamsYAML() (string, error) {
	out, err := yaml.Marshal(r.Best.Params)
	if err != nil {
		return "", fmt.Errorf("rendering best params: %w", err)
	}
	return string(out), nil
}

// reportView is the YAML shape of a RunReport: plain data only, with
// missing folds and failure causes rendered as strings.
type reportView struct {
	Best      EngineParams `yaml:"best"`
	BestScore float64      `yaml:"best_score"`
	Folds     int          `yaml:"folds"`
	Ranking   []recordView `yaml:"ranking"`
	Failed    []failedView `yaml:"failed,omitempty"`
}

type recordView struct {
	Config       string       `yaml:"config"`
	Aggregate    float64      `yaml:"aggregate"`
	FoldScores   []*float64   `yaml:"fold_scores"` // nil entry = missing fold
	MissingFolds []int        `yaml:"missing_folds,omitempty"`
	Params       EngineParams `yaml:"params"`
}

type failedView struct {
	Config string   `yaml:"config"`
	Causes []string `yaml:"causes"`
}

// YAML renders the full report: winning configuration, ranking with all
// fold scores, and per-configuration failures. Enough for a caller to
// audit and re-derive the ranking.
func (r *RunReport) YAML() ([]byte, error) {
	view := reportView{
		Best:      r.Best.Params,
		BestScore: r.Best.Aggregate,
		Folds:     r.Folds,
	}
	for _, rec := range r.Ranking {
		rv := recordView{
			Config:       rec.Params.Label(),
			Aggregate:    rec.Aggregate,
			MissingFolds: rec.MissingFolds(),
			Params:       rec.Params,
		}
		for _, fs := range rec.FoldScores {
			if fs.Err != nil {
				rv.FoldScores = append(rv.FoldScores, nil)
				continue
			}
			s := fs.Score
			rv.FoldScores = append(rv.FoldScores, &s)
		}
		view.Ranking = append(view.Ranking, rv)
	}
	for _, f := range r.Failed {
		fv := failedView{Config: f.Params.Label()}
		for _, c := range f.Causes {
			fv.Causes = append(fv.Causes, c.Error())
		}
		view.Failed = append(view.Failed, fv)
	}
	return yaml.Marshal(view)
}

// Print displays the ranked results at the end of a run.
func (r *RunReport) Print() {
	fmt.Println("=== Evaluation Results ===")
	fmt.Printf("Configurations       : %d evaluated, %d failed\n", len(r.Ranking)+len(r.Failed), len(r.Failed))
	fmt.Printf("Folds                : %d\n", r.Folds)
	fmt.Println()
	for rank, rec := range r.Ranking {
		fmt.Printf("%2d. %-24s %.4f  folds=[%s]\n", rank+1, rec.Params.Label(), rec.Aggregate, foldScoreList(rec.FoldScores))
	}
	for _, f := range r.Failed {
		fmt.Printf(" -- %-24s FAILED (all %d folds)\n", f.Params.Label(), len(f.Causes))
	}
	fmt.Println()
	fmt.Printf("Best configuration   : %s\n", r.Best.Params.Label())
	fmt.Printf("Best aggregate score : %.4f\n", r.Best.Aggregate)
}

func foldScoreList(scores []FoldScore) string {
	parts := make([]string, len(scores))
	for i, fs := range scores {
		if fs.Err != nil {
			parts[i] = "missing"
			continue
		}
		parts[i] = fmt.Sprintf("%.4f", fs.Score)
	}
	return strings.Join(parts, " ")
}
