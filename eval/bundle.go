package eval

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExperimentSpec is the declarative form of a search run, loadable from a
// YAML file. It names the metric and aggregation policies, the dataset
// source, the fold setup, and the configuration list as a base plus
// explicit variant overrides (copy-and-override, never mutation).
type ExperimentSpec struct {
	Name    string `yaml:"name,omitempty"`
	Seed    int64  `yaml:"seed"`
	Folds   int    `yaml:"folds"`
	Workers int    `yaml:"workers,omitempty"` // 0 = GOMAXPROCS
	Shuffle bool   `yaml:"shuffle,omitempty"` // seeded pre-shuffle before fold assignment

	Metric           string `yaml:"metric,omitempty"`            // pointwise metric name (default "accuracy")
	FoldAggregator   string `yaml:"fold_aggregator,omitempty"`   // pointwise→fold policy (default "mean")
	ConfigAggregator string `yaml:"config_aggregator,omitempty"` // fold→config policy (default: fold_aggregator)
	Serving          string `yaml:"serving,omitempty"`           // serving policy name (default "first")
	Preparator       string `yaml:"preparator,omitempty"`        // preparator name (default none)

	Dataset DatasetSpec `yaml:"dataset"`

	Base     EngineParams  `yaml:"base"`
	Variants []ParamsPatch `yaml:"variants,omitempty"`
}

// DatasetSpec points at the labeled source data.
type DatasetSpec struct {
	Format        string `yaml:"format"` // "csv" or "json"
	Path          string `yaml:"path"`
	LabelField    string `yaml:"label_field,omitempty"`    // csv column / json field (default "label")
	FeaturesField string `yaml:"features_field,omitempty"` // json array field (default "features")
}

// ValidDatasetFormats is the set of recognized dataset source formats.
var ValidDatasetFormats = map[string]bool{"csv": true, "json": true}

// ParamsPatch is one variant in the search list: a named set of stage
// overrides applied on top of the base configuration. Map-valued groups
// merge key-by-key into the base group. A non-empty Algorithms list
// replaces the base's list positionally, but an entry whose name matches
// the base entry at the same position merges its params into the base
// entry's, so a variant can override a single hyperparameter.
type ParamsPatch struct {
	Name       string            `yaml:"name"`
	DataSource Params            `yaml:"datasource,omitempty"`
	Preparator Params            `yaml:"preparator,omitempty"`
	Algorithms []AlgorithmParams `yaml:"algorithms,omitempty"`
	Serving    Params            `yaml:"serving,omitempty"`
}

// LoadExperimentSpec reads and parses a YAML experiment file.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	var spec ExperimentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}
	return &spec, nil
}

// Validate checks policy names and structural requirements. Fold-count
// range against the dataset size is checked later by Split, once the
// dataset is loaded.
func (s *ExperimentSpec) Validate() error {
	if s.Folds < 2 {
		return fmt.Errorf("folds must be >= 2, got %d", s.Folds)
	}
	if !ValidMetrics[s.Metric] {
		return fmt.Errorf("unknown metric %q", s.Metric)
	}
	if !ValidAggregators[s.FoldAggregator] {
		return fmt.Errorf("unknown fold_aggregator %q", s.FoldAggregator)
	}
	if !ValidAggregators[s.ConfigAggregator] {
		return fmt.Errorf("unknown config_aggregator %q", s.ConfigAggregator)
	}
	if !ValidServings[s.Serving] {
		return fmt.Errorf("unknown serving policy %q", s.Serving)
	}
	if !ValidPreparators[s.Preparator] {
		return fmt.Errorf("unknown preparator %q", s.Preparator)
	}
	if !ValidDatasetFormats[s.Dataset.Format] {
		return fmt.Errorf("unknown dataset format %q", s.Dataset.Format)
	}
	if s.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required")
	}
	if len(s.Base.Algorithms) == 0 {
		return fmt.Errorf("base configuration needs at least one algorithm entry")
	}
	for i, v := range s.Variants {
		if v.Name == "" {
			return fmt.Errorf("variant %d has no name", i)
		}
	}
	return nil
}

// ParamsList expands base + variants into the ordered search list. With no
// variants the list is the base alone. Each variant derives a fresh
// configuration value from the base, so candidates never alias each
// other's parameter maps.
func (s *ExperimentSpec) ParamsList() []EngineParams {
	if len(s.Variants) == 0 {
		base := s.Base.Clone()
		if base.Name == "" {
			base.Name = "base"
		}
		return []EngineParams{base}
	}

	list := make([]EngineParams, 0, len(s.Variants))
	for _, v := range s.Variants {
		p := s.Base.Clone()
		p.Name = v.Name
		p.DataSource = p.DataSource.merge(v.DataSource)
		p.Preparator = p.Preparator.merge(v.Preparator)
		p.Serving = p.Serving.merge(v.Serving)
		if len(v.Algorithms) > 0 {
			merged := make([]AlgorithmParams, len(v.Algorithms))
			for i, a := range v.Algorithms {
				if i < len(s.Base.Algorithms) && s.Base.Algorithms[i].Name == a.Name {
					merged[i] = AlgorithmParams{Name: a.Name, Params: s.Base.Algorithms[i].Params.merge(a.Params)}
					continue
				}
				merged[i] = AlgorithmParams{Name: a.Name, Params: a.Params.clone()}
			}
			p.Algorithms = merged
		}
		list = append(list, p)
	}
	return list
}
