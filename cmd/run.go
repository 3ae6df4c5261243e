package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridfold/gridfold/eval"
	"github.com/gridfold/gridfold/eval/algo"
	"github.com/gridfold/gridfold/eval/source"
)

var (
	// CLI flags for the run command. Flags set on the command line
	// override the corresponding experiment spec fields.
	specPath    string // Path to the experiment spec YAML
	datasetPath string // Dataset path override
	folds       int    // Fold count override
	workers     int    // Worker limit override
	seed        int64  // Seed override for the fold shuffle
	shuffle     bool   // Pre-shuffle override
	outPath     string // Optional path for the full YAML report
	logLevel    string // Log verbosity level
)

// runCmd executes a parameter search from an experiment spec
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a k-fold parameter search",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := eval.LoadExperimentSpec(specPath)
		if err != nil {
			logrus.Fatalf("Failed to load experiment spec: %v", err)
		}
		applyOverrides(cmd, spec)
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid experiment spec: %v", err)
		}
		list := spec.ParamsList()
		if err := checkAlgorithms(list); err != nil {
			logrus.Fatalf("Invalid experiment spec: %v", err)
		}

		ds, err := source.Load(spec.Dataset)
		if err != nil {
			logrus.Fatalf("Failed to load dataset: %v", err)
		}
		logrus.Infof("Loaded %d points from %s", ds.Len(), spec.Dataset.Path)

		controller, err := buildController(spec)
		if err != nil {
			logrus.Fatalf("Failed to build engine: %v", err)
		}

		// Fold assignment is positional over the dataset order, behind a
		// seeded shuffle when requested.
		var foldPairs []eval.FoldPair
		if spec.Shuffle {
			rng := eval.NewPartitionedRNG(eval.NewRunKey(spec.Seed))
			foldPairs, err = eval.SplitShuffled(ds, spec.Folds, rng.ForSubsystem(eval.SubsystemShuffle))
		} else {
			foldPairs, err = eval.Split(ds, spec.Folds)
		}
		if err != nil {
			logrus.Fatalf("Fold split failed: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := controller.Search(ctx, list, foldPairs)
		if err != nil {
			logrus.Fatalf("Search failed: %v", err)
		}

		report.Print()
		best, err := report.BestParamsYAML()
		if err != nil {
			logrus.Fatalf("Failed to render best params: %v", err)
		}
		fmt.Println("Best params:")
		fmt.Print(best)

		if outPath != "" {
			out, err := report.YAML()
			if err != nil {
				logrus.Fatalf("Failed to render report: %v", err)
			}
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				logrus.Fatalf("Failed to write report: %v", err)
			}
			logrus.Infof("Report written to %s", outPath)
		}
	},
}

// applyOverrides copies changed CLI flags over the loaded spec.
func applyOverrides(cmd *cobra.Command, spec *eval.ExperimentSpec) {
	if cmd.Flags().Changed("dataset") {
		spec.Dataset.Path = datasetPath
	}
	if cmd.Flags().Changed("folds") {
		spec.Folds = folds
	}
	if cmd.Flags().Changed("workers") {
		spec.Workers = workers
	}
	if cmd.Flags().Changed("seed") {
		spec.Seed = seed
	}
	if cmd.Flags().Changed("shuffle") {
		spec.Shuffle = shuffle
	}
}

// checkAlgorithms verifies every algorithm entry names a registered
// training collaborator before any work starts.
func checkAlgorithms(list []eval.EngineParams) error {
	for _, p := range list {
		for _, entry := range p.Algorithms {
			if !algo.ValidAlgorithms[entry.Name] {
				return fmt.Errorf("config %q: unknown algorithm %q", p.Label(), entry.Name)
			}
		}
	}
	return nil
}

// buildController assembles the engine, evaluator, and search controller
// from the spec's named policies.
func buildController(spec *eval.ExperimentSpec) (*eval.SearchController, error) {
	pointwise, err := eval.NewPointwise(spec.Metric)
	if err != nil {
		return nil, err
	}
	foldAgg, err := eval.NewAggregator(spec.FoldAggregator)
	if err != nil {
		return nil, err
	}
	var configAgg eval.Aggregator
	if spec.ConfigAggregator != "" {
		configAgg, err = eval.NewAggregator(spec.ConfigAggregator)
		if err != nil {
			return nil, err
		}
	}
	serving, err := eval.NewServing(spec.Serving)
	if err != nil {
		return nil, err
	}
	preparator, err := eval.NewPreparator(spec.Preparator)
	if err != nil {
		return nil, err
	}

	evaluator := &eval.Evaluator{
		Engine: &eval.Engine{
			Preparator: preparator,
			Algorithms: algo.All(),
			Serving:    serving,
		},
		Metric:       eval.Metric{Pointwise: pointwise, Aggregator: foldAgg},
		FoldCombiner: configAgg,
		Workers:      spec.Workers,
	}
	return &eval.SearchController{Evaluator: evaluator, Workers: spec.Workers}, nil
}

// init sets up CLI flags and attaches `run` to `root`
func init() {
	runCmd.Flags().StringVar(&specPath, "spec", "", "Path to the experiment spec YAML")
	runCmd.Flags().StringVar(&datasetPath, "dataset", "", "Dataset path (overrides spec)")
	runCmd.Flags().IntVar(&folds, "folds", 5, "Number of folds (overrides spec)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Max concurrent (config, fold) units; 0 = GOMAXPROCS (overrides spec)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the fold shuffle (overrides spec)")
	runCmd.Flags().BoolVar(&shuffle, "shuffle", false, "Shuffle dataset order before fold assignment (overrides spec)")
	runCmd.Flags().StringVar(&outPath, "out", "", "Write the full YAML report to this path")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	_ = runCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(runCmd)
}
