package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gridfold/gridfold/eval"
)

var validateSpecPath string

// validateCmd checks an experiment spec and prints the expanded
// configuration list without running anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an experiment spec and print the expanded configuration list",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := eval.LoadExperimentSpec(validateSpecPath)
		if err != nil {
			logrus.Fatalf("Failed to load experiment spec: %v", err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid experiment spec: %v", err)
		}
		list := spec.ParamsList()
		if err := checkAlgorithms(list); err != nil {
			logrus.Fatalf("Invalid experiment spec: %v", err)
		}

		fmt.Printf("# %d configuration(s), %d folds\n", len(list), spec.Folds)
		out, err := yaml.Marshal(list)
		if err != nil {
			logrus.Fatalf("Failed to render configurations: %v", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			logrus.Fatalf("Failed to write output: %v", err)
		}
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateSpecPath, "spec", "", "Path to the experiment spec YAML")
	_ = validateCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(validateCmd)
}
