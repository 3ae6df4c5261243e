// Package source provides dataset loaders for the eval engine. Every
// loader produces an in-memory dataset whose order matches the source
// file, the stable enumeration order fold assignment depends on.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gridfold/gridfold/eval"
)

// Load reads the dataset named by spec and returns it as an in-memory
// Dataset with stable, source-file order.
func Load(spec eval.DatasetSpec) (eval.Dataset, error) {
	switch spec.Format {
	case "csv":
		return LoadCSV(spec.Path, spec.LabelField)
	case "json":
		return LoadJSON(spec.Path, spec.LabelField, spec.FeaturesField)
	default:
		return nil, fmt.Errorf("unknown dataset format %q", spec.Format)
	}
}

// LoadCSV reads a headered CSV file of labeled points. labelField names
// the label column; empty means the last column. Every other column must
// be numeric and becomes a feature, in header order. Point IDs are
// "row-N" by data row index.
func LoadCSV(path, labelField string) (eval.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	labelCol := len(header) - 1
	if labelField != "" {
		labelCol = -1
		for i, name := range header {
			if name == labelField {
				labelCol = i
				break
			}
		}
		if labelCol < 0 {
			return nil, fmt.Errorf("label column %q not found in header %v", labelField, header)
		}
	}

	var points []eval.DataPoint
	for row := 0; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}
		features := make([]float64, 0, len(record)-1)
		for i, field := range record {
			if i == labelCol {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row, header[i], err)
			}
			features = append(features, v)
		}
		points = append(points, eval.DataPoint{
			ID:       fmt.Sprintf("row-%d", row),
			Features: features,
			Label:    record[labelCol],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}
	return eval.NewMemDataset(points), nil
}
