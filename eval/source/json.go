package source

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/gridfold/gridfold/eval"
)

// LoadJSON reads a JSON array of labeled points. Each element carries a
// label field (default "label") and a numeric-array features field
// (default "features"). An optional "id" field overrides the positional
// "row-N" point ID. Array order is the dataset order.
func LoadJSON(path, labelField, featuresField string) (eval.Dataset, error) {
	if labelField == "" {
		labelField = "label"
	}
	if featuresField == "" {
		featuresField = "features"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("dataset %s: top-level JSON value must be an array", path)
	}

	var points []eval.DataPoint
	var loadErr error
	root.ForEach(func(_, elem gjson.Result) bool {
		row := len(points)
		label := elem.Get(labelField)
		if !label.Exists() {
			loadErr = fmt.Errorf("element %d: missing %q field", row, labelField)
			return false
		}
		raw := elem.Get(featuresField)
		if !raw.IsArray() {
			loadErr = fmt.Errorf("element %d: %q must be a numeric array", row, featuresField)
			return false
		}
		var features []float64
		for i, v := range raw.Array() {
			if v.Type != gjson.Number {
				loadErr = fmt.Errorf("element %d: %s[%d] is not a number: %s", row, featuresField, i, v.Raw)
				return false
			}
			features = append(features, v.Float())
		}
		id := elem.Get("id").String()
		if id == "" {
			id = fmt.Sprintf("row-%d", row)
		}
		points = append(points, eval.DataPoint{ID: id, Features: features, Label: label.String()})
		return true
	})
	if loadErr != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, loadErr)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("dataset %s has no elements", path)
	}
	return eval.NewMemDataset(points), nil
}
