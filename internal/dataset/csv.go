// Package dataset loads the course's training data: the 2-feature CSV
// used by the gradient descent lesson and MNIST-format image sets used
// by the classifier lessons.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/armelito60/IntroToDLPyTorch/internal/descent"
)

// LoadCSV reads a file of "x1,x2,label" rows into points. A leading
// row that does not parse as numbers is treated as a header and
// skipped; any other malformed row is an error naming its line.
func LoadCSV(path string) ([]descent.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no rows", path)
	}

	points := make([]descent.Point, 0, len(records))
	for i, record := range records {
		p, err := parsePoint(record)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}
	return points, nil
}

func parsePoint(record []string) (descent.Point, error) {
	x1, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return descent.Point{}, fmt.Errorf("bad x1 %q", record[0])
	}
	x2, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return descent.Point{}, fmt.Errorf("bad x2 %q", record[1])
	}
	label, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return descent.Point{}, fmt.Errorf("bad label %q", record[2])
	}
	if label != 0 && label != 1 {
		return descent.Point{}, fmt.Errorf("label must be 0 or 1, got %v", label)
	}
	return descent.Point{X1: x1, X2: x2, Label: label}, nil
}
