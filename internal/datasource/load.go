package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/metrics"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// Load reads a labeled dataset from the given path, detecting the source
// kind from the extension.
func Load(path string) (*dataset.Dataset, []model.Label, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, nil, err
	}

	done := metrics.Stopwatch(metrics.DatasetLoad, 0)
	var ds *dataset.Dataset
	var labels []model.Label
	switch kind {
	case SourceTypeCSV:
		ds, labels, err = LoadCSV(path)
	case SourceTypeSQLite:
		ds, labels, err = LoadSQLite(path)
	default:
		return nil, nil, fmt.Errorf("unhandled source type %q", kind)
	}
	if err != nil {
		return nil, nil, err
	}
	done(ds.NumRows())
	return ds, labels, nil
}

// LoadCSV reads a CSV file with a header row. Every column but the last
// must parse as a float feature; the last column is the class label.
func LoadCSV(path string) (*dataset.Dataset, []model.Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader) (*dataset.Dataset, []model.Label, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("csv needs at least one feature column and a label column, got %d columns", len(header))
	}
	width := len(header) - 1

	var rows [][]float64
	var labels []model.Label
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		row := make([]float64, width)
		for i := 0; i < width; i++ {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("csv line %d column %q: %w", line, header[i], err)
			}
			row[i] = v
		}
		rows = append(rows, row)
		labels = append(labels, model.Label(rec[width]))
	}

	ds, err := dataset.New(rows)
	if err != nil {
		return nil, nil, err
	}
	return ds, labels, nil
}
