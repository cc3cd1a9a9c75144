package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// instancesTable is the table a SQLite dataset source must provide. Any
// column layout works; the last column is the label, the rest must be
// numeric features.
const instancesTable = "instances"

// LoadSQLite reads the instances table of a SQLite database.
func LoadSQLite(path string) (*dataset.Dataset, []model.Label, error) {
	// Open in read-only mode; the pipeline never writes its inputs.
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", instancesTable))
	if err != nil {
		return nil, nil, fmt.Errorf("querying %s: %w", instancesTable, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading columns: %w", err)
	}
	if len(cols) < 2 {
		return nil, nil, fmt.Errorf("%s needs at least one feature column and a label column, got %d", instancesTable, len(cols))
	}
	width := len(cols) - 1

	var data [][]float64
	var labels []model.Label
	for rows.Next() {
		features := make([]float64, width)
		scan := make([]any, len(cols))
		for i := 0; i < width; i++ {
			scan[i] = &features[i]
		}
		var label string
		scan[width] = &label
		if err := rows.Scan(scan...); err != nil {
			return nil, nil, fmt.Errorf("scanning %s row %d: %w", instancesTable, len(data)+1, err)
		}
		data = append(data, features)
		labels = append(labels, model.Label(label))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating %s: %w", instancesTable, err)
	}

	ds, err := dataset.New(data)
	if err != nil {
		return nil, nil, err
	}
	return ds, labels, nil
}
