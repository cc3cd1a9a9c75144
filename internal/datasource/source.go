// Package datasource loads labeled tabular datasets for extraction. It
// detects the source kind from the file extension and reads CSV files and
// SQLite databases into the row view the pipeline evaluates against. The
// last column of a source is always the class label; the rest are numeric
// features.
package datasource

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceType identifies the kind of a dataset source.
type SourceType string

const (
	// SourceTypeCSV is a comma-separated file with a header row.
	SourceTypeCSV SourceType = "csv"
	// SourceTypeSQLite is a SQLite database holding an instances table.
	SourceTypeSQLite SourceType = "sqlite"
)

// Detect returns the source type for a path, judging by extension.
func Detect(path string) (SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return SourceTypeCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, nil
	default:
		return "", fmt.Errorf("cannot detect dataset type of %q: unknown extension", path)
	}
}
