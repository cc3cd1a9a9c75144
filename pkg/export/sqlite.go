package export

import (
	"database/sql"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/rulelist/pkg/metrics"
)

// Schema version for tracking migrations.
const SchemaVersion = 1

// SaveSQLite writes the document into a fresh SQLite database at path:
// one row per rule in the rules table, list-level facts in the meta table.
func SaveSQLite(path string, doc Document) error {
	done := metrics.Stopwatch(metrics.Export, len(doc.Rules))
	defer done(len(doc.Rules))

	// Replace any previous export wholesale.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO rules (position, antecedent, consequent, length, support, error, confidence, info)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare rule insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range doc.Rules {
		info, err := json.Marshal(r.Info)
		if err != nil {
			return fmt.Errorf("encode rule %d info: %w", r.Position, err)
		}
		if _, err := stmt.Exec(r.Position, r.Antecedent, r.Consequent, r.Length, r.Support, r.Error, r.Confidence, string(info)); err != nil {
			return fmt.Errorf("insert rule %d: %w", r.Position, err)
		}
	}

	meta := map[string]any{
		"schema_version": SchemaVersion,
		"default_label":  doc.Default,
		"accuracy":       doc.Accuracy,
		"baseline":       doc.Baseline,
		"rule_count":     len(doc.Rules),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, fmt.Sprint(v)); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

// createSchema creates the rules and meta tables.
func createSchema(db *sql.DB) error {
	rulesSQL := `
		CREATE TABLE rules (
			position   INTEGER PRIMARY KEY,
			antecedent TEXT NOT NULL,
			consequent TEXT NOT NULL,
			length     INTEGER NOT NULL,
			support    REAL NOT NULL,
			error      REAL NOT NULL,
			confidence REAL NOT NULL,
			info       TEXT
		)`
	if _, err := db.Exec(rulesSQL); err != nil {
		return fmt.Errorf("create rules table: %w", err)
	}
	metaSQL := `
		CREATE TABLE meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`
	if _, err := db.Exec(metaSQL); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX idx_rules_consequent ON rules(consequent)`); err != nil {
		return fmt.Errorf("create rules index: %w", err)
	}
	return nil
}
