// Package config handles loading and saving rulelist settings.
//
// Settings live in a YAML file next to the data they describe (or wherever
// the caller points LoadFrom). Absent fields keep the pipeline defaults;
// the two pruning knobs stay optional so the ambiguous-tuning guard in the
// extraction package can tell "unset" from "zero".
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/rulelist/pkg/extraction"
)

// Settings is the on-disk configuration for an extraction run.
type Settings struct {
	// Extraction tunes the pipeline itself.
	Extraction ExtractionSettings `yaml:"extraction,omitempty"`

	// Export selects output formats ("json", "markdown", "sqlite").
	Export []string `yaml:"export,omitempty"`

	// OutputDir is where exports are written. Default "." .
	OutputDir string `yaml:"output_dir,omitempty"`
}

// ExtractionSettings mirrors extraction.Config in YAML form.
type ExtractionSettings struct {
	PruneRules            *bool    `yaml:"prune_rules,omitempty"`
	PruningS              *float64 `yaml:"pruning_s,omitempty"`
	PruningDecayThreshold *float64 `yaml:"pruning_decay_threshold,omitempty"`
	SelectionMethod       string   `yaml:"selection_method,omitempty"`
	SelectionThreshold    *float64 `yaml:"selection_threshold,omitempty"`
	MinFrequency          *float64 `yaml:"min_frequency,omitempty"`
	RNGSeed               int64    `yaml:"rng_seed,omitempty"`
	Workers               int      `yaml:"workers,omitempty"`
}

// DefaultSettings returns a Settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Export:    []string{"json"},
		OutputDir: ".",
	}
}

// PipelineConfig converts the YAML form into the extraction package's
// config, leaving absent knobs at their defaults.
func (s Settings) PipelineConfig() extraction.Config {
	e := s.Extraction
	return extraction.Config{
		PruneRules:            e.PruneRules,
		PruningS:              e.PruningS,
		PruningDecayThreshold: e.PruningDecayThreshold,
		SelectionMethod:       extraction.SelectionMethod(strings.ToLower(e.SelectionMethod)),
		SelectionThreshold:    e.SelectionThreshold,
		MinFrequency:          e.MinFrequency,
		RNGSeed:               e.RNGSeed,
		Workers:               e.Workers,
	}
}

// LoadFrom reads settings from a specific path.
// Returns DefaultSettings if the file doesn't exist.
func LoadFrom(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	cfg.OutputDir = expandHome(cfg.OutputDir)

	return cfg, nil
}

// SaveTo writes the settings to a specific path, creating parent
// directories as needed.
func SaveTo(cfg Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
