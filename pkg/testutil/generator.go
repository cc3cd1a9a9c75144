// Package testutil provides deterministic fixture generators for forests
// and labeled datasets. All generators are seeded; the same config always
// produces the same fixture.
package testutil

import (
	"math/rand"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// GeneratorConfig controls fixture generation.
type GeneratorConfig struct {
	Seed        int64         // Random seed for determinism (default 42)
	NumFeatures int           // Feature columns per instance (default 4)
	NumRows     int           // Dataset size (default 64)
	NumTrees    int           // Forest size (default 3)
	MaxDepth    int           // Tree depth bound (default 3)
	Labels      []model.Label // Label universe (default {"a","b"})
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42,
		NumFeatures: 4,
		NumRows:     64,
		NumTrees:    3,
		MaxDepth:    3,
		Labels:      []model.Label{"a", "b"},
	}
}

// Generator creates forest and dataset fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config, filling zero fields with
// defaults.
func New(cfg GeneratorConfig) *Generator {
	def := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.NumFeatures == 0 {
		cfg.NumFeatures = def.NumFeatures
	}
	if cfg.NumRows == 0 {
		cfg.NumRows = def.NumRows
	}
	if cfg.NumTrees == 0 {
		cfg.NumTrees = def.NumTrees
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if len(cfg.Labels) == 0 {
		cfg.Labels = def.Labels
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Dataset generates rows with features uniform in [0, 1) and labels drawn
// from the label universe.
func (g *Generator) Dataset() (*dataset.Dataset, []model.Label) {
	rows := make([][]float64, g.cfg.NumRows)
	labels := make([]model.Label, g.cfg.NumRows)
	for i := range rows {
		row := make([]float64, g.cfg.NumFeatures)
		for j := range row {
			row[j] = g.rng.Float64()
		}
		rows[i] = row
		labels[i] = g.cfg.Labels[g.rng.Intn(len(g.cfg.Labels))]
	}
	return dataset.MustNew(rows), labels
}

// Forest generates an ensemble of random threshold trees.
func (g *Generator) Forest() *model.Forest {
	f := &model.Forest{Trees: make([]model.Tree, g.cfg.NumTrees)}
	for i := range f.Trees {
		f.Trees[i] = model.Tree{Root: g.node(g.cfg.MaxDepth)}
	}
	return f
}

func (g *Generator) node(depth int) model.Node {
	if depth == 0 || g.rng.Float64() < 0.3 {
		return model.Leaf{Label: g.cfg.Labels[g.rng.Intn(len(g.cfg.Labels))]}
	}
	return model.Split{
		Atom: model.ThresholdAtom{
			Feature:   g.rng.Intn(g.cfg.NumFeatures),
			Threshold: g.rng.Float64(),
		},
		Left:  g.node(depth - 1),
		Right: g.node(depth - 1),
	}
}

// Stump builds a one-split tree on the given feature and threshold.
func Stump(feature int, threshold float64, left, right model.Label) model.Tree {
	return model.Tree{Root: model.Split{
		Atom:  model.ThresholdAtom{Feature: feature, Threshold: threshold},
		Left:  model.Leaf{Label: left},
		Right: model.Leaf{Label: right},
	}}
}
