package extraction

import (
	"fmt"
	"runtime"
)

// SelectionMethod names a rule-selection strategy. CBC (correlation-based
// covering) is the only supported method.
type SelectionMethod string

// CBC filters near-duplicate rules by the Pearson correlation of their
// coverage signatures.
const CBC SelectionMethod = "cbc"

// Defaults applied by Config.resolve.
const (
	DefaultPruningS       = 1e-6
	DefaultDecayThreshold = 0.05
	DefaultSelectionTheta = 0.0
	DefaultMinFrequency   = 0.01
	DefaultRNGSeed        = 1
)

// Config tunes the extraction pipeline. The zero value selects every
// default. The two pruning knobs are pointers so that "not provided" is
// distinguishable from an explicit zero: supplying exactly one of the pair
// is ambiguous tuning and disables pruning entirely.
type Config struct {
	// PruneRules disables conjunct pruning when set to false. Nil means true.
	PruneRules *bool

	// PruningS is the error floor used in the decay denominator. Nil means 1e-6.
	PruningS *float64

	// PruningDecayThreshold is the decay below which a conjunct is dropped.
	// Nil means 0.05.
	PruningDecayThreshold *float64

	// SelectionMethod selects the redundancy filter. Empty means CBC.
	SelectionMethod SelectionMethod

	// SelectionThreshold is the correlation magnitude above which a rule
	// pair counts as redundant. Nil means 0.0 (aggressive filtering).
	SelectionThreshold *float64

	// MinFrequency is the minimum support, on the full dataset, for a rule
	// to enter the covering loop. Nil means 0.01.
	MinFrequency *float64

	// RNGSeed seeds the tie-break source. Zero means 1.
	RNGSeed int64

	// Workers bounds pipeline parallelism. Zero or negative means NumCPU.
	Workers int
}

// settings is a fully resolved configuration.
type settings struct {
	prune   bool
	s       float64
	tau     float64
	method  SelectionMethod
	theta   float64
	minFreq float64
	seed    int64
	workers int
}

// resolve fills defaults and validates. Configuration errors surface here,
// before any pipeline phase runs.
func (c Config) resolve() (settings, error) {
	st := settings{
		prune:   true,
		s:       DefaultPruningS,
		tau:     DefaultDecayThreshold,
		method:  CBC,
		theta:   DefaultSelectionTheta,
		minFreq: DefaultMinFrequency,
		seed:    DefaultRNGSeed,
		workers: runtime.NumCPU(),
	}

	if c.PruneRules != nil {
		st.prune = *c.PruneRules
	}
	// Exactly one of {s, tau} supplied is ambiguous tuning: disable pruning
	// rather than guess which half the caller meant.
	if (c.PruningS == nil) != (c.PruningDecayThreshold == nil) {
		st.prune = false
	}
	if c.PruningS != nil {
		st.s = *c.PruningS
	}
	if c.PruningDecayThreshold != nil {
		st.tau = *c.PruningDecayThreshold
	}

	if c.SelectionMethod != "" {
		st.method = c.SelectionMethod
	}
	if st.method != CBC {
		return settings{}, fmt.Errorf("%w: %q", ErrUnknownSelectionMethod, string(st.method))
	}
	if c.SelectionThreshold != nil {
		st.theta = *c.SelectionThreshold
	}
	if c.MinFrequency != nil {
		st.minFreq = *c.MinFrequency
	}
	if c.RNGSeed != 0 {
		st.seed = c.RNGSeed
	}
	if c.Workers > 0 {
		st.workers = c.Workers
	}
	return st, nil
}

// Float returns a pointer to v, for filling optional Config fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for filling optional Config fields.
func Bool(v bool) *bool { return &v }
