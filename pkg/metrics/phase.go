// Package metrics tracks what each extraction phase does to the rule set:
// how long it ran, how many units went in, and how many came out. The unit
// differs per phase — trees become rules in the harvest, pruning counts
// conjuncts, selection and covering count rules — so the interesting figure
// is the reduction each phase achieves, not a bare duration.
//
// Collection is enabled by default but can be disabled via RL_METRICS=0.
//
// Usage:
//
//	done := metrics.Stopwatch(metrics.Select, len(rules))
//	survivors := filter(rules)
//	done(len(survivors))
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

// enabled controls whether metrics are collected.
// Defaults to true unless RL_METRICS=0 is set.
var enabled = os.Getenv("RL_METRICS") != "0"

// Enabled returns whether metrics collection is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of metrics collection.
func SetEnabled(e bool) {
	enabled = e
}

// PhaseMetric accumulates observations for one pipeline phase. All fields
// advance atomically; concurrent extractions may observe the same phase.
type PhaseMetric struct {
	name     string
	unit     string
	runs     atomic.Int64
	totalNs  atomic.Int64
	unitsIn  atomic.Int64
	unitsOut atomic.Int64
}

// Observe records one run of the phase: its duration and the unit counts
// entering and leaving it.
func (m *PhaseMetric) Observe(d time.Duration, unitsIn, unitsOut int) {
	if !enabled {
		return
	}
	m.runs.Add(1)
	m.totalNs.Add(d.Nanoseconds())
	m.unitsIn.Add(int64(unitsIn))
	m.unitsOut.Add(int64(unitsOut))
}

// Name returns the phase name.
func (m *PhaseMetric) Name() string {
	return m.name
}

// Runs returns the number of recorded runs.
func (m *PhaseMetric) Runs() int64 {
	return m.runs.Load()
}

// Stats returns a snapshot of the phase's accumulated figures.
func (m *PhaseMetric) Stats() PhaseStats {
	runs := m.runs.Load()
	totalNs := m.totalNs.Load()
	in := m.unitsIn.Load()
	out := m.unitsOut.Load()

	s := PhaseStats{
		Name:     m.name,
		Unit:     m.unit,
		Runs:     runs,
		TotalMs:  float64(totalNs) / 1e6,
		UnitsIn:  in,
		UnitsOut: out,
	}
	if runs > 0 {
		s.AvgMs = s.TotalMs / float64(runs)
	}
	if in > 0 {
		s.Reduction = 1 - float64(out)/float64(in)
	}
	return s
}

// Reset clears all recorded observations.
func (m *PhaseMetric) Reset() {
	m.runs.Store(0)
	m.totalNs.Store(0)
	m.unitsIn.Store(0)
	m.unitsOut.Store(0)
}

// PhaseStats is a snapshot of one phase. Reduction is 1 - UnitsOut/UnitsIn,
// the fraction of units the phase removed. It is 0 when no input units were
// recorded (e.g. dataset_load) and negative when the phase emits more units
// than it took in (harvest usually turns few trees into many rules).
type PhaseStats struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Runs      int64   `json:"runs"`
	TotalMs   float64 `json:"total_ms"`
	AvgMs     float64 `json:"avg_ms"`
	UnitsIn   int64   `json:"units_in"`
	UnitsOut  int64   `json:"units_out"`
	Reduction float64 `json:"reduction"`
}

// Stopwatch starts timing a phase run with the given input count and
// returns the function that finishes the observation with the output count:
//
//	done := metrics.Stopwatch(metrics.Prune, conjunctsBefore)
//	// ... phase body
//	done(conjunctsAfter)
func Stopwatch(m *PhaseMetric, unitsIn int) func(unitsOut int) {
	if !enabled || m == nil {
		return func(int) {}
	}
	start := time.Now()
	return func(unitsOut int) {
		m.Observe(time.Since(start), unitsIn, unitsOut)
	}
}

// The pipeline phases and supporting surfaces. Units: Harvest turns trees
// into candidate rules, Prune shortens antecedents (conjuncts), Select and
// Cover thin the rule set, DatasetLoad produces rows, Export writes rules.
var (
	Harvest     = &PhaseMetric{name: "harvest", unit: "rules"}
	Prune       = &PhaseMetric{name: "prune", unit: "conjuncts"}
	Select      = &PhaseMetric{name: "select", unit: "rules"}
	Cover       = &PhaseMetric{name: "cover", unit: "rules"}
	DatasetLoad = &PhaseMetric{name: "dataset_load", unit: "rows"}
	Export      = &PhaseMetric{name: "export", unit: "rules"}
)

// AllPhases returns every registered phase metric.
func AllPhases() []*PhaseMetric {
	return []*PhaseMetric{Harvest, Prune, Select, Cover, DatasetLoad, Export}
}

// ResetAll clears every phase metric.
func ResetAll() {
	for _, m := range AllPhases() {
		m.Reset()
	}
}

// AllPhaseStats returns snapshots for every phase that has data.
func AllPhaseStats() []PhaseStats {
	phases := AllPhases()
	stats := make([]PhaseStats, 0, len(phases))
	for _, m := range phases {
		if m.Runs() > 0 {
			stats = append(stats, m.Stats())
		}
	}
	return stats
}
