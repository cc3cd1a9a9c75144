package metrics

import (
	"testing"
	"time"
)

func TestPhaseMetric_Observe(t *testing.T) {
	m := &PhaseMetric{name: "test", unit: "rules"}
	m.Observe(10*time.Millisecond, 100, 40)
	m.Observe(30*time.Millisecond, 50, 20)

	s := m.Stats()
	if s.Runs != 2 {
		t.Errorf("Runs = %d, want 2", s.Runs)
	}
	if s.TotalMs != 40 {
		t.Errorf("TotalMs = %v, want 40", s.TotalMs)
	}
	if s.AvgMs != 20 {
		t.Errorf("AvgMs = %v, want 20", s.AvgMs)
	}
	if s.UnitsIn != 150 || s.UnitsOut != 60 {
		t.Errorf("units = %d -> %d, want 150 -> 60", s.UnitsIn, s.UnitsOut)
	}
	if s.Reduction != 0.6 {
		t.Errorf("Reduction = %v, want 0.6", s.Reduction)
	}
}

func TestPhaseMetric_EmptyStats(t *testing.T) {
	m := &PhaseMetric{name: "idle", unit: "rules"}
	s := m.Stats()
	if s.Runs != 0 || s.AvgMs != 0 || s.Reduction != 0 {
		t.Errorf("idle phase reported %+v", s)
	}
}

func TestStopwatch(t *testing.T) {
	m := &PhaseMetric{name: "timed", unit: "rules"}
	done := Stopwatch(m, 8)
	done(3)

	s := m.Stats()
	if s.Runs != 1 {
		t.Fatalf("Runs = %d, want 1", s.Runs)
	}
	if s.UnitsIn != 8 || s.UnitsOut != 3 {
		t.Errorf("units = %d -> %d, want 8 -> 3", s.UnitsIn, s.UnitsOut)
	}
}

func TestStopwatch_DisabledIsNoOp(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := &PhaseMetric{name: "off", unit: "rules"}
	Stopwatch(m, 5)(2)
	if m.Runs() != 0 {
		t.Errorf("disabled stopwatch recorded %d runs", m.Runs())
	}
}

func TestAllPhaseStats_SkipsIdlePhases(t *testing.T) {
	ResetAll()
	Select.Observe(time.Millisecond, 10, 4)
	defer ResetAll()

	stats := AllPhaseStats()
	if len(stats) != 1 || stats[0].Name != "select" {
		t.Errorf("AllPhaseStats = %+v, want only select", stats)
	}
}
