package model

import "testing"

func atom(feature int, threshold float64) ThresholdAtom {
	return ThresholdAtom{Feature: feature, Threshold: threshold}
}

func TestThresholdAtom_Holds(t *testing.T) {
	tests := []struct {
		name string
		atom ThresholdAtom
		row  row
		want bool
	}{
		{"below threshold", atom(0, 0.5), row{0.2}, true},
		{"at threshold", atom(0, 0.5), row{0.5}, true},
		{"above threshold", atom(0, 0.5), row{0.7}, false},
		{"negated below", ThresholdAtom{Feature: 0, Threshold: 0.5, Above: true}, row{0.2}, false},
		{"negated above", ThresholdAtom{Feature: 0, Threshold: 0.5, Above: true}, row{0.7}, true},
		{"other feature", atom(1, 0.5), row{9, 0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.atom.Holds(tt.row); got != tt.want {
				t.Errorf("Holds() = %v, want %v", got, tt.want)
			}
		})
	}
}

// row is a minimal Instance for tests.
type row []float64

func (r row) Feature(i int) float64 { return r[i] }

func TestThresholdAtom_NegatedRoundTrip(t *testing.T) {
	a := atom(2, 1.5)
	n := a.Negated()
	if a.Equal(n) {
		t.Fatal("atom equals its negation")
	}
	if !a.Equal(n.Negated()) {
		t.Fatal("double negation is not the identity")
	}
}

func TestRule_Slice(t *testing.T) {
	r := NewRule(NewConjunction(atom(0, 1), atom(1, 2), atom(2, 3)), "a")
	r.Info = map[string]string{"tree": "7"}

	sliced := r.Slice([]int{0, 2})
	if sliced.Length() != 2 {
		t.Fatalf("sliced length = %d, want 2", sliced.Length())
	}
	atoms := sliced.Antecedent.Atoms()
	if !atoms[0].Equal(atom(0, 1)) || !atoms[1].Equal(atom(2, 3)) {
		t.Errorf("slice kept wrong atoms: %v", atoms)
	}
	if sliced.Consequent != "a" {
		t.Errorf("slice changed consequent to %q", sliced.Consequent)
	}
	if sliced.Info["tree"] != "7" {
		t.Errorf("slice dropped info")
	}
	// Original untouched.
	if r.Length() != 3 {
		t.Errorf("slice mutated original, length now %d", r.Length())
	}
}

func TestRule_Equal(t *testing.T) {
	r1 := NewRule(NewConjunction(atom(0, 1)), "a")
	r2 := NewRule(NewConjunction(atom(0, 1)), "a")
	r2.Info = map[string]string{"tree": "3"} // provenance must not matter
	r3 := NewRule(NewConjunction(atom(0, 1)), "b")
	r4 := NewRule(NewConjunction(atom(0, 2)), "a")

	if !r1.Equal(r2) {
		t.Error("rules differing only in info should be equal")
	}
	if r1.Equal(r3) {
		t.Error("rules with different consequents should differ")
	}
	if r1.Equal(r4) {
		t.Error("rules with different antecedents should differ")
	}
}

func TestRule_Tautological(t *testing.T) {
	if !NewRule(NewConjunction(), "a").Tautological() {
		t.Error("empty antecedent should be tautological")
	}
	if NewRule(NewConjunction(atom(0, 1)), "a").Tautological() {
		t.Error("non-empty antecedent should not be tautological")
	}
}

func TestMultiModal_SliceKeepsShape(t *testing.T) {
	mm := NewMultiModal(map[ModalityID]Conjunction{
		"audio": NewConjunction(atom(0, 1)),
		"video": NewConjunction(atom(1, 2), atom(2, 3)),
	})
	if mm.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (one conjunct per modality)", mm.Len())
	}

	// Slicing down to one modality must not collapse to a flat conjunction.
	one := mm.Slice([]int{1})
	if _, ok := one.(MultiModal); !ok {
		t.Fatalf("slice to one modality became %T", one)
	}
	if one.Len() != 1 {
		t.Errorf("sliced Len() = %d, want 1", one.Len())
	}

	empty := mm.Slice(nil)
	if _, ok := empty.(MultiModal); !ok {
		t.Fatalf("slice to zero modalities became %T", empty)
	}
	if empty.Len() != 0 {
		t.Errorf("empty slice Len() = %d, want 0", empty.Len())
	}
}

func TestMultiModal_OrderIsDeterministic(t *testing.T) {
	// Modalities come back sorted by id regardless of map iteration order.
	mm := NewMultiModal(map[ModalityID]Conjunction{
		"z": NewConjunction(atom(0, 1)),
		"a": NewConjunction(atom(1, 1)),
		"m": NewConjunction(atom(2, 1)),
	})
	ids := mm.Modalities()
	want := []ModalityID{"a", "m", "z"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("modalities = %v, want %v", ids, want)
		}
	}
}

func TestMultiModal_Holds(t *testing.T) {
	mm := NewMultiModal(map[ModalityID]Conjunction{
		"a": NewConjunction(atom(0, 0.5)),
		"b": NewConjunction(atom(1, 0.5)),
	})
	if !mm.Holds(row{0.1, 0.1}) {
		t.Error("should hold when all modalities hold")
	}
	if mm.Holds(row{0.1, 0.9}) {
		t.Error("should fail when one modality fails")
	}
}

func TestMajority(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		want   Label
	}{
		{"plain majority", []Label{"a", "b", "b"}, "b"},
		{"tie breaks lexicographically", []Label{"b", "a"}, "a"},
		{"three-way tie", []Label{"c", "b", "a"}, "a"},
		{"single label", []Label{"x"}, "x"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Majority(tt.labels); got != tt.want {
				t.Errorf("Majority(%v) = %q, want %q", tt.labels, got, tt.want)
			}
		})
	}
}
