// Package model defines the symbolic vocabulary shared by the extraction
// pipeline: atoms, antecedents, rules, decision lists, and the tree models
// rules are harvested from.
//
// All types here are immutable value types. Operations that rewrite a rule
// (slicing, pruning) return new values and never mutate their receiver.
package model

import (
	"fmt"
	"strconv"
)

// Instance is a single dataset row as seen by an atom. Implementations are
// provided by the dataset package; atoms only read feature values.
type Instance interface {
	// Feature returns the value of the i-th feature column.
	Feature(i int) float64
}

// Atom is an indivisible boolean test over one instance.
//
// Atoms must be comparable structurally (Equal) and must render a canonical
// form (Key) stable across processes, since rule deduplication keys on it.
type Atom interface {
	// Holds reports whether the test passes on the given instance.
	Holds(inst Instance) bool

	// Negated returns the logical complement of this atom.
	Negated() Atom

	// Equal reports structural equality with another atom.
	Equal(other Atom) bool

	// Key returns a canonical string form used for structural hashing.
	Key() string

	String() string
}

// ThresholdAtom tests a single feature against a threshold. It is the split
// predicate carried by internal tree nodes: the left branch keeps the atom
// as-is (value <= threshold), the right branch takes its negation.
type ThresholdAtom struct {
	// Feature is the column index the test reads.
	Feature int
	// Threshold is the split value.
	Threshold float64
	// Above inverts the test: false means "<= Threshold", true means "> Threshold".
	Above bool
}

// Holds reports whether the instance passes the threshold test.
func (a ThresholdAtom) Holds(inst Instance) bool {
	v := inst.Feature(a.Feature)
	if a.Above {
		return v > a.Threshold
	}
	return v <= a.Threshold
}

// Negated returns the complementary threshold test.
func (a ThresholdAtom) Negated() Atom {
	return ThresholdAtom{Feature: a.Feature, Threshold: a.Threshold, Above: !a.Above}
}

// Equal reports structural equality with another atom.
func (a ThresholdAtom) Equal(other Atom) bool {
	b, ok := other.(ThresholdAtom)
	return ok && a == b
}

// Key returns a canonical form like "x3<=1.5" or "x3>1.5".
// strconv with 'g' and -1 precision is canonical for a given float64, so
// keys are stable across runs and processes.
func (a ThresholdAtom) Key() string {
	op := "<="
	if a.Above {
		op = ">"
	}
	return "x" + strconv.Itoa(a.Feature) + op + strconv.FormatFloat(a.Threshold, 'g', -1, 64)
}

func (a ThresholdAtom) String() string {
	op := "<="
	if a.Above {
		op = ">"
	}
	return fmt.Sprintf("x%d %s %g", a.Feature, op, a.Threshold)
}
