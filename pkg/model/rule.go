package model

import "sort"

// Label is a class label from the label universe.
type Label string

// Rule pairs an antecedent with the class it predicts. Info carries opaque
// provenance metadata (originating tree, display hints); the pipeline never
// interprets it.
type Rule struct {
	Antecedent Antecedent
	Consequent Label
	Info       map[string]string
}

// NewRule builds a rule over the given antecedent and consequent.
func NewRule(ant Antecedent, cons Label) Rule {
	return Rule{Antecedent: ant, Consequent: cons}
}

// Length returns the number of conjuncts in the antecedent.
func (r Rule) Length() int {
	if r.Antecedent == nil {
		return 0
	}
	return r.Antecedent.Len()
}

// Slice returns a new rule whose antecedent keeps only the conjuncts at the
// given positions. Consequent and info are carried over unchanged.
func (r Rule) Slice(idxs []int) Rule {
	return Rule{Antecedent: r.Antecedent.Slice(idxs), Consequent: r.Consequent, Info: r.Info}
}

// Key returns the canonical "antecedent=>consequent" form. Two rules are
// structurally equal iff their keys match.
func (r Rule) Key() string {
	ant := ""
	if r.Antecedent != nil {
		ant = r.Antecedent.Key()
	}
	return ant + "=>" + string(r.Consequent)
}

// Equal reports structural equality of antecedent and consequent. Info is
// ignored: provenance does not distinguish rules.
func (r Rule) Equal(other Rule) bool {
	return r.Key() == other.Key()
}

// Tautological reports whether the rule fires on every instance.
func (r Rule) Tautological() bool {
	return r.Length() == 0
}

func (r Rule) String() string {
	ant := "true"
	if r.Antecedent != nil {
		ant = r.Antecedent.String()
	}
	return "if " + ant + " then " + string(r.Consequent)
}

// Majority returns the most frequent label. Ties break lexicographically on
// the label so the result is deterministic regardless of input order.
func Majority(labels []Label) Label {
	counts := make(map[Label]int, 8)
	for _, l := range labels {
		counts[l]++
	}
	keys := make([]Label, 0, len(counts))
	for l := range counts {
		keys = append(keys, l)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var best Label
	bestCount := -1
	for _, l := range keys {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	return best
}
