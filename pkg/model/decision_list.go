package model

import "strings"

// DecisionList is an ordered sequence of rules evaluated top to bottom,
// falling through to a default label when no rule fires.
//
// Invariant: the default is always reachable. NewDecisionList enforces this
// by folding a tautological rule into the default position: the first rule
// with an empty antecedent becomes the default and everything after it is
// dropped, since no later rule could ever fire.
type DecisionList struct {
	Rules   []Rule
	Default Label
}

// NewDecisionList builds a decision list from ordered rules and a default
// label, normalizing away rules that would shadow the tail.
func NewDecisionList(rules []Rule, def Label) DecisionList {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Tautological() {
			def = r.Consequent
			break
		}
		kept = append(kept, r)
	}
	return DecisionList{Rules: kept, Default: def}
}

// Predict returns the consequent of the first rule whose antecedent holds on
// the instance, or the default label when none fires.
func (dl DecisionList) Predict(inst Instance) Label {
	for _, r := range dl.Rules {
		if r.Antecedent.Holds(inst) {
			return r.Consequent
		}
	}
	return dl.Default
}

// Len returns the number of non-default rules.
func (dl DecisionList) Len() int { return len(dl.Rules) }

func (dl DecisionList) String() string {
	var sb strings.Builder
	for _, r := range dl.Rules {
		sb.WriteString(r.String())
		sb.WriteString("\n")
	}
	sb.WriteString("else " + string(dl.Default))
	return sb.String()
}
