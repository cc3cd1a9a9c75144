package testutil

import (
	"testing"

	"github.com/vanderheijden86/rulelist/pkg/model"
)

// AssertRuleCount verifies the expected number of rules.
func AssertRuleCount(t *testing.T, rules []model.Rule, expected int) {
	t.Helper()
	if len(rules) != expected {
		t.Errorf("expected %d rules, got %d", expected, len(rules))
	}
}

// AssertNoDuplicateRules verifies all rules are structurally distinct.
func AssertNoDuplicateRules(t *testing.T, rules []model.Rule) {
	t.Helper()
	seen := make(map[string]bool)
	for _, r := range rules {
		key := r.Key()
		if seen[key] {
			t.Errorf("duplicate rule: %s", r)
		}
		seen[key] = true
	}
}

// AssertSameRules verifies two rule slices are equal element-wise.
func AssertSameRules(t *testing.T, got, want []model.Rule) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d rules, want %d", len(got), len(want))
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Errorf("rule %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

// AssertPredicts verifies the decision list predicts the expected label on
// every given instance.
func AssertPredicts(t *testing.T, dl model.DecisionList, rows []model.Instance, want []model.Label) {
	t.Helper()
	for i, inst := range rows {
		if got := dl.Predict(inst); got != want[i] {
			t.Errorf("row %d: predicted %q, want %q", i, got, want[i])
		}
	}
}
