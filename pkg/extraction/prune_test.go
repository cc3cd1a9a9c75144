package extraction

import (
	"context"
	"testing"

	"github.com/vanderheijden86/rulelist/pkg/model"
)

func TestPrune_DropsTautologousConjunct(t *testing.T) {
	// q holds on every row of splitDataset, so p&q covers exactly what p
	// covers and dropping q costs nothing.
	ds, labels := splitDataset(8, "a", "b")
	r := conjRule("a", atomP, atomQ)

	pruned := Prune(r, ds, labels, DefaultPruningS, DefaultDecayThreshold)

	if pruned.Length() != 1 {
		t.Fatalf("pruned length = %d, want 1", pruned.Length())
	}
	if !pruned.Antecedent.Atoms()[0].Equal(atomP) {
		t.Errorf("pruned kept %v, want %v", pruned.Antecedent.Atoms()[0], atomP)
	}
	if pruned.Consequent != "a" {
		t.Errorf("pruning changed consequent to %q", pruned.Consequent)
	}
}

func TestPrune_KeepsNecessaryConjunct(t *testing.T) {
	// Rows: (0,0)->a (0,200)->b (1,0)->b (1,200)->b. Only p&q identifies
	// label a; dropping either conjunct raises the error sharply.
	ds := mustRows([][]float64{{0, 0}, {0, 200}, {1, 0}, {1, 200}})
	labels := []model.Label{"a", "b", "b", "b"}
	r := conjRule("a", atomP, atomQ)

	pruned := Prune(r, ds, labels, DefaultPruningS, DefaultDecayThreshold)
	if pruned.Length() != 2 {
		t.Errorf("pruned length = %d, want 2 (both conjuncts necessary)", pruned.Length())
	}
}

func TestPrune_NeverBelowOneConjunct(t *testing.T) {
	// Every conjunct is droppable, but the scan must stop at one.
	ds, labels := splitDataset(8, "a", "a")
	r := conjRule("a", atomQ, atomQ, atomQ)

	pruned := Prune(r, ds, labels, DefaultPruningS, DefaultDecayThreshold)
	if pruned.Length() != 1 {
		t.Errorf("pruned length = %d, want 1", pruned.Length())
	}
}

func TestPrune_ShortRuleUnchanged(t *testing.T) {
	ds, labels := splitDataset(4, "a", "b")
	for _, r := range []model.Rule{conjRule("a"), conjRule("a", atomP)} {
		pruned := Prune(r, ds, labels, DefaultPruningS, DefaultDecayThreshold)
		if !pruned.Equal(r) {
			t.Errorf("rule of length %d changed: %s -> %s", r.Length(), r, pruned)
		}
	}
}

func TestPrune_MultiModal(t *testing.T) {
	// Two modalities, one tautologous: pruning drops the useless modality
	// but keeps the multi-modal shape.
	ds, labels := splitDataset(8, "a", "b")
	mm := model.NewMultiModal(map[model.ModalityID]model.Conjunction{
		"base":  model.NewConjunction(atomP),
		"extra": model.NewConjunction(atomQ),
	})
	r := model.NewRule(mm, "a")

	pruned := Prune(r, ds, labels, DefaultPruningS, DefaultDecayThreshold)
	if pruned.Length() != 1 {
		t.Fatalf("pruned length = %d, want 1", pruned.Length())
	}
	kept, ok := pruned.Antecedent.(model.MultiModal)
	if !ok {
		t.Fatalf("pruned antecedent is %T, want MultiModal", pruned.Antecedent)
	}
	if _, found := kept.Modality("base"); !found {
		t.Errorf("pruning kept the wrong modality: %v", kept.Modalities())
	}
}

func TestPrune_SingleModalityUnchanged(t *testing.T) {
	ds, labels := splitDataset(8, "a", "b")
	mm := model.NewMultiModal(map[model.ModalityID]model.Conjunction{
		"base": model.NewConjunction(atomP, atomQ),
	})
	r := model.NewRule(mm, "a")

	pruned := Prune(r, ds, labels, DefaultPruningS, DefaultDecayThreshold)
	if !pruned.Equal(r) {
		t.Errorf("single-modality rule changed: %s -> %s", r, pruned)
	}
}

func TestPruneAll_OrderPreserved(t *testing.T) {
	ds, labels := splitDataset(8, "a", "b")
	rules := []model.Rule{
		conjRule("a", atomP, atomQ),
		conjRule("b", atomP.Negated(), atomQ),
		conjRule("a", atomP),
	}

	pruned, err := PruneAll(context.Background(), rules, ds, labels, DefaultPruningS, DefaultDecayThreshold, 4)
	if err != nil {
		t.Fatalf("PruneAll: %v", err)
	}
	if len(pruned) != len(rules) {
		t.Fatalf("got %d rules, want %d", len(pruned), len(rules))
	}
	// Slot i corresponds to input i regardless of worker scheduling.
	if pruned[0].Consequent != "a" || pruned[1].Consequent != "b" || pruned[2].Consequent != "a" {
		t.Errorf("output order scrambled: %v", pruned)
	}
	for i, p := range pruned {
		if p.Length() > rules[i].Length() {
			t.Errorf("rule %d grew: %d -> %d", i, rules[i].Length(), p.Length())
		}
	}
}
