package extraction

import (
	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// p holds on rows with x0 <= 0.5, q holds on rows with x1 <= 100.
var (
	atomP = model.ThresholdAtom{Feature: 0, Threshold: 0.5}
	atomQ = model.ThresholdAtom{Feature: 1, Threshold: 100}
)

func conjRule(cons model.Label, atoms ...model.Atom) model.Rule {
	return model.NewRule(model.NewConjunction(atoms...), cons)
}

// splitDataset builds n rows, the first half with x0=0 (p holds) labeled
// left, the rest with x0=1 labeled right. x1 is always 1, so q holds
// everywhere.
func splitDataset(n int, left, right model.Label) (*dataset.Dataset, []model.Label) {
	rows := make([][]float64, n)
	labels := make([]model.Label, n)
	for i := range rows {
		if i < n/2 {
			rows[i] = []float64{0, 1}
			labels[i] = left
		} else {
			rows[i] = []float64{1, 1}
			labels[i] = right
		}
	}
	return dataset.MustNew(rows), labels
}

func mustRows(rows [][]float64) *dataset.Dataset {
	return dataset.MustNew(rows)
}

// stump builds a one-split tree testing atom, with leaf labels per branch.
func stump(atom model.Atom, left, right model.Label) model.Tree {
	return model.Tree{Root: model.Split{
		Atom:  atom,
		Left:  model.Leaf{Label: left},
		Right: model.Leaf{Label: right},
	}}
}
