package extraction

import (
	"strconv"

	"github.com/vanderheijden86/rulelist/pkg/model"
)

// HarvestForest enumerates one rule per root-to-leaf path of every tree,
// then deduplicates structurally equal rules (same antecedent, same
// consequent), keeping the first occurrence.
func HarvestForest(f *model.Forest) []model.Rule {
	var all []model.Rule
	for ti := range f.Trees {
		all = append(all, HarvestTree(f.Trees[ti], ti)...)
	}
	return dedupeRules(all)
}

// HarvestTree enumerates the rules of a single tree in pre-order, left
// branch before right. The left branch carries the node's atom as-is, the
// right branch carries its negation.
func HarvestTree(t model.Tree, treeIdx int) []model.Rule {
	var out []model.Rule
	walkPaths(t.Root, nil, func(atoms []model.Atom, label model.Label) {
		r := model.NewRule(model.NewConjunction(atoms...), label)
		r.Info = map[string]string{
			"tree": strconv.Itoa(treeIdx),
			"path": strconv.Itoa(len(out)),
		}
		out = append(out, r)
	})
	return out
}

func walkPaths(n model.Node, prefix []model.Atom, emit func([]model.Atom, model.Label)) {
	switch v := n.(type) {
	case model.Leaf:
		emit(prefix, v.Label)
	case model.Split:
		// Clamp capacity so sibling branches never share append slots.
		prefix = prefix[:len(prefix):len(prefix)]
		walkPaths(v.Left, append(prefix, v.Atom), emit)
		walkPaths(v.Right, append(prefix, v.Atom.Negated()), emit)
	}
}

// dedupeRules removes structural duplicates, preserving first-occurrence
// order. Equality is on canonical rule keys, not provenance.
func dedupeRules(rules []model.Rule) []model.Rule {
	seen := make(map[string]struct{}, len(rules))
	out := make([]model.Rule, 0, len(rules))
	for _, r := range rules {
		key := r.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
