// Package extraction converts an ensemble of decision trees into a compact
// ordered decision list.
//
// The pipeline is the inTrees scheme: harvest every root-to-leaf path as a
// rule, prune conjuncts by error decay, filter near-duplicates by coverage
// correlation, then sequentially cover the training set. The three
// per-rule map phases run on bounded worker pools; the produced list is
// bit-identical for a fixed (model, dataset, labels, config) input
// regardless of worker count.
package extraction

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/debug"
	"github.com/vanderheijden86/rulelist/pkg/metrics"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// Profile captures per-phase timings and rule counts for one extraction,
// for diagnostics.
type Profile struct {
	Harvested int `json:"harvested"`
	Pruned    int `json:"pruned"`
	Selected  int `json:"selected"`
	Emitted   int `json:"emitted"`

	Harvest time.Duration `json:"harvest"`
	Prune   time.Duration `json:"prune"`
	Select  time.Duration `json:"select"`
	Cover   time.Duration `json:"cover"`
	Total   time.Duration `json:"total"`
}

// Extract runs the full pipeline and returns the decision list.
//
// m must be a *model.Forest or a *model.Tree. The dataset is read-only for
// the duration of the call and may be shared with other extractions.
func Extract(ctx context.Context, m any, ds *dataset.Dataset, labels []model.Label, cfg Config) (model.DecisionList, error) {
	dl, _, err := ExtractWithProfile(ctx, m, ds, labels, cfg)
	return dl, err
}

// ExtractWithProfile is Extract plus per-phase timing information.
func ExtractWithProfile(ctx context.Context, m any, ds *dataset.Dataset, labels []model.Label, cfg Config) (model.DecisionList, *Profile, error) {
	st, err := cfg.resolve()
	if err != nil {
		return model.DecisionList{}, nil, err
	}

	forest, err := asForest(m)
	if err != nil {
		return model.DecisionList{}, nil, err
	}
	if ds == nil || ds.NumRows() == 0 {
		return model.DecisionList{}, nil, fmt.Errorf("%w: dataset has no rows", ErrDegenerateDataset)
	}
	if len(labels) != ds.NumRows() {
		return model.DecisionList{}, nil, fmt.Errorf("%w: %d labels for %d rows", ErrDegenerateDataset, len(labels), ds.NumRows())
	}

	profile := &Profile{}
	totalStart := time.Now()

	harvestStart := time.Now()
	harvestDone := metrics.Stopwatch(metrics.Harvest, forest.NumTrees())
	rules := HarvestForest(forest)
	harvestDone(len(rules))
	profile.Harvest = time.Since(harvestStart)
	profile.Harvested = len(rules)
	debug.Phasef("harvest", "%d rules from %d trees", len(rules), forest.NumTrees())

	if err := ctx.Err(); err != nil {
		return model.DecisionList{}, nil, fmt.Errorf("%w: before pruning", ErrCancelled)
	}

	if st.prune {
		pruneStart := time.Now()
		pruneDone := metrics.Stopwatch(metrics.Prune, totalConjuncts(rules))
		rules, err = PruneAll(ctx, rules, ds, labels, st.s, st.tau, st.workers)
		if err != nil {
			return model.DecisionList{}, nil, err
		}
		// Pruning can collapse distinct paths onto the same rule.
		rules = dedupeRules(rules)
		pruneDone(totalConjuncts(rules))
		profile.Prune = time.Since(pruneStart)
		debug.Phasef("prune", "%d conjuncts remain across %d rules", totalConjuncts(rules), len(rules))
	}
	profile.Pruned = len(rules)

	if err := ctx.Err(); err != nil {
		return model.DecisionList{}, nil, fmt.Errorf("%w: before selection", ErrCancelled)
	}

	selectStart := time.Now()
	selectDone := metrics.Stopwatch(metrics.Select, len(rules))
	rules, err = SelectRules(ctx, st.method, rules, ds, st.theta, st.workers)
	if err != nil {
		return model.DecisionList{}, nil, err
	}
	selectDone(len(rules))
	profile.Select = time.Since(selectStart)
	profile.Selected = len(rules)
	debug.Phasef("select", "%d rules survived", len(rules))

	coverStart := time.Now()
	coverDone := metrics.Stopwatch(metrics.Cover, len(rules))
	rng := rand.New(rand.NewSource(st.seed))
	dl, err := Cover(ctx, rules, ds, labels, st.minFreq, rng, st.workers)
	if err != nil {
		return model.DecisionList{}, nil, err
	}
	coverDone(dl.Len())
	profile.Cover = time.Since(coverStart)
	profile.Emitted = dl.Len()
	profile.Total = time.Since(totalStart)

	return dl, profile, nil
}

// totalConjuncts sums antecedent lengths; it is the unit pruning shrinks.
func totalConjuncts(rules []model.Rule) int {
	total := 0
	for _, r := range rules {
		total += r.Length()
	}
	return total
}

// asForest normalizes the accepted model kinds to a forest.
func asForest(m any) (*model.Forest, error) {
	switch v := m.(type) {
	case *model.Forest:
		return v, nil
	case *model.Tree:
		return &model.Forest{Trees: []model.Tree{*v}}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedModelKind, m)
	}
}

// Score returns the fraction of rows the decision list classifies
// correctly.
func Score(dl model.DecisionList, ds *dataset.Dataset, labels []model.Label) float64 {
	n := ds.NumRows()
	if n == 0 {
		return 0
	}
	hits := 0
	for i := 0; i < n; i++ {
		if dl.Predict(ds.Row(i)) == labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(n)
}

// BaselineScore returns the accuracy of always predicting the majority
// label, the floor any useful decision list must reach.
func BaselineScore(labels []model.Label) float64 {
	if len(labels) == 0 {
		return 0
	}
	maj := model.Majority(labels)
	hits := 0
	for _, l := range labels {
		if l == maj {
			hits++
		}
	}
	return float64(hits) / float64(len(labels))
}
