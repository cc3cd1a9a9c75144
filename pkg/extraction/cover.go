package extraction

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/debug"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// originKey marks the synthetic default rule in provenance metadata.
const originKey = "origin"

// Cover runs the sequential-covering loop: greedily pick the best surviving
// rule on the current working set, remove the instances it covers, and
// repeat until the default rule wins or the working set empties.
//
// Tie-breaking is lexicographic (min error, max support, min length) with a
// final uniform draw from rng among exact ties. The rng is consumed only
// here, on the coordinating goroutine, so the produced list is deterministic
// for a fixed seed regardless of worker count.
func Cover(ctx context.Context, rules []model.Rule, ds *dataset.Dataset, labels []model.Label, minFreq float64, rng *rand.Rand, workers int) (model.DecisionList, error) {
	pool := make([]model.Rule, 0, len(rules)+1)
	pool = append(pool, rules...)
	pool = append(pool, defaultRule(labels))

	// Filter on support over the FULL dataset; per-iteration metrics below
	// use the shrinking view. The default rule has support 1 and survives.
	pool, err := filterByFrequency(ctx, pool, ds, labels, minFreq, workers)
	if err != nil {
		return model.DecisionList{}, err
	}
	defaultIdx := len(pool) - 1

	cur := ds
	curLabels := labels
	var ordered []model.Rule

	for len(pool) > 0 {
		if err := ctx.Err(); err != nil {
			return model.DecisionList{}, fmt.Errorf("%w: covering loop interrupted", ErrCancelled)
		}

		ms, err := measureAll(ctx, pool, cur, curLabels, workers)
		if err != nil {
			return model.DecisionList{}, err
		}
		best, err := bestIndex(ms, rng)
		if err != nil {
			return model.DecisionList{}, err
		}

		ordered = append(ordered, pool[best])
		debug.Phasef("cover", "picked %q (err=%.4f sup=%.4f len=%d), %d rows left",
			pool[best].String(), ms[best].Error, ms[best].Support, ms[best].Length, cur.NumRows())

		if best == defaultIdx {
			last := len(ordered) - 1
			return model.NewDecisionList(ordered[:last], ordered[last].Consequent), nil
		}

		ev := Evaluate(pool[best], cur, curLabels)
		keep := ev.AntSat.Zeros()
		cur = cur.Select(keep)
		curLabels = pickLabels(curLabels, keep)

		if cur.NumRows() == 0 {
			return model.NewDecisionList(ordered, model.Majority(labels)), nil
		}

		pool = append(pool[:best], pool[best+1:]...)
		if best < defaultIdx {
			defaultIdx--
		}
		// The fallback tracks the majority of what is still uncovered.
		pool[defaultIdx].Consequent = model.Majority(curLabels)
	}

	// Unreachable: the default rule always survives filtering and always
	// terminates the loop when picked.
	return model.DecisionList{}, fmt.Errorf("%w: covering pool exhausted without a default", ErrInternalInvariant)
}

// defaultRule builds the tautological fallback predicting the majority label.
func defaultRule(labels []model.Label) model.Rule {
	r := model.NewRule(model.NewConjunction(), model.Majority(labels))
	r.Info = map[string]string{originKey: "default"}
	return r
}

// filterByFrequency keeps rules whose support on the full dataset meets the
// minimum frequency. The trailing default rule is always kept.
func filterByFrequency(ctx context.Context, pool []model.Rule, ds *dataset.Dataset, labels []model.Label, minFreq float64, workers int) ([]model.Rule, error) {
	ms, err := measureAll(ctx, pool, ds, labels, workers)
	if err != nil {
		return nil, err
	}
	kept := make([]model.Rule, 0, len(pool))
	for i, r := range pool {
		if i == len(pool)-1 || ms[i].Support >= minFreq {
			kept = append(kept, r)
		} else {
			debug.Phasef("cover", "dropping %q, support %.4f below %.4f", r.String(), ms[i].Support, minFreq)
		}
	}
	return kept, nil
}

// measureAll computes per-rule metrics over a bounded pool, in input order.
func measureAll(ctx context.Context, pool []model.Rule, ds *dataset.Dataset, labels []model.Label, workers int) ([]Metrics, error) {
	out := make([]Metrics, len(pool))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range pool {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Measure(r, ds, labels)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: metric computation interrupted", ErrCancelled)
	}
	return out, nil
}

// bestIndex picks min error, then max support, then min length, then a
// uniform draw among exact ties.
func bestIndex(ms []Metrics, rng *rand.Rand) (int, error) {
	ties := make([]int, 0, 1)
	for i, m := range ms {
		if len(ties) == 0 {
			ties = append(ties, i)
			continue
		}
		lead := ms[ties[0]]
		switch {
		case m.Error < lead.Error,
			m.Error == lead.Error && m.Support > lead.Support,
			m.Error == lead.Error && m.Support == lead.Support && m.Length < lead.Length:
			ties = ties[:0]
			ties = append(ties, i)
		case m.Error == lead.Error && m.Support == lead.Support && m.Length == lead.Length:
			ties = append(ties, i)
		}
	}
	if len(ties) == 0 {
		return 0, fmt.Errorf("%w: empty candidate set in tie-break", ErrInternalInvariant)
	}
	if len(ties) == 1 {
		return ties[0], nil
	}
	return ties[rng.Intn(len(ties))], nil
}

func pickLabels(labels []model.Label, idxs []int) []model.Label {
	out := make([]model.Label, len(idxs))
	for i, idx := range idxs {
		out[i] = labels[idx]
	}
	return out
}
