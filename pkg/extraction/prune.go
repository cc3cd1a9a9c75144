package extraction

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// Prune drops conjuncts whose removal does not worsen the rule's error
// beyond the decay threshold tau, scanning conjuncts in reverse original
// order. s floors the decay denominator so zero-error rules stay prunable.
//
// Multi-modal antecedents are pruned at modality granularity for free:
// their Len/Slice already treat each modality as one conjunct, so a rule
// with fewer than two modalities is returned unchanged by the length guard.
func Prune(r model.Rule, ds *dataset.Dataset, labels []model.Label, s, tau float64) model.Rule {
	n := r.Length()
	if n < 2 {
		return r
	}

	valid := make([]int, n)
	for i := range valid {
		valid[i] = i
	}
	base := Measure(r, ds, labels).Error

	for i := n - 1; i >= 0; i-- {
		if len(valid) < 2 {
			break
		}
		candidate := without(valid, i)
		if len(candidate) == len(valid) {
			continue // already dropped
		}
		e := Measure(r.Slice(candidate), ds, labels).Error
		decay := (e - base) / math.Max(base, s)
		if decay < tau {
			valid = candidate
			base = e
		}
	}
	return r.Slice(valid)
}

// without returns xs minus the value v, preserving order. Returns xs
// unchanged (same length) when v is absent.
func without(xs []int, v int) []int {
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// PruneAll prunes every rule independently over a bounded worker pool.
// Results land in input order; workers share the dataset read-only.
func PruneAll(ctx context.Context, rules []model.Rule, ds *dataset.Dataset, labels []model.Label, s, tau float64, workers int) ([]model.Rule, error) {
	out := make([]model.Rule, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Prune(r, ds, labels, s, tau)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: pruning interrupted", ErrCancelled)
	}
	return out, nil
}
