package extraction

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// SelectRules filters near-duplicate rules with correlation-based covering:
// each rule's coverage bitvector becomes a 0/1 column, columns are compared
// by Pearson correlation, and the greedy findcorrelation sweep drops one
// column of every pair correlated beyond theta in magnitude. Survivors come
// back in their original order.
//
// Degenerate (constant) coverage columns are dropped before the sweep: a
// rule firing on every row or on none carries no selective signal. With a
// single candidate there is nothing to decorrelate and the input passes
// through untouched.
func SelectRules(ctx context.Context, method SelectionMethod, rules []model.Rule, ds *dataset.Dataset, theta float64, workers int) ([]model.Rule, error) {
	if method != CBC {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelectionMethod, string(method))
	}
	if len(rules) < 2 {
		return rules, nil
	}

	covers, err := coverAll(ctx, rules, ds, workers)
	if err != nil {
		return nil, err
	}

	n := ds.NumRows()
	alive := make([]int, 0, len(rules))
	for j, cv := range covers {
		if c := cv.Count(); c == 0 || c == n {
			continue
		}
		alive = append(alive, j)
	}
	if len(alive) < 2 {
		return pick(rules, alive), nil
	}

	corr := correlationMatrix(covers, alive, n)
	remaining := findCorrelation(corr, theta)

	surviving := make([]int, 0, len(remaining))
	for _, k := range remaining {
		surviving = append(surviving, alive[k])
	}
	return pick(rules, surviving), nil
}

// coverAll computes each rule's coverage bitvector over a bounded pool,
// writing into pre-sized slots indexed by rule position.
func coverAll(ctx context.Context, rules []model.Rule, ds *dataset.Dataset, workers int) ([]*dataset.BitVector, error) {
	out := make([]*dataset.BitVector, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Coverage(r, ds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: coverage computation interrupted", ErrCancelled)
	}
	return out, nil
}

// correlationMatrix builds the Pearson correlation matrix over the selected
// coverage columns, expanded to 0/1 floats.
func correlationMatrix(covers []*dataset.BitVector, cols []int, n int) *mat.SymDense {
	k := len(cols)
	data := mat.NewDense(n, k, nil)
	for j, c := range cols {
		data.SetCol(j, covers[c].Column())
	}
	corr := mat.NewSymDense(k, nil)
	stat.CorrelationMatrix(corr, data, nil)
	return corr
}

// findCorrelation greedily removes columns until no off-diagonal entry of
// the correlation matrix exceeds theta in magnitude. At each step the pair
// with the largest magnitude loses whichever member has the higher mean
// absolute correlation with the remaining columns; ties drop the earlier
// column. Returns the surviving column indices in ascending order.
func findCorrelation(corr *mat.SymDense, theta float64) []int {
	k := corr.SymmetricDim()
	remaining := make([]int, k)
	for i := range remaining {
		remaining[i] = i
	}

	for len(remaining) > 1 {
		bestA, bestB := -1, -1
		bestAbs := theta
		for ai := 0; ai < len(remaining); ai++ {
			for bi := ai + 1; bi < len(remaining); bi++ {
				abs := math.Abs(corr.At(remaining[ai], remaining[bi]))
				if abs > bestAbs {
					bestAbs = abs
					bestA, bestB = ai, bi
				}
			}
		}
		if bestA == -1 {
			break
		}
		if meanAbsCorr(corr, remaining, bestA) >= meanAbsCorr(corr, remaining, bestB) {
			remaining = append(remaining[:bestA], remaining[bestA+1:]...)
		} else {
			remaining = append(remaining[:bestB], remaining[bestB+1:]...)
		}
	}
	return remaining
}

// meanAbsCorr averages |corr| between remaining[at] and every other
// remaining column.
func meanAbsCorr(corr *mat.SymDense, remaining []int, at int) float64 {
	if len(remaining) < 2 {
		return 0
	}
	sum := 0.0
	for i, col := range remaining {
		if i == at {
			continue
		}
		sum += math.Abs(corr.At(remaining[at], col))
	}
	return sum / float64(len(remaining)-1)
}

func pick(rules []model.Rule, idxs []int) []model.Rule {
	out := make([]model.Rule, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, rules[i])
	}
	return out
}
