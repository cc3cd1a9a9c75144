package extraction

import (
	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// Evaluation is the per-instance outcome of applying one rule to a labeled
// dataset.
//
// Consequent satisfaction is tri-state: true on satisfied rows predicted
// correctly, false on satisfied rows predicted wrongly, unknown on rows the
// antecedent does not cover. It is encoded as the (AntSat, Hits) bitvector
// pair and decoded by ConsSat.
type Evaluation struct {
	// AntSat holds bit i when the rule's antecedent holds on row i.
	AntSat *dataset.BitVector
	// Hits holds bit i when the antecedent holds and the prediction matches
	// the true label.
	Hits *dataset.BitVector
	// SatIdxs lists the satisfied row positions in ascending order.
	SatIdxs []int
}

// ConsSat returns the consequent-satisfaction tri-state for row i: known
// is false on rows the antecedent does not cover.
func (e Evaluation) ConsSat(i int) (value, known bool) {
	if !e.AntSat.Get(i) {
		return false, false
	}
	return e.Hits.Get(i), true
}

// Predictions returns the per-row predicted labels, empty where the
// antecedent does not hold.
func (e Evaluation) Predictions(cons model.Label) []model.Label {
	out := make([]model.Label, e.AntSat.Len())
	for _, i := range e.SatIdxs {
		out[i] = cons
	}
	return out
}

// Evaluate applies the rule to every row of the dataset.
func Evaluate(r model.Rule, ds *dataset.Dataset, labels []model.Label) Evaluation {
	n := ds.NumRows()
	antSat := dataset.NewBitVector(n)
	hits := dataset.NewBitVector(n)
	var sat []int
	for i := 0; i < n; i++ {
		if !r.Antecedent.Holds(ds.Row(i)) {
			continue
		}
		antSat.Set(i)
		sat = append(sat, i)
		if labels[i] == r.Consequent {
			hits.Set(i)
		}
	}
	return Evaluation{AntSat: antSat, Hits: hits, SatIdxs: sat}
}

// Coverage returns only the antecedent-satisfaction bitvector, skipping the
// label comparison. Used where labels are irrelevant (rule selection).
func Coverage(r model.Rule, ds *dataset.Dataset) *dataset.BitVector {
	n := ds.NumRows()
	v := dataset.NewBitVector(n)
	for i := 0; i < n; i++ {
		if r.Antecedent.Holds(ds.Row(i)) {
			v.Set(i)
		}
	}
	return v
}

// Metrics summarizes one rule over one labeled dataset.
type Metrics struct {
	Support    float64
	Error      float64
	Confidence float64
	Length     int
}

// Measure computes the rule's metrics. A rule covering no rows has error
// 1.0 by convention so it never wins the covering loop.
func Measure(r model.Rule, ds *dataset.Dataset, labels []model.Label) Metrics {
	ev := Evaluate(r, ds, labels)
	return measureFromEval(r, ev, ds.NumRows())
}

func measureFromEval(r model.Rule, ev Evaluation, n int) Metrics {
	m := Metrics{Length: r.Length(), Error: 1.0}
	covered := len(ev.SatIdxs)
	if n > 0 {
		m.Support = float64(covered) / float64(n)
	}
	if covered > 0 {
		wrong := covered - ev.Hits.Count()
		m.Error = float64(wrong) / float64(covered)
	}
	m.Confidence = 1 - m.Error
	return m
}
