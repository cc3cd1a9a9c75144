// Package dataset provides the read-only tabular view the extraction
// pipeline evaluates rules against, plus the packed bitvector used for
// per-rule coverage.
//
// A Dataset never copies row storage: Select produces a view sharing the
// underlying rows, so the sequential-covering loop can shrink its working
// set cheaply while the full dataset stays shared across workers.
package dataset

import "fmt"

// Row is one instance. It satisfies the atom-evaluation contract of
// pkg/model (Feature by column index).
type Row []float64

// Feature returns the value of the i-th feature column.
func (r Row) Feature(i int) float64 { return r[i] }

// Dataset is a row-addressable view over instances.
type Dataset struct {
	rows []Row
}

// New builds a dataset over the given rows. Rows must share a width.
func New(rows [][]float64) (*Dataset, error) {
	ds := &Dataset{rows: make([]Row, len(rows))}
	width := -1
	for i, r := range rows {
		if width == -1 {
			width = len(r)
		} else if len(r) != width {
			return nil, fmt.Errorf("dataset row %d has %d columns, want %d", i, len(r), width)
		}
		ds.rows[i] = Row(r)
	}
	return ds, nil
}

// MustNew is New for fixtures with statically known shape.
func MustNew(rows [][]float64) *Dataset {
	ds, err := New(rows)
	if err != nil {
		panic(err)
	}
	return ds
}

// NumRows returns the number of instances in the view.
func (d *Dataset) NumRows() int { return len(d.rows) }

// NumFeatures returns the row width, 0 when empty.
func (d *Dataset) NumFeatures() int {
	if len(d.rows) == 0 {
		return 0
	}
	return len(d.rows[0])
}

// Row returns the i-th instance.
func (d *Dataset) Row(i int) Row { return d.rows[i] }

// Select returns a view keeping only the rows at the given positions, in
// the given order. Row storage is shared with the receiver.
func (d *Dataset) Select(idxs []int) *Dataset {
	rows := make([]Row, len(idxs))
	for i, idx := range idxs {
		rows[i] = d.rows[idx]
	}
	return &Dataset{rows: rows}
}
