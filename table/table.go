package table

import (
	"fmt"

	"github.com/kbukum/groupchain/errors"
)

// Table is a two-dimensional collection of labelled columns sharing a row index.
type Table struct {
	index []Label
	cols  []*Column
}

// New builds a table. A nil index yields the range index 0..n-1. Every column
// must have as many cells as the index has labels.
func New(index []Label, cols ...*Column) (*Table, error) {
	n := len(index)
	if index == nil && len(cols) > 0 {
		n = cols[0].Len()
		index = RangeIndex(n)
	}
	for _, c := range cols {
		if c == nil {
			return nil, errors.InvalidInput("columns", "nil column")
		}
		if c.Len() != n {
			return nil, errors.InvalidInput("columns", fmt.Sprintf(
				"column %s has %d rows, index has %d", FormatLabel(c.label), c.Len(), n))
		}
	}
	idx := make([]Label, n)
	copy(idx, index)
	own := make([]*Column, len(cols))
	for i, c := range cols {
		own[i] = c.Clone()
	}
	return &Table{index: idx, cols: own}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.index) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.cols) }

// Index returns a copy of the row labels.
func (t *Table) Index() []Label {
	out := make([]Label, len(t.index))
	copy(out, t.index)
	return out
}

// RowLabel returns the label of row i.
func (t *Table) RowLabel(i int) Label { return t.index[i] }

// Column returns column i. The column is owned by the table.
func (t *Table) Column(i int) *Column { return t.cols[i] }

// ColumnLabels returns the column labels in order.
func (t *Table) ColumnLabels() []Label {
	out := make([]Label, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.label
	}
	return out
}

// ColumnByLabel returns the first column with the given label.
func (t *Table) ColumnByLabel(l Label) (*Column, bool) {
	for _, c := range t.cols {
		if Equal(c.label, l) {
			return c, true
		}
	}
	return nil, false
}

// NumericColumns returns the positions of the numeric columns.
func (t *Table) NumericColumns() []int {
	var out []int
	for i, c := range t.cols {
		if c.IsNumeric() {
			out = append(out, i)
		}
	}
	return out
}

// NumericLabels returns the labels of the numeric columns.
func (t *Table) NumericLabels() []Label {
	pos := t.NumericColumns()
	out := make([]Label, len(pos))
	for i, p := range pos {
		out[i] = t.cols[p].label
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.Clone()
	}
	return &Table{index: t.Index(), cols: cols}
}

// WithIndex returns a copy of the table with new row labels.
func (t *Table) WithIndex(index []Label) (*Table, error) {
	if len(index) != len(t.index) {
		return nil, errors.InvalidInput("index", fmt.Sprintf(
			"length mismatch: expected %d labels, got %d", len(t.index), len(index)))
	}
	out := t.Clone()
	copy(out.index, index)
	return out, nil
}

// WithColumnLabels returns a copy of the table with new column labels.
func (t *Table) WithColumnLabels(labels []Label) (*Table, error) {
	if len(labels) != len(t.cols) {
		return nil, errors.InvalidInput("columns", fmt.Sprintf(
			"length mismatch: expected %d labels, got %d", len(t.cols), len(labels)))
	}
	out := t.Clone()
	for i, c := range out.cols {
		c.label = labels[i]
	}
	return out, nil
}

// Take returns the rows at the given positions, in order.
func (t *Table) Take(rows []int) *Table {
	idx := make([]Label, len(rows))
	for i, r := range rows {
		idx[i] = t.index[r]
	}
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.take(rows)
	}
	return &Table{index: idx, cols: cols}
}

// Series is a single labelled column with its own row index.
type Series struct {
	Index []Label
	Data  *Column
}

// NewSeries builds a numeric series. A nil index yields the range index.
func NewSeries(index []Label, values []float64) *Series {
	if index == nil {
		index = RangeIndex(len(values))
	}
	return &Series{Index: index, Data: NewNumericColumn(nil, values)}
}

// ToTable converts the series into a one-column table named name.
func (s *Series) ToTable(name Label) (*Table, error) {
	if s == nil || s.Data == nil {
		return nil, errors.InvalidInput("series", "nil series")
	}
	return New(s.Index, s.Data.WithLabel(name))
}
