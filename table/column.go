package table

import (
	"math"
)

// Kind is the storage class of a column.
type Kind int

const (
	// Numeric columns hold float64 values; missing cells are NaN.
	Numeric Kind = iota
	// Object columns hold arbitrary values; missing cells are nil.
	Object
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "object"
}

// Column is a labelled vector of cells.
type Column struct {
	label Label
	kind  Kind
	nums  []float64
	objs  []any
}

// NewNumericColumn creates a numeric column. The values slice is copied.
func NewNumericColumn(label Label, values []float64) *Column {
	nums := make([]float64, len(values))
	copy(nums, values)
	return &Column{label: label, kind: Numeric, nums: nums}
}

// NewObjectColumn creates an object column. The values slice is copied.
func NewObjectColumn(label Label, values []any) *Column {
	objs := make([]any, len(values))
	copy(objs, values)
	return &Column{label: label, kind: Object, objs: objs}
}

// NewStringColumn creates an object column from strings.
func NewStringColumn(label Label, values []string) *Column {
	objs := make([]any, len(values))
	for i, v := range values {
		objs[i] = v
	}
	return &Column{label: label, kind: Object, objs: objs}
}

// Label returns the column label.
func (c *Column) Label() Label { return c.label }

// Kind returns the storage class.
func (c *Column) Kind() Kind { return c.kind }

// IsNumeric reports whether the column holds float64 values.
func (c *Column) IsNumeric() bool { return c.kind == Numeric }

// Len returns the number of cells.
func (c *Column) Len() int {
	if c.kind == Numeric {
		return len(c.nums)
	}
	return len(c.objs)
}

// Float returns the numeric value at row i. Object columns return NaN.
func (c *Column) Float(i int) float64 {
	if c.kind != Numeric {
		return math.NaN()
	}
	return c.nums[i]
}

// SetFloat stores v at row i of a numeric column.
func (c *Column) SetFloat(i int, v float64) {
	if c.kind == Numeric {
		c.nums[i] = v
	}
}

// Value returns the cell at row i; numeric cells are float64.
func (c *Column) Value(i int) any {
	if c.kind == Numeric {
		return c.nums[i]
	}
	return c.objs[i]
}

// Floats returns a copy of the numeric values, or nil for object columns.
func (c *Column) Floats() []float64 {
	if c.kind != Numeric {
		return nil
	}
	out := make([]float64, len(c.nums))
	copy(out, c.nums)
	return out
}

// Values returns a copy of the cells as []any.
func (c *Column) Values() []any {
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	if c.kind == Numeric {
		return NewNumericColumn(c.label, c.nums)
	}
	return NewObjectColumn(c.label, c.objs)
}

// WithLabel returns a copy of the column under a new label.
func (c *Column) WithLabel(label Label) *Column {
	out := c.Clone()
	out.label = label
	return out
}

// take gathers the rows at the given positions; -1 yields a missing cell.
func (c *Column) take(rows []int) *Column {
	if c.kind == Numeric {
		nums := make([]float64, len(rows))
		for i, r := range rows {
			if r < 0 {
				nums[i] = math.NaN()
				continue
			}
			nums[i] = c.nums[r]
		}
		return &Column{label: c.label, kind: Numeric, nums: nums}
	}
	objs := make([]any, len(rows))
	for i, r := range rows {
		if r >= 0 {
			objs[i] = c.objs[r]
		}
	}
	return &Column{label: c.label, kind: Object, objs: objs}
}
