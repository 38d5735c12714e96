package table

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kbukum/groupchain/errors"
)

// Axis selects rows (0) or columns (1).
type Axis int

const (
	// Rows stacks tables vertically; the row index grows.
	Rows Axis = 0
	// Columns places tables side by side; the column set grows.
	Columns Axis = 1
)

// Valid reports whether a is Rows or Columns.
func (a Axis) Valid() bool { return a == Rows || a == Columns }

// String returns "index" or "columns".
func (a Axis) String() string {
	switch a {
	case Rows:
		return "index"
	case Columns:
		return "columns"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis accepts an Axis, an integer 0/1, or one of "index", "rows",
// "columns".
func ParseAxis(v any) (Axis, error) {
	switch a := v.(type) {
	case Axis:
		if a.Valid() {
			return a, nil
		}
	case string:
		switch strings.ToLower(a) {
		case "index", "rows", "0":
			return Rows, nil
		case "columns", "1":
			return Columns, nil
		}
	default:
		if n, ok := IsInteger(v); ok && Axis(n).Valid() {
			return Axis(n), nil
		}
	}
	return 0, errors.InvalidAxis(v)
}

// Concat joins tables along axis. Along Rows, columns are aligned by label
// and missing cells are filled (NaN or nil). Along Columns, tables sharing an
// identical index are placed side by side; otherwise rows are aligned on the
// union of the index labels, sorted when the labels are orderable.
func Concat(tables []*Table, axis Axis) (*Table, error) {
	if !axis.Valid() {
		return nil, errors.InvalidAxis(int(axis))
	}
	if len(tables) == 0 {
		return nil, errors.InvalidInput("tables", "no tables to concatenate")
	}
	for _, t := range tables {
		if t == nil {
			return nil, errors.InvalidInput("tables", "nil table")
		}
	}
	if axis == Rows {
		return concatRows(tables), nil
	}
	return concatColumns(tables)
}

func concatRows(tables []*Table) *Table {
	var labels []Label
	kinds := map[int]Kind{}
	for _, t := range tables {
		for _, c := range t.cols {
			pos := IndexOf(labels, c.label)
			if pos < 0 {
				labels = append(labels, c.label)
				kinds[len(labels)-1] = c.kind
				continue
			}
			if kinds[pos] != c.kind {
				kinds[pos] = Object
			}
		}
	}

	var index []Label
	for _, t := range tables {
		index = append(index, t.index...)
	}

	cols := make([]*Column, len(labels))
	for ci, label := range labels {
		if kinds[ci] == Numeric {
			nums := make([]float64, 0, len(index))
			for _, t := range tables {
				src, ok := t.ColumnByLabel(label)
				for r := 0; r < t.Len(); r++ {
					if !ok {
						nums = append(nums, math.NaN())
						continue
					}
					nums = append(nums, src.nums[r])
				}
			}
			cols[ci] = &Column{label: label, kind: Numeric, nums: nums}
			continue
		}
		objs := make([]any, 0, len(index))
		for _, t := range tables {
			src, ok := t.ColumnByLabel(label)
			for r := 0; r < t.Len(); r++ {
				if !ok {
					objs = append(objs, nil)
					continue
				}
				objs = append(objs, src.Value(r))
			}
		}
		cols[ci] = &Column{label: label, kind: Object, objs: objs}
	}
	return &Table{index: index, cols: cols}
}

func concatColumns(tables []*Table) (*Table, error) {
	first := tables[0]
	aligned := true
	for _, t := range tables[1:] {
		if !sameIndex(first.index, t.index) {
			aligned = false
			break
		}
	}

	if aligned {
		var cols []*Column
		for _, t := range tables {
			for _, c := range t.cols {
				cols = append(cols, c.Clone())
			}
		}
		return &Table{index: first.Index(), cols: cols}, nil
	}

	var union []Label
	for _, t := range tables {
		if hasDuplicates(t.index) {
			return nil, errors.InvalidInput("index", "cannot align tables with duplicate row labels")
		}
		for _, l := range t.index {
			if !Contains(union, l) {
				union = append(union, l)
			}
		}
	}
	if Orderable(union) {
		sort.SliceStable(union, func(a, b int) bool {
			less, _ := Less(union[a], union[b])
			return less
		})
	}

	var cols []*Column
	for _, t := range tables {
		rows := make([]int, len(union))
		for i, l := range union {
			rows[i] = IndexOf(t.index, l)
		}
		for _, c := range t.cols {
			cols = append(cols, c.take(rows))
		}
	}
	return &Table{index: union, cols: cols}, nil
}

func sameIndex(a, b []Label) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func hasDuplicates(labels []Label) bool {
	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			if Equal(labels[i], labels[j]) {
				return true
			}
		}
	}
	return false
}
