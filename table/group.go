package table

import (
	"math"
	"sort"

	"github.com/kbukum/groupchain/errors"
)

// Group is one partition of a table sharing a key value.
type Group struct {
	Label Label
	Table *Table
}

// Key computes the grouping key of every row of a table.
type Key interface {
	Keys(t *Table) ([]Label, error)
}

type columnKey struct{ label Label }

// ByColumn groups rows by the values of the column with the given label.
func ByColumn(label Label) Key { return columnKey{label: label} }

func (k columnKey) Keys(t *Table) ([]Label, error) {
	col, ok := t.ColumnByLabel(k.label)
	if !ok {
		return nil, errors.InvalidInput("key", "no column labelled "+FormatLabel(k.label))
	}
	return col.Values(), nil
}

type indexKey struct{}

// ByIndex groups rows by their row label.
func ByIndex() Key { return indexKey{} }

func (indexKey) Keys(t *Table) ([]Label, error) { return t.Index(), nil }

// KeyFunc maps a row label to a group key.
type KeyFunc func(row Label) Label

// ByFunc groups rows by fn applied to each row label.
func ByFunc(fn KeyFunc) Key { return fn }

// Keys implements Key.
func (fn KeyFunc) Keys(t *Table) ([]Label, error) {
	out := make([]Label, t.Len())
	for i, l := range t.index {
		out[i] = fn(l)
	}
	return out, nil
}

type groupOptions struct {
	keepOrder bool
}

// GroupOption configures GroupBy.
type GroupOption func(*groupOptions)

// KeepOrder keeps groups in order of first appearance instead of sorting keys.
func KeepOrder() GroupOption {
	return func(o *groupOptions) { o.keepOrder = true }
}

// GroupBy partitions t by key. Groups are sorted by key when all keys can be
// ordered against each other and in first-seen order otherwise. Rows whose
// key is nil or NaN belong to no group.
func GroupBy(t *Table, key Key, opts ...GroupOption) ([]Group, error) {
	if t == nil {
		return nil, errors.InvalidInput("table", "nil table")
	}
	if key == nil {
		return nil, errors.InvalidInput("key", "nil key")
	}
	var o groupOptions
	for _, opt := range opts {
		opt(&o)
	}

	keys, err := key.Keys(t)
	if err != nil {
		return nil, err
	}
	if len(keys) != t.Len() {
		return nil, errors.InvalidInput("key", "key length does not match the number of rows")
	}

	var labels []Label
	var rows [][]int
	for i, k := range keys {
		if isMissing(k) {
			continue
		}
		pos := IndexOf(labels, k)
		if pos < 0 {
			labels = append(labels, k)
			rows = append(rows, nil)
			pos = len(labels) - 1
		}
		rows[pos] = append(rows[pos], i)
	}

	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	if !o.keepOrder && Orderable(labels) {
		sort.SliceStable(order, func(a, b int) bool {
			less, _ := Less(labels[order[a]], labels[order[b]])
			return less
		})
	}

	groups := make([]Group, len(order))
	for i, pos := range order {
		groups[i] = Group{Label: labels[pos], Table: t.Take(rows[pos])}
	}
	return groups, nil
}

func isMissing(l Label) bool {
	if l == nil {
		return true
	}
	f, ok := l.(float64)
	return ok && math.IsNaN(f)
}
