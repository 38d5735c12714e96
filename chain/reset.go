package chain

import (
	"fmt"
	"time"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/table"
)

var epoch = time.Unix(0, 0).UTC()

// ResetIndex shifts the row labels of t so the label at position pos becomes
// zero. Integer and float labels yield numbers of the same type. Timestamp
// labels yield time.Duration offsets, or, when handleFuture is set, the
// timestamps at those offsets from the Unix epoch.
func ResetIndex(t *table.Table, pos int, handleFuture bool) (*table.Table, error) {
	if t == nil {
		return nil, errors.InvalidInput("table", "nil table")
	}
	index := t.Index()
	if _, err := ByPosition(pos).resolve(index, axisIndex); err != nil {
		return nil, err
	}

	shifted := make([]table.Label, len(index))
	switch ref := index[pos].(type) {
	case time.Time:
		for i, l := range index {
			ts, ok := l.(time.Time)
			if !ok {
				return nil, mixedIndex(ref, l)
			}
			offset := ts.Sub(ref)
			if handleFuture {
				shifted[i] = epoch.Add(offset)
			} else {
				shifted[i] = offset
			}
		}
	case float64:
		for i, l := range index {
			f, ok := l.(float64)
			if !ok {
				return nil, mixedIndex(ref, l)
			}
			shifted[i] = f - ref
		}
	default:
		base, ok := table.IsInteger(ref)
		if !ok {
			return nil, errors.InvalidInput("index", fmt.Sprintf("cannot reset an index of %T labels", ref))
		}
		for i, l := range index {
			n, isInt := table.IsInteger(l)
			if !isInt {
				return nil, mixedIndex(ref, l)
			}
			shifted[i] = n - base
		}
	}
	return t.WithIndex(shifted)
}

func mixedIndex(ref, l table.Label) error {
	return errors.InvalidInput("index", fmt.Sprintf("cannot reset an index mixing %T and %T labels", ref, l))
}
