package chain

import (
	"fmt"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/table"
)

// Axis names used in identifier errors.
const (
	axisIndex   = "index"
	axisColumns = "columns"
)

type targetKind int

const (
	targetRef targetKind = iota
	targetLabel
	targetPosition
)

// Target names a reference row or column inside a group.
type Target struct {
	kind  targetKind
	label table.Label
	pos   int
}

// ByLabel targets the row or column whose label equals v. Labels compare
// type-exactly, so ByLabel(0) never matches a timestamp at the epoch.
func ByLabel(v table.Label) Target { return Target{kind: targetLabel, label: v} }

// ByPosition targets the row or column at the 0-based position i.
func ByPosition(i int) Target { return Target{kind: targetPosition, pos: i} }

// Ref targets v as a label when a candidate matches it, and otherwise as a
// position when v is an integer.
func Ref(v table.Label) Target { return Target{kind: targetRef, label: v} }

// String renders the target for logs and errors.
func (t Target) String() string {
	switch t.kind {
	case targetLabel:
		return fmt.Sprintf("label %s", table.FormatLabel(t.label))
	case targetPosition:
		return fmt.Sprintf("position %d", t.pos)
	default:
		return table.FormatLabel(t.label)
	}
}

// resolve returns the position of t among candidates.
func (t Target) resolve(candidates []table.Label, axis string) (int, error) {
	switch t.kind {
	case targetLabel:
		if pos := table.IndexOf(candidates, t.label); pos >= 0 {
			return pos, nil
		}
		return 0, errors.InvalidIdentifier(table.FormatLabel(t.label), axis)
	case targetPosition:
		return checkPosition(t.pos, len(candidates), t, axis)
	}
	if pos := table.IndexOf(candidates, t.label); pos >= 0 {
		return pos, nil
	}
	if n, ok := table.IsInteger(t.label); ok {
		return checkPosition(n, len(candidates), t, axis)
	}
	return 0, errors.InvalidIdentifier(table.FormatLabel(t.label), axis)
}

func checkPosition(pos, n int, t Target, axis string) (int, error) {
	if pos < 0 || pos >= n {
		return 0, errors.InvalidIdentifier(t.String(), axis).
			WithDetail("length", n)
	}
	return pos, nil
}
