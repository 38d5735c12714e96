package chain

import (
	"strings"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/table"
)

// Operation is an elementwise arithmetic operation against a reference value.
type Operation int

const (
	Subtract Operation = iota
	Add
	Multiply
	Divide
)

var operationNames = [...]string{"subtract", "add", "multiply", "divide"}

// String returns the lower-case operation name.
func (o Operation) String() string {
	if o < Subtract || o > Divide {
		return "unknown"
	}
	return operationNames[o]
}

// ParseOperation maps an operation name to its Operation.
func ParseOperation(name string) (Operation, error) {
	for i, n := range operationNames {
		if strings.EqualFold(n, name) {
			return Operation(i), nil
		}
	}
	return 0, errors.InvalidInput("operation", "not one of subtract | add | multiply | divide: "+name)
}

func (o Operation) eval(x, ref float64) float64 {
	switch o {
	case Add:
		return x + ref
	case Multiply:
		return x * ref
	case Divide:
		return x / ref
	default:
		return x - ref
	}
}

// Execute applies op to every numeric column of t. Without a column target
// the operand of each column is its value in the reference row ref. With a
// column target, ref is ignored and each row's operand is the value of the
// reference column in that row. Object columns are copied unchanged and t
// itself is never modified.
func Execute(t *table.Table, op Operation, ref Target, column *Target) (*table.Table, error) {
	if t == nil {
		return nil, errors.InvalidInput("table", "nil table")
	}
	if op < Subtract || op > Divide {
		return nil, errors.InvalidInput("operation", op.String())
	}
	numeric := t.NumericColumns()
	out := t.Clone()

	if column == nil {
		row, err := ref.resolve(t.Index(), axisIndex)
		if err != nil {
			return nil, err
		}
		for _, p := range numeric {
			src, dst := t.Column(p), out.Column(p)
			operand := src.Float(row)
			for r := 0; r < t.Len(); r++ {
				dst.SetFloat(r, op.eval(src.Float(r), operand))
			}
		}
		return out, nil
	}

	pos, err := column.resolve(t.NumericLabels(), axisColumns)
	if err != nil {
		return nil, err
	}
	operands := t.Column(numeric[pos]).Floats()
	for _, p := range numeric {
		src, dst := t.Column(p), out.Column(p)
		for r, operand := range operands {
			dst.SetFloat(r, op.eval(src.Float(r), operand))
		}
	}
	return out, nil
}
