package chain

import (
	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/table"
)

// Func transforms the table of one group.
type Func func(*table.Table) (*table.Table, error)

// Step transforms one group and keeps its label.
type Step func(Group) (Group, error)

func newStep(fn Func, filter groupFilter) Step {
	return func(g Group) (Group, error) {
		if !filter.allows(g.Label) {
			return g, nil
		}
		out, err := fn(g.Table)
		if err != nil {
			return Group{}, err
		}
		if out == nil {
			return Group{}, errors.InvalidInput("step", "transform returned a nil table")
		}
		return Group{Label: g.Label, Table: out}, nil
	}
}

// Apply queues fn. Filter options are captured now; later changes to the
// label slices passed to them have no effect.
func (c *Chain) Apply(fn Func, opts ...StepOption) *Chain {
	return c.ApplyEach([]Func{fn}, opts...)
}

// ApplyEach queues every function in fns, in order, with the same filter.
func (c *Chain) ApplyEach(fns []Func, opts ...StepOption) *Chain {
	if c.err != nil {
		return c
	}
	var filter groupFilter
	for _, opt := range opts {
		opt.applyStep(&filter)
	}
	for _, fn := range fns {
		if fn == nil {
			c.err = errors.InvalidInput("step", "nil function")
			return c
		}
		c.steps = append(c.steps, newStep(fn, filter))
	}
	return c
}

func (c *Chain) queue(fn Func, filter groupFilter) *Chain {
	if c.err != nil {
		return c
	}
	c.steps = append(c.steps, newStep(fn, filter))
	return c
}

// ClearPipeline removes every queued step.
func (c *Chain) ClearPipeline() *Chain {
	c.steps = nil
	return c
}

// Steps returns the number of queued steps.
func (c *Chain) Steps() int { return len(c.steps) }

// Pipeline composes the steps queued so far, oldest first. Steps queued
// later do not change the returned Step.
func (c *Chain) Pipeline() Step {
	return compose(append([]Step(nil), c.steps...))
}

func compose(steps []Step) Step {
	return func(g Group) (Group, error) {
		var err error
		for _, s := range steps {
			if g, err = s(g); err != nil {
				return Group{}, err
			}
		}
		return g, nil
	}
}

// Subtract queues a subtraction of a reference row, or of a reference column
// when the Column option is given.
func (c *Chain) Subtract(ref Target, opts ...OpOption) *Chain {
	return c.operate(Subtract, ref, opts)
}

// Add queues an addition of a reference row or column.
func (c *Chain) Add(ref Target, opts ...OpOption) *Chain {
	return c.operate(Add, ref, opts)
}

// Multiply queues a multiplication by a reference row or column.
func (c *Chain) Multiply(ref Target, opts ...OpOption) *Chain {
	return c.operate(Multiply, ref, opts)
}

// Divide queues a division by a reference row or column. Zero operands give
// IEEE-754 infinities and NaNs.
func (c *Chain) Divide(ref Target, opts ...OpOption) *Chain {
	return c.operate(Divide, ref, opts)
}

func (c *Chain) operate(op Operation, ref Target, opts []OpOption) *Chain {
	var cfg opConfig
	for _, opt := range opts {
		opt.applyOp(&cfg)
	}
	column := cfg.column
	return c.queue(func(t *table.Table) (*table.Table, error) {
		return Execute(t, op, ref, column)
	}, cfg.filter)
}

// ResetStartingValues queues a subtraction of the first row, so every
// numeric column of a group starts at zero.
func (c *Chain) ResetStartingValues(opts ...StepOption) *Chain {
	var filter groupFilter
	for _, opt := range opts {
		opt.applyStep(&filter)
	}
	return c.queue(func(t *table.Table) (*table.Table, error) {
		return Execute(t, Subtract, ByPosition(0), nil)
	}, filter)
}

// ResetIndex queues a shift of each group's row labels so the label at the
// reset position becomes zero.
func (c *Chain) ResetIndex(opts ...ResetOption) *Chain {
	cfg := resetConfig{handleFuture: true}
	for _, opt := range opts {
		opt.applyReset(&cfg)
	}
	pos, future := cfg.resetPosition, cfg.handleFuture
	return c.queue(func(t *table.Table) (*table.Table, error) {
		return ResetIndex(t, pos, future)
	}, cfg.filter)
}
