package chain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/observability"
	"github.com/kbukum/groupchain/table"
)

// DefaultSeriesColumn names the column of a table built from a series.
const DefaultSeriesColumn = "Value"

// Group is one labelled partition of the wrapped table.
type Group = table.Group

// Chain wraps a table, its groups and the queue of steps applied to them.
type Chain struct {
	id      string
	source  *table.Table
	groups  []Group
	grouped bool
	steps   []Step
	err     error
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger used for operation logs.
func WithLogger(l *logger.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records group and operation metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Chain) { c.metrics = m }
}

func newChain(t *table.Table, err error, opts []Option) *Chain {
	c := &Chain{
		id:  uuid.NewString(),
		err: err,
		log: logger.Get("chain"),
	}
	if t != nil {
		c.source = t.Clone()
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithFields(logger.Fields(logger.FieldChainID, c.id))
	return c
}

// FromTable wraps a copy of t.
func FromTable(t *table.Table, opts ...Option) *Chain {
	if t == nil {
		return newChain(nil, errors.InvalidInput("table", "nil table"), opts)
	}
	return newChain(t, nil, opts)
}

// FromSeries wraps s as a one-column table. An empty name selects
// DefaultSeriesColumn.
func FromSeries(s *table.Series, name string, opts ...Option) *Chain {
	if name == "" {
		name = DefaultSeriesColumn
	}
	t, err := s.ToTable(name)
	return newChain(t, err, opts)
}

// Wrap wraps a *table.Table or a *table.Series. Anything else is rejected.
func Wrap(v any, opts ...Option) (*Chain, error) {
	switch x := v.(type) {
	case *table.Table:
		c := FromTable(x, opts...)
		return c, c.err
	case *table.Series:
		c := FromSeries(x, "", opts...)
		return c, c.err
	default:
		return nil, errors.InvalidInput("object", fmt.Sprintf("must be a table or a series, got %T", v))
	}
}

// ID returns the identifier that tags this chain's logs and spans.
func (c *Chain) ID() string { return c.id }

// Err returns the first error recorded while building the chain.
func (c *Chain) Err() error { return c.err }

// Rename relabels the only column of a one-column table. It does nothing
// for wider tables or once the chain is grouped.
func (c *Chain) Rename(name table.Label) *Chain {
	if c.err != nil || c.grouped || c.source.Width() != 1 {
		return c
	}
	renamed, err := c.source.WithColumnLabels([]table.Label{name})
	if err != nil {
		c.err = err
		return c
	}
	c.source = renamed
	return c
}

// GroupBy partitions the wrapped table by key. Grouping an already grouped
// chain does nothing.
func (c *Chain) GroupBy(key table.Key, opts ...table.GroupOption) *Chain {
	if c.err != nil || c.grouped {
		return c
	}
	groups, err := table.GroupBy(c.source, key, opts...)
	if err != nil {
		c.err = err
		return c
	}
	c.groups = groups
	c.grouped = true
	c.log.Debug("table grouped", logger.Fields(logger.FieldGroups, len(groups)))
	return c
}

// Groups returns copies of the untransformed groups.
func (c *Chain) Groups() ([]Group, error) {
	if err := c.ready("groups"); err != nil {
		return nil, err
	}
	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		out[i] = Group{Label: g.Label, Table: g.Table.Clone()}
	}
	return out, nil
}

// LabelForGroup returns the label of the i-th group.
func (c *Chain) LabelForGroup(i int) (table.Label, error) {
	if err := c.ready("label_for_group"); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(c.groups) {
		return nil, errors.InvalidInput("group", fmt.Sprintf("position %d out of range [0, %d)", i, len(c.groups)))
	}
	return c.groups[i].Label, nil
}

func (c *Chain) ready(op string) error {
	if c.err != nil {
		return c.err
	}
	if !c.grouped {
		return errors.PipelineNotReady(op)
	}
	return nil
}
