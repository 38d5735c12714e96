package chain

import (
	"context"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/observability"
	"github.com/kbukum/groupchain/table"
)

// Naming selects how Concat relabels the concatenated axis.
type Naming string

const (
	// NamingHierarchy labels each entry table.Pair{group, original}.
	NamingHierarchy Naming = "hierarchy"
	// NamingJoin labels each entry "{original}{sep}{group}".
	NamingJoin Naming = "join"
	// NamingNone keeps the labels produced by concatenation.
	NamingNone Naming = "none"
)

// DefaultSeparator joins original and group labels in NamingJoin.
const DefaultSeparator = "|"

// ParseNaming validates a naming mode name.
func ParseNaming(s string) (Naming, error) {
	switch n := Naming(s); n {
	case NamingHierarchy, NamingJoin, NamingNone:
		return n, nil
	}
	return "", errors.InvalidNamingMode(s)
}

type concatOptions struct {
	naming Naming
	sep    string
	axis   table.Axis
	keep   bool
}

func defaultConcatOptions() concatOptions {
	return concatOptions{
		naming: NamingHierarchy,
		sep:    DefaultSeparator,
		axis:   table.Columns,
	}
}

// ConcatOption configures Concat.
type ConcatOption func(*concatOptions)

// WithNaming sets the naming mode. Defaults to NamingHierarchy.
func WithNaming(n Naming) ConcatOption {
	return func(o *concatOptions) { o.naming = n }
}

// WithSeparator sets the NamingJoin separator. Defaults to "|".
func WithSeparator(sep string) ConcatOption {
	return func(o *concatOptions) { o.sep = sep }
}

// WithAxis sets the concatenation axis. Defaults to table.Columns.
func WithAxis(axis table.Axis) ConcatOption {
	return func(o *concatOptions) { o.axis = axis }
}

// KeepPipeline leaves the steps queued after a successful Concat.
func KeepPipeline() ConcatOption {
	return func(o *concatOptions) { o.keep = true }
}

// Concat transforms every group and joins the results along the chosen axis,
// relabelling that axis with the group labels. The queued steps are cleared
// on success unless KeepPipeline is given.
func (c *Chain) Concat(ctx context.Context, opts ...ConcatOption) (*table.Table, error) {
	o := defaultConcatOptions()
	for _, opt := range opts {
		opt(&o)
	}

	oc := observability.NewOperationContext(c.id, "concat", c.metrics)
	ctx, span := oc.Start(ctx, observability.SpanConcat)
	out, err := c.concat(ctx, o)
	oc.End(ctx, span, errorCode(err), err)
	return out, err
}

func (c *Chain) concat(ctx context.Context, o concatOptions) (*table.Table, error) {
	if err := c.ready("concat"); err != nil {
		return nil, err
	}
	if !o.axis.Valid() {
		return nil, errors.InvalidAxis(int(o.axis))
	}
	if _, err := ParseNaming(string(o.naming)); err != nil {
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrAxis, o.axis.String())
	observability.SetSpanAttribute(ctx, observability.AttrNaming, string(o.naming))

	groups, err := c.transformed(ctx, "concat")
	if err != nil {
		return nil, err
	}
	tables := make([]*table.Table, len(groups))
	for i, g := range groups {
		tables[i] = g.Table
	}
	joined, err := table.Concat(tables, o.axis)
	if err != nil {
		return nil, err
	}

	out := joined
	if o.naming != NamingNone {
		out, err = relabel(joined, o.axis, axisLabels(groups, o), c.log)
		if err != nil {
			return nil, err
		}
	}

	observability.SetSpanAttribute(ctx, observability.AttrRows, out.Len())
	observability.SetSpanAttribute(ctx, observability.AttrColumns, out.Width())
	c.log.Debug("groups concatenated", logger.Fields(
		logger.FieldGroups, len(groups),
		logger.FieldSteps, len(c.steps),
		logger.FieldAxis, o.axis.String(),
		logger.FieldNaming, string(o.naming),
	))
	if !o.keep {
		c.ClearPipeline()
	}
	return out, nil
}

// axisLabels builds one label per entry of every group's axis, in group
// order.
func axisLabels(groups []Group, o concatOptions) []table.Label {
	var labels []table.Label
	for _, g := range groups {
		var originals []table.Label
		if o.axis == table.Rows {
			originals = g.Table.Index()
		} else {
			originals = g.Table.ColumnLabels()
		}
		for _, orig := range originals {
			if o.naming == NamingJoin {
				labels = append(labels, table.FormatLabel(orig)+o.sep+table.FormatLabel(g.Label))
				continue
			}
			labels = append(labels, table.Pair{Outer: g.Label, Inner: orig})
		}
	}
	return labels
}

// relabel sets labels on axis. A label count that does not match the axis
// keeps the existing labels.
func relabel(t *table.Table, axis table.Axis, labels []table.Label, log *logger.Logger) (*table.Table, error) {
	n := t.Width()
	if axis == table.Rows {
		n = t.Len()
	}
	if len(labels) != n {
		log.Warn("label count mismatch, keeping concatenated labels", logger.Fields(
			logger.FieldAxis, axis.String(), "labels", len(labels), "expected", n))
		return t, nil
	}
	if axis == table.Rows {
		return t.WithIndex(labels)
	}
	return t.WithColumnLabels(labels)
}

func errorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	if err != nil {
		return string(errors.ErrCodeInternal)
	}
	return ""
}
