package runner

import (
	"github.com/kbukum/groupchain/chain"
	"github.com/kbukum/groupchain/config"
	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/table"
)

// translator turns step configs into chain calls. Config values are text, so
// group names are matched against the formatted group labels and index
// labels are parsed with the input's index type.
type translator struct {
	groups    []chain.Group
	indexType string
	log       *logger.Logger
}

func (tr translator) queue(c *chain.Chain, s config.StepConfig) error {
	filters := tr.filters(s)
	switch s.Op {
	case config.OpResetStartingValues:
		opts := make([]chain.StepOption, len(filters))
		for i, f := range filters {
			opts[i] = f
		}
		c.ResetStartingValues(opts...)
		return nil

	case config.OpResetIndex:
		opts := make([]chain.ResetOption, 0, len(filters)+2)
		for _, f := range filters {
			opts = append(opts, f)
		}
		if s.HandleFuture != nil {
			opts = append(opts, chain.HandleFuture(*s.HandleFuture))
		}
		opts = append(opts, chain.ResetPosition(s.ResetPosition))
		c.ResetIndex(opts...)
		return nil
	}

	op, err := chain.ParseOperation(s.Op)
	if err != nil {
		return err
	}
	ref, err := tr.rowTarget(s)
	if err != nil {
		return err
	}
	opts := make([]chain.OpOption, 0, len(filters)+1)
	for _, f := range filters {
		opts = append(opts, f)
	}
	if col, ok := columnTarget(s); ok {
		opts = append(opts, chain.Column(col))
	}

	switch op {
	case chain.Subtract:
		c.Subtract(ref, opts...)
	case chain.Add:
		c.Add(ref, opts...)
	case chain.Multiply:
		c.Multiply(ref, opts...)
	case chain.Divide:
		c.Divide(ref, opts...)
	}
	return nil
}

// rowTarget selects the reference row. A column-only step leaves the row
// reference unused, so it defaults to the first row.
func (tr translator) rowTarget(s config.StepConfig) (chain.Target, error) {
	switch {
	case s.Position != nil:
		return chain.ByPosition(*s.Position), nil
	case s.Index != "":
		l, err := table.ParseLabel(s.Index, tr.indexType)
		if err != nil {
			return chain.Target{}, errors.InvalidInput("index", s.Index).WithCause(err)
		}
		return chain.ByLabel(l), nil
	case s.Column != "" || s.ColumnPosition != nil:
		return chain.ByPosition(0), nil
	}
	return chain.Target{}, errors.InvalidInput("index", s.Op+" needs an index, position, column or column_position")
}

func columnTarget(s config.StepConfig) (chain.Target, bool) {
	switch {
	case s.ColumnPosition != nil:
		return chain.ByPosition(*s.ColumnPosition), true
	case s.Column != "":
		return chain.ByLabel(s.Column), true
	}
	return chain.Target{}, false
}

func (tr translator) filters(s config.StepConfig) []chain.FilterOption {
	var out []chain.FilterOption
	if len(s.OnlyGroups) > 0 {
		out = append(out, chain.OnlyGroups(tr.groupLabels(s.OnlyGroups)...))
	}
	if len(s.IgnoreGroups) > 0 {
		out = append(out, chain.IgnoreGroups(tr.groupLabels(s.IgnoreGroups)...))
	}
	return out
}

// groupLabels maps configured names to group labels by their formatted text.
// Names matching no group are kept as strings and logged.
func (tr translator) groupLabels(names []string) []table.Label {
	labels := make([]table.Label, len(names))
	for i, name := range names {
		labels[i] = name
		found := false
		for _, g := range tr.groups {
			if table.FormatLabel(g.Label) == name {
				labels[i] = g.Label
				found = true
				break
			}
		}
		if !found {
			tr.log.Warn("no group matches configured name", logger.Fields(logger.FieldGroup, name))
		}
	}
	return labels
}
