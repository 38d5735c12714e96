package chain

import "github.com/kbukum/groupchain/table"

// groupFilter restricts a step to some groups. A non-empty only list wins
// over the ignore list; with both empty the step applies to every group.
type groupFilter struct {
	only   []table.Label
	ignore []table.Label
}

func (f groupFilter) allows(label table.Label) bool {
	if len(f.only) > 0 {
		return table.Contains(f.only, label)
	}
	if len(f.ignore) > 0 {
		return !table.Contains(f.ignore, label)
	}
	return true
}

type opConfig struct {
	filter groupFilter
	column *Target
}

type resetConfig struct {
	filter        groupFilter
	handleFuture  bool
	resetPosition int
}

// StepOption configures a step queued with Apply.
type StepOption interface {
	applyStep(*groupFilter)
}

// OpOption configures an arithmetic step.
type OpOption interface {
	applyOp(*opConfig)
}

// ResetOption configures a ResetIndex step.
type ResetOption interface {
	applyReset(*resetConfig)
}

// FilterOption limits a step to some groups. It is accepted by every step
// builder.
type FilterOption func(*groupFilter)

func (o FilterOption) applyStep(f *groupFilter)  { o(f) }
func (o FilterOption) applyOp(c *opConfig)       { o(&c.filter) }
func (o FilterOption) applyReset(c *resetConfig) { o(&c.filter) }

// OnlyGroups applies the step to the named groups only. It takes precedence
// over IgnoreGroups. The labels are copied.
func OnlyGroups(labels ...table.Label) FilterOption {
	captured := append([]table.Label(nil), labels...)
	return func(f *groupFilter) { f.only = captured }
}

// IgnoreGroups skips the step for the named groups. The labels are copied.
func IgnoreGroups(labels ...table.Label) FilterOption {
	captured := append([]table.Label(nil), labels...)
	return func(f *groupFilter) { f.ignore = captured }
}

type columnOption Target

func (o columnOption) applyOp(c *opConfig) {
	t := Target(o)
	c.column = &t
}

// Column makes an arithmetic step use a reference column instead of a
// reference row.
func Column(target Target) OpOption { return columnOption(target) }

type resetOption func(*resetConfig)

func (o resetOption) applyReset(c *resetConfig) { o(c) }

// HandleFuture controls whether a reset timestamp index is turned back into
// timestamps (true, the default) or left as durations.
func HandleFuture(enabled bool) ResetOption {
	return resetOption(func(c *resetConfig) { c.handleFuture = enabled })
}

// ResetPosition sets the row whose label becomes the zero point. Defaults
// to 0.
func ResetPosition(pos int) ResetOption {
	return resetOption(func(c *resetConfig) { c.resetPosition = pos })
}
