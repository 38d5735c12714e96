package chain

import (
	"context"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/observability"
	"github.com/kbukum/groupchain/pipeline"
	"github.com/kbukum/groupchain/table"
)

// computeTransformedGroups runs step over a copy of every group, in group
// order. The first failure aborts the run and no groups are returned.
func computeTransformedGroups(ctx context.Context, groups []Group, step Step, metrics *observability.Metrics, steps int) ([]Group, error) {
	transformed := pipeline.MapIndexed(pipeline.FromSlice(groups), func(_ context.Context, pos int, g Group) (Group, error) {
		out, err := step(Group{Label: g.Label, Table: g.Table.Clone()})
		if err != nil {
			return Group{}, errors.Wrap(err).WithDetails(map[string]any{
				logger.FieldGroup: table.FormatLabel(g.Label),
				"position":        pos,
			})
		}
		return out, nil
	})
	counted := pipeline.Tap(transformed, func(ctx context.Context, _ Group) error {
		metrics.RecordGroup(ctx, steps)
		return nil
	})
	return pipeline.Collect(ctx, counted)
}

// TransformedGroups applies the current steps to every group and returns the
// results. The steps stay queued.
func (c *Chain) TransformedGroups(ctx context.Context) ([]Group, error) {
	return c.transformed(ctx, "transformed_groups")
}

func (c *Chain) transformed(ctx context.Context, op string) ([]Group, error) {
	if err := c.ready(op); err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, observability.SpanTransform)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrGroups, len(c.groups))
	observability.SetSpanAttribute(ctx, observability.AttrSteps, len(c.steps))

	groups, err := computeTransformedGroups(ctx, c.groups, c.Pipeline(), c.metrics, len(c.steps))
	if err != nil {
		observability.SetSpanError(ctx, err)
		c.log.Warn("group transform failed", logger.MergeWithError(
			logger.Fields(logger.FieldOperation, op, logger.FieldSteps, len(c.steps)), err))
		return nil, err
	}
	return groups, nil
}
