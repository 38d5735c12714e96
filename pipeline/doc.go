// Package pipeline walks a sequence of values through lazy, pull-based
// stages. The chain executor uses it to run each group through its steps.
//
// Nothing runs until Collect pulls values. A stage only asks its source for
// the next value when it is itself asked, so an error stops the walk before
// later values are produced and Collect returns no partial result.
//
//	src := pipeline.FromSlice(groups)
//	out := pipeline.MapIndexed(src, func(_ context.Context, i int, g Group) (Group, error) {
//	    return step(g)
//	})
//	results, err := pipeline.Collect(ctx, out)
package pipeline
