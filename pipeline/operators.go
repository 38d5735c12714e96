package pipeline

import "context"

// MapIndexed transforms each value with fn, passing its 0-based position in
// the stream. The first error ends the stream.
func MapIndexed[I, O any](p *Pipeline[I], fn func(ctx context.Context, pos int, v I) (O, error)) *Pipeline[O] {
	return &Pipeline[O]{open: func(ctx context.Context) Iterator[O] {
		return &mapIter[I, O]{source: p.open(ctx), fn: fn}
	}}
}

// Map transforms each value with fn. The first error ends the stream.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return MapIndexed(p, func(ctx context.Context, _ int, v I) (O, error) {
		return fn(ctx, v)
	})
}

// Tap runs fn on each value and passes the value on unchanged. An error
// from fn ends the stream.
func Tap[T any](p *Pipeline[T], fn func(context.Context, T) error) *Pipeline[T] {
	return MapIndexed(p, func(ctx context.Context, _ int, v T) (T, error) {
		if err := fn(ctx, v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	})
}

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, int, I) (O, error)
	pos    int
}

func (it *mapIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	v, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := it.fn(ctx, it.pos, v)
	it.pos++
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }
