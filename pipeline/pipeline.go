package pipeline

import "context"

// Iterator yields values one at a time.
type Iterator[T any] interface {
	// Next returns the next value, or ok == false once the stream is done.
	Next(ctx context.Context) (value T, ok bool, err error)
	// Close releases the iterator and everything upstream of it.
	Close() error
}

// Pipeline is a recipe for an iterator. Every Collect opens a fresh
// iterator, so a pipeline can be run more than once.
type Pipeline[T any] struct {
	open func(ctx context.Context) Iterator[T]
}

// From wraps an existing iterator. The result can only be run once.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{open: func(context.Context) Iterator[T] { return iter }}
}

// FromSlice streams items in order. The slice is read when values are
// pulled, not when the pipeline is built.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{open: func(context.Context) Iterator[T] {
		return &sliceIter[T]{items: items}
	}}
}

// Collect drains the pipeline into a slice. It returns either every value
// or, on the first error, nil and that error.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	iter := p.open(ctx)
	defer iter.Close()

	var out []T
	for {
		v, ok, err := iter.Next(ctx)
		switch {
		case err != nil:
			return nil, err
		case !ok:
			return out, nil
		}
		out = append(out, v)
	}
}

type sliceIter[T any] struct {
	items []T
	next  int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.next == len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.next]
	it.next++
	return v, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
