package esplora

import (
	"context"

	"github.com/kbukum/esplora/errors"
)

// Future is the pending result of an AsyncClient call.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// submit starts op on its own goroutine. A validation failure resolves the
// future immediately without starting anything.
func submit[T any](ctx context.Context, c *core, op operation[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	if op.err != nil {
		f.err = op.err
		close(f.done)
		return f
	}
	go func() {
		defer close(f.done)
		f.value, f.err = run(ctx, c, op)
	}()
	return f
}

// Await suspends until the call completes or ctx ends. Ending ctx abandons
// the wait only; the call itself observes the context it was started with.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, errors.FromContext(ctx.Err())
	}
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
