package transport

import (
	"context"

	"github.com/kbukum/esplora/endpoint"
)

// Suspending performs each exchange on its own goroutine.
type Suspending struct {
	ex *exchanger
}

// NewSuspending creates a suspending executor.
func NewSuspending(cfg Config, opts ...Option) (*Suspending, error) {
	ex, err := newExchanger(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Suspending{ex: ex}, nil
}

// Pending is an exchange in flight.
type Pending struct {
	op      string
	done    chan struct{}
	outcome *Outcome
	err     error
}

// Submit starts d and returns immediately. The exchange observes ctx.
func (s *Suspending) Submit(ctx context.Context, d endpoint.Descriptor) *Pending {
	p := &Pending{op: d.Op, done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.outcome, p.err = s.ex.exchange(ctx, d)
	}()
	return p
}

// Execute submits d and waits for it.
func (s *Suspending) Execute(ctx context.Context, d endpoint.Descriptor) (*Outcome, error) {
	return s.Submit(ctx, d).Wait(ctx)
}

// Close releases idle resources.
func (s *Suspending) Close() error {
	s.ex.close()
	return nil
}

// Done is closed when the exchange has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait suspends until the exchange finishes or ctx ends. When ctx ends
// first the exchange is abandoned and its outcome is never observed.
func (p *Pending) Wait(ctx context.Context) (*Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, p.err
	case <-ctx.Done():
		return nil, classifyContext(ctx.Err()).WithOp(p.op)
	}
}
