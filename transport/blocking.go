package transport

import (
	"context"

	"github.com/kbukum/esplora/endpoint"
)

// Blocking performs each exchange on the calling goroutine.
type Blocking struct {
	ex *exchanger
}

// NewBlocking creates a blocking executor.
func NewBlocking(cfg Config, opts ...Option) (*Blocking, error) {
	ex, err := newExchanger(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Blocking{ex: ex}, nil
}

// Execute performs d and returns when the exchange ends.
func (b *Blocking) Execute(ctx context.Context, d endpoint.Descriptor) (*Outcome, error) {
	return b.ex.exchange(ctx, d)
}

// Close releases idle resources.
func (b *Blocking) Close() error {
	b.ex.close()
	return nil
}
