package esplora

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/kbukum/esplora/decode"
	"github.com/kbukum/esplora/endpoint"
	"github.com/kbukum/esplora/errors"
	"github.com/kbukum/esplora/logger"
	"github.com/kbukum/esplora/observability"
	"github.com/kbukum/esplora/resilience"
	"github.com/kbukum/esplora/transport"
)

// Option customizes client construction.
type Option func(*options)

type options struct {
	executor transport.Executor
	log      *logger.Logger
}

// WithExecutor replaces the executor built from the configuration.
func WithExecutor(ex transport.Executor) Option {
	return func(o *options) { o.executor = ex }
}

// WithLogger sets the client logger. It takes precedence over Config.Logging.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// core holds what both clients share.
type core struct {
	cfg    Config
	params *chaincfg.Params
	exec   transport.Executor
	log    *logger.Logger
	obs    *observability.Instruments
	retry  resilience.RetryConfig
}

type executorKind int

const (
	blockingExecutor executorKind = iota
	suspendingExecutor
)

func newCore(cfg Config, kind executorKind, opts ...Option) (*core, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := endpoint.Network(cfg.Network)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		if cfg.Logging != nil {
			log = logger.New(cfg.Logging, "esplora")
		} else {
			log = logger.Nop()
		}
	}

	obs, err := observability.NewInstruments(cfg.TracerProvider, cfg.MeterProvider)
	if err != nil {
		return nil, errors.New(errors.ErrCodeValidation, "observability setup failed").WithCause(err)
	}

	exec := o.executor
	if exec == nil {
		tc := cfg.transportConfig()
		if kind == suspendingExecutor {
			exec, err = transport.NewSuspending(tc, transport.WithLogger(log))
		} else {
			exec, err = transport.NewBlocking(tc, transport.WithLogger(log))
		}
		if err != nil {
			return nil, err
		}
	}

	return &core{
		cfg:    cfg,
		params: params,
		exec:   exec,
		log:    log.WithComponent("client"),
		obs:    obs,
		retry:  cfg.retryConfig(),
	}, nil
}

// operation is one client call: what to send, how to read the answer and
// whether an indeterminate failure may be repeated.
type operation[T any] struct {
	desc   endpoint.Descriptor
	err    error
	decode decode.Func[T]
	retry  bool
}

func newOperation[T any](desc endpoint.Descriptor, err error, fn decode.Func[T]) operation[T] {
	return operation[T]{desc: desc, err: err, decode: fn}
}

// run executes op. Validation errors return before any span, log or
// exchange.
func run[T any](ctx context.Context, c *core, op operation[T]) (T, error) {
	var zero T
	if op.err != nil {
		return zero, op.err
	}

	ctx, call := c.obs.Begin(ctx, op.desc.Op, op.desc.Method, op.desc.Path)
	v, err := execute(ctx, c, call, op)
	call.End(err)
	if err != nil {
		return zero, err
	}
	return v, nil
}

func execute[T any](ctx context.Context, c *core, call *observability.Operation, op operation[T]) (T, error) {
	var zero T
	exchange := func() (*transport.Outcome, error) {
		return c.exec.Execute(ctx, op.desc)
	}

	var (
		out *transport.Outcome
		err error
	)
	if op.retry && !op.desc.IsIdempotent() && c.retry.MaxAttempts > 1 {
		cfg := c.retry
		cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
			call.Retry(attempt+1, err)
			c.log.WithError(err).Warn("retrying after indeterminate failure", logger.Fields(
				logger.FieldOperation, op.desc.Op,
				logger.FieldAttempt, attempt+1,
				logger.FieldErrorCode, string(errors.CodeOf(err)),
				logger.FieldBackoff, backoff.Milliseconds(),
			))
		}
		out, err = resilience.Retry(ctx, cfg, exchange)
	} else {
		out, err = exchange()
	}
	if err != nil {
		if _, ok := errors.AsError(err); !ok {
			if ctx.Err() != nil {
				err = errors.FromContext(ctx.Err()).WithOp(op.desc.Op)
			} else {
				err = errors.ConnectionFailed(err).WithOp(op.desc.Op)
			}
		}
		return zero, err
	}

	call.SetStatus(out.StatusCode)
	v, err := decode.Response(out.StatusCode, out.Body, op.decode)
	if err != nil {
		if e, ok := errors.AsError(err); ok && e.Op == "" {
			e.WithOp(op.desc.Op)
		}
		return zero, err
	}
	return v, nil
}

// URL returns the configured base URL.
func (c *core) URL() string {
	return c.cfg.BaseURL
}

// Close releases the executor.
func (c *core) Close() error {
	return c.exec.Close()
}
