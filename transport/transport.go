package transport

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/esplora/endpoint"
	"github.com/kbukum/esplora/errors"
	"github.com/kbukum/esplora/logger"
	"github.com/kbukum/esplora/resilience"
)

// HeaderRequestID carries the per-exchange request id.
const HeaderRequestID = "X-Request-Id"

// Outcome is the raw result of one exchange. Success and failure statuses
// are both outcomes; only the decoder interprets them.
type Outcome struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

// Executor performs exchanges described by endpoint descriptors.
type Executor interface {
	Execute(ctx context.Context, d endpoint.Descriptor) (*Outcome, error)
	Close() error
}

// Option configures an executor.
type Option func(*exchanger)

// WithLogger sets the logger used for per-exchange debug events.
func WithLogger(l *logger.Logger) Option {
	return func(e *exchanger) {
		if l != nil {
			e.log = l.WithComponent("transport")
		}
	}
}

// WithHTTPTransport replaces the round tripper. Proxy and TLS settings are
// then the caller's responsibility.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(e *exchanger) { e.client.Transport = rt }
}

// exchanger is the routine shared by both executors.
type exchanger struct {
	cfg       Config
	client    *http.Client
	transport *http.Transport
	limiter   *resilience.RateLimiter
	log       *logger.Logger
}

func newExchanger(cfg Config, opts ...Option) (*exchanger, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ErrCodeValidation, err.Error()).WithCause(err)
	}

	dialer := &net.Dialer{Timeout: cfg.Timeout}
	t := &http.Transport{
		DialContext:           dialer.DialContext,
		DisableKeepAlives:     true,
		ForceAttemptHTTP2:     false,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
	}
	if err := applyProxy(t, cfg.Proxy, dialer); err != nil {
		return nil, errors.New(errors.ErrCodeValidation, err.Error()).WithCause(err)
	}
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, errors.New(errors.ErrCodeValidation, err.Error()).WithCause(err)
	}
	if tlsCfg != nil {
		t.TLSClientConfig = tlsCfg
	}

	e := &exchanger{
		cfg:       cfg,
		client:    &http.Client{Transport: t, Timeout: cfg.Timeout},
		transport: t,
		log:       logger.Nop(),
	}
	if cfg.RateLimit != nil {
		e.limiter = resilience.NewRateLimiter(*cfg.RateLimit)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// exchange performs one request and returns its outcome.
func (e *exchanger) exchange(ctx context.Context, d endpoint.Descriptor) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, classifyContext(err).WithOp(d.Op)
	}
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, classifyContext(err).WithOp(d.Op)
		}
	}

	requestID := uuid.NewString()
	req, err := e.buildRequest(ctx, d, requestID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		classified := classifySend(ctx, err).WithOp(d.Op)
		e.logFailure(d, requestID, start, classified)
		return nil, classified
	}
	defer func() { _ = resp.Body.Close() }()

	body, rerr := e.readBody(ctx, resp)
	if rerr != nil {
		rerr = rerr.WithOp(d.Op)
		e.logFailure(d, requestID, start, rerr)
		return nil, rerr
	}

	if e.log.DebugEnabled() {
		e.log.Debug("exchange complete", logger.Fields(
			logger.FieldOperation, d.Op,
			logger.FieldMethod, d.Method,
			logger.FieldPath, d.Path,
			logger.FieldStatus, resp.StatusCode,
			logger.FieldBytes, len(body),
			logger.FieldRequestID, requestID,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}

	return &Outcome{StatusCode: resp.StatusCode, Body: body, RequestID: requestID}, nil
}

func (e *exchanger) buildRequest(ctx context.Context, d endpoint.Descriptor, requestID string) (*http.Request, error) {
	var body io.Reader
	if d.Body != nil {
		body = bytes.NewReader(d.Body)
	}
	req, err := http.NewRequestWithContext(ctx, d.Method, d.URL(e.cfg.BaseURL), body)
	if err != nil {
		return nil, errors.Validation("request", err.Error()).WithOp(d.Op).WithCause(err)
	}

	for k, v := range e.cfg.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	req.Header.Set("Accept", accept(d.Kind))
	if d.ContentType != "" {
		req.Header.Set("Content-Type", d.ContentType)
	}
	req.Header.Set(HeaderRequestID, requestID)
	return req, nil
}

// readBody reads at most MaxResponseBytes; a longer body is an error.
func (e *exchanger) readBody(ctx context.Context, resp *http.Response) ([]byte, *errors.Error) {
	limit := e.cfg.MaxResponseBytes
	if resp.ContentLength > limit {
		return nil, errors.BodyTooLarge(limit)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, classifyRead(ctx, err)
	}
	if int64(len(body)) > limit {
		return nil, errors.BodyTooLarge(limit)
	}
	return body, nil
}

func (e *exchanger) logFailure(d endpoint.Descriptor, requestID string, start time.Time, err *errors.Error) {
	if !e.log.DebugEnabled() {
		return
	}
	e.log.Debug("exchange failed", logger.Fields(
		logger.FieldOperation, d.Op,
		logger.FieldMethod, d.Method,
		logger.FieldPath, d.Path,
		logger.FieldErrorCode, string(err.Code),
		logger.FieldError, err.Error(),
		logger.FieldRequestID, requestID,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
}

func (e *exchanger) close() {
	if e.transport != nil {
		e.transport.CloseIdleConnections()
	}
}

func accept(k endpoint.Kind) string {
	switch k {
	case endpoint.KindJSON:
		return "application/json"
	case endpoint.KindRaw:
		return "application/octet-stream"
	default:
		return "text/plain"
	}
}
