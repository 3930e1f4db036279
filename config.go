package esplora

import (
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/esplora/config"
	"github.com/kbukum/esplora/errors"
	"github.com/kbukum/esplora/logger"
	"github.com/kbukum/esplora/resilience"
	"github.com/kbukum/esplora/security"
	"github.com/kbukum/esplora/transport"
	"github.com/kbukum/esplora/validation"
)

const (
	DefaultTimeout          = 30 * time.Second
	DefaultMaxRetries       = 6
	DefaultRetryBackoff     = 256 * time.Millisecond
	DefaultMaxRetryBackoff  = 10 * time.Second
	DefaultMaxResponseBytes = 32 << 20
	DefaultNetwork          = "mainnet"
)

// Config configures a client. It is read-only once a client is built.
type Config struct {
	// BaseURL is the Esplora API root, e.g. "https://blockstream.info/api".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,httpurl"`

	// Network selects address validation: mainnet, testnet, signet or regtest.
	Network string `yaml:"network" mapstructure:"network" validate:"omitempty,oneof=mainnet bitcoin testnet testnet3 signet regtest"`

	// Proxy is an http, https or socks5 proxy URL.
	Proxy string `yaml:"proxy" mapstructure:"proxy" validate:"omitempty,proxyurl"`

	TLS security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Timeout bounds each exchange.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// MaxRetries is the number of extra broadcast attempts after an
	// indeterminate transport failure. Zero means DefaultMaxRetries and -1
	// disables retry; values below -1 are invalid.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=-1,lte=16"`

	// RetryBackoff is the delay before the first retry; it doubles per
	// attempt up to MaxRetryBackoff.
	RetryBackoff    time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff" validate:"gte=0"`
	MaxRetryBackoff time.Duration `yaml:"max_retry_backoff" mapstructure:"max_retry_backoff" validate:"gte=0"`

	MaxResponseBytes int64             `yaml:"max_response_bytes" mapstructure:"max_response_bytes" validate:"gte=0"`
	Headers          map[string]string `yaml:"headers" mapstructure:"headers"`
	UserAgent        string            `yaml:"user_agent" mapstructure:"user_agent"`

	// RateLimit enables client-side rate limiting. Nil disables it.
	RateLimit *resilience.RateLimiterConfig `yaml:"rate_limit" mapstructure:"rate_limit"`

	// Logging builds a zerolog logger when set and no WithLogger option is given.
	Logging *logger.Config `yaml:"logging" mapstructure:"logging"`

	// TracerProvider and MeterProvider default to the otel globals.
	TracerProvider trace.TracerProvider `yaml:"-" mapstructure:"-" validate:"-"`
	MeterProvider  metric.MeterProvider `yaml:"-" mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Network == "" {
		c.Network = DefaultNetwork
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
	if c.MaxRetryBackoff == 0 {
		c.MaxRetryBackoff = DefaultMaxRetryBackoff
	}
	if c.MaxResponseBytes == 0 {
		c.MaxResponseBytes = DefaultMaxResponseBytes
	}
	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}
}

// Validate checks the configuration. Every problem is reported in a single
// VALIDATION error.
func (c *Config) Validate() error {
	v := validation.New()
	v.Merge("config", validation.Validate(c))
	v.Merge("tls", c.TLS.Validate())
	if c.RateLimit != nil {
		v.Custom(c.RateLimit.Rate > 0, "rate_limit.rate", "must be positive")
	}
	if c.Logging != nil {
		v.Merge("logging", c.Logging.Validate())
	}
	return v.Validate()
}

// LoadConfig reads a Config from esplora.yml, a .env file and ESPLORA_*
// environment variables, applies defaults and validates the result.
func LoadConfig(opts ...config.LoaderOption) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, errors.New(errors.ErrCodeValidation, "loading configuration failed").WithCause(err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) transportConfig() transport.Config {
	tc := transport.Config{
		BaseURL:          c.BaseURL,
		Proxy:            c.Proxy,
		Timeout:          c.Timeout,
		MaxResponseBytes: c.MaxResponseBytes,
		Headers:          c.Headers,
		UserAgent:        c.UserAgent,
		RateLimit:        c.RateLimit,
	}
	if c.TLS.IsEnabled() {
		tlsCfg := c.TLS
		tc.TLS = &tlsCfg
	}
	return tc
}

func (c *Config) retryConfig() resilience.RetryConfig {
	attempts := 1
	if c.MaxRetries > 0 {
		attempts += c.MaxRetries
	}
	return resilience.RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: c.RetryBackoff,
		MaxBackoff:     c.MaxRetryBackoff,
		BackoffFactor:  2,
		RetryIf:        errors.IsRetryable,
	}
}
