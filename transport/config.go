package transport

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/esplora/resilience"
	"github.com/kbukum/esplora/security"
	"github.com/kbukum/esplora/version"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultMaxResponseBytes = 32 << 20
)

// Config configures an executor.
type Config struct {
	// BaseURL is the Esplora API root, e.g. "https://blockstream.info/api".
	BaseURL string

	// Proxy is an http, https or socks5 proxy URL. Empty means the
	// HTTP_PROXY/HTTPS_PROXY/NO_PROXY environment.
	Proxy string

	// TLS configures server verification. Nil uses the system roots.
	TLS *security.TLSConfig

	// Timeout bounds a whole exchange, connect through body. Defaults to 30s.
	Timeout time.Duration

	// MaxResponseBytes caps the body read. Defaults to 32 MiB.
	MaxResponseBytes int64

	// Headers are sent with every exchange.
	Headers map[string]string

	// UserAgent defaults to version.UserAgent().
	UserAgent string

	// RateLimit enables a token bucket in front of every exchange.
	RateLimit *resilience.RateLimiterConfig
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = defaultMaxResponseBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("transport: base_url must be an absolute http(s) URL (got: %q)", c.BaseURL)
	}
	if c.Proxy != "" {
		if _, err := parseProxy(c.Proxy); err != nil {
			return err
		}
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	if c.RateLimit != nil && c.RateLimit.Rate <= 0 {
		return fmt.Errorf("transport: rate_limit.rate must be positive")
	}
	return nil
}

func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("transport: invalid proxy URL %q", raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "socks5", "socks5h":
		return u, nil
	default:
		return nil, fmt.Errorf("transport: unsupported proxy scheme %q", u.Scheme)
	}
}
