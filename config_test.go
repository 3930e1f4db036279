package esplora

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/esplora/config"
	"github.com/kbukum/esplora/errors"
	"github.com/kbukum/esplora/logger"
	"github.com/kbukum/esplora/resilience"
	"github.com/kbukum/esplora/security"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{BaseURL: "https://blockstream.info/api", Logging: &logger.Config{}}
	cfg.ApplyDefaults()

	if cfg.Network != DefaultNetwork {
		t.Errorf("Network = %q", cfg.Network)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.RetryBackoff != DefaultRetryBackoff || cfg.MaxRetryBackoff != DefaultMaxRetryBackoff {
		t.Errorf("backoff = %v..%v", cfg.RetryBackoff, cfg.MaxRetryBackoff)
	}
	if cfg.MaxResponseBytes != DefaultMaxResponseBytes {
		t.Errorf("MaxResponseBytes = %d", cfg.MaxResponseBytes)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestConfigApplyDefaultsKeepsValues(t *testing.T) {
	cfg := Config{
		BaseURL:    "https://blockstream.info/api",
		Network:    "signet",
		Timeout:    time.Second,
		MaxRetries: -1,
	}
	cfg.ApplyDefaults()
	if cfg.Network != "signet" || cfg.Timeout != time.Second || cfg.MaxRetries != -1 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{BaseURL: "https://blockstream.info/api"}, false},
		{"valid with socks proxy", Config{BaseURL: "http://127.0.0.1:3002", Proxy: "socks5h://127.0.0.1:9050"}, false},
		{"missing base url", Config{}, true},
		{"base url without host", Config{BaseURL: "https://"}, true},
		{"unsupported scheme", Config{BaseURL: "ws://blockstream.info/api"}, true},
		{"unknown network", Config{BaseURL: "https://blockstream.info/api", Network: "liquid"}, true},
		{"bad proxy", Config{BaseURL: "https://blockstream.info/api", Proxy: "ftp://proxy:21"}, true},
		{"too many retries", Config{BaseURL: "https://blockstream.info/api", MaxRetries: 17}, true},
		{"retry disabled", Config{BaseURL: "https://blockstream.info/api", MaxRetries: -1}, false},
		{"retries below -1", Config{BaseURL: "https://blockstream.info/api", MaxRetries: -2}, true},
		{"negative timeout", Config{BaseURL: "https://blockstream.info/api", Timeout: -time.Second}, true},
		{"custom tls without ca", Config{
			BaseURL: "https://blockstream.info/api",
			TLS:     security.TLSConfig{Mode: security.TLSModeCustom},
		}, true},
		{"zero rate limit", Config{
			BaseURL:   "https://blockstream.info/api",
			RateLimit: &resilience.RateLimiterConfig{Rate: 0, Burst: 1},
		}, true},
		{"bad log level", Config{
			BaseURL: "https://blockstream.info/api",
			Logging: &logger.Config{Level: "loud", Format: "json", Output: "stderr"},
		}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.IsValidation(err) {
				t.Errorf("expected VALIDATION, got %s", errors.CodeOf(err))
			}
		})
	}
}

func TestConfigValidateReportsAllFields(t *testing.T) {
	cfg := Config{Network: "liquid", Proxy: "ftp://proxy"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, field := range []string{"base_url", "network", "proxy"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error %q does not mention %s", msg, field)
		}
	}
}

func TestRetryConfig(t *testing.T) {
	cfg := Config{BaseURL: "https://blockstream.info/api"}
	cfg.ApplyDefaults()
	rc := cfg.retryConfig()
	if rc.MaxAttempts != 1+DefaultMaxRetries {
		t.Errorf("MaxAttempts = %d", rc.MaxAttempts)
	}
	if rc.Backoff(1) != 256*time.Millisecond || rc.Backoff(2) != 512*time.Millisecond {
		t.Errorf("backoff sequence = %v, %v", rc.Backoff(1), rc.Backoff(2))
	}
	if rc.Backoff(10) != DefaultMaxRetryBackoff {
		t.Errorf("Backoff(10) = %v, want cap", rc.Backoff(10))
	}
	if rc.RetryIf(errors.ServerRejected(400, "bad")) {
		t.Error("server rejection must not be retried")
	}
	if !rc.RetryIf(errors.Timeout(nil)) {
		t.Error("timeout must be retried")
	}

	cfg.MaxRetries = -1
	if got := cfg.retryConfig().MaxAttempts; got != 1 {
		t.Errorf("disabled MaxAttempts = %d", got)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esplora.yml")
	yml := `
base_url: https://mempool.space/signet/api
network: signet
proxy: socks5h://127.0.0.1:9050
max_retries: 2
retry_backoff: 50ms
headers:
  x-api-key: secret
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ESPLORA_TIMEOUT", "3s")

	cfg, err := LoadConfig(config.WithConfigFile(path), config.WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "https://mempool.space/signet/api" || cfg.Network != "signet" {
		t.Errorf("unexpected endpoint settings: %q %q", cfg.BaseURL, cfg.Network)
	}
	if cfg.Proxy != "socks5h://127.0.0.1:9050" {
		t.Errorf("Proxy = %q", cfg.Proxy)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s from the environment", cfg.Timeout)
	}
	if cfg.MaxRetries != 2 || cfg.RetryBackoff != 50*time.Millisecond {
		t.Errorf("retry = %d/%v", cfg.MaxRetries, cfg.RetryBackoff)
	}
	if cfg.MaxResponseBytes != DefaultMaxResponseBytes {
		t.Errorf("defaults not applied: %d", cfg.MaxResponseBytes)
	}
	if cfg.Headers["x-api-key"] != "secret" {
		t.Errorf("Headers = %v", cfg.Headers)
	}
	if cfg.Logging == nil || cfg.Logging.Level != "debug" || cfg.Logging.Output != "stderr" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esplora.yml")
	if err := os.WriteFile(path, []byte("base_url: ftp://example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(config.WithConfigFile(path), config.WithEnvFile("/nonexistent/.env"))
	if !errors.IsValidation(err) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}
