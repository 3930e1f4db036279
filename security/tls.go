package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSMode selects how the server certificate is verified.
type TLSMode string

const (
	TLSModeSystem     TLSMode = "system"
	TLSModeCustom     TLSMode = "custom"
	TLSModeSkipVerify TLSMode = "skip-verify"
)

// TLSConfig holds the TLS settings of the client.
type TLSConfig struct {
	// Mode selects server verification. Empty means TLSModeSystem.
	Mode TLSMode `yaml:"mode" mapstructure:"mode"`

	// CAFile is the PEM bundle of trusted roots for TLSModeCustom.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile is the path to the client TLS certificate file (for mTLS).
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`

	// KeyFile is the path to the client TLS key file (for mTLS).
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the server name used for certificate verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is "1.2" or "1.3". Defaults to TLS 1.2.
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

// Build creates a *tls.Config from the configuration.
// Returns nil when the defaults apply (system roots, no client certificate).
func (c *TLSConfig) Build() (*tls.Config, error) {
	if c == nil || !c.IsEnabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	minVersion, err := parseVersion(c.MinVersion)
	if err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		InsecureSkipVerify: c.mode() == TLSModeSkipVerify, //nolint:gosec // opt-in test mode
		ServerName:         c.ServerName,
		MinVersion:         minVersion,
	}

	if c.mode() == TLSModeCustom {
		if err := c.loadCA(cfg); err != nil {
			return nil, err
		}
	}

	if err := c.loadClientCert(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	switch c.mode() {
	case TLSModeSystem, TLSModeSkipVerify:
		if c.CAFile != "" {
			return fmt.Errorf("security/tls: ca_file requires mode %q", TLSModeCustom)
		}
	case TLSModeCustom:
		if c.CAFile == "" {
			return fmt.Errorf("security/tls: mode %q requires ca_file", TLSModeCustom)
		}
	default:
		return fmt.Errorf("security/tls: unknown mode %q", c.Mode)
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	if _, err := parseVersion(c.MinVersion); err != nil {
		return err
	}
	return nil
}

// IsEnabled returns true if any setting departs from the defaults.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.mode() != TLSModeSystem || c.CAFile != "" || c.CertFile != "" ||
		c.KeyFile != "" || c.ServerName != "" || c.MinVersion != ""
}

func (c *TLSConfig) mode() TLSMode {
	if c.Mode == "" {
		return TLSModeSystem
	}
	return c.Mode
}

func parseVersion(v string) (uint16, error) {
	switch v {
	case "", "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("security/tls: unsupported min_version %q", v)
	}
}

// loadCA loads the CA bundle into the TLS config.
func (c *TLSConfig) loadCA(cfg *tls.Config) error {
	ca, err := os.ReadFile(c.CAFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return fmt.Errorf("security/tls: failed to parse CA certificate")
	}
	cfg.RootCAs = pool
	return nil
}

// loadClientCert loads the client certificate and key into the TLS config.
func (c *TLSConfig) loadClientCert(cfg *tls.Config) error {
	if c.CertFile == "" || c.KeyFile == "" {
		return nil
	}
	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to load client certificate: %w", err)
	}
	cfg.Certificates = []tls.Certificate{cert}
	return nil
}
