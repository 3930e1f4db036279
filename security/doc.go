// Package security builds the TLS client configuration used by the
// transport.
//
// # TLS Modes
//
//	system       verify against the host's root pool (default)
//	custom       verify against the roots in CAFile only
//	skip-verify  accept any server certificate, for test networks
//
// Client certificates (CertFile/KeyFile) may be combined with any mode.
//
//	cfg := security.TLSConfig{Mode: security.TLSModeCustom, CAFile: "/etc/esplora/ca.pem"}
//	tlsConfig, err := cfg.Build()
package security
