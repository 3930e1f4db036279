// Package tlstest issues short-lived certificates for TLS tests.
//
//	srv, certs := tlstest.NewServer(t, handler)
//	cfg := security.TLSConfig{Mode: security.TLSModeCustom, CAFile: certs.CAFile}
package tlstest

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Certs names the PEM files of one issued chain. The leaf is valid for
// localhost and both loopback addresses.
type Certs struct {
	CAFile   string
	CertFile string
	KeyFile  string

	pair tls.Certificate
}

type authority struct {
	key  crypto.Signer
	cert *x509.Certificate
	der  []byte
}

// Issue creates a root and a leaf signed by it, writing both under
// t.TempDir().
func Issue(t testing.TB) *Certs {
	t.Helper()
	dir := t.TempDir()
	now := time.Now()

	root := newAuthority(t, now)
	leafKey := newKey(t)
	leafDER := root.sign(t, &x509.Certificate{
		SerialNumber: big.NewInt(now.UnixNano()),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		NotBefore:    now.Add(-time.Minute),
		NotAfter:     now.Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
	}, leafKey.Public())

	keyDER, err := x509.MarshalPKCS8PrivateKey(leafKey)
	if err != nil {
		t.Fatalf("tlstest: leaf key: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: leafDER})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	pair, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		t.Fatalf("tlstest: key pair: %v", err)
	}

	c := &Certs{
		CAFile:   filepath.Join(dir, "ca.pem"),
		CertFile: filepath.Join(dir, "leaf.pem"),
		KeyFile:  filepath.Join(dir, "leaf-key.pem"),
		pair:     pair,
	}
	write(t, c.CAFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: root.der}))
	write(t, c.CertFile, certPEM)
	write(t, c.KeyFile, keyPEM)
	return c
}

// NewServer serves handler over TLS with a freshly issued leaf. It is
// closed when the test ends.
func NewServer(t testing.TB, handler http.Handler) (*httptest.Server, *Certs) {
	t.Helper()
	c := Issue(t)
	srv := httptest.NewUnstartedServer(handler)
	srv.TLS = &tls.Config{Certificates: []tls.Certificate{c.pair}, MinVersion: tls.VersionTLS12}
	srv.StartTLS()
	t.Cleanup(srv.Close)
	return srv, c
}

// CorruptPEM writes a CERTIFICATE block whose body is not base64 and
// returns its path.
func CorruptPEM(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	write(t, path, []byte("-----BEGIN CERTIFICATE-----\n%%%\n-----END CERTIFICATE-----\n"))
	return path
}

func newAuthority(t testing.TB, now time.Time) *authority {
	t.Helper()
	key := newKey(t)
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "esplora test root"},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLenZero:        true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, key.Public(), key)
	if err != nil {
		t.Fatalf("tlstest: root: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("tlstest: root: %v", err)
	}
	return &authority{key: key, cert: cert, der: der}
}

func (a *authority) sign(t testing.TB, tmpl *x509.Certificate, pub crypto.PublicKey) []byte {
	t.Helper()
	der, err := x509.CreateCertificate(rand.Reader, tmpl, a.cert, pub, a.key)
	if err != nil {
		t.Fatalf("tlstest: sign %s: %v", tmpl.Subject.CommonName, err)
	}
	return der
}

func newKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("tlstest: key: %v", err)
	}
	return key
}

func write(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("tlstest: write %s: %v", path, err)
	}
}
