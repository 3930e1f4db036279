package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	stderrors "errors"
	"net"
	"strings"

	"github.com/kbukum/esplora/errors"
)

// classifySend maps a failure to obtain a response.
func classifySend(ctx context.Context, err error) *errors.Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return classifyContext(ctxErr)
	}
	switch {
	case stderrors.Is(err, context.Canceled):
		return errors.Canceled(err)
	case isTimeout(err):
		return errors.Timeout(err)
	case isTLS(err):
		return errors.TLSFailure(err)
	case isDial(err):
		return errors.ConnectionFailed(err)
	case isProxyNegotiation(err):
		return errors.TLSFailure(err)
	default:
		return errors.ConnectionFailed(err)
	}
}

// classifyRead maps a failure while reading a response body.
func classifyRead(ctx context.Context, err error) *errors.Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return classifyContext(ctxErr)
	}
	if isTimeout(err) {
		return errors.Timeout(err)
	}
	return errors.TransportIO(err)
}

func classifyContext(err error) *errors.Error {
	return errors.FromContext(err)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

func isTLS(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		invalidCert      x509.CertificateInvalidError
		hostname         x509.HostnameError
		verification     *tls.CertificateVerificationError
		recordHeader     tls.RecordHeaderError
		alert            tls.AlertError
	)
	switch {
	case stderrors.As(err, &unknownAuthority),
		stderrors.As(err, &invalidCert),
		stderrors.As(err, &hostname),
		stderrors.As(err, &verification),
		stderrors.As(err, &recordHeader),
		stderrors.As(err, &alert):
		return true
	}
	return strings.Contains(err.Error(), "tls: ")
}

// isDial reports a failure to reach the server or the proxy itself.
func isDial(err error) bool {
	for err != nil {
		var op *net.OpError
		if !stderrors.As(err, &op) {
			return false
		}
		if op.Op == "dial" {
			return true
		}
		err = op.Err
	}
	return false
}

// isProxyNegotiation reports a proxy that was reached but refused the tunnel.
func isProxyNegotiation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "proxyconnect") || strings.Contains(msg, "socks connect")
}
