package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	"golang.org/x/net/proxy"
)

// applyProxy routes t through raw. http(s) proxies use CONNECT through
// http.ProxyURL; socks5 proxies replace the dialer.
func applyProxy(t *http.Transport, raw string, dialer *net.Dialer) error {
	if raw == "" {
		t.Proxy = http.ProxyFromEnvironment
		return nil
	}
	u, err := parseProxy(raw)
	if err != nil {
		return err
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		t.Proxy = http.ProxyURL(u)
		return nil
	}

	d, err := proxy.FromURL(u, dialer)
	if err != nil {
		return fmt.Errorf("transport: socks5 proxy: %w", err)
	}
	t.Proxy = nil
	if cd, ok := d.(proxy.ContextDialer); ok {
		t.DialContext = cd.DialContext
		return nil
	}
	t.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
	return nil
}
