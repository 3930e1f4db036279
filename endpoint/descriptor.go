// Package endpoint is the catalog of Esplora HTTP endpoints.
//
// Each constructor validates its parameters and returns a Descriptor: the
// method, escaped path, ordered query parameters, optional body and the
// expected body kind. Constructors perform no I/O, and a constructor that
// returns an error never yields a usable Descriptor.
package endpoint

import (
	"net/http"
	"net/url"
	"strings"
)

// Kind is the shape of a success response body.
type Kind int

const (
	// KindJSON bodies decode as a JSON document.
	KindJSON Kind = iota
	// KindRaw bodies are opaque bytes.
	KindRaw
	// KindText bodies are plain text, usually a hash, a height or hex.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindRaw:
		return "raw"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// QueryParam is a single query string pair. Order is preserved on the wire.
type QueryParam struct {
	Key   string
	Value string
}

// Descriptor fully describes one HTTP exchange.
type Descriptor struct {
	// Op names the operation for logs, traces and errors.
	Op          string
	Method      string
	Path        string
	Query       []QueryParam
	Body        []byte
	ContentType string
	Kind        Kind
}

// URL joins the descriptor with base, e.g. "https://blockstream.info/api".
func (d Descriptor) URL(base string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteString(d.Path)
	for i, q := range d.Query {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(q.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.Value))
	}
	return b.String()
}

// IsIdempotent reports whether repeating the exchange cannot change
// server state.
func (d Descriptor) IsIdempotent() bool {
	return d.Method == http.MethodGet || d.Method == http.MethodHead
}

func get(op string, kind Kind, segments ...string) Descriptor {
	return Descriptor{Op: op, Method: http.MethodGet, Path: join(segments...), Kind: kind}
}

// join builds a path from literal and parameter segments. Parameters were
// validated by the caller; escaping keeps the path well formed regardless.
func join(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
