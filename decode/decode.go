// Package decode turns a completed HTTP exchange into a typed result or a
// classified error. It performs no I/O.
package decode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbukum/esplora/errors"
)

// Func decodes a success body into T.
type Func[T any] func(body []byte) (T, error)

// Classify maps a status code to an error. Any 2xx status is a success and
// yields nil; 404 yields NOT_FOUND; every other status yields
// SERVER_REJECTED carrying the body text verbatim.
func Classify(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return errors.NotFound(string(body))
	default:
		return errors.ServerRejected(status, string(body))
	}
}

// Response classifies the status and, on success, decodes the body with fn.
// The body is only handed to fn for success statuses.
func Response[T any](status int, body []byte, fn Func[T]) (T, error) {
	if err := Classify(status, body); err != nil {
		var zero T
		return zero, err
	}
	return fn(body)
}

// JSON decodes body into a freshly allocated T. A literal null body and
// trailing data fail.
func JSON[T any](body []byte) (*T, error) {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, errors.Decode(typeName[T](), fmt.Errorf("null document"))
	}
	v := new(T)
	if err := json.Unmarshal(body, v); err != nil {
		return nil, errors.Decode(typeName[T](), err)
	}
	return v, nil
}

// JSONSlice decodes a JSON array of T.
func JSONSlice[T any](body []byte) ([]T, error) {
	v, err := JSON[[]T](body)
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// NonEmpty wraps a slice decoder and fails on an empty result.
func NonEmpty[T any](fn Func[[]T]) Func[[]T] {
	return func(body []byte) ([]T, error) {
		v, err := fn(body)
		if err != nil {
			return nil, err
		}
		if len(v) == 0 {
			return nil, errors.Decode(typeName[[]T](), fmt.Errorf("empty list"))
		}
		return v, nil
	}
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}
