package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// Error is the classified error returned by the client.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Op is the client operation that failed (e.g. "tx_info").
	Op string `json:"op,omitempty"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// StatusCode is the HTTP status for response errors.
	StatusCode int `json:"status_code,omitempty"`
	// Body is the server's response text, kept verbatim.
	Body string `json:"body,omitempty"`
	// Retryable is true when the outcome of the exchange is unknown.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Category returns the family of the error's code.
func (e *Error) Category() Category { return e.Code.Category() }

// WithOp sets the failing operation and returns the receiver.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an Error with automatic retryable detection.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// Sentinels for use with errors.Is.
var (
	ErrValidation       = &Error{Code: ErrCodeValidation}
	ErrConnectionFailed = &Error{Code: ErrCodeConnectionFailed}
	ErrTimeout          = &Error{Code: ErrCodeTimeout}
	ErrTLSFailure       = &Error{Code: ErrCodeTLSFailure}
	ErrBodyTooLarge     = &Error{Code: ErrCodeBodyTooLarge}
	ErrTransportIO      = &Error{Code: ErrCodeTransportIO}
	ErrNotFound         = &Error{Code: ErrCodeNotFound}
	ErrServerRejected   = &Error{Code: ErrCodeServerRejected}
	ErrDecode           = &Error{Code: ErrCodeDecode}
	ErrCanceled         = &Error{Code: ErrCodeCanceled}
)

// --- Constructors ---

// Validation creates an error for a rejected parameter.
func Validation(field, reason string) *Error {
	return &Error{
		Code: ErrCodeValidation, Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Details: map[string]any{"field": field},
	}
}

// ConnectionFailed creates an error for a connection that could not be
// established or a request that could not be sent.
func ConnectionFailed(cause error) *Error {
	return &Error{
		Code: ErrCodeConnectionFailed, Message: "connection failed",
		Retryable: true, Cause: cause,
	}
}

// Timeout creates an error for an exchange that exceeded its deadline.
func Timeout(cause error) *Error {
	return &Error{
		Code: ErrCodeTimeout, Message: "request timed out",
		Retryable: true, Cause: cause,
	}
}

// TLSFailure creates an error for a failed TLS or proxy negotiation.
func TLSFailure(cause error) *Error {
	return &Error{
		Code: ErrCodeTLSFailure, Message: "tls or proxy negotiation failed",
		Cause: cause,
	}
}

// BodyTooLarge creates an error for a response exceeding limit bytes.
func BodyTooLarge(limit int64) *Error {
	return &Error{
		Code: ErrCodeBodyTooLarge, Message: fmt.Sprintf("response body exceeds %d bytes", limit),
		Details: map[string]any{"limit": limit},
	}
}

// TransportIO creates an error for a response body that could not be read.
func TransportIO(cause error) *Error {
	return &Error{
		Code: ErrCodeTransportIO, Message: "reading response body failed",
		Retryable: true, Cause: cause,
	}
}

// Canceled creates an error for a call abandoned by its caller.
func Canceled(cause error) *Error {
	return &Error{
		Code: ErrCodeCanceled, Message: "call canceled",
		Cause: cause,
	}
}

// FromContext classifies the error of a finished context: a passed
// deadline is TIMEOUT, anything else CANCELED.
func FromContext(err error) *Error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}
	return Canceled(err)
}

// NotFound creates an error for a 404 response.
func NotFound(body string) *Error {
	return &Error{
		Code: ErrCodeNotFound, Message: "resource not found",
		StatusCode: 404, Body: body,
	}
}

// ServerRejected creates an error for a non-success status. The body is
// kept verbatim.
func ServerRejected(status int, body string) *Error {
	return &Error{
		Code: ErrCodeServerRejected, Message: fmt.Sprintf("server rejected request with status %d", status),
		StatusCode: status, Body: body,
	}
}

// Decode creates an error for a success body that could not be decoded.
func Decode(what string, cause error) *Error {
	return &Error{
		Code: ErrCodeDecode, Message: fmt.Sprintf("decoding %s failed", what),
		Cause: cause,
	}
}

// --- Inspection ---

// AsError converts err to an *Error if possible.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// CategoryOf returns the category of err.
func CategoryOf(err error) Category {
	return CodeOf(err).Category()
}

// IsValidation returns true if err was rejected before any network activity.
func IsValidation(err error) bool { return CategoryOf(err) == CategoryValidation }

// IsTransport returns true if err is a transport failure.
func IsTransport(err error) bool { return CategoryOf(err) == CategoryTransport }

// IsNotFound returns true if the server answered 404.
func IsNotFound(err error) bool { return CategoryOf(err) == CategoryNotFound }

// IsServerRejected returns true if the server answered a non-success status
// other than 404.
func IsServerRejected(err error) bool { return CategoryOf(err) == CategoryServerRejected }

// IsDecode returns true if a success body could not be decoded.
func IsDecode(err error) bool { return CategoryOf(err) == CategoryDecode }

// IsCanceled returns true if the caller abandoned the call.
func IsCanceled(err error) bool { return CategoryOf(err) == CategoryCanceled }

// IsRetryable returns true if err reports an indeterminate outcome.
func IsRetryable(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Retryable
	}
	return false
}
