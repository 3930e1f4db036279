package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors. Raised before any network activity.
const (
	// ErrCodeValidation indicates a caller-supplied parameter was rejected.
	ErrCodeValidation ErrorCode = "VALIDATION"
)

// Transport errors. The exchange did not produce a complete response.
const (
	// ErrCodeConnectionFailed indicates the connection could not be opened
	// or the request could not be sent.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the exchange exceeded the configured timeout.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeTLSFailure indicates TLS handshake, certificate verification or
	// proxy negotiation failed.
	ErrCodeTLSFailure ErrorCode = "TLS_FAILURE"
	// ErrCodeBodyTooLarge indicates the response body exceeded the limit.
	ErrCodeBodyTooLarge ErrorCode = "BODY_TOO_LARGE"
	// ErrCodeTransportIO indicates the response body could not be read in full.
	ErrCodeTransportIO ErrorCode = "TRANSPORT_IO"
)

// Response errors. A complete response was received.
const (
	// ErrCodeNotFound indicates the server answered 404.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeServerRejected indicates a non-success, non-404 status.
	ErrCodeServerRejected ErrorCode = "SERVER_REJECTED"
	// ErrCodeDecode indicates a success body that is malformed or incomplete.
	ErrCodeDecode ErrorCode = "DECODE"
)

// ErrCodeCanceled indicates the caller abandoned the call.
const ErrCodeCanceled ErrorCode = "CANCELED"

// Category groups error codes into families.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryValidation
	CategoryTransport
	CategoryNotFound
	CategoryServerRejected
	CategoryDecode
	CategoryCanceled
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryTransport:
		return "transport"
	case CategoryNotFound:
		return "not_found"
	case CategoryServerRejected:
		return "server_rejected"
	case CategoryDecode:
		return "decode"
	case CategoryCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

var categories = map[ErrorCode]Category{
	ErrCodeValidation:       CategoryValidation,
	ErrCodeConnectionFailed: CategoryTransport,
	ErrCodeTimeout:          CategoryTransport,
	ErrCodeTLSFailure:       CategoryTransport,
	ErrCodeBodyTooLarge:     CategoryTransport,
	ErrCodeTransportIO:      CategoryTransport,
	ErrCodeNotFound:         CategoryNotFound,
	ErrCodeServerRejected:   CategoryServerRejected,
	ErrCodeDecode:           CategoryDecode,
	ErrCodeCanceled:         CategoryCanceled,
}

// Category returns the family the code belongs to.
func (c ErrorCode) Category() Category {
	return categories[c]
}

// Indeterminate transport outcomes: the server may or may not have acted on
// the request.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeTransportIO:      true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
