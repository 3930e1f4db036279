package logger

// Standard field key constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldErrorCode = "error_code"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldAttempt   = "attempt"
	FieldBackoff   = "backoff_ms"
	FieldBytes     = "bytes"
	FieldBaseURL   = "base_url"
	FieldTransport = "transport"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Debug("exchange complete", logger.Fields("op", "tx_info", "status", 200))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}
