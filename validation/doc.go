// Package validation checks configuration values before a client is built.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as
// VALIDATION errors from package errors.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string `validate:"required,httpurl"`
//	    Proxy   string `validate:"omitempty,proxyurl"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(cfg.Timeout >= 0, "timeout", "must not be negative")
//	err := v.Validate()
package validation
