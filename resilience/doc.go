// Package resilience provides the retry and rate limiting primitives used
// by the client.
//
//   - Retry: repeats an operation with exponential backoff while RetryIf
//     accepts the error
//
//   - RateLimiter: token bucket that paces outgoing exchanges
//
//     out, err := resilience.Retry(ctx, resilience.RetryConfig{
//     MaxAttempts:    7,
//     InitialBackoff: 256 * time.Millisecond,
//     RetryIf:        errors.IsRetryable,
//     }, func() (*transport.Outcome, error) {
//     return exec.Execute(ctx, desc)
//     })
package resilience
