// Package transport performs Esplora HTTP exchanges.
//
// An Executor turns an endpoint.Descriptor into an Outcome (status code and
// body) or a classified transport error. Two executors share one exchange
// routine:
//
//   - Blocking runs the exchange on the calling goroutine.
//   - Suspending runs it on its own goroutine; the caller suspends in
//     Pending.Wait until the outcome arrives or its context ends.
//
// Every exchange opens and closes its own connection. Status codes are not
// interpreted here; package decode does that.
package transport
