// Package errors defines the classified error type returned by every layer
// of the Esplora client.
//
// Each failure carries a machine-readable ErrorCode. Codes group into
// categories (validation, transport, not-found, server rejection, decode,
// cancellation) so callers can branch on the family instead of the exact
// cause:
//
//	tx, err := client.GetTxInfo(ctx, txid)
//	switch {
//	case errors.IsNotFound(err):
//	    // unknown txid
//	case errors.IsRetryable(err):
//	    // outcome unknown, the caller may try again
//	}
package errors
