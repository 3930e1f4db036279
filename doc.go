// Package esplora is a client for the Esplora HTTP API of Bitcoin block
// explorers such as blockstream.info and mempool.space.
//
// Two clients share one set of operations:
//
//   - BlockingClient returns results directly and occupies the calling
//     goroutine for the duration of the exchange.
//   - AsyncClient returns a Future for every call; Await is the only point
//     where the caller waits.
//
// Both validate parameters before any network activity, decode Esplora's
// JSON strictly into the types of package chain, and report failures as
// classified errors from package errors:
//
//	client, err := esplora.NewBlockingClient(esplora.Config{
//	    BaseURL: "https://blockstream.info/api",
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	status, err := client.GetTxStatus(ctx, txid)
//	switch {
//	case errors.IsNotFound(err):
//	    // unknown to the server
//	case err != nil:
//	    return err
//	}
//
// Only Broadcast retries, and only on failures whose outcome is unknown
// (connection failure, timeout, interrupted body).
package esplora
