// Package chain holds the Bitcoin values returned by an Esplora server.
//
// Hashes are chainhash.Hash values in internal byte order; the hex text an
// Esplora server returns is display order and is reversed on parse by
// ParseHash. Amounts are exact satoshi counts (btcutil.Amount). Every
// result type decodes strictly: a missing required field, a non-integer
// amount or malformed hex fails the whole value.
package chain
