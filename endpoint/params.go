package endpoint

import (
	"encoding/hex"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/kbukum/esplora/chain"
	"github.com/kbukum/esplora/errors"
)

func checkHash(field, s string) error {
	if err := chain.CheckHashHex(s); err != nil {
		return errors.Validation(field, err.Error()).WithCause(err)
	}
	return nil
}

// CheckTxid validates a display-order transaction id.
func CheckTxid(txid string) error { return checkHash("txid", txid) }

// CheckBlockHash validates a display-order block hash.
func CheckBlockHash(hash string) error { return checkHash("block_hash", hash) }

// CheckScriptHash validates an Esplora script hash.
func CheckScriptHash(hash string) error { return checkHash("scripthash", hash) }

// CheckAddress validates that addr decodes for the network described by
// params. Hex public keys decode as btcutil.AddressPubKey but are not
// addresses Esplora indexes, so they are rejected.
func CheckAddress(addr string, params *chaincfg.Params) error {
	if addr == "" {
		return errors.Validation("address", "empty")
	}
	decoded, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		return errors.Validation("address", err.Error()).WithCause(err)
	}
	if _, ok := decoded.(*btcutil.AddressPubKey); ok {
		return errors.Validation("address", "public key is not an address")
	}
	if !decoded.IsForNet(params) {
		return errors.Validation("address", "not valid for network "+params.Name)
	}
	return nil
}

// Network returns the chain parameters for a network name.
func Network(name string) (*chaincfg.Params, error) {
	switch name {
	case "", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, errors.Validation("network", "unknown network "+strconv.Quote(name))
	}
}

func rawTxHex(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.Validation("transaction", "empty")
	}
	return []byte(hex.EncodeToString(raw)), nil
}
