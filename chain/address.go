package chain

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Utxo is an unspent output owned by an address or script.
type Utxo struct {
	Txid   chainhash.Hash
	Vout   uint32
	Value  btcutil.Amount
	Status TxStatus
}

type utxoJSON struct {
	Txid   *string   `json:"txid"`
	Vout   *uint32   `json:"vout"`
	Value  *uint64   `json:"value"`
	Status *TxStatus `json:"status"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *Utxo) UnmarshalJSON(data []byte) error {
	var raw utxoJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("txid", raw.Txid != nil)
	r.need("vout", raw.Vout != nil)
	r.need("value", raw.Value != nil)
	r.need("status", raw.Status != nil)
	if err := r.err("utxo"); err != nil {
		return err
	}
	txid, err := hashField("txid", *raw.Txid)
	if err != nil {
		return err
	}
	value, err := satoshis("value", *raw.Value)
	if err != nil {
		return err
	}
	*u = Utxo{Txid: txid, Vout: *raw.Vout, Value: value, Status: *raw.Status}
	return nil
}

// AddressTxsSummary aggregates the outputs funding and spent by an address.
// Sums are raw satoshi totals and may exceed the money supply for heavily
// reused addresses.
type AddressTxsSummary struct {
	FundedTxoCount uint32
	FundedTxoSum   uint64
	SpentTxoCount  uint32
	SpentTxoSum    uint64
	TxCount        uint32
}

type addressTxsSummaryJSON struct {
	FundedTxoCount *uint32 `json:"funded_txo_count"`
	FundedTxoSum   *uint64 `json:"funded_txo_sum"`
	SpentTxoCount  *uint32 `json:"spent_txo_count"`
	SpentTxoSum    *uint64 `json:"spent_txo_sum"`
	TxCount        *uint32 `json:"tx_count"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *AddressTxsSummary) UnmarshalJSON(data []byte) error {
	var raw addressTxsSummaryJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("funded_txo_count", raw.FundedTxoCount != nil)
	r.need("funded_txo_sum", raw.FundedTxoSum != nil)
	r.need("spent_txo_count", raw.SpentTxoCount != nil)
	r.need("spent_txo_sum", raw.SpentTxoSum != nil)
	r.need("tx_count", raw.TxCount != nil)
	if err := r.err("address stats"); err != nil {
		return err
	}
	*s = AddressTxsSummary{
		FundedTxoCount: *raw.FundedTxoCount,
		FundedTxoSum:   *raw.FundedTxoSum,
		SpentTxoCount:  *raw.SpentTxoCount,
		SpentTxoSum:    *raw.SpentTxoSum,
		TxCount:        *raw.TxCount,
	}
	return nil
}

// Balance returns funded minus spent satoshis.
func (s AddressTxsSummary) Balance() int64 {
	return int64(s.FundedTxoSum) - int64(s.SpentTxoSum)
}

// AddressStats summarizes confirmed and mempool activity of an address.
type AddressStats struct {
	Address      string
	ChainStats   AddressTxsSummary
	MempoolStats AddressTxsSummary
}

type addressStatsJSON struct {
	Address      *string            `json:"address"`
	ChainStats   *AddressTxsSummary `json:"chain_stats"`
	MempoolStats *AddressTxsSummary `json:"mempool_stats"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AddressStats) UnmarshalJSON(data []byte) error {
	var raw addressStatsJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("address", raw.Address != nil)
	r.need("chain_stats", raw.ChainStats != nil)
	r.need("mempool_stats", raw.MempoolStats != nil)
	if err := r.err("address stats"); err != nil {
		return err
	}
	*a = AddressStats{Address: *raw.Address, ChainStats: *raw.ChainStats, MempoolStats: *raw.MempoolStats}
	return nil
}
