package chain

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockSummary is the Esplora view of a block.
type BlockSummary struct {
	ID         chainhash.Hash
	Height     uint32
	Version    int32
	Timestamp  time.Time
	MedianTime time.Time
	TxCount    uint32
	Size       uint32
	Weight     uint64
	MerkleRoot chainhash.Hash
	// PreviousBlockHash is nil for the genesis block.
	PreviousBlockHash *chainhash.Hash
	Nonce             uint32
	Bits              uint32
	Difficulty        float64
}

type blockSummaryJSON struct {
	ID                *string `json:"id"`
	Height            *uint32 `json:"height"`
	Version           int32   `json:"version"`
	Timestamp         *uint64 `json:"timestamp"`
	MedianTime        *uint64 `json:"mediantime"`
	TxCount           *uint32 `json:"tx_count"`
	Size              *uint32 `json:"size"`
	Weight            *uint64 `json:"weight"`
	MerkleRoot        *string `json:"merkle_root"`
	PreviousBlockHash *string `json:"previousblockhash"`
	Nonce             uint32  `json:"nonce"`
	Bits              uint32  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BlockSummary) UnmarshalJSON(data []byte) error {
	var raw blockSummaryJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("id", raw.ID != nil)
	r.need("height", raw.Height != nil)
	r.need("timestamp", raw.Timestamp != nil)
	r.need("tx_count", raw.TxCount != nil)
	r.need("size", raw.Size != nil)
	r.need("weight", raw.Weight != nil)
	r.need("merkle_root", raw.MerkleRoot != nil)
	if err := r.err("block summary"); err != nil {
		return err
	}
	id, err := hashField("id", *raw.ID)
	if err != nil {
		return err
	}
	root, err := hashField("merkle_root", *raw.MerkleRoot)
	if err != nil {
		return err
	}
	prev, err := optionalHash("previousblockhash", raw.PreviousBlockHash)
	if err != nil {
		return err
	}
	out := BlockSummary{
		ID:                id,
		Height:            *raw.Height,
		Version:           raw.Version,
		Timestamp:         unixTime(*raw.Timestamp),
		TxCount:           *raw.TxCount,
		Size:              *raw.Size,
		Weight:            *raw.Weight,
		MerkleRoot:        root,
		PreviousBlockHash: prev,
		Nonce:             raw.Nonce,
		Bits:              raw.Bits,
		Difficulty:        raw.Difficulty,
	}
	if raw.MedianTime != nil {
		out.MedianTime = unixTime(*raw.MedianTime)
	}
	*b = out
	return nil
}

// BlockStatus reports whether a block is part of the best chain.
type BlockStatus struct {
	InBestChain bool
	// Height is nil for stale blocks the server does not index by height.
	Height   *uint32
	NextBest *chainhash.Hash
}

type blockStatusJSON struct {
	InBestChain *bool   `json:"in_best_chain"`
	Height      *uint32 `json:"height"`
	NextBest    *string `json:"next_best"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *BlockStatus) UnmarshalJSON(data []byte) error {
	var raw blockStatusJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("in_best_chain", raw.InBestChain != nil)
	if err := r.err("block status"); err != nil {
		return err
	}
	next, err := optionalHash("next_best", raw.NextBest)
	if err != nil {
		return err
	}
	*s = BlockStatus{InBestChain: *raw.InBestChain, Height: raw.Height, NextBest: next}
	return nil
}
