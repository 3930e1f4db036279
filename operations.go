package esplora

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/kbukum/esplora/chain"
	"github.com/kbukum/esplora/decode"
	"github.com/kbukum/esplora/endpoint"
	"github.com/kbukum/esplora/errors"
)

// Every client call is defined once here; BlockingClient runs the
// operation inline and AsyncClient wraps it in a Future.

// --- Transactions ---

func (c *core) txInfo(txid string) operation[*chain.Tx] {
	d, err := endpoint.TxInfo(txid)
	return newOperation[*chain.Tx](d, err, decode.JSON[chain.Tx])
}

func (c *core) tx(txid string) operation[*wire.MsgTx] {
	d, err := endpoint.TxRaw(txid)
	return newOperation[*wire.MsgTx](d, err, decode.Tx)
}

func (c *core) txRaw(txid string) operation[[]byte] {
	d, err := endpoint.TxRaw(txid)
	return newOperation[[]byte](d, err, decode.Raw)
}

func (c *core) txStatus(txid string) operation[*chain.TxStatus] {
	d, err := endpoint.TxStatus(txid)
	return newOperation[*chain.TxStatus](d, err, decode.JSON[chain.TxStatus])
}

func (c *core) merkleProof(txid string) operation[*chain.MerkleProof] {
	d, err := endpoint.MerkleProof(txid)
	return newOperation[*chain.MerkleProof](d, err, decode.JSON[chain.MerkleProof])
}

func (c *core) merkleBlock(txid string) operation[*wire.MsgMerkleBlock] {
	d, err := endpoint.MerkleBlock(txid)
	return newOperation[*wire.MsgMerkleBlock](d, err, decode.MerkleBlock)
}

func (c *core) outputStatus(txid string, vout uint32) operation[*chain.OutputStatus] {
	d, err := endpoint.OutputStatus(txid, vout)
	return newOperation[*chain.OutputStatus](d, err, decode.JSON[chain.OutputStatus])
}

func (c *core) broadcast(raw []byte) operation[chainhash.Hash] {
	d, err := endpoint.Broadcast(raw)
	op := newOperation[chainhash.Hash](d, err, decode.Hash)
	op.retry = true
	return op
}

func (c *core) broadcastTx(tx *wire.MsgTx) operation[chainhash.Hash] {
	if tx == nil {
		return operation[chainhash.Hash]{err: errors.Validation("tx", "is nil")}
	}
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return operation[chainhash.Hash]{err: errors.Validation("tx", err.Error()).WithCause(err)}
	}
	return c.broadcast(buf.Bytes())
}

// --- Blocks ---

func (c *core) txidAtBlockIndex(hash string, index uint32) operation[chainhash.Hash] {
	d, err := endpoint.BlockTxid(hash, index)
	return newOperation[chainhash.Hash](d, err, decode.Hash)
}

func (c *core) blockSummary(hash string) operation[*chain.BlockSummary] {
	d, err := endpoint.BlockSummary(hash)
	return newOperation[*chain.BlockSummary](d, err, decode.JSON[chain.BlockSummary])
}

func (c *core) blockStatus(hash string) operation[*chain.BlockStatus] {
	d, err := endpoint.BlockStatus(hash)
	return newOperation[*chain.BlockStatus](d, err, decode.JSON[chain.BlockStatus])
}

func (c *core) blockHeader(hash string) operation[*wire.BlockHeader] {
	d, err := endpoint.BlockHeader(hash)
	return newOperation[*wire.BlockHeader](d, err, decode.BlockHeader)
}

func (c *core) block(hash string) operation[*wire.MsgBlock] {
	d, err := endpoint.BlockRaw(hash)
	return newOperation[*wire.MsgBlock](d, err, decode.Block)
}

func (c *core) blockHash(height uint32) operation[chainhash.Hash] {
	return newOperation[chainhash.Hash](endpoint.BlockHash(height), nil, decode.Hash)
}

func (c *core) tipHash() operation[chainhash.Hash] {
	return newOperation[chainhash.Hash](endpoint.TipHash(), nil, decode.Hash)
}

func (c *core) height() operation[uint32] {
	return newOperation[uint32](endpoint.TipHeight(), nil, decode.Height)
}

func (c *core) blocks(height *uint32) operation[[]chain.BlockSummary] {
	return newOperation[[]chain.BlockSummary](endpoint.Blocks(height), nil,
		decode.NonEmpty[chain.BlockSummary](decode.JSONSlice[chain.BlockSummary]))
}

// --- Addresses and scripts ---

func (c *core) addressStats(addr string) operation[*chain.AddressStats] {
	d, err := endpoint.AddressStats(addr, c.params)
	return newOperation[*chain.AddressStats](d, err, decode.JSON[chain.AddressStats])
}

func (c *core) addressTxs(addr, lastSeen string) operation[[]chain.Tx] {
	d, err := endpoint.AddressTxs(addr, c.params, lastSeen)
	return newOperation[[]chain.Tx](d, err, decode.JSONSlice[chain.Tx])
}

func (c *core) addressUtxos(addr string) operation[[]chain.Utxo] {
	d, err := endpoint.AddressUtxos(addr, c.params)
	return newOperation[[]chain.Utxo](d, err, decode.JSONSlice[chain.Utxo])
}

func (c *core) scriptHashTxs(hash, lastSeen string) operation[[]chain.Tx] {
	d, err := endpoint.ScriptHashTxs(hash, lastSeen)
	return newOperation[[]chain.Tx](d, err, decode.JSONSlice[chain.Tx])
}

func (c *core) scriptHashUtxos(hash string) operation[[]chain.Utxo] {
	d, err := endpoint.ScriptHashUtxos(hash)
	return newOperation[[]chain.Utxo](d, err, decode.JSONSlice[chain.Utxo])
}

// --- Fees and mempool ---

func (c *core) feeEstimates() operation[chain.FeeEstimates] {
	return newOperation[chain.FeeEstimates](endpoint.FeeEstimates(), nil, decodeFeeEstimates)
}

func (c *core) mempool() operation[*chain.MempoolInfo] {
	return newOperation[*chain.MempoolInfo](endpoint.Mempool(), nil, decode.JSON[chain.MempoolInfo])
}

func decodeFeeEstimates(body []byte) (chain.FeeEstimates, error) {
	v, err := decode.JSON[chain.FeeEstimates](body)
	if err != nil {
		return nil, err
	}
	return *v, nil
}
