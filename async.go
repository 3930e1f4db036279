package esplora

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/kbukum/esplora/chain"
)

// AsyncClient starts each call on its own goroutine and returns a Future.
// Calls interleave freely; it is safe for concurrent use.
type AsyncClient struct {
	*core
}

// NewAsyncClient validates cfg and builds a client.
func NewAsyncClient(cfg Config, opts ...Option) (*AsyncClient, error) {
	c, err := newCore(cfg, suspendingExecutor, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{core: c}, nil
}

// GetTx fetches the raw transaction txid and deserializes it.
func (c *AsyncClient) GetTx(ctx context.Context, txid string) *Future[*wire.MsgTx] {
	return submit(ctx, c.core, c.tx(txid))
}

// GetTxRaw fetches the consensus serialization of txid.
func (c *AsyncClient) GetTxRaw(ctx context.Context, txid string) *Future[[]byte] {
	return submit(ctx, c.core, c.txRaw(txid))
}

// GetTxInfo fetches txid with its prevouts, fee and confirmation status.
func (c *AsyncClient) GetTxInfo(ctx context.Context, txid string) *Future[*chain.Tx] {
	return submit(ctx, c.core, c.txInfo(txid))
}

// GetTxStatus fetches the confirmation status of txid.
func (c *AsyncClient) GetTxStatus(ctx context.Context, txid string) *Future[*chain.TxStatus] {
	return submit(ctx, c.core, c.txStatus(txid))
}

// GetMerkleProof fetches the Electrum-style merkle inclusion proof of txid.
func (c *AsyncClient) GetMerkleProof(ctx context.Context, txid string) *Future[*chain.MerkleProof] {
	return submit(ctx, c.core, c.merkleProof(txid))
}

// GetMerkleBlock fetches the BIP37 merkle block proving txid.
func (c *AsyncClient) GetMerkleBlock(ctx context.Context, txid string) *Future[*wire.MsgMerkleBlock] {
	return submit(ctx, c.core, c.merkleBlock(txid))
}

// GetOutputStatus reports whether output vout of txid is spent.
func (c *AsyncClient) GetOutputStatus(ctx context.Context, txid string, vout uint32) *Future[*chain.OutputStatus] {
	return submit(ctx, c.core, c.outputStatus(txid, vout))
}

// GetTxidAtBlockIndex fetches the txid at position index of block hash.
func (c *AsyncClient) GetTxidAtBlockIndex(ctx context.Context, hash string, index uint32) *Future[chainhash.Hash] {
	return submit(ctx, c.core, c.txidAtBlockIndex(hash, index))
}

// GetBlockSummary fetches the summary of block hash.
func (c *AsyncClient) GetBlockSummary(ctx context.Context, hash string) *Future[*chain.BlockSummary] {
	return submit(ctx, c.core, c.blockSummary(hash))
}

// GetBlockStatus fetches the best-chain status of block hash.
func (c *AsyncClient) GetBlockStatus(ctx context.Context, hash string) *Future[*chain.BlockStatus] {
	return submit(ctx, c.core, c.blockStatus(hash))
}

// GetBlockHeader fetches the 80-byte header of block hash.
func (c *AsyncClient) GetBlockHeader(ctx context.Context, hash string) *Future[*wire.BlockHeader] {
	return submit(ctx, c.core, c.blockHeader(hash))
}

// GetBlock fetches and deserializes the full block hash.
func (c *AsyncClient) GetBlock(ctx context.Context, hash string) *Future[*wire.MsgBlock] {
	return submit(ctx, c.core, c.block(hash))
}

// GetBlockHash fetches the hash of the best-chain block at height.
func (c *AsyncClient) GetBlockHash(ctx context.Context, height uint32) *Future[chainhash.Hash] {
	return submit(ctx, c.core, c.blockHash(height))
}

// GetTipHash fetches the hash of the chain tip.
func (c *AsyncClient) GetTipHash(ctx context.Context) *Future[chainhash.Hash] {
	return submit(ctx, c.core, c.tipHash())
}

// GetHeight fetches the height of the chain tip.
func (c *AsyncClient) GetHeight(ctx context.Context) *Future[uint32] {
	return submit(ctx, c.core, c.height())
}

// GetBlocks fetches the ten most recent block summaries, ending at height
// when it is non-nil.
func (c *AsyncClient) GetBlocks(ctx context.Context, height *uint32) *Future[[]chain.BlockSummary] {
	return submit(ctx, c.core, c.blocks(height))
}

// GetAddressStats fetches the funding and spending totals of addr.
func (c *AsyncClient) GetAddressStats(ctx context.Context, addr string) *Future[*chain.AddressStats] {
	return submit(ctx, c.core, c.addressStats(addr))
}

// GetAddressTxs fetches transactions of addr, newest first. A non-empty
// lastSeen pages past that confirmed txid.
func (c *AsyncClient) GetAddressTxs(ctx context.Context, addr, lastSeen string) *Future[[]chain.Tx] {
	return submit(ctx, c.core, c.addressTxs(addr, lastSeen))
}

// GetAddressUtxos fetches the unspent outputs of addr.
func (c *AsyncClient) GetAddressUtxos(ctx context.Context, addr string) *Future[[]chain.Utxo] {
	return submit(ctx, c.core, c.addressUtxos(addr))
}

// GetScriptHashTxs is GetAddressTxs keyed by script hash; see
// chain.ScriptHash.
func (c *AsyncClient) GetScriptHashTxs(ctx context.Context, scriptHash, lastSeen string) *Future[[]chain.Tx] {
	return submit(ctx, c.core, c.scriptHashTxs(scriptHash, lastSeen))
}

// GetScriptHashUtxos is GetAddressUtxos keyed by script hash.
func (c *AsyncClient) GetScriptHashUtxos(ctx context.Context, scriptHash string) *Future[[]chain.Utxo] {
	return submit(ctx, c.core, c.scriptHashUtxos(scriptHash))
}

// GetFeeEstimates fetches fee rates in sat/vB keyed by confirmation target.
func (c *AsyncClient) GetFeeEstimates(ctx context.Context) *Future[chain.FeeEstimates] {
	return submit(ctx, c.core, c.feeEstimates())
}

// GetMempool fetches mempool backlog statistics.
func (c *AsyncClient) GetMempool(ctx context.Context) *Future[*chain.MempoolInfo] {
	return submit(ctx, c.core, c.mempool())
}

// Broadcast submits a serialized transaction and returns its txid.
// Indeterminate transport failures are retried with backoff; a rejection
// by the server is returned at once.
func (c *AsyncClient) Broadcast(ctx context.Context, raw []byte) *Future[chainhash.Hash] {
	return submit(ctx, c.core, c.broadcast(raw))
}

// BroadcastTx serializes tx and broadcasts it.
func (c *AsyncClient) BroadcastTx(ctx context.Context, tx *wire.MsgTx) *Future[chainhash.Hash] {
	return submit(ctx, c.core, c.broadcastTx(tx))
}
