package esplora

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/kbukum/esplora/chain"
)

// BlockingClient performs each call on the calling goroutine. It is safe
// for concurrent use.
type BlockingClient struct {
	*core
}

// NewBlockingClient validates cfg and builds a client.
func NewBlockingClient(cfg Config, opts ...Option) (*BlockingClient, error) {
	c, err := newCore(cfg, blockingExecutor, opts...)
	if err != nil {
		return nil, err
	}
	return &BlockingClient{core: c}, nil
}

// GetTx fetches the raw transaction txid and deserializes it.
func (c *BlockingClient) GetTx(ctx context.Context, txid string) (*wire.MsgTx, error) {
	return run(ctx, c.core, c.tx(txid))
}

// GetTxRaw fetches the consensus serialization of txid.
func (c *BlockingClient) GetTxRaw(ctx context.Context, txid string) ([]byte, error) {
	return run(ctx, c.core, c.txRaw(txid))
}

// GetTxInfo fetches txid with its prevouts, fee and confirmation status.
func (c *BlockingClient) GetTxInfo(ctx context.Context, txid string) (*chain.Tx, error) {
	return run(ctx, c.core, c.txInfo(txid))
}

// GetTxStatus fetches the confirmation status of txid.
func (c *BlockingClient) GetTxStatus(ctx context.Context, txid string) (*chain.TxStatus, error) {
	return run(ctx, c.core, c.txStatus(txid))
}

// GetMerkleProof fetches the Electrum-style merkle inclusion proof of txid.
func (c *BlockingClient) GetMerkleProof(ctx context.Context, txid string) (*chain.MerkleProof, error) {
	return run(ctx, c.core, c.merkleProof(txid))
}

// GetMerkleBlock fetches the BIP37 merkle block proving txid.
func (c *BlockingClient) GetMerkleBlock(ctx context.Context, txid string) (*wire.MsgMerkleBlock, error) {
	return run(ctx, c.core, c.merkleBlock(txid))
}

// GetOutputStatus reports whether output vout of txid is spent.
func (c *BlockingClient) GetOutputStatus(ctx context.Context, txid string, vout uint32) (*chain.OutputStatus, error) {
	return run(ctx, c.core, c.outputStatus(txid, vout))
}

// GetTxidAtBlockIndex fetches the txid at position index of block hash.
func (c *BlockingClient) GetTxidAtBlockIndex(ctx context.Context, hash string, index uint32) (chainhash.Hash, error) {
	return run(ctx, c.core, c.txidAtBlockIndex(hash, index))
}

// GetBlockSummary fetches the summary of block hash.
func (c *BlockingClient) GetBlockSummary(ctx context.Context, hash string) (*chain.BlockSummary, error) {
	return run(ctx, c.core, c.blockSummary(hash))
}

// GetBlockStatus fetches the best-chain status of block hash.
func (c *BlockingClient) GetBlockStatus(ctx context.Context, hash string) (*chain.BlockStatus, error) {
	return run(ctx, c.core, c.blockStatus(hash))
}

// GetBlockHeader fetches the 80-byte header of block hash.
func (c *BlockingClient) GetBlockHeader(ctx context.Context, hash string) (*wire.BlockHeader, error) {
	return run(ctx, c.core, c.blockHeader(hash))
}

// GetBlock fetches and deserializes the full block hash.
func (c *BlockingClient) GetBlock(ctx context.Context, hash string) (*wire.MsgBlock, error) {
	return run(ctx, c.core, c.block(hash))
}

// GetBlockHash fetches the hash of the best-chain block at height.
func (c *BlockingClient) GetBlockHash(ctx context.Context, height uint32) (chainhash.Hash, error) {
	return run(ctx, c.core, c.blockHash(height))
}

// GetTipHash fetches the hash of the chain tip.
func (c *BlockingClient) GetTipHash(ctx context.Context) (chainhash.Hash, error) {
	return run(ctx, c.core, c.tipHash())
}

// GetHeight fetches the height of the chain tip.
func (c *BlockingClient) GetHeight(ctx context.Context) (uint32, error) {
	return run(ctx, c.core, c.height())
}

// GetBlocks fetches the ten most recent block summaries, ending at height
// when it is non-nil.
func (c *BlockingClient) GetBlocks(ctx context.Context, height *uint32) ([]chain.BlockSummary, error) {
	return run(ctx, c.core, c.blocks(height))
}

// GetAddressStats fetches the funding and spending totals of addr.
func (c *BlockingClient) GetAddressStats(ctx context.Context, addr string) (*chain.AddressStats, error) {
	return run(ctx, c.core, c.addressStats(addr))
}

// GetAddressTxs fetches transactions of addr, newest first. A non-empty
// lastSeen pages past that confirmed txid.
func (c *BlockingClient) GetAddressTxs(ctx context.Context, addr, lastSeen string) ([]chain.Tx, error) {
	return run(ctx, c.core, c.addressTxs(addr, lastSeen))
}

// GetAddressUtxos fetches the unspent outputs of addr.
func (c *BlockingClient) GetAddressUtxos(ctx context.Context, addr string) ([]chain.Utxo, error) {
	return run(ctx, c.core, c.addressUtxos(addr))
}

// GetScriptHashTxs is GetAddressTxs keyed by script hash; see
// chain.ScriptHash.
func (c *BlockingClient) GetScriptHashTxs(ctx context.Context, scriptHash, lastSeen string) ([]chain.Tx, error) {
	return run(ctx, c.core, c.scriptHashTxs(scriptHash, lastSeen))
}

// GetScriptHashUtxos is GetAddressUtxos keyed by script hash.
func (c *BlockingClient) GetScriptHashUtxos(ctx context.Context, scriptHash string) ([]chain.Utxo, error) {
	return run(ctx, c.core, c.scriptHashUtxos(scriptHash))
}

// GetFeeEstimates fetches fee rates in sat/vB keyed by confirmation target.
func (c *BlockingClient) GetFeeEstimates(ctx context.Context) (chain.FeeEstimates, error) {
	return run(ctx, c.core, c.feeEstimates())
}

// GetMempool fetches mempool backlog statistics.
func (c *BlockingClient) GetMempool(ctx context.Context) (*chain.MempoolInfo, error) {
	return run(ctx, c.core, c.mempool())
}

// Broadcast submits a serialized transaction and returns its txid.
// Indeterminate transport failures are retried with backoff; a rejection
// by the server is returned at once.
func (c *BlockingClient) Broadcast(ctx context.Context, raw []byte) (chainhash.Hash, error) {
	return run(ctx, c.core, c.broadcast(raw))
}

// BroadcastTx serializes tx and broadcasts it.
func (c *BlockingClient) BroadcastTx(ctx context.Context, tx *wire.MsgTx) (chainhash.Hash, error) {
	return run(ctx, c.core, c.broadcastTx(tx))
}
