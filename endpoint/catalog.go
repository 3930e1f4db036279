package endpoint

import (
	"net/http"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg"
)

// Operation names.
const (
	OpTxInfo          = "tx_info"
	OpTxStatus        = "tx_status"
	OpTxRaw           = "tx_raw"
	OpMerkleProof     = "merkle_proof"
	OpMerkleBlock     = "merkle_block"
	OpOutputStatus    = "output_status"
	OpBlockSummary    = "block_summary"
	OpBlockStatus     = "block_status"
	OpBlockHeader     = "block_header"
	OpBlockRaw        = "block_raw"
	OpBlockTxid       = "block_txid"
	OpBlockHash       = "block_hash"
	OpTipHash         = "tip_hash"
	OpTipHeight       = "tip_height"
	OpBlocks          = "blocks"
	OpAddressStats    = "address_stats"
	OpAddressTxs      = "address_txs"
	OpAddressUtxos    = "address_utxos"
	OpScriptHashTxs   = "scripthash_txs"
	OpScriptHashUtxos = "scripthash_utxos"
	OpFeeEstimates    = "fee_estimates"
	OpMempool         = "mempool"
	OpBroadcast       = "broadcast"
)

// --- Transactions ---

// TxInfo is GET /tx/{txid}.
func TxInfo(txid string) (Descriptor, error) {
	if err := CheckTxid(txid); err != nil {
		return Descriptor{}, err
	}
	return get(OpTxInfo, KindJSON, "tx", txid), nil
}

// TxStatus is GET /tx/{txid}/status.
func TxStatus(txid string) (Descriptor, error) {
	if err := CheckTxid(txid); err != nil {
		return Descriptor{}, err
	}
	return get(OpTxStatus, KindJSON, "tx", txid, "status"), nil
}

// TxRaw is GET /tx/{txid}/raw.
func TxRaw(txid string) (Descriptor, error) {
	if err := CheckTxid(txid); err != nil {
		return Descriptor{}, err
	}
	return get(OpTxRaw, KindRaw, "tx", txid, "raw"), nil
}

// MerkleProof is GET /tx/{txid}/merkle-proof.
func MerkleProof(txid string) (Descriptor, error) {
	if err := CheckTxid(txid); err != nil {
		return Descriptor{}, err
	}
	return get(OpMerkleProof, KindJSON, "tx", txid, "merkle-proof"), nil
}

// MerkleBlock is GET /tx/{txid}/merkleblock-proof; the body is the hex of a
// merkleblock message.
func MerkleBlock(txid string) (Descriptor, error) {
	if err := CheckTxid(txid); err != nil {
		return Descriptor{}, err
	}
	return get(OpMerkleBlock, KindText, "tx", txid, "merkleblock-proof"), nil
}

// OutputStatus is GET /tx/{txid}/outspend/{vout}.
func OutputStatus(txid string, vout uint32) (Descriptor, error) {
	if err := CheckTxid(txid); err != nil {
		return Descriptor{}, err
	}
	return get(OpOutputStatus, KindJSON, "tx", txid, "outspend", strconv.FormatUint(uint64(vout), 10)), nil
}

// Broadcast is POST /tx with the hex encoded raw transaction as body.
func Broadcast(raw []byte) (Descriptor, error) {
	body, err := rawTxHex(raw)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Op:          OpBroadcast,
		Method:      http.MethodPost,
		Path:        join("tx"),
		Body:        body,
		ContentType: "text/plain",
		Kind:        KindText,
	}, nil
}

// --- Blocks ---

// BlockSummary is GET /block/{hash}.
func BlockSummary(hash string) (Descriptor, error) {
	if err := CheckBlockHash(hash); err != nil {
		return Descriptor{}, err
	}
	return get(OpBlockSummary, KindJSON, "block", hash), nil
}

// BlockStatus is GET /block/{hash}/status.
func BlockStatus(hash string) (Descriptor, error) {
	if err := CheckBlockHash(hash); err != nil {
		return Descriptor{}, err
	}
	return get(OpBlockStatus, KindJSON, "block", hash, "status"), nil
}

// BlockHeader is GET /block/{hash}/header; the body is the hex of an
// 80-byte header.
func BlockHeader(hash string) (Descriptor, error) {
	if err := CheckBlockHash(hash); err != nil {
		return Descriptor{}, err
	}
	return get(OpBlockHeader, KindText, "block", hash, "header"), nil
}

// BlockRaw is GET /block/{hash}/raw.
func BlockRaw(hash string) (Descriptor, error) {
	if err := CheckBlockHash(hash); err != nil {
		return Descriptor{}, err
	}
	return get(OpBlockRaw, KindRaw, "block", hash, "raw"), nil
}

// BlockTxid is GET /block/{hash}/txid/{index}.
func BlockTxid(hash string, index uint32) (Descriptor, error) {
	if err := CheckBlockHash(hash); err != nil {
		return Descriptor{}, err
	}
	return get(OpBlockTxid, KindText, "block", hash, "txid", strconv.FormatUint(uint64(index), 10)), nil
}

// BlockHash is GET /block-height/{height}.
func BlockHash(height uint32) Descriptor {
	return get(OpBlockHash, KindText, "block-height", strconv.FormatUint(uint64(height), 10))
}

// TipHash is GET /blocks/tip/hash.
func TipHash() Descriptor {
	return get(OpTipHash, KindText, "blocks", "tip", "hash")
}

// TipHeight is GET /blocks/tip/height.
func TipHeight() Descriptor {
	return get(OpTipHeight, KindText, "blocks", "tip", "height")
}

// Blocks is GET /blocks, or GET /blocks/{height} when height is non-nil.
func Blocks(height *uint32) Descriptor {
	if height == nil {
		return get(OpBlocks, KindJSON, "blocks")
	}
	return get(OpBlocks, KindJSON, "blocks", strconv.FormatUint(uint64(*height), 10))
}

// --- Addresses and scripts ---

// AddressStats is GET /address/{addr}.
func AddressStats(addr string, params *chaincfg.Params) (Descriptor, error) {
	if err := CheckAddress(addr, params); err != nil {
		return Descriptor{}, err
	}
	return get(OpAddressStats, KindJSON, "address", addr), nil
}

// AddressTxs is GET /address/{addr}/txs, or /address/{addr}/txs/chain/{last}
// to page past the confirmed transaction lastSeen.
func AddressTxs(addr string, params *chaincfg.Params, lastSeen string) (Descriptor, error) {
	if err := CheckAddress(addr, params); err != nil {
		return Descriptor{}, err
	}
	if lastSeen == "" {
		return get(OpAddressTxs, KindJSON, "address", addr, "txs"), nil
	}
	if err := checkHash("last_seen", lastSeen); err != nil {
		return Descriptor{}, err
	}
	return get(OpAddressTxs, KindJSON, "address", addr, "txs", "chain", lastSeen), nil
}

// AddressUtxos is GET /address/{addr}/utxo.
func AddressUtxos(addr string, params *chaincfg.Params) (Descriptor, error) {
	if err := CheckAddress(addr, params); err != nil {
		return Descriptor{}, err
	}
	return get(OpAddressUtxos, KindJSON, "address", addr, "utxo"), nil
}

// ScriptHashTxs is GET /scripthash/{hash}/txs, optionally paged past
// lastSeen like AddressTxs.
func ScriptHashTxs(hash, lastSeen string) (Descriptor, error) {
	if err := CheckScriptHash(hash); err != nil {
		return Descriptor{}, err
	}
	if lastSeen == "" {
		return get(OpScriptHashTxs, KindJSON, "scripthash", hash, "txs"), nil
	}
	if err := checkHash("last_seen", lastSeen); err != nil {
		return Descriptor{}, err
	}
	return get(OpScriptHashTxs, KindJSON, "scripthash", hash, "txs", "chain", lastSeen), nil
}

// ScriptHashUtxos is GET /scripthash/{hash}/utxo.
func ScriptHashUtxos(hash string) (Descriptor, error) {
	if err := CheckScriptHash(hash); err != nil {
		return Descriptor{}, err
	}
	return get(OpScriptHashUtxos, KindJSON, "scripthash", hash, "utxo"), nil
}

// --- Fees and mempool ---

// FeeEstimates is GET /fee-estimates.
func FeeEstimates() Descriptor {
	return get(OpFeeEstimates, KindJSON, "fee-estimates")
}

// Mempool is GET /mempool.
func Mempool() Descriptor {
	return get(OpMempool, KindJSON, "mempool")
}
