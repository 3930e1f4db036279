package esploratest

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Mainnet genesis values as Esplora reports them.
var (
	GenesisBlockHash = chaincfg.MainNetParams.GenesisHash.String()
	GenesisTxid      = chaincfg.MainNetParams.GenesisBlock.Transactions[0].TxHash().String()
)

// GenesisAddress is the mainnet address of the genesis coinbase key.
const GenesisAddress = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

// GenesisTxRaw returns the consensus serialization of the genesis coinbase.
func GenesisTxRaw() []byte {
	var buf bytes.Buffer
	_ = chaincfg.MainNetParams.GenesisBlock.Transactions[0].Serialize(&buf)
	return buf.Bytes()
}

// GenesisBlockRaw returns the consensus serialization of the genesis block.
func GenesisBlockRaw() []byte {
	var buf bytes.Buffer
	_ = chaincfg.MainNetParams.GenesisBlock.Serialize(&buf)
	return buf.Bytes()
}

// GenesisHeaderHex returns the genesis header as /block/{hash}/header does.
func GenesisHeaderHex() string {
	var buf bytes.Buffer
	_ = chaincfg.MainNetParams.GenesisBlock.Header.Serialize(&buf)
	return hex.EncodeToString(buf.Bytes())
}

// GenesisTxJSON returns /tx/{txid} for the genesis coinbase.
func GenesisTxJSON() string {
	tx := chaincfg.MainNetParams.GenesisBlock.Transactions[0]
	return fmt.Sprintf(`{
		"txid": %q,
		"version": 1,
		"locktime": 0,
		"vin": [{
			"txid": "0000000000000000000000000000000000000000000000000000000000000000",
			"vout": 4294967295,
			"prevout": null,
			"scriptsig": %q,
			"scriptsig_asm": "OP_PUSHBYTES_4 ffff001d",
			"is_coinbase": true,
			"sequence": 4294967295
		}],
		"vout": [{
			"scriptpubkey": %q,
			"scriptpubkey_asm": "OP_PUSHBYTES_65 OP_CHECKSIG",
			"scriptpubkey_type": "p2pk",
			"value": 5000000000
		}],
		"size": 204,
		"weight": 816,
		"fee": 0,
		"status": %s
	}`,
		GenesisTxid,
		hex.EncodeToString(tx.TxIn[0].SignatureScript),
		hex.EncodeToString(tx.TxOut[0].PkScript),
		GenesisStatusJSON(),
	)
}

// GenesisStatusJSON returns /tx/{txid}/status for the genesis coinbase.
func GenesisStatusJSON() string {
	return fmt.Sprintf(`{"confirmed":true,"block_height":0,"block_hash":%q,"block_time":1231006505}`, GenesisBlockHash)
}

// GenesisBlockJSON returns /block/{hash} for the genesis block.
func GenesisBlockJSON() string {
	b := chaincfg.MainNetParams.GenesisBlock
	return fmt.Sprintf(`{
		"id": %q,
		"height": 0,
		"version": 1,
		"timestamp": 1231006505,
		"tx_count": 1,
		"size": 285,
		"weight": 1140,
		"merkle_root": %q,
		"previousblockhash": null,
		"mediantime": 1231006505,
		"nonce": 2083236893,
		"bits": 486604799,
		"difficulty": 1
	}`, GenesisBlockHash, b.Header.MerkleRoot.String())
}
