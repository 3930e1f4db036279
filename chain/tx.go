package chain

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxStatus is the confirmation status of a transaction.
type TxStatus struct {
	Confirmed bool
	// BlockHeight is zero and BlockHash nil while unconfirmed.
	BlockHeight uint32
	BlockHash   *chainhash.Hash
	BlockTime   time.Time
}

type txStatusJSON struct {
	Confirmed   *bool   `json:"confirmed"`
	BlockHeight *uint32 `json:"block_height"`
	BlockHash   *string `json:"block_hash"`
	BlockTime   *uint64 `json:"block_time"`
}

// UnmarshalJSON implements json.Unmarshaler. A confirmed status must carry
// its block height and hash.
func (s *TxStatus) UnmarshalJSON(data []byte) error {
	var raw txStatusJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("confirmed", raw.Confirmed != nil)
	if raw.Confirmed != nil && *raw.Confirmed {
		r.need("block_height", raw.BlockHeight != nil)
		r.need("block_hash", raw.BlockHash != nil)
	}
	if err := r.err("tx status"); err != nil {
		return err
	}

	out := TxStatus{Confirmed: *raw.Confirmed}
	if out.Confirmed {
		h, err := optionalHash("block_hash", raw.BlockHash)
		if err != nil {
			return err
		}
		out.BlockHash = h
		out.BlockHeight = *raw.BlockHeight
		if raw.BlockTime != nil {
			out.BlockTime = unixTime(*raw.BlockTime)
		}
	}
	*s = out
	return nil
}

// Vout is a transaction output.
type Vout struct {
	Value               btcutil.Amount
	ScriptPubKey        HexBytes
	ScriptPubKeyASM     string
	ScriptPubKeyType    string
	ScriptPubKeyAddress string
}

type voutJSON struct {
	Value               *uint64   `json:"value"`
	ScriptPubKey        *HexBytes `json:"scriptpubkey"`
	ScriptPubKeyASM     string    `json:"scriptpubkey_asm"`
	ScriptPubKeyType    string    `json:"scriptpubkey_type"`
	ScriptPubKeyAddress string    `json:"scriptpubkey_address"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Vout) UnmarshalJSON(data []byte) error {
	var raw voutJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("value", raw.Value != nil)
	r.need("scriptpubkey", raw.ScriptPubKey != nil)
	if err := r.err("vout"); err != nil {
		return err
	}
	value, err := satoshis("value", *raw.Value)
	if err != nil {
		return err
	}
	*v = Vout{
		Value:               value,
		ScriptPubKey:        *raw.ScriptPubKey,
		ScriptPubKeyASM:     raw.ScriptPubKeyASM,
		ScriptPubKeyType:    raw.ScriptPubKeyType,
		ScriptPubKeyAddress: raw.ScriptPubKeyAddress,
	}
	return nil
}

// PrevOut is the output spent by an input.
type PrevOut = Vout

// Vin is a transaction input.
type Vin struct {
	Txid chainhash.Hash
	Vout uint32
	// PrevOut is nil for coinbase inputs.
	PrevOut    *PrevOut
	ScriptSig  HexBytes
	Witness    []HexBytes
	Sequence   uint32
	IsCoinbase bool
}

type vinJSON struct {
	Txid       *string    `json:"txid"`
	Vout       *uint32    `json:"vout"`
	PrevOut    *PrevOut   `json:"prevout"`
	ScriptSig  *HexBytes  `json:"scriptsig"`
	Witness    []HexBytes `json:"witness"`
	Sequence   *uint32    `json:"sequence"`
	IsCoinbase *bool      `json:"is_coinbase"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Vin) UnmarshalJSON(data []byte) error {
	var raw vinJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("txid", raw.Txid != nil)
	r.need("vout", raw.Vout != nil)
	r.need("scriptsig", raw.ScriptSig != nil)
	r.need("sequence", raw.Sequence != nil)
	r.need("is_coinbase", raw.IsCoinbase != nil)
	if err := r.err("vin"); err != nil {
		return err
	}
	txid, err := hashField("txid", *raw.Txid)
	if err != nil {
		return err
	}
	*v = Vin{
		Txid:       txid,
		Vout:       *raw.Vout,
		PrevOut:    raw.PrevOut,
		ScriptSig:  *raw.ScriptSig,
		Witness:    raw.Witness,
		Sequence:   *raw.Sequence,
		IsCoinbase: *raw.IsCoinbase,
	}
	return nil
}

// Tx is the Esplora view of a transaction.
type Tx struct {
	Txid     chainhash.Hash
	Version  int32
	LockTime uint32
	Vin      []Vin
	Vout     []Vout
	Size     uint32
	Weight   uint64
	Fee      btcutil.Amount
	Status   TxStatus
}

type txJSON struct {
	Txid     *string   `json:"txid"`
	Version  *int32    `json:"version"`
	LockTime *uint32   `json:"locktime"`
	Vin      *[]Vin    `json:"vin"`
	Vout     *[]Vout   `json:"vout"`
	Size     *uint32   `json:"size"`
	Weight   *uint64   `json:"weight"`
	Fee      *uint64   `json:"fee"`
	Status   *TxStatus `json:"status"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tx) UnmarshalJSON(data []byte) error {
	var raw txJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("txid", raw.Txid != nil)
	r.need("version", raw.Version != nil)
	r.need("locktime", raw.LockTime != nil)
	r.need("vin", raw.Vin != nil)
	r.need("vout", raw.Vout != nil)
	r.need("size", raw.Size != nil)
	r.need("weight", raw.Weight != nil)
	r.need("fee", raw.Fee != nil)
	r.need("status", raw.Status != nil)
	if err := r.err("tx"); err != nil {
		return err
	}
	txid, err := hashField("txid", *raw.Txid)
	if err != nil {
		return err
	}
	fee, err := satoshis("fee", *raw.Fee)
	if err != nil {
		return err
	}
	*t = Tx{
		Txid:     txid,
		Version:  *raw.Version,
		LockTime: *raw.LockTime,
		Vin:      *raw.Vin,
		Vout:     *raw.Vout,
		Size:     *raw.Size,
		Weight:   *raw.Weight,
		Fee:      fee,
		Status:   *raw.Status,
	}
	return nil
}

// VSize returns the virtual size in vbytes, rounded up.
func (t *Tx) VSize() uint64 {
	return (t.Weight + 3) / 4
}

// FeeRate returns the fee rate in sat/vB. It is zero for a zero-weight tx.
func (t *Tx) FeeRate() float64 {
	vsize := t.VSize()
	if vsize == 0 {
		return 0
	}
	return float64(t.Fee) / float64(vsize)
}

// MerkleProof is the inclusion proof of a transaction in its block.
type MerkleProof struct {
	BlockHeight uint32
	Merkle      []chainhash.Hash
	Pos         uint32
}

type merkleProofJSON struct {
	BlockHeight *uint32   `json:"block_height"`
	Merkle      *[]string `json:"merkle"`
	Pos         *uint32   `json:"pos"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *MerkleProof) UnmarshalJSON(data []byte) error {
	var raw merkleProofJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("block_height", raw.BlockHeight != nil)
	r.need("merkle", raw.Merkle != nil)
	r.need("pos", raw.Pos != nil)
	if err := r.err("merkle proof"); err != nil {
		return err
	}
	merkle := make([]chainhash.Hash, 0, len(*raw.Merkle))
	for i, s := range *raw.Merkle {
		h, err := hashField(fmt.Sprintf("merkle[%d]", i), s)
		if err != nil {
			return err
		}
		merkle = append(merkle, h)
	}
	*p = MerkleProof{BlockHeight: *raw.BlockHeight, Merkle: merkle, Pos: *raw.Pos}
	return nil
}

// OutputStatus reports whether an output has been spent.
type OutputStatus struct {
	Spent bool
	// Txid and Vin identify the spending input when Spent is true.
	Txid   *chainhash.Hash
	Vin    uint32
	Status *TxStatus
}

type outputStatusJSON struct {
	Spent  *bool     `json:"spent"`
	Txid   *string   `json:"txid"`
	Vin    *uint32   `json:"vin"`
	Status *TxStatus `json:"status"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OutputStatus) UnmarshalJSON(data []byte) error {
	var raw outputStatusJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("spent", raw.Spent != nil)
	if raw.Spent != nil && *raw.Spent {
		r.need("txid", raw.Txid != nil)
		r.need("vin", raw.Vin != nil)
	}
	if err := r.err("output status"); err != nil {
		return err
	}
	out := OutputStatus{Spent: *raw.Spent, Status: raw.Status}
	if out.Spent {
		txid, err := optionalHash("txid", raw.Txid)
		if err != nil {
			return err
		}
		out.Txid = txid
		out.Vin = *raw.Vin
	}
	*o = out
	return nil
}
