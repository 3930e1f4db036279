package decode

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/kbukum/esplora/chain"
	"github.com/kbukum/esplora/errors"
)

// Raw returns a copy of the body as opaque bytes.
func Raw(body []byte) ([]byte, error) {
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

// Text returns the body with surrounding whitespace removed. An empty
// body fails.
func Text(body []byte) (string, error) {
	s := string(bytes.TrimSpace(body))
	if s == "" {
		return "", errors.Decode("text", fmt.Errorf("empty body"))
	}
	return s, nil
}

// Height decodes a decimal block height.
func Height(body []byte) (uint32, error) {
	s, err := Text(body)
	if err != nil {
		return 0, err
	}
	h, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Decode("height", err)
	}
	return uint32(h), nil
}

// Hash decodes a display-order hash.
func Hash(body []byte) (chainhash.Hash, error) {
	s, err := Text(body)
	if err != nil {
		return chainhash.Hash{}, err
	}
	h, err := chain.ParseHash(s)
	if err != nil {
		return chainhash.Hash{}, errors.Decode("hash", err)
	}
	return h, nil
}

// HexBytes decodes a hex text body.
func HexBytes(body []byte) ([]byte, error) {
	s, err := Text(body)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Decode("hex", err)
	}
	return raw, nil
}

// Tx deserializes a raw transaction body.
func Tx(body []byte) (*wire.MsgTx, error) {
	r := bytes.NewReader(body)
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(r); err != nil {
		return nil, errors.Decode("transaction", err)
	}
	if err := trailing(r); err != nil {
		return nil, errors.Decode("transaction", err)
	}
	return tx, nil
}

// Block deserializes a raw block body.
func Block(body []byte) (*wire.MsgBlock, error) {
	r := bytes.NewReader(body)
	var blk wire.MsgBlock
	if err := blk.Deserialize(r); err != nil {
		return nil, errors.Decode("block", err)
	}
	if err := trailing(r); err != nil {
		return nil, errors.Decode("block", err)
	}
	return &blk, nil
}

// BlockHeader decodes a hex encoded 80-byte block header.
func BlockHeader(body []byte) (*wire.BlockHeader, error) {
	raw, err := HexBytes(body)
	if err != nil {
		return nil, err
	}
	if len(raw) != wire.MaxBlockHeaderPayload {
		return nil, errors.Decode("block header", fmt.Errorf("expected %d bytes, got %d", wire.MaxBlockHeaderPayload, len(raw)))
	}
	var h wire.BlockHeader
	if err := h.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, errors.Decode("block header", err)
	}
	return &h, nil
}

// MerkleBlock decodes a hex encoded merkleblock message.
func MerkleBlock(body []byte) (*wire.MsgMerkleBlock, error) {
	raw, err := HexBytes(body)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(raw)
	var mb wire.MsgMerkleBlock
	if err := mb.BtcDecode(r, wire.ProtocolVersion, wire.BaseEncoding); err != nil {
		return nil, errors.Decode("merkle block", err)
	}
	if err := trailing(r); err != nil {
		return nil, errors.Decode("merkle block", err)
	}
	return &mb, nil
}

func trailing(r *bytes.Reader) error {
	if n := r.Len(); n > 0 {
		return fmt.Errorf("%d trailing bytes", n)
	}
	return nil
}
