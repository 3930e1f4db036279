package chain

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashHexLen is the length of a hex encoded transaction or block hash.
const HashHexLen = chainhash.MaxHashStringSize

var (
	// ErrHashLength is returned for hash strings that are not HashHexLen long.
	ErrHashLength = errors.New("hash must be 64 hex characters")
	// ErrNotHex is returned for strings outside the hex alphabet.
	ErrNotHex = errors.New("not a hex string")
)

// IsHex reports whether s is non-empty, of even length and made only of hex
// digits.
func IsHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// CheckHashHex validates that s is a 64 character hex string.
func CheckHashHex(s string) error {
	if len(s) != HashHexLen {
		return fmt.Errorf("%w (got %d)", ErrHashLength, len(s))
	}
	if !IsHex(s) {
		return ErrNotHex
	}
	return nil
}

// ParseHash parses a display-order hash string. Unlike
// chainhash.NewHashFromStr it rejects short input instead of zero padding.
func ParseHash(s string) (chainhash.Hash, error) {
	if err := CheckHashHex(s); err != nil {
		return chainhash.Hash{}, err
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *h, nil
}

// ScriptHash returns the Esplora script hash of script: the hex encoded
// SHA-256 digest in forward byte order.
func ScriptHash(script []byte) string {
	return hex.EncodeToString(chainhash.HashB(script))
}

// HexBytes is a byte slice carried as a hex string in JSON.
type HexBytes []byte

// UnmarshalJSON implements json.Unmarshaler. The value must be a hex
// string; null is rejected.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("%w: null", ErrNotHex)
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotHex, err)
	}
	*b = raw
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

// String returns the lowercase hex encoding.
func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}
