package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	// ErrMissingField is returned when a required field is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrAmountRange is returned for satoshi values above btcutil.MaxSatoshi.
	ErrAmountRange = errors.New("amount out of range")
	// ErrFieldCase is returned for a key that matches a field name only
	// case-insensitively.
	ErrFieldCase = errors.New("field name case mismatch")
)

// decodeStrict unmarshals data into v. When v points to a struct, object
// keys must match its json tags exactly; encoding/json alone would accept
// "TXID" for "txid". Unknown keys are ignored.
func decodeStrict(data []byte, v any) error {
	if t := reflect.TypeOf(v); t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		if err := checkKeys(data, t.Elem()); err != nil {
			return err
		}
	}
	return json.Unmarshal(data, v)
}

func checkKeys(data []byte, t reflect.Type) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ","); name != "" && name != "-" {
			names = append(names, name)
		}
	}
	for key := range obj {
		for _, name := range names {
			if key != name && strings.EqualFold(key, name) {
				return fmt.Errorf("%w: %q (want %q)", ErrFieldCase, key, name)
			}
		}
	}
	return nil
}

// required collects the names of absent fields while a value is decoded.
type required struct {
	missing []string
}

func (r *required) need(name string, present bool) {
	if !present {
		r.missing = append(r.missing, name)
	}
}

func (r *required) err(typ string) error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w: %s", typ, ErrMissingField, strings.Join(r.missing, ", "))
}

func satoshis(field string, v uint64) (btcutil.Amount, error) {
	if v > uint64(btcutil.MaxSatoshi) {
		return 0, fmt.Errorf("%s: %w: %d", field, ErrAmountRange, v)
	}
	return btcutil.Amount(v), nil
}

func hashField(field, s string) (chainhash.Hash, error) {
	h, err := ParseHash(s)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("%s: %w", field, err)
	}
	return h, nil
}

func optionalHash(field string, s *string) (*chainhash.Hash, error) {
	if s == nil {
		return nil, nil
	}
	h, err := hashField(field, *s)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func unixTime(sec uint64) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}
