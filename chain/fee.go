package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
)

// ErrInvalidFeeRate is returned for negative fee rates.
var ErrInvalidFeeRate = errors.New("invalid fee rate")

// FeeEstimates maps a confirmation target in blocks to a fee rate in sat/vB.
// Rates are approximate.
type FeeEstimates map[uint16]float64

// UnmarshalJSON implements json.Unmarshaler. Keys must be canonical decimal
// block counts, so "01" and "+1" are rejected.
func (f *FeeEstimates) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("fee estimates: %w", ErrMissingField)
	}
	out := make(FeeEstimates, len(raw))
	for k, rate := range raw {
		target, err := strconv.ParseUint(k, 10, 16)
		if err != nil {
			return fmt.Errorf("fee estimates: confirmation target %q: %w", k, err)
		}
		if strconv.FormatUint(target, 10) != k {
			return fmt.Errorf("fee estimates: confirmation target %q is not canonical", k)
		}
		if rate < 0 {
			return fmt.Errorf("fee estimates: target %d: %w: %v", target, ErrInvalidFeeRate, rate)
		}
		out[uint16(target)] = rate
	}
	*f = out
	return nil
}

// Targets returns the confirmation targets in ascending order.
func (f FeeEstimates) Targets() []uint16 {
	targets := make([]uint16, 0, len(f))
	for t := range f {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// ForTarget returns the rate of the largest target not above blocks, which
// is the cheapest estimate expected to confirm within blocks. ok is false
// when every target is above blocks.
func (f FeeEstimates) ForTarget(blocks uint16) (rate float64, ok bool) {
	best := -1
	for _, t := range f.Targets() {
		if t > blocks {
			break
		}
		best = int(t)
	}
	if best < 0 {
		return 0, false
	}
	return f[uint16(best)], true
}

// FeeHistogramBin is one entry of the mempool fee histogram: VSize vbytes
// pay at least FeeRate sat/vB.
type FeeHistogramBin struct {
	FeeRate float64
	VSize   uint64
}

// UnmarshalJSON implements json.Unmarshaler for the [rate, vsize] pair.
func (b *FeeHistogramBin) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("fee histogram: expected [rate, vsize], got %d elements", len(pair))
	}
	rate, err := pair[0].Float64()
	if err != nil {
		return fmt.Errorf("fee histogram rate: %w", err)
	}
	vsize, err := strconv.ParseUint(pair[1].String(), 10, 64)
	if err != nil {
		return fmt.Errorf("fee histogram vsize: %w", err)
	}
	*b = FeeHistogramBin{FeeRate: rate, VSize: vsize}
	return nil
}

// MempoolInfo is the backlog summary of the server's mempool.
type MempoolInfo struct {
	Count        uint64
	VSize        uint64
	TotalFee     btcutil.Amount
	FeeHistogram []FeeHistogramBin
}

type mempoolInfoJSON struct {
	Count        *uint64            `json:"count"`
	VSize        *uint64            `json:"vsize"`
	TotalFee     *uint64            `json:"total_fee"`
	FeeHistogram *[]FeeHistogramBin `json:"fee_histogram"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MempoolInfo) UnmarshalJSON(data []byte) error {
	var raw mempoolInfoJSON
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	var r required
	r.need("count", raw.Count != nil)
	r.need("vsize", raw.VSize != nil)
	r.need("total_fee", raw.TotalFee != nil)
	r.need("fee_histogram", raw.FeeHistogram != nil)
	if err := r.err("mempool"); err != nil {
		return err
	}
	fee, err := satoshis("total_fee", *raw.TotalFee)
	if err != nil {
		return err
	}
	*m = MempoolInfo{Count: *raw.Count, VSize: *raw.VSize, TotalFee: fee, FeeHistogram: *raw.FeeHistogram}
	return nil
}
