// Package inter defines the core value types shared by every layer of the
// land rental engine: timestamps, token identifiers, rental intervals and
// the derived interval states.
//
// Key concepts:
//   - RentalInterval: a token's current rental window [BeginDate, EndDate)
//     plus the fee accrued against that window
//   - State: Clean/Active/Expired, always derived from (EndDate, now),
//     never stored as a tag
//
// The interval is the unit of bookkeeping: the engine owns a map of
// intervals keyed by token id, plus a single aggregate counter that must at
// all times equal the sum of (EndDate - BeginDate) over every interval with
// EndDate != 0.
package inter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
)

// TokenID identifies a rentable land or node key token. Id 0 is reserved
// and never rentable.
type TokenID uint64

// State is the lifecycle position of a token's interval, derived from its
// end date and the current time.
type State int

const (
	// Clean means the token has no active interval (EndDate == 0): it was
	// never rented, or its last interval has been collected.
	Clean State = iota

	// Active means the interval is ongoing (EndDate > now). Only the
	// current owner may extend it.
	Active

	// Expired means the interval has lapsed (0 < EndDate <= now) but the
	// token has not been collected yet. It must be explicitly collected
	// before it can be rented again.
	Expired
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Active:
		return "active"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// RentalInterval is a token's current rental record. EndDate == 0 marks the
// clean (no interval) state. While EndDate != 0, BeginDate <= EndDate holds
// and the token's external owner is considered the renter for
// [BeginDate, EndDate). Fee is the cumulative charge billed against the
// current occupancy span; it resets to zero on collection.
type RentalInterval struct {
	BeginDate Timestamp
	EndDate   Timestamp
	Fee       *big.Int
}

// EmptyInterval returns the cleared (clean-state) interval record.
func EmptyInterval() RentalInterval {
	return RentalInterval{Fee: new(big.Int)}
}

// Exists reports whether the record holds an interval at all, regardless of
// whether it has expired.
func (r RentalInterval) Exists() bool {
	return r.EndDate != 0
}

// Elapsed returns the interval's full occupancy span. Zero for clean
// records.
func (r RentalInterval) Elapsed() Duration {
	if !r.Exists() {
		return 0
	}
	return r.EndDate.Sub(r.BeginDate)
}

// FeeOrZero returns the accrued fee, tolerating a nil big.Int in
// zero-valued records.
func (r RentalInterval) FeeOrZero() *big.Int {
	if r.Fee == nil {
		return new(big.Int)
	}
	return r.Fee
}

// Classify derives the interval's state at the given time. State is never
// cached: every inspection point re-derives it from (EndDate, now) so a
// record can never carry a stale tag across the expiry boundary.
func Classify(r RentalInterval, now Timestamp) State {
	switch {
	case r.EndDate == 0:
		return Clean
	case r.EndDate > now:
		return Active
	default:
		return Expired
	}
}

// rentalIntervalRLP is the wire shape of RentalInterval. A nil fee encodes
// as zero so round-trips are stable.
type rentalIntervalRLP struct {
	BeginDate uint64
	EndDate   uint64
	Fee       *big.Int
}

// MarshalBinary encodes the interval with RLP for indexer-facing payloads.
func (r RentalInterval) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(&rentalIntervalRLP{
		BeginDate: uint64(r.BeginDate),
		EndDate:   uint64(r.EndDate),
		Fee:       r.FeeOrZero(),
	})
}

// UnmarshalBinary decodes an RLP-encoded interval.
func (r *RentalInterval) UnmarshalBinary(raw []byte) error {
	var dec rentalIntervalRLP
	if err := rlp.DecodeBytes(raw, &dec); err != nil {
		return err
	}
	r.BeginDate = Timestamp(dec.BeginDate)
	r.EndDate = Timestamp(dec.EndDate)
	r.Fee = dec.Fee
	return nil
}
