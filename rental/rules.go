// Package rental implements the land / node key rental engine: per-token
// rental intervals, the aggregate occupancy counter driving dynamic
// pricing, expired-token collection and the transactional rent entry point.
//
// This package provides:
//   - Rules: the central configuration structure (fee rate, duration
//     bounds, supply bound, batch limit, price-curve constants)
//   - Engine: the aggregate root owning the interval ledger and the
//     occupancy counter, exposing whole-operation methods only
//   - Typed errors identifying the offending token id or fee values
//   - Event feeds for rental, collection and parameter-change events
//
// The Rules type serves the same role as a network's consensus parameters:
// presets exist for the two deployed variants (land and node key), plus an
// accelerated fake preset for development and tests.
package rental

import (
	"encoding/json"
	"errors"
	"math/big"

	"github.com/rony4d/go-land-rental/inter"
	"github.com/rony4d/go-land-rental/rental/pricecurve"
)

// Reason codes passed to the points ledger when settling fees.
const (
	// LandRentReason is the allow-listed consume reason for land rentals.
	LandRentReason uint32 = 0x4c414e44 // "LAND"

	// NodeKeyRentReason is the allow-listed consume reason for node key
	// rentals.
	NodeKeyRentReason uint32 = 0x4e4f4445 // "NODE"
)

// Rules describes the complete configuration of one rental engine instance.
// Changes made through the operator setters take effect on the next call;
// no field carries internal invariants beyond what Validate checks.
type Rules struct {
	// Name identifies the variant ("land", "nodekey", "fake") in logs and
	// config dumps.
	Name string

	// MaintenanceFeeRate and MaintenanceFeeDenominator define the linear
	// per-second fee: charge = duration * rate / denominator, truncating.
	MaintenanceFeeRate        uint64
	MaintenanceFeeDenominator uint64

	// MinRentalDuration is the smallest accepted fresh-rental duration.
	// Only enforced when EnforceMinDuration is set; extensions are bound
	// by a strictly positive delta instead.
	MinRentalDuration  inter.Duration
	EnforceMinDuration bool

	// MaxRentalDuration bounds fresh-rental durations and, for
	// extensions, the pure extension delta (newEnd - currentEnd).
	MaxRentalDuration inter.Duration

	// MaxTokenSupply is the highest rentable token id. Id 0 is never
	// rentable.
	MaxTokenSupply inter.TokenID

	// MaxRentalCountPerCall limits the batch size of a single rent call.
	MaxRentalCountPerCall int

	// PointsReasonCode is passed to the points ledger on every fee
	// settlement.
	PointsReasonCode uint32

	// Curve holds the dynamic unit-price constants.
	Curve pricecurve.Curve
}

// LandRules returns the configuration of the land variant. Land plots are
// long-lived: month-scale pricing window, minimum duration enforced.
func LandRules() Rules {
	return Rules{
		Name:                      "land",
		MaintenanceFeeRate:        100,
		MaintenanceFeeDenominator: 86400, // 100 points per token-day
		MinRentalDuration:         inter.Duration(86400),
		EnforceMinDuration:        true,
		MaxRentalDuration:         inter.Duration(90 * 86400),
		MaxTokenSupply:            100000,
		MaxRentalCountPerCall:     20,
		PointsReasonCode:          LandRentReason,
		Curve: pricecurve.Curve{
			FloorPrice:  big.NewInt(1000),
			Divisor:     2592000, // 30 token-days of occupancy per curve unit
			ScaleFactor: big.NewInt(500),
		},
	}
}

// NodeKeyRules returns the configuration of the node key variant. Keys turn
// over faster than land: week-scale pricing window, no minimum duration.
func NodeKeyRules() Rules {
	return Rules{
		Name:                      "nodekey",
		MaintenanceFeeRate:        50,
		MaintenanceFeeDenominator: 86400, // 50 points per token-day
		MinRentalDuration:         0,
		EnforceMinDuration:        false,
		MaxRentalDuration:         inter.Duration(30 * 86400),
		MaxTokenSupply:            25000,
		MaxRentalCountPerCall:     10,
		PointsReasonCode:          NodeKeyRentReason,
		Curve: pricecurve.Curve{
			FloorPrice:  big.NewInt(500),
			Divisor:     604800, // 7 token-days of occupancy per curve unit
			ScaleFactor: big.NewInt(250),
		},
	}
}

// FakeRules returns an accelerated configuration for development and tests:
// second-scale durations, a fee of one point per second and a tight curve
// so pricing effects show up quickly.
func FakeRules() Rules {
	return Rules{
		Name:                      "fake",
		MaintenanceFeeRate:        1,
		MaintenanceFeeDenominator: 1, // 1 point per token-second
		MinRentalDuration:         0,
		EnforceMinDuration:        false,
		MaxRentalDuration:         inter.Duration(1000000),
		MaxTokenSupply:            1000,
		MaxRentalCountPerCall:     10,
		PointsReasonCode:          LandRentReason,
		Curve: pricecurve.Curve{
			FloorPrice:  big.NewInt(10),
			Divisor:     100,
			ScaleFactor: big.NewInt(10),
		},
	}
}

// MaintenanceFee returns the linear fee component for a rental span:
// duration * rate / denominator, truncating toward zero. The multiply is
// carried out in big.Int so rate * duration cannot overflow.
func (r Rules) MaintenanceFee(d inter.Duration) *big.Int {
	fee := new(big.Int).SetUint64(uint64(d))
	fee.Mul(fee, new(big.Int).SetUint64(r.MaintenanceFeeRate))
	fee.Quo(fee, new(big.Int).SetUint64(r.MaintenanceFeeDenominator))
	return fee
}

// Validate checks the structural constraints no setter may violate.
func (r Rules) Validate() error {
	if r.MaintenanceFeeDenominator == 0 {
		return errors.New("maintenance fee denominator is zero")
	}
	if r.MaxRentalDuration == 0 {
		return errors.New("max rental duration is zero")
	}
	if r.EnforceMinDuration && r.MinRentalDuration > r.MaxRentalDuration {
		return errors.New("min rental duration exceeds max")
	}
	if r.MaxTokenSupply == 0 {
		return errors.New("max token supply is zero")
	}
	if r.MaxRentalCountPerCall <= 0 {
		return errors.New("max rental count per call is zero")
	}
	if r.Curve.Divisor == 0 {
		return errors.New("price curve divisor is zero")
	}
	if r.Curve.FloorPrice == nil || r.Curve.ScaleFactor == nil {
		return errors.New("price curve constants are nil")
	}
	return nil
}

// Copy creates a deep copy of Rules. Necessary because the curve constants
// are *big.Int and would be shared by a shallow copy.
func (r Rules) Copy() Rules {
	cp := r
	cp.Curve = r.Curve.Copy()
	return cp
}

// String returns a JSON representation of Rules for logging and config
// dumps.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
