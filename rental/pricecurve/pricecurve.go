// Package pricecurve implements the dynamic unit-price curve of the rental
// engine: a logarithmic function of the aggregate occupancy time across all
// rented tokens. The curve is the only non-linear math in the engine and is
// kept isolated here so its integer semantics (truncating division, floor
// log2) can be tested exhaustively against hand-computed values.
package pricecurve

import (
	"math/big"
	"math/bits"
)

// Curve holds the constants of one price-curve variant. The land and node
// key deployments use distinct constants; both share the same shape:
//
//	price(aggregate) = max(FloorPrice, log2(aggregate/Divisor) * ScaleFactor)
//
// where the division truncates toward zero and log2 is the integer floor
// logarithm, with log2(0) defined as 0.
type Curve struct {
	// FloorPrice is the minimum unit price, returned whenever the curve
	// term falls below it (in particular for an empty or near-empty pool).
	FloorPrice *big.Int

	// Divisor rescales the aggregate occupancy before the logarithm. Must
	// be non-zero.
	Divisor uint64

	// ScaleFactor multiplies the integer log2 into price units.
	ScaleFactor *big.Int
}

// Copy returns a deep copy of the curve constants.
func (c Curve) Copy() Curve {
	cp := c
	cp.FloorPrice = new(big.Int).Set(c.FloorPrice)
	cp.ScaleFactor = new(big.Int).Set(c.ScaleFactor)
	return cp
}

// Log2 returns the integer base-2 logarithm (floor) of v, with Log2(0) = 0.
// Computed as bit length minus one, so it is exact over the full uint64
// range.
func Log2(v uint64) uint64 {
	if v == 0 {
		return 0
	}
	return uint64(bits.Len64(v) - 1)
}

// Price maps the aggregate occupancy duration (in seconds, summed over all
// active intervals) to the current unit price. Pure and side-effect free;
// non-decreasing in its argument.
func (c Curve) Price(aggregate uint64) *big.Int {
	scaled := aggregate / c.Divisor
	p := new(big.Int).SetUint64(Log2(scaled))
	p.Mul(p, c.ScaleFactor)
	if p.Cmp(c.FloorPrice) < 0 {
		return new(big.Int).Set(c.FloorPrice)
	}
	return p
}
