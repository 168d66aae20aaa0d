package rental

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-land-rental/inter"
	"github.com/rony4d/go-land-rental/rental/pricecurve"
)

// Operator setters. Each is restricted to the engine operator, takes effect
// on the next call and publishes a RulesChangedEvent naming the mutated
// parameter.

func (e *Engine) setRules(caller common.Address, param string, mutate func(*Rules) error) error {
	e.mu.Lock()
	if caller != e.operator {
		e.mu.Unlock()
		return ErrNotOperator
	}
	next := e.rules.Copy()
	if err := mutate(&next); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := next.Validate(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.rules = next
	ev := RulesChangedEvent{Param: param, Rules: next.Copy()}
	e.log.WithField("param", param).Info("rules changed")
	e.mu.Unlock()

	e.rulesFeed.Send(ev)
	return nil
}

// SetMaintenanceFee updates the linear fee rate and its denominator.
func (e *Engine) SetMaintenanceFee(caller common.Address, rate, denominator uint64) error {
	return e.setRules(caller, "maintenanceFee", func(r *Rules) error {
		r.MaintenanceFeeRate = rate
		r.MaintenanceFeeDenominator = denominator
		return nil
	})
}

// SetRentalDurationBounds updates the min/max rental duration and whether
// the minimum is enforced on fresh rentals.
func (e *Engine) SetRentalDurationBounds(caller common.Address, min, max inter.Duration, enforceMin bool) error {
	return e.setRules(caller, "rentalDurationBounds", func(r *Rules) error {
		r.MinRentalDuration = min
		r.MaxRentalDuration = max
		r.EnforceMinDuration = enforceMin
		return nil
	})
}

// SetMaxTokenSupply updates the highest rentable token id.
func (e *Engine) SetMaxTokenSupply(caller common.Address, max inter.TokenID) error {
	return e.setRules(caller, "maxTokenSupply", func(r *Rules) error {
		r.MaxTokenSupply = max
		return nil
	})
}

// SetMaxRentalCountPerCall updates the per-call batch limit.
func (e *Engine) SetMaxRentalCountPerCall(caller common.Address, limit int) error {
	return e.setRules(caller, "maxRentalCountPerCall", func(r *Rules) error {
		r.MaxRentalCountPerCall = limit
		return nil
	})
}

// SetCurve replaces the dynamic price-curve constants.
func (e *Engine) SetCurve(caller common.Address, curve pricecurve.Curve) error {
	return e.setRules(caller, "priceCurve", func(r *Rules) error {
		if curve.FloorPrice == nil || curve.ScaleFactor == nil {
			return errors.New("price curve constants are nil")
		}
		if curve.FloorPrice.Sign() < 0 || curve.ScaleFactor.Sign() < 0 {
			return errors.New("price curve constants are negative")
		}
		r.Curve = curve.Copy()
		return nil
	})
}

// SetPointsReasonCode updates the reason code passed to the points ledger.
func (e *Engine) SetPointsReasonCode(caller common.Address, code uint32) error {
	return e.setRules(caller, "pointsReasonCode", func(r *Rules) error {
		r.PointsReasonCode = code
		return nil
	})
}
