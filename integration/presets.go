// Package integration provides configuration presets and assembly helpers
// for running the rental engine as a service. Presets bundle a rules
// variant with the runtime defaults a local deployment needs, so operators
// pick a named profile instead of tweaking every scalar.
//
// Usage:
//
//	preset, err := integration.GetPresetByName("land")
//	engine, tokens, points, err := integration.BuildEngine(preset, operator)
package integration

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-land-rental/ledger"
	"github.com/rony4d/go-land-rental/rental"
)

// Preset names one deployable engine profile.
type Preset struct {
	// Name is the profile identifier used by the --preset flag.
	Name string

	// Rules is the engine configuration for this profile.
	Rules rental.Rules

	// PointsFloat is deposited to the operator account at startup on
	// local runs, so the service is usable without a separate funding
	// step. Zero for production profiles.
	PointsFloat *big.Int
}

// LandPreset returns the land-variant profile: month-scale durations,
// minimum duration enforced, no dev float.
func LandPreset() Preset {
	return Preset{
		Name:        "land",
		Rules:       rental.LandRules(),
		PointsFloat: new(big.Int),
	}
}

// NodeKeyPreset returns the node-key-variant profile: week-scale pricing
// window, faster turnover, no dev float.
func NodeKeyPreset() Preset {
	return Preset{
		Name:        "nodekey",
		Rules:       rental.NodeKeyRules(),
		PointsFloat: new(big.Int),
	}
}

// FakePreset returns the accelerated development profile: second-scale
// durations and a generous points float so rentals work out of the box.
func FakePreset() Preset {
	return Preset{
		Name:        "fake",
		Rules:       rental.FakeRules(),
		PointsFloat: big.NewInt(100000000),
	}
}

// GetPresetByName resolves a --preset flag value.
func GetPresetByName(name string) (Preset, error) {
	switch name {
	case "land":
		return LandPreset(), nil
	case "nodekey":
		return NodeKeyPreset(), nil
	case "fake":
		return FakePreset(), nil
	default:
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
}

// BuildEngine assembles an engine over fresh in-memory ledgers for the
// given preset. The preset's points float, if any, is deposited to the
// operator account.
func BuildEngine(p Preset, operatorAddr common.Address, opts ...rental.Option) (*rental.Engine, *ledger.MemoryTokenLedger, *ledger.MemoryPointsLedger, error) {
	tokens := ledger.NewMemoryTokenLedger()
	points := ledger.NewMemoryPointsLedger(p.Rules.PointsReasonCode)
	if p.PointsFloat != nil && p.PointsFloat.Sign() > 0 {
		points.Deposit(operatorAddr, p.PointsFloat)
	}
	engine, err := rental.New(p.Rules, operatorAddr, tokens, points, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return engine, tokens, points, nil
}
