package test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-land-rental/integration"
	"github.com/rony4d/go-land-rental/inter"
	"github.com/rony4d/go-land-rental/rental"
)

// These tests drive the assembled service components the way the launcher
// wires them: engine built from a preset over in-memory ledgers, exercised
// through a full rent / expire / collect / re-rent cycle.

var (
	operator = common.HexToAddress("0x00ea000000000000000000000000000000000099")
	renter   = common.HexToAddress("0xaaaa000000000000000000000000000000000001")
)

func TestPresets_resolveByName(t *testing.T) {
	require := require.New(t)

	for _, name := range []string{"land", "nodekey", "fake"} {
		p, err := integration.GetPresetByName(name)
		require.NoError(err)
		require.Equal(name, p.Name)
		require.NoError(p.Rules.Validate())
	}

	_, err := integration.GetPresetByName("bogus")
	require.Error(err)

	// The two production variants must not share curve constants.
	land, _ := integration.GetPresetByName("land")
	nodekey, _ := integration.GetPresetByName("nodekey")
	require.NotEqual(land.Rules.Curve.Divisor, nodekey.Rules.Curve.Divisor)
}

// TestFullRentalCycle walks a token through every state: clean, active,
// extended, expired, collected, and active again, asserting the aggregate
// and the external ledgers at each stage.
func TestFullRentalCycle(t *testing.T) {
	require := require.New(t)

	now := inter.Timestamp(1000000)
	engine, tokens, points, err := integration.BuildEngine(
		integration.FakePreset(), operator,
		rental.WithClock(func() inter.Timestamp { return now }),
	)
	require.NoError(err)
	defer engine.Close()

	points.Deposit(renter, big.NewInt(1000000))

	// Clean -> Active.
	ev, err := engine.Rent(renter, []inter.TokenID{5}, []inter.Duration{1000}, nil, nil)
	require.NoError(err)
	require.Equal(uint64(1000), engine.Aggregate())
	owner, err := tokens.OwnerOf(5)
	require.NoError(err)
	require.Equal(renter, owner)

	// Quote before extending, then extend: charge must match the quote.
	now = now.Add(600)
	quote, err := engine.EstimateRentalFee(renter, []inter.TokenID{5}, []inter.Duration{1000}, nil)
	require.NoError(err)
	before := points.BalanceOf(renter)
	ev, err = engine.Rent(renter, []inter.TokenID{5}, []inter.Duration{1000}, nil, nil)
	require.NoError(err)
	require.Equal(quote.String(), ev.TotalFee.String())
	require.Equal(quote.String(), new(big.Int).Sub(before, points.BalanceOf(renter)).String())
	require.Equal(uint64(1600), engine.Aggregate())

	// Active -> Expired -> collected.
	now = now.Add(2000)
	elapsed, err := engine.CalculateElapsedTimeForExpiredTokens([]inter.TokenID{5})
	require.NoError(err)
	require.Equal(inter.Duration(1600), elapsed)

	reclaimed, err := engine.CollectExpiredTokens([]inter.TokenID{5})
	require.NoError(err)
	require.Equal(elapsed, reclaimed)
	require.Equal(uint64(0), engine.Aggregate())
	require.False(tokens.Exists(5))

	// Collected -> Active again, as a fresh rental.
	ev, err = engine.Rent(renter, []inter.TokenID{5}, []inter.Duration{300}, nil, nil)
	require.NoError(err)
	require.Equal(now, ev.BeginDates[0])
	require.Equal(uint64(300), engine.Aggregate())
}

// TestOperatorReconfiguresRunningService verifies the operator gate over
// an assembled engine and that a foreign caller is rejected.
func TestOperatorReconfiguresRunningService(t *testing.T) {
	require := require.New(t)

	engine, _, points, err := integration.BuildEngine(integration.FakePreset(), operator)
	require.NoError(err)
	defer engine.Close()
	points.Deposit(renter, big.NewInt(1000000))

	require.Equal(rental.ErrNotOperator, engine.SetMaxRentalCountPerCall(renter, 3))
	require.NoError(engine.SetMaxRentalCountPerCall(operator, 3))
	require.Equal(3, engine.Rules().MaxRentalCountPerCall)
}
