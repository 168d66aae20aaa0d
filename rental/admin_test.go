package rental

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-land-rental/inter"
	"github.com/rony4d/go-land-rental/rental/pricecurve"
)

func TestAdmin_operatorGate(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, testRules())

	require.Equal(ErrNotOperator, env.engine.SetMaintenanceFee(renterA, 2, 1))
	require.NoError(env.engine.SetMaintenanceFee(operator, 2, 1))
	require.Equal(uint64(2), env.engine.Rules().MaintenanceFeeRate)
}

func TestAdmin_settersTakeEffectOnNextCall(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, testRules())
	env.fund(renterA, 100000)

	// Double the per-second rate: the next rental pays it.
	require.NoError(env.engine.SetMaintenanceFee(operator, 2, 1))
	ev, err := env.engine.Rent(renterA, []inter.TokenID{1}, []inter.Duration{1000}, nil, nil)
	require.NoError(err)
	require.Equal(int64(100+2000), ev.TotalFee.Int64())

	// Tighten the supply bound below an id that was rentable before.
	require.NoError(env.engine.SetMaxTokenSupply(operator, 10))
	_, err = env.engine.Rent(renterA, []inter.TokenID{11}, []inter.Duration{100}, nil, nil)
	require.Equal(&UnsupportedTokenError{TokenID: 11}, err)

	// Replace the curve: floor jumps to 5000.
	require.NoError(env.engine.SetCurve(operator, pricecurve.Curve{
		FloorPrice:  big.NewInt(5000),
		Divisor:     1000,
		ScaleFactor: big.NewInt(50),
	}))
	ev, err = env.engine.Rent(renterA, []inter.TokenID{2}, []inter.Duration{100}, nil, nil)
	require.NoError(err)
	require.Equal(int64(5000+200), ev.TotalFee.Int64())
}

func TestAdmin_validationAndEvents(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, testRules())

	ch := make(chan RulesChangedEvent, 8)
	sub := env.engine.SubscribeRulesChanges(ch)
	defer sub.Unsubscribe()

	// Invalid values are rejected and emit nothing.
	require.Error(env.engine.SetMaintenanceFee(operator, 1, 0))
	require.Error(env.engine.SetMaxRentalCountPerCall(operator, 0))
	require.Error(env.engine.SetRentalDurationBounds(operator, 10, 0, false))
	require.Error(env.engine.SetCurve(operator, pricecurve.Curve{}))

	require.NoError(env.engine.SetRentalDurationBounds(operator, 50, 500, true))
	ev := <-ch
	require.Equal("rentalDurationBounds", ev.Param)
	require.Equal(inter.Duration(50), ev.Rules.MinRentalDuration)
	require.Equal(inter.Duration(500), ev.Rules.MaxRentalDuration)
	require.True(ev.Rules.EnforceMinDuration)

	require.NoError(env.engine.SetPointsReasonCode(operator, 42))
	ev = <-ch
	require.Equal("pointsReasonCode", ev.Param)
	require.Equal(uint32(42), ev.Rules.PointsReasonCode)

	require.Len(ch, 0, "rejected setters must not emit")
}
