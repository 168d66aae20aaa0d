package rental

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-land-rental/inter"
)

// TestPresets_areValidAndDistinct guards the deployed variants: both
// presets validate, and the constants that distinguish land from node key
// actually differ.
func TestPresets_areValidAndDistinct(t *testing.T) {
	require := require.New(t)

	land := LandRules()
	nodekey := NodeKeyRules()
	fake := FakeRules()

	require.NoError(land.Validate())
	require.NoError(nodekey.Validate())
	require.NoError(fake.Validate())

	require.Equal("land", land.Name)
	require.Equal("nodekey", nodekey.Name)

	require.NotEqual(land.Curve.Divisor, nodekey.Curve.Divisor)
	require.NotEqual(land.Curve.FloorPrice.String(), nodekey.Curve.FloorPrice.String())
	require.NotEqual(land.PointsReasonCode, nodekey.PointsReasonCode)

	// Land enforces a minimum duration, node keys do not.
	require.True(land.EnforceMinDuration)
	require.False(nodekey.EnforceMinDuration)
}

func TestMaintenanceFee_truncates(t *testing.T) {
	require := require.New(t)

	r := Rules{MaintenanceFeeRate: 100, MaintenanceFeeDenominator: 86400}

	// One day at 100/day.
	require.Equal(int64(100), r.MaintenanceFee(86400).Int64())
	// 863 seconds * 100 / 86400 = 0.99... -> truncates to 0.
	require.Equal(int64(0), r.MaintenanceFee(863).Int64())
	// 864 seconds exactly reaches 1.
	require.Equal(int64(1), r.MaintenanceFee(864).Int64())
}

func TestRules_Validate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Rules)
	}{
		{"zero denominator", func(r *Rules) { r.MaintenanceFeeDenominator = 0 }},
		{"zero max duration", func(r *Rules) { r.MaxRentalDuration = 0 }},
		{"min above max", func(r *Rules) {
			r.EnforceMinDuration = true
			r.MinRentalDuration = r.MaxRentalDuration + 1
		}},
		{"zero supply", func(r *Rules) { r.MaxTokenSupply = 0 }},
		{"zero batch limit", func(r *Rules) { r.MaxRentalCountPerCall = 0 }},
		{"zero curve divisor", func(r *Rules) { r.Curve.Divisor = 0 }},
		{"nil curve constants", func(r *Rules) { r.Curve.FloorPrice = nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := LandRules()
			tc.mutate(&r)
			require.Error(t, r.Validate())
		})
	}
}

func TestRules_CopyIsDeep(t *testing.T) {
	require := require.New(t)

	r := LandRules()
	cp := r.Copy()
	cp.Curve.FloorPrice.SetInt64(1)
	cp.MinRentalDuration = inter.Duration(5)

	require.Equal(int64(1000), r.Curve.FloorPrice.Int64())
	require.Equal(inter.Duration(86400), r.MinRentalDuration)
}
