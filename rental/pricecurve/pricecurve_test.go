package pricecurve

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog2_handComputed(t *testing.T) {
	require := require.New(t)

	// log2(0) is defined as 0 so a truncated-to-zero aggregate never traps.
	require.Equal(uint64(0), Log2(0))
	require.Equal(uint64(0), Log2(1))
	require.Equal(uint64(1), Log2(2))
	require.Equal(uint64(1), Log2(3))
	require.Equal(uint64(2), Log2(4))
	require.Equal(uint64(9), Log2(1023))
	require.Equal(uint64(10), Log2(1024))
	require.Equal(uint64(10), Log2(1025))
	require.Equal(uint64(63), Log2(math.MaxUint64))
}

func TestPrice_handComputed(t *testing.T) {
	c := Curve{
		FloorPrice:  big.NewInt(100),
		Divisor:     3600,
		ScaleFactor: big.NewInt(50),
	}

	for _, tc := range []struct {
		name      string
		aggregate uint64
		want      int64
	}{
		// 0/3600 = 0, log2(0) = 0, 0*50 = 0 < floor -> floor
		{"empty pool", 0, 100},
		// 3599/3600 truncates to 0 -> floor
		{"sub-divisor truncates to zero", 3599, 100},
		// 3600/3600 = 1, log2(1) = 0 -> floor
		{"exactly one unit", 3600, 100},
		// 7200/3600 = 2, log2 = 1, 1*50 = 50 < floor -> floor
		{"curve below floor", 7200, 100},
		// 14400/3600 = 4, log2 = 2, 100 == floor
		{"curve meets floor", 14400, 100},
		// 28800/3600 = 8, log2 = 3, 150 > floor
		{"curve above floor", 28800, 150},
		// 3686400/3600 = 1024, log2 = 10, 500
		{"large pool", 3686400, 500},
		// truncating division: 3686399/3600 = 1023, log2 = 9, 450
		{"one second below power boundary", 3686399, 450},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, c.Price(tc.aggregate).Int64())
		})
	}
}

// TestPrice_monotonic walks the curve across power-of-two boundaries and
// asserts it never decreases.
func TestPrice_monotonic(t *testing.T) {
	require := require.New(t)

	c := Curve{
		FloorPrice:  big.NewInt(7),
		Divisor:     10,
		ScaleFactor: big.NewInt(3),
	}

	prev := c.Price(0)
	for _, a := range []uint64{
		0, 1, 9, 10, 11, 19, 20, 39, 40, 79, 80, 159, 160,
		1 << 20, 1<<20 + 1, 1 << 32, 1 << 40, math.MaxUint64 / 2, math.MaxUint64,
	} {
		cur := c.Price(a)
		require.True(cur.Cmp(prev) >= 0, "price decreased at aggregate=%d", a)
		prev = cur
	}
}

func TestPrice_isPure(t *testing.T) {
	require := require.New(t)

	c := Curve{
		FloorPrice:  big.NewInt(1),
		Divisor:     1,
		ScaleFactor: big.NewInt(2),
	}

	a := c.Price(1 << 16)
	// Mutating the returned value must not corrupt the curve constants.
	a.SetInt64(-1)
	require.Equal(int64(32), c.Price(1<<16).Int64())
	require.Equal(int64(1), c.Price(0).Int64())
}

func TestCurve_Copy(t *testing.T) {
	require := require.New(t)

	c := Curve{FloorPrice: big.NewInt(5), Divisor: 2, ScaleFactor: big.NewInt(9)}
	cp := c.Copy()
	cp.FloorPrice.SetInt64(999)
	cp.ScaleFactor.SetInt64(999)

	require.Equal(int64(5), c.FloorPrice.Int64())
	require.Equal(int64(9), c.ScaleFactor.Int64())
}
