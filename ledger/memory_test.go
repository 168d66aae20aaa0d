package ledger

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-land-rental/inter"
)

var (
	alice = common.HexToAddress("0xa11ce00000000000000000000000000000000001")
	bob   = common.HexToAddress("0xb0b0000000000000000000000000000000000002")
)

func TestMemoryTokenLedger(t *testing.T) {
	require := require.New(t)
	l := NewMemoryTokenLedger()

	t.Run("mint", func(t *testing.T) {
		require.Equal(ErrZeroAddress, l.Mint(common.Address{}, 1))
		require.NoError(l.Mint(alice, 1))
		require.Equal(ErrTokenExists, l.Mint(bob, 1))
	})

	t.Run("ownerOf", func(t *testing.T) {
		owner, err := l.OwnerOf(1)
		require.NoError(err)
		require.Equal(alice, owner)

		_, err = l.OwnerOf(2)
		require.Equal(ErrTokenNotFound, err)
	})

	t.Run("burnFrom", func(t *testing.T) {
		require.Equal(ErrOwnerMismatch, l.BurnFrom(bob, 1))
		require.Equal(ErrTokenNotFound, l.BurnFrom(alice, 2))
		require.NoError(l.BurnFrom(alice, 1))
		require.False(l.Exists(inter.TokenID(1)))

		// Burned ids can be minted again.
		require.NoError(l.Mint(bob, 1))
	})
}

func TestMemoryPointsLedger(t *testing.T) {
	require := require.New(t)
	const rentReason = uint32(7)

	l := NewMemoryPointsLedger(rentReason)
	l.Deposit(alice, big.NewInt(100))

	require.Equal(ErrReasonNotAllowed, l.Consume(alice, big.NewInt(1), 99))
	require.Equal(ErrInsufficientPoints, l.Consume(alice, big.NewInt(101), rentReason))
	require.Equal(ErrInsufficientPoints, l.Consume(bob, big.NewInt(1), rentReason))

	require.NoError(l.Consume(alice, big.NewInt(40), rentReason))
	require.Equal(int64(60), l.BalanceOf(alice).Int64())

	// Failed consume must not move the balance.
	require.Error(l.Consume(alice, big.NewInt(61), rentReason))
	require.Equal(int64(60), l.BalanceOf(alice).Int64())
}
