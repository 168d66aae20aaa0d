// Package ledger defines the external collaborator capabilities the rental
// engine depends on: the token-ownership ledger (mint/burn/ownerOf) and the
// points/credit ledger (consume). The engine treats both as ground truth it
// queries and instructs but does not itself store.
//
// In-memory implementations are provided for the local service runtime and
// for tests; production deployments substitute real ledgers behind the same
// interfaces.
package ledger

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-land-rental/inter"
)

var (
	// ErrTokenExists is returned by Mint when the token id is already taken.
	ErrTokenExists = errors.New("token already exists")
	// ErrTokenNotFound is returned by OwnerOf and BurnFrom for unknown ids.
	ErrTokenNotFound = errors.New("token does not exist")
	// ErrZeroAddress is returned by Mint for the null identity.
	ErrZeroAddress = errors.New("mint to zero address")
	// ErrOwnerMismatch is returned by BurnFrom when the claimed owner does
	// not hold the token.
	ErrOwnerMismatch = errors.New("burn from non-owner")

	// ErrInsufficientPoints is returned by Consume when the account balance
	// does not cover the amount.
	ErrInsufficientPoints = errors.New("insufficient points balance")
	// ErrReasonNotAllowed is returned by Consume for reason codes outside
	// the allow-list.
	ErrReasonNotAllowed = errors.New("consume reason code not allowed")
)

// TokenLedger is the token-ownership capability consumed by the rental
// engine. Every method either succeeds fully or returns an error with no
// effect.
type TokenLedger interface {
	// Mint creates tokenID owned by to. Fails if the token exists or to is
	// the zero address.
	Mint(to common.Address, tokenID inter.TokenID) error

	// BurnFrom destroys tokenID. Fails if the token does not exist or
	// owner does not hold it.
	BurnFrom(owner common.Address, tokenID inter.TokenID) error

	// OwnerOf returns the current owner. Fails if the token does not
	// exist.
	OwnerOf(tokenID inter.TokenID) (common.Address, error)
}

// PointsLedger is the credit capability used to settle rental fees.
type PointsLedger interface {
	// Consume burns amount points from account under the given reason
	// code. Fails on insufficient balance or a disallowed reason code.
	Consume(account common.Address, amount *big.Int, reasonCode uint32) error
}
