package rental

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/rony4d/go-land-rental/inter"
)

// Every engine error is a precondition failure: the operation aborts with
// no partial effects. Shape and domain errors carry the offending token id
// so batch callers can pinpoint the rejected element.
var (
	// ErrInconsistentArrayLengths is returned when the token id and
	// duration slices of a rent call differ in length.
	ErrInconsistentArrayLengths = errors.New("inconsistent array lengths")

	// ErrNoTokenCollected is returned by the standalone collection entry
	// point for an empty input list.
	ErrNoTokenCollected = errors.New("no token collected")

	// ErrNotOperator is returned by configuration setters for callers
	// other than the engine operator.
	ErrNotOperator = errors.New("caller is not the operator")
)

// BatchLimitError reports a rent call exceeding the per-call batch limit.
type BatchLimitError struct {
	Count int
	Limit int
}

func (e *BatchLimitError) Error() string {
	return fmt.Sprintf("rental count per call limit exceeded: %d > %d", e.Count, e.Limit)
}

// UnsupportedTokenError reports token id 0 or an id beyond the configured
// supply bound.
type UnsupportedTokenError struct {
	TokenID inter.TokenID
}

func (e *UnsupportedTokenError) Error() string {
	return fmt.Sprintf("unsupported token id %d", e.TokenID)
}

// InvalidDurationError reports a duration outside the configured bounds,
// a zero duration, or an extension that does not move the end date forward.
type InvalidDurationError struct {
	TokenID  inter.TokenID
	Duration inter.Duration
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid rental duration %d for token %d", e.Duration, e.TokenID)
}

// AlreadyRentedError reports a token that cannot be rented by the caller:
// either actively rented by another account, or expired but not declared
// for collection in the same call.
type AlreadyRentedError struct {
	TokenID inter.TokenID
}

func (e *AlreadyRentedError) Error() string {
	return fmt.Sprintf("token %d already rented", e.TokenID)
}

// NotExpiredError reports a strict-collection or elapsed-time query against
// a token whose interval is still active.
type NotExpiredError struct {
	TokenID inter.TokenID
}

func (e *NotExpiredError) Error() string {
	return fmt.Sprintf("token %d not expired", e.TokenID)
}

// NotRentedError reports a strict-collection or elapsed-time query against
// a token with no interval at all.
type NotRentedError struct {
	TokenID inter.TokenID
}

func (e *NotRentedError) Error() string {
	return fmt.Sprintf("token %d not rented", e.TokenID)
}

// FeeExceededError reports a computed batch fee above the caller's declared
// ceiling. Carries both values so callers can re-quote.
type FeeExceededError struct {
	Fee    *big.Int
	MaxFee *big.Int
}

func (e *FeeExceededError) Error() string {
	return fmt.Sprintf("fee %v exceeds the declared maximum %v", e.Fee, e.MaxFee)
}
