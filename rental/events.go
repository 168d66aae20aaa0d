package rental

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/rony4d/go-land-rental/inter"
)

// RentalCompletedEvent is published once per successful rent call. The
// slices are index-aligned with the call's token id batch; each fee is the
// token's cumulative interval fee after the call.
type RentalCompletedEvent struct {
	Renter     common.Address
	TokenIDs   []inter.TokenID
	BeginDates []inter.Timestamp
	EndDates   []inter.Timestamp
	Fees       []*big.Int

	// TotalFee is the amount actually consumed from the renter's points
	// balance by this call. It can differ from the sum of Fees, which are
	// cumulative per-interval amounts.
	TotalFee *big.Int
}

// TokensCollectedEvent lists the ids actually reclaimed by a collection,
// never the caller's input list.
type TokensCollectedEvent struct {
	TokenIDs []inter.TokenID
}

// RulesChangedEvent is published by every operator setter. Param names the
// mutated scalar; Rules is the full post-change configuration.
type RulesChangedEvent struct {
	Param string
	Rules Rules
}

// SubscribeRentals starts delivering rental-completed events to the given
// channel until the subscription is unsubscribed.
func (e *Engine) SubscribeRentals(ch chan<- RentalCompletedEvent) event.Subscription {
	return e.scope.Track(e.rentalFeed.Subscribe(ch))
}

// SubscribeCollections starts delivering tokens-collected events to the
// given channel.
func (e *Engine) SubscribeCollections(ch chan<- TokensCollectedEvent) event.Subscription {
	return e.scope.Track(e.collectedFeed.Subscribe(ch))
}

// SubscribeRulesChanges starts delivering parameter-change events to the
// given channel.
func (e *Engine) SubscribeRulesChanges(ch chan<- RulesChangedEvent) event.Subscription {
	return e.scope.Track(e.rulesFeed.Subscribe(ch))
}

// Close unsubscribes all event subscriptions. The engine itself remains
// usable; only event delivery stops.
func (e *Engine) Close() {
	e.scope.Close()
}
