package rental

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-land-rental/inter"
	"github.com/rony4d/go-land-rental/ledger"
)

// Engine is the aggregate root of the rental system. It owns the interval
// ledger (token id -> current rental interval) and the aggregate occupancy
// counter, and exposes whole-operation methods only, so the invariant
//
//	totalOngoingRentalTime == sum of (EndDate - BeginDate)
//	                          over all intervals with EndDate != 0
//
// is enforced at the operation boundary and holds at every quiescent point.
//
// Calls are serialized by an internal mutex; each either commits fully or
// leaves no trace. Mutations are staged in a per-call session and applied
// only after every precondition, including the late fee ceiling guard, has
// passed.
type Engine struct {
	mu sync.Mutex

	rules    Rules
	operator common.Address

	tokens ledger.TokenLedger
	points ledger.PointsLedger

	rentals                map[inter.TokenID]inter.RentalInterval
	totalOngoingRentalTime uint64

	clock func() inter.Timestamp
	log   *logrus.Entry

	rentalFeed    event.Feed
	collectedFeed event.Feed
	rulesFeed     event.Feed
	scope         event.SubscriptionScope
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests and
// simulations; the default reads the wall clock.
func WithClock(clock func() inter.Timestamp) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger routes the engine's structured logging through the given
// logger instead of the logrus standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) {
		e.log = l.WithField("module", "rental")
	}
}

// New builds an engine over the given collaborator ledgers. The operator
// address is the only identity allowed to mutate configuration.
func New(rules Rules, operator common.Address, tokens ledger.TokenLedger, points ledger.PointsLedger, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		rules:    rules.Copy(),
		operator: operator,
		tokens:   tokens,
		points:   points,
		rentals:  make(map[inter.TokenID]inter.RentalInterval),
		clock: func() inter.Timestamp {
			return inter.FromTime(time.Now())
		},
		log: logrus.WithField("module", "rental"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log.WithField("rules", e.rules.Name).Info("rental engine initialized")
	return e, nil
}

// Rules returns a deep copy of the current configuration.
func (e *Engine) Rules() Rules {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rules.Copy()
}

// Operator returns the configuration operator address.
func (e *Engine) Operator() common.Address {
	return e.operator
}

// Aggregate returns the current aggregate occupancy counter, in seconds.
func (e *Engine) Aggregate() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalOngoingRentalTime
}

// Interval returns the token's current interval record and whether one
// exists. The returned fee is a copy.
func (e *Engine) Interval(tokenID inter.TokenID) (inter.RentalInterval, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.rentals[tokenID]
	if !ok {
		return inter.EmptyInterval(), false
	}
	r.Fee = new(big.Int).Set(r.FeeOrZero())
	return r, true
}

// Rent walks the requested tokens through the rental state machine inside
// one atomic call:
//
//  1. lenient collection sweep over expiredTokenIDsToCollect
//  2. unit price derived from the post-collection aggregate, quoted once
//     for the whole call
//  3. per-token transitions in batch order, each observing the effects of
//     the previous ones (duplicates compose sequentially)
//  4. fee ceiling guard: if maxFee is non-nil and non-zero and the total
//     fee exceeds it, nothing is committed
//  5. aggregate commit, fee settlement through the points ledger, event
//     emission
//
// Fresh rentals pay the quoted unit price plus the linear maintenance fee
// on their duration; extensions pay the maintenance fee on their extension
// delta only.
func (e *Engine) Rent(renter common.Address, tokenIDs []inter.TokenID, durations []inter.Duration, expiredTokenIDsToCollect []inter.TokenID, maxFee *big.Int) (*RentalCompletedEvent, error) {
	rentEv, collectedEv, err := e.rent(renter, tokenIDs, durations, expiredTokenIDsToCollect, maxFee)
	if err != nil {
		return nil, err
	}
	// Feeds are notified outside the engine lock so a subscriber may call
	// back into the engine.
	if collectedEv != nil {
		e.collectedFeed.Send(*collectedEv)
	}
	if len(rentEv.TokenIDs) > 0 {
		e.rentalFeed.Send(*rentEv)
	}
	return rentEv, nil
}

func (e *Engine) rent(renter common.Address, tokenIDs []inter.TokenID, durations []inter.Duration, expiredTokenIDsToCollect []inter.TokenID, maxFee *big.Int) (*RentalCompletedEvent, *TokensCollectedEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(tokenIDs) != len(durations) {
		return nil, nil, ErrInconsistentArrayLengths
	}
	if len(tokenIDs) > e.rules.MaxRentalCountPerCall {
		return nil, nil, &BatchLimitError{Count: len(tokenIDs), Limit: e.rules.MaxRentalCountPerCall}
	}

	s := e.newSession()
	if err := s.collect(expiredTokenIDsToCollect, false); err != nil {
		return nil, nil, err
	}

	// Price reflects the steady-state occupancy immediately preceding the
	// new commitments: after the collection sweep, before any addition.
	preAggregate := e.preAggregate(s.elapsed)
	unitPrice := e.rules.Curve.Price(preAggregate)

	for i := range tokenIDs {
		if err := s.processRental(tokenIDs[i], durations[i], renter, unitPrice); err != nil {
			return nil, nil, err
		}
	}

	if maxFee != nil && maxFee.Sign() != 0 && s.totalFee.Cmp(maxFee) > 0 {
		return nil, nil, &FeeExceededError{
			Fee:    new(big.Int).Set(s.totalFee),
			MaxFee: new(big.Int).Set(maxFee),
		}
	}

	if err := e.commit(s, renter, preAggregate); err != nil {
		return nil, nil, err
	}

	e.log.WithFields(logrus.Fields{
		"renter":    renter.Hex(),
		"tokens":    len(tokenIDs),
		"collected": len(s.collected),
		"fee":       s.totalFee.String(),
		"unitPrice": unitPrice.String(),
		"aggregate": e.totalOngoingRentalTime,
	}).Info("rental completed")

	return s.rentalEvent(renter), s.collectedEvent(), nil
}

// EstimateRentalFee simulates Rent over the current state and returns the
// exact total fee a Rent call with the same arguments would charge now. No
// state is mutated and no external calls are performed.
func (e *Engine) EstimateRentalFee(renter common.Address, tokenIDs []inter.TokenID, durations []inter.Duration, expiredTokenIDsToCollect []inter.TokenID) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(tokenIDs) != len(durations) {
		return nil, ErrInconsistentArrayLengths
	}
	if len(tokenIDs) > e.rules.MaxRentalCountPerCall {
		return nil, &BatchLimitError{Count: len(tokenIDs), Limit: e.rules.MaxRentalCountPerCall}
	}

	s := e.newSession()
	if err := s.collect(expiredTokenIDsToCollect, false); err != nil {
		return nil, err
	}
	unitPrice := e.rules.Curve.Price(e.preAggregate(s.elapsed))

	for i := range tokenIDs {
		if err := s.processRental(tokenIDs[i], durations[i], renter, unitPrice); err != nil {
			return nil, err
		}
	}
	return new(big.Int).Set(s.totalFee), nil
}

// preAggregate folds the collected elapsed time out of the aggregate
// counter. An underflow cannot occur if collection bookkeeping is correct,
// so it is treated as a fatal invariant violation rather than clamped.
func (e *Engine) preAggregate(collectedElapsed uint64) uint64 {
	if collectedElapsed > e.totalOngoingRentalTime {
		panic("rental: aggregate occupancy underflow")
	}
	return e.totalOngoingRentalTime - collectedElapsed
}

// commit applies a session: settles payment, performs the staged ledger
// side effects and only then mutates the interval map and the aggregate.
// The points consume is the first external call, so its failure aborts the
// operation with no effects at all. Burn/mint feasibility was established
// while staging, so later failures can only be caused by the token ledger
// being mutated concurrently outside the engine.
func (e *Engine) commit(s *session, payer common.Address, preAggregate uint64) error {
	if s.totalFee.Sign() > 0 {
		if err := e.points.Consume(payer, s.totalFee, e.rules.PointsReasonCode); err != nil {
			return err
		}
	}
	for _, id := range s.collected {
		if err := e.tokens.BurnFrom(s.burned[id], id); err != nil {
			e.log.WithField("token", id).WithError(err).Error("token ledger rejected staged burn")
			return err
		}
	}
	for _, id := range s.mintOrder {
		if err := e.tokens.Mint(s.minted[id], id); err != nil {
			e.log.WithField("token", id).WithError(err).Error("token ledger rejected staged mint")
			return err
		}
	}

	for id, r := range s.intervals {
		if r.Exists() {
			e.rentals[id] = r
		} else {
			delete(e.rentals, id)
		}
	}
	e.totalOngoingRentalTime = preAggregate + s.added

	aggregateGauge.Update(int64(e.totalOngoingRentalTime))
	activeIntervalsGauge.Update(int64(len(e.rentals)))
	rentalsMeter.Mark(s.fresh)
	extensionsMeter.Mark(s.extended)
	collectionsMeter.Mark(int64(len(s.collected)))
	if s.totalFee.IsInt64() {
		feesMeter.Mark(s.totalFee.Int64())
	}
	return nil
}
