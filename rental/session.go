package rental

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-land-rental/inter"
	"github.com/rony4d/go-land-rental/ledger"
)

// session stages every mutation of one engine call: an overlay over the
// interval map, pending ledger side effects and the running fee and
// aggregate deltas. Nothing touches engine state until commit, which is
// what makes the late fee ceiling guard and EstimateRentalFee free.
//
// Reads go through the overlay first, so batch elements observe the
// effects of earlier elements in the same call (a token collected in the
// preamble reads as clean, a duplicate id reads the already-updated
// interval).
type session struct {
	e   *Engine
	now inter.Timestamp

	intervals map[inter.TokenID]inter.RentalInterval
	minted    map[inter.TokenID]common.Address
	mintOrder []inter.TokenID
	burned    map[inter.TokenID]common.Address

	collected []inter.TokenID
	elapsed   uint64

	added    uint64
	totalFee *big.Int

	fresh    int64
	extended int64

	batchIDs       []inter.TokenID
	batchIntervals []inter.RentalInterval
}

func (e *Engine) newSession() *session {
	return &session{
		e:         e,
		now:       e.clock(),
		intervals: make(map[inter.TokenID]inter.RentalInterval),
		minted:    make(map[inter.TokenID]common.Address),
		burned:    make(map[inter.TokenID]common.Address),
		totalFee:  new(big.Int),
	}
}

// interval reads through the overlay into the committed map.
func (s *session) interval(id inter.TokenID) inter.RentalInterval {
	if r, ok := s.intervals[id]; ok {
		return r
	}
	if r, ok := s.e.rentals[id]; ok {
		return r
	}
	return inter.EmptyInterval()
}

func (s *session) setInterval(id inter.TokenID, r inter.RentalInterval) {
	s.intervals[id] = r
}

// ownerOf resolves token ownership through the staged mints and burns, so
// a token re-rented after an in-call collection is owned by its new renter
// and a collected one reads as nonexistent.
func (s *session) ownerOf(id inter.TokenID) (common.Address, error) {
	if owner, ok := s.minted[id]; ok {
		return owner, nil
	}
	if _, ok := s.burned[id]; ok {
		return common.Address{}, ledger.ErrTokenNotFound
	}
	return s.e.tokens.OwnerOf(id)
}

// processRental executes one state-machine transition for (tokenID,
// duration), accumulating the fee and the staged aggregate delta.
func (s *session) processRental(tokenID inter.TokenID, duration inter.Duration, renter common.Address, unitPrice *big.Int) error {
	rules := &s.e.rules

	if tokenID == 0 || tokenID > rules.MaxTokenSupply {
		return &UnsupportedTokenError{TokenID: tokenID}
	}
	if duration == 0 {
		return &InvalidDurationError{TokenID: tokenID, Duration: duration}
	}

	r := s.interval(tokenID)
	switch inter.Classify(r, s.now) {
	case inter.Clean:
		if rules.EnforceMinDuration && duration < rules.MinRentalDuration {
			return &InvalidDurationError{TokenID: tokenID, Duration: duration}
		}
		if duration > rules.MaxRentalDuration {
			return &InvalidDurationError{TokenID: tokenID, Duration: duration}
		}
		fee := new(big.Int).Add(unitPrice, rules.MaintenanceFee(duration))
		nr := inter.RentalInterval{
			BeginDate: s.now,
			EndDate:   s.now.Add(duration),
			Fee:       fee,
		}
		s.setInterval(tokenID, nr)
		if _, staged := s.minted[tokenID]; !staged {
			s.mintOrder = append(s.mintOrder, tokenID)
		}
		s.minted[tokenID] = renter
		s.added += uint64(duration)
		s.totalFee.Add(s.totalFee, fee)
		s.fresh++
		s.stageResult(tokenID, nr)
		return nil

	case inter.Active:
		owner, err := s.ownerOf(tokenID)
		if err != nil {
			return err
		}
		if owner != renter {
			return &AlreadyRentedError{TokenID: tokenID}
		}
		// Extension: the renter already paid for the unexpired remainder,
		// so only the end-date delta is billed, maintenance component
		// only. The delta must move the end date forward and may not
		// exceed the max duration on its own.
		newEnd := s.now.Add(duration)
		if newEnd <= r.EndDate {
			return &InvalidDurationError{TokenID: tokenID, Duration: duration}
		}
		delta := newEnd.Sub(r.EndDate)
		if delta > rules.MaxRentalDuration {
			return &InvalidDurationError{TokenID: tokenID, Duration: duration}
		}
		charge := rules.MaintenanceFee(delta)
		nr := r
		nr.EndDate = newEnd
		nr.Fee = new(big.Int).Add(r.FeeOrZero(), charge)
		s.setInterval(tokenID, nr)
		s.added += uint64(delta)
		s.totalFee.Add(s.totalFee, charge)
		s.extended++
		s.stageResult(tokenID, nr)
		return nil

	default: // inter.Expired
		// Expired tokens must be explicitly declared for collection in
		// the same call before they can be rented again.
		return &AlreadyRentedError{TokenID: tokenID}
	}
}

// stageResult records the per-token event tuple. A duplicate id in the
// batch overwrites its earlier tuple so the event reports each token's
// final interval exactly once.
func (s *session) stageResult(tokenID inter.TokenID, r inter.RentalInterval) {
	for i, id := range s.batchIDs {
		if id == tokenID {
			s.batchIntervals[i] = r
			return
		}
	}
	s.batchIDs = append(s.batchIDs, tokenID)
	s.batchIntervals = append(s.batchIntervals, r)
}

func (s *session) rentalEvent(renter common.Address) *RentalCompletedEvent {
	ev := &RentalCompletedEvent{
		Renter:     renter,
		TokenIDs:   s.batchIDs,
		BeginDates: make([]inter.Timestamp, len(s.batchIDs)),
		EndDates:   make([]inter.Timestamp, len(s.batchIDs)),
		Fees:       make([]*big.Int, len(s.batchIDs)),
		TotalFee:   new(big.Int).Set(s.totalFee),
	}
	for i, r := range s.batchIntervals {
		ev.BeginDates[i] = r.BeginDate
		ev.EndDates[i] = r.EndDate
		ev.Fees[i] = new(big.Int).Set(r.FeeOrZero())
	}
	return ev
}

func (s *session) collectedEvent() *TokensCollectedEvent {
	if len(s.collected) == 0 {
		return nil
	}
	return &TokensCollectedEvent{TokenIDs: s.collected}
}
