package rental

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-land-rental/inter"
)

// collect sweeps the caller-supplied ids and stages the reclamation of
// every expired one: interval cleared, token burn staged, elapsed time
// accumulated. Non-expired ids abort the whole call in strict mode and are
// silently skipped otherwise; the lenient mode exists so a rent call can
// opportunistically sweep a list the caller is not sure about.
//
// An id appearing twice reads as clean on its second occurrence (the first
// sweep already cleared it), so strict mode rejects the duplicate.
func (s *session) collect(tokenIDs []inter.TokenID, strict bool) error {
	for _, id := range tokenIDs {
		r := s.interval(id)
		switch inter.Classify(r, s.now) {
		case inter.Expired:
			owner, err := s.ownerOf(id)
			if err != nil {
				return err
			}
			s.burned[id] = owner
			s.elapsed += uint64(r.Elapsed())
			s.setInterval(id, inter.EmptyInterval())
			s.collected = append(s.collected, id)
		case inter.Active:
			if strict {
				return &NotExpiredError{TokenID: id}
			}
		default: // inter.Clean
			if strict {
				return &NotRentedError{TokenID: id}
			}
		}
	}
	return nil
}

// CollectExpiredTokens is the standalone strict collection entry point: it
// reclaims every listed token, burning it and folding its elapsed time out
// of the aggregate. Any id that is not expired (still active, or never
// rented) aborts the whole call, and an empty input is itself an error.
//
// Returns the total elapsed time reclaimed.
func (e *Engine) CollectExpiredTokens(tokenIDs []inter.TokenID) (inter.Duration, error) {
	elapsed, ev, err := e.collectExpired(tokenIDs)
	if err != nil {
		return 0, err
	}
	e.collectedFeed.Send(*ev)
	return elapsed, nil
}

func (e *Engine) collectExpired(tokenIDs []inter.TokenID) (inter.Duration, *TokensCollectedEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(tokenIDs) == 0 {
		return 0, nil, ErrNoTokenCollected
	}

	s := e.newSession()
	if err := s.collect(tokenIDs, true); err != nil {
		return 0, nil, err
	}

	preAggregate := e.preAggregate(s.elapsed)
	if err := e.commit(s, common.Address{}, preAggregate); err != nil {
		return 0, nil, err
	}

	e.log.WithFields(logrus.Fields{
		"collected": len(s.collected),
		"elapsed":   s.elapsed,
		"aggregate": e.totalOngoingRentalTime,
	}).Info("expired tokens collected")

	return inter.Duration(s.elapsed), s.collectedEvent(), nil
}

// CalculateElapsedTimeForExpiredTokens sums the elapsed occupancy of the
// listed tokens without mutating anything. Callers use it to pre-compute
// the economics of a collection list. Ids that were never rented or are
// still active are errors, mirroring strict collection.
func (e *Engine) CalculateElapsedTimeForExpiredTokens(tokenIDs []inter.TokenID) (inter.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	var total inter.Duration
	for _, id := range tokenIDs {
		r, ok := e.rentals[id]
		if !ok {
			return 0, &NotRentedError{TokenID: id}
		}
		switch inter.Classify(r, now) {
		case inter.Expired:
			total += r.Elapsed()
		case inter.Active:
			return 0, &NotExpiredError{TokenID: id}
		default:
			return 0, &NotRentedError{TokenID: id}
		}
	}
	return total, nil
}
