package rental

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-land-rental/inter"
)

// PublicRentalAPI exposes the engine over JSON-RPC, registered under the
// "rental" namespace by the launcher.
type PublicRentalAPI struct {
	engine *Engine
}

func NewPublicRentalAPI(e *Engine) *PublicRentalAPI {
	return &PublicRentalAPI{engine: e}
}

// RentArgs is the wire shape of a rent / estimateRentalFee request.
type RentArgs struct {
	Renter                   common.Address   `json:"renter"`
	TokenIDs                 []hexutil.Uint64 `json:"tokenIds"`
	Durations                []hexutil.Uint64 `json:"durations"`
	ExpiredTokenIDsToCollect []hexutil.Uint64 `json:"expiredTokenIdsToCollect"`
	MaxFee                   *hexutil.Big     `json:"maxFee"`
}

// RentResult reports the per-token outcome of a rent call.
type RentResult struct {
	TokenIDs   []hexutil.Uint64 `json:"tokenIds"`
	BeginDates []hexutil.Uint64 `json:"beginDates"`
	EndDates   []hexutil.Uint64 `json:"endDates"`
	Fees       []*hexutil.Big   `json:"fees"`
	TotalFee   *hexutil.Big     `json:"totalFee"`
}

func tokenIDs(in []hexutil.Uint64) []inter.TokenID {
	out := make([]inter.TokenID, len(in))
	for i, v := range in {
		out[i] = inter.TokenID(v)
	}
	return out
}

func durations(in []hexutil.Uint64) []inter.Duration {
	out := make([]inter.Duration, len(in))
	for i, v := range in {
		out[i] = inter.Duration(v)
	}
	return out
}

// Rent executes a rental batch on behalf of args.Renter.
func (api *PublicRentalAPI) Rent(args RentArgs) (*RentResult, error) {
	var maxFee *big.Int
	if args.MaxFee != nil {
		maxFee = (*big.Int)(args.MaxFee)
	}
	ev, err := api.engine.Rent(args.Renter, tokenIDs(args.TokenIDs), durations(args.Durations), tokenIDs(args.ExpiredTokenIDsToCollect), maxFee)
	if err != nil {
		return nil, err
	}

	res := &RentResult{
		TokenIDs:   make([]hexutil.Uint64, len(ev.TokenIDs)),
		BeginDates: make([]hexutil.Uint64, len(ev.TokenIDs)),
		EndDates:   make([]hexutil.Uint64, len(ev.TokenIDs)),
		Fees:       make([]*hexutil.Big, len(ev.TokenIDs)),
	}
	for i := range ev.TokenIDs {
		res.TokenIDs[i] = hexutil.Uint64(ev.TokenIDs[i])
		res.BeginDates[i] = hexutil.Uint64(ev.BeginDates[i])
		res.EndDates[i] = hexutil.Uint64(ev.EndDates[i])
		res.Fees[i] = (*hexutil.Big)(ev.Fees[i])
	}
	res.TotalFee = (*hexutil.Big)(ev.TotalFee)
	return res, nil
}

// EstimateRentalFee quotes the exact fee Rent would charge for the same
// arguments against current state. MaxFee is ignored.
func (api *PublicRentalAPI) EstimateRentalFee(args RentArgs) (*hexutil.Big, error) {
	fee, err := api.engine.EstimateRentalFee(args.Renter, tokenIDs(args.TokenIDs), durations(args.Durations), tokenIDs(args.ExpiredTokenIDsToCollect))
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(fee), nil
}

// CollectExpiredTokens reclaims the listed expired tokens (strict mode) and
// returns the elapsed time folded out of the aggregate.
func (api *PublicRentalAPI) CollectExpiredTokens(ids []hexutil.Uint64) (hexutil.Uint64, error) {
	elapsed, err := api.engine.CollectExpiredTokens(tokenIDs(ids))
	return hexutil.Uint64(elapsed), err
}

// CalculateElapsedTimeForExpiredTokens sums the elapsed time of the listed
// expired tokens without mutating state.
func (api *PublicRentalAPI) CalculateElapsedTimeForExpiredTokens(ids []hexutil.Uint64) (hexutil.Uint64, error) {
	elapsed, err := api.engine.CalculateElapsedTimeForExpiredTokens(tokenIDs(ids))
	return hexutil.Uint64(elapsed), err
}

// Aggregate returns the current aggregate occupancy counter.
func (api *PublicRentalAPI) Aggregate() hexutil.Uint64 {
	return hexutil.Uint64(api.engine.Aggregate())
}

// Rules returns the engine's current configuration.
func (api *PublicRentalAPI) Rules() Rules {
	return api.engine.Rules()
}

// Interval returns the token's current rental interval, or nil when the
// token is clean.
func (api *PublicRentalAPI) Interval(id hexutil.Uint64) *RentResult {
	r, ok := api.engine.Interval(inter.TokenID(id))
	if !ok {
		return nil
	}
	return &RentResult{
		TokenIDs:   []hexutil.Uint64{id},
		BeginDates: []hexutil.Uint64{hexutil.Uint64(r.BeginDate)},
		EndDates:   []hexutil.Uint64{hexutil.Uint64(r.EndDate)},
		Fees:       []*hexutil.Big{(*hexutil.Big)(r.FeeOrZero())},
		TotalFee:   (*hexutil.Big)(r.FeeOrZero()),
	}
}
