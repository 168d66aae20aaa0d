package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-land-rental/inter"
)

// MemoryTokenLedger is a map-backed TokenLedger for the local runtime and
// tests. Safe for concurrent use.
type MemoryTokenLedger struct {
	mu     sync.RWMutex
	owners map[inter.TokenID]common.Address
}

func NewMemoryTokenLedger() *MemoryTokenLedger {
	return &MemoryTokenLedger{
		owners: make(map[inter.TokenID]common.Address),
	}
}

func (l *MemoryTokenLedger) Mint(to common.Address, tokenID inter.TokenID) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.owners[tokenID]; ok {
		return ErrTokenExists
	}
	l.owners[tokenID] = to
	return nil
}

func (l *MemoryTokenLedger) BurnFrom(owner common.Address, tokenID inter.TokenID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.owners[tokenID]
	if !ok {
		return ErrTokenNotFound
	}
	if cur != owner {
		return ErrOwnerMismatch
	}
	delete(l.owners, tokenID)
	return nil
}

func (l *MemoryTokenLedger) OwnerOf(tokenID inter.TokenID) (common.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cur, ok := l.owners[tokenID]
	if !ok {
		return common.Address{}, ErrTokenNotFound
	}
	return cur, nil
}

// Exists reports whether the token is currently minted. Convenience for
// tests and the service API.
func (l *MemoryTokenLedger) Exists(tokenID inter.TokenID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.owners[tokenID]
	return ok
}

// MemoryPointsLedger is a map-backed PointsLedger with an allow-list of
// consume reason codes. Safe for concurrent use.
type MemoryPointsLedger struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	reasons  map[uint32]bool
}

func NewMemoryPointsLedger(allowedReasons ...uint32) *MemoryPointsLedger {
	l := &MemoryPointsLedger{
		balances: make(map[common.Address]*big.Int),
		reasons:  make(map[uint32]bool),
	}
	for _, r := range allowedReasons {
		l.reasons[r] = true
	}
	return l
}

// Deposit credits the account. Used to seed balances; not part of the
// capability the engine consumes.
func (l *MemoryPointsLedger) Deposit(account common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.balances[account]
	if !ok {
		cur = new(big.Int)
		l.balances[account] = cur
	}
	cur.Add(cur, amount)
}

func (l *MemoryPointsLedger) Consume(account common.Address, amount *big.Int, reasonCode uint32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.reasons[reasonCode] {
		return ErrReasonNotAllowed
	}
	cur, ok := l.balances[account]
	if !ok || cur.Cmp(amount) < 0 {
		return ErrInsufficientPoints
	}
	cur.Sub(cur, amount)
	return nil
}

// BalanceOf returns a copy of the account's current balance.
func (l *MemoryPointsLedger) BalanceOf(account common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.balances[account]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(cur)
}
