package ledger

import (
	"context"
	"sync"
)

// Memory is an in-process ledger for tests. Same semantics as the postgres
// ledger minus the entry log.
type Memory struct {
	mu       sync.RWMutex
	balances map[string]int64
}

func NewMemory() *Memory {
	return &Memory{balances: make(map[string]int64)}
}

func (l *Memory) BalanceOf(_ context.Context, account string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account], nil
}

func (l *Memory) Transfer(_ context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from] < amount {
		return ErrInsufficientFunds
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

func (l *Memory) Mint(_ context.Context, account string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
	return l.balances[account], nil
}

func (l *Memory) EnsureAccount(_ context.Context, account string, starting int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.balances[account]; ok {
		return false, nil
	}
	l.balances[account] = starting
	return true, nil
}
