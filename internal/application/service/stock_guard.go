package service

import "sync"

// StockGuard serializes every operation that reads and then changes stock or
// the invoice counter within this process. Commits, purchases and stock
// adjustments all go through the same guard.
type StockGuard struct {
	mu sync.Mutex
}

// NewStockGuard creates a new stock guard
func NewStockGuard() *StockGuard {
	return &StockGuard{}
}

// Do runs fn while holding the guard
func (g *StockGuard) Do(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}
