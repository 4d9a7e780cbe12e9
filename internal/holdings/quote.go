// Package holdings values stored asset positions against external
// price quotes.
package holdings

import (
	"context"
	"sync"
	"time"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Quote is a price for one symbol at one point in time.
type Quote struct {
	Symbol   string
	Price    decimal.Decimal
	Currency types.Currency
	At       time.Time
}

// QuoteProvider fetches the latest price for a symbol.
type QuoteProvider interface {
	Latest(ctx context.Context, symbol string) (Quote, error)
}

// QuoteProviderFunc adapts a function to the QuoteProvider interface.
type QuoteProviderFunc func(ctx context.Context, symbol string) (Quote, error)

func (f QuoteProviderFunc) Latest(ctx context.Context, symbol string) (Quote, error) {
	return f(ctx, symbol)
}

// throttledProvider serializes calls to the wrapped provider with a
// minimum delay between them. Price sources impose call-rate ceilings,
// so concurrent valuations must not fan out into parallel fetches.
type throttledProvider struct {
	provider    QuoteProvider
	minInterval time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

// Throttled wraps a provider so that consecutive calls are at least
// minInterval apart.
func Throttled(provider QuoteProvider, minInterval time.Duration) QuoteProvider {
	return &throttledProvider{provider: provider, minInterval: minInterval}
}

func (t *throttledProvider) Latest(ctx context.Context, symbol string) (Quote, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if wait := t.minInterval - time.Since(t.lastCall); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return Quote{}, ctx.Err()
		}
	}
	t.lastCall = time.Now()

	return t.provider.Latest(ctx, symbol)
}
