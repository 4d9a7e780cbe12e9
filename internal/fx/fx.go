// Package fx converts monetary amounts between the supported currencies.
//
// Rates come from an external provider and are cached twice: in memory
// with a TTL per currency pair and persisted per day in the database.
// Conversion never fails hard: when no rate can be found at all, the
// original amount is returned unconverted and tagged as such.
package fx

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status tags a conversion result so callers can distinguish degraded
// results from exact ones.
type Status string

const (
	// StatusFresh means the rate came from the provider or a rate
	// within its TTL.
	StatusFresh Status = "fresh"
	// StatusStale means the provider failed and an expired or persisted
	// rate was used instead.
	StatusStale Status = "stale"
	// StatusUnconverted means no rate was available at all and the
	// amount was returned unchanged.
	StatusUnconverted Status = "unconverted"
)

// Result is the outcome of a conversion with fallback.
type Result struct {
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
	Status Status          `json:"status"`
}

// RateTable maps "FROM:TO" pairs to rates for one reference date. It is
// read-only during a computation pass.
type RateTable map[string]decimal.Decimal

// PairKey returns the table key for a currency pair.
func PairKey(from, to types.Currency) string {
	return fmt.Sprintf("%s:%s", from, to)
}

// Convert converts an amount using the given rate table.
//
// When from and to are equal the amount is returned unchanged. A missing
// pair also returns the amount unchanged. A finance dashboard must
// never hard-fail because a rate is missing.
func Convert(amount decimal.Decimal, from, to types.Currency, table RateTable) decimal.Decimal {
	if from == to {
		return amount
	}

	rate, ok := table[PairKey(from, to)]
	if !ok {
		return amount
	}

	return amount.Mul(rate).Round(2)
}

type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// Service loads, caches and applies exchange rates.
type Service struct {
	db       *gorm.DB
	provider RateProvider
	timeout  time.Duration
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	memory map[string]cachedRate
	tables map[string]RateTable
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets how long an in-memory rate stays fresh.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithTimeout bounds a single provider call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.timeout = timeout }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service using the given database for rate persistence
// and the provider for fresh rates.
func New(db *gorm.DB, provider RateProvider, options ...Option) *Service {
	s := &Service{
		db:       db,
		provider: provider,
		timeout:  10 * time.Second,
		ttl:      24 * time.Hour,
		now:      time.Now,
		memory:   make(map[string]cachedRate),
		tables:   make(map[string]RateTable),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// BatchLoadRates returns the rate table for all supported currency pairs
// on the reference date. Tables are loaded once and cached by date.
//
// For every base currency the provider is asked once; on failure the
// persisted rates for the date (or the most recent before it) are used.
// Pairs that cannot be resolved at all stay absent from the table, which
// makes Convert fall back to the identity conversion.
func (s *Service) BatchLoadRates(ctx context.Context, date time.Time) (RateTable, error) {
	day := date.Format("2006-01-02")

	s.mu.Lock()
	if table, ok := s.tables[day]; ok {
		s.mu.Unlock()
		return table, nil
	}
	s.mu.Unlock()

	table := make(RateTable)
	for _, base := range types.Currencies() {
		rates, err := s.fetchRates(ctx, base, date)
		if err != nil {
			log.Warn().Err(err).Str("base", base.String()).Str("date", day).
				Msg("rate fetch failed, falling back to persisted rates")
			rates = s.persistedRates(base, date)
		} else {
			s.persistRates(base, date, rates)
		}

		for quote, rate := range rates {
			if quote == base {
				continue
			}
			table[PairKey(base, quote)] = rate
		}
	}

	s.mu.Lock()
	s.tables[day] = table
	s.mu.Unlock()

	return table, nil
}

// ConvertWithFallback converts a single amount, going through the
// fallback chain: fresh in-memory rate, provider, expired in-memory
// rate, persisted rate, unconverted.
func (s *Service) ConvertWithFallback(ctx context.Context, amount decimal.Decimal, from, to types.Currency) Result {
	if from == to {
		return Result{Amount: amount, Rate: decimal.NewFromInt(1), Status: StatusFresh}
	}

	key := PairKey(from, to)
	now := s.now()

	s.mu.Lock()
	cached, ok := s.memory[key]
	s.mu.Unlock()

	if ok && now.Sub(cached.fetchedAt) <= s.ttl {
		return Result{Amount: amount.Mul(cached.rate).Round(2), Rate: cached.rate, Status: StatusFresh}
	}

	rates, err := s.fetchRates(ctx, from, now)
	if err == nil {
		if rate, found := rates[to]; found {
			s.mu.Lock()
			s.memory[key] = cachedRate{rate: rate, fetchedAt: now}
			s.mu.Unlock()

			s.persistRates(from, now, rates)
			return Result{Amount: amount.Mul(rate).Round(2), Rate: rate, Status: StatusFresh}
		}
		err = fmt.Errorf("provider returned no rate for %s", key)
	}

	// Expired in-memory rate beats a database roundtrip
	if ok {
		log.Warn().Err(err).Str("pair", key).Time("fetchedAt", cached.fetchedAt).
			Msg("rate fetch failed, using stale cached rate")
		return Result{Amount: amount.Mul(cached.rate).Round(2), Rate: cached.rate, Status: StatusStale}
	}

	persisted, dbErr := models.LatestFXRate(s.db, from, to, now)
	if dbErr == nil {
		log.Warn().Err(err).Str("pair", key).Time("date", persisted.Date).
			Msg("rate fetch failed, using persisted rate")

		s.mu.Lock()
		s.memory[key] = cachedRate{rate: persisted.Rate, fetchedAt: persisted.Date}
		s.mu.Unlock()

		return Result{Amount: amount.Mul(persisted.Rate).Round(2), Rate: persisted.Rate, Status: StatusStale}
	}

	if !errors.Is(dbErr, gorm.ErrRecordNotFound) && !errors.Is(dbErr, models.ErrResourceNotFound) {
		log.Error().Err(dbErr).Str("pair", key).Msg("reading persisted rate failed")
	}

	log.Warn().Str("pair", key).Msg("no rate available, returning amount unconverted")
	return Result{Amount: amount, Status: StatusUnconverted}
}

// fetchRates asks the provider for all rates from base with a bounded
// timeout.
func (s *Service) fetchRates(ctx context.Context, base types.Currency, date time.Time) (map[types.Currency]decimal.Decimal, error) {
	if s.provider == nil {
		return nil, errors.New("no rate provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.provider.FetchRates(ctx, base, date)
}

// persistedRates loads the fallback rates for a base currency from the
// database. Missing pairs are skipped.
func (s *Service) persistedRates(base types.Currency, date time.Time) map[types.Currency]decimal.Decimal {
	rates := make(map[types.Currency]decimal.Decimal)

	for _, quote := range types.Currencies() {
		if quote == base {
			continue
		}

		rate, err := models.LatestFXRate(s.db, base, quote, date)
		if err != nil {
			continue
		}
		rates[quote] = rate.Rate
	}

	return rates
}

// persistRates stores provider rates, best effort.
func (s *Service) persistRates(base types.Currency, date time.Time, rates map[types.Currency]decimal.Decimal) {
	for quote, rate := range rates {
		if quote == base {
			continue
		}

		err := models.UpsertFXRate(s.db, &models.FXRate{
			Base:   base,
			Quote:  quote,
			Rate:   rate,
			Date:   date,
			Source: s.provider.Name(),
		})
		if err != nil {
			log.Error().Err(err).Str("pair", PairKey(base, quote)).Msg("persisting rate failed")
		}
	}
}
