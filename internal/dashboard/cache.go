// Package dashboard is the cache-aside layer in front of the
// aggregator.
//
// Snapshots are persisted with their fetch time and considered stale
// after a TTL. Concurrent requests for the same key are coalesced into
// a single aggregation. Cache failures never fail a request, the layer
// degrades to recomputing.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fintrack-app/backend/internal/aggregate"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DefaultTTL is how long a cached snapshot stays fresh.
const DefaultTTL = 5 * time.Minute

const (
	keyPrefix          = "dashboard"
	keyAllAccounts     = "ALL"
	keyDefaultCurrency = "DEFAULT"
)

// Key derives the cache key for a dashboard request.
func Key(month types.Month, accountID *uuid.UUID, currency types.Currency) string {
	account := keyAllAccounts
	if accountID != nil {
		account = accountID.String()
	}

	cur := keyDefaultCurrency
	if currency.Valid() {
		cur = currency.String()
	}

	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, month, account, cur)
}

// Cache is a constructed, injectable cache instance. It owns its
// metrics and in-flight registrations, so multiple instances can
// coexist (and tests stay isolated).
type Cache struct {
	db         *gorm.DB
	aggregator *aggregate.Aggregator
	ttl        time.Duration
	now        func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]struct{}

	metrics Metrics
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the staleness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New returns a Cache wrapping the aggregator.
func New(db *gorm.DB, aggregator *aggregate.Aggregator, options ...Option) *Cache {
	c := &Cache{
		db:         db,
		aggregator: aggregator,
		ttl:        DefaultTTL,
		now:        time.Now,
		inflight:   make(map[string]struct{}),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Get returns the snapshot for the input, from cache when fresh.
//
// A stale or missing entry triggers exactly one aggregation per key, no
// matter how many callers arrive concurrently; they all receive the
// same result. Cache read and write failures are counted and logged but
// never surfaced. The caller always gets correct data or the
// aggregator's own error.
func (c *Cache) Get(ctx context.Context, in aggregate.Input) (aggregate.Snapshot, error) {
	key := Key(in.Month, in.AccountID, in.Preferred)

	var entry models.DashboardEntry
	err := c.db.Where("cache_key = ?", key).First(&entry).Error
	if err == nil && c.now().Sub(entry.FetchedAt) <= c.ttl {
		var snapshot aggregate.Snapshot
		if err := json.Unmarshal(entry.Payload, &snapshot); err == nil {
			c.metrics.hit()
			return snapshot, nil
		}

		c.metrics.error()
		log.Error().Str("key", key).Msg("cached payload is unreadable, recomputing")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, models.ErrResourceNotFound) {
		// Degrade to recomputing
		c.metrics.error()
		log.Error().Err(err).Str("key", key).Msg("cache read failed, recomputing")
	}

	c.mu.Lock()
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	value, err, _ := c.group.Do(key, func() (any, error) {
		c.metrics.miss()

		snapshot, err := c.aggregator.Compute(ctx, in)
		if err != nil {
			return aggregate.Snapshot{}, err
		}

		c.persist(key, snapshot)
		return snapshot, nil
	})

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	if err != nil {
		return aggregate.Snapshot{}, err
	}

	return value.(aggregate.Snapshot), nil
}

// persist writes the snapshot to the cache table, best effort.
func (c *Cache) persist(key string, snapshot aggregate.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		c.metrics.error()
		log.Error().Err(err).Str("key", key).Msg("marshalling snapshot failed")
		return
	}

	err = models.UpsertDashboardEntry(c.db, &models.DashboardEntry{
		CacheKey:  key,
		Payload:   payload,
		FetchedAt: c.now(),
	})
	if err != nil {
		c.metrics.error()
		log.Error().Err(err).Str("key", key).Msg("cache write failed, serving uncached result")
	}
}

// InvalidateInput selects which cache entries to drop.
type InvalidateInput struct {
	Month     *types.Month
	AccountID *uuid.UUID
}

// Invalidate drops cached snapshots.
//
// With no fields set everything is cleared. With both set, the entries
// for that month and account are cleared together with the all-accounts
// entries for the month, since those aggregate the account too.
// Invalidating keys that were never populated is a no-op.
func (c *Cache) Invalidate(ctx context.Context, in InvalidateInput) error {
	patterns := invalidationPatterns(in)

	for _, pattern := range patterns {
		// Stop in-flight computations from landing with stale data
		c.mu.Lock()
		for key := range c.inflight {
			if glob.Glob(pattern, key) {
				c.group.Forget(key)
				delete(c.inflight, key)
			}
		}
		c.mu.Unlock()

		err := c.db.WithContext(ctx).
			Where("cache_key LIKE ?", strings.ReplaceAll(pattern, "*", "%")).
			Delete(&models.DashboardEntry{}).Error
		if err != nil {
			return fmt.Errorf("cache invalidation for %q failed: %w", pattern, err)
		}
	}

	return nil
}

// invalidationPatterns derives the glob patterns for an invalidation.
func invalidationPatterns(in InvalidateInput) []string {
	switch {
	case in.Month == nil && in.AccountID == nil:
		return []string{keyPrefix + ":*"}
	case in.Month != nil && in.AccountID == nil:
		return []string{fmt.Sprintf("%s:%s:*", keyPrefix, *in.Month)}
	case in.Month == nil && in.AccountID != nil:
		return []string{fmt.Sprintf("%s:*:%s:*", keyPrefix, *in.AccountID)}
	default:
		return []string{
			fmt.Sprintf("%s:%s:%s:*", keyPrefix, *in.Month, *in.AccountID),
			fmt.Sprintf("%s:%s:%s:*", keyPrefix, *in.Month, keyAllAccounts),
		}
	}
}

// Stats returns the cache metrics.
func (c *Cache) Stats() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// Reset zeroes the metrics.
func (c *Cache) Reset() {
	c.metrics.Reset()
}
