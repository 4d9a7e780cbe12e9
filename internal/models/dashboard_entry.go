package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DashboardEntry is a persisted dashboard computation.
//
// Entries are written after every fresh computation and only removed by
// explicit invalidation. Staleness is decided by the reader, not here.
type DashboardEntry struct {
	DefaultModel
	CacheKey  string `gorm:"uniqueIndex"`
	Payload   []byte `gorm:"type:blob"` // JSON-encoded snapshot
	FetchedAt time.Time
}

// UpsertDashboardEntry stores the entry, replacing an existing row for
// the same cache key.
func UpsertDashboardEntry(db *gorm.DB, entry *DashboardEntry) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at", "updated_at"}),
	}).Create(entry).Error
}
