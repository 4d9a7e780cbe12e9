package models

import (
	"time"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FXRate is a persisted exchange rate for one currency pair on one day.
// Rows are only ever replaced by fresher rates from the same source,
// they are the fallback when the provider is unreachable.
type FXRate struct {
	DefaultModel
	Base   types.Currency `gorm:"uniqueIndex:fx_rate_pair_date"`
	Quote  types.Currency `gorm:"uniqueIndex:fx_rate_pair_date"`
	Rate   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date   time.Time      `gorm:"uniqueIndex:fx_rate_pair_date"`
	Source string
}

func (r *FXRate) BeforeSave(_ *gorm.DB) error {
	if !r.Rate.IsPositive() {
		return ErrFXRateNotPositive
	}

	r.Date = time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

// UpsertFXRate stores the rate, replacing an existing row for the same
// pair and date.
func UpsertFXRate(db *gorm.DB, rate *FXRate) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base"}, {Name: "quote"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "source", "updated_at"}),
	}).Create(rate).Error
}

// LatestFXRate returns the most recent persisted rate for the pair at or
// before the given date.
func LatestFXRate(db *gorm.DB, base, quote types.Currency, date time.Time) (FXRate, error) {
	var rate FXRate
	err := db.
		Where("base = ? AND quote = ? AND date <= ?", base, quote, date).
		Order("date DESC").
		First(&rate).Error

	return rate, err
}
