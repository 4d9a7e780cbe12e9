package models

import (
	"strings"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Holding is a position in a traded asset. Only quantity and cost are
// stored, the valuation is always derived from the latest quote.
type Holding struct {
	DefaultModel
	AccountID   uuid.UUID `gorm:"index"`
	Account     Account   `json:"-"`
	CategoryID  uuid.UUID `gorm:"index"`
	Category    Category  `json:"-"`
	Symbol      string    `gorm:"index"`
	Quantity    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AverageCost decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency    types.Currency
}

func (h *Holding) BeforeSave(_ *gorm.DB) error {
	h.Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))

	if h.Quantity.IsNegative() {
		return ErrHoldingQuantityNegative
	}

	if !h.Currency.Valid() {
		return types.ErrUnsupportedCurrency
	}

	return nil
}
