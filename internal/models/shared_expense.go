package models

import (
	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SplitType determines how a shared expense is divided.
type SplitType string

const (
	SplitTypeEqual      SplitType = "equal"
	SplitTypePercentage SplitType = "percentage"
	SplitTypeFixed      SplitType = "fixed"
)

func (t SplitType) Valid() bool {
	switch t {
	case SplitTypeEqual, SplitTypePercentage, SplitTypeFixed:
		return true
	}

	return false
}

// ParticipantStatus is the state of one participant's share.
type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusPaid     ParticipantStatus = "paid"
	ParticipantStatusDeclined ParticipantStatus = "declined"
)

func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantStatusPending, ParticipantStatusPaid, ParticipantStatusDeclined:
		return true
	}

	return false
}

// SharedExpense is an expense the owner splits with other users.
//
// The sum of all participant shares plus the owner's residual share
// always equals TotalAmount exactly.
type SharedExpense struct {
	DefaultModel
	OwnerID       uuid.UUID `gorm:"index"`
	Owner         User      `json:"-"`
	TransactionID uuid.UUID `gorm:"index"`
	Transaction   Transaction `json:"-"`
	SplitType     SplitType
	TotalAmount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency      types.Currency
	Participants  []ExpenseParticipant
}

func (e *SharedExpense) BeforeSave(_ *gorm.DB) error {
	if !e.SplitType.Valid() {
		return ErrSplitTypeInvalid
	}

	if !e.Currency.Valid() {
		return types.ErrUnsupportedCurrency
	}

	return nil
}

// ExpenseParticipant is one participant's share of a shared expense.
type ExpenseParticipant struct {
	DefaultModel
	SharedExpenseID uuid.UUID `gorm:"index"`
	UserID          uuid.UUID `gorm:"index"`
	User            User      `json:"-"`
	ShareAmount     decimal.Decimal  `gorm:"type:DECIMAL(20,8)"`
	SharePercentage *decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status          ParticipantStatus `gorm:"default:pending"`
}

func (p *ExpenseParticipant) BeforeSave(_ *gorm.DB) error {
	if p.Status == "" {
		p.Status = ParticipantStatusPending
	}

	if !p.Status.Valid() {
		return ErrParticipantStatusInvalid
	}

	return nil
}
