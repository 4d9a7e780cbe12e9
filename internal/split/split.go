// Package split computes expense shares and multi-party settlement
// balances.
package split

import (
	"fmt"

	"github.com/fintrack-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ParticipantInput describes one participant of a split request.
type ParticipantInput struct {
	Email       string           `json:"email"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	FixedAmount *decimal.Decimal `json:"fixedAmount,omitempty"`
}

// Share is one participant's computed share.
type Share struct {
	Email      string           `json:"email"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// FieldError describes one validation problem, tagged with the field it
// concerns so a UI can render all problems at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of a split computation.
type Result struct {
	OwnerShare             decimal.Decimal `json:"ownerShare"`
	ParticipantShares      []Share         `json:"participantShares"`
	TotalParticipantAmount decimal.Decimal `json:"totalParticipantAmount"`
	IsValid                bool            `json:"isValid"`
	Errors                 []FieldError    `json:"errors"`
}

var hundred = decimal.NewFromInt(100)

// CalculateSplitAmounts computes the per-participant shares.
//
// Equal splits divide the total by the participant count plus one, as
// the owner is a participant implicitly. Percentage splits apply each
// participant's percentage of the total. Fixed splits take the stated
// amounts verbatim. Every share is rounded to two decimals on its own.
func CalculateSplitAmounts(splitType models.SplitType, total decimal.Decimal, participants []ParticipantInput) []Share {
	shares := make([]Share, 0, len(participants))

	switch splitType {
	case models.SplitTypeEqual:
		count := decimal.NewFromInt(int64(len(participants) + 1))
		amount := total.Div(count).Round(2)
		for _, p := range participants {
			shares = append(shares, Share{Email: p.Email, Amount: amount})
		}

	case models.SplitTypePercentage:
		for _, p := range participants {
			pct := decimal.Zero
			if p.Percentage != nil {
				pct = *p.Percentage
			}
			amount := total.Mul(pct).Div(hundred).Round(2)
			pctCopy := pct
			shares = append(shares, Share{Email: p.Email, Amount: amount, Percentage: &pctCopy})
		}

	case models.SplitTypeFixed:
		for _, p := range participants {
			amount := decimal.Zero
			if p.FixedAmount != nil {
				amount = p.FixedAmount.Round(2)
			}
			shares = append(shares, Share{Email: p.Email, Amount: amount})
		}
	}

	return shares
}

// OwnerShare is what remains of the total for the owner.
func OwnerShare(total decimal.Decimal, shares []Share) decimal.Decimal {
	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share.Amount)
	}

	return total.Sub(sum).Round(2)
}

// DistributeRoundingError reconciles independently rounded shares with
// the target total by adding the whole discrepancy to the first share.
// Single-point adjustment is the deliberate policy here, not
// proportional redistribution.
func DistributeRoundingError(targetTotal decimal.Decimal, shares []Share) []Share {
	if len(shares) == 0 {
		return shares
	}

	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share.Amount)
	}

	diff := targetTotal.Sub(sum).Round(2)
	if !diff.IsZero() {
		shares[0].Amount = shares[0].Amount.Add(diff).Round(2)
	}

	return shares
}

// ValidateSplitAmounts checks a split request and returns all problems
// found. An empty slice means the request is valid.
func ValidateSplitAmounts(splitType models.SplitType, total decimal.Decimal, participants []ParticipantInput) []FieldError {
	var errs []FieldError

	if !splitType.Valid() {
		errs = append(errs, FieldError{Field: "splitType", Message: "the split type must be equal, percentage or fixed"})
	}

	if !total.IsPositive() {
		errs = append(errs, FieldError{Field: "totalAmount", Message: "the total amount must be larger than zero"})
	}

	if len(participants) == 0 {
		errs = append(errs, FieldError{Field: "participants", Message: "at least one participant is required"})
		return errs
	}

	switch splitType {
	case models.SplitTypePercentage:
		pctSum := decimal.Zero
		for i, p := range participants {
			if p.Percentage == nil {
				errs = append(errs, FieldError{
					Field:   participantField(i, "percentage"),
					Message: "a percentage is required for percentage splits",
				})
				continue
			}

			if p.Percentage.IsNegative() || p.Percentage.GreaterThan(hundred) {
				errs = append(errs, FieldError{
					Field:   participantField(i, "percentage"),
					Message: "percentages must be between 0 and 100",
				})
				continue
			}

			pctSum = pctSum.Add(*p.Percentage)
		}

		if pctSum.GreaterThan(hundred) {
			errs = append(errs, FieldError{Field: "participants", Message: "the percentages must not add up to more than 100"})
		}

	case models.SplitTypeFixed:
		fixedSum := decimal.Zero
		for i, p := range participants {
			if p.FixedAmount == nil {
				errs = append(errs, FieldError{
					Field:   participantField(i, "fixedAmount"),
					Message: "an amount is required for fixed splits",
				})
				continue
			}

			if p.FixedAmount.IsNegative() {
				errs = append(errs, FieldError{
					Field:   participantField(i, "fixedAmount"),
					Message: "fixed amounts must not be negative",
				})
				continue
			}

			fixedSum = fixedSum.Add(*p.FixedAmount)
		}

		if fixedSum.GreaterThan(total) {
			errs = append(errs, FieldError{Field: "participants", Message: "the fixed amounts must not add up to more than the total"})
		}
	}

	return errs
}

// Compute validates the request and, when valid, computes all shares
// with the rounding discrepancy reconciled.
func Compute(splitType models.SplitType, total decimal.Decimal, participants []ParticipantInput) Result {
	if errs := ValidateSplitAmounts(splitType, total, participants); len(errs) > 0 {
		return Result{IsValid: false, Errors: errs}
	}

	shares := CalculateSplitAmounts(splitType, total, participants)

	// When the participants cover the full total, their shares have to
	// reconcile with it exactly; otherwise the owner absorbs the
	// rounding in the residual.
	if coversTotal(splitType, total, shares, participants) {
		shares = DistributeRoundingError(total, shares)
	}

	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share.Amount)
	}

	return Result{
		OwnerShare:             total.Sub(sum).Round(2),
		ParticipantShares:      shares,
		TotalParticipantAmount: sum.Round(2),
		IsValid:                true,
	}
}

// coversTotal reports whether the participants are meant to pay the
// whole total, leaving no owner residual.
func coversTotal(splitType models.SplitType, total decimal.Decimal, shares []Share, participants []ParticipantInput) bool {
	if splitType != models.SplitTypePercentage {
		return false
	}

	pctSum := decimal.Zero
	for _, p := range participants {
		if p.Percentage != nil {
			pctSum = pctSum.Add(*p.Percentage)
		}
	}

	return pctSum.Equal(hundred)
}

func participantField(i int, field string) string {
	return fmt.Sprintf("participants[%d].%s", i, field)
}
