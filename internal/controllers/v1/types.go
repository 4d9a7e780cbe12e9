package v1

import (
	ft_uuid "github.com/fintrack-app/backend/internal/uuid"
)

type URIID struct {
	ID ft_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// DashboardQuery are the query parameters for the dashboard endpoint.
type DashboardQuery struct {
	Month    string `form:"month" example:"2026-07"` // Year and month in YYYY-MM format, defaults to the current month
	Account  string `form:"account" format:"UUID"`   // Restrict the dashboard to a single account
	Currency string `form:"currency" example:"EUR"`  // Currency to value everything in, defaults to USD
}

// InvalidateQuery are the query parameters for cache invalidation.
type InvalidateQuery struct {
	Month   string `form:"month" example:"2026-07"` // Only drop entries for this month
	Account string `form:"account" format:"UUID"`   // Only drop entries for this account
}

// SettlementQuery are the query parameters for the settlements endpoint.
type SettlementQuery struct {
	User string `form:"user" binding:"required" format:"UUID"` // User to compute settlement balances for
}
