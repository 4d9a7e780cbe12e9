package holdings

import (
	"context"
	"time"

	"github.com/fintrack-app/backend/internal/fx"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ConvertedValuation carries the monetary fields of a valuation
// re-expressed in the preferred display currency. It is nil on the
// Valuation when no conversion took place.
type ConvertedValuation struct {
	Currency    types.Currency  `json:"currency"`
	CostBasis   decimal.Decimal `json:"costBasis"`
	MarketValue decimal.Decimal `json:"marketValue"`
	GainLoss    decimal.Decimal `json:"gainLoss"`
	Status      fx.Status       `json:"status"`
}

// Valuation is the derived market view of one holding.
type Valuation struct {
	HoldingID       string              `json:"holdingId"`
	Symbol          string              `json:"symbol"`
	Quantity        decimal.Decimal     `json:"quantity"`
	AverageCost     decimal.Decimal     `json:"averageCost"`
	Currency        types.Currency      `json:"currency"`
	CostBasis       decimal.Decimal     `json:"costBasis"`
	MarketValue     decimal.Decimal     `json:"marketValue"`
	GainLoss        decimal.Decimal     `json:"gainLoss"`
	GainLossPercent decimal.Decimal     `json:"gainLossPercent"`
	Quoted          bool                `json:"quoted"`
	QuotedAt        *time.Time          `json:"quotedAt,omitempty"`
	IsStale         bool                `json:"isStale"`
	Converted       *ConvertedValuation `json:"converted,omitempty"`
}

// Valuator computes valuations for holdings.
type Valuator struct {
	fx        *fx.Service
	quotes    QuoteProvider
	freshness time.Duration
	now       func() time.Time
}

// Option configures a Valuator.
type Option func(*Valuator)

// WithFreshness sets how old a quote may be before the valuation is
// marked stale.
func WithFreshness(d time.Duration) Option {
	return func(v *Valuator) { v.freshness = d }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(v *Valuator) { v.now = now }
}

// New returns a Valuator using the given conversion service and quote
// provider. The provider may be nil, in which case all holdings are
// valued at cost.
func New(fxService *fx.Service, quotes QuoteProvider, options ...Option) *Valuator {
	v := &Valuator{
		fx:        fxService,
		quotes:    quotes,
		freshness: 15 * time.Minute,
		now:       time.Now,
	}

	for _, option := range options {
		option(v)
	}

	return v
}

// Valuate computes the valuation of a single holding.
//
// An unpriced holding is valued at its cost basis, assuming breakeven.
// When the preferred currency differs from the holding currency, the
// monetary fields are additionally expressed in the preferred currency;
// otherwise Converted stays nil to signal that no conversion occurred.
func (v *Valuator) Valuate(ctx context.Context, holding models.Holding, preferred types.Currency) Valuation {
	costBasis := holding.Quantity.Mul(holding.AverageCost).Round(2)

	valuation := Valuation{
		HoldingID:   holding.ID.String(),
		Symbol:      holding.Symbol,
		Quantity:    holding.Quantity,
		AverageCost: holding.AverageCost,
		Currency:    holding.Currency,
		CostBasis:   costBasis,
		MarketValue: costBasis,
	}

	if v.quotes != nil {
		quote, err := v.quotes.Latest(ctx, holding.Symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", holding.Symbol).
				Msg("quote fetch failed, valuing holding at cost")
		} else {
			valuation.MarketValue = holding.Quantity.Mul(quote.Price).Round(2)
			valuation.Quoted = true
			at := quote.At
			valuation.QuotedAt = &at
			valuation.IsStale = v.now().Sub(quote.At) > v.freshness
		}
	}

	valuation.GainLoss = valuation.MarketValue.Sub(valuation.CostBasis).Round(2)

	// Guard against division by zero for free or zero-quantity positions
	if valuation.CostBasis.IsZero() {
		valuation.GainLossPercent = decimal.Zero
	} else {
		valuation.GainLossPercent = valuation.GainLoss.
			Div(valuation.CostBasis).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	if preferred != "" && preferred != holding.Currency {
		result := v.fx.ConvertWithFallback(ctx, valuation.CostBasis, holding.Currency, preferred)

		converted := &ConvertedValuation{
			Currency:  preferred,
			CostBasis: result.Amount,
			Status:    result.Status,
		}

		if result.Status == fx.StatusUnconverted {
			converted.MarketValue = valuation.MarketValue
			converted.GainLoss = valuation.GainLoss
		} else {
			// Reuse the rate so all fields agree
			converted.MarketValue = valuation.MarketValue.Mul(result.Rate).Round(2)
			converted.GainLoss = converted.MarketValue.Sub(converted.CostBasis).Round(2)
		}

		valuation.Converted = converted
	}

	return valuation
}

// ValuateAll computes valuations for a list of holdings.
func (v *Valuator) ValuateAll(ctx context.Context, holdings []models.Holding, preferred types.Currency) []Valuation {
	valuations := make([]Valuation, 0, len(holdings))
	for _, holding := range holdings {
		valuations = append(valuations, v.Valuate(ctx, holding, preferred))
	}

	return valuations
}
