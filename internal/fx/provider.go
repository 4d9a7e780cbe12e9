package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RateProvider fetches exchange rates from an external source.
type RateProvider interface {
	// FetchRates returns the rates from base to all other supported
	// currencies for the given date.
	FetchRates(ctx context.Context, base types.Currency, date time.Time) (map[types.Currency]decimal.Decimal, error)

	// Name identifies the provider in persisted rates and logs.
	Name() string
}

// ProviderFunc adapts a function to the RateProvider interface.
type ProviderFunc struct {
	Fetch      func(ctx context.Context, base types.Currency, date time.Time) (map[types.Currency]decimal.Decimal, error)
	SourceName string
}

func (p ProviderFunc) FetchRates(ctx context.Context, base types.Currency, date time.Time) (map[types.Currency]decimal.Decimal, error) {
	return p.Fetch(ctx, base, date)
}

func (p ProviderFunc) Name() string {
	if p.SourceName == "" {
		return "func"
	}
	return p.SourceName
}

// HTTPProvider fetches rates from a frankfurter.app compatible API.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPProvider returns a provider for the given API base URL, for
// example "https://api.frankfurter.app".
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		Client:  &http.Client{},
	}
}

func (p *HTTPProvider) Name() string {
	return "http"
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (p *HTTPProvider) FetchRates(ctx context.Context, base types.Currency, date time.Time) (map[types.Currency]decimal.Decimal, error) {
	symbols := ""
	for _, c := range types.Currencies() {
		if c == base {
			continue
		}
		if symbols != "" {
			symbols += ","
		}
		symbols += c.String()
	}

	url := fmt.Sprintf("%s/%s?from=%s&to=%s", p.BaseURL, date.Format("2006-01-02"), base, symbols)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding rate provider response failed: %w", err)
	}

	rates := make(map[types.Currency]decimal.Decimal, len(body.Rates))
	for code, rate := range body.Rates {
		currency, err := types.ParseCurrency(code)
		if err != nil {
			continue
		}
		rates[currency] = decimal.NewFromFloat(rate)
	}

	return rates, nil
}
