package holdings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// HTTPProvider fetches quotes from a simple JSON quote API that serves
// GET {base}/quote?symbol=XYZ.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type quoteResponse struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

func (p *HTTPProvider) Latest(ctx context.Context, symbol string) (Quote, error) {
	url := fmt.Sprintf("%s/quote?symbol=%s", p.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("quote provider returned status %d", resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("decoding quote provider response failed: %w", err)
	}

	currency, err := types.ParseCurrency(body.Currency)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Symbol:   symbol,
		Price:    decimal.NewFromFloat(body.Price),
		Currency: currency,
		At:       time.Now().In(time.UTC),
	}, nil
}
