package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// FrankfurterProvider is the fallback quote source. Its payload carries the
// quote as a number: {"rates":{"BRL":5.30}}.
type FrankfurterProvider struct {
	url    string
	client *http.Client
}

func NewFrankfurterProvider(url string, timeout time.Duration) *FrankfurterProvider {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &FrankfurterProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *FrankfurterProvider) Name() string { return "frankfurter" }

func (p *FrankfurterProvider) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	body, err := fetchBody(ctx, p.client, p.url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("frankfurter: %w", err)
	}

	// Decode the rate as json.Number so the decimal is built from the raw
	// digits, not from a float64 round-trip.
	var payload struct {
		Rates map[string]json.Number `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("frankfurter: decode payload: %w", err)
	}

	raw, ok := payload.Rates["BRL"]
	if !ok {
		return decimal.Zero, fmt.Errorf("frankfurter: payload missing rates.BRL")
	}

	rate, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("frankfurter: non-numeric rate %q: %w", raw, err)
	}
	if rate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("frankfurter: non-positive rate %s", rate)
	}
	return rate, nil
}
