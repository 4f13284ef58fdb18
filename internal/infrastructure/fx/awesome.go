// Package fx contains the external quote-provider adapters and the rate
// cache implementations behind the exchange service's ports.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const defaultFetchTimeout = 5 * time.Second

// AwesomeAPIProvider is the primary quote source. Its payload nests the
// quote as a string: {"USDBRL":{"bid":"5.25"}}.
type AwesomeAPIProvider struct {
	url    string
	client *http.Client
}

func NewAwesomeAPIProvider(url string, timeout time.Duration) *AwesomeAPIProvider {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &AwesomeAPIProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *AwesomeAPIProvider) Name() string { return "awesomeapi" }

func (p *AwesomeAPIProvider) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	body, err := fetchBody(ctx, p.client, p.url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("awesomeapi: %w", err)
	}

	var payload struct {
		USDBRL struct {
			Bid string `json:"bid"`
		} `json:"USDBRL"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("awesomeapi: decode payload: %w", err)
	}
	if payload.USDBRL.Bid == "" {
		return decimal.Zero, fmt.Errorf("awesomeapi: payload missing USDBRL.bid")
	}

	rate, err := decimal.NewFromString(payload.USDBRL.Bid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("awesomeapi: non-numeric bid %q: %w", payload.USDBRL.Bid, err)
	}
	if rate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("awesomeapi: non-positive rate %s", rate)
	}
	return rate, nil
}

// fetchBody performs the GET shared by all providers. Non-2xx statuses are
// errors so they trigger fallback exactly like transport failures.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch quote: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
