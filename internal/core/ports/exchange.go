package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// QuoteProvider fetches the USD→BRL spot rate from one external source.
// Transport errors and malformed payloads are equivalent to the caller:
// both just mean "try the next provider".
type QuoteProvider interface {
	Name() string
	FetchQuote(ctx context.Context) (decimal.Decimal, error)
}

// RateCache is the single-slot cache holding the last good quote. Get
// reports a miss (ok=false) for absent, expired, or unreadable entries;
// only successfully fetched rates are ever stored.
type RateCache interface {
	Get(ctx context.Context) (decimal.Decimal, bool)
	Set(ctx context.Context, rate decimal.Decimal)
	Evict(ctx context.Context)
}

// ExchangeService owns the provider chain and the conversion arithmetic.
// Amounts are decimal end to end; results carry exactly two decimal places,
// rounded half-up.
type ExchangeService interface {
	GetRate(ctx context.Context) (decimal.Decimal, error)
	ConvertUSDToBRL(ctx context.Context, amountUSD decimal.Decimal) (decimal.Decimal, error)
	ConvertBRLToUSD(ctx context.Context, amountBRL decimal.Decimal) (decimal.Decimal, error)
}
