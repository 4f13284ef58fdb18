package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tinnova/vehicle-inventory/internal/api/metrics"
	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

// ExchangeService resolves the USD→BRL spot rate through an ordered chain of
// quote providers and converts monetary amounts in both directions.
//
// The chain is fail-closed: when the cache is empty and every provider fails,
// GetRate returns ErrRateUnavailable and nothing is cached. A previously
// cached good value is never overwritten by a failure.
type ExchangeService struct {
	providers []ports.QuoteProvider
	cache     ports.RateCache
	logger    zerolog.Logger
}

func NewExchangeService(providers []ports.QuoteProvider, cache ports.RateCache, logger zerolog.Logger) *ExchangeService {
	return &ExchangeService{providers: providers, cache: cache, logger: logger}
}

func (s *ExchangeService) GetRate(ctx context.Context) (decimal.Decimal, error) {
	if rate, ok := s.cache.Get(ctx); ok {
		metrics.RateCacheTotal.WithLabelValues("hit").Inc()
		return rate, nil
	}
	metrics.RateCacheTotal.WithLabelValues("miss").Inc()

	var lastErr error
	for _, p := range s.providers {
		rate, err := p.FetchQuote(ctx)
		if err != nil {
			metrics.RateFetchesTotal.WithLabelValues(p.Name(), "error").Inc()
			s.logger.Warn().Err(err).Str("provider", p.Name()).Msg("quote fetch failed, trying next provider")
			lastErr = err
			continue
		}

		metrics.RateFetchesTotal.WithLabelValues(p.Name(), "success").Inc()
		s.logger.Info().Str("provider", p.Name()).Str("rate", rate.String()).Msg("quote fetched")
		s.cache.Set(ctx, rate)
		return rate, nil
	}

	s.logger.Error().Err(lastErr).Msg("all quote providers failed")
	return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, lastErr)
}

// ConvertUSDToBRL multiplies by the current rate. Two decimal places,
// half-up.
func (s *ExchangeService) ConvertUSDToBRL(ctx context.Context, amountUSD decimal.Decimal) (decimal.Decimal, error) {
	rate, err := s.GetRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return amountUSD.Mul(rate).Round(2), nil
}

// ConvertBRLToUSD divides by the current rate. Two decimal places, half-up.
func (s *ExchangeService) ConvertBRLToUSD(ctx context.Context, amountBRL decimal.Decimal) (decimal.Decimal, error) {
	rate, err := s.GetRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return amountBRL.DivRound(rate, 2), nil
}
