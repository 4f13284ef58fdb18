package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const rateKey = "fx:usd_brl"

// RateCache is the Redis-backed single-slot rate cache. The slot lives under
// one fixed key with a TTL, so expiry is enforced server-side. Any Redis or
// parse error on read degrades to a cache miss; the provider chain then
// refreshes the value.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewRateCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RateCache {
	return &RateCache{client: client, ttl: ttl, logger: logger}
}

func (c *RateCache) Get(ctx context.Context) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, rateKey).Result()
	if err == redis.Nil {
		return decimal.Zero, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("rate cache read failed, treating as miss")
		return decimal.Zero, false
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		c.logger.Warn().Err(err).Str("value", val).Msg("corrupt cached rate, treating as miss")
		return decimal.Zero, false
	}
	return rate, true
}

func (c *RateCache) Set(ctx context.Context, rate decimal.Decimal) {
	if err := c.client.Set(ctx, rateKey, rate.String(), c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("rate cache write failed")
	}
}

func (c *RateCache) Evict(ctx context.Context) {
	if err := c.client.Del(ctx, rateKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("rate cache evict failed")
	}
}
