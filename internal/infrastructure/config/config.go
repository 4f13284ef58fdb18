package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL, default=24h"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Exchange ExchangeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vehicle_inventory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ExchangeConfig struct {
	// PrimaryURL answers {"USDBRL":{"bid":"5.25"}} (AwesomeAPI shape).
	PrimaryURL string `env:"EXCHANGE_PRIMARY_URL, default=https://economia.awesomeapi.com.br/json/last/USD-BRL"`
	// FallbackURL answers {"rates":{"BRL":5.30}} (Frankfurter shape).
	FallbackURL string        `env:"EXCHANGE_FALLBACK_URL, default=https://api.frankfurter.app/latest?from=USD&to=BRL"`
	Timeout     time.Duration `env:"EXCHANGE_TIMEOUT,   default=5s"`
	CacheTTL    time.Duration `env:"EXCHANGE_CACHE_TTL, default=10m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
