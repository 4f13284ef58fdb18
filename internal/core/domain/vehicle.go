package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is the core aggregate root of the inventory. Prices are stored in
// USD; BRL values only exist at the API boundary, converted on read/write.
type Vehicle struct {
	ID        string          `json:"id"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Year      int             `json:"year"`
	Color     string          `json:"color"`
	Plate     string          `json:"plate"`
	PriceUSD  decimal.Decimal `json:"price_usd"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BrandCount is one row of the count-per-brand report.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}
