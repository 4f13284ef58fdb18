package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Request / Response types ---

// vehicleRequest is the full payload used by POST and PUT. The price arrives
// in BRL; the stored USD price is derived server-side.
type vehicleRequest struct {
	Brand    string          `json:"brand"     validate:"required"`
	Model    string          `json:"model"     validate:"required"`
	Year     int             `json:"year"      validate:"required,gte=1900,lte=2100"`
	Color    string          `json:"color"     validate:"required"`
	Plate    string          `json:"plate"     validate:"required,min=7,max=8"`
	PriceBRL decimal.Decimal `json:"price_brl" validate:"required"`
}

// vehiclePatchRequest is the partial payload for PATCH; nil fields are
// left untouched.
type vehiclePatchRequest struct {
	Brand    *string          `json:"brand"`
	Model    *string          `json:"model"`
	Year     *int             `json:"year"`
	Color    *string          `json:"color"`
	Plate    *string          `json:"plate"`
	PriceBRL *decimal.Decimal `json:"price_brl"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type vehicleResponse struct {
	ID        string          `json:"id"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Year      int             `json:"year"`
	Color     string          `json:"color"`
	Plate     string          `json:"plate"`
	PriceUSD  decimal.Decimal `json:"price_usd"`
	PriceBRL  decimal.Decimal `json:"price_brl"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type vehiclePageResponse struct {
	Items      []vehicleResponse `json:"items"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalItems int64             `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

type brandCountResponse struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}
