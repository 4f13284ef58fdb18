package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
)

// CreateVehicleInput carries a full vehicle payload. The price arrives in
// BRL and is converted to USD before persistence.
type CreateVehicleInput struct {
	Brand    string
	Model    string
	Year     int
	Color    string
	Plate    string
	PriceBRL decimal.Decimal
}

// PatchVehicleInput carries a partial update; nil fields are left untouched.
type PatchVehicleInput struct {
	Brand    *string
	Model    *string
	Year     *int
	Color    *string
	Plate    *string
	PriceBRL *decimal.Decimal
}

// VehicleOutput is a vehicle as exposed by the service: the stored USD price
// plus its BRL equivalent at the current rate.
type VehicleOutput struct {
	ID        string
	Brand     string
	Model     string
	Year      int
	Color     string
	Plate     string
	PriceUSD  decimal.Decimal
	PriceBRL  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehiclePageOutput is one page of vehicle outputs.
type VehiclePageOutput struct {
	Items      []VehicleOutput
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

type VehicleService interface {
	List(ctx context.Context, page Page) (*VehiclePageOutput, error)
	Search(ctx context.Context, filter VehicleFilter, page Page) (*VehiclePageOutput, error)
	// SearchByPrice takes BRL bounds and converts them to USD for the query.
	SearchByPrice(ctx context.Context, minBRL, maxBRL *decimal.Decimal, page Page) (*VehiclePageOutput, error)
	Get(ctx context.Context, id string) (*VehicleOutput, error)
	Create(ctx context.Context, input CreateVehicleInput) (*VehicleOutput, error)
	Update(ctx context.Context, id string, input CreateVehicleInput) (*VehicleOutput, error)
	Patch(ctx context.Context, id string, input PatchVehicleInput) (*VehicleOutput, error)
	Delete(ctx context.Context, id string) error
	BrandReport(ctx context.Context) ([]domain.BrandCount, error)
}
