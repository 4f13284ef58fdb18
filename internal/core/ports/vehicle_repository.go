package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
)

// Page is a 1-based pagination request.
type Page struct {
	Number int
	Size   int
}

// VehicleFilter holds the optional search criteria. Zero values mean
// "no constraint".
type VehicleFilter struct {
	Brand string
	Year  int
	Color string
}

// VehiclePage is one page of results plus paging metadata.
type VehiclePage struct {
	Items      []*domain.Vehicle
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// VehicleRepository defines persistence for vehicles. All read methods see
// only active (non-soft-deleted) vehicles.
type VehicleRepository interface {
	FindActive(ctx context.Context, page Page) (*VehiclePage, error)
	FindByFilter(ctx context.Context, filter VehicleFilter, page Page) (*VehiclePage, error)
	// FindByPriceRange matches on the stored USD price; nil bounds are open.
	FindByPriceRange(ctx context.Context, minUSD, maxUSD *decimal.Decimal, page Page) (*VehiclePage, error)
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	// ExistsByPlate checks active vehicles only; excludeID skips one vehicle
	// so updates can keep their own plate.
	ExistsByPlate(ctx context.Context, plate, excludeID string) (bool, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	CountByBrand(ctx context.Context) ([]domain.BrandCount, error)
}
