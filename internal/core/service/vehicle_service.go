package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tinnova/vehicle-inventory/internal/api/metrics"
	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

// VehicleService implements the inventory CRUD. Prices cross this service in
// both currencies: BRL in from the API, USD down to the repository, and both
// out on every read.
type VehicleService struct {
	repo     ports.VehicleRepository
	exchange ports.ExchangeService
	logger   zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, exchange ports.ExchangeService, logger zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, exchange: exchange, logger: logger}
}

func (s *VehicleService) List(ctx context.Context, page ports.Page) (*ports.VehiclePageOutput, error) {
	result, err := s.repo.FindActive(ctx, normalizePage(page))
	if err != nil {
		return nil, err
	}
	return s.toPageOutput(ctx, result)
}

func (s *VehicleService) Search(ctx context.Context, filter ports.VehicleFilter, page ports.Page) (*ports.VehiclePageOutput, error) {
	result, err := s.repo.FindByFilter(ctx, filter, normalizePage(page))
	if err != nil {
		return nil, err
	}
	return s.toPageOutput(ctx, result)
}

func (s *VehicleService) SearchByPrice(ctx context.Context, minBRL, maxBRL *decimal.Decimal, page ports.Page) (*ports.VehiclePageOutput, error) {
	var minUSD, maxUSD *decimal.Decimal

	if minBRL != nil {
		v, err := s.exchange.ConvertBRLToUSD(ctx, *minBRL)
		if err != nil {
			return nil, err
		}
		minUSD = &v
	}
	if maxBRL != nil {
		v, err := s.exchange.ConvertBRLToUSD(ctx, *maxBRL)
		if err != nil {
			return nil, err
		}
		maxUSD = &v
	}

	result, err := s.repo.FindByPriceRange(ctx, minUSD, maxUSD, normalizePage(page))
	if err != nil {
		return nil, err
	}
	return s.toPageOutput(ctx, result)
}

func (s *VehicleService) Get(ctx context.Context, id string) (*ports.VehicleOutput, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toOutput(ctx, vehicle)
}

func (s *VehicleService) Create(ctx context.Context, input ports.CreateVehicleInput) (*ports.VehicleOutput, error) {
	plate := strings.ToUpper(input.Plate)

	taken, err := s.repo.ExistsByPlate(ctx, plate, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicatePlate
	}

	priceUSD, err := s.exchange.ConvertBRLToUSD(ctx, input.PriceBRL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vehicle := &domain.Vehicle{
		Brand:     input.Brand,
		Model:     input.Model,
		Year:      input.Year,
		Color:     input.Color,
		Plate:     plate,
		PriceUSD:  priceUSD,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	metrics.VehicleWritesTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("id", created.ID).Str("plate", created.Plate).Msg("vehicle created")

	return s.toOutput(ctx, created)
}

func (s *VehicleService) Update(ctx context.Context, id string, input ports.CreateVehicleInput) (*ports.VehicleOutput, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plate := strings.ToUpper(input.Plate)
	taken, err := s.repo.ExistsByPlate(ctx, plate, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicatePlate
	}

	priceUSD, err := s.exchange.ConvertBRLToUSD(ctx, input.PriceBRL)
	if err != nil {
		return nil, err
	}

	vehicle.Brand = input.Brand
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	vehicle.Color = input.Color
	vehicle.Plate = plate
	vehicle.PriceUSD = priceUSD
	vehicle.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	metrics.VehicleWritesTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("id", id).Msg("vehicle updated")

	return s.toOutput(ctx, updated)
}

func (s *VehicleService) Patch(ctx context.Context, id string, input ports.PatchVehicleInput) (*ports.VehicleOutput, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Brand != nil {
		vehicle.Brand = *input.Brand
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.Plate != nil {
		plate := strings.ToUpper(*input.Plate)
		taken, err := s.repo.ExistsByPlate(ctx, plate, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicatePlate
		}
		vehicle.Plate = plate
	}
	if input.PriceBRL != nil {
		priceUSD, err := s.exchange.ConvertBRLToUSD(ctx, *input.PriceBRL)
		if err != nil {
			return nil, err
		}
		vehicle.PriceUSD = priceUSD
	}
	vehicle.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	metrics.VehicleWritesTotal.WithLabelValues("patch").Inc()
	s.logger.Info().Str("id", id).Msg("vehicle patched")

	return s.toOutput(ctx, updated)
}

// Delete is a soft delete: the vehicle stays in storage with active=false
// and disappears from every read path.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	vehicle.Active = false
	vehicle.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.Update(ctx, vehicle); err != nil {
		return err
	}

	metrics.VehicleWritesTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("id", id).Msg("vehicle soft-deleted")
	return nil
}

func (s *VehicleService) BrandReport(ctx context.Context) ([]domain.BrandCount, error) {
	return s.repo.CountByBrand(ctx)
}

func (s *VehicleService) toOutput(ctx context.Context, v *domain.Vehicle) (*ports.VehicleOutput, error) {
	priceBRL, err := s.exchange.ConvertUSDToBRL(ctx, v.PriceUSD)
	if err != nil {
		return nil, err
	}

	return &ports.VehicleOutput{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		Plate:     v.Plate,
		PriceUSD:  v.PriceUSD,
		PriceBRL:  priceBRL,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}, nil
}

func (s *VehicleService) toPageOutput(ctx context.Context, page *ports.VehiclePage) (*ports.VehiclePageOutput, error) {
	items := make([]ports.VehicleOutput, 0, len(page.Items))
	for _, v := range page.Items {
		out, err := s.toOutput(ctx, v)
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}

	return &ports.VehiclePageOutput{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

func normalizePage(page ports.Page) ports.Page {
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Size < 1 || page.Size > 100 {
		page.Size = 20
	}
	return page
}
