package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

type stubVehicleRepo struct {
	vehicles map[string]*domain.Vehicle
	nextID   int
}

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{vehicles: make(map[string]*domain.Vehicle)}
}

func (r *stubVehicleRepo) FindActive(_ context.Context, page ports.Page) (*ports.VehiclePage, error) {
	items := make([]*domain.Vehicle, 0)
	for _, v := range r.vehicles {
		if v.Active {
			clone := *v
			items = append(items, &clone)
		}
	}
	return &ports.VehiclePage{
		Items:      items,
		Page:       page.Number,
		Size:       page.Size,
		TotalItems: int64(len(items)),
		TotalPages: 1,
	}, nil
}

func (r *stubVehicleRepo) FindByFilter(ctx context.Context, _ ports.VehicleFilter, page ports.Page) (*ports.VehiclePage, error) {
	return r.FindActive(ctx, page)
}

func (r *stubVehicleRepo) FindByPriceRange(ctx context.Context, minUSD, maxUSD *decimal.Decimal, page ports.Page) (*ports.VehiclePage, error) {
	items := make([]*domain.Vehicle, 0)
	for _, v := range r.vehicles {
		if !v.Active {
			continue
		}
		if minUSD != nil && v.PriceUSD.LessThan(*minUSD) {
			continue
		}
		if maxUSD != nil && v.PriceUSD.GreaterThan(*maxUSD) {
			continue
		}
		clone := *v
		items = append(items, &clone)
	}
	return &ports.VehiclePage{Items: items, Page: page.Number, Size: page.Size, TotalItems: int64(len(items)), TotalPages: 1}, nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id string) (*domain.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok || !v.Active {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVehicleRepo) ExistsByPlate(_ context.Context, plate, excludeID string) (bool, error) {
	for id, v := range r.vehicles {
		if v.Active && v.Plate == plate && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	r.nextID++
	clone := *vehicle
	clone.ID = strconv.Itoa(r.nextID)
	r.vehicles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubVehicleRepo) Update(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *vehicle
	r.vehicles[vehicle.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubVehicleRepo) CountByBrand(_ context.Context) ([]domain.BrandCount, error) {
	counts := make(map[string]int64)
	for _, v := range r.vehicles {
		if v.Active {
			counts[v.Brand]++
		}
	}
	report := make([]domain.BrandCount, 0, len(counts))
	for brand, n := range counts {
		report = append(report, domain.BrandCount{Brand: brand, Count: n})
	}
	return report, nil
}

// fixedRateExchange converts at a constant rate without providers or cache.
type fixedRateExchange struct {
	rate decimal.Decimal
}

func (e *fixedRateExchange) GetRate(context.Context) (decimal.Decimal, error) {
	return e.rate, nil
}

func (e *fixedRateExchange) ConvertUSDToBRL(_ context.Context, amountUSD decimal.Decimal) (decimal.Decimal, error) {
	return amountUSD.Mul(e.rate).Round(2), nil
}

func (e *fixedRateExchange) ConvertBRLToUSD(_ context.Context, amountBRL decimal.Decimal) (decimal.Decimal, error) {
	return amountBRL.DivRound(e.rate, 2), nil
}

func newVehicleFixture() (*VehicleService, *stubVehicleRepo) {
	repo := newStubVehicleRepo()
	exchange := &fixedRateExchange{rate: decimal.NewFromInt(5)}
	return NewVehicleService(repo, exchange, zerolog.Nop()), repo
}

func carInput(plate string) ports.CreateVehicleInput {
	return ports.CreateVehicleInput{
		Brand:    "Fiat",
		Model:    "Uno",
		Year:     2020,
		Color:    "white",
		Plate:    plate,
		PriceBRL: decimal.RequireFromString("50000.00"),
	}
}

func TestVehicleService_Create_ConvertsPrice(t *testing.T) {
	svc, repo := newVehicleFixture()

	out, err := svc.Create(context.Background(), carInput("abc1d23"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// 50000 BRL at rate 5 → 10000 USD stored; BRL recomputed on read.
	if out.PriceUSD.String() != "10000" {
		t.Fatalf("expected 10000 USD stored, got %s", out.PriceUSD)
	}
	if out.PriceBRL.String() != "50000" {
		t.Fatalf("expected 50000 BRL on read, got %s", out.PriceBRL)
	}
	if out.Plate != "ABC1D23" {
		t.Fatalf("expected plate uppercased, got %s", out.Plate)
	}

	stored := repo.vehicles[out.ID]
	if stored == nil || !stored.Active {
		t.Fatalf("vehicle not stored active")
	}
}

func TestVehicleService_Create_DuplicatePlate(t *testing.T) {
	svc, _ := newVehicleFixture()

	if _, err := svc.Create(context.Background(), carInput("ABC1D23")); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	// Plates compare after uppercasing.
	if _, err := svc.Create(context.Background(), carInput("abc1d23")); !errors.Is(err, domain.ErrDuplicatePlate) {
		t.Fatalf("expected ErrDuplicatePlate, got %v", err)
	}
}

func TestVehicleService_Patch_PriceOnly(t *testing.T) {
	svc, _ := newVehicleFixture()

	created, err := svc.Create(context.Background(), carInput("ABC1D23"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newPrice := decimal.RequireFromString("60000.00")
	out, err := svc.Patch(context.Background(), created.ID, ports.PatchVehicleInput{PriceBRL: &newPrice})
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}

	if out.PriceUSD.String() != "12000" {
		t.Fatalf("expected 12000 USD after patch, got %s", out.PriceUSD)
	}
	if out.Brand != "Fiat" || out.Plate != "ABC1D23" {
		t.Fatalf("untouched fields changed: %+v", out)
	}
}

func TestVehicleService_Delete_SoftDeletes(t *testing.T) {
	svc, repo := newVehicleFixture()

	created, err := svc.Create(context.Background(), carInput("ABC1D23"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if repo.vehicles[created.ID].Active {
		t.Fatalf("expected vehicle marked inactive")
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound after delete, got %v", err)
	}

	// The freed plate can be registered again.
	if _, err := svc.Create(context.Background(), carInput("ABC1D23")); err != nil {
		t.Fatalf("re-register after soft delete failed: %v", err)
	}
}

func TestVehicleService_SearchByPrice_ConvertsBounds(t *testing.T) {
	svc, _ := newVehicleFixture()

	if _, err := svc.Create(context.Background(), carInput("AAA1A11")); err != nil { // 10000 USD
		t.Fatalf("Create returned error: %v", err)
	}
	cheap := carInput("BBB2B22")
	cheap.PriceBRL = decimal.RequireFromString("10000.00") // 2000 USD
	if _, err := svc.Create(context.Background(), cheap); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	min := decimal.RequireFromString("40000.00") // 8000 USD
	page, err := svc.SearchByPrice(context.Background(), &min, nil, ports.Page{Number: 1, Size: 20})
	if err != nil {
		t.Fatalf("SearchByPrice returned error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Plate != "AAA1A11" {
		t.Fatalf("expected only the expensive vehicle, got %+v", page.Items)
	}
}

func TestVehicleService_BrandReport(t *testing.T) {
	svc, _ := newVehicleFixture()

	for i, plate := range []string{"AAA1A11", "BBB2B22", "CCC3C33"} {
		input := carInput(plate)
		if i == 2 {
			input.Brand = "Volkswagen"
		}
		if _, err := svc.Create(context.Background(), input); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	report, err := svc.BrandReport(context.Background())
	if err != nil {
		t.Fatalf("BrandReport returned error: %v", err)
	}

	counts := make(map[string]int64)
	for _, row := range report {
		counts[row.Brand] = row.Count
	}
	if counts["Fiat"] != 2 || counts["Volkswagen"] != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
