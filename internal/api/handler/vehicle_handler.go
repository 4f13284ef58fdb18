package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

// VehicleHandler handles HTTP requests for inventory operations. Domain
// errors bubble up to the global error handler; only bind/validation
// problems are rejected here.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// List handles GET /vehicles.
//
// @Summary      List active vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (1-based)"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  vehiclePageResponse
// @Router       /vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehiclePageResponse(page))
}

// Search handles GET /vehicles/search with brand/year/color filters.
//
// @Summary      Search vehicles by attributes
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        brand  query  string  false  "Brand (case-insensitive)"
// @Param        year   query  int     false  "Model year"
// @Param        color  query  string  false  "Color (case-insensitive)"
// @Success      200    {object}  vehiclePageResponse
// @Router       /vehicles/search [get]
func (h *VehicleHandler) Search(c echo.Context) error {
	filter := ports.VehicleFilter{
		Brand: c.QueryParam("brand"),
		Color: c.QueryParam("color"),
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
		}
		filter.Year = year
	}

	page, err := h.service.Search(c.Request().Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehiclePageResponse(page))
}

// SearchByPrice handles GET /vehicles/price. Bounds arrive in BRL and are
// converted against the current rate before the query runs.
//
// @Summary      Search vehicles by BRL price range
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        min  query  number  false  "Minimum price in BRL"
// @Param        max  query  number  false  "Maximum price in BRL"
// @Success      200  {object}  vehiclePageResponse
// @Failure      503  {object}  map[string]string
// @Router       /vehicles/price [get]
func (h *VehicleHandler) SearchByPrice(c echo.Context) error {
	minBRL, err := parsePriceParam(c, "min")
	if err != nil {
		return err
	}
	maxBRL, err := parsePriceParam(c, "max")
	if err != nil {
		return err
	}

	page, err := h.service.SearchByPrice(c.Request().Context(), minBRL, maxBRL, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehiclePageResponse(page))
}

// Get handles GET /vehicles/:id.
//
// @Summary      Get a vehicle by ID
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle ID"
// @Success      200  {object}  vehicleResponse
// @Failure      404  {object}  map[string]string
// @Router       /vehicles/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	out, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(out))
}

// Create handles POST /vehicles.
//
// @Summary      Register a new vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      vehicleRequest  true  "Vehicle payload, price in BRL"
// @Success      201   {object}  vehicleResponse
// @Failure      409   {object}  map[string]string
// @Router       /vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	input, err := bindVehicleRequest(c)
	if err != nil {
		return err
	}

	out, err := h.service.Create(c.Request().Context(), *input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toVehicleResponse(out))
}

// Update handles PUT /vehicles/:id.
//
// @Summary      Replace a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Vehicle ID"
// @Param        body  body      vehicleRequest  true  "Vehicle payload, price in BRL"
// @Success      200   {object}  vehicleResponse
// @Router       /vehicles/{id} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	input, err := bindVehicleRequest(c)
	if err != nil {
		return err
	}

	out, err := h.service.Update(c.Request().Context(), c.Param("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(out))
}

// Patch handles PATCH /vehicles/:id, updating only the provided fields.
//
// @Summary      Partially update a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Vehicle ID"
// @Param        body  body      vehiclePatchRequest  true  "Fields to update"
// @Success      200   {object}  vehicleResponse
// @Router       /vehicles/{id} [patch]
func (h *VehicleHandler) Patch(c echo.Context) error {
	var req vehiclePatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.PriceBRL != nil && req.PriceBRL.Sign() <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price_brl must be greater than zero")
	}

	out, err := h.service.Patch(c.Request().Context(), c.Param("id"), ports.PatchVehicleInput{
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		Color:    req.Color,
		Plate:    req.Plate,
		PriceBRL: req.PriceBRL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(out))
}

// Delete handles DELETE /vehicles/:id (soft delete).
//
// @Summary      Remove a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Param        id  path  string  true  "Vehicle ID"
// @Success      204
// @Router       /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BrandReport handles GET /vehicles/report/brand.
//
// @Summary      Count active vehicles per brand
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  brandCountResponse
// @Router       /vehicles/report/brand [get]
func (h *VehicleHandler) BrandReport(c echo.Context) error {
	report, err := h.service.BrandReport(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]brandCountResponse, 0, len(report))
	for _, row := range report {
		out = append(out, brandCountResponse{Brand: row.Brand, Count: row.Count})
	}
	return c.JSON(http.StatusOK, out)
}

// --- helpers ---

func bindVehicleRequest(c echo.Context) (*ports.CreateVehicleInput, error) {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PriceBRL.Sign() <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "price_brl must be greater than zero")
	}

	return &ports.CreateVehicleInput{
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		Color:    req.Color,
		Plate:    req.Plate,
		PriceBRL: req.PriceBRL,
	}, nil
}

func parsePage(c echo.Context) ports.Page {
	page := ports.Page{Number: 1, Size: 20}
	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.Number = n
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.Size = n
		}
	}
	return page
}

func parsePriceParam(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a decimal number")
	}
	return &d, nil
}
