package handler

import "github.com/tinnova/vehicle-inventory/internal/core/ports"

func toVehicleResponse(out *ports.VehicleOutput) vehicleResponse {
	return vehicleResponse{
		ID:        out.ID,
		Brand:     out.Brand,
		Model:     out.Model,
		Year:      out.Year,
		Color:     out.Color,
		Plate:     out.Plate,
		PriceUSD:  out.PriceUSD,
		PriceBRL:  out.PriceBRL,
		CreatedAt: out.CreatedAt,
		UpdatedAt: out.UpdatedAt,
	}
}

func toVehiclePageResponse(page *ports.VehiclePageOutput) vehiclePageResponse {
	items := make([]vehicleResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toVehicleResponse(&page.Items[i]))
	}
	return vehiclePageResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
