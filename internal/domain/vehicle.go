package domain

// Vehicle is a catalog snapshot as returned by the remote catalog service.
// Prices are carried in cents.
type Vehicle struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	Year              int    `json:"year,omitempty"`
	Color             string `json:"color,omitempty"`
	PriceCents        int64  `json:"priceCents"`
	QuantityAvailable int    `json:"quantityAvailable"`
	Description       string `json:"description,omitempty"`
	ImageURL          string `json:"imageUrl,omitempty"`
	Type              string `json:"type,omitempty"`
	FuelType          string `json:"fuelType,omitempty"`
}

// VehiclePage is one page of catalog results plus pagination metadata.
type VehiclePage struct {
	Vehicles   []Vehicle `json:"vehicles"`
	PageNumber int       `json:"pageNumber"`
	TotalPages int       `json:"totalPages"`
	TotalItems int64     `json:"totalItems"`
}
