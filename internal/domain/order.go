package domain

import "time"

// OrderItem is one {vehicleId, quantity} pair inside an order request.
type OrderItem struct {
	VehicleID int64 `json:"vehicleId"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the payload sent to the remote order-creation endpoint.
// Items are snapshotted from the cart once at submission time.
type OrderRequest struct {
	ShippingAddress string      `json:"shippingAddress"`
	Items           []OrderItem `json:"items"`
}

// OrderLine is one line of a placed order as reported by the order
// service.
type OrderLine struct {
	VehicleID      int64  `json:"vehicleId"`
	VehicleName    string `json:"vehicleName,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// Order is a placed order record from the order history endpoint.
type Order struct {
	ID              int64       `json:"id"`
	UserEmail       string      `json:"userEmail,omitempty"`
	ShippingAddress string      `json:"shippingAddress"`
	TotalCents      int64       `json:"totalCents"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	Lines           []OrderLine `json:"lines,omitempty"`
}

// OrderPage is one page of order history plus pagination metadata.
type OrderPage struct {
	Orders     []Order `json:"orders"`
	PageNumber int     `json:"pageNumber"`
	TotalPages int     `json:"totalPages"`
}
