package domain

// CartLine is one aggregated cart entry for a distinct vehicle. Display
// fields and the unit price are copied at add time and not re-fetched.
type CartLine struct {
	VehicleID      int64  `json:"vehicleId"`
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	ImageURL       string `json:"imageUrl,omitempty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// Cart holds cart lines in insertion order. At most one line exists per
// vehicle id.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// TotalCents sums unit price times quantity over all lines.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}
	return total
}

// ItemCount sums line quantities.
func (c Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}
