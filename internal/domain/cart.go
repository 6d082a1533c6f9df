package domain

// CartLine is one listing's pending quantity within the buyer's cart.
// Display fields are snapshotted at add time and are not live-updated
// when the source listing changes.
type CartLine struct {
	ListingID     int64   `json:"listing_id"`
	Quantity      int     `json:"quantity"`
	Name          string  `json:"name"`
	LocalizedName string  `json:"localized_name,omitempty"`
	Image         string  `json:"image,omitempty"`
	PricePerUnit  float64 `json:"price_per_unit"`
}

// LineTotal returns the line's contribution to the cart total.
func (l CartLine) LineTotal() float64 {
	return l.PricePerUnit * float64(l.Quantity)
}
