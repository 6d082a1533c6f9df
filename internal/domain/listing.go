package domain

import "time"

type Farmer struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Phone       string  `json:"phone"`
	IsVerified  bool    `json:"is_verified"`
}

// Listing is a farmer's sellable produce entry. It is immutable once
// fetched; filtering and ranking produce derived slices and never touch
// the source set.
type Listing struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	LocalizedName     string    `json:"localized_name,omitempty"`
	PricePerUnit      float64   `json:"price_per_unit"`
	AvailableQuantity int       `json:"available_quantity"`
	Category          string    `json:"category"`
	Location          string    `json:"location"`
	Image             string    `json:"image,omitempty"`
	Freshness         string    `json:"freshness,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"` // zero for fallback data
	Farmer            Farmer    `json:"farmer"`
}

// Locality is the buyer's location used by the relevance ranking.
// Either field may be empty.
type Locality struct {
	Region string
	Woreda string
}
