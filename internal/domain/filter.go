package domain

import (
	"errors"
	"fmt"
	"math"
)

// All is the sentinel facet value meaning "no narrowing" for the
// category and region facets.
const All = "all"

var (
	ErrNegativePrice  = errors.New("price bound must not be negative")
	ErrInvertedBounds = errors.New("price minimum exceeds maximum")
)

// PriceRange is a half-open narrowing on price per unit. An absent
// bound defaults to 0 (min) or +infinity (max).
type PriceRange struct {
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
	HasMin bool    `json:"has_min,omitempty"`
	HasMax bool    `json:"has_max,omitempty"`
}

// NewPriceRange builds a validated price range. A nil pointer means the
// bound is absent.
func NewPriceRange(min, max *float64) (PriceRange, error) {
	var pr PriceRange
	if min != nil {
		if *min < 0 {
			return PriceRange{}, ErrNegativePrice
		}
		pr.Min, pr.HasMin = *min, true
	}
	if max != nil {
		if *max < 0 {
			return PriceRange{}, ErrNegativePrice
		}
		pr.Max, pr.HasMax = *max, true
	}
	if pr.HasMin && pr.HasMax && pr.Min > pr.Max {
		return PriceRange{}, ErrInvertedBounds
	}
	return pr, nil
}

// Bounds returns the effective numeric bounds with defaults applied.
func (pr PriceRange) Bounds() (min, max float64) {
	min = 0
	max = math.Inf(1)
	if pr.HasMin {
		min = pr.Min
	}
	if pr.HasMax {
		max = pr.Max
	}
	return min, max
}

// IsActive reports whether either bound is set.
func (pr PriceRange) IsActive() bool {
	return pr.HasMin || pr.HasMax
}

// FilterState holds the buyer's narrowing criteria for one browsing
// session. It is ephemeral and never persisted.
type FilterState struct {
	SearchText   string     `json:"search_text,omitempty"`
	Category     string     `json:"category"`
	Region       string     `json:"region"`
	PriceRange   PriceRange `json:"price_range,omitempty"`
	VerifiedOnly bool       `json:"verified_only,omitempty"`
}

// NewFilterState returns the empty/"all" defaults.
func NewFilterState() FilterState {
	return FilterState{Category: All, Region: All}
}

// IsEmpty reports whether the state is the identity transform.
func (f FilterState) IsEmpty() bool {
	return f.SearchText == "" &&
		(f.Category == "" || f.Category == All) &&
		(f.Region == "" || f.Region == All) &&
		!f.PriceRange.IsActive() &&
		!f.VerifiedOnly
}

// SortMode selects one of the seven ranking strategies. Unknown wire
// values are rejected at parse time instead of being silently ignored.
type SortMode string

const (
	SortRelevance    SortMode = "relevance"
	SortPriceLowHigh SortMode = "priceLowHigh"
	SortPriceHighLow SortMode = "priceHighLow"
	SortRating       SortMode = "rating"
	SortFreshness    SortMode = "freshness"
	SortNewest       SortMode = "newest"
	SortRecommended  SortMode = "recommended"
)

// ParseSortMode validates a wire value. The empty string maps to the
// relevance default.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortPriceLowHigh, SortPriceHighLow, SortRating, SortFreshness, SortNewest, SortRecommended:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}
