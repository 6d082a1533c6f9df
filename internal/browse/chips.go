package browse

import (
	"strconv"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// Facet identifies one removable filter dimension.
type Facet string

const (
	FacetCategory Facet = "category"
	FacetRegion   Facet = "region"
	FacetPrice    Facet = "price"
	FacetVerified Facet = "verified"
)

// Locale selects the language of fixed chip labels. The full i18n
// string tables live in the rendering layer; the engine only knows the
// two labels it has to produce itself.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleAmharic Locale = "am"
)

// Chip is a removable token representing one active filter facet. The
// facet is the removal identity; the label is what the UI shows.
type Chip struct {
	Facet Facet  `json:"facet"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ActiveChips derives zero or more chips from the active facets. The
// free-text search term deliberately has no chip: it is cleared by the
// search box itself, or by Clear.
func ActiveChips(f domain.FilterState, loc Locale) []Chip {
	var chips []Chip
	if f.Category != "" && f.Category != domain.All {
		chips = append(chips, Chip{Facet: FacetCategory, Label: f.Category, Value: f.Category})
	}
	if f.Region != "" && f.Region != domain.All {
		chips = append(chips, Chip{Facet: FacetRegion, Label: f.Region, Value: f.Region})
	}
	if f.PriceRange.IsActive() {
		label := priceLabel(f.PriceRange, loc)
		chips = append(chips, Chip{Facet: FacetPrice, Label: label, Value: label})
	}
	if f.VerifiedOnly {
		label := "Verified farmers"
		if loc == LocaleAmharic {
			label = "የተረጋገጡ አርሶ አደሮች"
		}
		chips = append(chips, Chip{Facet: FacetVerified, Label: label, Value: "true"})
	}
	return chips
}

func priceLabel(pr domain.PriceRange, loc Locale) string {
	birr := "ETB"
	if loc == LocaleAmharic {
		birr = "ብር"
	}
	switch {
	case pr.HasMin && pr.HasMax:
		return formatPrice(pr.Min) + " - " + formatPrice(pr.Max) + " " + birr
	case pr.HasMin:
		return formatPrice(pr.Min) + "+ " + birr
	default:
		return "0 - " + formatPrice(pr.Max) + " " + birr
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RemoveChip clears exactly one facet, leaving every other facet (and
// the search term) untouched.
func RemoveChip(f domain.FilterState, facet Facet) domain.FilterState {
	switch facet {
	case FacetCategory:
		f.Category = domain.All
	case FacetRegion:
		f.Region = domain.All
	case FacetPrice:
		f.PriceRange = domain.PriceRange{}
	case FacetVerified:
		f.VerifiedOnly = false
	}
	return f
}

// Clear resets every facet to its default and drops the search term.
func Clear(domain.FilterState) domain.FilterState {
	return domain.NewFilterState()
}
