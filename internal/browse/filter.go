// Package browse implements the buyer-side listing discovery engine:
// multi-criteria filtering, the seven ranking strategies, and the
// active-filter chip derivation the UI consumes.
package browse

import (
	"strings"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// Apply narrows listings to those passing every active facet (logical
// AND). It is pure: the input slice is never mutated and the result is
// always a fresh slice. Empty filters are the identity transform.
func Apply(listings []domain.Listing, f domain.FilterState) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l domain.Listing, f domain.FilterState) bool {
	if f.SearchText != "" && !matchesSearch(l, f.SearchText) {
		return false
	}
	if f.Category != "" && f.Category != domain.All && l.Category != f.Category {
		return false
	}
	if f.Region != "" && f.Region != domain.All && !matchesRegion(l, f.Region) {
		return false
	}
	if f.PriceRange.IsActive() {
		min, max := f.PriceRange.Bounds()
		if l.PricePerUnit < min || l.PricePerUnit > max {
			return false
		}
	}
	if f.VerifiedOnly && !l.Farmer.IsVerified {
		return false
	}
	return true
}

// matchesSearch is a case-insensitive substring test against the
// listing name, its localized name, the farmer name and the farmer
// location.
func matchesSearch(l domain.Listing, term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.Name), t) ||
		strings.Contains(strings.ToLower(l.LocalizedName), t) ||
		strings.Contains(strings.ToLower(l.Farmer.Name), t) ||
		strings.Contains(strings.ToLower(l.Farmer.Location), t)
}

// matchesRegion accepts equality or containment of the selected region
// token inside either location string. Location fields are free text,
// so this is a deliberately coarse heuristic: "Oromia District X"
// matches any "Oromia"-containing selection regardless of distance.
func matchesRegion(l domain.Listing, region string) bool {
	r := strings.ToLower(region)
	return containsFold(l.Location, r) || containsFold(l.Farmer.Location, r)
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
