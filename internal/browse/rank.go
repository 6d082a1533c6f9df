package browse

import (
	"sort"
	"strings"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// ProximityScore weighs buyer/listing location overlap: 2 when the
// listing location contains the buyer's woreda, plus 1 when it contains
// the buyer's region. Both are case-insensitive substring tests, so a
// listing matching both scores 3. Used only by the relevance mode.
func ProximityScore(l domain.Listing, buyer domain.Locality) int {
	score := 0
	loc := l.Location
	if loc == "" {
		loc = l.Farmer.Location
	}
	if buyer.Woreda != "" && containsFold(loc, strings.ToLower(buyer.Woreda)) {
		score += 2
	}
	if buyer.Region != "" && containsFold(loc, strings.ToLower(buyer.Region)) {
		score++
	}
	return score
}

// Sort orders listings under the given mode. It is pure and stable:
// the input is copied, and ties keep their prior relative order unless
// the mode defines a tie-break.
func Sort(listings []domain.Listing, mode domain.SortMode, buyer domain.Locality) []domain.Listing {
	out := make([]domain.Listing, len(listings))
	copy(out, listings)

	switch mode {
	case domain.SortPriceLowHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PricePerUnit < out[j].PricePerUnit
		})
	case domain.SortPriceHighLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PricePerUnit > out[j].PricePerUnit
		})
	case domain.SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Farmer.Rating > out[j].Farmer.Rating
		})
	case domain.SortFreshness:
		// Recent harvests first, listings without a timestamp last.
		sort.SliceStable(out, func(i, j int) bool {
			if out[j].CreatedAt.IsZero() {
				return !out[i].CreatedAt.IsZero()
			}
			if out[i].CreatedAt.IsZero() {
				return false
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case domain.SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID > out[j].ID
		})
	case domain.SortRecommended:
		sort.SliceStable(out, byRecency(out))
	default: // relevance
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := ProximityScore(out[i], buyer), ProximityScore(out[j], buyer)
			if si != sj {
				return si > sj
			}
			// Proximity dominates; recency only breaks ties.
			if !out[i].CreatedAt.IsZero() && !out[j].CreatedAt.IsZero() {
				if out[i].CreatedAt.Equal(out[j].CreatedAt) {
					return false
				}
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].ID > out[j].ID
		})
	}
	return out
}

// byRecency is the pure-recency ordering behind the "Recommended" slot.
// It ignores proximity entirely.
func byRecency(out []domain.Listing) func(i, j int) bool {
	return func(i, j int) bool {
		ti, tj := out[i].CreatedAt, out[j].CreatedAt
		if !ti.IsZero() && !tj.IsZero() && !ti.Equal(tj) {
			return ti.After(tj)
		}
		if ti.IsZero() != tj.IsZero() {
			return !ti.IsZero()
		}
		return out[i].ID > out[j].ID
	}
}
