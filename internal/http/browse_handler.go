package http

import (
	"net/http"
	"strconv"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/auth"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/browse"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/catalog"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

const defaultRecommended = 4

// BrowseHandler serves the listing discovery surface: filtered and
// ranked listings plus the recency-only recommended strip.
type BrowseHandler struct {
	catalog *catalog.Catalog
}

func NewBrowseHandler(c *catalog.Catalog) *BrowseHandler {
	return &BrowseHandler{catalog: c}
}

type listingsResponse struct {
	Listings []domain.Listing `json:"listings"`
	Total    int              `json:"total"`
	Chips    []browse.Chip    `json:"chips"`
	Sort     domain.SortMode  `json:"sort"`
}

func (h *BrowseHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	mode, err := domain.ParseSortMode(r.URL.Query().Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_sort", err.Error())
		return
	}

	buyer := domain.Locality{}
	if u := auth.FromContext(r.Context()); u != nil {
		buyer = domain.Locality{Region: u.Region, Woreda: u.Woreda}
	}

	listings := h.catalog.Load(r.Context())
	filtered := browse.Apply(listings, filters)
	ranked := browse.Sort(filtered, mode, buyer)

	respondJSON(w, http.StatusOK, listingsResponse{
		Listings: ranked,
		Total:    len(ranked),
		Chips:    browse.ActiveChips(filters, localeFromQuery(r)),
		Sort:     mode,
	})
}

func (h *BrowseHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	n := defaultRecommended
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		n = parsed
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": h.catalog.Recommended(r.Context(), n),
	})
}

// filtersFromQuery builds a validated FilterState. Invalid facet
// values are rejected here rather than silently ignored downstream.
func filtersFromQuery(r *http.Request) (domain.FilterState, error) {
	q := r.URL.Query()

	f := domain.NewFilterState()
	f.SearchText = q.Get("q")
	if v := q.Get("category"); v != "" {
		f.Category = v
	}
	if v := q.Get("region"); v != "" {
		f.Region = v
	}
	f.VerifiedOnly = q.Get("verified") == "true"

	min, err := priceParam(q.Get("price_min"))
	if err != nil {
		return domain.FilterState{}, err
	}
	max, err := priceParam(q.Get("price_max"))
	if err != nil {
		return domain.FilterState{}, err
	}
	pr, err := domain.NewPriceRange(min, max)
	if err != nil {
		return domain.FilterState{}, err
	}
	f.PriceRange = pr
	return f, nil
}

func priceParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func localeFromQuery(r *http.Request) browse.Locale {
	if r.URL.Query().Get("lang") == "am" {
		return browse.LocaleAmharic
	}
	return browse.LocaleEnglish
}
