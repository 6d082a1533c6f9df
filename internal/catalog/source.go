// Package catalog fetches and caches the browsable listing set. The
// external marketplace service is the primary source; a built-in
// fallback dataset keeps the shop stocked when that service is
// unreachable or returns garbage.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// Placeholders applied while normalizing records with missing fields.
const (
	PlaceholderAvatar    = "https://cdn.ethiofarmers.example/avatars/default.png"
	PlaceholderPhone     = "+251 900 000 000"
	PlaceholderFreshness = "Fresh from farm"
)

var ErrEmptyPayload = errors.New("listing service returned no listings")

// Source produces the candidate listing set.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Listing, error)
}

// HTTPSource calls the external listing service and normalizes its
// loosely-shaped records into the canonical Listing form.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{url: url, client: client}
}

// rawListing tolerates the source's heterogeneous field types: prices
// arrive as numbers or strings, avatar/phone may be absent.
type rawListing struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	LocalizedName     string          `json:"name_am"`
	PricePerUnit      json.RawMessage `json:"price_per_unit"`
	AvailableQuantity int             `json:"available_quantity"`
	Category          string          `json:"category"`
	Location          string          `json:"location"`
	Image             string          `json:"image"`
	Freshness         string          `json:"freshness"`
	CreatedAt         *time.Time      `json:"created_at"`
	Farmer            struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Location    string  `json:"location"`
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
		Phone       string  `json:"phone"`
		Avatar      string  `json:"avatar"`
		IsVerified  bool    `json:"is_verified"`
	} `json:"farmer"`
}

type listingEnvelope struct {
	Listings []rawListing `json:"listings"`
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build listing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read listing response: %w", err)
	}

	raws, err := decodeListings(body)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(raws))
	for _, r := range raws {
		if l, ok := normalize(r); ok {
			listings = append(listings, l)
		}
	}
	if len(listings) == 0 {
		return nil, ErrEmptyPayload
	}
	return listings, nil
}

// decodeListings accepts either a bare JSON array or the
// {"listings": [...]} envelope the service sometimes wraps it in.
func decodeListings(body []byte) ([]rawListing, error) {
	var raws []rawListing
	if err := json.Unmarshal(body, &raws); err == nil {
		return raws, nil
	}
	var env listingEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed listing payload: %w", err)
	}
	return env.Listings, nil
}

// normalize converts one raw record to the canonical shape, applying
// placeholders for missing fields. Records without an id or name are
// dropped rather than failing the whole fetch.
func normalize(r rawListing) (domain.Listing, bool) {
	if r.ID == 0 || r.Name == "" {
		return domain.Listing{}, false
	}

	price := parsePrice(r.PricePerUnit)
	if price < 0 {
		price = 0
	}
	qty := r.AvailableQuantity
	if qty < 0 {
		qty = 0
	}

	l := domain.Listing{
		ID:                r.ID,
		Name:              r.Name,
		LocalizedName:     r.LocalizedName,
		PricePerUnit:      price,
		AvailableQuantity: qty,
		Category:          r.Category,
		Location:          r.Location,
		Image:             r.Image,
		Freshness:         r.Freshness,
		Farmer: domain.Farmer{
			ID:          r.Farmer.ID,
			Name:        r.Farmer.Name,
			Location:    r.Farmer.Location,
			Rating:      r.Farmer.Rating,
			ReviewCount: r.Farmer.ReviewCount,
			Phone:       r.Farmer.Phone,
			IsVerified:  r.Farmer.IsVerified,
		},
	}
	if r.CreatedAt != nil {
		l.CreatedAt = *r.CreatedAt
	}
	if l.Freshness == "" {
		l.Freshness = PlaceholderFreshness
	}
	if l.Farmer.Phone == "" {
		l.Farmer.Phone = PlaceholderPhone
	}
	if l.Image == "" {
		l.Image = PlaceholderAvatar
	}
	if l.Location == "" {
		l.Location = l.Farmer.Location
	}
	return l, true
}

// parsePrice handles numeric and quoted-string prices. Anything
// unparseable becomes zero.
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err2 := strconv.ParseFloat(s, 64); err2 == nil {
			return v
		}
	}
	return 0
}
