package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/auth"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/bus"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/cart"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/catalog"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/order"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	listings := catalog.New(fixedSource{listings: []domain.Listing{
		{ID: 1, Name: "Teff", PricePerUnit: 85, Category: "teff", Location: "Debre Zeit, Oromia", Farmer: domain.Farmer{ID: 1}},
	}}, nil)

	signals := bus.NewMemoryBus()
	manager := cart.NewManager(newMemSnapshots(), signals, listings, nil)
	t.Cleanup(manager.Close)

	coordinator := order.NewCoordinator(&sinkStub{}, nil, nil)

	dir := auth.StaticDirectory{
		"buyer-token": &auth.User{ID: "buyer-1", Region: "Oromia"},
	}
	return NewRouter(
		NewBrowseHandler(listings),
		NewCartHandler(manager, coordinator, signals),
		dir,
		5*time.Second,
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, jsonBody(t, body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ListingsNeedNoAuth(t *testing.T) {
	router := newTestRouter(t)

	// Catalog needs a load before cart adds resolve listings; the
	// browse call does it.
	rec := doJSON(t, router, "GET", "/api/v1/listings", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CartLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Warm the catalog so the cart resolver knows listing 1.
	require.Equal(t, http.StatusOK,
		doJSON(t, router, "GET", "/api/v1/listings", "", nil).Code)

	rec := doJSON(t, router, "POST", "/api/v1/cart/items", "buyer-token",
		addItemRequest{ListingID: 1, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	// Replace the quantity through the URL-param route.
	rec = doJSON(t, router, "PUT", "/api/v1/cart/items/1", "buyer-token",
		updateQuantityRequest{Quantity: 7})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 7, resp.Lines[0].Quantity)

	// Quantity zero removes the line.
	rec = doJSON(t, router, "PUT", "/api/v1/cart/items/1", "buyer-token",
		updateQuantityRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Lines)

	// Add again, then delete through the URL-param route.
	doJSON(t, router, "POST", "/api/v1/cart/items", "buyer-token",
		addItemRequest{ListingID: 1, Quantity: 1})
	rec = doJSON(t, router, "DELETE", "/api/v1/cart/items/1", "buyer-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Lines)
}

func TestRouter_CartRejectsAnonymous(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, "GET", "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_BadListingIDParam(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, "PUT", "/api/v1/cart/items/zero", "buyer-token",
		updateQuantityRequest{Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid_listing_id", resp.Code)
}
