package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/auth"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/bus"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/cart"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/order"
)

// CartHandler serves the cart and checkout endpoints. All of them
// require an authenticated buyer.
type CartHandler struct {
	carts       *cart.Manager
	coordinator *order.Coordinator
	signals     bus.Bus
}

func NewCartHandler(carts *cart.Manager, coordinator *order.Coordinator, signals bus.Bus) *CartHandler {
	return &CartHandler{carts: carts, coordinator: coordinator, signals: signals}
}

type addItemRequest struct {
	ListingID int64 `json:"listing_id"`
	Quantity  int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type placeOrderRequest struct {
	Notes       string  `json:"notes,omitempty"`
	DeliveryFee float64 `json:"delivery_fee,omitempty"`
}

type cartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}
	store := h.carts.For(r.Context(), user.ID)
	respondCart(w, store)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ListingID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_listing_id", "listing_id must be positive")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	store := h.carts.For(r.Context(), user.ID)
	store.Add(r.Context(), req.ListingID, req.Quantity)
	respondCart(w, store)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	listingID, err := listingIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_listing_id", "listing_id must be a positive integer")
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	store := h.carts.For(r.Context(), user.ID)
	// Quantity zero (or less) removes the line; it is never stored.
	store.UpdateQuantity(r.Context(), listingID, req.Quantity)
	respondCart(w, store)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	listingID, err := listingIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_listing_id", "listing_id must be a positive integer")
		return
	}

	store := h.carts.For(r.Context(), user.ID)
	store.Remove(r.Context(), listingID)
	respondCart(w, store)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}
	store := h.carts.For(r.Context(), user.ID)
	store.Clear(r.Context())
	respondCart(w, store)
}

// OpenCart publishes the deep-link signal asking the cart view to
// open, supporting "add to cart then jump straight to checkout" from
// other pages.
func (h *CartHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}
	sig := bus.Signal{Kind: bus.CartOpen, BuyerID: user.ID}
	if err := h.signals.Publish(r.Context(), sig); err != nil {
		respondError(w, http.StatusInternalServerError, "signal_failed", "could not signal cart view")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "signaled"})
}

func (h *CartHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())

	var req placeOrderRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	var store *cart.Store
	if user != nil {
		store = h.carts.For(r.Context(), user.ID)
	}

	result, err := h.coordinator.PlaceOrder(r.Context(), user, store, order.Options{
		Notes:       req.Notes,
		DeliveryFee: req.DeliveryFee,
	})
	switch {
	case errors.Is(err, order.ErrNotAuthenticated):
		w.Header().Set("Location", result.Redirect)
		respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in to place an order")
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case err != nil:
		// Cart is preserved for retry; the failure is user-visible.
		respondError(w, http.StatusBadGateway, "order_failed", err.Error())
	default:
		respondJSON(w, http.StatusCreated, result)
	}
}

func listingIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "listing_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid listing id")
	}
	return id, nil
}

func respondCart(w http.ResponseWriter, store *cart.Store) {
	respondJSON(w, http.StatusOK, cartResponse{
		Lines:     store.Lines(),
		Total:     store.Total(),
		ItemCount: store.Count(),
	})
}
