package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/auth"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/bus"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/cart"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/order"
)

type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]domain.CartLine
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: make(map[string][]domain.CartLine)}
}

func (m *memSnapshots) Load(_ context.Context, buyerID string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.data[buyerID]
	if !ok {
		return nil, cart.ErrSnapshotNotFound
	}
	return append([]domain.CartLine(nil), lines...), nil
}

func (m *memSnapshots) Save(_ context.Context, buyerID string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[buyerID] = append([]domain.CartLine(nil), lines...)
	return nil
}

func (m *memSnapshots) Delete(_ context.Context, buyerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, buyerID)
	return nil
}

type mapResolver map[int64]domain.Listing

func (r mapResolver) Get(id int64) (domain.Listing, bool) {
	l, ok := r[id]
	return l, ok
}

type sinkStub struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *sinkStub) Submit(context.Context, order.Request) (*order.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &order.Confirmation{OrderID: "ord-1", Status: "confirmed"}, nil
}

func (s *sinkStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type cartFixture struct {
	handler *CartHandler
	signals *bus.MemoryBus
	sink    *sinkStub
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	resolver := mapResolver{
		1: {ID: 1, Name: "Teff", PricePerUnit: 85},
		2: {ID: 2, Name: "Coffee", PricePerUnit: 320},
	}
	signals := bus.NewMemoryBus()
	manager := cart.NewManager(newMemSnapshots(), signals, resolver, nil)
	t.Cleanup(manager.Close)

	sink := &sinkStub{}
	coordinator := order.NewCoordinator(sink, nil, nil)
	return &cartFixture{
		handler: NewCartHandler(manager, coordinator, signals),
		signals: signals,
		sink:    sink,
	}
}

func authed(req *http.Request) *http.Request {
	u := &auth.User{ID: "buyer-1", Name: "Almaz", Region: "Oromia"}
	return req.WithContext(auth.WithUser(req.Context(), u))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (f *cartFixture) addItem(t *testing.T, listingID int64, qty int) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := authed(httptest.NewRequest("POST", "/api/v1/cart/items",
		jsonBody(t, addItemRequest{ListingID: listingID, Quantity: qty})))
	f.handler.AddItem(rec, req)
	return rec
}

func TestAddItem_RequiresAuth(t *testing.T) {
	f := newCartFixture(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/cart/items",
		jsonBody(t, addItemRequest{ListingID: 1, Quantity: 2}))
	f.handler.AddItem(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddItem_MergesDuplicates(t *testing.T) {
	f := newCartFixture(t)

	f.addItem(t, 1, 2)
	rec := f.addItem(t, 1, 3)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 5, resp.Lines[0].Quantity)
}

func TestAddItem_ValidatesInput(t *testing.T) {
	f := newCartFixture(t)

	rec := httptest.NewRecorder()
	f.handler.AddItem(rec, authed(httptest.NewRequest("POST", "/api/v1/cart/items",
		jsonBody(t, addItemRequest{ListingID: 0, Quantity: 2}))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	f.handler.AddItem(rec, authed(httptest.NewRequest("POST", "/api/v1/cart/items",
		jsonBody(t, addItemRequest{ListingID: 1, Quantity: 0}))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	f.handler.AddItem(rec, authed(httptest.NewRequest("POST", "/api/v1/cart/items",
		bytes.NewReader([]byte("{broken")))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCart_TotalScenario(t *testing.T) {
	f := newCartFixture(t)

	f.addItem(t, 1, 2)
	f.addItem(t, 2, 1)

	rec := httptest.NewRecorder()
	f.handler.GetCart(rec, authed(httptest.NewRequest("GET", "/api/v1/cart", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.Equal(t, 490.0, resp.Total)
	assert.Equal(t, 3, resp.ItemCount)
}

func TestOpenCart_PublishesDeepLinkSignal(t *testing.T) {
	f := newCartFixture(t)
	ch, cancel := f.signals.Subscribe(bus.CartOpen)
	defer cancel()

	rec := httptest.NewRecorder()
	f.handler.OpenCart(rec, authed(httptest.NewRequest("POST", "/api/v1/cart/open", nil)))

	require.Equal(t, http.StatusAccepted, rec.Code)
	select {
	case sig := <-ch:
		assert.Equal(t, bus.CartOpen, sig.Kind)
		assert.Equal(t, "buyer-1", sig.BuyerID)
	case <-time.After(time.Second):
		t.Fatal("no cart.open signal")
	}
}

func TestPlaceOrder_UnauthenticatedRedirects(t *testing.T) {
	f := newCartFixture(t)

	rec := httptest.NewRecorder()
	f.handler.PlaceOrder(rec, httptest.NewRequest("POST", "/api/v1/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, order.RouteAuth, rec.Header().Get("Location"))
	assert.Zero(t, f.sink.callCount())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newCartFixture(t)

	rec := httptest.NewRecorder()
	f.handler.PlaceOrder(rec, authed(httptest.NewRequest("POST", "/api/v1/orders", nil)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrder_SuccessReturnsRedirectAndClearsCart(t *testing.T) {
	f := newCartFixture(t)
	f.addItem(t, 1, 2)

	rec := httptest.NewRecorder()
	f.handler.PlaceOrder(rec, authed(httptest.NewRequest("POST", "/api/v1/orders",
		jsonBody(t, placeOrderRequest{Notes: "call on arrival"}))))

	require.Equal(t, http.StatusCreated, rec.Code)
	var result order.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "ord-1", result.OrderID)
	assert.Equal(t, order.RouteOrders, result.Redirect)

	cartRec := httptest.NewRecorder()
	f.handler.GetCart(cartRec, authed(httptest.NewRequest("GET", "/api/v1/cart", nil)))
	assert.Empty(t, decodeCart(t, cartRec).Lines)
}

func TestPlaceOrder_FailureKeepsCart(t *testing.T) {
	f := newCartFixture(t)
	f.sink.err = errors.New("order service down")
	f.addItem(t, 1, 2)

	rec := httptest.NewRecorder()
	f.handler.PlaceOrder(rec, authed(httptest.NewRequest("POST", "/api/v1/orders", nil)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	cartRec := httptest.NewRecorder()
	f.handler.GetCart(cartRec, authed(httptest.NewRequest("GET", "/api/v1/cart", nil)))
	assert.Len(t, decodeCart(t, cartRec).Lines, 1)
}
