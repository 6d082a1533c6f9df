package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/auth"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/cart"
)

var (
	ErrNotAuthenticated = errors.New("order requires an authenticated buyer")
	ErrEmptyCart        = errors.New("cart is empty, nothing to order")
)

// Navigation targets, reached by identifier; the actual views are
// external.
const (
	RouteAuth   = "/login"
	RouteOrders = "/buyer/orders"
)

// Result tells the caller where to send the buyer next.
type Result struct {
	OrderID  string `json:"order_id,omitempty"`
	Redirect string `json:"redirect"`
}

type Options struct {
	Notes       string
	DeliveryFee float64
}

// Coordinator drains the cart store into the external order sink.
type Coordinator struct {
	sink   Sink
	events *EventPublisher
	log    *zap.Logger
}

func NewCoordinator(sink Sink, events *EventPublisher, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{sink: sink, events: events, log: log}
}

// PlaceOrder submits the cart as one multi-line order.
//
// Unauthenticated buyers are redirected to the authentication flow
// before any network call; no partial order is ever created. An empty
// cart is a no-op. On success the cart store is cleared (which also
// clears durable storage and broadcasts the change) and the buyer is
// sent to the order-management view. On failure the cart is left
// intact for retry; there is no automatic retry.
func (c *Coordinator) PlaceOrder(ctx context.Context, user *auth.User, store *cart.Store, opts Options) (*Result, error) {
	if user == nil {
		return &Result{Redirect: RouteAuth}, ErrNotAuthenticated
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{ListingID: l.ListingID, Quantity: l.Quantity})
	}

	conf, err := c.sink.Submit(ctx, Request{
		Items:       items,
		Notes:       opts.Notes,
		DeliveryFee: opts.DeliveryFee,
	})
	if err != nil {
		c.log.Warn("order submission failed, cart preserved",
			zap.String("buyer_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("order submission failed: %w", err)
	}

	store.Clear(ctx)
	c.events.OrderPlaced(ctx, user.ID, *conf, items)

	c.log.Info("order placed",
		zap.String("buyer_id", user.ID),
		zap.String("order_id", conf.OrderID),
		zap.Int("lines", len(items)))

	return &Result{OrderID: conf.OrderID, Redirect: RouteOrders}, nil
}
