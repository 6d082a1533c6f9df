// Package bus carries the cross-component signals that keep sibling
// cart views in sync without direct coupling: every cart mutation
// publishes a cart.changed signal, and the deep-link "jump to cart"
// flow publishes cart.open.
package bus

import "context"

type Kind string

const (
	// CartChanged fires on every cart mutation so other mounted views
	// (header badge, second tab) recompute without polling.
	CartChanged Kind = "cart.changed"
	// CartOpen asks the cart view to open (deep-link trigger).
	CartOpen Kind = "cart.open"
)

type Signal struct {
	Kind      Kind   `json:"kind"`
	BuyerID   string `json:"buyer_id"`
	ItemCount int    `json:"item_count,omitempty"`
}

// Bus is the publish/subscribe interface replacing the source's ad-hoc
// event names. Subscribe returns a receive channel and a cancel func;
// after cancel the channel is closed.
type Bus interface {
	Publish(ctx context.Context, sig Signal) error
	Subscribe(kind Kind) (<-chan Signal, func())
}
