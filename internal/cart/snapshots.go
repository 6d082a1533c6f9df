// Package cart holds the buyer's pending purchase lines. The in-memory
// store is the view's working state; every mutation mirrors the full
// line set into a durable snapshot store and announces itself on the
// signal bus, so sibling views converge without polling.
package cart

import (
	"context"
	"errors"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// ErrSnapshotNotFound means no usable snapshot exists for the buyer.
// Implementations also return it for corrupt snapshots after logging,
// so corruption degrades to an empty cart and is never surfaced to the
// user.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Snapshots is the durable single-key store for a buyer's cart lines.
// Writes replace the whole set; concurrent writers are last-write-wins.
type Snapshots interface {
	Load(ctx context.Context, buyerID string) ([]domain.CartLine, error)
	Save(ctx context.Context, buyerID string, lines []domain.CartLine) error
	Delete(ctx context.Context, buyerID string) error
}
