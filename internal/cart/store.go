package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/bus"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// Resolver looks up a listing's current display fields at add time.
type Resolver interface {
	Get(id int64) (domain.Listing, bool)
}

// Store holds one buyer's cart lines. Mutations are atomic from the
// caller's perspective; persistence and broadcast happen before the
// call returns. At most one line exists per listing id.
type Store struct {
	buyerID  string
	snaps    Snapshots
	signals  bus.Bus
	resolver Resolver
	log      *zap.Logger

	mu    sync.Mutex
	lines []domain.CartLine
}

// NewStore builds a store and hydrates it once from the snapshot
// store. An absent or corrupt snapshot silently yields an empty cart.
func NewStore(ctx context.Context, buyerID string, snaps Snapshots, signals bus.Bus, resolver Resolver, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		buyerID:  buyerID,
		snaps:    snaps,
		signals:  signals,
		resolver: resolver,
		log:      log,
	}
	s.Rehydrate(ctx)
	return s
}

// Rehydrate re-reads the durable snapshot, replacing in-memory lines.
// Called once at construction and again when a cart.changed signal
// arrives from another view.
func (s *Store) Rehydrate(ctx context.Context) {
	lines, err := s.snaps.Load(ctx, s.buyerID)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			s.log.Warn("cart hydrate failed, starting empty",
				zap.String("buyer_id", s.buyerID), zap.Error(err))
		}
		lines = nil
	}
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}

// Add merges quantity into an existing line or creates a new one from
// a snapshot of the listing's display fields. Unknown listing ids and
// non-positive quantities are silent no-ops.
func (s *Store) Add(ctx context.Context, listingID int64, quantity int) {
	if quantity <= 0 {
		return
	}
	listing, ok := s.resolver.Get(listingID)
	if !ok {
		s.log.Debug("add to cart ignored, unknown listing",
			zap.Int64("listing_id", listingID))
		return
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].ListingID == listingID {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, domain.CartLine{
			ListingID:     listingID,
			Quantity:      quantity,
			Name:          listing.Name,
			LocalizedName: listing.LocalizedName,
			Image:         listing.Image,
			PricePerUnit:  listing.PricePerUnit,
		})
	}
	s.mu.Unlock()

	s.sync(ctx)
}

// UpdateQuantity replaces a line's quantity. Zero or negative removes
// the line entirely; a quantity of zero is never stored.
func (s *Store) UpdateQuantity(ctx context.Context, listingID int64, quantity int) {
	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].ListingID != listingID {
			continue
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = quantity
		}
		changed = true
		break
	}
	s.mu.Unlock()

	if changed {
		s.sync(ctx)
	}
}

// Remove deletes a line.
func (s *Store) Remove(ctx context.Context, listingID int64) {
	s.UpdateQuantity(ctx, listingID, 0)
}

// Clear empties the cart and its durable snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	if err := s.snaps.Delete(ctx, s.buyerID); err != nil && !errors.Is(err, ErrSnapshotNotFound) {
		s.log.Warn("cart snapshot delete failed",
			zap.String("buyer_id", s.buyerID), zap.Error(err))
	}
	s.broadcast(ctx)
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total sums price-per-unit times quantity over all lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, l := range s.lines {
		total += l.LineTotal()
	}
	return total
}

// Count is the total item quantity, the number the header badge shows.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// BuyerID identifies the cart's owner.
func (s *Store) BuyerID() string {
	return s.buyerID
}

// sync persists the full line set and broadcasts the change. A failed
// persist keeps the in-memory state and is logged; the next mutation
// retries the full write.
func (s *Store) sync(ctx context.Context) {
	if err := s.snaps.Save(ctx, s.buyerID, s.Lines()); err != nil {
		s.log.Warn("cart snapshot save failed",
			zap.String("buyer_id", s.buyerID), zap.Error(err))
	}
	s.broadcast(ctx)
}

func (s *Store) broadcast(ctx context.Context) {
	if s.signals == nil {
		return
	}
	sig := bus.Signal{Kind: bus.CartChanged, BuyerID: s.buyerID, ItemCount: s.Count()}
	if err := s.signals.Publish(ctx, sig); err != nil {
		s.log.Warn("cart signal publish failed",
			zap.String("buyer_id", s.buyerID), zap.Error(err))
	}
}
