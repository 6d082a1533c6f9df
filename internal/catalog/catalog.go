package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/browse"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// Catalog holds the current listing set. Loads are deduplicated with
// singleflight so concurrent browse requests trigger one fetch, and a
// generation counter discards responses that complete after the cached
// set was invalidated, so a stale fetch never overwrites fresher state.
type Catalog struct {
	source Source
	log    *zap.Logger
	sfg    singleflight.Group

	mu       sync.RWMutex
	listings []domain.Listing
	loaded   bool
	gen      uint64
}

func New(source Source, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{source: source, log: log}
}

// Load returns the cached listing set, fetching it first if needed.
// It never fails: any fetch problem degrades to the built-in fallback
// dataset.
func (c *Catalog) Load(ctx context.Context) []domain.Listing {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.snapshotLocked()
	}
	c.mu.RUnlock()

	return c.Refresh(ctx)
}

// Refresh re-fetches from the source, falling back on any failure or
// empty payload. The result is only cached if no Invalidate happened
// while the fetch was in flight.
func (c *Catalog) Refresh(ctx context.Context) []domain.Listing {
	v, _, _ := c.sfg.Do("listings", func() (interface{}, error) {
		c.mu.RLock()
		startGen := c.gen
		c.mu.RUnlock()

		listings, err := c.source.Fetch(ctx)
		if err != nil {
			c.log.Warn("listing fetch failed, serving fallback dataset",
				zap.Error(err))
			listings = FallbackListings()
		}

		c.mu.Lock()
		if c.gen == startGen {
			c.listings = listings
			c.loaded = true
		} else {
			c.log.Debug("discarding stale listing fetch",
				zap.Uint64("fetch_gen", startGen),
				zap.Uint64("current_gen", c.gen))
		}
		c.mu.Unlock()
		return listings, nil
	})
	listings := v.([]domain.Listing)
	out := make([]domain.Listing, len(listings))
	copy(out, listings)
	return out
}

// Invalidate drops the cached set. Any fetch already in flight will be
// discarded when it completes.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.loaded = false
	c.listings = nil
	c.mu.Unlock()
}

// Get resolves a listing by id from the cached set.
func (c *Catalog) Get(id int64) (domain.Listing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.listings {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Listing{}, false
}

// Recommended returns the n most recent listings, ignoring proximity.
// This is the recency-only ranking behind the "Recommended" UI slot.
func (c *Catalog) Recommended(ctx context.Context, n int) []domain.Listing {
	listings := c.Load(ctx)
	ranked := browse.Sort(listings, domain.SortRecommended, domain.Locality{})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func (c *Catalog) snapshotLocked() []domain.Listing {
	out := make([]domain.Listing, len(c.listings))
	copy(out, c.listings)
	return out
}
