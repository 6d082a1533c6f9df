package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/bus"
)

// Manager hands out one Store per buyer and keeps mounted stores
// converged: it subscribes to cart.changed and re-reads the durable
// snapshot for the named buyer, so a mutation in one process shows up
// in every other without polling. Views converge eventually through
// the shared snapshot store, not through shared memory.
type Manager struct {
	snaps    Snapshots
	signals  bus.Bus
	resolver Resolver
	log      *zap.Logger

	mu     sync.Mutex
	stores map[string]*Store

	cancel func()
}

func NewManager(snaps Snapshots, signals bus.Bus, resolver Resolver, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		snaps:    snaps,
		signals:  signals,
		resolver: resolver,
		log:      log,
		stores:   make(map[string]*Store),
	}
	if signals != nil {
		ch, cancel := signals.Subscribe(bus.CartChanged)
		m.cancel = cancel
		go m.watch(ch)
	}
	return m
}

// For returns the buyer's store, creating and hydrating it on first
// use.
func (m *Manager) For(ctx context.Context, buyerID string) *Store {
	m.mu.Lock()
	if s, ok := m.stores[buyerID]; ok {
		m.mu.Unlock()
		return s
	}
	m.mu.Unlock()

	// Hydration happens outside the lock; losing the race just means
	// one extra snapshot read.
	s := NewStore(ctx, buyerID, m.snaps, m.signals, m.resolver, m.log)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[buyerID]; ok {
		return existing
	}
	m.stores[buyerID] = s
	return s
}

// Close stops the convergence watcher.
func (m *Manager) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Manager) watch(ch <-chan bus.Signal) {
	for sig := range ch {
		m.mu.Lock()
		s, ok := m.stores[sig.BuyerID]
		m.mu.Unlock()
		if !ok {
			continue
		}
		s.Rehydrate(context.Background())
	}
}
