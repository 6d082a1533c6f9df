package bus

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// MemoryBus fans signals out to in-process subscribers. Delivery is
// best effort: a subscriber whose buffer is full misses the signal
// rather than blocking the cart mutation that published it.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[Kind]map[int]chan Signal
	next int
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[Kind]map[int]chan Signal)}
}

func (b *MemoryBus) Publish(_ context.Context, sig Signal) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[sig.Kind] {
		select {
		case ch <- sig:
		default:
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(kind Kind) (<-chan Signal, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]chan Signal)
	}
	id := b.next
	b.next++
	ch := make(chan Signal, subscriberBuffer)
	b.subs[kind][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[kind][id]; ok {
			delete(b.subs[kind], id)
			close(sub)
		}
	}
	return ch, cancel
}
