package bus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisBus(t *testing.T) *RedisBus {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBus(client, nil)
}

func TestRedisBus_RoundTrip(t *testing.T) {
	b := setupRedisBus(t)

	ch, cancel := b.Subscribe(CartChanged)
	defer cancel()

	// Subscription setup races the publish; retry until delivered.
	sig := Signal{Kind: CartChanged, BuyerID: "buyer-1", ItemCount: 2}
	var got Signal
	require.Eventually(t, func() bool {
		require.NoError(t, b.Publish(context.Background(), sig))
		select {
		case got = <-ch:
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, sig, got)
}

func TestRedisBus_CancelStopsDelivery(t *testing.T) {
	b := setupRedisBus(t)

	ch, cancel := b.Subscribe(CartOpen)
	cancel()

	require.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, 5*time.Second, 10*time.Millisecond)
}
