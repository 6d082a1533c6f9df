package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBus distributes signals over redis pub/sub so cart views in
// separate processes converge. Delivery is at-most-once; a view that
// misses a signal stays consistent because it re-reads the durable
// store on its next signal.
type RedisBus struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisBus(client *redis.Client, log *zap.Logger) *RedisBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisBus{client: client, log: log}
}

func (b *RedisBus) Publish(ctx context.Context, sig Signal) error {
	payload, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("marshal signal: %w", err)
	}
	if err := b.client.Publish(ctx, channelFor(sig.Kind), payload).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(kind Kind) (<-chan Signal, func()) {
	sub := b.client.Subscribe(context.Background(), channelFor(kind))
	out := make(chan Signal, subscriberBuffer)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var sig Signal
			if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil {
				b.log.Warn("dropping malformed bus signal",
					zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			select {
			case out <- sig:
			default:
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}
	return out, cancel
}

func channelFor(kind Kind) string {
	return fmt.Sprintf("signals:%s", kind)
}
