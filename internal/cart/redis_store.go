package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// RedisStore keeps cart snapshots under a fixed key per buyer, the
// same single-key contract the sqlite store honors. No TTL: the cart
// persists until cleared or the order goes through.
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{client: client, log: log}
}

func (r *RedisStore) Load(ctx context.Context, buyerID string) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, snapshotKey(buyerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		r.log.Warn("discarding corrupt cart snapshot",
			zap.String("buyer_id", buyerID), zap.Error(err))
		return nil, ErrSnapshotNotFound
	}
	return lines, nil
}

func (r *RedisStore) Save(ctx context.Context, buyerID string, lines []domain.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart lines failed: %w", err)
	}
	if err := r.client.Set(ctx, snapshotKey(buyerID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, buyerID string) error {
	if err := r.client.Del(ctx, snapshotKey(buyerID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func snapshotKey(buyerID string) string {
	return fmt.Sprintf("cart:%s", buyerID)
}
