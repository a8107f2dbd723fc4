package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	domainerrors "github.com/paylinkhq/router-core/pkg/errors"
)

// commander is the narrow slice of redis.Cmdable the KV store needs;
// accepting it instead of the full interface keeps KeyValueStore testable
// with a small fake.
type commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// KeyValueStore implements repositories.KeyValueStore (spec §6) over Redis,
// backing webhook secret resolution and webhook-event idempotency dedup.
type KeyValueStore struct {
	client commander
}

// NewKeyValueStore adapts a RedisClient into the domain KeyValueStore port.
func NewKeyValueStore(client *RedisClient) *KeyValueStore {
	return &KeyValueStore{client: client.Client}
}

// GetKey returns the raw bytes stored at key, or a StorageError of kind
// DatabaseNotFound when the key is absent.
func (s *KeyValueStore) GetKey(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerrors.NewStorageError(domainerrors.DatabaseNotFound, "key not found: "+key, err)
		}
		return nil, domainerrors.NewStorageError(domainerrors.DatabaseOthers, "redis get failed", err)
	}
	return val, nil
}

// SetKey stores value at key. ttlSeconds <= 0 means no expiration.
func (s *KeyValueStore) SetKey(ctx context.Context, key string, value []byte, ttlSeconds int64) error {
	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return domainerrors.NewStorageError(domainerrors.DatabaseOthers, "redis set failed", err)
	}
	return nil
}
