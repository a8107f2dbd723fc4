package repositories

import (
	"context"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

// CustomerRepository, AddressRepository and MerchantAccountRepository are
// read-mostly lookups the pipeline uses in get_trackers/to_domain; the core
// never mutates these entities from the hot path (spec §3).
type CustomerRepository interface {
	FindByCustomerID(ctx context.Context, customerID string) (*entities.Customer, error)
}

type AddressRepository interface {
	FindByID(ctx context.Context, id string) (*entities.Address, error)
}

type MerchantAccountRepository interface {
	FindByMerchantID(ctx context.Context, merchantID string) (*entities.MerchantAccount, error)
}

// KeyValueStore abstracts the secrets KV store named in spec §6:
// get_key(key) -> bytes, set_key(key, bytes, ttl?). Used for webhook
// secret resolution and webhook-event idempotency dedup.
type KeyValueStore interface {
	GetKey(ctx context.Context, key string) ([]byte, error)
	SetKey(ctx context.Context, key string, value []byte, ttlSeconds int64) error
}
