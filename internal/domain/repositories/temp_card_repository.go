package repositories

import (
	"context"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

// TempCardRepository abstracts CRUD over temp_card, unique on txn_id, with
// a numeric-token lookup path carried from original_source's query module
// (SPEC_FULL §C).
type TempCardRepository interface {
	Create(ctx context.Context, card *entities.TempCard) error
	FindByTxnID(ctx context.Context, txnID string) (*entities.TempCard, error)
	FindByID(ctx context.Context, id int64) (*entities.TempCard, error)
	DeleteByTxnID(ctx context.Context, txnID string) error
}
