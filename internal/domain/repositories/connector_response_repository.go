package repositories

import (
	"context"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

// ConnectorResponseRepository abstracts CRUD over connector_response,
// unique on (payment_id, merchant_id, txn_id) per spec §6.
type ConnectorResponseRepository interface {
	Upsert(ctx context.Context, response *entities.ConnectorResponse) error
	FindByTxnID(ctx context.Context, paymentID, merchantID, txnID string) (*entities.ConnectorResponse, error)
}
