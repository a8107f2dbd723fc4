package repositories

import (
	"context"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

// PaymentAttemptRepository abstracts CRUD over payment_attempt, per spec §6.
// FindLatestByPaymentIDMerchantID returns the most recently created attempt
// for an intent; FindByTxnID supports the multi-attempt secondary lookup.
// FindByConnectorTransactionID resolves the attempt a webhook's
// data.object.id refers to, letting internal/webhook route an inbound
// event to the (payment_id, merchant_id) pair PSync needs without the
// caller knowing either in advance (SPEC_FULL.md §C).
type PaymentAttemptRepository interface {
	Create(ctx context.Context, attempt *entities.PaymentAttempt) error
	Update(ctx context.Context, attempt *entities.PaymentAttempt) error
	FindLatestByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*entities.PaymentAttempt, error)
	FindByTxnID(ctx context.Context, txnID string) (*entities.PaymentAttempt, error)
	FindByConnectorTransactionID(ctx context.Context, connectorTransactionID string) (*entities.PaymentAttempt, error)
}
