package repositories

import (
	"context"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

// RefundRepository abstracts CRUD over refund, per spec §6:
// internal_reference_id unique, secondary (merchant_id, refund_id) unique,
// filter by (payment_id, merchant_id). ListByTransactionID backs the
// refund-bound invariant check and mirrors the original_source refund query
// module's pre-insert sum guard (SPEC_FULL.md §C).
// FindByPgRefundID resolves the refund a webhook's data.object.id refers to
// when the acquirer's event carries its own refund id rather than the
// charge id (SPEC_FULL.md §C), the refund-side counterpart of
// PaymentAttemptRepository.FindByConnectorTransactionID.
type RefundRepository interface {
	Create(ctx context.Context, refund *entities.Refund) error
	Update(ctx context.Context, refund *entities.Refund) error
	FindByInternalReferenceID(ctx context.Context, internalReferenceID string) (*entities.Refund, error)
	FindByMerchantIDRefundID(ctx context.Context, merchantID, refundID string) (*entities.Refund, error)
	FindByPgRefundID(ctx context.Context, pgRefundID string) (*entities.Refund, error)
	ListByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) ([]*entities.Refund, error)
	ListByTransactionID(ctx context.Context, transactionID string) ([]*entities.Refund, error)
}
