package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
)

type paymentAttemptRepository struct {
	db *gorm.DB
}

// NewPaymentAttemptRepository adapts gorm into repositories.PaymentAttemptRepository.
func NewPaymentAttemptRepository(db *gorm.DB) repositories.PaymentAttemptRepository {
	return &paymentAttemptRepository{db: db}
}

func (r *paymentAttemptRepository) Create(ctx context.Context, attempt *entities.PaymentAttempt) error {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return translateErr(err, "failed to create payment attempt")
	}
	return nil
}

func (r *paymentAttemptRepository) Update(ctx context.Context, attempt *entities.PaymentAttempt) error {
	if err := r.db.WithContext(ctx).Save(attempt).Error; err != nil {
		return translateErr(err, "failed to update payment attempt")
	}
	return nil
}

func (r *paymentAttemptRepository) FindLatestByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*entities.PaymentAttempt, error) {
	var attempt entities.PaymentAttempt
	err := r.db.WithContext(ctx).
		Where("payment_id = ? AND merchant_id = ?", paymentID, merchantID).
		Order("created_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, translateErr(err, "payment attempt not found")
	}
	return &attempt, nil
}

func (r *paymentAttemptRepository) FindByTxnID(ctx context.Context, txnID string) (*entities.PaymentAttempt, error) {
	var attempt entities.PaymentAttempt
	err := r.db.WithContext(ctx).Where("txn_id = ?", txnID).First(&attempt).Error
	if err != nil {
		return nil, translateErr(err, "payment attempt not found")
	}
	return &attempt, nil
}

// FindByConnectorTransactionID backs internal/webhook's resolution of an
// inbound event's data.object.id to the attempt it updates.
func (r *paymentAttemptRepository) FindByConnectorTransactionID(ctx context.Context, connectorTransactionID string) (*entities.PaymentAttempt, error) {
	var attempt entities.PaymentAttempt
	err := r.db.WithContext(ctx).
		Where("connector_transaction_id = ?", connectorTransactionID).
		Order("created_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, translateErr(err, "payment attempt not found for connector transaction id")
	}
	return &attempt, nil
}
