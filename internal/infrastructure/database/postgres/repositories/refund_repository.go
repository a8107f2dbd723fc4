package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
)

type refundRepository struct {
	db *gorm.DB
}

// NewRefundRepository adapts gorm into repositories.RefundRepository.
func NewRefundRepository(db *gorm.DB) repositories.RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, refund *entities.Refund) error {
	if err := r.db.WithContext(ctx).Create(refund).Error; err != nil {
		return translateErr(err, "failed to create refund")
	}
	return nil
}

func (r *refundRepository) Update(ctx context.Context, refund *entities.Refund) error {
	if err := r.db.WithContext(ctx).Save(refund).Error; err != nil {
		return translateErr(err, "failed to update refund")
	}
	return nil
}

func (r *refundRepository) FindByInternalReferenceID(ctx context.Context, internalReferenceID string) (*entities.Refund, error) {
	var refund entities.Refund
	err := r.db.WithContext(ctx).
		Where("internal_reference_id = ?", internalReferenceID).
		First(&refund).Error
	if err != nil {
		return nil, translateErr(err, "refund not found")
	}
	return &refund, nil
}

func (r *refundRepository) FindByMerchantIDRefundID(ctx context.Context, merchantID, refundID string) (*entities.Refund, error) {
	var refund entities.Refund
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND refund_id = ?", merchantID, refundID).
		First(&refund).Error
	if err != nil {
		return nil, translateErr(err, "refund not found")
	}
	return &refund, nil
}

// FindByPgRefundID backs internal/webhook's resolution of an inbound
// refund event's data.object.id to the refund it updates.
func (r *refundRepository) FindByPgRefundID(ctx context.Context, pgRefundID string) (*entities.Refund, error) {
	var refund entities.Refund
	err := r.db.WithContext(ctx).
		Where("pg_refund_id = ?", pgRefundID).
		First(&refund).Error
	if err != nil {
		return nil, translateErr(err, "refund not found for pg_refund_id")
	}
	return &refund, nil
}

func (r *refundRepository) ListByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) ([]*entities.Refund, error) {
	var refunds []*entities.Refund
	err := r.db.WithContext(ctx).
		Where("payment_id = ? AND merchant_id = ?", paymentID, merchantID).
		Order("created_at DESC").
		Find(&refunds).Error
	if err != nil {
		return nil, translateErr(err, "failed to list refunds")
	}
	return refunds, nil
}

func (r *refundRepository) ListByTransactionID(ctx context.Context, transactionID string) ([]*entities.Refund, error) {
	var refunds []*entities.Refund
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at DESC").
		Find(&refunds).Error
	if err != nil {
		return nil, translateErr(err, "failed to list refunds by transaction id")
	}
	return refunds, nil
}
