package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
)

type paymentIntentRepository struct {
	db *gorm.DB
}

// NewPaymentIntentRepository adapts gorm into repositories.PaymentIntentRepository.
func NewPaymentIntentRepository(db *gorm.DB) repositories.PaymentIntentRepository {
	return &paymentIntentRepository{db: db}
}

func (r *paymentIntentRepository) Create(ctx context.Context, intent *entities.PaymentIntent) error {
	if err := r.db.WithContext(ctx).Create(intent).Error; err != nil {
		return translateErr(err, "failed to create payment intent")
	}
	return nil
}

func (r *paymentIntentRepository) Update(ctx context.Context, intent *entities.PaymentIntent) error {
	if err := r.db.WithContext(ctx).Save(intent).Error; err != nil {
		return translateErr(err, "failed to update payment intent")
	}
	return nil
}

func (r *paymentIntentRepository) FindByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*entities.PaymentIntent, error) {
	var intent entities.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("payment_id = ? AND merchant_id = ?", paymentID, merchantID).
		First(&intent).Error
	if err != nil {
		return nil, translateErr(err, "payment intent not found")
	}
	return &intent, nil
}
