package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
)

type mandateRepository struct {
	db *gorm.DB
}

// NewMandateRepository adapts gorm into repositories.MandateRepository.
func NewMandateRepository(db *gorm.DB) repositories.MandateRepository {
	return &mandateRepository{db: db}
}

func (r *mandateRepository) Create(ctx context.Context, mandate *entities.Mandate) error {
	if err := r.db.WithContext(ctx).Create(mandate).Error; err != nil {
		return translateErr(err, "failed to create mandate")
	}
	return nil
}

func (r *mandateRepository) Update(ctx context.Context, mandate *entities.Mandate) error {
	if err := r.db.WithContext(ctx).Save(mandate).Error; err != nil {
		return translateErr(err, "failed to update mandate")
	}
	return nil
}

func (r *mandateRepository) FindByMerchantIDMandateID(ctx context.Context, merchantID, mandateID string) (*entities.Mandate, error) {
	var mandate entities.Mandate
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND mandate_id = ?", merchantID, mandateID).
		First(&mandate).Error
	if err != nil {
		return nil, translateErr(err, "mandate not found")
	}
	return &mandate, nil
}

func (r *mandateRepository) ListByMerchantIDCustomerID(ctx context.Context, merchantID, customerID string) ([]*entities.Mandate, error) {
	var mandates []*entities.Mandate
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND customer_id = ?", merchantID, customerID).
		Order("created_at DESC").
		Find(&mandates).Error
	if err != nil {
		return nil, translateErr(err, "failed to list mandates")
	}
	return mandates, nil
}
