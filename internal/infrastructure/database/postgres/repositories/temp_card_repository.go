package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
)

type tempCardRepository struct {
	db *gorm.DB
}

// NewTempCardRepository adapts gorm into repositories.TempCardRepository.
func NewTempCardRepository(db *gorm.DB) repositories.TempCardRepository {
	return &tempCardRepository{db: db}
}

func (r *tempCardRepository) Create(ctx context.Context, card *entities.TempCard) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return translateErr(err, "failed to create temp card")
	}
	return nil
}

func (r *tempCardRepository) FindByTxnID(ctx context.Context, txnID string) (*entities.TempCard, error) {
	var card entities.TempCard
	err := r.db.WithContext(ctx).Where("txn_id = ?", txnID).First(&card).Error
	if err != nil {
		return nil, translateErr(err, "temp card not found")
	}
	return &card, nil
}

func (r *tempCardRepository) FindByID(ctx context.Context, id int64) (*entities.TempCard, error) {
	var card entities.TempCard
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		return nil, translateErr(err, "temp card not found")
	}
	return &card, nil
}

func (r *tempCardRepository) DeleteByTxnID(ctx context.Context, txnID string) error {
	if err := r.db.WithContext(ctx).Where("txn_id = ?", txnID).Delete(&entities.TempCard{}).Error; err != nil {
		return translateErr(err, "failed to delete temp card")
	}
	return nil
}
