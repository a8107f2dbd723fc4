package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
)

type connectorResponseRepository struct {
	db *gorm.DB
}

// NewConnectorResponseRepository adapts gorm into repositories.ConnectorResponseRepository.
func NewConnectorResponseRepository(db *gorm.DB) repositories.ConnectorResponseRepository {
	return &connectorResponseRepository{db: db}
}

// Upsert inserts the row or, when one with the same txn_id exists, updates
// it in place. txn_id carries the table's unique index, so the row is also
// unique on (payment_id, merchant_id, txn_id).
func (r *connectorResponseRepository) Upsert(ctx context.Context, response *entities.ConnectorResponse) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "txn_id"}},
			UpdateAll: true,
		}).
		Create(response).Error
	if err != nil {
		return translateErr(err, "failed to upsert connector response")
	}
	return nil
}

func (r *connectorResponseRepository) FindByTxnID(ctx context.Context, paymentID, merchantID, txnID string) (*entities.ConnectorResponse, error) {
	var response entities.ConnectorResponse
	err := r.db.WithContext(ctx).
		Where("payment_id = ? AND merchant_id = ? AND txn_id = ?", paymentID, merchantID, txnID).
		First(&response).Error
	if err != nil {
		return nil, translateErr(err, "connector response not found")
	}
	return &response, nil
}
