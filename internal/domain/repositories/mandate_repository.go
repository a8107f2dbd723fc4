package repositories

import (
	"context"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

// MandateRepository abstracts CRUD over mandate, unique on
// (merchant_id, mandate_id); filter by (merchant_id, customer_id) per
// spec §6, carried forward from original_source's query module (SPEC_FULL
// §C).
type MandateRepository interface {
	Create(ctx context.Context, mandate *entities.Mandate) error
	Update(ctx context.Context, mandate *entities.Mandate) error
	FindByMerchantIDMandateID(ctx context.Context, merchantID, mandateID string) (*entities.Mandate, error)
	ListByMerchantIDCustomerID(ctx context.Context, merchantID, customerID string) ([]*entities.Mandate, error)
}
