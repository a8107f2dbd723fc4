package repositories

import (
	"context"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

// PaymentIntentRepository abstracts CRUD over payment_intent, per spec §6.
// (payment_id, merchant_id) is unique; implementations must enforce it.
type PaymentIntentRepository interface {
	Create(ctx context.Context, intent *entities.PaymentIntent) error
	Update(ctx context.Context, intent *entities.PaymentIntent) error
	FindByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*entities.PaymentIntent, error)
}
