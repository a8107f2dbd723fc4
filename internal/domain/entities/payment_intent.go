package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
)

// PaymentIntent is the merchant-scoped logical payment described in spec §3.
// Exactly one row exists per (merchant_id, payment_id); the pipeline never
// deletes it.
type PaymentIntent struct {
	ID                uuid.UUID                 `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PaymentID         string                    `json:"payment_id" gorm:"not null;uniqueIndex:idx_payment_intents_payment_merchant"`
	MerchantID        string                    `json:"merchant_id" gorm:"not null;uniqueIndex:idx_payment_intents_payment_merchant"`
	Status            valueobjects.IntentStatus `json:"status" gorm:"not null"`
	Amount            int64                     `json:"amount" gorm:"not null"`
	Currency          valueobjects.Currency     `json:"currency" gorm:"not null"`
	ShippingAddressID *uuid.UUID                `json:"shipping_address_id" gorm:"type:uuid"`
	BillingAddressID  *uuid.UUID                `json:"billing_address_id" gorm:"type:uuid"`
	CreatedAt         time.Time                 `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time                 `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the PaymentIntent entity.
func (PaymentIntent) TableName() string {
	return "payment_intents"
}

// IsTerminal reports whether the intent forbids further mutation except
// refund initiation from Succeeded.
func (p *PaymentIntent) IsTerminal() bool {
	return p.Status.IsTerminal()
}

// CanInitiateRefund reports whether a RefundExecute may target this intent.
func (p *PaymentIntent) CanInitiateRefund() bool {
	return p.Status == valueobjects.IntentStatusSucceeded
}

// TransitionTo overwrites the intent status. Callers are expected to have
// already checked admissibility via internal/router/statemachine; this
// method performs no validation of its own so that webhook-driven updates
// and pipeline updates share one code path.
func (p *PaymentIntent) TransitionTo(status valueobjects.IntentStatus) {
	p.Status = status
}
