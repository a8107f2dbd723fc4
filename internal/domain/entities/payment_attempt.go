package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
)

// PaymentAttempt is one execution of an intent against one connector,
// per spec §3. An intent may accumulate multiple attempts; attempts are
// never deleted, only mutated by UpdateTrackers after each external call.
type PaymentAttempt struct {
	ID                    uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PaymentID             string                          `json:"payment_id" gorm:"not null;index"`
	MerchantID            string                          `json:"merchant_id" gorm:"not null;index"`
	TxnID                 string                          `json:"txn_id" gorm:"uniqueIndex;not null"`
	ConnectorName         string                          `json:"connector_name" gorm:"not null"`
	ConnectorTransactionID *string                        `json:"connector_transaction_id"`
	Status                valueobjects.AttemptStatus      `json:"status" gorm:"not null"`
	Amount                int64                           `json:"amount" gorm:"not null"`
	Currency              valueobjects.Currency           `json:"currency" gorm:"not null"`
	CaptureMethod         valueobjects.CaptureMethod      `json:"capture_method" gorm:"not null"`
	AmountToCapture       *int64                          `json:"amount_to_capture"`
	PaymentMethod         valueobjects.PaymentMethodType  `json:"payment_method" gorm:"not null"`
	AuthenticationType    valueobjects.AuthenticationType `json:"authentication_type" gorm:"not null"`
	ErrorMessage          *string                         `json:"error_message"`
	CreatedAt             time.Time                       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time                       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the PaymentAttempt entity.
func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}

// ValidateAmountToCapture reports whether the attempt invariant
// 0 < amount_to_capture <= amount holds (an unset amount_to_capture passes).
func (a *PaymentAttempt) ValidateAmountToCapture() bool {
	if a.AmountToCapture == nil {
		return true
	}
	return *a.AmountToCapture > 0 && *a.AmountToCapture <= a.Amount
}

// IsAbsorbed reports whether the attempt's current status is one of the
// absorbing states (Charged|Voided|Failure) that forbid further transition.
func (a *PaymentAttempt) IsAbsorbed() bool {
	return a.Status.IsAbsorbing()
}

// ApplyProjection applies a status projected from a connector response,
// enforcing the FSM monotonicity property from §8. It returns false without
// mutating the attempt when the transition is not permitted; callers should
// treat that as an ApiErrorResponse::InternalServerError (an adapter
// returned something the FSM cannot accept) rather than silently applying it.
func (a *PaymentAttempt) ApplyProjection(next valueobjects.AttemptStatus, connectorTransactionID *string, errMsg *string) bool {
	if a.Status == next {
		// idempotent re-application of the same observed status (e.g. a
		// duplicate webhook) is allowed even from an absorbing state.
		if connectorTransactionID != nil {
			a.ConnectorTransactionID = connectorTransactionID
		}
		return true
	}
	if !a.Status.CanTransitionTo(next) {
		return false
	}
	a.Status = next
	if connectorTransactionID != nil {
		a.ConnectorTransactionID = connectorTransactionID
	}
	a.ErrorMessage = errMsg
	return true
}
