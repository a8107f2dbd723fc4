package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
)

// Refund is described in spec §3. InternalReferenceID is globally unique
// and is the row's true identity; RefundID is the merchant-visible id.
type Refund struct {
	ID                  uuid.UUID               `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	InternalReferenceID string                  `json:"internal_reference_id" gorm:"uniqueIndex;not null"`
	RefundID            string                  `json:"refund_id" gorm:"not null;uniqueIndex:idx_refunds_merchant_refund"`
	PaymentID           string                  `json:"payment_id" gorm:"not null;index"`
	MerchantID          string                  `json:"merchant_id" gorm:"not null;index;uniqueIndex:idx_refunds_merchant_refund"`
	TransactionID       string                  `json:"transaction_id" gorm:"not null;index"`
	Connector           string                  `json:"connector" gorm:"not null"`
	PgRefundID          *string                 `json:"pg_refund_id"`
	RefundType          valueobjects.RefundType `json:"refund_type" gorm:"not null"`
	TotalAmount         int64                   `json:"total_amount" gorm:"not null"`
	RefundAmount        int64                   `json:"refund_amount" gorm:"not null"`
	Currency            valueobjects.Currency   `json:"currency" gorm:"not null"`
	RefundStatus        valueobjects.RefundStatus `json:"refund_status" gorm:"not null"`
	SentToGateway       bool                    `json:"sent_to_gateway" gorm:"default:false"`
	RefundErrorMessage  *string                 `json:"refund_error_message"`
	RefundArn           *string                 `json:"refund_arn"`
	Metadata            map[string]string       `json:"metadata" gorm:"serializer:json"`
	CreatedAt           time.Time               `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time               `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the Refund entity.
func (Refund) TableName() string {
	return "refunds"
}

// ValidateAmount enforces refund_amount <= total_amount, the first half of
// the refund-bound invariant in §3/§8. The second half (the sum across all
// refunds of one attempt) needs sibling rows and is checked by the
// RefundExecute operation via RefundRepository.ListByTransactionID.
func (r *Refund) ValidateAmount() bool {
	return r.RefundAmount > 0 && r.RefundAmount <= r.TotalAmount
}

// ApplyProjection applies a refund_status projected from a connector
// response, honoring the terminal/non-terminal rule in §4.4: Success and
// Failure are terminal, Pending/ManualReview permit further RefundSync.
func (r *Refund) ApplyProjection(next valueobjects.RefundStatus, pgRefundID *string, errMsg *string) bool {
	if r.RefundStatus == next {
		if pgRefundID != nil {
			r.PgRefundID = pgRefundID
		}
		return true
	}
	if r.RefundStatus.IsTerminal() {
		return false
	}
	r.RefundStatus = next
	if pgRefundID != nil {
		r.PgRefundID = pgRefundID
	}
	r.RefundErrorMessage = errMsg
	return true
}
