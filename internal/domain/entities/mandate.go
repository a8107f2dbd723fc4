package entities

import (
	"time"

	"github.com/google/uuid"
)

// MandateType distinguishes single-use from multi-use stored authorizations.
type MandateType string

const (
	MandateTypeSingleUse MandateType = "single_use"
	MandateTypeMultiUse  MandateType = "multi_use"
)

// MandateStatus tracks whether a stored authorization can still be debited.
type MandateStatus string

const (
	MandateStatusActive   MandateStatus = "active"
	MandateStatusInactive MandateStatus = "inactive"
	MandateStatusRevoked  MandateStatus = "revoked"
)

// Mandate is a stored authorisation to debit later (spec §3). Unique on
// (merchant_id, mandate_id); the original_source's query layer additionally
// looks mandates up by (merchant_id, customer_id), kept here as
// MandateRepository.ListByMerchantIDCustomerID.
type Mandate struct {
	ID                   uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MandateID            string        `json:"mandate_id" gorm:"not null;uniqueIndex:idx_mandates_merchant_mandate"`
	MerchantID           string        `json:"merchant_id" gorm:"not null;index;uniqueIndex:idx_mandates_merchant_mandate"`
	CustomerID           string        `json:"customer_id" gorm:"not null;index"`
	PaymentMethodID      string        `json:"payment_method_id" gorm:"not null"`
	NetworkTransactionID *string       `json:"network_transaction_id"`
	MandateType          MandateType   `json:"mandate_type" gorm:"not null"`
	MandateStatus        MandateStatus `json:"mandate_status" gorm:"not null"`
	MaximumAmount        *int64        `json:"maximum_amount"`
	AmountCaptured       int64         `json:"amount_captured" gorm:"default:0"`
	CreatedAt            time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the Mandate entity.
func (Mandate) TableName() string {
	return "mandates"
}

// CanDebit reports whether a further debit of the given amount keeps the
// mandate within its MaximumAmount constraint, if one is set.
func (m *Mandate) CanDebit(amount int64) bool {
	if m.MandateStatus != MandateStatusActive {
		return false
	}
	if m.MaximumAmount == nil {
		return true
	}
	return m.AmountCaptured+amount <= *m.MaximumAmount
}
