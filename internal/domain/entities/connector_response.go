package entities

import (
	"time"

	"github.com/google/uuid"
)

// ConnectorResponse is the last stored projection of an acquirer's answer
// for one attempt (spec §3). One row per attempt; UpdateTrackers overwrites
// it in place rather than appending.
type ConnectorResponse struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PaymentID          string    `json:"payment_id" gorm:"not null;index"`
	MerchantID         string    `json:"merchant_id" gorm:"not null;index"`
	TxnID              string    `json:"txn_id" gorm:"uniqueIndex;not null"`
	ConnectorName      string    `json:"connector_name" gorm:"not null"`
	AuthenticationData *string   `json:"authentication_data"`
	EncodedData        *string   `json:"encoded_data"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the ConnectorResponse entity.
func (ConnectorResponse) TableName() string {
	return "connector_responses"
}
