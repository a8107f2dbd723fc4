package entities

import (
	"time"

	"github.com/google/uuid"
)

// Customer, Address and MerchantAccount are standard reference entities
// the core reads in get_trackers/to_domain but never mutates from the hot
// path (spec §3).

type Customer struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CustomerID string    `json:"customer_id" gorm:"uniqueIndex;not null"`
	MerchantID string    `json:"merchant_id" gorm:"not null;index"`
	Email      *string   `json:"email"`
	Name       *string   `json:"name"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Customer) TableName() string { return "customers" }

type Address struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Line1      string    `json:"line1" gorm:"not null"`
	Line2      *string   `json:"line2"`
	City       *string   `json:"city"`
	State      *string   `json:"state"`
	Zip        *string   `json:"zip"`
	Country    string    `json:"country" gorm:"not null"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Address) TableName() string { return "addresses" }

// MerchantAccount holds per-merchant connector credentials and routing
// preferences. ConnectorAuthType is adapter-specific (BodyKey, HeaderKey,
// SignatureKey, …) and is opaque JSON here; each connector adapter parses
// the shape it expects via internal/router.ConnectorAuthType.
type MerchantAccount struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MerchantID        string    `json:"merchant_id" gorm:"uniqueIndex;not null"`
	DefaultConnector  string    `json:"default_connector" gorm:"not null"`
	ConnectorAuthType []byte    `json:"-" gorm:"type:jsonb;not null"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (MerchantAccount) TableName() string { return "merchant_accounts" }
