package entities

import "time"

// TempCard is short-lived card data keyed by txn_id or a numeric token,
// feeding adapter request construction (spec §3). Authorize writes one row
// per attempt that carries card data; no code path in the core deletes these
// rows (TempCardRepository.DeleteByTxnID has no caller). The core never logs
// its fields.
type TempCard struct {
	ID           int64     `json:"-" gorm:"primary_key;autoIncrement"`
	TxnID        string    `json:"txn_id" gorm:"uniqueIndex;not null"`
	CardNumber   string    `json:"-" gorm:"not null"`
	ExpiryMonth  string    `json:"-" gorm:"not null"`
	ExpiryYear   string    `json:"-" gorm:"not null"`
	CardHolderName *string `json:"-"`
	CVC          string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for the TempCard entity.
func (TempCard) TableName() string {
	return "temp_cards"
}

// MaskedNumber returns the card number's last 4 digits, suitable for
// inclusion in logs and error messages; the full CardNumber must never be.
func (c *TempCard) MaskedNumber() string {
	if len(c.CardNumber) < 4 {
		return "****"
	}
	return "****" + c.CardNumber[len(c.CardNumber)-4:]
}
