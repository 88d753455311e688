package models

import "time"

// Transaction is one imported bank-ledger row. Amounts are in cents; a row
// carries either a debit or a credit. CategoryID is assigned once by the
// classifier and left nil when every rule rejects the row.
type Transaction struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `gorm:"not null" json:"description"`
	Debit       int64     `gorm:"type:bigint;not null;default:0" json:"debit"`
	Credit      int64     `gorm:"type:bigint;not null;default:0" json:"credit"`
	CategoryID  *uint     `json:"category_id,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
