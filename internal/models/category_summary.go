package models

// CategorySummary is an annual amount reported for a category in an
// imported report sheet, keyed by (category, year). Amounts are in cents.
type CategorySummary struct {
	Base
	UserID     uint         `gorm:"not null;index" json:"user_id"`
	CategoryID uint         `gorm:"not null;index:idx_summary_category_year,unique" json:"category_id"`
	Year       int          `gorm:"not null;index:idx_summary_category_year,unique" json:"year"`
	Amount     int64        `gorm:"type:bigint;not null" json:"amount"`
	Section    CategoryType `gorm:"not null" json:"section"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
