package models

// CategoryType represents the account section a category belongs to.
type CategoryType string

const (
	CategoryTypeIncome    CategoryType = "income"
	CategoryTypeExpense   CategoryType = "expense"
	CategoryTypeAsset     CategoryType = "asset"
	CategoryTypeLiability CategoryType = "liability"
)

// ValidCategoryType reports whether t is one of the supported section types.
func ValidCategoryType(t CategoryType) bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeAsset, CategoryTypeLiability:
		return true
	}
	return false
}

// Category is one node in the user's chart of accounts. Categories form a
// forest per type: ParentID links a subcategory to its parent within the
// same section.
type Category struct {
	Base
	UserID   uint         `gorm:"not null;index" json:"user_id"`
	Name     string       `gorm:"not null" json:"name"`
	Type     CategoryType `gorm:"not null" json:"type"`
	ParentID *uint        `json:"parent_id,omitempty"`
	IsActive bool         `gorm:"default:true" json:"is_active"`

	// Relationships
	Parent       *Category     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Category    `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
