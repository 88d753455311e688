package services

import (
	"errors"

	"gorm.io/gorm"

	"ledgerlens/internal/chart"
	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/logger"
	"ledgerlens/internal/models"
)

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Type     string `json:"type" binding:"required,category_type"`
	ParentID *uint  `json:"parent_id"`
}

// UpdateCategoryRequest is the payload for updating a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	ParentID *uint   `json:"parent_id"`
	IsActive *bool   `json:"is_active"`
}

// defaultCategory seeds one well-known category for new accounts.
type defaultCategory struct {
	name     string
	typ      models.CategoryType
	children []string
}

// defaultChart is the starter chart of accounts. It covers every category
// the classification cascade can assign directly, so classification works
// before the user imports any report sheet.
var defaultChart = []defaultCategory{
	{name: "Revenue", typ: models.CategoryTypeIncome, children: []string{"Sales", "Service Income"}},
	{name: "Operating Expenses", typ: models.CategoryTypeExpense, children: []string{
		"Utilities", "Fines & Penalties", "Loan Interest", "Staff Meals",
		"Salaries & Wages", "Rent", "Transport",
	}},
	{name: "Current Liabilities", typ: models.CategoryTypeLiability, children: []string{
		"Salaries Payable", "CPF Payable",
	}},
	{name: "Current Assets", typ: models.CategoryTypeAsset, children: []string{"Bank", "Cash"}},
}

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a category service over the given database.
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

func (s *categoryService) Create(userID uint, req CreateCategoryRequest) (*models.Category, error) {
	typ := models.CategoryType(req.Type)
	if !models.ValidCategoryType(typ) {
		return nil, apperrors.ErrInvalidCategoryType
	}

	if req.ParentID != nil {
		parent, err := s.GetByID(userID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		// Subcategories inherit their parent's section.
		if parent.Type != typ {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "parent category belongs to a different section")
		}
	}

	category := &models.Category{
		UserID:   userID,
		Name:     req.Name,
		Type:     typ,
		ParentID: req.ParentID,
		IsActive: true,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

func (s *categoryService) Update(userID, id uint, req UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, apperrors.ErrSelfParentCategory
		}
		if _, err := s.GetByID(userID, *req.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = req.ParentID
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

func (s *categoryService) Delete(userID, id uint) error {
	category, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).
		Where("parent_id = ? AND user_id = ?", id, userID).
		Count(&childCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if childCount > 0 {
		return apperrors.ErrCategoryHasChildren
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *categoryService) GetByID(userID, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// List returns all of the user's categories ordered by creation, which is
// also the tie-break order for fuzzy name matching.
func (s *categoryService) List(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

func (s *categoryService) ListRoots(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ? AND parent_id IS NULL", userID).
		Order("id ASC").
		Preload("Children").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// EnsureDefaults seeds the starter chart of accounts for users with no
// categories. Safe to call on every import; it is a no-op once any
// category exists.
func (s *categoryService) EnsureDefaults(userID uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, root := range defaultChart {
			parent := models.Category{
				UserID:   userID,
				Name:     root.name,
				Type:     root.typ,
				IsActive: true,
			}
			if err := tx.Create(&parent).Error; err != nil {
				return err
			}
			for _, childName := range root.children {
				child := models.Category{
					UserID:   userID,
					Name:     childName,
					Type:     root.typ,
					ParentID: &parent.ID,
					IsActive: true,
				}
				if err := tx.Create(&child).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("seeded default chart of accounts", "user_id", userID)
	return nil
}

// LoadTree loads the user's categories into the shared import-run cache.
func (s *categoryService) LoadTree(userID uint) (*chart.Tree, error) {
	categories, err := s.List(userID)
	if err != nil {
		return nil, err
	}
	return chart.NewTree(categories), nil
}

// Creator returns a chart.Creator bound to one user, for use by the sheet
// resolver.
func (s *categoryService) Creator(userID uint) chart.Creator {
	return &treeCreator{db: s.db, userID: userID}
}

type treeCreator struct {
	db     *gorm.DB
	userID uint
}

func (c *treeCreator) CreateCategory(name string, typ models.CategoryType, parentID *uint) (uint, error) {
	category := models.Category{
		UserID:   c.userID,
		Name:     name,
		Type:     typ,
		ParentID: parentID,
		IsActive: true,
	}
	if err := c.db.Create(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}
