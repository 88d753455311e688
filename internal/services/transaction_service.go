package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/models"
	"ledgerlens/internal/pagination"
)

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	CategoryID *uint      `form:"category_id"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Search     string     `form:"search"`
}

type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a transaction service over the given database.
func NewTransactionService(db *gorm.DB) TransactionService {
	return &transactionService{db: db}
}

func (s *transactionService) List(userID uint, filter TransactionFilter, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("description LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.Transaction]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := query.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Preload("Category").
		Find(&transactions).Error; err != nil {
		return pagination.PageResponse[models.Transaction]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return pagination.NewPageResponse(transactions, page.Page, page.PageSize, total), nil
}

func (s *transactionService) GetByID(userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Category").
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

func (s *transactionService) Delete(userID, id uint) error {
	tx, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// LatestDate returns the date of the user's most recent transaction, used
// as the forecast anchor. Returns ErrNoTransactionHistory when the ledger
// is empty.
func (s *transactionService) LatestDate(userID uint) (time.Time, error) {
	var tx models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, apperrors.ErrNoTransactionHistory
		}
		return time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx.Date, nil
}

// InRange returns all transactions in [from, to], oldest first, with
// categories preloaded.
func (s *transactionService) InRange(userID uint, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, id ASC").
		Preload("Category").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListUncategorized returns rows every cascade rule rejected, for manual
// review.
func (s *transactionService) ListUncategorized(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND category_id IS NULL", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.Transaction]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := query.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return pagination.PageResponse[models.Transaction]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return pagination.NewPageResponse(transactions, page.Page, page.PageSize, total), nil
}
