package services

import (
	"gorm.io/gorm"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/logger"
	"ledgerlens/internal/models"
	"ledgerlens/internal/pagination"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates an audit service over the given database.
func NewAuditService(db *gorm.DB) AuditService {
	return &auditService{db: db}
}

// Log records an audit entry. Auditing never fails the operation being
// audited; write errors are logged and swallowed.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress, changes string) {
	entry := models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changes,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("failed to write audit log",
			"user_id", userID,
			"action", action,
			"error", err,
		)
	}
}

func (s *auditService) List(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	query := s.db.Model(&models.AuditLog{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.AuditLog]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditLog
	if err := query.Scopes(pagination.Paginate(page)).
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return pagination.PageResponse[models.AuditLog]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pagination.NewPageResponse(entries, page.Page, page.PageSize, total), nil
}
