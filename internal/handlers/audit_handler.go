package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/middleware"
	"ledgerlens/internal/pagination"
	"ledgerlens/internal/services"
)

// AuditHandler serves the audit trail endpoint.
type AuditHandler struct {
	audit services.AuditService
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(audit services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List godoc
// @Summary List audit log entries, newest first
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} pagination.PageResponse[models.AuditLog]
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}
	result, err := h.audit.List(middleware.UserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
