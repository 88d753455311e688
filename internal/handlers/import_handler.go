package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/middleware"
	"ledgerlens/internal/pagination"
	"ledgerlens/internal/services"
)

// ImportHandler serves ledger and report import endpoints.
type ImportHandler struct {
	imports services.ImportService
}

// NewImportHandler creates an import handler.
func NewImportHandler(imports services.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// LedgerImportRequest is the ledger import payload.
type LedgerImportRequest struct {
	Source string               `json:"source" binding:"required"`
	Rows   []services.LedgerRow `json:"rows" binding:"required"`
}

// ReportImportRequest is the report-sheet import payload.
type ReportImportRequest struct {
	Source string                 `json:"source" binding:"required"`
	Sheets []services.ReportSheet `json:"sheets" binding:"required"`
}

// ImportLedger godoc
// @Summary Import raw bank-ledger rows
// @Description Rows are parsed, deduplicated against prior imports, and
// @Description classified through the rule cascade. Unparseable rows are
// @Description rejected; rows no rule matches are imported uncategorized.
// @Tags imports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body LedgerImportRequest true "Ledger rows"
// @Success 201 {object} models.ImportRun
// @Failure 400 {object} errors.AppError
// @Router /imports/ledger [post]
func (h *ImportHandler) ImportLedger(c *gin.Context) {
	var req LedgerImportRequest
	if !bindJSON(c, &req) {
		return
	}
	run, err := h.imports.ImportLedger(middleware.UserID(c), req.Source, req.Rows)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

// ImportReport godoc
// @Summary Import structured report sheets
// @Description Sheet rows are resolved into the category tree by
// @Description indentation; year-labeled amounts become annual summaries.
// @Tags imports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ReportImportRequest true "Report sheets"
// @Success 201 {object} models.ImportRun
// @Failure 400 {object} errors.AppError
// @Router /imports/report [post]
func (h *ImportHandler) ImportReport(c *gin.Context) {
	var req ReportImportRequest
	if !bindJSON(c, &req) {
		return
	}
	run, err := h.imports.ImportReport(middleware.UserID(c), req.Source, req.Sheets)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

// GetRun godoc
// @Summary Get one import run
// @Tags imports
// @Security BearerAuth
// @Produce json
// @Param id path string true "Import run ID"
// @Success 200 {object} models.ImportRun
// @Failure 404 {object} errors.AppError
// @Router /imports/runs/{id} [get]
func (h *ImportHandler) GetRun(c *gin.Context) {
	run, err := h.imports.GetRun(middleware.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRuns godoc
// @Summary List import runs, newest first
// @Tags imports
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} pagination.PageResponse[models.ImportRun]
// @Router /imports/runs [get]
func (h *ImportHandler) ListRuns(c *gin.Context) {
	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}
	result, err := h.imports.ListRuns(middleware.UserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
