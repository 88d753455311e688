package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/middleware"
	"ledgerlens/internal/pagination"
	"ledgerlens/internal/services"
)

// TransactionHandler serves ledger transaction endpoints.
type TransactionHandler struct {
	transactions services.TransactionService
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler(transactions services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// List godoc
// @Summary List transactions
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Param category_id query int false "Filter by category"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param search query string false "Description substring"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} pagination.PageResponse[models.Transaction]
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var filter services.TransactionFilter
	if !bindQuery(c, &filter) {
		return
	}
	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	result, err := h.transactions.List(middleware.UserID(c), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get one transaction
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} errors.AppError
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	tx, err := h.transactions.GetByID(middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} errors.AppError
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.transactions.Delete(middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUncategorized godoc
// @Summary List rows the classifier rejected, for manual review
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} pagination.PageResponse[models.Transaction]
// @Router /transactions/uncategorized [get]
func (h *TransactionHandler) ListUncategorized(c *gin.Context) {
	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}
	result, err := h.transactions.ListUncategorized(middleware.UserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
