package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/middleware"
	"ledgerlens/internal/pagination"
	"ledgerlens/internal/services"
)

// PayrollHandler serves payroll sync, payroll log, and employee endpoints.
type PayrollHandler struct {
	payroll   services.PayrollService
	employees services.EmployeeService
}

// NewPayrollHandler creates a payroll handler.
func NewPayrollHandler(payroll services.PayrollService, employees services.EmployeeService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll, employees: employees}
}

// Sync godoc
// @Summary Infer employees and payroll logs from classified transactions
// @Description Idempotent: transactions that already have a payroll log
// @Description are left untouched.
// @Tags payroll
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.PayrollSyncResult
// @Router /payroll/sync [post]
func (h *PayrollHandler) Sync(c *gin.Context) {
	result, err := h.payroll.SyncPayroll(middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListLogs godoc
// @Summary List payroll logs
// @Tags payroll
// @Security BearerAuth
// @Produce json
// @Param employee_id query int false "Filter by employee"
// @Param year query int false "Filter by period year"
// @Param month query int false "Filter by period month (1-12)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} pagination.PageResponse[models.PayrollLog]
// @Router /payroll/logs [get]
func (h *PayrollHandler) ListLogs(c *gin.Context) {
	var filter services.PayrollLogFilter
	if !bindQuery(c, &filter) {
		return
	}
	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}
	result, err := h.payroll.ListLogs(middleware.UserID(c), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListEmployees godoc
// @Summary List inferred employees
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} pagination.PageResponse[models.Employee]
// @Router /employees [get]
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}
	result, err := h.employees.List(middleware.UserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEmployee godoc
// @Summary Get one employee
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} models.Employee
// @Failure 404 {object} errors.AppError
// @Router /employees/{id} [get]
func (h *PayrollHandler) GetEmployee(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	emp, err := h.employees.GetByID(middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// UpdateEmployee godoc
// @Summary Correct an inferred employee record
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param request body services.UpdateEmployeeRequest true "Updates"
// @Success 200 {object} models.Employee
// @Failure 404 {object} errors.AppError
// @Router /employees/{id} [put]
func (h *PayrollHandler) UpdateEmployee(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	emp, err := h.employees.Update(middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee godoc
// @Summary Delete an employee record
// @Tags employees
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 204
// @Failure 404 {object} errors.AppError
// @Router /employees/{id} [delete]
func (h *PayrollHandler) DeleteEmployee(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.employees.Delete(middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
