// Package services contains the business logic layer. Handlers depend on
// the interfaces defined here; constructors return implementations bound
// to a *gorm.DB.
package services

import (
	"time"

	"ledgerlens/internal/chart"
	"ledgerlens/internal/forecast"
	"ledgerlens/internal/models"
	"ledgerlens/internal/pagination"
)

// UserService handles registration, authentication, and profiles.
type UserService interface {
	Register(req RegisterRequest) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshToken(userID uint, tokenHash string) error
	ValidateRefreshToken(userID uint, tokenHash string) (*models.User, error)
	ClearRefreshToken(userID uint) error
	GetByID(id uint) (*models.User, error)
}

// CategoryService manages the chart of accounts.
type CategoryService interface {
	Create(userID uint, req CreateCategoryRequest) (*models.Category, error)
	Update(userID, id uint, req UpdateCategoryRequest) (*models.Category, error)
	Delete(userID, id uint) error
	GetByID(userID, id uint) (*models.Category, error)
	List(userID uint) ([]models.Category, error)
	ListRoots(userID uint) ([]models.Category, error)
	EnsureDefaults(userID uint) error
	LoadTree(userID uint) (*chart.Tree, error)
	Creator(userID uint) chart.Creator
}

// TransactionService reads and maintains imported ledger rows.
type TransactionService interface {
	List(userID uint, filter TransactionFilter, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error)
	GetByID(userID, id uint) (*models.Transaction, error)
	Delete(userID, id uint) error
	LatestDate(userID uint) (time.Time, error)
	InRange(userID uint, from, to time.Time) ([]models.Transaction, error)
	ListUncategorized(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error)
}

// ImportService ingests bank-ledger rows and report sheets.
type ImportService interface {
	ImportLedger(userID uint, source string, rows []LedgerRow) (*models.ImportRun, error)
	ImportReport(userID uint, source string, sheets []ReportSheet) (*models.ImportRun, error)
	GetRun(userID uint, id string) (*models.ImportRun, error)
	ListRuns(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.ImportRun], error)
}

// PayrollService infers employees and payroll logs from classified rows.
type PayrollService interface {
	SyncPayroll(userID uint) (*PayrollSyncResult, error)
	ListLogs(userID uint, filter PayrollLogFilter, page pagination.PageRequest) (pagination.PageResponse[models.PayrollLog], error)
}

// EmployeeService manages inferred employee records.
type EmployeeService interface {
	List(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.Employee], error)
	GetByID(userID, id uint) (*models.Employee, error)
	Update(userID, id uint, req UpdateEmployeeRequest) (*models.Employee, error)
	Delete(userID, id uint) error
}

// ForecastService projects cash flow from transaction history.
type ForecastService interface {
	GetForecast(userID uint, days int) (*forecast.Result, error)
}

// AuditService records sensitive operations.
type AuditService interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress, changes string)
	List(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.AuditLog], error)
}
