package services

import (
	"gorm.io/gorm"

	"ledgerlens/internal/classifier"
	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/logger"
	"ledgerlens/internal/models"
	"ledgerlens/internal/pagination"
	"ledgerlens/internal/payroll"
)

// PayrollSyncResult summarizes one payroll sync pass.
type PayrollSyncResult struct {
	LogsCreated      int `json:"logs_created"`
	EmployeesCreated int `json:"employees_created"`
	RowsSkipped      int `json:"rows_skipped"`
}

// PayrollLogFilter narrows payroll log listings.
type PayrollLogFilter struct {
	EmployeeID *uint `form:"employee_id"`
	Year       *int  `form:"year"`
	Month      *int  `form:"month" binding:"omitempty,period_month"`
}

type payrollService struct {
	db         *gorm.DB
	categories CategoryService
	users      UserService
	audit      AuditService
}

// NewPayrollService creates a payroll service over the given database.
func NewPayrollService(db *gorm.DB, categories CategoryService, users UserService, audit AuditService) PayrollService {
	return &payrollService{db: db, categories: categories, users: users, audit: audit}
}

// SyncPayroll walks every payroll-classified debit, extracts the employee
// name and pay period from the memo, and materializes employees and
// payroll logs. The sync is idempotent: a transaction that already has a
// log is left alone, so re-running over the same ledger is a no-op. Rows
// whose memo does not fit the name pattern are skipped, never failed.
func (s *payrollService) SyncPayroll(userID uint) (*PayrollSyncResult, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	categoryIDs, err := s.payrollCategoryIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(categoryIDs) == 0 {
		return &PayrollSyncResult{}, nil
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND category_id IN ? AND debit > 0", userID, categoryIDs).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logged, err := s.loggedTransactionIDs(userID)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeesByName(userID)
	if err != nil {
		return nil, err
	}

	var employeeCount int64
	if err := s.db.Model(&models.Employee{}).Where("user_id = ?", userID).Count(&employeeCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cfg := classifier.DefaultConfig()
	estimator := payroll.NewEstimator()
	codePrefix := payroll.CodePrefix(user.Email)

	result := &PayrollSyncResult{}
	for _, tx := range transactions {
		if logged[tx.ID] {
			continue
		}

		name, ok := payroll.ExtractName(tx.Description, cfg)
		if !ok {
			result.RowsSkipped++
			continue
		}
		period, ok := payroll.PeriodMonth(tx.Description, cfg)
		if !ok {
			result.RowsSkipped++
			continue
		}

		emp, exists := employees[name]
		if !exists {
			employeeCount++
			// Placeholder fields; the owner corrects them via the
			// employee endpoints.
			emp = &models.Employee{
				UserID:       userID,
				Name:         name,
				EmployeeCode: payroll.GenerateCode(codePrefix, int(employeeCount)),
				Position:     "Staff",
				CPFRate:      1 - payroll.DefaultNetToGrossRatio,
				OvertimeRate: 1.5,
			}
			if err := s.db.Create(emp).Error; err != nil {
				logger.Get().Warnw("failed to create employee, row skipped",
					"name", name, "transaction_id", tx.ID, "error", err)
				employeeCount--
				result.RowsSkipped++
				continue
			}
			employees[name] = emp
			result.EmployeesCreated++
		}

		est := estimator.FromNet(tx.Debit)
		log := models.PayrollLog{
			UserID:        userID,
			EmployeeID:    emp.ID,
			TransactionID: tx.ID,
			GrossSalary:   est.GrossSalary,
			CPFAmount:     est.CPFAmount,
			NetPay:        est.NetPay,
			PeriodMonth:   int(period),
			PeriodYear:    payroll.PeriodYear(tx.Date, period),
		}
		if err := s.db.Create(&log).Error; err != nil {
			logger.Get().Warnw("failed to create payroll log, row skipped",
				"transaction_id", tx.ID, "error", err)
			result.RowsSkipped++
			continue
		}
		logged[tx.ID] = true
		result.LogsCreated++

		// Latest observed gross becomes the employee's salary estimate.
		if est.GrossSalary != emp.MonthlySalary {
			if err := s.db.Model(emp).Update("monthly_salary", est.GrossSalary).Error; err != nil {
				logger.Get().Warnw("failed to update employee salary", "employee_id", emp.ID, "error", err)
			} else {
				emp.MonthlySalary = est.GrossSalary
			}
		}
	}

	s.audit.Log(userID, "payroll_sync", "payroll_log", 0, "", "")
	logger.Get().Infow("payroll sync finished",
		"user_id", userID,
		"logs_created", result.LogsCreated,
		"employees_created", result.EmployeesCreated,
		"rows_skipped", result.RowsSkipped,
	)
	return result, nil
}

func (s *payrollService) ListLogs(userID uint, filter PayrollLogFilter, page pagination.PageRequest) (pagination.PageResponse[models.PayrollLog], error) {
	page.Defaults()

	query := s.db.Model(&models.PayrollLog{}).Where("user_id = ?", userID)
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Year != nil {
		query = query.Where("period_year = ?", *filter.Year)
	}
	if filter.Month != nil {
		query = query.Where("period_month = ?", *filter.Month)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.PayrollLog]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.PayrollLog
	if err := query.Scopes(pagination.Paginate(page)).
		Order("period_year DESC, period_month DESC, id DESC").
		Preload("Employee").
		Find(&logs).Error; err != nil {
		return pagination.PageResponse[models.PayrollLog]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pagination.NewPageResponse(logs, page.Page, page.PageSize, total), nil
}

// payrollCategoryIDs resolves the category IDs payroll rows are classified
// under: the payroll liability and salaries targets.
func (s *payrollService) payrollCategoryIDs(userID uint) ([]uint, error) {
	tree, err := s.categories.LoadTree(userID)
	if err != nil {
		return nil, err
	}

	accepted := make(map[string]bool)
	for _, t := range []classifier.Target{classifier.TargetPayrollLiability, classifier.TargetSalaries} {
		for _, name := range classifier.TargetNames(t) {
			accepted[name] = true
		}
	}

	var ids []uint
	for _, n := range tree.Nodes() {
		if accepted[classifier.Normalize(n.Name)] {
			ids = append(ids, n.ID)
		}
	}
	return ids, nil
}

func (s *payrollService) loggedTransactionIDs(userID uint) (map[uint]bool, error) {
	var logs []models.PayrollLog
	if err := s.db.Select("transaction_id").Where("user_id = ?", userID).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	ids := make(map[uint]bool, len(logs))
	for _, l := range logs {
		ids[l.TransactionID] = true
	}
	return ids, nil
}

func (s *payrollService) employeesByName(userID uint) (map[string]*models.Employee, error) {
	var employees []models.Employee
	if err := s.db.Where("user_id = ?", userID).Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byName := make(map[string]*models.Employee, len(employees))
	for i := range employees {
		byName[employees[i].Name] = &employees[i]
	}
	return byName, nil
}
