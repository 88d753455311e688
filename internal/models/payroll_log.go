package models

// PayrollLog is one per-period payroll record derived from a classified
// payroll transaction. TransactionID is the idempotence key: at most one
// log exists per source transaction, so re-running a sync over the same
// transaction set is a no-op. Amounts are in cents.
type PayrollLog struct {
	Base
	UserID        uint  `gorm:"not null;index" json:"user_id"`
	EmployeeID    uint  `gorm:"not null;index" json:"employee_id"`
	TransactionID uint  `gorm:"not null;uniqueIndex" json:"transaction_id"`
	GrossSalary   int64 `gorm:"type:bigint;not null" json:"gross_salary"`
	CPFAmount     int64 `gorm:"type:bigint;not null" json:"cpf_amount"`
	NetPay        int64 `gorm:"type:bigint;not null" json:"net_pay"`
	PeriodMonth   int   `gorm:"not null" json:"period_month"`
	PeriodYear    int   `gorm:"not null" json:"period_year"`

	// Relationships
	Employee    Employee    `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
}
