package models

// Employee is a staff member inferred from payroll transaction text. Records
// are created lazily the first time a payroll-pattern name is seen and are
// never merged or deleted automatically; collisions resolve by exact match
// on the cleaned name.
type Employee struct {
	Base
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	Name          string  `gorm:"not null" json:"name"`
	EmployeeCode  string  `gorm:"not null" json:"employee_code"`
	Position      string  `json:"position"`
	Age           int     `json:"age"`
	MonthlySalary int64   `gorm:"type:bigint" json:"monthly_salary"`
	CPFRate       float64 `json:"cpf_rate"`
	OvertimeRate  float64 `json:"overtime_rate"`

	// Relationships
	PayrollLogs []PayrollLog `gorm:"foreignKey:EmployeeID" json:"payroll_logs,omitempty"`
}
