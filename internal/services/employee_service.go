package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/models"
	"ledgerlens/internal/pagination"
)

// UpdateEmployeeRequest is the payload for correcting an inferred employee
// record.
type UpdateEmployeeRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Position      *string  `json:"position"`
	Age           *int     `json:"age" binding:"omitempty,min=16,max=100"`
	MonthlySalary *int64   `json:"monthly_salary" binding:"omitempty,min=0"`
	CPFRate       *float64 `json:"cpf_rate" binding:"omitempty,min=0,max=1"`
	OvertimeRate  *float64 `json:"overtime_rate" binding:"omitempty,min=0"`
}

type employeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates an employee service over the given database.
func NewEmployeeService(db *gorm.DB) EmployeeService {
	return &employeeService{db: db}
}

func (s *employeeService) List(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.Employee], error) {
	page.Defaults()

	query := s.db.Model(&models.Employee{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.Employee]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var employees []models.Employee
	if err := query.Scopes(pagination.Paginate(page)).
		Order("name ASC").
		Find(&employees).Error; err != nil {
		return pagination.PageResponse[models.Employee]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pagination.NewPageResponse(employees, page.Page, page.PageSize, total), nil
}

func (s *employeeService) GetByID(userID, id uint) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &emp, nil
}

func (s *employeeService) Update(userID, id uint, req UpdateEmployeeRequest) (*models.Employee, error) {
	emp, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Age != nil {
		emp.Age = *req.Age
	}
	if req.MonthlySalary != nil {
		emp.MonthlySalary = *req.MonthlySalary
	}
	if req.CPFRate != nil {
		emp.CPFRate = *req.CPFRate
	}
	if req.OvertimeRate != nil {
		emp.OvertimeRate = *req.OvertimeRate
	}

	if err := s.db.Save(emp).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return emp, nil
}

func (s *employeeService) Delete(userID, id uint) error {
	emp, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(emp).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
