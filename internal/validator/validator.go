// Package validator registers custom request validations with gin's
// underlying go-playground validator instance.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ledgerlens/internal/models"
)

// Register installs custom validation tags. Call once at startup.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("category_type", validCategoryType)
	_ = v.RegisterValidation("period_month", validPeriodMonth)
}

// validCategoryType accepts the four ledger category types.
func validCategoryType(fl validator.FieldLevel) bool {
	return models.ValidCategoryType(models.CategoryType(fl.Field().String()))
}

// validPeriodMonth accepts calendar months 1 through 12.
func validPeriodMonth(fl validator.FieldLevel) bool {
	m := fl.Field().Int()
	return m >= 1 && m <= 12
}
