package employee

import (
	"github.com/hrportal/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	HireDate   string          `json:"hire_date"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string          `json:"id"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	Department       string          `json:"department"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	EmploymentStatus string          `json:"employment_status"`
	HireDate         string          `json:"hire_date"`
}
