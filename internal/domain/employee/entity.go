package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	FullName         string
	Email            string
	Department       string
	BaseSalary       decimal.Decimal
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// IsActive reports whether the employee participates in payroll runs and
// leave accounting.
func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive
}
