package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

// PayrollRecord is one employee's pay computation for a single period.
// Monetary fields are stored exactly as computed so approved records can
// be audited without recomputation.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	BasicSalary        decimal.Decimal
	HouseRentAllowance decimal.Decimal
	TransportAllowance decimal.Decimal
	MedicalAllowance   decimal.Decimal
	OtherAllowances    decimal.Decimal
	GrossSalary        decimal.Decimal

	ProvidentFund   decimal.Decimal
	ESI             decimal.Decimal
	ProfessionalTax decimal.Decimal
	IncomeTax       decimal.Decimal
	Insurance       decimal.Decimal
	OtherDeductions decimal.Decimal
	TotalDeductions decimal.Decimal

	WorkingDays int
	PresentDays int
	LeaveDays   int

	NetSalary decimal.Decimal

	Status    PayrollStatus
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// EmployeeName is populated on reads that join the employees table.
	EmployeeName *string
}

// CanEdit reports whether the record's figures may still change.
func (p PayrollRecord) CanEdit() bool {
	return p.Status == PayrollStatusDraft
}
