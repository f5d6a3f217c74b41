package payroll

import (
	"time"

	"github.com/hrportal/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	EmployeeID      string          `json:"employee_id"`
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	OtherAllowances decimal.Decimal `json:"other_allowances"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	WorkingDays     *int            `json:"working_days,omitempty"`
	PresentDays     *int            `json:"present_days,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be a valid year"})
	}
	if r.OtherAllowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_allowances", Message: "must be non-negative"})
	}
	if r.OtherDeductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "must be non-negative"})
	}
	if r.WorkingDays != nil && (*r.WorkingDays < 1 || *r.WorkingDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be between 1 and 31"})
	}
	if r.PresentDays != nil && *r.PresentDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "present_days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkGeneratePayrollRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
}

func (r *BulkGeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must not be empty"})
	}
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must contain valid UUIDs"})
			break
		}
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be a valid year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePayrollRecordRequest patches a draft record. Nil fields keep
// their current value; any change triggers a full recomputation.
type UpdatePayrollRecordRequest struct {
	BasicSalary     *decimal.Decimal `json:"basic_salary,omitempty"`
	OtherAllowances *decimal.Decimal `json:"other_allowances,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`
	WorkingDays     *int             `json:"working_days,omitempty"`
	PresentDays     *int             `json:"present_days,omitempty"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.OtherAllowances != nil && r.OtherAllowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_allowances", Message: "must be non-negative"})
	}
	if r.OtherDeductions != nil && r.OtherDeductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "must be non-negative"})
	}
	if r.WorkingDays != nil && (*r.WorkingDays < 1 || *r.WorkingDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be between 1 and 31"})
	}
	if r.PresentDays != nil && *r.PresentDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "present_days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkStatusRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *BulkStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "must not be empty"})
	}
	for _, id := range r.RecordIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "must contain valid UUIDs"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`

	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HouseRentAllowance decimal.Decimal `json:"house_rent_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	OtherAllowances    decimal.Decimal `json:"other_allowances"`
	GrossSalary        decimal.Decimal `json:"gross_salary"`

	ProvidentFund   decimal.Decimal `json:"provident_fund"`
	ESI             decimal.Decimal `json:"esi"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	Insurance       decimal.Decimal `json:"insurance"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`

	WorkingDays int `json:"working_days"`
	PresentDays int `json:"present_days"`
	LeaveDays   int `json:"leave_days"`

	NetSalary decimal.Decimal `json:"net_salary"`

	Status       string     `json:"status"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PayrollFilter narrows List queries. Zero values mean no filtering on
// that dimension.
type PayrollFilter struct {
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	Status      PayrollStatus
	Limit       int
	Offset      int
}

type ListPayrollRecordResponse struct {
	Records []PayrollRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}

type PayrollSummaryResponse struct {
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	RecordCount     int             `json:"record_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	CountByStatus   map[string]int  `json:"count_by_status"`
}

type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type BulkGenerateResponse struct {
	Generated []PayrollRecordResponse `json:"generated"`
	Skipped   []SkippedEmployee       `json:"skipped"`
}

type SkippedRecord struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

type BulkStatusResponse struct {
	Updated []string        `json:"updated"`
	Skipped []SkippedRecord `json:"skipped"`
}
