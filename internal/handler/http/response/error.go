package response

import (
	"errors"
	"net/http"

	"github.com/hrportal/hr-backend-go/internal/domain/employee"
	"github.com/hrportal/hr-backend-go/internal/domain/leave"
	"github.com/hrportal/hr-backend-go/internal/domain/payroll"
	"github.com/hrportal/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordNotDraft):
		Conflict(w, "Payroll record is not in draft status")
	case errors.Is(err, payroll.ErrPayrollRecordNotApproved):
		Conflict(w, "Payroll record is not in approved status")
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Paid payroll record cannot be deleted")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidAttendance):
		BadRequest(w, "Invalid attendance figures", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLedgerNotFound):
		NotFound(w, "Leave ledger not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrDeductionFailed):
		Conflict(w, "Leave deduction failed")
	case errors.Is(err, leave.ErrRestoreExceedsUsed):
		Conflict(w, "Restore would exceed used leaves")
	case errors.Is(err, leave.ErrInvalidLeaveDays):
		BadRequest(w, "Leave days must be positive", nil)
	case errors.Is(err, leave.ErrInvalidTotalLeaves):
		BadRequest(w, "Invalid total leaves", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
