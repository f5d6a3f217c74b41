package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordNotDraft      = errors.New("payroll record is not in draft status")
	ErrPayrollRecordNotApproved   = errors.New("payroll record is not in approved status")
	ErrCannotDeletePaidRecord     = errors.New("paid payroll record cannot be deleted")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrInvalidAttendance          = errors.New("invalid attendance figures")
)
