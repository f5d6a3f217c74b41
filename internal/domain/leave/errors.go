package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLedgerNotFound               = errors.New("leave ledger not found")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrDeductionFailed              = errors.New("leave deduction failed")
	ErrRestoreExceedsUsed           = errors.New("restore would exceed used leaves")
	ErrInvalidLeaveDays             = errors.New("leave days must be positive")
	ErrInvalidTotalLeaves           = errors.New("invalid total leaves")
)
