package leave

import (
	"time"

	"github.com/hrportal/hr-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	Subject   string `json:"subject"`
	Reason    string `json:"reason"`
	LeaveDays int    `json:"leave_days"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{Field: "subject", Message: "is required"})
	}
	if r.LeaveDays < 1 {
		errs = append(errs, validator.ValidationError{Field: "leave_days", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideLeaveRequest struct {
	Note string `json:"note"`
}

type SetTotalLeavesRequest struct {
	TotalLeaves int `json:"total_leaves"`
}

func (r *SetTotalLeavesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TotalLeaves < 0 || r.TotalLeaves > 365 {
		errs = append(errs, validator.ValidationError{Field: "total_leaves", Message: "must be between 0 and 365"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveBalanceResponse struct {
	EmployeeID  string `json:"employee_id"`
	TotalLeaves int    `json:"total_leaves"`
	UsedLeaves  int    `json:"used_leaves"`
	Available   int    `json:"available"`
	Health      string `json:"health"`
}

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Subject      string     `json:"subject"`
	Reason       string     `json:"reason"`
	LeaveDays    int        `json:"leave_days"`
	Status       string     `json:"status"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	DecidedBy    *string    `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	DecisionNote *string    `json:"decision_note,omitempty"`
}

// LeaveRequestFilter narrows List queries. Zero values mean no
// filtering on that dimension.
type LeaveRequestFilter struct {
	EmployeeID string
	Status     LeaveRequestStatus
	Limit      int
	Offset     int
}

type ListLeaveRequestResponse struct {
	Requests []LeaveRequestResponse `json:"requests"`
	Total    int                    `json:"total"`
}
