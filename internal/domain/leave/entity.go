package leave

import "time"

// DefaultTotalLeaves is granted to an employee whose ledger has never
// been touched.
const DefaultTotalLeaves = 40

// LeaveLedger tracks one employee's annual leave allowance. Available
// days are always derived, never stored.
type LeaveLedger struct {
	ID          string
	EmployeeID  string
	TotalLeaves int
	UsedLeaves  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available returns the remaining balance. It can go negative when an
// administrator lowers the total below what is already used.
func (l LeaveLedger) Available() int {
	return l.TotalLeaves - l.UsedLeaves
}

type BalanceHealth string

const (
	BalanceHealthy   BalanceHealth = "healthy"
	BalanceLow       BalanceHealth = "low"
	BalanceExhausted BalanceHealth = "exhausted"
	BalanceDeficit   BalanceHealth = "deficit"
)

// Health labels the balance for reporting. Low means 10% or less of the
// total allowance remains.
func (l LeaveLedger) Health() BalanceHealth {
	available := l.Available()
	switch {
	case available < 0:
		return BalanceDeficit
	case available == 0:
		return BalanceExhausted
	case available*10 <= l.TotalLeaves:
		return BalanceLow
	default:
		return BalanceHealthy
	}
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusDenied   LeaveRequestStatus = "denied"
	LeaveRequestStatusCanceled LeaveRequestStatus = "canceled"
)

type LeaveRequest struct {
	ID           string
	EmployeeID   string
	Subject      string
	Reason       string
	LeaveDays    int
	Status       LeaveRequestStatus
	SubmittedAt  time.Time
	DecidedBy    *string
	DecidedAt    *time.Time
	DecisionNote *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPending reports whether the request still awaits a decision.
func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}
