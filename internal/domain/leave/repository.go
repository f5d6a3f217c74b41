package leave

import "context"

type LeaveLedgerRepository interface {
	// CreateIfAbsent inserts a default ledger for the employee unless one
	// already exists. It never fails on a concurrent insert.
	CreateIfAbsent(ctx context.Context, employeeID string, totalLeaves int) error
	GetByEmployee(ctx context.Context, employeeID string) (LeaveLedger, error)
	// AddUsed atomically increments used leaves. There is no upper
	// clamp, so the balance may go negative.
	AddUsed(ctx context.Context, employeeID string, days int) error
	// SubtractUsed atomically decrements used leaves, refusing to go
	// below zero. It reports whether the decrement applied.
	SubtractUsed(ctx context.Context, employeeID string, days int) (bool, error)
	SetTotal(ctx context.Context, employeeID string, totalLeaves int) (LeaveLedger, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int, error)
	// UpdateStatus transitions the request from one status to another,
	// recording the decision, and reports whether a row actually changed.
	UpdateStatus(ctx context.Context, id string, from, to LeaveRequestStatus, decidedBy, note string) (bool, error)
}
