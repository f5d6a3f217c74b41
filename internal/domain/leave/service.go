package leave

import "context"

type LedgerService interface {
	GetBalance(ctx context.Context, employeeID string) (LeaveBalanceResponse, error)
	HasSufficientBalance(ctx context.Context, employeeID string, days int) (bool, error)
	Deduct(ctx context.Context, employeeID string, days int) error
	Restore(ctx context.Context, employeeID string, days int) error
	SetTotal(ctx context.Context, employeeID string, req SetTotalLeavesRequest) (LeaveBalanceResponse, error)
}

type RequestService interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	Approve(ctx context.Context, id, approverID string, req DecideLeaveRequest) (LeaveRequestResponse, error)
	Deny(ctx context.Context, id, approverID string, req DecideLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, id, employeeID string) (LeaveRequestResponse, error)
}
