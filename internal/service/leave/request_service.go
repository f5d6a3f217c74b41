package leave

import (
	"context"
	"fmt"

	"github.com/hrportal/hr-backend-go/internal/domain/employee"
	"github.com/hrportal/hr-backend-go/internal/domain/leave"
	"github.com/hrportal/hr-backend-go/internal/pkg/database"
)

type RequestServiceImpl struct {
	tx            database.TxRunner
	requestRepo   leave.LeaveRequestRepository
	employeeRepo  employee.EmployeeRepository
	ledgerService leave.LedgerService
}

func NewRequestService(
	tx database.TxRunner,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	ledgerService leave.LedgerService,
) leave.RequestService {
	return &RequestServiceImpl{
		tx:            tx,
		requestRepo:   requestRepo,
		employeeRepo:  employeeRepo,
		ledgerService: ledgerService,
	}
}

// Submit files a new request after checking the employee could cover it
// today. The balance is only charged on approval, and the charge is not
// re-gated there, so a balance drained in between goes into deficit.
func (s *RequestServiceImpl) Submit(ctx context.Context, employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	sufficient, err := s.ledgerService.HasSufficientBalance(ctx, employeeID, req.LeaveDays)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !sufficient {
		return leave.LeaveRequestResponse{}, fmt.Errorf("%w: requested %d days", leave.ErrInsufficientBalance, req.LeaveDays)
	}

	created, err := s.requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		Subject:    req.Subject,
		Reason:     req.Reason,
		LeaveDays:  req.LeaveDays,
		Status:     leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return mapToRequestResponse(created), nil
}

func (s *RequestServiceImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return mapToRequestResponse(request), nil
}

func (s *RequestServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	resp := leave.ListLeaveRequestResponse{
		Requests: make([]leave.LeaveRequestResponse, 0, len(requests)),
		Total:    total,
	}
	for _, request := range requests {
		resp.Requests = append(resp.Requests, mapToRequestResponse(request))
	}
	return resp, nil
}

// Approve flips the request to approved and charges the ledger in one
// transaction. The status flip is a compare-and-set on pending, so a
// request can only ever be charged once; if the deduction fails the
// flip rolls back with it.
func (s *RequestServiceImpl) Approve(ctx context.Context, id, approverID string, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !request.IsPending() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		moved, err := s.requestRepo.UpdateStatus(ctx, id,
			leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved,
			approverID, req.Note)
		if err != nil {
			return err
		}
		if !moved {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if err := s.ledgerService.Deduct(ctx, request.EmployeeID, request.LeaveDays); err != nil {
			return fmt.Errorf("%w: %s", leave.ErrDeductionFailed, err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return s.GetByID(ctx, id)
}

func (s *RequestServiceImpl) Deny(ctx context.Context, id, approverID string, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !request.IsPending() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	moved, err := s.requestRepo.UpdateStatus(ctx, id,
		leave.LeaveRequestStatusPending, leave.LeaveRequestStatusDenied,
		approverID, req.Note)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !moved {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return s.GetByID(ctx, id)
}

// Cancel lets the owner withdraw a request. Canceling an approved
// request restores the charged days inside the same transaction as the
// status flip.
func (s *RequestServiceImpl) Cancel(ctx context.Context, id, employeeID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	switch request.Status {
	case leave.LeaveRequestStatusPending:
		moved, err := s.requestRepo.UpdateStatus(ctx, id,
			leave.LeaveRequestStatusPending, leave.LeaveRequestStatusCanceled,
			employeeID, "")
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if !moved {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
		}

	case leave.LeaveRequestStatusApproved:
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			moved, err := s.requestRepo.UpdateStatus(ctx, id,
				leave.LeaveRequestStatusApproved, leave.LeaveRequestStatusCanceled,
				employeeID, "")
			if err != nil {
				return err
			}
			if !moved {
				return leave.ErrLeaveRequestAlreadyProcessed
			}
			return s.ledgerService.Restore(ctx, request.EmployeeID, request.LeaveDays)
		})
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}

	default:
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return s.GetByID(ctx, id)
}

func mapToRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:           request.ID,
		EmployeeID:   request.EmployeeID,
		Subject:      request.Subject,
		Reason:       request.Reason,
		LeaveDays:    request.LeaveDays,
		Status:       string(request.Status),
		SubmittedAt:  request.SubmittedAt,
		DecidedBy:    request.DecidedBy,
		DecidedAt:    request.DecidedAt,
		DecisionNote: request.DecisionNote,
	}
}
