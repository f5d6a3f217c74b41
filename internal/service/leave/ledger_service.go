package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrportal/hr-backend-go/internal/domain/employee"
	"github.com/hrportal/hr-backend-go/internal/domain/leave"
)

type LedgerServiceImpl struct {
	ledgerRepo   leave.LeaveLedgerRepository
	employeeRepo employee.EmployeeRepository
}

func NewLedgerService(
	ledgerRepo leave.LeaveLedgerRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LedgerService {
	return &LedgerServiceImpl{
		ledgerRepo:   ledgerRepo,
		employeeRepo: employeeRepo,
	}
}

// ensureLedger lazily creates the default ledger so every employee has
// a balance the first time it is asked for.
func (s *LedgerServiceImpl) ensureLedger(ctx context.Context, employeeID string) (leave.LeaveLedger, error) {
	ledger, err := s.ledgerRepo.GetByEmployee(ctx, employeeID)
	if err == nil {
		return ledger, nil
	}
	if !errors.Is(err, leave.ErrLedgerNotFound) {
		return leave.LeaveLedger{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveLedger{}, err
	}
	if err := s.ledgerRepo.CreateIfAbsent(ctx, employeeID, leave.DefaultTotalLeaves); err != nil {
		return leave.LeaveLedger{}, err
	}
	return s.ledgerRepo.GetByEmployee(ctx, employeeID)
}

func (s *LedgerServiceImpl) GetBalance(ctx context.Context, employeeID string) (leave.LeaveBalanceResponse, error) {
	ledger, err := s.ensureLedger(ctx, employeeID)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return mapToBalanceResponse(ledger), nil
}

func (s *LedgerServiceImpl) HasSufficientBalance(ctx context.Context, employeeID string, days int) (bool, error) {
	if days < 1 {
		return false, leave.ErrInvalidLeaveDays
	}
	ledger, err := s.ensureLedger(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return ledger.Available() >= days, nil
}

// Deduct atomically charges days against the employee's balance. No
// sufficiency check happens here: the balance may go into deficit, and
// callers gate on HasSufficientBalance where policy demands it.
func (s *LedgerServiceImpl) Deduct(ctx context.Context, employeeID string, days int) error {
	if days < 1 {
		return leave.ErrInvalidLeaveDays
	}
	if _, err := s.ensureLedger(ctx, employeeID); err != nil {
		return err
	}

	return s.ledgerRepo.AddUsed(ctx, employeeID, days)
}

// Restore returns previously deducted days. It refuses to push used
// leaves below zero.
func (s *LedgerServiceImpl) Restore(ctx context.Context, employeeID string, days int) error {
	if days < 1 {
		return leave.ErrInvalidLeaveDays
	}
	if _, err := s.ensureLedger(ctx, employeeID); err != nil {
		return err
	}

	applied, err := s.ledgerRepo.SubtractUsed(ctx, employeeID, days)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: requested %d days", leave.ErrRestoreExceedsUsed, days)
	}
	return nil
}

func (s *LedgerServiceImpl) SetTotal(ctx context.Context, employeeID string, req leave.SetTotalLeavesRequest) (leave.LeaveBalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	if _, err := s.ensureLedger(ctx, employeeID); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	ledger, err := s.ledgerRepo.SetTotal(ctx, employeeID, req.TotalLeaves)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return mapToBalanceResponse(ledger), nil
}

func mapToBalanceResponse(ledger leave.LeaveLedger) leave.LeaveBalanceResponse {
	return leave.LeaveBalanceResponse{
		EmployeeID:  ledger.EmployeeID,
		TotalLeaves: ledger.TotalLeaves,
		UsedLeaves:  ledger.UsedLeaves,
		Available:   ledger.Available(),
		Health:      string(ledger.Health()),
	}
}
