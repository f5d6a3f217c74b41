package leave

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/hr-backend-go/internal/domain/employee"
	"github.com/hrportal/hr-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(ids ...string) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	for _, id := range ids {
		repo.employees[id] = employee.Employee{
			ID:               id,
			FullName:         "Test Employee",
			Email:            id + "@example.com",
			BaseSalary:       decimal.NewFromInt(50000),
			EmploymentStatus: employee.EmploymentStatusActive,
		}
	}
	return repo
}

func (r *fakeEmployeeRepo) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	newEmployee.ID = uuid.NewString()
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active []employee.Employee
	for _, emp := range r.employees {
		if emp.IsActive() {
			active = append(active, emp)
		}
	}
	return active, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		all = append(all, emp)
	}
	return all, nil
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	ledgers map[string]leave.LeaveLedger

	// addUsedErr, when set, makes the next AddUsed fail.
	addUsedErr error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{ledgers: map[string]leave.LeaveLedger{}}
}

func (r *fakeLedgerRepo) CreateIfAbsent(_ context.Context, employeeID string, totalLeaves int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ledgers[employeeID]; ok {
		return nil
	}
	r.ledgers[employeeID] = leave.LeaveLedger{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		TotalLeaves: totalLeaves,
		UsedLeaves:  0,
	}
	return nil
}

func (r *fakeLedgerRepo) GetByEmployee(_ context.Context, employeeID string) (leave.LeaveLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ledger, ok := r.ledgers[employeeID]
	if !ok {
		return leave.LeaveLedger{}, leave.ErrLedgerNotFound
	}
	return ledger, nil
}

func (r *fakeLedgerRepo) AddUsed(_ context.Context, employeeID string, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addUsedErr != nil {
		return r.addUsedErr
	}
	ledger, ok := r.ledgers[employeeID]
	if !ok {
		return leave.ErrLedgerNotFound
	}
	ledger.UsedLeaves += days
	r.ledgers[employeeID] = ledger
	return nil
}

func (r *fakeLedgerRepo) SubtractUsed(_ context.Context, employeeID string, days int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ledger, ok := r.ledgers[employeeID]
	if !ok {
		return false, leave.ErrLedgerNotFound
	}
	if ledger.UsedLeaves-days < 0 {
		return false, nil
	}
	ledger.UsedLeaves -= days
	r.ledgers[employeeID] = ledger
	return true, nil
}

func (r *fakeLedgerRepo) SetTotal(_ context.Context, employeeID string, totalLeaves int) (leave.LeaveLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ledger, ok := r.ledgers[employeeID]
	if !ok {
		return leave.LeaveLedger{}, leave.ErrLedgerNotFound
	}
	ledger.TotalLeaves = totalLeaves
	r.ledgers[employeeID] = ledger
	return ledger, nil
}

func (r *fakeLedgerRepo) snapshot() map[string]leave.LeaveLedger {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]leave.LeaveLedger, len(r.ledgers))
	for k, v := range r.ledgers {
		copied[k] = v
	}
	return copied
}

func (r *fakeLedgerRepo) restore(state map[string]leave.LeaveLedger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledgers = state
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]leave.LeaveRequest{}}
}

func (r *fakeRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = uuid.NewString()
	request.SubmittedAt = time.Now()
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []leave.LeaveRequest
	for _, request := range r.requests {
		if filter.EmployeeID != "" && request.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		matched = append(matched, request)
	}
	return matched, len(matched), nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id string, from, to leave.LeaveRequestStatus, decidedBy, note string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return false, nil
	}
	if request.Status != from {
		return false, nil
	}
	now := time.Now()
	request.Status = to
	request.DecidedBy = &decidedBy
	request.DecidedAt = &now
	if note != "" {
		request.DecisionNote = &note
	}
	r.requests[id] = request
	return true, nil
}

func (r *fakeRequestRepo) snapshot() map[string]leave.LeaveRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]leave.LeaveRequest, len(r.requests))
	for k, v := range r.requests {
		copied[k] = v
	}
	return copied
}

func (r *fakeRequestRepo) restore(state map[string]leave.LeaveRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = state
}

// fakeTxRunner emulates transactional rollback by snapshotting the fake
// stores before the callback and restoring them when it fails.
type fakeTxRunner struct {
	ledgers  *fakeLedgerRepo
	requests *fakeRequestRepo
}

func (t *fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	ledgerState := t.ledgers.snapshot()
	requestState := t.requests.snapshot()
	if err := fn(ctx); err != nil {
		t.ledgers.restore(ledgerState)
		t.requests.restore(requestState)
		return err
	}
	return nil
}
