package payroll

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/hrportal/hr-backend-go/internal/domain/employee"
	"github.com/hrportal/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmployeeID  = "a7c3e4e0-0000-4000-8000-000000000001"
	otherEmployeeID = "a7c3e4e0-0000-4000-8000-000000000002"
)

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:               testEmployeeID,
			FullName:         "Asha Nair",
			Email:            "asha@example.com",
			BaseSalary:       decimal.NewFromInt(50000),
			EmploymentStatus: employee.EmploymentStatusActive,
		},
		otherEmployeeID: {
			ID:               otherEmployeeID,
			FullName:         "Ravi Menon",
			Email:            "ravi@example.com",
			BaseSalary:       decimal.NewFromInt(30000),
			EmploymentStatus: employee.EmploymentStatusActive,
		},
	}}
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
	return r.GetActive(context.Background())
}

type periodKey struct {
	employeeID string
	month      int
	year       int
}

type fakePayrollRepo struct {
	mu      sync.Mutex
	records map[string]payroll.PayrollRecord
	periods map[periodKey]string
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		records: map[string]payroll.PayrollRecord{},
		periods: map[periodKey]string{},
	}
}

func (r *fakePayrollRepo) Create(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := periodKey{record.EmployeeID, record.PeriodMonth, record.PeriodYear}
	if _, exists := r.periods[key]; exists {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
	}
	record.ID = uuid.NewString()
	r.records[record.ID] = record
	r.periods[key] = record.ID
	return record, nil
}

func (r *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return record, nil
}

func (r *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.periods[periodKey{employeeID, month, year}]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.records[id], nil
}

func (r *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []payroll.PayrollRecord
	for _, record := range r.records {
		if filter.EmployeeID != "" && record.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		if filter.PeriodMonth != 0 && record.PeriodMonth != filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != 0 && record.PeriodYear != filter.PeriodYear {
			continue
		}
		matched = append(matched, record)
	}
	return matched, len(matched), nil
}

func (r *fakePayrollRepo) Update(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	r.records[record.ID] = record
	return record, nil
}

func (r *fakePayrollRepo) UpdateStatus(_ context.Context, id string, from, to payroll.PayrollStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.Status != from {
		return false, nil
	}
	record.Status = to
	r.records[id] = record
	return true, nil
}

func (r *fakePayrollRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.periods, periodKey{record.EmployeeID, record.PeriodMonth, record.PeriodYear})
	delete(r.records, id)
	return nil
}

func (r *fakePayrollRepo) Summary(_ context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp := payroll.PayrollSummaryResponse{
		PeriodMonth:   month,
		PeriodYear:    year,
		CountByStatus: map[string]int{},
	}
	for _, record := range r.records {
		if record.PeriodMonth != month || record.PeriodYear != year {
			continue
		}
		resp.RecordCount++
		resp.TotalGross = resp.TotalGross.Add(record.GrossSalary)
		resp.TotalDeductions = resp.TotalDeductions.Add(record.TotalDeductions)
		resp.TotalNet = resp.TotalNet.Add(record.NetSalary)
		resp.CountByStatus[string(record.Status)]++
	}
	return resp, nil
}

func newService(t *testing.T) payroll.PayrollService {
	t.Helper()
	return NewPayrollService(newFakePayrollRepo(), newFakeEmployeeRepo())
}

func generateReq(employeeID string) payroll.GeneratePayrollRequest {
	return payroll.GeneratePayrollRequest{
		EmployeeID:      employeeID,
		PeriodMonth:     3,
		PeriodYear:      2026,
		OtherAllowances: decimal.Zero,
		OtherDeductions: decimal.Zero,
	}
}

func TestGenerateDerivesFullBreakdown(t *testing.T) {
	svc := newService(t)

	record, err := svc.Generate(context.Background(), generateReq(testEmployeeID))
	require.NoError(t, err)

	assert.Equal(t, string(payroll.PayrollStatusDraft), record.Status)
	assert.Equal(t, 22, record.WorkingDays)
	assert.Equal(t, 22, record.PresentDays)
	assert.Equal(t, 0, record.LeaveDays)

	assert.True(t, record.BasicSalary.Equal(decimal.NewFromInt(50000)))
	assert.True(t, record.HouseRentAllowance.Equal(decimal.NewFromInt(20000)))
	assert.True(t, record.GrossSalary.Equal(decimal.NewFromInt(73500)))
	assert.True(t, record.ProvidentFund.Equal(record.GrossSalary.Mul(decimal.RequireFromString("0.12"))))

	expectedNet := record.GrossSalary.Sub(record.TotalDeductions)
	assert.True(t, record.NetSalary.Equal(expectedNet), "full attendance keeps net unprorated")
}

func TestGenerateDuplicatePeriodFails(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)

	_, err = svc.Generate(ctx, generateReq(testEmployeeID))
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestGenerateUnknownEmployee(t *testing.T) {
	svc := newService(t)

	_, err := svc.Generate(context.Background(), generateReq("a7c3e4e0-0000-4000-8000-00000000dead"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGenerateRejectsPresentDaysOverWorkingDays(t *testing.T) {
	svc := newService(t)

	working := 20
	present := 21
	req := generateReq(testEmployeeID)
	req.WorkingDays = &working
	req.PresentDays = &present

	_, err := svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrInvalidAttendance)
}

func TestGenerateProratesByAttendance(t *testing.T) {
	svc := newService(t)

	working := 22
	present := 11
	req := generateReq(testEmployeeID)
	req.WorkingDays = &working
	req.PresentDays = &present

	record, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 11, record.LeaveDays)
	expected := record.GrossSalary.Sub(record.TotalDeductions).
		Mul(decimal.NewFromInt(11)).
		Div(decimal.NewFromInt(22))
	assert.True(t, record.NetSalary.Equal(expected))
}

func TestBulkGeneratePartialSuccess(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// Pre-generate one record so the bulk run finds a duplicate.
	_, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)

	resp, err := svc.BulkGenerate(ctx, payroll.BulkGeneratePayrollRequest{
		EmployeeIDs: []string{testEmployeeID, otherEmployeeID, "a7c3e4e0-0000-4000-8000-00000000dead"},
		PeriodMonth: 3,
		PeriodYear:  2026,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Generated, 1)
	assert.Equal(t, otherEmployeeID, resp.Generated[0].EmployeeID)
	assert.Len(t, resp.Skipped, 2)
}

func TestLifecycleTransitions(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)

	// Paid before approved is rejected.
	_, err = svc.MarkPaid(ctx, record.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotApproved)

	approved, err := svc.Approve(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrollStatusApproved), approved.Status)

	_, err = svc.Approve(ctx, record.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotDraft)

	paid, err := svc.MarkPaid(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrollStatusPaid), paid.Status)
}

func TestUpdateRecomputesDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)

	extra := decimal.NewFromInt(5000)
	updated, err := svc.Update(ctx, record.ID, payroll.UpdatePayrollRecordRequest{
		OtherAllowances: &extra,
	})
	require.NoError(t, err)

	assert.True(t, updated.OtherAllowances.Equal(extra))
	assert.True(t, updated.GrossSalary.Equal(record.GrossSalary.Add(extra)))
	assert.False(t, updated.TotalDeductions.Equal(record.TotalDeductions), "gross-based deductions follow the new gross")
}

func TestUpdateBasicSalaryRecomputesDerivedPay(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)

	raised := decimal.NewFromInt(60000)
	updated, err := svc.Update(ctx, record.ID, payroll.UpdatePayrollRecordRequest{
		BasicSalary: &raised,
	})
	require.NoError(t, err)

	assert.True(t, updated.BasicSalary.Equal(raised))
	assert.True(t, updated.HouseRentAllowance.Equal(decimal.NewFromInt(24000)))
	assert.True(t, updated.GrossSalary.Equal(decimal.NewFromInt(87500)))
	assert.True(t, updated.ProvidentFund.Equal(updated.GrossSalary.Mul(decimal.RequireFromString("0.12"))))

	// The new figures persist, not just the response mapping.
	stored, err := svc.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, stored.BasicSalary.Equal(raised))
	assert.True(t, stored.GrossSalary.Equal(updated.GrossSalary))
}

func TestUpdateRejectsNegativeBasicSalary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)

	negative := decimal.NewFromInt(-1)
	_, err = svc.Update(ctx, record.ID, payroll.UpdatePayrollRecordRequest{BasicSalary: &negative})
	assert.Error(t, err)
}

func TestUpdateRejectsNonDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, record.ID)
	require.NoError(t, err)

	extra := decimal.NewFromInt(100)
	_, err = svc.Update(ctx, record.ID, payroll.UpdatePayrollRecordRequest{OtherAllowances: &extra})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotDraft)
}

func TestDeleteRejectsPaidRecord(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, record.ID)
	require.NoError(t, err)
	_, err = svc.MarkPaid(ctx, record.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, record.ID)
	assert.ErrorIs(t, err, payroll.ErrCannotDeletePaidRecord)
}

func TestDeleteDraftRecord(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, record.ID))

	_, err = svc.GetByID(ctx, record.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	// The period slot is free again.
	_, err = svc.Generate(ctx, generateReq(testEmployeeID))
	assert.NoError(t, err)
}

func TestBulkApprove(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)
	second, err := svc.Generate(ctx, generateReq(otherEmployeeID))
	require.NoError(t, err)

	// Move one record out of draft so the bulk run has a failure.
	_, err = svc.Approve(ctx, second.ID)
	require.NoError(t, err)

	resp, err := svc.BulkApprove(ctx, payroll.BulkStatusRequest{
		RecordIDs: []string{first.ID, second.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{first.ID}, resp.Updated)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, second.ID, resp.Skipped[0].RecordID)
}

func TestGenerateForActiveEmployeesIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.GenerateForActiveEmployees(ctx, 3, 2026)
	require.NoError(t, err)
	assert.Len(t, first.Generated, 2)
	assert.Empty(t, first.Skipped)

	second, err := svc.GenerateForActiveEmployees(ctx, 3, 2026)
	require.NoError(t, err)
	assert.Empty(t, second.Generated)
	assert.Len(t, second.Skipped, 2)
}

func TestSummary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, generateReq(testEmployeeID))
	require.NoError(t, err)
	_, err = svc.Generate(ctx, generateReq(otherEmployeeID))
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.RecordCount)
	assert.Equal(t, 2, summary.CountByStatus[string(payroll.PayrollStatusDraft)])
	assert.True(t, summary.TotalGross.GreaterThan(decimal.Zero))
}

func TestSummaryInvalidPeriod(t *testing.T) {
	svc := newService(t)

	_, err := svc.Summary(context.Background(), 13, 2026)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
