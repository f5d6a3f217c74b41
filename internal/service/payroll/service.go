package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrportal/hr-backend-go/internal/domain/employee"
	"github.com/hrportal/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	workingDays := payroll.DefaultWorkingDays
	if req.WorkingDays != nil {
		workingDays = *req.WorkingDays
	}
	presentDays := workingDays
	if req.PresentDays != nil {
		presentDays = *req.PresentDays
	}
	if presentDays > workingDays {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("%w: present days exceed working days", payroll.ErrInvalidAttendance)
	}

	breakdown := payroll.Compute(payroll.CalcInput{
		BasicSalary:     emp.BaseSalary,
		OtherAllowances: req.OtherAllowances,
		OtherDeductions: req.OtherDeductions,
		WorkingDays:     workingDays,
		PresentDays:     presentDays,
	})

	record := payroll.PayrollRecord{
		EmployeeID:  req.EmployeeID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,

		BasicSalary:        emp.BaseSalary,
		HouseRentAllowance: breakdown.HouseRentAllowance,
		TransportAllowance: breakdown.TransportAllowance,
		MedicalAllowance:   breakdown.MedicalAllowance,
		OtherAllowances:    req.OtherAllowances,
		GrossSalary:        breakdown.GrossSalary,

		ProvidentFund:   breakdown.ProvidentFund,
		ESI:             breakdown.ESI,
		ProfessionalTax: breakdown.ProfessionalTax,
		IncomeTax:       breakdown.IncomeTax,
		Insurance:       breakdown.Insurance,
		OtherDeductions: req.OtherDeductions,
		TotalDeductions: breakdown.TotalDeductions,

		WorkingDays: workingDays,
		PresentDays: presentDays,
		LeaveDays:   workingDays - presentDays,

		NetSalary: breakdown.NetSalary,
		Status:    payroll.PayrollStatusDraft,
	}

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(created), nil
}

// BulkGenerate creates draft records for every listed employee,
// collecting per-employee failures instead of aborting the run.
func (s *PayrollServiceImpl) BulkGenerate(ctx context.Context, req payroll.BulkGeneratePayrollRequest) (payroll.BulkGenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkGenerateResponse{}, err
	}

	resp := payroll.BulkGenerateResponse{
		Generated: []payroll.PayrollRecordResponse{},
		Skipped:   []payroll.SkippedEmployee{},
	}

	for _, employeeID := range req.EmployeeIDs {
		record, err := s.Generate(ctx, payroll.GeneratePayrollRequest{
			EmployeeID:      employeeID,
			PeriodMonth:     req.PeriodMonth,
			PeriodYear:      req.PeriodYear,
			OtherAllowances: decimal.Zero,
			OtherDeductions: decimal.Zero,
		})
		if err != nil {
			slog.Warn("skipping employee in bulk payroll generation",
				"employee_id", employeeID,
				"period_month", req.PeriodMonth,
				"period_year", req.PeriodYear,
				"error", err,
			)
			resp.Skipped = append(resp.Skipped, payroll.SkippedEmployee{
				EmployeeID: employeeID,
				Reason:     err.Error(),
			})
			continue
		}
		resp.Generated = append(resp.Generated, record)
	}

	return resp, nil
}

func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	resp := payroll.ListPayrollRecordResponse{
		Records: make([]payroll.PayrollRecordResponse, 0, len(records)),
		Total:   total,
	}
	for _, record := range records {
		resp.Records = append(resp.Records, mapToRecordResponse(record))
	}
	return resp, nil
}

// Update patches the variable figures of a draft record and recomputes
// the whole breakdown from scratch.
func (s *PayrollServiceImpl) Update(ctx context.Context, id string, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !record.CanEdit() {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotDraft
	}

	if req.BasicSalary != nil {
		record.BasicSalary = *req.BasicSalary
	}
	if req.OtherAllowances != nil {
		record.OtherAllowances = *req.OtherAllowances
	}
	if req.OtherDeductions != nil {
		record.OtherDeductions = *req.OtherDeductions
	}
	if req.WorkingDays != nil {
		record.WorkingDays = *req.WorkingDays
	}
	if req.PresentDays != nil {
		record.PresentDays = *req.PresentDays
	}
	if record.PresentDays > record.WorkingDays {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("%w: present days exceed working days", payroll.ErrInvalidAttendance)
	}

	breakdown := payroll.Compute(payroll.CalcInput{
		BasicSalary:     record.BasicSalary,
		OtherAllowances: record.OtherAllowances,
		OtherDeductions: record.OtherDeductions,
		WorkingDays:     record.WorkingDays,
		PresentDays:     record.PresentDays,
	})

	record.HouseRentAllowance = breakdown.HouseRentAllowance
	record.TransportAllowance = breakdown.TransportAllowance
	record.MedicalAllowance = breakdown.MedicalAllowance
	record.GrossSalary = breakdown.GrossSalary
	record.ProvidentFund = breakdown.ProvidentFund
	record.ESI = breakdown.ESI
	record.ProfessionalTax = breakdown.ProfessionalTax
	record.IncomeTax = breakdown.IncomeTax
	record.Insurance = breakdown.Insurance
	record.TotalDeductions = breakdown.TotalDeductions
	record.LeaveDays = record.WorkingDays - record.PresentDays
	record.NetSalary = breakdown.NetSalary

	updated, err := s.payrollRepo.Update(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(updated), nil
}

func (s *PayrollServiceImpl) Approve(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return s.transition(ctx, id, payroll.PayrollStatusDraft, payroll.PayrollStatusApproved, payroll.ErrPayrollRecordNotDraft)
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return s.transition(ctx, id, payroll.PayrollStatusApproved, payroll.PayrollStatusPaid, payroll.ErrPayrollRecordNotApproved)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, id string, from, to payroll.PayrollStatus, stateErr error) (payroll.PayrollRecordResponse, error) {
	if _, err := s.payrollRepo.GetByID(ctx, id); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	moved, err := s.payrollRepo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !moved {
		return payroll.PayrollRecordResponse{}, stateErr
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) BulkApprove(ctx context.Context, req payroll.BulkStatusRequest) (payroll.BulkStatusResponse, error) {
	return s.bulkTransition(ctx, req, s.Approve)
}

func (s *PayrollServiceImpl) BulkMarkPaid(ctx context.Context, req payroll.BulkStatusRequest) (payroll.BulkStatusResponse, error) {
	return s.bulkTransition(ctx, req, s.MarkPaid)
}

func (s *PayrollServiceImpl) bulkTransition(
	ctx context.Context,
	req payroll.BulkStatusRequest,
	apply func(ctx context.Context, id string) (payroll.PayrollRecordResponse, error),
) (payroll.BulkStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkStatusResponse{}, err
	}

	resp := payroll.BulkStatusResponse{
		Updated: []string{},
		Skipped: []payroll.SkippedRecord{},
	}
	for _, recordID := range req.RecordIDs {
		if _, err := apply(ctx, recordID); err != nil {
			slog.Warn("skipping record in bulk payroll status update",
				"record_id", recordID,
				"error", err,
			)
			resp.Skipped = append(resp.Skipped, payroll.SkippedRecord{
				RecordID: recordID,
				Reason:   err.Error(),
			})
			continue
		}
		resp.Updated = append(resp.Updated, recordID)
	}
	return resp, nil
}

func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}
	return s.payrollRepo.Delete(ctx, id)
}

func (s *PayrollServiceImpl) Summary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return payroll.PayrollSummaryResponse{}, payroll.ErrInvalidPeriod
	}
	return s.payrollRepo.Summary(ctx, month, year)
}

// GenerateForActiveEmployees runs a bulk generation over every active
// employee, used by the scheduled payroll job. Existing records for the
// period are reported as skipped, which keeps the job idempotent.
func (s *PayrollServiceImpl) GenerateForActiveEmployees(ctx context.Context, month, year int) (payroll.BulkGenerateResponse, error) {
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.BulkGenerateResponse{}, err
	}
	if len(employees) == 0 {
		return payroll.BulkGenerateResponse{
			Generated: []payroll.PayrollRecordResponse{},
			Skipped:   []payroll.SkippedEmployee{},
		}, nil
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	return s.BulkGenerate(ctx, payroll.BulkGeneratePayrollRequest{
		EmployeeIDs: ids,
		PeriodMonth: month,
		PeriodYear:  year,
	})
}

func mapToRecordResponse(record payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:          record.ID,
		EmployeeID:  record.EmployeeID,
		PeriodMonth: record.PeriodMonth,
		PeriodYear:  record.PeriodYear,

		BasicSalary:        record.BasicSalary,
		HouseRentAllowance: record.HouseRentAllowance,
		TransportAllowance: record.TransportAllowance,
		MedicalAllowance:   record.MedicalAllowance,
		OtherAllowances:    record.OtherAllowances,
		GrossSalary:        record.GrossSalary,

		ProvidentFund:   record.ProvidentFund,
		ESI:             record.ESI,
		ProfessionalTax: record.ProfessionalTax,
		IncomeTax:       record.IncomeTax,
		Insurance:       record.Insurance,
		OtherDeductions: record.OtherDeductions,
		TotalDeductions: record.TotalDeductions,

		WorkingDays: record.WorkingDays,
		PresentDays: record.PresentDays,
		LeaveDays:   record.LeaveDays,

		NetSalary: record.NetSalary,

		Status:       string(record.Status),
		PaidAt:       record.PaidAt,
		EmployeeName: record.EmployeeName,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}
