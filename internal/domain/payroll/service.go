package payroll

import "context"

type PayrollService interface {
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)
	BulkGenerate(ctx context.Context, req BulkGeneratePayrollRequest) (BulkGenerateResponse, error)
	GetByID(ctx context.Context, id string) (PayrollRecordResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)
	Approve(ctx context.Context, id string) (PayrollRecordResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error)
	BulkApprove(ctx context.Context, req BulkStatusRequest) (BulkStatusResponse, error)
	BulkMarkPaid(ctx context.Context, req BulkStatusRequest) (BulkStatusResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
	GenerateForActiveEmployees(ctx context.Context, month, year int) (BulkGenerateResponse, error)
}
