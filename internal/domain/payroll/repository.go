package payroll

import "context"

type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int, error)
	Update(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	// UpdateStatus transitions the record from one status to another and
	// reports whether a row actually changed.
	UpdateStatus(ctx context.Context, id string, from, to PayrollStatus) (bool, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
