package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrportal/hr-backend-go/internal/domain/payroll"
)

// PayrollGenerationJob returns a job function that drafts payroll
// records for every active employee in the current period. Employees
// that already have a record for the period are skipped, so repeated
// runs are harmless.
func PayrollGenerationJob(payrollService payroll.PayrollService) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		now := time.Now()
		month := int(now.Month())
		year := now.Year()

		result, err := payrollService.GenerateForActiveEmployees(ctx, month, year)
		if err != nil {
			return err
		}

		slog.Info("Scheduled payroll generation finished",
			"period_month", month,
			"period_year", year,
			"generated", len(result.Generated),
			"skipped", len(result.Skipped),
		)
		return nil
	}
}
