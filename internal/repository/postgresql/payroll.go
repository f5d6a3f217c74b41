package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hrportal/hr-backend-go/internal/domain/payroll"
	"github.com/hrportal/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	id, employee_id, period_month, period_year,
	basic_salary, house_rent_allowance, transport_allowance, medical_allowance,
	other_allowances, gross_salary,
	provident_fund, esi, professional_tax, income_tax, insurance,
	other_deductions, total_deductions,
	working_days, present_days, leave_days,
	net_salary, status, paid_at, created_at, updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var record payroll.PayrollRecord
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.PeriodMonth, &record.PeriodYear,
		&record.BasicSalary, &record.HouseRentAllowance, &record.TransportAllowance, &record.MedicalAllowance,
		&record.OtherAllowances, &record.GrossSalary,
		&record.ProvidentFund, &record.ESI, &record.ProfessionalTax, &record.IncomeTax, &record.Insurance,
		&record.OtherDeductions, &record.TotalDeductions,
		&record.WorkingDays, &record.PresentDays, &record.LeaveDays,
		&record.NetSalary, &record.Status, &record.PaidAt, &record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_month, period_year,
			basic_salary, house_rent_allowance, transport_allowance, medical_allowance,
			other_allowances, gross_salary,
			provident_fund, esi, professional_tax, income_tax, insurance,
			other_deductions, total_deductions,
			working_days, present_days, leave_days,
			net_salary, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10,
			$11, $12, $13, $14, $15,
			$16, $17,
			$18, $19, $20,
			$21, $22, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	record.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.BasicSalary, record.HouseRentAllowance, record.TransportAllowance, record.MedicalAllowance,
		record.OtherAllowances, record.GrossSalary,
		record.ProvidentFund, record.ESI, record.ProfessionalTax, record.IncomeTax, record.Insurance,
		record.OtherDeductions, record.TotalDeductions,
		record.WorkingDays, record.PresentDays, record.LeaveDays,
		record.NetSalary, record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "payroll_records_employee_period_key") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, err
	}

	return record, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.employee_id, pr.period_month, pr.period_year,
			   pr.basic_salary, pr.house_rent_allowance, pr.transport_allowance, pr.medical_allowance,
			   pr.other_allowances, pr.gross_salary,
			   pr.provident_fund, pr.esi, pr.professional_tax, pr.income_tax, pr.insurance,
			   pr.other_deductions, pr.total_deductions,
			   pr.working_days, pr.present_days, pr.leave_days,
			   pr.net_salary, pr.status, pr.paid_at, pr.created_at, pr.updated_at,
			   e.full_name AS employee_name
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	var record payroll.PayrollRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.EmployeeID, &record.PeriodMonth, &record.PeriodYear,
		&record.BasicSalary, &record.HouseRentAllowance, &record.TransportAllowance, &record.MedicalAllowance,
		&record.OtherAllowances, &record.GrossSalary,
		&record.ProvidentFund, &record.ESI, &record.ProfessionalTax, &record.IncomeTax, &record.Insurance,
		&record.OtherDeductions, &record.TotalDeductions,
		&record.WorkingDays, &record.PresentDays, &record.LeaveDays,
		&record.NetSalary, &record.Status, &record.PaidAt, &record.CreatedAt, &record.UpdatedAt,
		&record.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}

	return record, nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}
	return record, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	i := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", i))
		args = append(args, filter.EmployeeID)
		i++
	}
	if filter.PeriodMonth != 0 {
		conditions = append(conditions, fmt.Sprintf("pr.period_month = $%d", i))
		args = append(args, filter.PeriodMonth)
		i++
	}
	if filter.PeriodYear != 0 {
		conditions = append(conditions, fmt.Sprintf("pr.period_year = $%d", i))
		args = append(args, filter.PeriodYear)
		i++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", i))
		args = append(args, filter.Status)
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM payroll_records pr WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT pr.id, pr.employee_id, pr.period_month, pr.period_year,
			   pr.basic_salary, pr.house_rent_allowance, pr.transport_allowance, pr.medical_allowance,
			   pr.other_allowances, pr.gross_salary,
			   pr.provident_fund, pr.esi, pr.professional_tax, pr.income_tax, pr.insurance,
			   pr.other_deductions, pr.total_deductions,
			   pr.working_days, pr.present_days, pr.leave_days,
			   pr.net_salary, pr.status, pr.paid_at, pr.created_at, pr.updated_at,
			   e.full_name AS employee_name
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE %s
		ORDER BY pr.period_year DESC, pr.period_month DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, where, i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		var record payroll.PayrollRecord
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.PeriodMonth, &record.PeriodYear,
			&record.BasicSalary, &record.HouseRentAllowance, &record.TransportAllowance, &record.MedicalAllowance,
			&record.OtherAllowances, &record.GrossSalary,
			&record.ProvidentFund, &record.ESI, &record.ProfessionalTax, &record.IncomeTax, &record.Insurance,
			&record.OtherDeductions, &record.TotalDeductions,
			&record.WorkingDays, &record.PresentDays, &record.LeaveDays,
			&record.NetSalary, &record.Status, &record.PaidAt, &record.CreatedAt, &record.UpdatedAt,
			&record.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	return records, total, rows.Err()
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Update(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET basic_salary = $2, house_rent_allowance = $3, transport_allowance = $4, medical_allowance = $5,
			other_allowances = $6, gross_salary = $7,
			provident_fund = $8, esi = $9, professional_tax = $10, income_tax = $11, insurance = $12,
			other_deductions = $13, total_deductions = $14,
			working_days = $15, present_days = $16, leave_days = $17,
			net_salary = $18, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.BasicSalary, record.HouseRentAllowance, record.TransportAllowance, record.MedicalAllowance,
		record.OtherAllowances, record.GrossSalary,
		record.ProvidentFund, record.ESI, record.ProfessionalTax, record.IncomeTax, record.Insurance,
		record.OtherDeductions, record.TotalDeductions,
		record.WorkingDays, record.PresentDays, record.LeaveDays,
		record.NetSalary,
	).Scan(&record.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}

	return record, nil
}

// UpdateStatus implements payroll.PayrollRepository. The transition is
// a compare-and-set: zero affected rows means the record was not in the
// expected status.
func (r *payrollRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to payroll.PayrollStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $3,
			paid_at = CASE WHEN $3 = 'paid' THEN NOW() ELSE paid_at END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := q.Exec(ctx, query, id, from, to)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() != 1 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// Summary implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Summary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	resp := payroll.PayrollSummaryResponse{
		PeriodMonth:   month,
		PeriodYear:    year,
		CountByStatus: map[string]int{},
	}

	query := `
		SELECT status, COUNT(*),
			   COALESCE(SUM(gross_salary), 0),
			   COALESCE(SUM(total_deductions), 0),
			   COALESCE(SUM(net_salary), 0)
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var gross, deductions, net decimal.Decimal
		if err := rows.Scan(&status, &count, &gross, &deductions, &net); err != nil {
			return payroll.PayrollSummaryResponse{}, err
		}
		resp.RecordCount += count
		resp.CountByStatus[status] = count
		resp.TotalGross = resp.TotalGross.Add(gross)
		resp.TotalDeductions = resp.TotalDeductions.Add(deductions)
		resp.TotalNet = resp.TotalNet.Add(net)
	}

	return resp, rows.Err()
}
