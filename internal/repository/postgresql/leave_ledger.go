package postgresql

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrportal/hr-backend-go/internal/domain/leave"
	"github.com/hrportal/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveLedgerRepositoryImpl struct {
	db *database.DB
}

func NewLeaveLedgerRepository(db *database.DB) leave.LeaveLedgerRepository {
	return &leaveLedgerRepositoryImpl{db: db}
}

// CreateIfAbsent implements leave.LeaveLedgerRepository. ON CONFLICT
// makes concurrent first-touch creation safe.
func (r *leaveLedgerRepositoryImpl) CreateIfAbsent(ctx context.Context, employeeID string, totalLeaves int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_ledgers (id, employee_id, total_leaves, used_leaves, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		ON CONFLICT (employee_id) DO NOTHING
	`

	_, err := q.Exec(ctx, query, uuid.NewString(), employeeID, totalLeaves)
	return err
}

// GetByEmployee implements leave.LeaveLedgerRepository.
func (r *leaveLedgerRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (leave.LeaveLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, total_leaves, used_leaves, created_at, updated_at
		FROM leave_ledgers
		WHERE employee_id = $1
	`

	var ledger leave.LeaveLedger
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&ledger.ID, &ledger.EmployeeID, &ledger.TotalLeaves, &ledger.UsedLeaves,
		&ledger.CreatedAt, &ledger.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveLedger{}, leave.ErrLedgerNotFound
		}
		return leave.LeaveLedger{}, err
	}

	return ledger, nil
}

// AddUsed implements leave.LeaveLedgerRepository. A single atomic
// increment with no upper clamp, so concurrent deductions serialize on
// the row and the balance is allowed to go negative.
func (r *leaveLedgerRepositoryImpl) AddUsed(ctx context.Context, employeeID string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_ledgers
		SET used_leaves = used_leaves + $2, updated_at = NOW()
		WHERE employee_id = $1
	`

	result, err := q.Exec(ctx, query, employeeID, days)
	if err != nil {
		return err
	}
	if result.RowsAffected() != 1 {
		return leave.ErrLedgerNotFound
	}
	return nil
}

// SubtractUsed implements leave.LeaveLedgerRepository. Guarded the same
// way so used leaves never go negative.
func (r *leaveLedgerRepositoryImpl) SubtractUsed(ctx context.Context, employeeID string, days int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_ledgers
		SET used_leaves = used_leaves - $2, updated_at = NOW()
		WHERE employee_id = $1
		AND used_leaves - $2 >= 0
	`

	result, err := q.Exec(ctx, query, employeeID, days)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// SetTotal implements leave.LeaveLedgerRepository.
func (r *leaveLedgerRepositoryImpl) SetTotal(ctx context.Context, employeeID string, totalLeaves int) (leave.LeaveLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_ledgers
		SET total_leaves = $2, updated_at = NOW()
		WHERE employee_id = $1
		RETURNING id, employee_id, total_leaves, used_leaves, created_at, updated_at
	`

	var ledger leave.LeaveLedger
	err := q.QueryRow(ctx, query, employeeID, totalLeaves).Scan(
		&ledger.ID, &ledger.EmployeeID, &ledger.TotalLeaves, &ledger.UsedLeaves,
		&ledger.CreatedAt, &ledger.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveLedger{}, leave.ErrLedgerNotFound
		}
		return leave.LeaveLedger{}, err
	}

	return ledger, nil
}
