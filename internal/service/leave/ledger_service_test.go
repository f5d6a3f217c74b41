package leave

import (
	"context"
	"sync"
	"testing"

	"github.com/hrportal/hr-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "f1b6e4e0-0000-4000-8000-000000000001"

func newLedgerService(t *testing.T) (leave.LedgerService, *fakeLedgerRepo) {
	t.Helper()
	ledgerRepo := newFakeLedgerRepo()
	employeeRepo := newFakeEmployeeRepo(testEmployeeID)
	return NewLedgerService(ledgerRepo, employeeRepo), ledgerRepo
}

func TestGetBalanceCreatesDefaultLedger(t *testing.T) {
	svc, _ := newLedgerService(t)

	balance, err := svc.GetBalance(context.Background(), testEmployeeID)
	require.NoError(t, err)

	assert.Equal(t, testEmployeeID, balance.EmployeeID)
	assert.Equal(t, 40, balance.TotalLeaves)
	assert.Equal(t, 0, balance.UsedLeaves)
	assert.Equal(t, 40, balance.Available)
	assert.Equal(t, string(leave.BalanceHealthy), balance.Health)
}

func TestGetBalanceUnknownEmployee(t *testing.T) {
	svc, _ := newLedgerService(t)

	_, err := svc.GetBalance(context.Background(), "f1b6e4e0-0000-4000-8000-00000000dead")
	assert.Error(t, err)
}

func TestDeductAccumulates(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Deduct(ctx, testEmployeeID, 5))
	}

	balance, err := svc.GetBalance(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.UsedLeaves)
	assert.Equal(t, 25, balance.Available)
}

func TestDeductBeyondTotalGoesIntoDeficit(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	require.NoError(t, svc.Deduct(ctx, testEmployeeID, 40))
	require.NoError(t, svc.Deduct(ctx, testEmployeeID, 5), "deduction has no upper clamp")

	balance, err := svc.GetBalance(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 45, balance.UsedLeaves)
	assert.Equal(t, -5, balance.Available)
	assert.Equal(t, string(leave.BalanceDeficit), balance.Health)
}

func TestDeductRejectsNonPositiveDays(t *testing.T) {
	svc, _ := newLedgerService(t)

	assert.ErrorIs(t, svc.Deduct(context.Background(), testEmployeeID, 0), leave.ErrInvalidLeaveDays)
	assert.ErrorIs(t, svc.Deduct(context.Background(), testEmployeeID, -3), leave.ErrInvalidLeaveDays)
}

func TestConcurrentDeductions(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	const workers = 30
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = svc.Deduct(ctx, testEmployeeID, 1)
		}()
	}
	wg.Wait()

	balance, err := svc.GetBalance(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, workers, balance.UsedLeaves)
	assert.Equal(t, 40-workers, balance.Available)
}

func TestConcurrentDeductionsBeyondTotal(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	const workers = 60
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Deduct(ctx, testEmployeeID, 1))
		}()
	}
	wg.Wait()

	balance, err := svc.GetBalance(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, workers, balance.UsedLeaves, "every increment lands, even past the total")
	assert.Equal(t, 40-workers, balance.Available)
	assert.Equal(t, string(leave.BalanceDeficit), balance.Health)
}

func TestHasSufficientBalance(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	require.NoError(t, svc.Deduct(ctx, testEmployeeID, 15))

	sufficient, err := svc.HasSufficientBalance(ctx, testEmployeeID, 25)
	require.NoError(t, err)
	assert.True(t, sufficient)

	sufficient, err = svc.HasSufficientBalance(ctx, testEmployeeID, 26)
	require.NoError(t, err)
	assert.False(t, sufficient)
}

func TestRestore(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	require.NoError(t, svc.Deduct(ctx, testEmployeeID, 10))
	require.NoError(t, svc.Restore(ctx, testEmployeeID, 4))

	balance, err := svc.GetBalance(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 6, balance.UsedLeaves)
	assert.Equal(t, 34, balance.Available)
}

func TestRestoreGuardAgainstNegativeUsed(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	require.NoError(t, svc.Deduct(ctx, testEmployeeID, 3))

	err := svc.Restore(ctx, testEmployeeID, 5)
	assert.ErrorIs(t, err, leave.ErrRestoreExceedsUsed)

	balance, err := svc.GetBalance(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 3, balance.UsedLeaves, "failed restore must not change the ledger")
}

func TestSetTotal(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	require.NoError(t, svc.Deduct(ctx, testEmployeeID, 12))

	balance, err := svc.SetTotal(ctx, testEmployeeID, leave.SetTotalLeavesRequest{TotalLeaves: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, balance.TotalLeaves)
	assert.Equal(t, 12, balance.UsedLeaves)
	assert.Equal(t, -2, balance.Available)
	assert.Equal(t, string(leave.BalanceDeficit), balance.Health)
}

func TestSetTotalValidation(t *testing.T) {
	svc, _ := newLedgerService(t)

	_, err := svc.SetTotal(context.Background(), testEmployeeID, leave.SetTotalLeavesRequest{TotalLeaves: -1})
	assert.Error(t, err)

	_, err = svc.SetTotal(context.Background(), testEmployeeID, leave.SetTotalLeavesRequest{TotalLeaves: 400})
	assert.Error(t, err)
}

func TestBalanceHealthLow(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	require.NoError(t, svc.Deduct(ctx, testEmployeeID, 36))

	balance, err := svc.GetBalance(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.BalanceLow), balance.Health)
}
