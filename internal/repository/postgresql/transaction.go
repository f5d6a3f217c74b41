package postgresql

import (
	"context"

	"github.com/hrportal/hr-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction bound to the context when there is
// one, otherwise the connection pool. Repositories use it so the same
// code runs inside and outside transactions.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
