package postgresql

import (
	"context"

	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

// GetQuerier returns the ambient transaction when one is threaded through
// the context (see database.RunInTx), otherwise the pool. Repositories use
// it so the same method works inside and outside a transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
