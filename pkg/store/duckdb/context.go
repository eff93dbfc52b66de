package duckdb

import (
	"context"
	"database/sql"
)

type ambientTxKey struct{}

// WithTransaction returns a context carrying tx. Store methods that find it
// run their statements inside tx instead of the shared pool, so a category
// deactivation and its rule updates can commit or roll back together.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, ambientTxKey{}, tx)
}

// GetTransaction returns the ambient transaction, or nil when the caller
// did not open one.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(ambientTxKey{}).(*sql.Tx)
	return tx
}
