package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type txContextKey struct{}

// WithTx returns a context carrying tx so layers called within the same
// unit of work share one transaction. A nil tx leaves ctx unchanged.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext extracts the transaction stored by WithTx. Repositories
// check it to join an ambient transaction before falling back to their
// pool:
//
//	if tx, ok := pg.TxFromContext(ctx); ok {
//		_, err := tx.Exec(ctx, query, args...)
//		return err
//	}
//	_, err := s.pool.Exec(ctx, query, args...)
//	return err
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx, ok
}
