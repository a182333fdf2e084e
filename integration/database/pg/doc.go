// Package pg manages PostgreSQL connectivity over pgx: pool creation
// with retries, goose migrations, health probing, and error
// classification.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		if !errors.Is(err, pg.ErrMigrationsDirNotFound) {
//			return err
//		}
//	}
//
// # Error classification
//
// Drivers report failures as pgx sentinel errors or server error codes.
// The Is* helpers normalize the common ones so repositories can branch
// without importing pgconn:
//
//	if pg.IsDuplicateKeyError(err) {
//		return ErrEmailTaken
//	}
//	if pg.IsNotFoundError(err) {
//		return ErrUserNotFound
//	}
//
// # Transactions
//
// WithTx and TxFromContext pass a pgx.Tx through context, letting
// repositories join a caller's transaction without changing their
// signatures. See TxFromContext for the repository-side pattern.
package pg
