package db

import (
	"context"
	"fmt"
)

// InTx runs fn inside a transaction. Any error from fn rolls back and is
// returned unchanged so callers can still match on it.
func InTx(ctx context.Context, database DB, fn func(tx Tx) error) (err error) {
	tx, err := database.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.Background())
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
