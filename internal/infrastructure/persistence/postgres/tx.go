package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var writeTx = pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}

// inTx runs fn inside one read-committed transaction. Any error from fn rolls
// everything back and is returned unwrapped so domain errors survive.
func (db *DB) inTx(ctx context.Context, fn func(q Executor) error) error {
	tx, err := db.Pool.BeginTx(ctx, writeTx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			db.logger.Warn("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
