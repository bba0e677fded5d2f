package repository

import (
	"context"
	"fmt"

	"study-track/internal/domain"

	"github.com/jmoiron/sqlx"
)

type contextKey string

const (
	// TransactionContextKey carries the active *sqlx.Tx through a context.
	TransactionContextKey contextKey = "tx"
)

// GetExecutor returns the transaction from the context when one is active,
// otherwise the base DB handle. Repositories call this on every query so the
// same code runs inside and outside transactions.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx := ctx.Value(TransactionContextKey); tx != nil {
		if sqlxTx, ok := tx.(*sqlx.Tx); ok {
			return sqlxTx
		}
	}
	return db
}

// TransactionManagerAdapter implements domain.TransactionManager over sqlx.
type TransactionManagerAdapter struct {
	db *sqlx.DB
}

// NewTransactionManagerAdapter creates a new transaction manager adapter.
func NewTransactionManagerAdapter(db *sqlx.DB) domain.TransactionManager {
	return &TransactionManagerAdapter{db: db}
}

// WithTransaction runs fn inside a transaction carried on the context.
// Rollback on error or panic, commit otherwise.
func (tma *TransactionManagerAdapter) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := tma.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				fmt.Printf("failed to rollback transaction: %v\n", rollbackErr)
			}
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, TransactionContextKey, tx)

	if err := fn(txCtx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
