package domain

import "context"

// TransactionManager runs a function inside a single database transaction.
// The transaction travels in the context so repositories can pick it up
// transparently; any returned error rolls the transaction back.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
