package persistence

import (
	"context"
)

// UnitOfWork coordinates all-or-nothing persistence across repositories.
// Begin returns a context carrying the open transaction; repositories
// obtained through that context are bound to it. Side-effect callbacks
// registered during the unit run only after a successful commit and are
// discarded on rollback, which is how the enrollment notification is kept
// from firing for a rolled-back enrollment.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context and, on success,
	// invokes every registered post-commit callback exactly once
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context and discards
	// any registered post-commit callbacks
	Rollback(ctx context.Context) error

	// RegisterPostCommit queues a side-effect callback on the unit in the
	// given context. Outside a unit the callback runs immediately.
	RegisterPostCommit(ctx context.Context, fn func())

	// Users returns a user repository bound to the current transaction
	Users(ctx context.Context) UserRepository

	// Profiles returns a profile repository bound to the current transaction
	Profiles(ctx context.Context) ProfileRepository

	// Students returns a student repository bound to the current transaction
	Students(ctx context.Context) StudentRepository

	// Fees returns a fee repository bound to the current transaction
	Fees(ctx context.Context) FeeRepository

	// Transactions returns a ledger repository bound to the current transaction
	Transactions(ctx context.Context) TransactionRepository
}
