package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/persistence"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// txState carries an open transaction plus the side-effect callbacks queued
// against it. It is stored by pointer in the context so callbacks registered
// deeper in the call chain are visible to the Commit that flushes them.
type txState struct {
	mu         sync.Mutex
	tx         *gorm.DB
	postCommit []func()
}

func (s *txState) register(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postCommit = append(s.postCommit, fn)
}

func (s *txState) drain() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	hooks := s.postCommit
	s.postCommit = nil
	return hooks
}

// UnitOfWork implements the unit of work pattern for database transactions.
// Post-commit callbacks queued during a unit run exactly once after a
// successful commit; a rollback discards them. This is what keeps the
// enrollment notification from firing for a rolled-back enrollment.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return context.WithValue(ctx, txKey, &txState{tx: tx}), nil
}

// Commit commits the current transaction and flushes post-commit callbacks
func (u *UnitOfWork) Commit(ctx context.Context) error {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok || state == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := state.tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, fn := range state.drain() {
		fn()
	}
	return nil
}

// Rollback rolls back the current transaction and discards queued callbacks
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok || state == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)
	state.drain()

	err := state.tx.Rollback().Error

	// A transaction that was already finished is not an error worth
	// propagating; the unit is closed either way.
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// RegisterPostCommit queues a side-effect callback on the unit in the given
// context. Outside a unit the callback runs immediately.
func (u *UnitOfWork) RegisterPostCommit(ctx context.Context, fn func()) {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok || state == nil {
		fn()
		return
	}
	state.register(fn)
}

// Users returns a user repository bound to the current transaction
func (u *UnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.logger)
}

// Profiles returns a profile repository bound to the current transaction
func (u *UnitOfWork) Profiles(ctx context.Context) persistence.ProfileRepository {
	return repository.NewProfileRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Students returns a student repository bound to the current transaction
func (u *UnitOfWork) Students(ctx context.Context) persistence.StudentRepository {
	return repository.NewStudentRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Fees returns a fee repository bound to the current transaction
func (u *UnitOfWork) Fees(ctx context.Context) persistence.FeeRepository {
	return repository.NewFeeRepository(u.getDbFromContext(ctx), u.logger)
}

// Transactions returns a ledger repository bound to the current transaction
func (u *UnitOfWork) Transactions(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the transactional database instance from
// context, falling back to the root connection outside a unit
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	state, ok := ctx.Value(txKey).(*txState)
	if ok && state != nil && state.tx != nil {
		return state.tx
	}
	return u.db.WithContext(ctx)
}
