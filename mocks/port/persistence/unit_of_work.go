package persistence

import (
	"context"
	"sync"

	"github.com/brightpath-edu/school-ledger/internal/domain/port/persistence"
)

// FakeUnitOfWork is a stateful in-memory stand-in for the database-backed
// unit of work. It hands out the injected repositories, tracks begin/commit/
// rollback calls and honors the post-commit contract: callbacks queued during
// a unit run exactly once on commit and are discarded on rollback.
type FakeUnitOfWork struct {
	mu sync.Mutex

	UserRepo        persistence.UserRepository
	ProfileRepo     persistence.ProfileRepository
	StudentRepo     persistence.StudentRepository
	FeeRepo         persistence.FeeRepository
	TransactionRepo persistence.TransactionRepository

	BeginCount    int
	CommitCount   int
	RollbackCount int

	// BeginErr and CommitErr let tests inject failures
	BeginErr  error
	CommitErr error

	postCommit []func()
}

// NewFakeUnitOfWork creates an empty fake; repositories are assigned by tests
func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{}
}

func (f *FakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BeginErr != nil {
		return ctx, f.BeginErr
	}
	f.BeginCount++
	return ctx, nil
}

func (f *FakeUnitOfWork) Commit(ctx context.Context) error {
	f.mu.Lock()
	if f.CommitErr != nil {
		f.mu.Unlock()
		return f.CommitErr
	}
	f.CommitCount++
	hooks := f.postCommit
	f.postCommit = nil
	f.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return nil
}

func (f *FakeUnitOfWork) Rollback(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RollbackCount++
	f.postCommit = nil
	return nil
}

func (f *FakeUnitOfWork) RegisterPostCommit(ctx context.Context, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postCommit = append(f.postCommit, fn)
}

// PendingPostCommit reports how many callbacks are queued but not yet flushed
func (f *FakeUnitOfWork) PendingPostCommit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.postCommit)
}

func (f *FakeUnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	return f.UserRepo
}

func (f *FakeUnitOfWork) Profiles(ctx context.Context) persistence.ProfileRepository {
	return f.ProfileRepo
}

func (f *FakeUnitOfWork) Students(ctx context.Context) persistence.StudentRepository {
	return f.StudentRepo
}

func (f *FakeUnitOfWork) Fees(ctx context.Context) persistence.FeeRepository {
	return f.FeeRepo
}

func (f *FakeUnitOfWork) Transactions(ctx context.Context) persistence.TransactionRepository {
	return f.TransactionRepo
}
