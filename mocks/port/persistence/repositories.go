// Package persistence provides testify mocks for the persistence ports.
package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// MockUserRepository is a testify mock for persistence.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProfileRepository is a testify mock for persistence.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*entity.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockStudentRepository is a testify mock for persistence.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *entity.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint64) (*entity.Student, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*entity.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) CountByParent(ctx context.Context, parentID uint64) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) ListByParent(ctx context.Context, parentID uint64) ([]*entity.Student, error) {
	args := m.Called(ctx, parentID)
	if s := args.Get(0); s != nil {
		return s.([]*entity.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) MarkSiblings(ctx context.Context, parentID uint64) error {
	args := m.Called(ctx, parentID)
	return args.Error(0)
}

// MockFeeRepository is a testify mock for persistence.FeeRepository
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) GetByID(ctx context.Context, id uint64) (*entity.Fee, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*entity.Fee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeeRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*entity.Fee, error) {
	args := m.Called(ctx, ids)
	if f := args.Get(0); f != nil {
		return f.([]*entity.Fee), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTransactionRepository is a testify mock for persistence.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) CreateItems(ctx context.Context, items []*entity.TransactionItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumItemAmounts(ctx context.Context, transactionID uint64) (int64, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	args := m.Called(ctx, reference)
	if t := args.Get(0); t != nil {
		return t.(*entity.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}
