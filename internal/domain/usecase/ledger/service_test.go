package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	"github.com/brightpath-edu/school-ledger/internal/domain/usecase/ledger"
	coremocks "github.com/brightpath-edu/school-ledger/mocks/port/core"
	persistencemocks "github.com/brightpath-edu/school-ledger/mocks/port/persistence"
)

type ledgerFixture struct {
	uow     *persistencemocks.FakeUnitOfWork
	users   *persistencemocks.MockUserRepository
	fees    *persistencemocks.MockFeeRepository
	txns    *persistencemocks.MockTransactionRepository
	service *ledger.Service
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	users := new(persistencemocks.MockUserRepository)
	fees := new(persistencemocks.MockFeeRepository)
	txns := new(persistencemocks.MockTransactionRepository)
	uow := persistencemocks.NewFakeUnitOfWork()
	uow.UserRepo = users
	uow.FeeRepo = fees
	uow.TransactionRepo = txns

	timeProvider := coremocks.NewStubTimeProvider(time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC))

	return &ledgerFixture{
		uow:     uow,
		users:   users,
		fees:    fees,
		txns:    txns,
		service: ledger.NewService(uow, timeProvider, coremocks.NewNullLogger()),
	}
}

func payerParent() *entity.User {
	return &entity.User{ID: 10, FirstName: "Ngozi", LastName: "Eze", Role: entity.RoleParent}
}

// ownedFee builds a fee whose student belongs to the given parent
func ownedFee(id uint64, feeType entity.FeeType, cents int64, parentID uint64) *entity.Fee {
	return &entity.Fee{
		ID:            id,
		StudentID:     id + 100,
		FeeType:       feeType,
		Amount:        entity.CentsToAmount(cents),
		AmountInCents: cents,
		Student:       &entity.Student{ID: id + 100, ParentID: parentID},
	}
}

func (f *ledgerFixture) expectHappyPersistence() {
	f.txns.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 555
		}).Return(nil)
	f.txns.On("CreateItems", mock.Anything, mock.AnythingOfType("[]*entity.TransactionItem")).Return(nil)
	f.txns.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)
}

func TestRecordTransactionSuccess(t *testing.T) {
	t.Run("Items summing to the amount complete the transaction", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1, 2}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeBook, 4000, 10),
			ownedFee(2, entity.FeeBus, 6000, 10),
		}, nil)
		f.expectHappyPersistence()
		f.txns.On("SumItemAmounts", mock.Anything, uint64(555)).Return(int64(10000), nil)

		txn, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "100.00",
			Method:  "cash",
			Items: []ledger.ItemInput{
				{FeeID: 1, Amount: "40.00"},
				{FeeID: 2, Amount: "60.00"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, int64(10000), txn.AmountInCents)
		assert.NotEmpty(t, txn.Reference)
		assert.Len(t, txn.Items, 2)
		assert.Equal(t, 1, f.uow.CommitCount)
	})

	t.Run("Amounts without decimals are normalized to cents", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeTuition, 2500, 10),
		}, nil)
		f.expectHappyPersistence()
		f.txns.On("SumItemAmounts", mock.Anything, uint64(555)).Return(int64(2500), nil)

		txn, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "25",
			Method:  "upi",
			Items:   []ledger.ItemInput{{FeeID: 1, Amount: "25"}},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2500), txn.AmountInCents)
		assert.Equal(t, int64(2500), txn.Items[0].AmountInCents)
		assert.Equal(t, "25.00", txn.Items[0].Amount)
	})
}

func TestRecordTransactionValidation(t *testing.T) {
	t.Run("Item sum mismatch rejects the submission", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1, 2}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeBook, 4000, 10),
			ownedFee(2, entity.FeeBus, 6000, 10),
		}, nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "100.00",
			Method:  "cash",
			Items: []ledger.ItemInput{
				{FeeID: 1, Amount: "40.00"},
				{FeeID: 2, Amount: "50.00"},
			},
		})

		require.Error(t, err)
		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "items_amount")
		assert.Equal(t, 1, f.uow.RollbackCount)
		f.txns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Non-parent payer is rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		teacher := &entity.User{ID: 10, Role: entity.RoleTeacher}
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(teacher, nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeBook, 10000, 10),
		}, nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "100.00",
			Method:  "cash",
			Items:   []ledger.ItemInput{{FeeID: 1, Amount: "100.00"}},
		})

		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "payer")
	})

	t.Run("Fees of another parent's students are rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1, 2}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeBook, 4000, 10),
			ownedFee(2, entity.FeeBus, 6000, 99),
		}, nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "100.00",
			Method:  "cash",
			Items: []ledger.ItemInput{
				{FeeID: 1, Amount: "40.00"},
				{FeeID: 2, Amount: "60.00"},
			},
		})

		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		require.Contains(t, ve.Fields, "items_owner")
		assert.Contains(t, ve.Fields["items_owner"][0], "2")
	})

	t.Run("Empty item list is rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "100.00",
			Method:  "cash",
		})

		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "items")
		// A zero item sum cannot match a positive amount, so the sum rule
		// is reported alongside the missing items.
		assert.Contains(t, ve.Fields, "items_amount")
	})

	t.Run("Unknown fee is rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{77}).Return([]*entity.Fee{}, nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "50.00",
			Method:  "cash",
			Items:   []ledger.ItemInput{{FeeID: 77, Amount: "50.00"}},
		})

		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		require.Contains(t, ve.Fields, "items")
		assert.Contains(t, ve.Fields["items"][0], "77")
	})

	t.Run("Duplicate fee items are rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeBook, 4000, 10),
		}, nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "80.00",
			Method:  "cash",
			Items: []ledger.ItemInput{
				{FeeID: 1, Amount: "40.00"},
				{FeeID: 1, Amount: "40.00"},
			},
		})

		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "items")
	})

	t.Run("All violations are reported together", func(t *testing.T) {
		f := newLedgerFixture(t)
		teacher := &entity.User{ID: 10, Role: entity.RoleTeacher}
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(teacher, nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{2}).Return([]*entity.Fee{
			ownedFee(2, entity.FeeBus, 6000, 99),
		}, nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "-5",
			Method:  "cheque",
			Items: []ledger.ItemInput{
				{FeeID: 2, Amount: "0"},
			},
		})

		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "payer")
		assert.Contains(t, ve.Fields, "amount")
		assert.Contains(t, ve.Fields, "payment_method")
		assert.Contains(t, ve.Fields, "items")
		assert.Contains(t, ve.Fields, "items_owner")
	})

	t.Run("Zero amount is rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeBook, 4000, 10),
		}, nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "0.00",
			Method:  "cash",
			Items:   []ledger.ItemInput{{FeeID: 1, Amount: "40.00"}},
		})

		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "amount")
	})
}

func TestRecordTransactionPersistedSumGate(t *testing.T) {
	t.Run("Mismatch between persisted rows and amount fails the unit", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(payerParent(), nil)
		f.fees.On("GetByIDs", mock.Anything, []uint64{1}).Return([]*entity.Fee{
			ownedFee(1, entity.FeeBook, 10000, 10),
		}, nil)
		f.expectHappyPersistence()
		f.txns.On("SumItemAmounts", mock.Anything, uint64(555)).Return(int64(9999), nil)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "100.00",
			Method:  "cash",
			Items:   []ledger.ItemInput{{FeeID: 1, Amount: "100.00"}},
		})

		require.Error(t, err)
		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "items_amount")
		assert.Equal(t, 1, f.uow.RollbackCount)
		f.txns.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})
}

func TestRecordTransactionLookupFailures(t *testing.T) {
	t.Run("Unknown payer aborts the unit", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(10)).Return(nil, errs.ErrUserNotFound)

		_, err := f.service.RecordTransaction(context.Background(), ledger.RecordInput{
			PayerID: 10,
			Amount:  "100.00",
			Method:  "cash",
			Items:   []ledger.ItemInput{{FeeID: 1, Amount: "100.00"}},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Equal(t, 1, f.uow.RollbackCount)
	})
}

func TestGetByReference(t *testing.T) {
	t.Run("Delegates to the repository", func(t *testing.T) {
		f := newLedgerFixture(t)
		want := &entity.Transaction{ID: 1, Reference: "ref-1"}
		f.txns.On("GetByReference", mock.Anything, "ref-1").Return(want, nil)

		got, err := f.service.GetByReference(context.Background(), "ref-1")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Propagates not found", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.txns.On("GetByReference", mock.Anything, "missing").Return(nil, errs.ErrTransactionNotFound)

		_, err := f.service.GetByReference(context.Background(), "missing")

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}
