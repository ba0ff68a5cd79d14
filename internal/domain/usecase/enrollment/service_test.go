package enrollment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	"github.com/brightpath-edu/school-ledger/internal/domain/usecase/admission"
	"github.com/brightpath-edu/school-ledger/internal/domain/usecase/enrollment"
	coremocks "github.com/brightpath-edu/school-ledger/mocks/port/core"
	persistencemocks "github.com/brightpath-edu/school-ledger/mocks/port/persistence"
)

type enrollmentFixture struct {
	uow      *persistencemocks.FakeUnitOfWork
	users    *persistencemocks.MockUserRepository
	students *persistencemocks.MockStudentRepository
	sink     *coremocks.RecordingSink
	service  *enrollment.Service
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()

	users := new(persistencemocks.MockUserRepository)
	students := new(persistencemocks.MockStudentRepository)
	uow := persistencemocks.NewFakeUnitOfWork()
	uow.UserRepo = users
	uow.StudentRepo = students

	sink := coremocks.NewRecordingSink()
	issuer := admission.NewIssuer(
		admission.Config{InstitutionCode: "4021", TotalLength: 16},
		coremocks.NewScriptedDigitSource(nil, 7),
		coremocks.NewNullLogger(),
	)
	timeProvider := coremocks.NewStubTimeProvider(time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC))

	return &enrollmentFixture{
		uow:      uow,
		users:    users,
		students: students,
		sink:     sink,
		service:  enrollment.NewService(uow, issuer, sink, timeProvider, coremocks.NewNullLogger()),
	}
}

func parentUser() *entity.User {
	return &entity.User{
		ID:        42,
		FirstName: "Adaeze",
		LastName:  "Okafor",
		Email:     "adaeze@example.com",
		Role:      entity.RoleParent,
	}
}

func TestCreateStudentAccountDefaults(t *testing.T) {
	t.Run("Empty input falls back to Student / parent surname / other", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		assert.Equal(t, "Student", student.FirstName)
		assert.Equal(t, "Okafor", student.LastName)
		assert.Equal(t, entity.GenderOther, student.Gender)
		assert.Equal(t, entity.StatusInactive, student.AccountStatus)
		assert.False(t, student.HasSibling)
		assert.Equal(t, 1, f.uow.CommitCount)
	})

	t.Run("Parent without surname falls back to Account", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		parent := parentUser()
		parent.LastName = "  "
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parent, nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		assert.Equal(t, "Account", student.LastName)
	})

	t.Run("Provided names are normalized to title case", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{
			FirstName: "  cHIOMA ",
			LastName:  "oKAFOR",
			Gender:    "female",
		})

		require.NoError(t, err)
		assert.Equal(t, "Chioma", student.FirstName)
		assert.Equal(t, "Okafor", student.LastName)
		assert.Equal(t, entity.GenderFemale, student.Gender)
	})
}

func TestCreateStudentAccountAdmissionNumber(t *testing.T) {
	t.Run("Issued number has configured length and a valid checksum", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		assert.Len(t, student.AdmissionNumber, 16)
		assert.True(t, admission.IsLuhnValid(student.AdmissionNumber))
	})

	t.Run("Duplicate-key insert retries with a fresh number", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		// At length 16 with a 4-digit institution code and the check digit,
		// each number consumes 11 random digits. Two identical runs of fives
		// force the collision path twice; the fallback digit makes the third
		// number distinct.
		same := make([]int, 22)
		for i := range same {
			same[i] = 5
		}
		issuer := admission.NewIssuer(
			admission.Config{InstitutionCode: "4021", TotalLength: 16},
			coremocks.NewScriptedDigitSource(same, 9),
			coremocks.NewNullLogger(),
		)
		timeProvider := coremocks.NewStubTimeProvider(time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC))
		service := enrollment.NewService(f.uow, issuer, f.sink, timeProvider, coremocks.NewNullLogger())

		var issued []string
		record := func(args mock.Arguments) {
			issued = append(issued, args.Get(1).(*entity.Student).AdmissionNumber)
		}
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).
			Run(record).Return(errs.ErrDuplicateKey).Twice()
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).
			Run(record).Return(nil).Once()

		student, err := service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		require.NotNil(t, student)
		require.Len(t, issued, 3)
		assert.Equal(t, issued[0], issued[1])
		assert.NotEqual(t, issued[1], issued[2])
		assert.Equal(t, issued[2], student.AdmissionNumber)
		f.students.AssertNumberOfCalls(t, "Create", 3)
		assert.Equal(t, 1, f.uow.CommitCount)
	})

	t.Run("Retry budget exhaustion surfaces a dedicated error", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.service.WithMaxAttempts(3)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).
			Return(errs.ErrDuplicateKey)

		_, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAdmissionRetryExhausted)
		f.students.AssertNumberOfCalls(t, "Create", 3)
		assert.Equal(t, 1, f.uow.RollbackCount)
		assert.Zero(t, f.uow.CommitCount)
	})

	t.Run("Non-duplicate insert errors are not retried", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).
			Return(errs.ErrDatabaseConnection)

		_, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.students.AssertNumberOfCalls(t, "Create", 1)
	})
}

func TestCreateStudentAccountSiblingSnapshot(t *testing.T) {
	t.Run("First child has no sibling", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		assert.False(t, student.HasSibling)
	})

	t.Run("Later children snapshot the flag at creation", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(2), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		assert.True(t, student.HasSibling)
	})
}

func TestCreateStudentAccountValidation(t *testing.T) {
	t.Run("Invalid gender aborts the unit with a field error", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)

		_, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{Gender: "unknown"})

		require.Error(t, err)
		ve, ok := errs.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "gender")
		assert.Equal(t, 1, f.uow.RollbackCount)
		assert.Zero(t, f.sink.Count())
	})

	t.Run("Unknown parent aborts the unit", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(7)).Return(nil, errs.ErrUserNotFound)

		_, err := f.service.CreateStudentAccount(context.Background(), 7, enrollment.Input{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Equal(t, 1, f.uow.RollbackCount)
	})
}

func TestCreateStudentAccountNotification(t *testing.T) {
	t.Run("Notification fires exactly once after commit", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		require.Equal(t, 1, f.sink.Count())
		assert.Equal(t, uint64(42), f.sink.Calls[0].Parent.ID)
		assert.Equal(t, student.AdmissionNumber, f.sink.Calls[0].Student.AdmissionNumber)
		assert.Zero(t, f.uow.PendingPostCommit())
	})

	t.Run("Notification is discarded when the unit rolls back", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)
		f.uow.CommitErr = errs.ErrDatabaseConnection

		_, err := f.service.CreateStudentAccount(context.Background(), 42, enrollment.Input{})

		require.Error(t, err)
		assert.Zero(t, f.sink.Count())
	})
}

func TestCreateInUnit(t *testing.T) {
	t.Run("Leaves transaction control with the caller", func(t *testing.T) {
		f := newEnrollmentFixture(t)
		f.users.On("GetByID", mock.Anything, uint64(42)).Return(parentUser(), nil)
		f.students.On("CountByParent", mock.Anything, uint64(42)).Return(int64(0), nil)
		f.students.On("Create", mock.Anything, mock.AnythingOfType("*entity.Student")).Return(nil)

		student, err := f.service.CreateInUnit(context.Background(), 42, enrollment.Input{})

		require.NoError(t, err)
		require.NotNil(t, student)
		assert.Zero(t, f.uow.BeginCount)
		assert.Zero(t, f.uow.CommitCount)
		assert.Equal(t, 1, f.uow.PendingPostCommit())
		assert.Zero(t, f.sink.Count())
	})
}
