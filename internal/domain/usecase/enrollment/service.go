package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/notify"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/persistence"
	"github.com/brightpath-edu/school-ledger/internal/domain/usecase/admission"
)

// DefaultMaxAttempts bounds the admission-number collision retry loop.
// A collision is astronomically unlikely given the checksum+length design,
// so exhausting the budget signals a broken random source rather than load.
const DefaultMaxAttempts = 10

// Input carries the optional child fields for an enrollment. Empty fields
// receive defaults: first name "Student", last name from the parent's surname
// (or "Account"), gender "other".
type Input struct {
	FirstName string
	LastName  string
	Gender    string
}

// Service creates student accounts for parents: defaults, sibling snapshot,
// collision-safe admission number issuance and a post-commit notification.
type Service struct {
	uow          persistence.UnitOfWork
	issuer       *admission.Issuer
	sink         notify.Sink
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	maxAttempts  int
}

// NewService creates an enrollment service
func NewService(
	uow persistence.UnitOfWork,
	issuer *admission.Issuer,
	sink notify.Sink,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		issuer:       issuer,
		sink:         sink,
		timeProvider: timeProvider,
		logger:       logger,
		maxAttempts:  DefaultMaxAttempts,
	}
}

// WithMaxAttempts overrides the collision retry budget
func (s *Service) WithMaxAttempts(attempts int) *Service {
	if attempts > 0 {
		s.maxAttempts = attempts
	}
	return s
}

// CreateStudentAccount enrolls a student for the given parent inside its own
// atomic unit of work. The notification fires only after the unit commits.
func (s *Service) CreateStudentAccount(ctx context.Context, parentID uint64, in Input) (*entity.Student, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	student, err := s.CreateInUnit(txCtx, parentID, in)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back enrollment unit", map[string]any{
				"parent_id": parentID,
				"error":     rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	return student, nil
}

// CreateInUnit enrolls a student inside an already-open unit of work. The
// profile update orchestrator uses this to fold enrollment into its own
// atomic unit; commit and rollback stay with the caller.
func (s *Service) CreateInUnit(ctx context.Context, parentID uint64, in Input) (*entity.Student, error) {
	users := s.uow.Users(ctx)
	parent, err := users.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	firstName, lastName, gender, err := applyDefaults(parent, in)
	if err != nil {
		return nil, err
	}

	students := s.uow.Students(ctx)

	// Sibling snapshot before insert; prior siblings are not flipped here.
	// The profile-update path recomputes the flag across all of the parent's
	// students after a nested enrollment.
	count, err := students.CountByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	hasSibling := count > 0

	student, err := s.insertWithFreshNumber(ctx, students, parentID, firstName, lastName, gender, hasSibling)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student account created", map[string]any{
		"parent_id":        parentID,
		"admission_number": student.AdmissionNumber,
		"has_sibling":      student.HasSibling,
	})

	s.uow.RegisterPostCommit(ctx, func() {
		s.sink.Send(parent, student)
	})

	return student, nil
}

// insertWithFreshNumber generates admission numbers and attempts the insert
// until the uniqueness constraint accepts one, bounded by maxAttempts.
func (s *Service) insertWithFreshNumber(
	ctx context.Context,
	students persistence.StudentRepository,
	parentID uint64,
	firstName, lastName string,
	gender entity.Gender,
	hasSibling bool,
) (*entity.Student, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		number, err := s.issuer.Generate()
		if err != nil {
			return nil, err
		}

		student, err := entity.NewStudent(parentID, number, firstName, lastName, gender, hasSibling, s.timeProvider)
		if err != nil {
			return nil, err
		}

		err = students.Create(ctx, student)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, errs.ErrDuplicateKey) {
			return nil, err
		}

		s.logger.Warn("Admission number collision, regenerating", map[string]any{
			"parent_id": parentID,
			"attempt":   attempt,
		})
	}

	return nil, fmt.Errorf("%w: after %d attempts", errs.ErrAdmissionRetryExhausted, s.maxAttempts)
}

func applyDefaults(parent *entity.User, in Input) (string, string, entity.Gender, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		firstName = "Student"
	}

	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		lastName = strings.TrimSpace(parent.LastName)
		if lastName == "" {
			lastName = "Account"
		}
	}

	gender := strings.TrimSpace(in.Gender)
	if gender == "" {
		gender = string(entity.GenderOther)
	}
	if !entity.IsValidGender(gender) {
		ve := errs.NewValidationError()
		ve.Addf("gender", "invalid gender value, allowed: %s", strings.Join(entity.AllowedGenders(), ", "))
		return "", "", "", ve
	}

	return firstName, lastName, entity.Gender(gender), nil
}
