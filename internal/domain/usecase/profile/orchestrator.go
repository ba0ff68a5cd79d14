package profile

import (
	"context"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/persistence"
	"github.com/brightpath-edu/school-ledger/internal/domain/usecase/enrollment"
)

// Result messages returned to the caller
const (
	MsgProfileUpdated           = "Profile updated successfully."
	MsgProfileAndStudentCreated = "Profile updated and new student created successfully. " +
		"An email has been sent to your account."
)

// StudentInput carries the optional nested child payload of a profile update.
// Absent fields pass through so the enrollment service applies its defaults.
type StudentInput struct {
	FirstName string
	LastName  string
	Gender    string
}

// UpdateInput is a profile update request, optionally asking for a nested
// student enrollment in the same atomic unit
type UpdateInput struct {
	Changes       entity.ProfileChanges
	CreateStudent bool
	Student       *StudentInput
}

// UpdateResult reports what the orchestrated update did
type UpdateResult struct {
	Message string
	Profile *entity.Profile
	Student *entity.Student
}

// Orchestrator coordinates the profile mutation and the optional nested
// enrollment in one atomic unit of work. After a nested enrollment it
// recomputes the sibling flag across all of the parent's students - unlike
// direct enrollment, which only snapshots the flag for the new student.
type Orchestrator struct {
	uow        persistence.UnitOfWork
	enrollment *enrollment.Service
	logger     coreport.Logger
}

// NewOrchestrator creates a profile update orchestrator
func NewOrchestrator(uow persistence.UnitOfWork, enrollment *enrollment.Service, logger coreport.Logger) *Orchestrator {
	return &Orchestrator{
		uow:        uow,
		enrollment: enrollment,
		logger:     logger,
	}
}

// UpdateProfile applies the profile changes and, when requested, enrolls a
// student for the user, all-or-nothing. A validation failure from either step
// aborts the whole unit: no partial profile update, no orphan student row,
// no notification.
func (o *Orchestrator) UpdateProfile(ctx context.Context, userID uint64, in UpdateInput) (*UpdateResult, error) {
	txCtx, err := o.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := o.updateInUnit(txCtx, userID, in)
	if err != nil {
		if rbErr := o.uow.Rollback(txCtx); rbErr != nil {
			o.logger.Error("Failed to roll back profile update unit", map[string]any{
				"user_id": userID,
				"error":   rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := o.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) updateInUnit(ctx context.Context, userID uint64, in UpdateInput) (*UpdateResult, error) {
	profiles := o.uow.Profiles(ctx)

	prof, err := profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prof.Apply(in.Changes)
	if err := profiles.Update(ctx, prof); err != nil {
		return nil, err
	}

	if !in.CreateStudent {
		return &UpdateResult{Message: MsgProfileUpdated, Profile: prof}, nil
	}

	var childIn enrollment.Input
	if in.Student != nil {
		childIn = enrollment.Input{
			FirstName: in.Student.FirstName,
			LastName:  in.Student.LastName,
			Gender:    in.Student.Gender,
		}
	}

	student, err := o.enrollment.CreateInUnit(ctx, userID, childIn)
	if err != nil {
		return nil, err
	}

	// The new student exists now, so the flag stops being a snapshot: every
	// one of the parent's students is marked once the parent owns more than
	// one.
	students := o.uow.Students(ctx)
	count, err := students.CountByParent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count > 1 {
		if err := students.MarkSiblings(ctx, userID); err != nil {
			return nil, err
		}
		student.HasSibling = true
	}

	o.logger.Info("Profile updated with nested enrollment", map[string]any{
		"user_id":          userID,
		"admission_number": student.AdmissionNumber,
		"student_count":    count,
	})

	return &UpdateResult{
		Message: MsgProfileAndStudentCreated,
		Profile: prof,
		Student: student,
	}, nil
}
