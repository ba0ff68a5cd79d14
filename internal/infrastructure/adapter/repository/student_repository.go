package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/model"
)

// StudentRepository implements persistence.StudentRepository using GORM
type StudentRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewStudentRepository creates a new StudentRepository instance
func NewStudentRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *StudentRepository {
	return &StudentRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func studentEntityToModel(s *entity.Student) *model.Student {
	return &model.Student{
		ID:                s.ID,
		ParentID:          s.ParentID,
		AdmissionNumber:   s.AdmissionNumber,
		FirstName:         s.FirstName,
		LastName:          s.LastName,
		Gender:            string(s.Gender),
		AccountStatus:     string(s.AccountStatus),
		HasSibling:        s.HasSibling,
		VerifiedByID:      s.VerifiedByID,
		VerificationDate:  s.VerificationDate,
		VerificationNotes: s.VerificationNotes,
		FullyActivated:    s.FullyActivated,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func studentModelToEntity(m *model.Student) *entity.Student {
	return &entity.Student{
		ID:                m.ID,
		ParentID:          m.ParentID,
		AdmissionNumber:   m.AdmissionNumber,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Gender:            entity.Gender(m.Gender),
		AccountStatus:     entity.AccountStatus(m.AccountStatus),
		HasSibling:        m.HasSibling,
		VerifiedByID:      m.VerifiedByID,
		VerificationDate:  m.VerificationDate,
		VerificationNotes: m.VerificationNotes,
		FullyActivated:    m.FullyActivated,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling for students
func (r *StudentRepository) handleDatabaseError(operation string, err error, parentID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrStudentNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		// Expected under the enrollment retry loop, so only a warning
		r.logger.Warn("Duplicate key when "+operation, map[string]any{
			"parent_id": parentID,
		})
		return errs.ErrDuplicateKey
	}

	if r.errorClassifier.IsConstraintError(err) {
		r.logger.Error("Constraint violation when "+operation, map[string]any{
			"parent_id": parentID,
			"error":     err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	r.logger.Error("Database error when "+operation, map[string]any{
		"parent_id": parentID,
		"error":     err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new student record. A violated admission-number
// uniqueness constraint surfaces as ErrDuplicateKey so the enrollment
// service can regenerate and retry.
func (r *StudentRepository) Create(ctx context.Context, student *entity.Student) error {
	studentModel := studentEntityToModel(student)

	result := r.db.WithContext(ctx).Create(studentModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating student", result.Error, student.ParentID)
	}

	student.ID = studentModel.ID
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id uint64) (*entity.Student, error) {
	var studentModel model.Student
	result := r.db.WithContext(ctx).First(&studentModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrStudentNotFound
		}
		r.logger.Error("Database error when getting student", map[string]any{
			"student_id": id,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return studentModelToEntity(&studentModel), nil
}

// CountByParent returns how many students the given parent owns
func (r *StudentRepository) CountByParent(ctx context.Context, parentID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("parent_id = ?", parentID).
		Count(&count)

	if result.Error != nil {
		return 0, r.handleDatabaseError("counting students", result.Error, parentID)
	}
	return count, nil
}

// ListByParent returns all students owned by the given parent, oldest first
func (r *StudentRepository) ListByParent(ctx context.Context, parentID uint64) ([]*entity.Student, error) {
	var studentModels []model.Student
	result := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&studentModels)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing students", result.Error, parentID)
	}

	students := make([]*entity.Student, len(studentModels))
	for i := range studentModels {
		students[i] = studentModelToEntity(&studentModels[i])
	}
	return students, nil
}

// MarkSiblings sets has_sibling = true on every student owned by the parent
func (r *StudentRepository) MarkSiblings(ctx context.Context, parentID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("parent_id = ?", parentID).
		Updates(map[string]interface{}{
			"has_sibling": true,
			"updated_at":  r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("marking siblings", result.Error, parentID)
	}

	r.logger.Debug("Sibling flags updated", map[string]any{
		"parent_id":     parentID,
		"rows_affected": result.RowsAffected,
	})
	return nil
}
