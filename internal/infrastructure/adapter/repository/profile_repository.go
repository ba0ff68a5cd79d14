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

// ProfileRepository implements persistence.ProfileRepository using GORM
type ProfileRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewProfileRepository creates a new ProfileRepository instance
func NewProfileRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func profileModelToEntity(m *model.Profile) *entity.Profile {
	return &entity.Profile{
		ID:         m.ID,
		UserID:     m.UserID,
		Phone:      m.Phone,
		Address:    m.Address,
		City:       m.City,
		Occupation: m.Occupation,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// GetByUserID retrieves the profile owned by the given user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Profile, error) {
	var profileModel model.Profile
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("Profile not found", map[string]any{
				"user_id": userID,
			})
			return nil, errs.ErrProfileNotFound
		}
		r.logger.Error("Database error when getting profile", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return profileModelToEntity(&profileModel), nil
}

// Update persists the profile's mutable fields
func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"phone":      profile.Phone,
			"address":    profile.Address,
			"city":       profile.City,
			"occupation": profile.Occupation,
			"updated_at": now,
		})

	if result.Error != nil {
		r.logger.Error("Database error when updating profile", map[string]any{
			"profile_id": profile.ID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Profile not found during update", map[string]any{
			"profile_id": profile.ID,
		})
		return errs.ErrProfileNotFound
	}

	profile.UpdatedAt = now
	return nil
}
