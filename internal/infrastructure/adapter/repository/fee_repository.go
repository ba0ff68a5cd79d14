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

// FeeRepository implements persistence.FeeRepository using GORM
type FeeRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewFeeRepository creates a new FeeRepository instance
func NewFeeRepository(db *gorm.DB, logger coreport.Logger) *FeeRepository {
	return &FeeRepository{
		db:     db,
		logger: logger,
	}
}

func feeModelToEntity(m *model.Fee) *entity.Fee {
	fee := &entity.Fee{
		ID:            m.ID,
		StudentID:     m.StudentID,
		FeeType:       entity.FeeType(m.FeeType),
		Amount:        m.Amount,
		AmountInCents: m.AmountInCents,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Student.ID != 0 {
		fee.Student = studentModelToEntity(&m.Student)
	}
	return fee
}

// GetByID retrieves a fee by ID with its student association loaded
func (r *FeeRepository) GetByID(ctx context.Context, id uint64) (*entity.Fee, error) {
	var feeModel model.Fee
	result := r.db.WithContext(ctx).Preload("Student").First(&feeModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrFeeNotFound
		}
		r.logger.Error("Database error when getting fee", map[string]any{
			"fee_id": id,
			"error":  result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return feeModelToEntity(&feeModel), nil
}

// GetByIDs retrieves the fees for the given IDs with student associations
// loaded. Missing IDs are simply absent from the result.
func (r *FeeRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*entity.Fee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var feeModels []model.Fee
	result := r.db.WithContext(ctx).Preload("Student").
		Where("id IN ?", ids).
		Find(&feeModels)

	if result.Error != nil {
		r.logger.Error("Database error when getting fees", map[string]any{
			"fee_ids": ids,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	fees := make([]*entity.Fee, len(feeModels))
	for i := range feeModels {
		fees[i] = feeModelToEntity(&feeModels[i])
	}
	return fees, nil
}
