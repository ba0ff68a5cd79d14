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

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transactionEntityToModel(t *entity.Transaction) *model.Transaction {
	return &model.Transaction{
		ID:            t.ID,
		Reference:     t.Reference,
		PayerID:       t.PayerID,
		Amount:        t.Amount,
		AmountInCents: t.AmountInCents,
		Description:   t.Description,
		Status:        string(t.Status),
		Method:        string(t.Method),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	txn := &entity.Transaction{
		ID:            m.ID,
		Reference:     m.Reference,
		PayerID:       m.PayerID,
		Amount:        m.Amount,
		AmountInCents: m.AmountInCents,
		Description:   m.Description,
		Status:        entity.TransactionStatus(m.Status),
		Method:        entity.PaymentMethod(m.Method),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for i := range m.Items {
		item := &m.Items[i]
		txn.Items = append(txn.Items, &entity.TransactionItem{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			FeeID:         item.FeeID,
			Amount:        item.Amount,
			AmountInCents: item.AmountInCents,
			CreatedAt:     item.CreatedAt,
		})
	}
	return txn
}

// handleDatabaseError standardizes database error handling for the ledger
func (r *TransactionRepository) handleDatabaseError(operation string, err error) error {
	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate key when "+operation, nil)
		return errs.ErrDuplicateKey
	}

	if r.errorClassifier.IsConstraintError(err) {
		r.logger.Error("Constraint violation when "+operation, map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	r.logger.Error("Database error when "+operation, map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new pending transaction row
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := transactionEntityToModel(transaction)

	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error)
	}

	transaction.ID = transactionModel.ID
	return nil
}

// CreateItems persists the transaction's line items in one insert
func (r *TransactionRepository) CreateItems(ctx context.Context, items []*entity.TransactionItem) error {
	if len(items) == 0 {
		return nil
	}

	itemModels := make([]model.TransactionItem, len(items))
	for i, item := range items {
		itemModels[i] = model.TransactionItem{
			TransactionID: item.TransactionID,
			FeeID:         item.FeeID,
			Amount:        item.Amount,
			AmountInCents: item.AmountInCents,
			CreatedAt:     item.CreatedAt,
		}
	}

	result := r.db.WithContext(ctx).Create(&itemModels)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction items", result.Error)
	}

	for i := range items {
		items[i].ID = itemModels[i].ID
	}
	return nil
}

// SumItemAmounts runs the aggregate-sum query over the persisted line items
func (r *TransactionRepository) SumItemAmounts(ctx context.Context, transactionID uint64) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&model.TransactionItem{}).
		Where("transaction_id = ?", transactionID).
		Select("COALESCE(SUM(amount_in_cents), 0)").
		Scan(&total)

	if result.Error != nil {
		return 0, r.handleDatabaseError("summing transaction items", result.Error)
	}
	return total, nil
}

// UpdateStatus updates the lifecycle status of a persisted transaction
func (r *TransactionRepository) UpdateStatus(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"status":     string(transaction.Status),
			"updated_at": transaction.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating transaction status", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// GetByReference retrieves a transaction with its items by external reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).Preload("Items").
		Where("reference = ?", reference).
		First(&transactionModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Database error when getting transaction", map[string]any{
			"reference": reference,
			"error":     result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return transactionModelToEntity(&transactionModel), nil
}
