package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/persistence"
)

// ItemInput is one line item of a submission: a fee and the charged amount
type ItemInput struct {
	FeeID  uint64
	Amount string
}

// RecordInput is a payment submission: the payer, the declared total and the
// line items it must decompose into
type RecordInput struct {
	PayerID     uint64
	Amount      string
	Description string
	Method      string
	Items       []ItemInput
}

// Service validates and persists payment transactions with their line items.
// A transaction completes only when the payer holds the parent role, the
// declared amount is positive, the items sum exactly to it, and every item's
// fee belongs to one of the payer's students. Violations roll the whole unit
// back; completed rows are immutable.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a ledger service
func NewService(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RecordTransaction runs a submission through the full validation pipeline
// and persists it inside one atomic unit of work. On any violation a
// ValidationError carrying every broken rule is returned and nothing is
// persisted.
func (s *Service) RecordTransaction(ctx context.Context, in RecordInput) (*entity.Transaction, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := s.recordInUnit(txCtx, in)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back ledger unit", map[string]any{
				"payer_id": in.PayerID,
				"error":    rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction recorded", map[string]any{
		"reference": txn.Reference,
		"payer_id":  txn.PayerID,
		"amount":    txn.Amount,
		"items":     len(txn.Items),
	})
	return txn, nil
}

func (s *Service) recordInUnit(ctx context.Context, in RecordInput) (*entity.Transaction, error) {
	payer, err := s.uow.Users(ctx).GetByID(ctx, in.PayerID)
	if err != nil {
		return nil, err
	}

	fees, err := s.loadFees(ctx, in)
	if err != nil {
		return nil, err
	}

	checked, ve := validate(payer, in, fees)
	if ve != nil {
		s.logger.Warn("Transaction rejected", map[string]any{
			"payer_id": in.PayerID,
			"fields":   ve.Fields,
		})
		return nil, ve
	}

	txns := s.uow.Transactions(ctx)

	txn, err := entity.NewTransaction(in.PayerID, uuid.NewString(), in.Amount, in.Description, checked.method, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := txns.Create(ctx, txn); err != nil {
		return nil, err
	}

	items := make([]*entity.TransactionItem, len(in.Items))
	for idx, item := range in.Items {
		items[idx] = &entity.TransactionItem{
			TransactionID: txn.ID,
			FeeID:         item.FeeID,
			Amount:        entity.CentsToAmount(checked.itemCents[idx]),
			AmountInCents: checked.itemCents[idx],
			CreatedAt:     s.timeProvider.Now(),
		}
	}
	if err := txns.CreateItems(ctx, items); err != nil {
		return nil, err
	}
	txn.Items = items

	// Re-verify the sum against the persisted rows before finalizing. The
	// aggregate-sum query is the last gate between pending and completed.
	total, err := txns.SumItemAmounts(ctx, txn.ID)
	if err != nil {
		return nil, err
	}
	if total != txn.AmountInCents {
		ve := errs.NewValidationError()
		ve.Add("items_amount", "sum of item amounts must equal the transaction amount")
		return nil, ve
	}

	txn.MarkCompleted(s.timeProvider)
	if err := txns.UpdateStatus(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// loadFees resolves every referenced fee with its student so ownership can be
// checked up to the parent. Missing fees stay absent from the map and are
// reported by validation, not here.
func (s *Service) loadFees(ctx context.Context, in RecordInput) (map[uint64]*entity.Fee, error) {
	ids := make([]uint64, 0, len(in.Items))
	seen := make(map[uint64]bool, len(in.Items))
	for _, item := range in.Items {
		if item.FeeID != 0 && !seen[item.FeeID] {
			seen[item.FeeID] = true
			ids = append(ids, item.FeeID)
		}
	}
	if len(ids) == 0 {
		return map[uint64]*entity.Fee{}, nil
	}

	fees, err := s.uow.Fees(ctx).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*entity.Fee, len(fees))
	for _, fee := range fees {
		byID[fee.ID] = fee
	}
	return byID, nil
}

// GetByReference retrieves a transaction with its line items
func (s *Service) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	return s.uow.Transactions(ctx).GetByReference(ctx, reference)
}
