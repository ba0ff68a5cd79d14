package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
)

// validatedInput carries the parsed view of a submission once every rule has
// been evaluated. Amounts are in cents.
type validatedInput struct {
	amountInCents int64
	itemCents     []int64
	feeIDs        []uint64
	method        entity.PaymentMethod
}

// validate evaluates every ledger invariant against the submission and the
// loaded fees, collecting all violations into one ValidationError. Nothing
// short-circuits: the caller gets the complete correction list in one pass.
//
// Fields reported:
//   - payer:          payer must hold the parent role
//   - amount:         declared total must parse and be > 0
//   - payment_method: must be a known method
//   - items:          at least one item; per-item amount > 0; fee must exist;
//     a fee cannot be billed twice
//   - items_amount:   sum of item amounts must equal the declared total
//   - items_owner:    every item's fee must belong to a student of the payer
func validate(payer *entity.User, in RecordInput, fees map[uint64]*entity.Fee) (*validatedInput, *errs.ValidationError) {
	ve := errs.NewValidationError()
	out := &validatedInput{
		itemCents: make([]int64, len(in.Items)),
		feeIDs:    make([]uint64, 0, len(in.Items)),
	}

	if !payer.IsRole(entity.RoleParent) {
		ve.Add("payer", "payer must have role 'parent'")
	}

	amountKnown := false
	if cents, err := entity.ParseAmount(in.Amount); err != nil {
		ve.Addf("amount", "amount must be a positive number with at most %d decimal places", entity.MaxDecimalPlaces)
	} else if cents <= 0 {
		ve.Add("amount", "amount must be greater than 0")
	} else {
		out.amountInCents = cents
		amountKnown = true
	}

	if !entity.IsValidPaymentMethod(in.Method) {
		ve.Addf("payment_method", "invalid payment method %q", in.Method)
	} else {
		out.method = entity.PaymentMethod(in.Method)
	}

	if len(in.Items) == 0 {
		ve.Add("items", "at least one fee item must be added to the transaction")
	}

	sum := int64(0)
	sumKnown := true
	seen := make(map[uint64]bool, len(in.Items))
	for idx, item := range in.Items {
		if item.FeeID == 0 {
			ve.Addf("items", "item %d: fee is required", idx+1)
			sumKnown = false
			continue
		}
		if seen[item.FeeID] {
			ve.Addf("items", "fee %d is billed more than once", item.FeeID)
		} else {
			seen[item.FeeID] = true
			out.feeIDs = append(out.feeIDs, item.FeeID)
		}
		if _, ok := fees[item.FeeID]; !ok {
			ve.Addf("items", "fee %d not found", item.FeeID)
		}

		cents, err := entity.ParseAmount(item.Amount)
		if err != nil || cents <= 0 {
			ve.Addf("items", "item %d: amount must be greater than 0", idx+1)
			sumKnown = false
			continue
		}
		out.itemCents[idx] = cents
		sum += cents
	}

	if amountKnown && sumKnown && sum != out.amountInCents {
		ve.Add("items_amount", "sum of item amounts must equal the transaction amount")
	}

	if violating := foreignFees(in.PayerID, fees); len(violating) > 0 {
		ve.Addf("items_owner", "all fee items must belong to students of the payer (fees: %s)",
			joinIDs(violating))
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return out, nil
}

// foreignFees returns the IDs of fees whose student is not owned by the payer
func foreignFees(payerID uint64, fees map[uint64]*entity.Fee) []uint64 {
	var violating []uint64
	for _, fee := range fees {
		if fee.OwnerID() != payerID {
			violating = append(violating, fee.ID)
		}
	}
	sort.Slice(violating, func(i, j int) bool { return violating[i] < violating[j] })
	return violating
}

func joinIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
