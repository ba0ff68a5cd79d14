package entity

import (
	"time"
)

// FeeType represents the kind of priced obligation a fee covers
type FeeType string

// Fee types. A student has at most one fee record per type.
const (
	FeeAdmission FeeType = "admission"
	FeeBook      FeeType = "book_fee"
	FeeBus       FeeType = "bus_fee"
	FeeTuition   FeeType = "tution_fee"
	FeeExam      FeeType = "exam_fee"
	FeeTerm      FeeType = "term_fee"
	FeeYearly    FeeType = "yearly_fee"
)

// Fee represents a priced obligation of one student. Fees are created and
// maintained by office staff outside this core; the ledger only reads them.
type Fee struct {
	ID            uint64    // Unique identifier for the fee
	StudentID     uint64    // Student this fee belongs to
	FeeType       FeeType   // Kind of obligation; unique per student
	Amount        string    // Amount as a string with 2 decimal places
	AmountInCents int64     // Amount in cents for precise calculations
	CreatedAt     time.Time // When the fee was created
	UpdatedAt     time.Time // When the fee was last updated

	// Student is populated by repositories when ownership must be resolved
	Student *Student
}

// OwnerID returns the ID of the parent who owns the fee's student,
// or zero when the student association is not loaded.
func (f *Fee) OwnerID() uint64 {
	if f.Student == nil {
		return 0
	}
	return f.Student.ParentID
}

// IsValidFeeType validates if the fee type is one of the allowed values
func IsValidFeeType(feeType string) bool {
	switch FeeType(feeType) {
	case FeeAdmission, FeeBook, FeeBus, FeeTuition, FeeExam, FeeTerm, FeeYearly:
		return true
	}
	return false
}
