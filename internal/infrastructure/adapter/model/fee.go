package model

import (
	"time"
)

// Fee represents the database model for student fees. A student carries at
// most one fee per type, enforced by the composite unique index.
type Fee struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	StudentID     uint64    `gorm:"not null;index;uniqueIndex:idx_student_fee_type"`
	FeeType       string    `gorm:"not null;size:50;uniqueIndex:idx_student_fee_type"`
	Amount        string    `gorm:"not null;size:50"`
	AmountInCents int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	// Define relationships
	Student Student `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Fee
func (Fee) TableName() string {
	return "fees"
}
