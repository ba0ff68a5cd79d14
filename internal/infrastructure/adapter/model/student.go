package model

import (
	"time"
)

// Student represents the database model for student accounts. The admission
// number carries the uniqueness constraint the enrollment retry loop relies
// on: a violated insert maps to ErrDuplicateKey and triggers regeneration.
type Student struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	ParentID          uint64    `gorm:"not null;index"`
	AdmissionNumber   string    `gorm:"uniqueIndex;not null;size:32"`
	FirstName         string    `gorm:"not null;size:100"`
	LastName          string    `gorm:"not null;size:100"`
	Gender            string    `gorm:"not null;size:20"`
	AccountStatus     string    `gorm:"not null;size:20"`
	HasSibling        bool      `gorm:"not null;default:false"`
	VerifiedByID      *uint64   `gorm:"index"`
	VerificationDate  *time.Time
	VerificationNotes string    `gorm:"type:text"`
	FullyActivated    bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`

	// Define relationships
	Parent     User  `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
	// Removing a staff account clears the verification link without
	// touching the student row.
	VerifiedBy *User `gorm:"foreignKey:VerifiedByID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}
