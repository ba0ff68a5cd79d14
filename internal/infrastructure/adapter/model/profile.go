package model

import (
	"time"
)

// Profile represents the database model for user profiles, one per user
type Profile struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"uniqueIndex;not null"`
	Phone      string    `gorm:"size:30"`
	Address    string    `gorm:"size:255"`
	City       string    `gorm:"size:100"`
	Occupation string    `gorm:"size:100"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
