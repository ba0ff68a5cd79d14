package model

import (
	"time"
)

// User represents the database model for platform users
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	FirstName string    `gorm:"not null;size:100"`
	LastName  string    `gorm:"not null;size:100"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Role      string    `gorm:"not null;size:50;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
