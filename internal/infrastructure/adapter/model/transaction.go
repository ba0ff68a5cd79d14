package model

import (
	"time"
)

// Transaction represents the database model for payment transactions
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	Reference     string    `gorm:"uniqueIndex;not null;size:64"`
	PayerID       uint64    `gorm:"not null;index"`
	Amount        string    `gorm:"not null;size:50"`
	AmountInCents int64     `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	Status        string    `gorm:"not null;size:20"`
	Method        string    `gorm:"not null;size:30"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`

	// Define relationships
	// Payment history must survive account removal, so the payer FK blocks it.
	Payer User              `gorm:"foreignKey:PayerID;references:ID;constraint:OnDelete:RESTRICT"`
	Items []TransactionItem `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem represents one fee line of a transaction. The composite
// unique index stops a fee from being billed twice within one transaction,
// and the RESTRICT constraint protects fees referenced by payment history
// from deletion.
type TransactionItem struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	TransactionID uint64    `gorm:"not null;index;uniqueIndex:idx_transaction_fee"`
	FeeID         uint64    `gorm:"not null;index;uniqueIndex:idx_transaction_fee"`
	Amount        string    `gorm:"not null;size:50"`
	AmountInCents int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`

	// Define relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
	Fee         Fee         `gorm:"foreignKey:FeeID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for TransactionItem
func (TransactionItem) TableName() string {
	return "transaction_items"
}
