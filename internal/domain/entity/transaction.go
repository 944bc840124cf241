// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDirection represents the flow direction of a transaction.
type TransactionDirection string

const (
	TransactionDirectionDebit  TransactionDirection = "debit"
	TransactionDirectionCredit TransactionDirection = "credit"
)

// Transaction represents a financial transaction in the Budgetwise system.
// Amounts are stored as unsigned magnitudes; Direction carries the sign.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Unsigned magnitude
	Direction   TransactionDirection
	CategoryID  *uuid.UUID // Optional, can be uncategorized
	ImportedAt  *time.Time // Set when the transaction came in via bulk import
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	direction TransactionDirection,
	categoryID *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount.Abs(),
		Direction:   direction,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SignedAmount returns the amount with its sign restored: negative for
// debits, positive for credits.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == TransactionDirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// CategorizedDescription is the projection of a transaction used by the
// similarity scorer: what the transaction said and where it ended up.
type CategorizedDescription struct {
	Description string
	CategoryID  uuid.UUID
}
