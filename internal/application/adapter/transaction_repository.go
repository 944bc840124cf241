// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// BulkCreate creates multiple transactions in a single operation.
	BulkCreate(ctx context.Context, transactions []*entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves transactions for a user with pagination, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, pagination TransactionPagination) (*TransactionListResult, error)

	// FindCategorizedByUser retrieves the description/category pairs of all of
	// the user's transactions that have a category assigned. Used by the
	// similarity scorer.
	FindCategorizedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategorizedDescription, error)

	// CountCategorizedContaining counts the user's transactions assigned to
	// the given category whose description contains the token
	// (case-insensitive), excluding one transaction ID. Used by rule promotion.
	CountCategorizedContaining(ctx context.Context, userID uuid.UUID, categoryID uuid.UUID, token string, excludeID uuid.UUID) (int, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// BulkUpdateCategoryByPattern assigns the category to all of the user's
	// uncategorized transactions whose description matches the regex pattern.
	// Returns the count of updated transactions.
	BulkUpdateCategoryByPattern(ctx context.Context, pattern string, categoryID uuid.UUID, userID uuid.UUID) (int, error)
}
