// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 200
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID uuid.UUID
	Page   int
	Limit  int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Result *adapter.TransactionListResult
}

// ListTransactionsUseCase handles listing transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists the user's transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	result, err := uc.transactionRepo.FindByUser(ctx, input.UserID, adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Result: result}, nil
}
