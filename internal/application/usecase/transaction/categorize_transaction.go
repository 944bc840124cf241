// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/application/usecase/categorization"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// CategorizeTransactionInput represents a manual category assignment.
type CategorizeTransactionInput struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	UserID        uuid.UUID
}

// CategorizeTransactionOutput represents the result of the assignment.
type CategorizeTransactionOutput struct {
	Transaction   *entity.Transaction
	RulesPromoted int
}

// CategorizeTransactionUseCase assigns a category to a transaction and feeds
// the assignment into the learning loop.
type CategorizeTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	learnUseCase    *categorization.LearnCategoryUseCase
	cache           adapter.SuggestionCache
}

// NewCategorizeTransactionUseCase creates a new CategorizeTransactionUseCase instance.
func NewCategorizeTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	learnUseCase *categorization.LearnCategoryUseCase,
	cache adapter.SuggestionCache,
) *CategorizeTransactionUseCase {
	return &CategorizeTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		learnUseCase:    learnUseCase,
		cache:           cache,
	}
}

// Execute assigns the category, persists the transaction, then runs the
// learning pass. Learning failures are logged, not surfaced: the assignment
// itself already succeeded.
func (uc *CategorizeTransactionUseCase) Execute(ctx context.Context, input CategorizeTransactionInput) (*CategorizeTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"category does not belong to this user",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	categoryID := input.CategoryID
	transaction.CategoryID = &categoryID
	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	promoted := 0
	learnOutput, err := uc.learnUseCase.Execute(ctx, categorization.LearnCategoryInput{
		TransactionID: input.TransactionID,
		CategoryID:    input.CategoryID,
		UserID:        input.UserID,
	})
	if err != nil {
		slog.Warn("learning pass failed after categorization", "error", err, "transaction_id", input.TransactionID)
	} else {
		promoted = learnOutput.RulesPromoted
	}

	// The assignment changed the similarity history, so cached suggestions
	// for this user are stale even when nothing was promoted.
	if uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("suggestion cache invalidation failed", "error", err)
		}
	}

	return &CategorizeTransactionOutput{
		Transaction:   transaction,
		RulesPromoted: promoted,
	}, nil
}
