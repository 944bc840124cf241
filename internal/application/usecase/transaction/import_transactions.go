// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/application/usecase/categorization"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// ImportTransactionRow is one row of a bulk import.
type ImportTransactionRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   entity.TransactionDirection
}

// ImportTransactionsInput represents the input for bulk transaction import.
type ImportTransactionsInput struct {
	UserID uuid.UUID
	Rows   []ImportTransactionRow
}

// ImportTransactionsOutput represents the output of bulk transaction import.
type ImportTransactionsOutput struct {
	Imported     int
	Categorized  int
	Transactions []*entity.Transaction
}

// ImportTransactionsUseCase handles bulk transaction imports. Each row gets
// a best-effort category via keyword classification before persistence.
type ImportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.SuggestionCache
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.SuggestionCache,
) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
	}
}

// Execute validates and persists the import batch in one operation.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	if len(input.Rows) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyImport,
			"import contains no transactions",
			domainerror.ErrEmptyImport,
		)
	}

	for i, row := range input.Rows {
		if row.Description == "" {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionMissingFields,
				fmt.Sprintf("row %d: description is required", i+1),
				domainerror.ErrTransactionMissingFields,
			)
		}
		if row.Direction != entity.TransactionDirectionDebit && row.Direction != entity.TransactionDirectionCredit {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidDirection,
				fmt.Sprintf("row %d: direction must be debit or credit", i+1),
				domainerror.ErrInvalidDirection,
			)
		}
	}

	// One category fetch covers the whole batch.
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	now := time.Now().UTC()
	transactions := make([]*entity.Transaction, 0, len(input.Rows))
	categorized := 0

	for _, row := range input.Rows {
		categoryID := categorization.ClassifyByKeywords(row.Description, categories)
		if categoryID != nil {
			categorized++
		}

		t := entity.NewTransaction(input.UserID, row.Date, row.Description, row.Amount, row.Direction, categoryID)
		importedAt := now
		t.ImportedAt = &importedAt
		transactions = append(transactions, t)
	}

	if err := uc.transactionRepo.BulkCreate(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to import transactions: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("suggestion cache invalidation failed", "error", err)
		}
	}

	return &ImportTransactionsOutput{
		Imported:     len(transactions),
		Categorized:  categorized,
		Transactions: transactions,
	}, nil
}
