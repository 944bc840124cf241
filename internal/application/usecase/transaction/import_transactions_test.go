package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func importRow(description string, direction entity.TransactionDirection) ImportTransactionRow {
	return ImportTransactionRow{
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.NewFromFloat(42.00),
		Direction:   direction,
	}
}

func TestImportTransactionsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("classifies rows by merchant keywords", func(t *testing.T) {
		groceries := entity.NewCategory("Groceries", "#00FF00", "cart", entity.CategoryRoleNone, userID)
		other := entity.NewCategory("Other", "#888888", "tag", entity.CategoryRoleNone, userID)

		txRepo := &fakeTransactionRepo{}
		catRepo := &fakeCategoryRepo{categories: []*entity.Category{groceries, other}}
		cache := &fakeCache{}
		uc := NewImportTransactionsUseCase(txRepo, catRepo, cache)

		output, err := uc.Execute(ctx, ImportTransactionsInput{
			UserID: userID,
			Rows: []ImportTransactionRow{
				importRow("WALMART GROCERY #1234", entity.TransactionDirectionDebit),
				importRow("XYZZY UNKNOWN MERCHANT", entity.TransactionDirectionDebit),
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Imported != 2 {
			t.Fatalf("expected 2 imported, got %d", output.Imported)
		}
		if output.Categorized != 2 {
			t.Fatalf("expected 2 categorized, got %d", output.Categorized)
		}

		first := output.Transactions[0]
		if first.CategoryID == nil || *first.CategoryID != groceries.ID {
			t.Fatal("expected walmart row to land in Groceries")
		}
		second := output.Transactions[1]
		if second.CategoryID == nil || *second.CategoryID != other.ID {
			t.Fatal("expected unknown merchant to fall back to Other")
		}
		if cache.invalidated == 0 {
			t.Fatal("expected suggestion cache to be invalidated")
		}
	})

	t.Run("leaves rows uncategorized when no fallback exists", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		catRepo := &fakeCategoryRepo{}
		uc := NewImportTransactionsUseCase(txRepo, catRepo, &fakeCache{})

		output, err := uc.Execute(ctx, ImportTransactionsInput{
			UserID: userID,
			Rows:   []ImportTransactionRow{importRow("XYZZY UNKNOWN MERCHANT", entity.TransactionDirectionCredit)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Categorized != 0 {
			t.Fatalf("expected 0 categorized, got %d", output.Categorized)
		}
		if output.Transactions[0].CategoryID != nil {
			t.Fatal("expected nil category")
		}
	})

	t.Run("stamps imported transactions with an import time", func(t *testing.T) {
		other := entity.NewCategory("Other", "#888888", "tag", entity.CategoryRoleNone, userID)
		txRepo := &fakeTransactionRepo{}
		catRepo := &fakeCategoryRepo{categories: []*entity.Category{other}}
		uc := NewImportTransactionsUseCase(txRepo, catRepo, &fakeCache{})

		output, err := uc.Execute(ctx, ImportTransactionsInput{
			UserID: userID,
			Rows:   []ImportTransactionRow{importRow("SOMETHING", entity.TransactionDirectionDebit)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transactions[0].ImportedAt == nil {
			t.Fatal("expected ImportedAt to be set")
		}
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		uc := NewImportTransactionsUseCase(&fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeCache{})

		_, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrEmptyImport) {
			t.Fatalf("expected ErrEmptyImport, got %v", err)
		}
	})

	t.Run("rejects a row with an invalid direction", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		uc := NewImportTransactionsUseCase(txRepo, &fakeCategoryRepo{}, &fakeCache{})

		_, err := uc.Execute(ctx, ImportTransactionsInput{
			UserID: userID,
			Rows:   []ImportTransactionRow{importRow("SOMETHING", "transfer")},
		})
		if !errors.Is(err, domainerror.ErrInvalidDirection) {
			t.Fatalf("expected ErrInvalidDirection, got %v", err)
		}
		if len(txRepo.bulkCreated) != 0 {
			t.Fatal("expected nothing persisted")
		}
	})

	t.Run("rejects a row with an empty description", func(t *testing.T) {
		uc := NewImportTransactionsUseCase(&fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeCache{})

		_, err := uc.Execute(ctx, ImportTransactionsInput{
			UserID: userID,
			Rows:   []ImportTransactionRow{importRow("", entity.TransactionDirectionDebit)},
		})
		if !errors.Is(err, domainerror.ErrTransactionMissingFields) {
			t.Fatalf("expected ErrTransactionMissingFields, got %v", err)
		}
	})
}
