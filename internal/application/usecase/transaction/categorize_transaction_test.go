package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/usecase/categorization"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func newCategorizeUseCase(txRepo *fakeTransactionRepo, catRepo *fakeCategoryRepo, ruleRepo *fakeRuleRepo, cache *fakeCache) *CategorizeTransactionUseCase {
	learn := categorization.NewLearnCategoryUseCase(txRepo, ruleRepo, cache)
	return NewCategorizeTransactionUseCase(txRepo, catRepo, learn, cache)
}

func ownedTransaction(userID uuid.UUID, description string) *entity.Transaction {
	return entity.NewTransaction(
		userID,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		description,
		decimal.NewFromFloat(12.50),
		entity.TransactionDirectionDebit,
		nil,
	)
}

func TestCategorizeTransactionUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("assigns category and persists the transaction", func(t *testing.T) {
		category := entity.NewCategory("Dining", "#FF0000", "utensils", entity.CategoryRoleNone, userID)
		tx := ownedTransaction(userID, "CHIPOTLE 0453")

		txRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{tx}}
		catRepo := &fakeCategoryRepo{categories: []*entity.Category{category}}
		cache := &fakeCache{}
		uc := newCategorizeUseCase(txRepo, catRepo, &fakeRuleRepo{}, cache)

		output, err := uc.Execute(ctx, CategorizeTransactionInput{
			TransactionID: tx.ID,
			CategoryID:    category.ID,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.CategoryID == nil || *output.Transaction.CategoryID != category.ID {
			t.Fatal("expected category to be assigned")
		}
		if len(txRepo.updated) != 1 {
			t.Fatalf("expected 1 update, got %d", len(txRepo.updated))
		}
		if cache.invalidated == 0 {
			t.Fatal("expected suggestion cache to be invalidated")
		}
	})

	t.Run("promotes a recurring token after assignment", func(t *testing.T) {
		category := entity.NewCategory("Dining", "#FF0000", "utensils", entity.CategoryRoleNone, userID)
		categoryID := category.ID

		history := []*entity.Transaction{
			ownedTransaction(userID, "CHIPOTLE 0101"),
			ownedTransaction(userID, "CHIPOTLE 0202"),
			ownedTransaction(userID, "CHIPOTLE 0303"),
		}
		for _, h := range history {
			id := categoryID
			h.CategoryID = &id
		}
		tx := ownedTransaction(userID, "CHIPOTLE 0404")

		txRepo := &fakeTransactionRepo{transactions: append(history, tx)}
		catRepo := &fakeCategoryRepo{categories: []*entity.Category{category}}
		ruleRepo := &fakeRuleRepo{}
		uc := newCategorizeUseCase(txRepo, catRepo, ruleRepo, &fakeCache{})

		output, err := uc.Execute(ctx, CategorizeTransactionInput{
			TransactionID: tx.ID,
			CategoryID:    categoryID,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RulesPromoted != 1 {
			t.Fatalf("expected 1 promoted rule, got %d", output.RulesPromoted)
		}
		if len(ruleRepo.upserted) != 1 {
			t.Fatalf("expected 1 upserted rule, got %d", len(ruleRepo.upserted))
		}
		if ruleRepo.upserted[0].Pattern != "chipotle" {
			t.Fatalf("expected pattern %q, got %q", "chipotle", ruleRepo.upserted[0].Pattern)
		}
	})

	t.Run("returns not found for a missing transaction", func(t *testing.T) {
		category := entity.NewCategory("Dining", "#FF0000", "utensils", entity.CategoryRoleNone, userID)
		catRepo := &fakeCategoryRepo{categories: []*entity.Category{category}}
		uc := newCategorizeUseCase(&fakeTransactionRepo{}, catRepo, &fakeRuleRepo{}, &fakeCache{})

		_, err := uc.Execute(ctx, CategorizeTransactionInput{
			TransactionID: uuid.New(),
			CategoryID:    category.ID,
			UserID:        userID,
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("rejects a transaction owned by another user", func(t *testing.T) {
		otherUser := uuid.New()
		category := entity.NewCategory("Dining", "#FF0000", "utensils", entity.CategoryRoleNone, userID)
		tx := ownedTransaction(otherUser, "CHIPOTLE 0453")

		txRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{tx}}
		catRepo := &fakeCategoryRepo{categories: []*entity.Category{category}}
		uc := newCategorizeUseCase(txRepo, catRepo, &fakeRuleRepo{}, &fakeCache{})

		_, err := uc.Execute(ctx, CategorizeTransactionInput{
			TransactionID: tx.ID,
			CategoryID:    category.ID,
			UserID:        userID,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Fatalf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
		if len(txRepo.updated) != 0 {
			t.Fatal("expected no update")
		}
	})

	t.Run("rejects a category owned by another user", func(t *testing.T) {
		otherUser := uuid.New()
		category := entity.NewCategory("Dining", "#FF0000", "utensils", entity.CategoryRoleNone, otherUser)
		tx := ownedTransaction(userID, "CHIPOTLE 0453")

		txRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{tx}}
		catRepo := &fakeCategoryRepo{categories: []*entity.Category{category}}
		uc := newCategorizeUseCase(txRepo, catRepo, &fakeRuleRepo{}, &fakeCache{})

		_, err := uc.Execute(ctx, CategorizeTransactionInput{
			TransactionID: tx.ID,
			CategoryID:    category.ID,
			UserID:        userID,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory) {
			t.Fatalf("expected ErrNotAuthorizedToModifyCategory, got %v", err)
		}
	})
}
