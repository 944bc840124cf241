package categorization

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

func TestLearnCategoryUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	dining := uuid.New()

	// seedHistory creates n categorized transactions sharing a description.
	seedHistory := func(repo *fakeTransactionRepo, n int, description string) {
		for i := 0; i < n; i++ {
			repo.transactions = append(repo.transactions,
				categorizedTransaction(userID, dining, description))
		}
	}

	t.Run("promotes a recurring token into an auto rule", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		seedHistory(txRepo, 3, "CHIPOTLE Online Order")

		confirmed := categorizedTransaction(userID, dining, "Chipotle 1123")
		txRepo.transactions = append(txRepo.transactions, confirmed)

		ruleRepo := newFakeRuleRepo()
		uc := NewLearnCategoryUseCase(txRepo, ruleRepo, nil)

		output, err := uc.Execute(ctx, LearnCategoryInput{
			TransactionID: confirmed.ID,
			CategoryID:    dining,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RulesPromoted != 1 {
			t.Fatalf("expected 1 promoted rule, got %d", output.RulesPromoted)
		}

		if len(ruleRepo.rules) != 1 {
			t.Fatalf("expected 1 rule in the store, got %d", len(ruleRepo.rules))
		}
		for _, rule := range ruleRepo.rules {
			if rule.Name != "Auto: chipotle" {
				t.Errorf("expected rule name %q, got %q", "Auto: chipotle", rule.Name)
			}
			if rule.Pattern != "chipotle" {
				t.Errorf("expected pattern %q, got %q", "chipotle", rule.Pattern)
			}
			if rule.Priority != entity.AutoRulePriority {
				t.Errorf("expected priority %d, got %d", entity.AutoRulePriority, rule.Priority)
			}
			if !rule.IsActive {
				t.Error("expected promoted rule to be active")
			}
			if rule.CategoryID != dining {
				t.Errorf("expected category %s, got %s", dining, rule.CategoryID)
			}
		}
	})

	t.Run("repeated learning is idempotent", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		seedHistory(txRepo, 4, "CHIPOTLE Online Order")

		confirmed := categorizedTransaction(userID, dining, "Chipotle 1123")
		txRepo.transactions = append(txRepo.transactions, confirmed)

		ruleRepo := newFakeRuleRepo()
		uc := NewLearnCategoryUseCase(txRepo, ruleRepo, nil)

		input := LearnCategoryInput{
			TransactionID: confirmed.ID,
			CategoryID:    dining,
			UserID:        userID,
		}
		for i := 0; i < 3; i++ {
			if _, err := uc.Execute(ctx, input); err != nil {
				t.Fatalf("run %d: unexpected error: %v", i, err)
			}
		}

		if len(ruleRepo.rules) != 1 {
			t.Errorf("expected exactly 1 rule after repeated learning, got %d", len(ruleRepo.rules))
		}
	})

	t.Run("does not promote below the threshold", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		seedHistory(txRepo, 2, "CHIPOTLE Online Order") // one short of the threshold

		confirmed := categorizedTransaction(userID, dining, "Chipotle 1123")
		txRepo.transactions = append(txRepo.transactions, confirmed)

		ruleRepo := newFakeRuleRepo()
		uc := NewLearnCategoryUseCase(txRepo, ruleRepo, nil)

		output, err := uc.Execute(ctx, LearnCategoryInput{
			TransactionID: confirmed.ID,
			CategoryID:    dining,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RulesPromoted != 0 || len(ruleRepo.rules) != 0 {
			t.Errorf("expected no promotion, got %d promoted, %d stored", output.RulesPromoted, len(ruleRepo.rules))
		}
	})

	t.Run("ignores insignificant tokens", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		seedHistory(txRepo, 5, "ACE 12 bar")

		confirmed := categorizedTransaction(userID, dining, "ace 12 bar")
		txRepo.transactions = append(txRepo.transactions, confirmed)

		ruleRepo := newFakeRuleRepo()
		uc := NewLearnCategoryUseCase(txRepo, ruleRepo, nil)

		output, err := uc.Execute(ctx, LearnCategoryInput{
			TransactionID: confirmed.ID,
			CategoryID:    dining,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RulesPromoted != 0 {
			t.Errorf("expected no promotion from 3-character tokens, got %d", output.RulesPromoted)
		}
	})

	t.Run("missing transaction is a no-op", func(t *testing.T) {
		ruleRepo := newFakeRuleRepo()
		uc := NewLearnCategoryUseCase(&fakeTransactionRepo{}, ruleRepo, nil)

		output, err := uc.Execute(ctx, LearnCategoryInput{
			TransactionID: uuid.New(),
			CategoryID:    dining,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("expected silent no-op, got %v", err)
		}
		if output.RulesPromoted != 0 {
			t.Errorf("expected no promotion, got %d", output.RulesPromoted)
		}
	})

	t.Run("foreign transaction is a no-op", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		other := categorizedTransaction(uuid.New(), dining, "Chipotle 1123")
		txRepo.transactions = append(txRepo.transactions, other)

		ruleRepo := newFakeRuleRepo()
		uc := NewLearnCategoryUseCase(txRepo, ruleRepo, nil)

		output, err := uc.Execute(ctx, LearnCategoryInput{
			TransactionID: other.ID,
			CategoryID:    dining,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("expected silent no-op, got %v", err)
		}
		if output.RulesPromoted != 0 || len(ruleRepo.rules) != 0 {
			t.Error("expected no promotion for another user's transaction")
		}
	})

	t.Run("invalidates the suggestion cache after promotion", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		seedHistory(txRepo, 3, "CHIPOTLE Online Order")

		confirmed := categorizedTransaction(userID, dining, "Chipotle 1123")
		txRepo.transactions = append(txRepo.transactions, confirmed)

		cache := newFakeSuggestionCache()
		uc := NewLearnCategoryUseCase(txRepo, newFakeRuleRepo(), cache)

		if _, err := uc.Execute(ctx, LearnCategoryInput{
			TransactionID: confirmed.ID,
			CategoryID:    dining,
			UserID:        userID,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.invalidated != 1 {
			t.Errorf("expected 1 cache invalidation, got %d", cache.invalidated)
		}
	})
}
