package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func TestCategoryRuleRepository_UpsertAutoRule(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("repeated promotion never duplicates the rule", func(t *testing.T) {
		repo := NewCategoryRuleRepository(setupTestDB(t))

		for i := 0; i < 3; i++ {
			rule := entity.NewAutoRule("chipotle", categoryID, userID)
			if err := repo.UpsertAutoRule(ctx, rule); err != nil {
				t.Fatalf("upsert %d failed: %v", i+1, err)
			}
		}

		rules, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rules) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(rules))
		}
		if rules[0].Pattern != "chipotle" {
			t.Fatalf("expected pattern %q, got %q", "chipotle", rules[0].Pattern)
		}
		if rules[0].Priority != entity.AutoRulePriority {
			t.Fatalf("expected priority %d, got %d", entity.AutoRulePriority, rules[0].Priority)
		}
	})

	t.Run("same pattern for a different category is a separate rule", func(t *testing.T) {
		repo := NewCategoryRuleRepository(setupTestDB(t))

		if err := repo.UpsertAutoRule(ctx, entity.NewAutoRule("chipotle", categoryID, userID)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.UpsertAutoRule(ctx, entity.NewAutoRule("chipotle", uuid.New(), userID)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rules, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rules) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(rules))
		}
	})

	t.Run("upsert does not touch other users", func(t *testing.T) {
		repo := NewCategoryRuleRepository(setupTestDB(t))
		otherUser := uuid.New()

		if err := repo.UpsertAutoRule(ctx, entity.NewAutoRule("chipotle", categoryID, userID)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.UpsertAutoRule(ctx, entity.NewAutoRule("chipotle", categoryID, otherUser)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mine, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(mine) != 1 {
			t.Fatalf("expected 1 rule for first user, got %d", len(mine))
		}
	})
}

func TestCategoryRuleRepository_FindActiveByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	repo := NewCategoryRuleRepository(setupTestDB(t))

	low := entity.NewCategoryRule("low", "aldi", categoryID, 1, userID)
	high := entity.NewCategoryRule("high", "uber", categoryID, 10, userID)
	inactive := entity.NewCategoryRule("off", "lyft", categoryID, 99, userID)
	inactive.IsActive = false

	// Stagger creation times so the tie-break is observable.
	older := entity.NewCategoryRule("older", "shell", categoryID, 10, userID)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)

	for _, r := range []*entity.CategoryRule{low, high, inactive, older} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	rules, err := repo.FindActiveByUser(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 active rules, got %d", len(rules))
	}
	if rules[0].Name != "older" || rules[1].Name != "high" {
		t.Fatalf("expected priority ties broken by creation order, got %q then %q", rules[0].Name, rules[1].Name)
	}
	if rules[2].Name != "low" {
		t.Fatalf("expected lowest priority last, got %q", rules[2].Name)
	}
}

func TestCategoryRuleRepository_DeleteAllowsPatternReuse(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	repo := NewCategoryRuleRepository(setupTestDB(t))

	rule := entity.NewCategoryRule("rule", "starbucks", categoryID, 1, userID)
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, rule.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, rule.ID); !errors.Is(err, domainerror.ErrCategoryRuleNotFound) {
		t.Fatalf("expected ErrCategoryRuleNotFound, got %v", err)
	}

	// Hard delete frees the unique key for a fresh rule.
	replacement := entity.NewCategoryRule("again", "starbucks", categoryID, 1, userID)
	if err := repo.Create(ctx, replacement); err != nil {
		t.Fatalf("expected pattern to be reusable after delete: %v", err)
	}
}

func TestCategoryRuleRepository_ExistsByPatternAndUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	repo := NewCategoryRuleRepository(setupTestDB(t))

	rule := entity.NewCategoryRule("rule", "netflix", categoryID, 1, userID)
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	exists, err := repo.ExistsByPatternAndUser(ctx, "netflix", userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected pattern to exist")
	}

	exists, err = repo.ExistsByPatternAndUser(ctx, "netflix", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected no match for another user")
	}

	exists, err = repo.ExistsByPatternAndUserExcluding(ctx, "netflix", userID, rule.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected no match when excluding the rule itself")
	}
}
