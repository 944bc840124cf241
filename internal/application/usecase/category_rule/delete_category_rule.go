// Package categoryrule contains category rule-related use cases.
package categoryrule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// DeleteCategoryRuleInput represents the input for category rule deletion.
type DeleteCategoryRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// DeleteCategoryRuleUseCase handles category rule deletion logic.
type DeleteCategoryRuleUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
	cache    adapter.SuggestionCache
}

// NewDeleteCategoryRuleUseCase creates a new DeleteCategoryRuleUseCase instance.
func NewDeleteCategoryRuleUseCase(ruleRepo adapter.CategoryRuleRepository, cache adapter.SuggestionCache) *DeleteCategoryRuleUseCase {
	return &DeleteCategoryRuleUseCase{
		ruleRepo: ruleRepo,
		cache:    cache,
	}
}

// Execute performs the category rule deletion.
func (uc *DeleteCategoryRuleUseCase) Execute(ctx context.Context, input DeleteCategoryRuleInput) error {
	rule, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		return domainerror.NewCategoryRuleError(
			domainerror.ErrCodeCategoryRuleNotFound,
			"category rule not found",
			domainerror.ErrCategoryRuleNotFound,
		)
	}
	if rule.UserID != input.UserID {
		return domainerror.NewCategoryRuleError(
			domainerror.ErrCodeNotAuthorizedRule,
			"not authorized to delete this rule",
			domainerror.ErrNotAuthorizedToModifyRule,
		)
	}

	if err := uc.ruleRepo.Delete(ctx, rule.ID); err != nil {
		return fmt.Errorf("failed to delete category rule: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("suggestion cache invalidation failed", "error", err)
		}
	}

	return nil
}
