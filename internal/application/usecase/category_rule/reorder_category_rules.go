// Package categoryrule contains category rule-related use cases.
package categoryrule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// ReorderCategoryRulesInput represents the input for reordering rules.
type ReorderCategoryRulesInput struct {
	UserID  uuid.UUID
	Updates []entity.RulePriorityUpdate
}

// ReorderCategoryRulesUseCase handles batch priority updates.
type ReorderCategoryRulesUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
	cache    adapter.SuggestionCache
}

// NewReorderCategoryRulesUseCase creates a new ReorderCategoryRulesUseCase instance.
func NewReorderCategoryRulesUseCase(ruleRepo adapter.CategoryRuleRepository, cache adapter.SuggestionCache) *ReorderCategoryRulesUseCase {
	return &ReorderCategoryRulesUseCase{
		ruleRepo: ruleRepo,
		cache:    cache,
	}
}

// Execute verifies ownership of every rule in the batch, then applies the
// priority updates in a single operation.
func (uc *ReorderCategoryRulesUseCase) Execute(ctx context.Context, input ReorderCategoryRulesInput) error {
	if len(input.Updates) == 0 {
		return nil
	}

	for _, update := range input.Updates {
		rule, err := uc.ruleRepo.FindByID(ctx, update.ID)
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
				"not authorized to reorder this rule",
				domainerror.ErrNotAuthorizedToModifyRule,
			)
		}
	}

	if err := uc.ruleRepo.UpdatePriorities(ctx, input.Updates); err != nil {
		return fmt.Errorf("failed to update rule priorities: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("suggestion cache invalidation failed", "error", err)
		}
	}

	return nil
}
