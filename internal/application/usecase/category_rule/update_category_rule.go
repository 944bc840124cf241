// Package categoryrule contains category rule-related use cases.
package categoryrule

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// UpdateCategoryRuleInput represents the input for category rule update.
// Nil fields are left unchanged.
type UpdateCategoryRuleInput struct {
	RuleID     uuid.UUID
	UserID     uuid.UUID
	Name       *string
	Pattern    *string
	CategoryID *uuid.UUID
	Priority   *int
	IsActive   *bool
}

// UpdateCategoryRuleOutput represents the output of category rule update.
type UpdateCategoryRuleOutput struct {
	Rule *entity.CategoryRule
}

// UpdateCategoryRuleUseCase handles category rule update logic.
type UpdateCategoryRuleUseCase struct {
	ruleRepo     adapter.CategoryRuleRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.SuggestionCache
}

// NewUpdateCategoryRuleUseCase creates a new UpdateCategoryRuleUseCase instance.
func NewUpdateCategoryRuleUseCase(
	ruleRepo adapter.CategoryRuleRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.SuggestionCache,
) *UpdateCategoryRuleUseCase {
	return &UpdateCategoryRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the category rule update.
func (uc *UpdateCategoryRuleUseCase) Execute(ctx context.Context, input UpdateCategoryRuleInput) (*UpdateCategoryRuleOutput, error) {
	rule, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeCategoryRuleNotFound,
			"category rule not found",
			domainerror.ErrCategoryRuleNotFound,
		)
	}
	if rule.UserID != input.UserID {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeNotAuthorizedRule,
			"not authorized to modify this rule",
			domainerror.ErrNotAuthorizedToModifyRule,
		)
	}

	if input.Pattern != nil {
		if *input.Pattern == "" {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeMissingRuleFields,
				"pattern is required",
				domainerror.ErrCategoryRuleMissingFields,
			)
		}
		if len(*input.Pattern) > MaxPatternLength {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodePatternTooLong,
				fmt.Sprintf("pattern must not exceed %d characters", MaxPatternLength),
				domainerror.ErrPatternTooLong,
			)
		}
		if _, err := regexp.Compile(*input.Pattern); err != nil {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeInvalidPattern,
				"invalid regex pattern: "+err.Error(),
				domainerror.ErrInvalidPattern,
			)
		}

		exists, err := uc.ruleRepo.ExistsByPatternAndUserExcluding(ctx, *input.Pattern, input.UserID, rule.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check pattern existence: %w", err)
		}
		if exists {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeCategoryRulePatternExists,
				"a rule with this pattern already exists",
				domainerror.ErrCategoryRulePatternExists,
			)
		}

		rule.Pattern = *input.Pattern
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeCategoryNotFoundForRule,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		if category.UserID != input.UserID {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeNotAuthorizedRule,
				"category does not belong to the rule owner",
				domainerror.ErrNotAuthorizedToModifyRule,
			)
		}
		rule.CategoryID = *input.CategoryID
	}

	if input.Name != nil {
		rule.Name = *input.Name
	}
	if input.Priority != nil {
		rule.Priority = *input.Priority
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}
	rule.UpdatedAt = time.Now().UTC()

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update category rule: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("suggestion cache invalidation failed", "error", err)
		}
	}

	return &UpdateCategoryRuleOutput{Rule: rule}, nil
}
