// Package categoryrule contains category rule-related use cases.
package categoryrule

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

const (
	// MaxPatternLength is the maximum allowed length for regex patterns.
	MaxPatternLength = 255
)

// CreateCategoryRuleInput represents the input for category rule creation.
type CreateCategoryRuleInput struct {
	Name       string
	Pattern    string
	CategoryID uuid.UUID
	Priority   *int // Optional, defaults to max priority + 1
	UserID     uuid.UUID
}

// CreateCategoryRuleOutput represents the output of category rule creation.
type CreateCategoryRuleOutput struct {
	Rule                *entity.CategoryRuleWithCategory
	TransactionsUpdated int
}

// CreateCategoryRuleUseCase handles category rule creation logic.
//
// Pattern compilability is validated here so users get early feedback; the
// matcher stays defensive regardless.
type CreateCategoryRuleUseCase struct {
	ruleRepo        adapter.CategoryRuleRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.SuggestionCache
}

// NewCreateCategoryRuleUseCase creates a new CreateCategoryRuleUseCase instance.
func NewCreateCategoryRuleUseCase(
	ruleRepo adapter.CategoryRuleRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.SuggestionCache,
) *CreateCategoryRuleUseCase {
	return &CreateCategoryRuleUseCase{
		ruleRepo:        ruleRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute performs the category rule creation.
func (uc *CreateCategoryRuleUseCase) Execute(ctx context.Context, input CreateCategoryRuleInput) (*CreateCategoryRuleOutput, error) {
	if input.Pattern == "" {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeMissingRuleFields,
			"pattern is required",
			domainerror.ErrCategoryRuleMissingFields,
		)
	}

	if len(input.Pattern) > MaxPatternLength {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodePatternTooLong,
			fmt.Sprintf("pattern must not exceed %d characters", MaxPatternLength),
			domainerror.ErrPatternTooLong,
		)
	}

	if _, err := regexp.Compile(input.Pattern); err != nil {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeInvalidPattern,
			"invalid regex pattern: "+err.Error(),
			domainerror.ErrInvalidPattern,
		)
	}

	// Verify category exists and belongs to the user.
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
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

	// Check if pattern already exists for this user.
	exists, err := uc.ruleRepo.ExistsByPatternAndUser(ctx, input.Pattern, input.UserID)
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

	// Determine priority: explicit, or max existing priority + 1.
	priority := 0
	if input.Priority != nil {
		priority = *input.Priority
	} else {
		maxPriority, err := uc.ruleRepo.GetMaxPriorityByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get max priority: %w", err)
		}
		priority = maxPriority + 1
	}

	name := input.Name
	if name == "" {
		name = input.Pattern
	}

	rule := entity.NewCategoryRule(name, input.Pattern, input.CategoryID, priority, input.UserID)

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create category rule: %w", err)
	}

	// Apply the new rule to existing uncategorized transactions. A failure
	// here does not undo rule creation.
	updatedCount := 0
	count, err := uc.transactionRepo.BulkUpdateCategoryByPattern(ctx, rule.Pattern, rule.CategoryID, input.UserID)
	if err != nil {
		slog.Warn("failed to apply new rule to existing transactions", "error", err, "rule_id", rule.ID)
	} else {
		updatedCount = count
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("suggestion cache invalidation failed", "error", err)
		}
	}

	return &CreateCategoryRuleOutput{
		Rule: &entity.CategoryRuleWithCategory{
			Rule:     rule,
			Category: category,
		},
		TransactionsUpdated: updatedCount,
	}, nil
}
