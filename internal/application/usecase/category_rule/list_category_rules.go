// Package categoryrule contains category rule-related use cases.
package categoryrule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// ListCategoryRulesInput represents the input for listing category rules.
type ListCategoryRulesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListCategoryRulesOutput represents the output of listing category rules.
type ListCategoryRulesOutput struct {
	Rules []*entity.CategoryRuleWithCategory
}

// ListCategoryRulesUseCase handles listing category rules.
type ListCategoryRulesUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
}

// NewListCategoryRulesUseCase creates a new ListCategoryRulesUseCase instance.
func NewListCategoryRulesUseCase(ruleRepo adapter.CategoryRuleRepository) *ListCategoryRulesUseCase {
	return &ListCategoryRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute lists the user's rules in matching order (priority descending).
func (uc *ListCategoryRulesUseCase) Execute(ctx context.Context, input ListCategoryRulesInput) (*ListCategoryRulesOutput, error) {
	rules, err := uc.ruleRepo.FindByUserWithCategories(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category rules: %w", err)
	}

	if input.ActiveOnly {
		filtered := make([]*entity.CategoryRuleWithCategory, 0, len(rules))
		for _, r := range rules {
			if r.Rule.IsActive {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	return &ListCategoryRulesOutput{Rules: rules}, nil
}
