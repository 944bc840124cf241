// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name   string
	Color  string
	Icon   string
	Role   entity.CategoryRole
	UserID uuid.UUID
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryMissingFields,
			"name is required",
			domainerror.ErrCategoryMissingFields,
		)
	}

	exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, input.Name, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	category := entity.NewCategory(input.Name, color, icon, input.Role, input.UserID)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: category}, nil
}
