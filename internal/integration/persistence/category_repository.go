// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByUser retrieves all categories for a user, sorted by name.
func (r *categoryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// ExistsByNameAndUser checks if a category with the given name exists for the user.
func (r *categoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
