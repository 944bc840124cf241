// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

// categoryRuleRepository implements the adapter.CategoryRuleRepository interface.
type categoryRuleRepository struct {
	db *gorm.DB
}

// NewCategoryRuleRepository creates a new category rule repository instance.
func NewCategoryRuleRepository(db *gorm.DB) adapter.CategoryRuleRepository {
	return &categoryRuleRepository{
		db: db,
	}
}

// Create creates a new category rule in the database.
func (r *categoryRuleRepository) Create(ctx context.Context, rule *entity.CategoryRule) error {
	ruleModel := model.CategoryRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category rule by its ID.
func (r *categoryRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error) {
	var ruleModel model.CategoryRuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByUser retrieves all category rules for a user in matching order:
// priority descending, oldest first on ties.
func (r *categoryRuleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error) {
	var ruleModels []model.CategoryRuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.CategoryRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// FindByUserWithCategories retrieves all category rules with their categories for a user.
func (r *categoryRuleRepository) FindByUserWithCategories(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRuleWithCategory, error) {
	var ruleModels []model.CategoryRuleModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.CategoryRuleWithCategory, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntityWithCategory()
	}
	return rules, nil
}

// FindActiveByUser retrieves only active category rules for a user, in matching order.
func (r *categoryRuleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error) {
	var ruleModels []model.CategoryRuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority DESC, created_at ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.CategoryRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// Update updates an existing category rule in the database.
func (r *categoryRuleRepository) Update(ctx context.Context, rule *entity.CategoryRule) error {
	ruleModel := model.CategoryRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Save(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a category rule from the database (hard delete).
// Using Unscoped() to bypass soft-delete and permanently remove the record.
// This allows the same pattern to be reused after deletion.
func (r *categoryRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.CategoryRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ExistsByPatternAndUser checks if a rule with the given pattern exists for the user.
func (r *categoryRuleRepository) ExistsByPatternAndUser(ctx context.Context, pattern string, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryRuleModel{}).
		Where("pattern = ? AND user_id = ?", pattern, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ExistsByPatternAndUserExcluding checks if a rule with the given pattern exists
// for the user, excluding a specific rule ID (used for updates).
func (r *categoryRuleRepository) ExistsByPatternAndUserExcluding(ctx context.Context, pattern string, userID uuid.UUID, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryRuleModel{}).
		Where("pattern = ? AND user_id = ? AND id != ?", pattern, userID, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// UpdatePriorities updates the priorities for multiple rules in a batch operation.
func (r *categoryRuleRepository) UpdatePriorities(ctx context.Context, updates []entity.RulePriorityUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, update := range updates {
			result := tx.Model(&model.CategoryRuleModel{}).
				Where("id = ?", update.ID).
				Updates(map[string]interface{}{
					"priority":   update.Priority,
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// GetMaxPriorityByUser gets the maximum priority value among the user's rules.
func (r *categoryRuleRepository) GetMaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var maxPriority *int
	result := r.db.WithContext(ctx).
		Model(&model.CategoryRuleModel{}).
		Select("COALESCE(MAX(priority), 0)").
		Where("user_id = ?", userID).
		Scan(&maxPriority)

	if result.Error != nil {
		return 0, result.Error
	}

	if maxPriority == nil {
		return 0, nil
	}
	return *maxPriority, nil
}

// UpsertAutoRule inserts a promoted rule or refreshes the existing one that
// shares its (user, pattern, category) key. Backed by the composite unique
// index on the table, so concurrent promotions cannot create duplicates.
func (r *categoryRuleRepository) UpsertAutoRule(ctx context.Context, rule *entity.CategoryRule) error {
	ruleModel := model.CategoryRuleFromEntity(rule)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "pattern"},
				{Name: "category_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"name", "is_active", "updated_at"}),
		}).
		Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
