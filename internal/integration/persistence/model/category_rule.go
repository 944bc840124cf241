// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// CategoryRuleModel represents the category_rules table in the database.
//
// The composite unique index backs the promotion upsert: one rule per
// (user, pattern, category) key.
type CategoryRuleModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Pattern    string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_rules_user_pattern_category"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_rules_user_pattern_category"`
	Priority   int            `gorm:"not null;default:0"`
	IsActive   bool           `gorm:"not null;default:true"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_rules_user_pattern_category"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
	DeletedAt  gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the CategoryRuleModel.
func (CategoryRuleModel) TableName() string {
	return "category_rules"
}

// ToEntity converts a CategoryRuleModel to a domain CategoryRule entity.
func (m *CategoryRuleModel) ToEntity() *entity.CategoryRule {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.CategoryRule{
		ID:         m.ID,
		Name:       m.Name,
		Pattern:    m.Pattern,
		CategoryID: m.CategoryID,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}

// ToEntityWithCategory converts a CategoryRuleModel with its Category to a CategoryRuleWithCategory entity.
func (m *CategoryRuleModel) ToEntityWithCategory() *entity.CategoryRuleWithCategory {
	result := &entity.CategoryRuleWithCategory{
		Rule: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// CategoryRuleFromEntity creates a CategoryRuleModel from a domain CategoryRule entity.
func CategoryRuleFromEntity(rule *entity.CategoryRule) *CategoryRuleModel {
	var deletedAt gorm.DeletedAt
	if rule.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *rule.DeletedAt, Valid: true}
	}

	return &CategoryRuleModel{
		ID:         rule.ID,
		Name:       rule.Name,
		Pattern:    rule.Pattern,
		CategoryID: rule.CategoryID,
		Priority:   rule.Priority,
		IsActive:   rule.IsActive,
		UserID:     rule.UserID,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}
