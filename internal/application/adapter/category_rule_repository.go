// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// CategoryRuleRepository defines the interface for category rule persistence operations.
//
// All read and write operations are scoped by the owning user; callers must
// never see or touch another user's rules.
type CategoryRuleRepository interface {
	// Create creates a new category rule in the database.
	Create(ctx context.Context, rule *entity.CategoryRule) error

	// FindByID retrieves a category rule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error)

	// FindByUser retrieves all category rules for a user, sorted by priority
	// descending with creation order as the tie-break.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error)

	// FindByUserWithCategories retrieves all category rules with their categories for a user.
	FindByUserWithCategories(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRuleWithCategory, error)

	// FindActiveByUser retrieves only active category rules for a user, in matching order.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error)

	// Update updates an existing category rule in the database.
	Update(ctx context.Context, rule *entity.CategoryRule) error

	// Delete removes a category rule from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByPatternAndUser checks if a rule with the given pattern exists for the user.
	ExistsByPatternAndUser(ctx context.Context, pattern string, userID uuid.UUID) (bool, error)

	// ExistsByPatternAndUserExcluding checks if a rule with the given pattern exists
	// for the user, excluding a specific rule ID (used for updates).
	ExistsByPatternAndUserExcluding(ctx context.Context, pattern string, userID uuid.UUID, excludeID uuid.UUID) (bool, error)

	// UpdatePriorities updates the priorities for multiple rules in a batch operation.
	UpdatePriorities(ctx context.Context, updates []entity.RulePriorityUpdate) error

	// GetMaxPriorityByUser gets the maximum priority value among the user's rules.
	GetMaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// UpsertAutoRule inserts a promoted rule or, when a rule with the same
	// (user, pattern, category) key already exists, updates it in place.
	// Repeated promotion of the same token must never produce duplicates.
	UpsertAutoRule(ctx context.Context, rule *entity.CategoryRule) error
}
