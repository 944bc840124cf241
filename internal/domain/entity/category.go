// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRole marks a category with a stable, display-name-independent role.
type CategoryRole string

const (
	// CategoryRoleNone is the default role for regular categories.
	CategoryRoleNone CategoryRole = ""

	// CategoryRoleFallback marks the bucket that bulk imports fall back to
	// when no keyword group matches the transaction description.
	CategoryRoleFallback CategoryRole = "uncategorized-fallback"
)

// FallbackCategoryName is the legacy display name recognized as the fallback
// bucket when no category carries CategoryRoleFallback.
const FallbackCategoryName = "Other"

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category in the Budgetwise system.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	Role      CategoryRole
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
func NewCategory(name, color, icon string, role CategoryRole, userID uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		Role:      role,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsFallback reports whether the category is the owner's fallback bucket,
// either via its role tag or via the legacy display name.
func (c *Category) IsFallback() bool {
	return c.Role == CategoryRoleFallback || c.Name == FallbackCategoryName
}
