// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AutoRulePriority is the priority assigned to rules promoted from repeated
// manual categorizations. Kept low so hand-written rules win by default.
const AutoRulePriority = 1

// AutoRuleNamePrefix prefixes the names of promoted rules.
const AutoRuleNamePrefix = "Auto: "

// CategoryRule represents an auto-categorization rule. Rules are applied to
// transaction descriptions using case-insensitive regex patterns to
// automatically assign categories to new or imported transactions.
type CategoryRule struct {
	ID         uuid.UUID
	Name       string    // Human-readable label
	Pattern    string    // Regex pattern matched against transaction descriptions
	CategoryID uuid.UUID // The category to assign when the pattern matches
	Priority   int       // Higher priority rules are checked first
	IsActive   bool      // Allows disabling rules without deleting them
	UserID     uuid.UUID // The owning user
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewCategoryRule creates a new CategoryRule entity.
func NewCategoryRule(name, pattern string, categoryID uuid.UUID, priority int, userID uuid.UUID) *CategoryRule {
	now := time.Now().UTC()

	return &CategoryRule{
		ID:         uuid.New(),
		Name:       name,
		Pattern:    pattern,
		CategoryID: categoryID,
		Priority:   priority,
		IsActive:   true, // New rules are active by default
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewAutoRule creates a promoted rule for a recurring description token.
// The token itself is the pattern; a plain word is a valid regex and matches
// as a case-insensitive substring at evaluation time.
func NewAutoRule(token string, categoryID uuid.UUID, userID uuid.UUID) *CategoryRule {
	return NewCategoryRule(AutoRuleNamePrefix+token, token, categoryID, AutoRulePriority, userID)
}

// CategoryRuleWithCategory represents a category rule with its associated category.
type CategoryRuleWithCategory struct {
	Rule     *CategoryRule
	Category *Category
}

// RulePriorityUpdate represents a priority update for a single rule.
type RulePriorityUpdate struct {
	ID       uuid.UUID
	Priority int
}
