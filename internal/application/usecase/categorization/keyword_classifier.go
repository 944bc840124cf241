package categorization

import (
	"strings"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// keywordGroup maps a set of merchant keywords to the category names it
// targets. Groups are evaluated in order; the first match wins.
type keywordGroup struct {
	names    []string // Acceptable category names, first is canonical
	keywords []string
}

// keywordGroups is the static classification table used by the bulk import
// path. It is intentionally independent of the per-user rule store: imports
// should land with some category even for users who never built rules.
var keywordGroups = []keywordGroup{
	{
		names: []string{"Groceries"},
		keywords: []string{
			"walmart", "kroger", "safeway", "aldi", "costco", "whole foods",
			"trader joe", "grocery", "supermarket", "supercenter", "market",
		},
	},
	{
		names: []string{"Dining"},
		keywords: []string{
			"restaurant", "cafe", "coffee", "starbucks", "mcdonald", "pizza",
			"burger", "doordash", "grubhub", "uber eats", "diner", "bakery",
		},
	},
	{
		names: []string{"Transportation"},
		keywords: []string{
			"uber", "lyft", "shell", "chevron", "exxon", "gas station",
			"fuel", "parking", "transit", "metro", "toll",
		},
	},
	{
		names: []string{"Entertainment"},
		keywords: []string{
			"netflix", "spotify", "hulu", "disney", "cinema", "movie",
			"theater", "steam", "playstation", "xbox", "concert",
		},
	},
	{
		names: []string{"Shopping"},
		keywords: []string{
			"amazon", "target", "ebay", "etsy", "best buy", "ikea",
			"nordstrom", "macys",
		},
	},
	{
		names: []string{"Bills & Utilities", "Bills", "Utilities"},
		keywords: []string{
			"electric", "water", "internet", "comcast", "xfinity", "verizon",
			"t-mobile", "utility", "insurance", "phone bill", "sewer",
		},
	},
	{
		names: []string{"Healthcare"},
		keywords: []string{
			"pharmacy", "cvs", "walgreens", "medical", "dental", "doctor",
			"clinic", "hospital", "optometr",
		},
	},
	{
		names: []string{"Income"},
		keywords: []string{
			"payroll", "salary", "direct deposit", "paycheck", "refund",
			"dividend", "interest payment", "reimbursement",
		},
	},
}

// ClassifyByKeywords assigns a category to a bulk-imported transaction using
// the static keyword table. The first group with a keyword contained in the
// description (case-insensitive) wins; when no group matches, or the matched
// group has no corresponding category for this user, the user's fallback
// bucket is used. Returns nil when no fallback exists either.
func ClassifyByKeywords(description string, categories []*entity.Category) *uuid.UUID {
	lower := strings.ToLower(description)

	for _, group := range keywordGroups {
		if !containsAny(lower, group.keywords) {
			continue
		}
		if category := findByNames(categories, group.names); category != nil {
			id := category.ID
			return &id
		}
		// Keyword matched but the user has no such category: fall back
		// rather than trying weaker groups.
		break
	}

	if fallback := findFallback(categories); fallback != nil {
		id := fallback.ID
		return &id
	}

	return nil
}

// containsAny reports whether any keyword is a substring of the text.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// findByNames returns the first category whose name matches one of the
// given names, case-insensitively.
func findByNames(categories []*entity.Category, names []string) *entity.Category {
	for _, name := range names {
		for _, category := range categories {
			if strings.EqualFold(category.Name, name) {
				return category
			}
		}
	}
	return nil
}

// findFallback returns the user's fallback bucket, preferring the role tag
// over the legacy "Other" display name.
func findFallback(categories []*entity.Category) *entity.Category {
	for _, category := range categories {
		if category.Role == entity.CategoryRoleFallback {
			return category
		}
	}
	for _, category := range categories {
		if category.Name == entity.FallbackCategoryName {
			return category
		}
	}
	return nil
}
