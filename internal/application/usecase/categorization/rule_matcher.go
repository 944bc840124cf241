// Package categorization contains the transaction categorization use cases:
// suggesting categories for new transactions, promoting repeated manual
// categorizations into rules, and keyword classification for bulk imports.
package categorization

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// MatchRules evaluates a transaction description against the user's rules in
// priority order and returns the category of the first active rule whose
// pattern matches, or nil when no rule matches.
//
// Rules must already be sorted by priority descending (creation order as the
// tie-break), which is how the repository returns them.
//
// Patterns are user-supplied and unvalidated at this point: a pattern that
// fails to compile is treated as non-matching so one broken rule can never
// abort matching for the rest of the set.
func MatchRules(description string, rules []*entity.CategoryRule) *uuid.UUID {
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}

		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			continue
		}

		if re.MatchString(description) {
			categoryID := rule.CategoryID
			return &categoryID
		}
	}

	return nil
}
