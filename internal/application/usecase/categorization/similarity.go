package categorization

import (
	"strings"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

const (
	// significantTokenLen is the minimum length for a description token to
	// count as informative. The same threshold drives both similarity
	// scoring and rule promotion so the two subsystems agree on which words
	// matter.
	significantTokenLen = 4

	// similarityThreshold is the minimum similarity for a historical
	// transaction to contribute to a category's score.
	similarityThreshold = 0.3
)

// tokenize splits a description on whitespace and lower-cases the tokens,
// returning them as a set.
func tokenize(description string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(description)) {
		tokens[t] = struct{}{}
	}
	return tokens
}

// descriptionSimilarity computes the overlap between two token sets: the
// number of significant tokens present in both, divided by the size of the
// larger set. The length bias means a short description matching inside a
// long one still scores low.
func descriptionSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	common := 0
	for t := range a {
		if len(t) < significantTokenLen {
			continue
		}
		if _, ok := b[t]; ok {
			common++
		}
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}

	return float64(common) / float64(larger)
}

// ScoreSimilarity compares a description against previously categorized
// transactions and accumulates, per category, the similarity of every
// historical transaction that clears the threshold.
//
// Historical entries without a category are excluded upstream by the
// repository query; entries with a zero category ID are skipped here as well
// to keep the function safe over arbitrary input.
func ScoreSimilarity(description string, history []*entity.CategorizedDescription) map[uuid.UUID]float64 {
	scores := make(map[uuid.UUID]float64)

	candidate := tokenize(description)
	if len(candidate) == 0 {
		return scores
	}

	for _, h := range history {
		if h.CategoryID == uuid.Nil {
			continue
		}

		similarity := descriptionSimilarity(candidate, tokenize(h.Description))
		if similarity > similarityThreshold {
			scores[h.CategoryID] += similarity
		}
	}

	return scores
}
