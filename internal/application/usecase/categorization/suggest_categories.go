package categorization

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

const (
	// ruleMatchConfidence is the fixed confidence of a rule-derived
	// suggestion. A rule match always outranks pure similarity.
	ruleMatchConfidence = 0.9

	// maxSimilarityConfidence caps similarity-derived confidence below the
	// rule confidence.
	maxSimilarityConfidence = 0.8

	// maxSimilarSuggestions is how many similarity-derived categories are
	// returned at most.
	maxSimilarSuggestions = 3
)

// SuggestCategoriesInput represents the input for category suggestion.
type SuggestCategoriesInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
}

// SuggestCategoriesOutput represents the output of category suggestion.
type SuggestCategoriesOutput struct {
	Suggestions []entity.Suggestion
}

// SuggestCategoriesUseCase produces a ranked, deduplicated list of category
// suggestions for a transaction description: first the rule match, then the
// top similarity-scored categories.
type SuggestCategoriesUseCase struct {
	ruleRepo        adapter.CategoryRuleRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.SuggestionCache
}

// NewSuggestCategoriesUseCase creates a new SuggestCategoriesUseCase instance.
func NewSuggestCategoriesUseCase(
	ruleRepo adapter.CategoryRuleRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.SuggestionCache,
) *SuggestCategoriesUseCase {
	return &SuggestCategoriesUseCase{
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute computes the suggestion list. Data-access failures propagate to the
// caller; cache failures only degrade to recomputation.
func (uc *SuggestCategoriesUseCase) Execute(ctx context.Context, input SuggestCategoriesInput) (*SuggestCategoriesOutput, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, input.UserID, input.Description)
		if err != nil {
			slog.Warn("suggestion cache read failed", "error", err)
		} else if cached != nil {
			return &SuggestCategoriesOutput{Suggestions: cached}, nil
		}
	}

	suggestions := make([]entity.Suggestion, 0, 1+maxSimilarSuggestions)

	// Rule match first.
	rules, err := uc.ruleRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category rules: %w", err)
	}

	ruleCategoryID := MatchRules(input.Description, rules)
	if ruleCategoryID != nil {
		suggestions = append(suggestions, entity.Suggestion{
			CategoryID: *ruleCategoryID,
			Confidence: ruleMatchConfidence,
			Reason:     entity.SuggestionReasonRuleMatch,
		})
	}

	// Then similarity against the user's categorized history.
	history, err := uc.transactionRepo.FindCategorizedByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categorized transactions: %w", err)
	}

	scores := ScoreSimilarity(input.Description, history)
	similar := 0
	for _, ranked := range rankScores(scores) {
		if similar >= maxSimilarSuggestions {
			break
		}
		if ruleCategoryID != nil && ranked.categoryID == *ruleCategoryID {
			// The rule-derived suggestion already covers this category.
			continue
		}

		confidence := ranked.score
		if confidence > maxSimilarityConfidence {
			confidence = maxSimilarityConfidence
		}

		suggestions = append(suggestions, entity.Suggestion{
			CategoryID: ranked.categoryID,
			Confidence: confidence,
			Reason:     entity.SuggestionReasonSimilar,
		})
		similar++
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, input.UserID, input.Description, suggestions); err != nil {
			slog.Warn("suggestion cache write failed", "error", err)
		}
	}

	return &SuggestCategoriesOutput{Suggestions: suggestions}, nil
}

// rankedScore pairs a category with its accumulated similarity score.
type rankedScore struct {
	categoryID uuid.UUID
	score      float64
}

// rankScores orders a score map by score descending. Ties break on category
// ID so the ranking is deterministic across calls.
func rankScores(scores map[uuid.UUID]float64) []rankedScore {
	ranked := make([]rankedScore, 0, len(scores))
	for categoryID, score := range scores {
		ranked = append(ranked, rankedScore{categoryID: categoryID, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].categoryID.String() < ranked[j].categoryID.String()
	})

	return ranked
}
