package categorization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// promotionThreshold is how many of the user's other transactions in the
// same category must contain a token before it is promoted to a rule.
const promotionThreshold = 3

// LearnCategoryInput represents the input for the learning feedback loop.
type LearnCategoryInput struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	UserID        uuid.UUID
}

// LearnCategoryOutput represents the output of the learning feedback loop.
type LearnCategoryOutput struct {
	RulesPromoted int
}

// LearnCategoryUseCase observes a manual category assignment and promotes
// recurring description tokens into durable auto-rules.
type LearnCategoryUseCase struct {
	transactionRepo adapter.TransactionRepository
	ruleRepo        adapter.CategoryRuleRepository
	cache           adapter.SuggestionCache
}

// NewLearnCategoryUseCase creates a new LearnCategoryUseCase instance.
func NewLearnCategoryUseCase(
	transactionRepo adapter.TransactionRepository,
	ruleRepo adapter.CategoryRuleRepository,
	cache adapter.SuggestionCache,
) *LearnCategoryUseCase {
	return &LearnCategoryUseCase{
		transactionRepo: transactionRepo,
		ruleRepo:        ruleRepo,
		cache:           cache,
	}
}

// Execute runs one learning pass. A missing or foreign transaction is a
// silent no-op; data-access failures propagate. Re-running with the same
// inputs never creates duplicate rules because promotion is an upsert keyed
// by (user, pattern, category).
func (uc *LearnCategoryUseCase) Execute(ctx context.Context, input LearnCategoryInput) (*LearnCategoryOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return &LearnCategoryOutput{}, nil
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	if transaction.UserID != input.UserID {
		return &LearnCategoryOutput{}, nil
	}

	promoted := 0
	for _, token := range significantTokens(transaction.Description) {
		count, err := uc.transactionRepo.CountCategorizedContaining(
			ctx,
			input.UserID,
			input.CategoryID,
			token,
			input.TransactionID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to count matching transactions: %w", err)
		}
		if count < promotionThreshold {
			continue
		}

		rule := entity.NewAutoRule(token, input.CategoryID, input.UserID)
		if err := uc.ruleRepo.UpsertAutoRule(ctx, rule); err != nil {
			return nil, fmt.Errorf("failed to upsert auto rule: %w", err)
		}
		promoted++
	}

	if promoted > 0 && uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("suggestion cache invalidation failed", "error", err)
		}
	}

	return &LearnCategoryOutput{RulesPromoted: promoted}, nil
}

// significantTokens returns the distinct informative tokens of a
// description, lower-cased, in first-seen order.
func significantTokens(description string) []string {
	seen := make(map[string]struct{})
	var tokens []string

	for _, t := range strings.Fields(strings.ToLower(description)) {
		if len(t) < significantTokenLen {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}

	return tokens
}
