package categorization

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// fakeRuleRepo is an in-memory CategoryRuleRepository. Upserts are keyed by
// (user, pattern, category) so promotion idempotence is observable without a
// database.
type fakeRuleRepo struct {
	rules   map[string]*entity.CategoryRule
	active  []*entity.CategoryRule
	findErr error
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[string]*entity.CategoryRule)}
}

func upsertKey(rule *entity.CategoryRule) string {
	return rule.UserID.String() + "|" + rule.Pattern + "|" + rule.CategoryID.String()
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *entity.CategoryRule) error {
	r.rules[upsertKey(rule)] = rule
	return nil
}

func (r *fakeRuleRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.CategoryRule, error) {
	return nil, domainerror.ErrCategoryRuleNotFound
}

func (r *fakeRuleRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.CategoryRule, error) {
	return r.active, r.findErr
}

func (r *fakeRuleRepo) FindByUserWithCategories(_ context.Context, _ uuid.UUID) ([]*entity.CategoryRuleWithCategory, error) {
	return nil, nil
}

func (r *fakeRuleRepo) FindActiveByUser(_ context.Context, _ uuid.UUID) ([]*entity.CategoryRule, error) {
	return r.active, r.findErr
}

func (r *fakeRuleRepo) Update(_ context.Context, _ *entity.CategoryRule) error { return nil }

func (r *fakeRuleRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeRuleRepo) ExistsByPatternAndUser(_ context.Context, pattern string, userID uuid.UUID) (bool, error) {
	for _, rule := range r.rules {
		if rule.Pattern == pattern && rule.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRuleRepo) ExistsByPatternAndUserExcluding(_ context.Context, _ string, _ uuid.UUID, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeRuleRepo) UpdatePriorities(_ context.Context, _ []entity.RulePriorityUpdate) error {
	return nil
}

func (r *fakeRuleRepo) GetMaxPriorityByUser(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (r *fakeRuleRepo) UpsertAutoRule(_ context.Context, rule *entity.CategoryRule) error {
	key := upsertKey(rule)
	if existing, ok := r.rules[key]; ok {
		existing.Name = rule.Name
		existing.Priority = rule.Priority
		existing.IsActive = rule.IsActive
		existing.UpdatedAt = rule.UpdatedAt
		return nil
	}
	r.rules[key] = rule
	return nil
}

// fakeTransactionRepo is an in-memory TransactionRepository backed by a
// transaction slice.
type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	findErr      error
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeTransactionRepo) BulkCreate(_ context.Context, txs []*entity.Transaction) error {
	r.transactions = append(r.transactions, txs...)
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByUser(_ context.Context, _ uuid.UUID, _ adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (r *fakeTransactionRepo) FindCategorizedByUser(_ context.Context, userID uuid.UUID) ([]*entity.CategorizedDescription, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var history []*entity.CategorizedDescription
	for _, tx := range r.transactions {
		if tx.UserID != userID || tx.CategoryID == nil {
			continue
		}
		history = append(history, &entity.CategorizedDescription{
			Description: tx.Description,
			CategoryID:  *tx.CategoryID,
		})
	}
	return history, nil
}

func (r *fakeTransactionRepo) CountCategorizedContaining(_ context.Context, userID uuid.UUID, categoryID uuid.UUID, token string, excludeID uuid.UUID) (int, error) {
	count := 0
	for _, tx := range r.transactions {
		if tx.UserID != userID || tx.ID == excludeID {
			continue
		}
		if tx.CategoryID == nil || *tx.CategoryID != categoryID {
			continue
		}
		if strings.Contains(strings.ToLower(tx.Description), strings.ToLower(token)) {
			count++
		}
	}
	return count, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, _ *entity.Transaction) error { return nil }

func (r *fakeTransactionRepo) BulkUpdateCategoryByPattern(_ context.Context, _ string, _ uuid.UUID, _ uuid.UUID) (int, error) {
	return 0, nil
}

// fakeSuggestionCache records cache traffic and can inject failures.
type fakeSuggestionCache struct {
	entries      map[string][]entity.Suggestion
	getErr       error
	setErr       error
	invalidated  int
	gets, sets   int
}

func newFakeSuggestionCache() *fakeSuggestionCache {
	return &fakeSuggestionCache{entries: make(map[string][]entity.Suggestion)}
}

func cacheKey(userID uuid.UUID, description string) string {
	return userID.String() + "|" + description
}

func (c *fakeSuggestionCache) Get(_ context.Context, userID uuid.UUID, description string) ([]entity.Suggestion, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[cacheKey(userID, description)], nil
}

func (c *fakeSuggestionCache) Set(_ context.Context, userID uuid.UUID, description string, suggestions []entity.Suggestion) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[cacheKey(userID, description)] = suggestions
	return nil
}

func (c *fakeSuggestionCache) InvalidateUser(_ context.Context, _ uuid.UUID) error {
	c.invalidated++
	c.entries = make(map[string][]entity.Suggestion)
	return nil
}
