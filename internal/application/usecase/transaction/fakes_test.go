package transaction

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	bulkCreated  [][]*entity.Transaction
	updated      []*entity.Transaction
	bulkErr      error
}

func (f *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeTransactionRepo) BulkCreate(_ context.Context, ts []*entity.Transaction) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.bulkCreated = append(f.bulkCreated, ts)
	f.transactions = append(f.transactions, ts...)
	return nil
}

func (f *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, t := range f.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) FindByUser(_ context.Context, userID uuid.UUID, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	var owned []*entity.TransactionWithCategory
	for _, t := range f.transactions {
		if t.UserID == userID {
			owned = append(owned, &entity.TransactionWithCategory{Transaction: t})
		}
	}
	return &adapter.TransactionListResult{
		Transactions: owned,
		Total:        int64(len(owned)),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   1,
	}, nil
}

func (f *fakeTransactionRepo) FindCategorizedByUser(_ context.Context, userID uuid.UUID) ([]*entity.CategorizedDescription, error) {
	var out []*entity.CategorizedDescription
	for _, t := range f.transactions {
		if t.UserID == userID && t.CategoryID != nil {
			out = append(out, &entity.CategorizedDescription{
				Description: t.Description,
				CategoryID:  *t.CategoryID,
			})
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) CountCategorizedContaining(_ context.Context, userID, categoryID uuid.UUID, token string, excludeID uuid.UUID) (int, error) {
	count := 0
	for _, t := range f.transactions {
		if t.ID == excludeID || t.UserID != userID || t.CategoryID == nil || *t.CategoryID != categoryID {
			continue
		}
		if strings.Contains(strings.ToLower(t.Description), strings.ToLower(token)) {
			count++
		}
	}
	return count, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	f.updated = append(f.updated, t)
	return nil
}

func (f *fakeTransactionRepo) BulkUpdateCategoryByPattern(_ context.Context, _ string, _ uuid.UUID, _ uuid.UUID) (int, error) {
	return 0, nil
}

type fakeCategoryRepo struct {
	categories []*entity.Category
	findErr    error
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.categories = append(f.categories, c)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var owned []*entity.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

func (f *fakeCategoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range f.categories {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeRuleRepo struct {
	rules    []*entity.CategoryRule
	upserted []*entity.CategoryRule
}

func (f *fakeRuleRepo) Create(_ context.Context, r *entity.CategoryRule) error {
	f.rules = append(f.rules, r)
	return nil
}

func (f *fakeRuleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CategoryRule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainerror.ErrCategoryRuleNotFound
}

func (f *fakeRuleRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error) {
	var owned []*entity.CategoryRule
	for _, r := range f.rules {
		if r.UserID == userID {
			owned = append(owned, r)
		}
	}
	return owned, nil
}

func (f *fakeRuleRepo) FindByUserWithCategories(_ context.Context, _ uuid.UUID) ([]*entity.CategoryRuleWithCategory, error) {
	return nil, nil
}

func (f *fakeRuleRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error) {
	return f.FindByUser(ctx, userID)
}

func (f *fakeRuleRepo) Update(_ context.Context, _ *entity.CategoryRule) error { return nil }

func (f *fakeRuleRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeRuleRepo) ExistsByPatternAndUser(_ context.Context, pattern string, userID uuid.UUID) (bool, error) {
	for _, r := range f.rules {
		if r.UserID == userID && r.Pattern == pattern {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRuleRepo) ExistsByPatternAndUserExcluding(_ context.Context, pattern string, userID, excludeID uuid.UUID) (bool, error) {
	for _, r := range f.rules {
		if r.ID != excludeID && r.UserID == userID && r.Pattern == pattern {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRuleRepo) UpdatePriorities(_ context.Context, _ []entity.RulePriorityUpdate) error {
	return nil
}

func (f *fakeRuleRepo) GetMaxPriorityByUser(_ context.Context, userID uuid.UUID) (int, error) {
	max := 0
	for _, r := range f.rules {
		if r.UserID == userID && r.Priority > max {
			max = r.Priority
		}
	}
	return max, nil
}

func (f *fakeRuleRepo) UpsertAutoRule(_ context.Context, rule *entity.CategoryRule) error {
	f.upserted = append(f.upserted, rule)
	for _, r := range f.rules {
		if r.UserID == rule.UserID && r.Pattern == rule.Pattern && r.CategoryID == rule.CategoryID {
			return nil
		}
	}
	f.rules = append(f.rules, rule)
	return nil
}

type fakeCache struct {
	invalidated int
}

func (f *fakeCache) Get(_ context.Context, _ uuid.UUID, _ string) ([]entity.Suggestion, error) {
	return nil, nil
}

func (f *fakeCache) Set(_ context.Context, _ uuid.UUID, _ string, _ []entity.Suggestion) error {
	return nil
}

func (f *fakeCache) InvalidateUser(_ context.Context, _ uuid.UUID) error {
	f.invalidated++
	return nil
}
