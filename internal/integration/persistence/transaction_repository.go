// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// BulkCreate creates multiple transactions in a single operation.
func (r *transactionRepository) BulkCreate(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	transactionModels := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		transactionModels[i] = model.TransactionFromEntity(t)
	}

	result := r.db.WithContext(ctx).CreateInBatches(transactionModels, 100)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByUser retrieves transactions for a user with pagination, newest first.
func (r *transactionRepository) FindByUser(ctx context.Context, userID uuid.UUID, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID)

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithCategory()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// categorizedRow is a raw projection used by the similarity scorer.
type categorizedRow struct {
	Description string
	CategoryID  uuid.UUID
}

// FindCategorizedByUser retrieves the description/category pairs of all of
// the user's categorized transactions.
func (r *transactionRepository) FindCategorizedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategorizedDescription, error) {
	var rows []categorizedRow
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("description, category_id").
		Where("user_id = ? AND category_id IS NOT NULL", userID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]*entity.CategorizedDescription, len(rows))
	for i, row := range rows {
		out[i] = &entity.CategorizedDescription{
			Description: row.Description,
			CategoryID:  row.CategoryID,
		}
	}
	return out, nil
}

// CountCategorizedContaining counts the user's transactions assigned to the
// category whose description contains the token, case-insensitive, excluding
// one transaction ID.
func (r *transactionRepository) CountCategorizedContaining(ctx context.Context, userID uuid.UUID, categoryID uuid.UUID, token string, excludeID uuid.UUID) (int, error) {
	pattern := "%" + strings.ToLower(token) + "%"

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND category_id = ? AND id != ? AND LOWER(description) LIKE ?",
			userID, categoryID, excludeID, pattern).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// uncategorizedRow is a raw projection used for pattern application.
type uncategorizedRow struct {
	ID          uuid.UUID
	Description string
}

// BulkUpdateCategoryByPattern assigns the category to the user's
// uncategorized transactions whose description matches the pattern.
//
// Matching happens in Go with the same case-insensitive compilation the rule
// matcher uses, so behavior is identical across database dialects.
func (r *transactionRepository) BulkUpdateCategoryByPattern(ctx context.Context, pattern string, categoryID uuid.UUID, userID uuid.UUID) (int, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return 0, domainerror.ErrInvalidPattern
	}

	var rows []uncategorizedRow
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("id, description").
		Where("user_id = ? AND category_id IS NULL", userID).
		Scan(&rows)
	if result.Error != nil {
		return 0, result.Error
	}

	var matched []uuid.UUID
	for _, row := range rows {
		if re.MatchString(row.Description) {
			matched = append(matched, row.ID)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}

	update := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id IN ?", matched).
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"updated_at":  time.Now().UTC(),
		})
	if update.Error != nil {
		return 0, update.Error
	}
	return len(matched), nil
}
