// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// SuggestCategoriesRequest represents the request body for category suggestions.
type SuggestCategoriesRequest struct {
	Description string `json:"description" binding:"required,min=1"`
	Amount      string `json:"amount,omitempty"`
}

// SuggestionResponse represents a single category suggestion.
type SuggestionResponse struct {
	CategoryID string  `json:"category_id"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// SuggestCategoriesResponse represents the response for category suggestions.
type SuggestCategoriesResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// ToSuggestCategoriesResponse converts domain suggestions to the response DTO.
func ToSuggestCategoriesResponse(suggestions []entity.Suggestion) SuggestCategoriesResponse {
	out := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = SuggestionResponse{
			CategoryID: s.CategoryID.String(),
			Confidence: s.Confidence,
			Reason:     s.Reason,
		}
	}
	return SuggestCategoriesResponse{
		Suggestions: out,
	}
}

// CategorizeTransactionRequest represents the request body for a manual
// category assignment.
type CategorizeTransactionRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// CategorizeTransactionResponse represents the response for a manual
// category assignment.
type CategorizeTransactionResponse struct {
	Transaction   TransactionResponse `json:"transaction"`
	RulesPromoted int                 `json:"rules_promoted"`
}

// ImportTransactionRowRequest represents one row of a bulk import.
type ImportTransactionRowRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required,min=1"`
	Amount      string `json:"amount" binding:"required"`
	Direction   string `json:"direction" binding:"required,oneof=debit credit"`
}

// ImportTransactionsRequest represents the request body for bulk import.
type ImportTransactionsRequest struct {
	Transactions []ImportTransactionRowRequest `json:"transactions" binding:"required,min=1,dive"`
}

// ImportTransactionsResponse represents the response for bulk import.
type ImportTransactionsResponse struct {
	Imported    int `json:"imported"`
	Categorized int `json:"categorized"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	Description   string     `json:"description"`
	Amount        string     `json:"amount"`
	Direction     string     `json:"direction"`
	CategoryID    *string    `json:"category_id,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
	CategoryColor string     `json:"category_color,omitempty"`
	ImportedAt    *time.Time `json:"imported_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          transaction.ID.String(),
		Date:        transaction.Date,
		Description: transaction.Description,
		Amount:      transaction.Amount.String(),
		Direction:   string(transaction.Direction),
		ImportedAt:  transaction.ImportedAt,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}

	if transaction.CategoryID != nil {
		id := transaction.CategoryID.String()
		response.CategoryID = &id
	}

	return response
}

// ToTransactionWithCategoryResponse converts a TransactionWithCategory to a TransactionResponse DTO.
func ToTransactionWithCategoryResponse(twc *entity.TransactionWithCategory) TransactionResponse {
	response := ToTransactionResponse(twc.Transaction)
	if twc.Category != nil {
		response.CategoryName = twc.Category.Name
		response.CategoryColor = twc.Category.Color
	}
	return response
}
