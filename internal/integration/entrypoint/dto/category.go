// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color,omitempty" binding:"omitempty,max=7"`
	Icon  string `json:"icon,omitempty" binding:"omitempty,max=50"`
	Role  string `json:"role,omitempty" binding:"omitempty,oneof=uncategorized-fallback"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		Role:      string(category.Role),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories to a list response.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{
		Categories: out,
	}
}
