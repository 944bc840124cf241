// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// CreateCategoryRuleRequest represents the request body for category rule creation.
type CreateCategoryRuleRequest struct {
	Name       string `json:"name,omitempty" binding:"omitempty,max=255"`
	Pattern    string `json:"pattern" binding:"required,min=1,max=255"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Priority   *int   `json:"priority,omitempty"`
}

// UpdateCategoryRuleRequest represents the request body for category rule update.
type UpdateCategoryRuleRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Pattern    *string `json:"pattern,omitempty" binding:"omitempty,min=1,max=255"`
	CategoryID *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Priority   *int    `json:"priority,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// ReorderCategoryRulesRequest represents the request body for reordering rules.
type ReorderCategoryRulesRequest struct {
	Order []RulePriorityItem `json:"order" binding:"required,dive"`
}

// RulePriorityItem represents a single rule priority update.
type RulePriorityItem struct {
	ID       string `json:"id" binding:"required,uuid"`
	Priority int    `json:"priority" binding:"required"`
}

// CategoryRuleResponse represents a single category rule in API responses.
type CategoryRuleResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Pattern             string    `json:"pattern"`
	CategoryID          string    `json:"category_id"`
	CategoryName        string    `json:"category_name,omitempty"`
	CategoryIcon        string    `json:"category_icon,omitempty"`
	CategoryColor       string    `json:"category_color,omitempty"`
	Priority            int       `json:"priority"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	TransactionsUpdated int       `json:"transactions_updated,omitempty"`
}

// CategoryRuleListResponse represents the response for listing category rules.
type CategoryRuleListResponse struct {
	Rules []CategoryRuleResponse `json:"rules"`
}

// ToCategoryRuleResponse converts a domain CategoryRule to a CategoryRuleResponse DTO.
func ToCategoryRuleResponse(rule *entity.CategoryRule) CategoryRuleResponse {
	return CategoryRuleResponse{
		ID:         rule.ID.String(),
		Name:       rule.Name,
		Pattern:    rule.Pattern,
		CategoryID: rule.CategoryID.String(),
		Priority:   rule.Priority,
		IsActive:   rule.IsActive,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	}
}

// ToCategoryRuleWithCategoryResponse converts a CategoryRuleWithCategory to a CategoryRuleResponse DTO.
func ToCategoryRuleWithCategoryResponse(rwc *entity.CategoryRuleWithCategory) CategoryRuleResponse {
	response := ToCategoryRuleResponse(rwc.Rule)
	if rwc.Category != nil {
		response.CategoryName = rwc.Category.Name
		response.CategoryIcon = rwc.Category.Icon
		response.CategoryColor = rwc.Category.Color
	}
	return response
}

// ToCategoryRuleListResponse converts a list of rules with categories to a list response.
func ToCategoryRuleListResponse(rules []*entity.CategoryRuleWithCategory) CategoryRuleListResponse {
	out := make([]CategoryRuleResponse, len(rules))
	for i, rwc := range rules {
		out[i] = ToCategoryRuleWithCategoryResponse(rwc)
	}
	return CategoryRuleListResponse{
		Rules: out,
	}
}
