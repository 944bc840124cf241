// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	categoryrule "github.com/budgetwise/backend/internal/application/usecase/category_rule"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/entrypoint/dto"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// CategoryRuleController handles category rule endpoints.
type CategoryRuleController struct {
	listUseCase    *categoryrule.ListCategoryRulesUseCase
	createUseCase  *categoryrule.CreateCategoryRuleUseCase
	updateUseCase  *categoryrule.UpdateCategoryRuleUseCase
	deleteUseCase  *categoryrule.DeleteCategoryRuleUseCase
	reorderUseCase *categoryrule.ReorderCategoryRulesUseCase
}

// NewCategoryRuleController creates a new category rule controller instance.
func NewCategoryRuleController(
	listUseCase *categoryrule.ListCategoryRulesUseCase,
	createUseCase *categoryrule.CreateCategoryRuleUseCase,
	updateUseCase *categoryrule.UpdateCategoryRuleUseCase,
	deleteUseCase *categoryrule.DeleteCategoryRuleUseCase,
	reorderUseCase *categoryrule.ReorderCategoryRulesUseCase,
) *CategoryRuleController {
	return &CategoryRuleController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		reorderUseCase: reorderUseCase,
	}
}

// List handles GET /category-rules requests.
func (c *CategoryRuleController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := categoryrule.ListCategoryRulesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active_only") == "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve category rules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryRuleListResponse(output.Rules))
}

// Create handles POST /category-rules requests.
func (c *CategoryRuleController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateCategoryRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	input := categoryrule.CreateCategoryRuleInput{
		Name:       req.Name,
		Pattern:    req.Pattern,
		CategoryID: categoryID,
		Priority:   req.Priority,
		UserID:     userID,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryRuleError(ctx, err)
		return
	}

	response := dto.ToCategoryRuleWithCategoryResponse(output.Rule)
	response.TransactionsUpdated = output.TransactionsUpdated
	ctx.JSON(http.StatusCreated, response)
}

// Update handles PATCH /category-rules/:id requests.
func (c *CategoryRuleController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	var req dto.UpdateCategoryRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := categoryrule.UpdateCategoryRuleInput{
		RuleID:   ruleID,
		UserID:   userID,
		Name:     req.Name,
		Pattern:  req.Pattern,
		Priority: req.Priority,
		IsActive: req.IsActive,
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryRuleResponse(output.Rule))
}

// Delete handles DELETE /category-rules/:id requests.
func (c *CategoryRuleController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	input := categoryrule.DeleteCategoryRuleInput{
		RuleID: ruleID,
		UserID: userID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleCategoryRuleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Reorder handles PATCH /category-rules/reorder requests.
func (c *CategoryRuleController) Reorder(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ReorderCategoryRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	updates := make([]entity.RulePriorityUpdate, len(req.Order))
	for i, item := range req.Order {
		ruleID, err := uuid.Parse(item.ID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid rule ID format",
			})
			return
		}
		updates[i] = entity.RulePriorityUpdate{
			ID:       ruleID,
			Priority: item.Priority,
		}
	}

	input := categoryrule.ReorderCategoryRulesInput{
		UserID:  userID,
		Updates: updates,
	}

	if err := c.reorderUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleCategoryRuleError(ctx, err)
		return
	}

	// Return the rules in their new matching order.
	output, err := c.listUseCase.Execute(ctx.Request.Context(), categoryrule.ListCategoryRulesInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve category rules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryRuleListResponse(output.Rules))
}

// handleCategoryRuleError handles category rule errors and returns appropriate HTTP responses.
func (c *CategoryRuleController) handleCategoryRuleError(ctx *gin.Context, err error) {
	var ruleErr *domainerror.CategoryRuleError
	if errors.As(err, &ruleErr) {
		ctx.JSON(c.getStatusCodeForCategoryRuleError(ruleErr.Code), dto.ErrorResponse{
			Error: ruleErr.Message,
			Code:  string(ruleErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryRuleError maps category rule error codes to HTTP status codes.
func (c *CategoryRuleController) getStatusCodeForCategoryRuleError(code domainerror.CategoryRuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryRuleNotFound,
		domainerror.ErrCodeCategoryNotFoundForRule:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryRulePatternExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedRule:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidPattern,
		domainerror.ErrCodePatternTooLong,
		domainerror.ErrCodeMissingRuleFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
