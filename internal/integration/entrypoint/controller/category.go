// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetwise/backend/internal/application/usecase/category"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/entrypoint/dto"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve categories",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeCategoryMissingFields),
		})
		return
	}

	input := category.CreateCategoryInput{
		Name:   req.Name,
		Color:  req.Color,
		Icon:   req.Icon,
		Role:   entity.CategoryRole(req.Role),
		UserID: userID,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(c.getStatusCodeForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedCategory:
		return http.StatusForbidden
	case domainerror.ErrCodeCategoryMissingFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
