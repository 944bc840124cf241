// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/usecase/categorization"
	"github.com/budgetwise/backend/internal/application/usecase/transaction"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/entrypoint/dto"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// importDateLayouts are the accepted date formats for bulk import rows.
var importDateLayouts = []string{time.RFC3339, "2006-01-02"}

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase       *transaction.ListTransactionsUseCase
	suggestUseCase    *categorization.SuggestCategoriesUseCase
	categorizeUseCase *transaction.CategorizeTransactionUseCase
	importUseCase     *transaction.ImportTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	suggestUseCase *categorization.SuggestCategoriesUseCase,
	categorizeUseCase *transaction.CategorizeTransactionUseCase,
	importUseCase *transaction.ImportTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:       listUseCase,
		suggestUseCase:    suggestUseCase,
		categorizeUseCase: categorizeUseCase,
		importUseCase:     importUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve transactions",
		})
		return
	}

	transactions := make([]dto.TransactionResponse, len(output.Result.Transactions))
	for i, twc := range output.Result.Transactions {
		transactions[i] = dto.ToTransactionWithCategoryResponse(twc)
	}

	ctx.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        output.Result.Total,
		Page:         output.Result.Page,
		Limit:        output.Result.Limit,
		TotalPages:   output.Result.TotalPages,
	})
}

// Suggest handles POST /transactions/suggestions requests.
func (c *TransactionController) Suggest(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SuggestCategoriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := categorization.SuggestCategoriesInput{
		UserID:      userID,
		Description: req.Description,
	}
	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
			})
			return
		}
		input.Amount = amount
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute suggestions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestCategoriesResponse(output.Suggestions))
}

// Categorize handles PUT /transactions/:id/category requests.
func (c *TransactionController) Categorize(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	var req dto.CategorizeTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
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

	output, err := c.categorizeUseCase.Execute(ctx.Request.Context(), transaction.CategorizeTransactionInput{
		TransactionID: transactionID,
		CategoryID:    categoryID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategorizeTransactionResponse{
		Transaction:   dto.ToTransactionResponse(output.Transaction),
		RulesPromoted: output.RulesPromoted,
	})
}

// Import handles POST /transactions/import requests.
func (c *TransactionController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ImportTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeTransactionMissingFields),
		})
		return
	}

	rows := make([]transaction.ImportTransactionRow, len(req.Transactions))
	for i, row := range req.Transactions {
		date, err := parseImportDate(row.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format",
			})
			return
		}

		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
			})
			return
		}

		rows[i] = transaction.ImportTransactionRow{
			Date:        date,
			Description: row.Description,
			Amount:      amount,
			Direction:   entity.TransactionDirection(row.Direction),
		}
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), transaction.ImportTransactionsInput{
		UserID: userID,
		Rows:   rows,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ImportTransactionsResponse{
		Imported:    output.Imported,
		Categorized: output.Categorized,
	})
}

// parseImportDate parses an import row date in any of the accepted layouts.
func parseImportDate(value string) (time.Time, error) {
	var err error
	for _, layout := range importDateLayouts {
		var t time.Time
		t, err = time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		ctx.JSON(c.getStatusCodeForTransactionError(txErr.Code), dto.ErrorResponse{
			Error: txErr.Message,
			Code:  string(txErr.Code),
		})
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		status := http.StatusInternalServerError
		switch catErr.Code {
		case domainerror.ErrCodeCategoryNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedCategory:
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeTransactionMissingFields,
		domainerror.ErrCodeInvalidDirection,
		domainerror.ErrCodeEmptyImport:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
