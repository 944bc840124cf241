// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budgetwise/backend/internal/integration/entrypoint/controller"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	categoryController     *controller.CategoryController
	categoryRuleController *controller.CategoryRuleController
	transactionController  *controller.TransactionController
	suggestRateLimiter     *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	categoryRuleController *controller.CategoryRuleController,
	transactionController *controller.TransactionController,
	suggestRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		categoryController:     categoryController,
		categoryRuleController: categoryRuleController,
		transactionController:  transactionController,
		suggestRateLimiter:     suggestRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery.
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
			}
		}

		// Category rule routes (require authentication)
		if r.categoryRuleController != nil && r.authMiddleware != nil {
			categoryRules := v1.Group("/category-rules")
			categoryRules.Use(r.authMiddleware.Authenticate())
			{
				categoryRules.GET("", r.categoryRuleController.List)
				categoryRules.POST("", r.categoryRuleController.Create)
				categoryRules.PATCH("/reorder", r.categoryRuleController.Reorder)
				categoryRules.PATCH("/:id", r.categoryRuleController.Update)
				categoryRules.DELETE("/:id", r.categoryRuleController.Delete)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("/import", r.transactionController.Import)
				transactions.PUT("/:id/category", r.transactionController.Categorize)

				if r.suggestRateLimiter != nil {
					transactions.POST("/suggestions", r.suggestRateLimiter.Middleware(), r.transactionController.Suggest)
				} else {
					transactions.POST("/suggestions", r.transactionController.Suggest)
				}
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
