// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/config"
	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/application/usecase/categorization"
	"github.com/budgetwise/backend/internal/application/usecase/category"
	categoryrule "github.com/budgetwise/backend/internal/application/usecase/category_rule"
	"github.com/budgetwise/backend/internal/application/usecase/transaction"
	"github.com/budgetwise/backend/internal/infra/server/router"
	"github.com/budgetwise/backend/internal/integration/adapters"
	"github.com/budgetwise/backend/internal/integration/cache"
	"github.com/budgetwise/backend/internal/integration/entrypoint/controller"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetwise/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil; suggestion flows then run uncached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	ruleRepo := persistence.NewCategoryRuleRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	var suggestionCache adapter.SuggestionCache
	if redisClient != nil {
		suggestionCache = cache.NewSuggestionCache(redisClient, cfg.Suggest.CacheTTL)
	}

	// Create categorization use cases
	suggestUseCase := categorization.NewSuggestCategoriesUseCase(ruleRepo, transactionRepo, suggestionCache)
	learnUseCase := categorization.NewLearnCategoryUseCase(transactionRepo, ruleRepo, suggestionCache)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)

	// Create category rule use cases
	listRulesUseCase := categoryrule.NewListCategoryRulesUseCase(ruleRepo)
	createRuleUseCase := categoryrule.NewCreateCategoryRuleUseCase(ruleRepo, categoryRepo, transactionRepo, suggestionCache)
	updateRuleUseCase := categoryrule.NewUpdateCategoryRuleUseCase(ruleRepo, categoryRepo, suggestionCache)
	deleteRuleUseCase := categoryrule.NewDeleteCategoryRuleUseCase(ruleRepo, suggestionCache)
	reorderRulesUseCase := categoryrule.NewReorderCategoryRulesUseCase(ruleRepo, suggestionCache)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	categorizeUseCase := transaction.NewCategorizeTransactionUseCase(transactionRepo, categoryRepo, learnUseCase, suggestionCache)
	importUseCase := transaction.NewImportTransactionsUseCase(transactionRepo, categoryRepo, suggestionCache)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})
	categoryController := controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase)
	categoryRuleController := controller.NewCategoryRuleController(
		listRulesUseCase,
		createRuleUseCase,
		updateRuleUseCase,
		deleteRuleUseCase,
		reorderRulesUseCase,
	)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		suggestUseCase,
		categorizeUseCase,
		importUseCase,
	)

	// Create middleware
	var suggestRateLimiter *middleware.RateLimiter
	if cfg.Suggest.RateLimitEnabled {
		suggestRateLimiter = middleware.NewRateLimiterWithConfig(cfg.Suggest.RateLimitPerMin, time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: router.NewRouter(
			healthController,
			categoryController,
			categoryRuleController,
			transactionController,
			suggestRateLimiter,
			authMiddleware,
		),
	}
}
