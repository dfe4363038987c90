// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/goal-planner/backend/config"
	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/application/usecase/allocation"
	"github.com/goal-planner/backend/internal/application/usecase/goal"
	"github.com/goal-planner/backend/internal/application/usecase/reconciliation"
	"github.com/goal-planner/backend/internal/application/usecase/simulation"
	"github.com/goal-planner/backend/internal/domain/valueobject"
	"github.com/goal-planner/backend/internal/infra/server/router"
	"github.com/goal-planner/backend/internal/integration/adapters"
	"github.com/goal-planner/backend/internal/integration/cache"
	"github.com/goal-planner/backend/internal/integration/email"
	"github.com/goal-planner/backend/internal/integration/entrypoint/controller"
	"github.com/goal-planner/backend/internal/integration/entrypoint/middleware"
	"github.com/goal-planner/backend/internal/integration/persistence"
	"github.com/goal-planner/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// ReconciliationWorker is nil when reconciliation is disabled.
	ReconciliationWorker *scheduler.ReconciliationWorker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case allocation results are simply not
// cached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	goalRepo := persistence.NewGoalRepository(db)
	historyRepo := persistence.NewAllocationHistoryRepository(db)
	profileRepo := persistence.NewFinancialProfileRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	var allocationCache adapter.AllocationCache
	if redisClient != nil {
		allocationCache = cache.NewAllocationCache(redisClient, cfg.Redis.CacheTTL)
	}

	var notifier adapter.NotificationSender
	if cfg.Email.ResendAPIKey != "" {
		lookup := adapters.NewUserEmailLookup(cfg.Accounts.BaseURL, cfg.Accounts.APIKey, cfg.Accounts.Timeout)
		notifier = email.NewMilestoneNotifier(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, lookup)
	}

	savingsSource := adapters.NewSavingsAccountClient(cfg.Accounts.BaseURL, cfg.Accounts.APIKey, cfg.Accounts.Timeout)

	// Build the engine configuration from config overrides
	engineConfig := valueobject.DefaultEngineConfig()
	engineConfig.PriorityWeight = cfg.Engine.PriorityWeight
	engineConfig.TimeWeight = cfg.Engine.TimeWeight
	engineConfig.ProgressWeight = cfg.Engine.ProgressWeight
	engineConfig.SafetyMarginPercent = cfg.Engine.SafetyMarginPercent
	engineConfig = engineConfig.Normalized()

	// Create allocation use cases
	calculateUseCase := allocation.NewCalculateAllocationsUseCase(goalRepo, profileRepo, historyRepo, allocationCache, engineConfig)
	applyUseCase := allocation.NewApplyAllocationsUseCase(goalRepo, allocationCache)
	historyUseCase := allocation.NewGetHistoryUseCase(historyRepo)
	latestUseCase := allocation.NewGetLatestUseCase(allocationCache)

	// Create simulation use case
	simulateUseCase := simulation.NewSimulateUseCase(goalRepo, profileRepo, engineConfig)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo).WithCache(allocationCache)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo).WithCache(allocationCache)
	cancelGoalUseCase := goal.NewCancelGoalUseCase(goalRepo).WithCache(allocationCache)

	// Create reconciliation use case and worker
	syncSavingsUseCase := reconciliation.NewSyncSavingsUseCase(goalRepo, savingsSource, notifier)
	var reconciliationWorker *scheduler.ReconciliationWorker
	if cfg.Reconciliation.Enabled {
		reconciliationWorker = scheduler.NewReconciliationWorker(syncSavingsUseCase, goalRepo, scheduler.WorkerConfig{
			PollInterval: cfg.Reconciliation.PollInterval,
		})
	}

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		cancelGoalUseCase,
	)

	allocationController := controller.NewAllocationController(
		calculateUseCase,
		applyUseCase,
		historyUseCase,
		latestUseCase,
	)

	simulationController := controller.NewSimulationController(simulateUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var computeRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		computeRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		computeRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, goalController, allocationController, simulationController, computeRateLimiter, authMiddleware)

	return &Injector{
		Config:               cfg,
		DB:                   db,
		Router:               r,
		ReconciliationWorker: reconciliationWorker,
	}
}
