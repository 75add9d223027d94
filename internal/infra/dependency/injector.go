// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rachellllllllll/CreditCanvas-sub001/config"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	patternrule "github.com/rachellllllllll/CreditCanvas-sub001/internal/application/usecase/pattern_rule"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/usecase/reconciliation"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/infra/server/router"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/adapters"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/cache"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/entrypoint/controller"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/entrypoint/middleware"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/persistence"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/storage"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Directory    adapter.Directory
	TokenService adapter.TokenService
	RateLimiter  *middleware.RateLimiter
	Router       *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db and redisClient are optional: without a database no run history is kept,
// without Redis the pattern directory is read directly.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	directory, err := NewDirectory(&cfg.Storage, db)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		directory = cache.NewRedisDirectory(directory, redisClient, cfg.Redis.CacheTTL)
		slog.Info("Pattern directory cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	// Create repositories
	patternStore := reconciliation.NewPatternStore(directory, cfg.Storage.PatternFileName)
	var runRepo adapter.ReconciliationRunRepository
	if db != nil {
		runRepo = persistence.NewReconciliationRunRepository(db)
	}

	// Create reconciliation use cases
	reconciler := reconciliation.NewReconciler(patternStore)
	defaults := cfg.Reconciliation.MatchingConfig()
	runUseCase := reconciliation.NewRunReconciliationUseCase(reconciler, runRepo, defaults)
	var listRunsUseCase *reconciliation.ListRunsUseCase
	if runRepo != nil {
		listRunsUseCase = reconciliation.NewListRunsUseCase(runRepo)
	}

	// Create pattern rule use cases
	listRulesUseCase := patternrule.NewListPatternRulesUseCase(patternStore)
	createRuleUseCase := patternrule.NewCreatePatternRuleUseCase(patternStore)
	setActiveUseCase := patternrule.NewSetPatternRuleActiveUseCase(patternStore)
	deleteRuleUseCase := patternrule.NewDeletePatternRuleUseCase(patternStore)
	testPatternUseCase := patternrule.NewTestPatternUseCase()

	// Create controllers
	healthController := controller.NewHealthController(cfg.Storage.Backend, dependencyChecks(db, redisClient))
	reconciliationController := controller.NewReconciliationController(
		runUseCase,
		listRunsUseCase,
		defaults,
		cfg.Reconciliation.RecordRuns,
	)
	patternRuleController := controller.NewPatternRuleController(
		listRulesUseCase,
		createRuleUseCase,
		setActiveUseCase,
		deleteRuleUseCase,
		testPatternUseCase,
	)

	// Create middleware
	// Test environments run without rate limits to keep scenarios deterministic
	var rateLimiter *middleware.RateLimiter
	testEnv := cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test"
	if cfg.RateLimit.Enabled && !testEnv {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	var tokenService adapter.TokenService
	var authMiddleware *middleware.AuthMiddleware
	if cfg.JWT.Secret != "" {
		tokenService = adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
		authMiddleware = middleware.NewAuthMiddleware(tokenService)
	} else {
		slog.Warn("JWT_SECRET not set, API authentication disabled")
	}

	// Create router
	r := router.NewRouter(healthController, reconciliationController, patternRuleController, rateLimiter, authMiddleware)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Directory:    directory,
		TokenService: tokenService,
		RateLimiter:  rateLimiter,
		Router:       r,
	}, nil
}

// NewDirectory creates the pattern rules directory for the configured backend.
func NewDirectory(cfg *config.StorageConfig, db *gorm.DB) (adapter.Directory, error) {
	switch cfg.Backend {
	case config.StorageBackendFile, "":
		return storage.NewFileDirectory(cfg.Path)
	case config.StorageBackendDatabase:
		if db == nil {
			return nil, fmt.Errorf("storage backend %q requires a database connection", cfg.Backend)
		}
		return persistence.NewDocumentDirectory(db), nil
	case config.StorageBackendMemory:
		return storage.NewMemoryDirectory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// dependencyChecks builds health checks for the configured backing services.
func dependencyChecks(db *gorm.DB, redisClient *redis.Client) map[string]controller.DependencyCheck {
	checks := make(map[string]controller.DependencyCheck)
	if db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return checks
}
