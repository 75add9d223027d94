// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/entrypoint/controller"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	reconciliationController *controller.ReconciliationController
	patternRuleController    *controller.PatternRuleController
	rateLimiter              *middleware.RateLimiter
	authMiddleware           *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	reconciliationController *controller.ReconciliationController,
	patternRuleController *controller.PatternRuleController,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:         healthController,
		reconciliationController: reconciliationController,
		patternRuleController:    patternRuleController,
		rateLimiter:              rateLimiter,
		authMiddleware:           authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
// Browser clients are only allowed from allowedOrigins; none disables CORS.
func (r *Router) Setup(environment string, allowedOrigins []string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	if len(allowedOrigins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:  allowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Setup routes
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
	if r.authMiddleware != nil {
		v1.Use(r.authMiddleware.Authenticate())
	}

	if r.reconciliationController != nil {
		reconciliation := v1.Group("/reconciliation")
		{
			if r.rateLimiter != nil {
				reconciliation.POST("", r.rateLimiter.Middleware(), r.reconciliationController.Run)
			} else {
				reconciliation.POST("", r.reconciliationController.Run)
			}
			reconciliation.GET("/runs", r.reconciliationController.ListRuns)
		}
	}

	if r.patternRuleController != nil {
		patternRules := v1.Group("/pattern-rules")
		{
			patternRules.GET("", r.patternRuleController.List)
			patternRules.POST("", r.patternRuleController.Create)
			patternRules.PATCH("", r.patternRuleController.SetActive)
			patternRules.DELETE("", r.patternRuleController.Delete)
			patternRules.POST("/test", r.patternRuleController.Test)
		}
	}
}

// Engine returns the configured Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
