// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/goal-planner/backend/internal/integration/entrypoint/controller"
	"github.com/goal-planner/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	goalController       *controller.GoalController
	allocationController *controller.AllocationController
	simulationController *controller.SimulationController
	computeRateLimiter   *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	goalController *controller.GoalController,
	allocationController *controller.AllocationController,
	simulationController *controller.SimulationController,
	computeRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		goalController:       goalController,
		allocationController: allocationController,
		simulationController: simulationController,
		computeRateLimiter:   computeRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

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
		// Goal routes (require authentication)
		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.GET("/:id", r.goalController.Get)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Cancel)
			}
		}

		// Allocation routes (require authentication; the compute endpoints
		// are additionally rate limited)
		if r.allocationController != nil && r.authMiddleware != nil {
			allocations := v1.Group("/allocations")
			allocations.Use(r.authMiddleware.Authenticate())
			{
				if r.computeRateLimiter != nil {
					allocations.POST("/calculate", r.computeRateLimiter.Middleware(), r.allocationController.Calculate)
				} else {
					allocations.POST("/calculate", r.allocationController.Calculate)
				}
				allocations.POST("/apply", r.allocationController.Apply)
				allocations.GET("/latest", r.allocationController.Latest)
				allocations.GET("/history", r.allocationController.History)
			}
		}

		// Simulation routes (require authentication)
		if r.simulationController != nil && r.authMiddleware != nil {
			simulations := v1.Group("/simulations")
			simulations.Use(r.authMiddleware.Authenticate())
			{
				if r.computeRateLimiter != nil {
					simulations.POST("", r.computeRateLimiter.Middleware(), r.simulationController.Simulate)
				} else {
					simulations.POST("", r.simulationController.Simulate)
				}
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
