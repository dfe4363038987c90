// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthCheck func() bool
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthCheck func() bool) *HealthController {
	return &HealthController{
		dbHealthCheck: dbHealthCheck,
	}
}

// Check handles GET /health requests.
func (c *HealthController) Check(ctx *gin.Context) {
	dbHealthy := c.dbHealthCheck != nil && c.dbHealthCheck()

	status := http.StatusOK
	statusText := "ok"
	if !dbHealthy {
		status = http.StatusServiceUnavailable
		statusText = "degraded"
	}

	ctx.JSON(status, gin.H{
		"status":   statusText,
		"database": dbHealthy,
	})
}
