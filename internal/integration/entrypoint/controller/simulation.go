// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goal-planner/backend/internal/application/usecase/simulation"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
	"github.com/goal-planner/backend/internal/integration/entrypoint/dto"
	"github.com/goal-planner/backend/internal/integration/entrypoint/middleware"
)

// SimulationController handles what-if simulation endpoints.
type SimulationController struct {
	simulateUseCase *simulation.SimulateUseCase
}

// NewSimulationController creates a new simulation controller instance.
func NewSimulationController(simulateUseCase *simulation.SimulateUseCase) *SimulationController {
	return &SimulationController{
		simulateUseCase: simulateUseCase,
	}
}

// Simulate handles POST /simulations requests.
func (c *SimulationController) Simulate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SimulateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	scenario, err := req.ToScenario(userID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	input := simulation.SimulateInput{
		UserID:   userID,
		Scenario: scenario,
	}

	output, err := c.simulateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to run simulation",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SimulationResponse{Result: output.Result})
}
