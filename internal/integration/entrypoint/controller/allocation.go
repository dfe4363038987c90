// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/usecase/allocation"
	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
	"github.com/goal-planner/backend/internal/integration/entrypoint/dto"
	"github.com/goal-planner/backend/internal/integration/entrypoint/middleware"
)

const defaultHistoryLimit = 50

// AllocationController handles allocation endpoints.
type AllocationController struct {
	calculateUseCase *allocation.CalculateAllocationsUseCase
	applyUseCase     *allocation.ApplyAllocationsUseCase
	historyUseCase   *allocation.GetHistoryUseCase
	latestUseCase    *allocation.GetLatestUseCase
}

// NewAllocationController creates a new allocation controller instance.
func NewAllocationController(
	calculateUseCase *allocation.CalculateAllocationsUseCase,
	applyUseCase *allocation.ApplyAllocationsUseCase,
	historyUseCase *allocation.GetHistoryUseCase,
	latestUseCase *allocation.GetLatestUseCase,
) *AllocationController {
	return &AllocationController{
		calculateUseCase: calculateUseCase,
		applyUseCase:     applyUseCase,
		historyUseCase:   historyUseCase,
		latestUseCase:    latestUseCase,
	}
}

// Calculate handles POST /allocations/calculate requests.
func (c *AllocationController) Calculate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// The body is optional; an empty body runs against the stored profile.
	var req dto.CalculateAllocationRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
			})
			return
		}
	}

	input := allocation.CalculateAllocationsInput{
		UserID:              userID,
		MonthlyIncome:       req.MonthlyIncome,
		FixedExpenses:       req.FixedExpenses,
		MinimumLivingBudget: req.MinimumLivingBudget,
		SafetyMarginPercent: req.SafetyMarginPercent,
		PersistHistory:      req.PersistHistory,
		Reason:              entity.AllocationReason(req.Reason),
	}

	output, err := c.calculateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		// A persistence failure after a successful computation still yields
		// a usable result; the caller may retry the apply/history write.
		if domainerror.IsPersistenceError(err) && output != nil {
			slog.Warn("allocation computed but not fully persisted", "user_id", userID, "error", err)
			ctx.JSON(http.StatusOK, dto.AllocationResultResponse{Result: output.Result})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to calculate allocations",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.AllocationResultResponse{Result: output.Result})
}

// Apply handles POST /allocations/apply requests.
func (c *AllocationController) Apply(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ApplyAllocationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	allocations, err := req.ToApplyAllocations()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	input := allocation.ApplyAllocationsInput{
		UserID:      userID,
		Allocations: allocations,
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Goal not found",
				Code:  string(domainerror.ErrCodeGoalNotFound),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to apply allocations",
			Code:  string(domainerror.ErrCodeGoalWriteFailed),
		})
		return
	}

	status := http.StatusOK
	if len(output.Stale) > 0 {
		// Some goals moved on after the calculation; the caller should
		// recalculate and retry those.
		status = http.StatusConflict
	}
	ctx.JSON(status, dto.ToApplyAllocationsResponse(output.Updated, output.Stale))
}

// Latest handles GET /allocations/latest requests. It serves the cached
// result of the user's most recent calculation; a miss is a 404 and the
// caller should POST /allocations/calculate.
func (c *AllocationController) Latest(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.latestUseCase.Execute(ctx.Request.Context(), allocation.GetLatestInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to read latest allocation result",
		})
		return
	}
	if output.Result == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "No allocation result cached for this user",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.AllocationResultResponse{Result: output.Result})
}

// History handles GET /allocations/history requests.
func (c *AllocationController) History(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := allocation.GetHistoryInput{
		UserID: userID,
		Limit:  parseIntQuery(ctx, "limit", defaultHistoryLimit),
		Offset: parseIntQuery(ctx, "offset", 0),
	}

	if goalIDStr := ctx.Query("goal_id"); goalIDStr != "" {
		goalID, err := uuid.Parse(goalIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid goal_id format",
			})
			return
		}
		input.GoalID = &goalID
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve allocation history",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAllocationHistoryResponse(output.History))
}

// parseIntQuery reads a non-negative integer query parameter.
func parseIntQuery(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
