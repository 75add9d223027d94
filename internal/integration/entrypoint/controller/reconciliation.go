package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/usecase/reconciliation"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/entrypoint/dto"
)

// ReconciliationController handles reconciliation endpoints.
type ReconciliationController struct {
	runUseCase      *reconciliation.RunReconciliationUseCase
	listRunsUseCase *reconciliation.ListRunsUseCase
	defaults        valueobject.ReconciliationConfig
	recordRuns      bool
}

// NewReconciliationController creates a new reconciliation controller instance.
// listRunsUseCase may be nil when no run history is configured.
func NewReconciliationController(
	runUseCase *reconciliation.RunReconciliationUseCase,
	listRunsUseCase *reconciliation.ListRunsUseCase,
	defaults valueobject.ReconciliationConfig,
	recordRuns bool,
) *ReconciliationController {
	return &ReconciliationController{
		runUseCase:      runUseCase,
		listRunsUseCase: listRunsUseCase,
		defaults:        defaults,
		recordRuns:      recordRuns,
	}
}

// Run handles POST /reconciliation requests.
func (c *ReconciliationController) Run(ctx *gin.Context) {
	var req dto.RunReconciliationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidTransactionLine),
			Details: err.Error(),
		})
		return
	}

	config := req.Config.ApplyTo(c.defaults)
	input := reconciliation.RunReconciliationInput{
		Lines:  req.ToLines(),
		Config: &config,
		Record: c.recordRuns,
	}

	output, err := c.runUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReconciliationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRunReconciliationResponse(output))
}

// ListRuns handles GET /reconciliation/runs requests.
func (c *ReconciliationController) ListRuns(ctx *gin.Context) {
	if c.listRunsUseCase == nil {
		ctx.JSON(http.StatusOK, dto.ReconciliationRunListResponse{Runs: []dto.ReconciliationRunResponse{}})
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	output, err := c.listRunsUseCase.Execute(ctx.Request.Context(), reconciliation.ListRunsInput{Limit: limit})
	if err != nil {
		slog.Error("Failed to list reconciliation runs", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve reconciliation runs",
			Code:  string(domainerror.ErrCodeRunHistoryFailure),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReconciliationRunListResponse(output.Runs))
}

// handleReconciliationError maps reconciliation errors to HTTP responses.
func (c *ReconciliationController) handleReconciliationError(ctx *gin.Context, err error) {
	var recErr *domainerror.ReconciliationError
	if errors.As(err, &recErr) {
		ctx.JSON(c.getStatusCodeForReconciliationError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	slog.Error("Reconciliation failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForReconciliationError maps reconciliation error codes to HTTP status codes.
func (c *ReconciliationController) getStatusCodeForReconciliationError(code domainerror.ReconciliationErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTransactionLine,
		domainerror.ErrCodeInvalidConfig,
		domainerror.ErrCodeNoTransactionLines:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
