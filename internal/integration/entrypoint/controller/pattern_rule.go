package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	patternrule "github.com/rachellllllllll/CreditCanvas-sub001/internal/application/usecase/pattern_rule"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/entrypoint/dto"
)

// PatternRuleController handles pattern rule endpoints.
type PatternRuleController struct {
	listUseCase      *patternrule.ListPatternRulesUseCase
	createUseCase    *patternrule.CreatePatternRuleUseCase
	setActiveUseCase *patternrule.SetPatternRuleActiveUseCase
	deleteUseCase    *patternrule.DeletePatternRuleUseCase
	testUseCase      *patternrule.TestPatternUseCase
}

// NewPatternRuleController creates a new pattern rule controller instance.
func NewPatternRuleController(
	listUseCase *patternrule.ListPatternRulesUseCase,
	createUseCase *patternrule.CreatePatternRuleUseCase,
	setActiveUseCase *patternrule.SetPatternRuleActiveUseCase,
	deleteUseCase *patternrule.DeletePatternRuleUseCase,
	testUseCase *patternrule.TestPatternUseCase,
) *PatternRuleController {
	return &PatternRuleController{
		listUseCase:      listUseCase,
		createUseCase:    createUseCase,
		setActiveUseCase: setActiveUseCase,
		deleteUseCase:    deleteUseCase,
		testUseCase:      testUseCase,
	}
}

// List handles GET /pattern-rules requests.
func (c *PatternRuleController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handlePatternRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPatternRuleListResponse(output.Rules))
}

// Create handles POST /pattern-rules requests.
func (c *PatternRuleController) Create(ctx *gin.Context) {
	var req dto.CreatePatternRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), patternrule.CreatePatternRuleInput{
		Value:  req.Value,
		Type:   entity.PatternType(req.Type),
		Active: req.Active,
	})
	if err != nil {
		c.handlePatternRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreatePatternRuleResponse{
		Rule:       dto.ToPatternRuleResponse(output.Rule),
		TotalRules: output.TotalRules,
	})
}

// SetActive handles PATCH /pattern-rules requests.
func (c *PatternRuleController) SetActive(ctx *gin.Context) {
	var req dto.SetPatternRuleActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	rule, err := c.setActiveUseCase.Execute(ctx.Request.Context(), patternrule.SetPatternRuleActiveInput{
		Key:    req.Key(),
		Active: *req.Active,
	})
	if err != nil {
		c.handlePatternRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPatternRuleResponse(*rule))
}

// Delete handles DELETE /pattern-rules?value=...&type=... requests.
func (c *PatternRuleController) Delete(ctx *gin.Context) {
	value := ctx.Query("value")
	patternType := ctx.Query("type")
	if value == "" || patternType == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "value and type query parameters are required",
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	key := patternrule.RuleKey{Value: value, Type: entity.PatternType(patternType)}
	if err := c.deleteUseCase.Execute(ctx.Request.Context(), key); err != nil {
		c.handlePatternRuleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Test handles POST /pattern-rules/test requests.
func (c *PatternRuleController) Test(ctx *gin.Context) {
	var req dto.TestPatternRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	output, err := c.testUseCase.Execute(ctx.Request.Context(), patternrule.TestPatternInput{
		Value:        req.Value,
		Type:         entity.PatternType(req.Type),
		Descriptions: req.Descriptions,
	})
	if err != nil {
		c.handlePatternRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TestPatternResponse{
		Matching:   output.Matching,
		MatchCount: output.MatchCount,
	})
}

// handlePatternRuleError maps pattern rule errors to HTTP responses.
func (c *PatternRuleController) handlePatternRuleError(ctx *gin.Context, err error) {
	var ruleErr *domainerror.PatternRuleError
	if errors.As(err, &ruleErr) {
		statusCode := c.getStatusCodeForPatternRuleError(ruleErr.Code)
		if statusCode >= http.StatusInternalServerError {
			slog.Error("Pattern rule operation failed", "code", ruleErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: ruleErr.Message,
			Code:  string(ruleErr.Code),
		})
		return
	}

	slog.Error("Pattern rule operation failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForPatternRuleError maps pattern rule error codes to HTTP status codes.
func (c *PatternRuleController) getStatusCodeForPatternRuleError(code domainerror.PatternRuleErrorCode) int {
	switch code {
	case domainerror.ErrCodePatternRuleNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodePatternRuleExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidPattern,
		domainerror.ErrCodeInvalidPatternType,
		domainerror.ErrCodePatternTooLong,
		domainerror.ErrCodeMissingRuleFields:
		return http.StatusBadRequest
	case domainerror.ErrCodePatternStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
