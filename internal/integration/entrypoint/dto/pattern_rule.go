package dto

import (
	patternrule "github.com/rachellllllllll/CreditCanvas-sub001/internal/application/usecase/pattern_rule"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

// CreatePatternRuleRequest represents the request body for pattern rule creation.
type CreatePatternRuleRequest struct {
	Value  string `json:"value" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Active *bool  `json:"active,omitempty"`
}

// SetPatternRuleActiveRequest represents the request body for enabling or disabling a rule.
type SetPatternRuleActiveRequest struct {
	Value  string `json:"value" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}

// TestPatternRequest represents the request body for pattern testing.
type TestPatternRequest struct {
	Value        string   `json:"value" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Descriptions []string `json:"descriptions" binding:"required"`
}

// PatternRuleResponse represents a single pattern rule in API responses.
type PatternRuleResponse struct {
	Value  string `json:"value"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

// PatternRuleListResponse represents the response for listing pattern rules.
type PatternRuleListResponse struct {
	Rules []PatternRuleResponse `json:"rules"`
}

// CreatePatternRuleResponse represents the response for pattern rule creation.
type CreatePatternRuleResponse struct {
	Rule       PatternRuleResponse `json:"rule"`
	TotalRules int                 `json:"total_rules"`
}

// TestPatternResponse represents the response for pattern testing.
type TestPatternResponse struct {
	Matching   []string `json:"matching"`
	MatchCount int      `json:"match_count"`
}

// Key returns the rule key identified by the request.
func (r SetPatternRuleActiveRequest) Key() patternrule.RuleKey {
	return patternrule.RuleKey{Value: r.Value, Type: entity.PatternType(r.Type)}
}

// ToPatternRuleResponse converts a domain PatternRule to a PatternRuleResponse DTO.
func ToPatternRuleResponse(rule entity.PatternRule) PatternRuleResponse {
	return PatternRuleResponse{
		Value:  rule.Value,
		Type:   string(rule.Type),
		Active: rule.Active,
	}
}

// ToPatternRuleListResponse converts domain rules to a list response.
func ToPatternRuleListResponse(rules []entity.PatternRule) PatternRuleListResponse {
	items := make([]PatternRuleResponse, len(rules))
	for i, r := range rules {
		items[i] = ToPatternRuleResponse(r)
	}
	return PatternRuleListResponse{Rules: items}
}
