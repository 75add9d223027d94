package patternrule

import (
	"context"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

// ListPatternRulesOutput represents the stored pattern rules.
type ListPatternRulesOutput struct {
	Rules []entity.PatternRule
}

// ListPatternRulesUseCase handles listing pattern rules.
type ListPatternRulesUseCase struct {
	ruleRepo adapter.PatternRuleRepository
}

// NewListPatternRulesUseCase creates a new ListPatternRulesUseCase instance.
func NewListPatternRulesUseCase(ruleRepo adapter.PatternRuleRepository) *ListPatternRulesUseCase {
	return &ListPatternRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute lists every stored rule, active or not.
func (uc *ListPatternRulesUseCase) Execute(ctx context.Context) (*ListPatternRulesOutput, error) {
	rules, err := loadRules(ctx, uc.ruleRepo)
	if err != nil {
		return nil, err
	}
	return &ListPatternRulesOutput{Rules: rules}, nil
}
