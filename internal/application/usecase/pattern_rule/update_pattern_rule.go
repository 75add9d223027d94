package patternrule

import (
	"context"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

// SetPatternRuleActiveInput represents the input for enabling or disabling a rule.
type SetPatternRuleActiveInput struct {
	Key    RuleKey
	Active bool
}

// SetPatternRuleActiveUseCase handles toggling a rule without deleting it.
type SetPatternRuleActiveUseCase struct {
	ruleRepo adapter.PatternRuleRepository
}

// NewSetPatternRuleActiveUseCase creates a new SetPatternRuleActiveUseCase instance.
func NewSetPatternRuleActiveUseCase(ruleRepo adapter.PatternRuleRepository) *SetPatternRuleActiveUseCase {
	return &SetPatternRuleActiveUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute updates the active flag of the identified rule.
func (uc *SetPatternRuleActiveUseCase) Execute(ctx context.Context, input SetPatternRuleActiveInput) (*entity.PatternRule, error) {
	var rule entity.PatternRule
	err := updateRules(ctx, uc.ruleRepo, func(rules []entity.PatternRule) ([]entity.PatternRule, error) {
		idx := findRule(rules, input.Key)
		if idx < 0 {
			return nil, notFound()
		}

		if rules[idx].Active == input.Active {
			rule = rules[idx]
			return nil, domainerror.ErrPatternRulesUnchanged
		}
		rules[idx].Active = input.Active
		rule = rules[idx]
		return rules, nil
	})
	if err != nil {
		return nil, err
	}

	return &rule, nil
}
