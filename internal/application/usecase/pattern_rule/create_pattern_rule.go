package patternrule

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

// CreatePatternRuleInput represents the input for pattern rule creation.
type CreatePatternRuleInput struct {
	Value  string
	Type   entity.PatternType
	Active *bool // Optional, defaults to true
}

// CreatePatternRuleOutput represents the output of pattern rule creation.
type CreatePatternRuleOutput struct {
	Rule       entity.PatternRule
	TotalRules int
}

// CreatePatternRuleUseCase handles pattern rule creation logic.
type CreatePatternRuleUseCase struct {
	ruleRepo adapter.PatternRuleRepository
}

// NewCreatePatternRuleUseCase creates a new CreatePatternRuleUseCase instance.
func NewCreatePatternRuleUseCase(ruleRepo adapter.PatternRuleRepository) *CreatePatternRuleUseCase {
	return &CreatePatternRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the pattern rule creation.
func (uc *CreatePatternRuleUseCase) Execute(ctx context.Context, input CreatePatternRuleInput) (*CreatePatternRuleOutput, error) {
	value := strings.TrimSpace(input.Value)
	patternType := entity.PatternType(strings.ToLower(string(input.Type)))

	if err := validateRule(value, patternType); err != nil {
		return nil, err
	}

	rule := entity.PatternRule{
		Value:  value,
		Type:   patternType,
		Active: input.Active == nil || *input.Active,
	}

	var total int
	err := updateRules(ctx, uc.ruleRepo, func(rules []entity.PatternRule) ([]entity.PatternRule, error) {
		if findRule(rules, RuleKey{Value: value, Type: patternType}) >= 0 {
			return nil, domainerror.NewPatternRuleError(
				domainerror.ErrCodePatternRuleExists,
				"a rule with this value and type already exists",
				domainerror.ErrPatternRuleExists,
			)
		}
		rules = append(rules, rule)
		total = len(rules)
		return rules, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Pattern rule created", "type", rule.Type, "value", rule.Value)

	return &CreatePatternRuleOutput{
		Rule:       rule,
		TotalRules: total,
	}, nil
}
