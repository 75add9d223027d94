package patternrule

import (
	"context"
	"log/slog"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

// DeletePatternRuleUseCase handles pattern rule deletion.
type DeletePatternRuleUseCase struct {
	ruleRepo adapter.PatternRuleRepository
}

// NewDeletePatternRuleUseCase creates a new DeletePatternRuleUseCase instance.
func NewDeletePatternRuleUseCase(ruleRepo adapter.PatternRuleRepository) *DeletePatternRuleUseCase {
	return &DeletePatternRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute removes the identified rule.
func (uc *DeletePatternRuleUseCase) Execute(ctx context.Context, key RuleKey) error {
	err := updateRules(ctx, uc.ruleRepo, func(rules []entity.PatternRule) ([]entity.PatternRule, error) {
		idx := findRule(rules, key)
		if idx < 0 {
			return nil, notFound()
		}
		return append(rules[:idx], rules[idx+1:]...), nil
	})
	if err != nil {
		return err
	}

	slog.Info("Pattern rule deleted", "type", key.Type, "value", key.Value)
	return nil
}
