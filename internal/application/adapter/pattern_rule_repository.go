package adapter

import (
	"context"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

// PatternRuleRepository defines the interface for pattern rule persistence operations.
type PatternRuleRepository interface {
	// ReadRules retrieves every stored rule, active or not, in stored order.
	ReadRules(ctx context.Context) ([]entity.PatternRule, error)

	// UpdateRules applies fn to the stored rules and saves its result.
	// Concurrent updates are serialized so none is lost. A missing document
	// reaches fn as an empty list; returning domainerror.ErrPatternRulesUnchanged
	// skips the write and reports success.
	UpdateRules(ctx context.Context, fn func(rules []entity.PatternRule) ([]entity.PatternRule, error)) error
}
