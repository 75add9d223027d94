// Package patternrule contains pattern rule management use cases.
package patternrule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

const (
	// MaxPatternLength is the maximum allowed length for pattern values.
	MaxPatternLength = 255
)

// RuleKey identifies a rule by type and value.
type RuleKey struct {
	Value string
	Type  entity.PatternType
}

// matches reports whether the key identifies the rule. Both parts compare case-insensitively.
func (k RuleKey) matches(rule entity.PatternRule) bool {
	return strings.EqualFold(string(rule.Type), strings.TrimSpace(string(k.Type))) &&
		strings.EqualFold(strings.TrimSpace(rule.Value), strings.TrimSpace(k.Value))
}

// loadRules reads the stored rules, treating a missing document as an empty list.
func loadRules(ctx context.Context, repo adapter.PatternRuleRepository) ([]entity.PatternRule, error) {
	rules, err := repo.ReadRules(ctx)
	switch {
	case errors.Is(err, domainerror.ErrFileNotFound):
		return []entity.PatternRule{}, nil
	case errors.Is(err, domainerror.ErrPatternStoreUnavailable):
		return nil, domainerror.NewPatternRuleError(
			domainerror.ErrCodePatternStoreUnavailable,
			"pattern store is not configured",
			err,
		)
	case err != nil:
		return nil, domainerror.NewPatternRuleError(
			domainerror.ErrCodePatternStoreFailure,
			"failed to read pattern rules",
			err,
		)
	}
	return rules, nil
}

// updateRules runs fn as one serialized read-modify-write of the stored rules.
// Pattern rule errors returned by fn reach the caller unchanged.
func updateRules(ctx context.Context, repo adapter.PatternRuleRepository, fn func([]entity.PatternRule) ([]entity.PatternRule, error)) error {
	err := repo.UpdateRules(ctx, fn)
	if err == nil {
		return nil
	}

	var ruleErr *domainerror.PatternRuleError
	switch {
	case errors.As(err, &ruleErr):
		return ruleErr
	case errors.Is(err, domainerror.ErrPatternStoreUnavailable):
		return domainerror.NewPatternRuleError(
			domainerror.ErrCodePatternStoreUnavailable,
			"pattern store is not configured",
			err,
		)
	default:
		return domainerror.NewPatternRuleError(
			domainerror.ErrCodePatternStoreFailure,
			"failed to update pattern rules",
			err,
		)
	}
}

// validateRule checks the value and type of a rule before it is stored.
func validateRule(value string, patternType entity.PatternType) error {
	if strings.TrimSpace(value) == "" {
		return domainerror.NewPatternRuleError(
			domainerror.ErrCodeMissingRuleFields,
			"value is required",
			domainerror.ErrPatternRuleMissingFields,
		)
	}

	if len(value) > MaxPatternLength {
		return domainerror.NewPatternRuleError(
			domainerror.ErrCodePatternTooLong,
			fmt.Sprintf("value must not exceed %d characters", MaxPatternLength),
			domainerror.ErrPatternTooLong,
		)
	}

	if !patternType.IsValid() {
		return domainerror.NewPatternRuleError(
			domainerror.ErrCodeInvalidPatternType,
			"type must be 'contains' or 'regex'",
			domainerror.ErrInvalidPatternType,
		)
	}

	rule := entity.PatternRule{Value: value, Type: patternType, Active: true}
	if _, err := rule.Compile(); err != nil {
		return domainerror.NewPatternRuleError(
			domainerror.ErrCodeInvalidPattern,
			"invalid regex pattern: "+err.Error(),
			domainerror.ErrInvalidPattern,
		)
	}

	return nil
}

func findRule(rules []entity.PatternRule, key RuleKey) int {
	for i, r := range rules {
		if key.matches(r) {
			return i
		}
	}
	return -1
}

func notFound() error {
	return domainerror.NewPatternRuleError(
		domainerror.ErrCodePatternRuleNotFound,
		"pattern rule not found",
		domainerror.ErrPatternRuleNotFound,
	)
}
