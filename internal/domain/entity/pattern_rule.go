package entity

import (
	"regexp"
	"strings"
)

// PatternType represents how a pattern rule value is interpreted.
type PatternType string

const (
	PatternTypeContains PatternType = "contains"
	PatternTypeRegex    PatternType = "regex"
)

// IsValid reports whether the pattern type is known.
func (t PatternType) IsValid() bool {
	return t == PatternTypeContains || t == PatternTypeRegex
}

// PatternRule recognises card payoff descriptions on bank lines.
// Rules only break ties between amount matches; they never match on their own.
type PatternRule struct {
	Value  string      `json:"value"`
	Type   PatternType `json:"type"`
	Active bool        `json:"active"`
}

// Compile builds a case-insensitive matcher for the rule.
func (r PatternRule) Compile() (*CompiledPatternRule, error) {
	expr := r.Value
	if r.Type == PatternTypeContains {
		expr = regexp.QuoteMeta(strings.TrimSpace(r.Value))
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, err
	}
	return &CompiledPatternRule{Rule: r, re: re}, nil
}

// CompiledPatternRule is a pattern rule ready for matching.
type CompiledPatternRule struct {
	Rule PatternRule
	re   *regexp.Regexp
}

// Matches reports whether the description matches the rule.
func (c *CompiledPatternRule) Matches(description string) bool {
	return c.re.MatchString(description)
}

// MatchesAny reports whether any of the rules matches the description.
func MatchesAny(rules []*CompiledPatternRule, description string) bool {
	for _, r := range rules {
		if r.Matches(description) {
			return true
		}
	}
	return false
}
