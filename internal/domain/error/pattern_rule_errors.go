// Package error defines domain-specific errors for the reconciliation service.
package error

import "errors"

// PatternRule domain errors.
var (
	// ErrPatternRuleNotFound is returned when a pattern rule is not found in the rules document.
	ErrPatternRuleNotFound = errors.New("pattern rule not found")

	// ErrPatternRuleExists is returned when attempting to create a rule that already exists.
	ErrPatternRuleExists = errors.New("pattern rule already exists")

	// ErrInvalidPattern is returned when a regex pattern does not compile.
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrInvalidPatternType is returned when the rule type is neither contains nor regex.
	ErrInvalidPatternType = errors.New("invalid pattern type")

	// ErrPatternTooLong is returned when the pattern exceeds the maximum length.
	ErrPatternTooLong = errors.New("pattern too long")

	// ErrPatternRuleMissingFields is returned when required fields are missing.
	ErrPatternRuleMissingFields = errors.New("missing required fields")

	// ErrPatternStoreUnavailable is returned when no directory is configured for pattern rules.
	ErrPatternStoreUnavailable = errors.New("pattern store unavailable")

	// ErrPatternRulesUnchanged is returned by an update function to skip the write.
	ErrPatternRulesUnchanged = errors.New("pattern rules unchanged")
)

// PatternRuleErrorCode defines error codes for pattern rule errors.
// Format: PTR-XXYYYY where XX is category and YYYY is specific error.
type PatternRuleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodePatternRuleNotFound PatternRuleErrorCode = "PTR-010001"
	ErrCodePatternRuleExists   PatternRuleErrorCode = "PTR-010002"
	ErrCodeInvalidPattern      PatternRuleErrorCode = "PTR-010003"
	ErrCodeInvalidPatternType  PatternRuleErrorCode = "PTR-010004"
	ErrCodePatternTooLong      PatternRuleErrorCode = "PTR-010005"
	ErrCodeMissingRuleFields   PatternRuleErrorCode = "PTR-010006"

	// Storage errors (02XXXX)
	ErrCodePatternStoreUnavailable PatternRuleErrorCode = "PTR-020001"
	ErrCodePatternStoreFailure     PatternRuleErrorCode = "PTR-020002"
)

// PatternRuleError represents a pattern rule error with code and message.
type PatternRuleError struct {
	Code    PatternRuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PatternRuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PatternRuleError) Unwrap() error {
	return e.Err
}

// NewPatternRuleError creates a new PatternRuleError with the given code and message.
func NewPatternRuleError(code PatternRuleErrorCode, message string, err error) *PatternRuleError {
	return &PatternRuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
