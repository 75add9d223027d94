package error

import "errors"

// Reconciliation domain errors.
var (
	// ErrInvalidTransactionLine is returned when an incoming line cannot be interpreted.
	ErrInvalidTransactionLine = errors.New("invalid transaction line")

	// ErrInvalidReconciliationConfig is returned when config overrides are out of range.
	ErrInvalidReconciliationConfig = errors.New("invalid reconciliation config")

	// ErrNoTransactionLines is returned when a reconciliation request carries no lines.
	ErrNoTransactionLines = errors.New("no transaction lines provided")
)

// ReconciliationErrorCode defines error codes for reconciliation errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type ReconciliationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionLine ReconciliationErrorCode = "REC-010001"
	ErrCodeInvalidConfig          ReconciliationErrorCode = "REC-010002"
	ErrCodeNoTransactionLines     ReconciliationErrorCode = "REC-010003"

	// Persistence errors (02XXXX)
	ErrCodeRunHistoryFailure ReconciliationErrorCode = "REC-020001"
)

// ReconciliationError represents a reconciliation error with code and message.
type ReconciliationError struct {
	Code    ReconciliationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReconciliationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// NewReconciliationError creates a new ReconciliationError with the given code and message.
func NewReconciliationError(code ReconciliationErrorCode, message string, err error) *ReconciliationError {
	return &ReconciliationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
