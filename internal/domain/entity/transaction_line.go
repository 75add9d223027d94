// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// LineSource identifies where a transaction line was parsed from.
type LineSource string

const (
	LineSourceBank LineSource = "bank"
	LineSourceCard LineSource = "card"
)

// LineDirection represents the direction of a transaction line (expense or income).
type LineDirection string

const (
	LineDirectionExpense LineDirection = "expense"
	LineDirectionIncome  LineDirection = "income"
)

// LineClassification tags how a line is treated by totals.
type LineClassification string

const (
	ClassificationExpense        LineClassification = "expense"
	ClassificationPayoff         LineClassification = "credit_charge_payoff"
	ClassificationCombinedPayoff LineClassification = "credit_charge_combined_payoff"
	ClassificationExcluded       LineClassification = "excluded"
)

// IsInput reports whether callers may supply the classification.
// Payoff classifications are only ever assigned by reconciliation.
func (c LineClassification) IsInput() bool {
	return c == "" || c == ClassificationExpense || c == ClassificationExcluded
}

// IsPayoff reports whether the classification marks a card payoff.
func (c LineClassification) IsPayoff() bool {
	return c == ClassificationPayoff || c == ClassificationCombinedPayoff
}

// Match reasons recorded on payoff lines.
const (
	MatchReasonPatternAmount  = "pattern+amount"
	MatchReasonAmount         = "amount"
	matchReasonCombinedPrefix = "combined_"
)

// TransactionLine represents a single parsed bank or card movement.
type TransactionLine struct {
	ID          string
	Source      LineSource
	Date        time.Time
	ChargeDate  *time.Time // Card billing date; nil falls back to Date
	Amount      decimal.Decimal
	Direction   LineDirection
	Description string
	CardLast4   string // Only set for card lines

	Classification        LineClassification
	Neutral               bool // Excluded from expense/income totals
	RelatedTransactionIDs []string
	MatchReason           string
	MatchedCardLast4      string
	MatchedCycleKeys      []string
	ComboSize             int
	ComboChargeDate       *time.Time
}

// CombinedMatchReason returns the match reason for a combination of n cycles.
func CombinedMatchReason(n int) string {
	return matchReasonCombinedPrefix + strconv.Itoa(n)
}

// EffectiveChargeDate returns the charge date of a card line, falling back to its transaction date.
func (l *TransactionLine) EffectiveChargeDate() time.Time {
	if l.ChargeDate != nil && !l.ChargeDate.IsZero() {
		return *l.ChargeDate
	}
	return l.Date
}

// IsBankExpense reports whether the line is a bank debit.
func (l *TransactionLine) IsBankExpense() bool {
	return l.Source == LineSourceBank && l.Direction == LineDirectionExpense
}

// IsPlainBankExpense reports whether the line is a bank debit not yet classified as anything else.
func (l *TransactionLine) IsPlainBankExpense() bool {
	if !l.IsBankExpense() {
		return false
	}
	return l.Classification == "" || l.Classification == ClassificationExpense
}

// Clone returns a deep copy of the line.
func (l TransactionLine) Clone() TransactionLine {
	out := l
	if l.ChargeDate != nil {
		d := *l.ChargeDate
		out.ChargeDate = &d
	}
	if l.ComboChargeDate != nil {
		d := *l.ComboChargeDate
		out.ComboChargeDate = &d
	}
	out.RelatedTransactionIDs = append([]string(nil), l.RelatedTransactionIDs...)
	out.MatchedCycleKeys = append([]string(nil), l.MatchedCycleKeys...)
	return out
}

// CloneLines returns a deep copy of a slice of lines.
func CloneLines(lines []TransactionLine) []TransactionLine {
	if lines == nil {
		return nil
	}
	out := make([]TransactionLine, len(lines))
	for i := range lines {
		out[i] = lines[i].Clone()
	}
	return out
}
