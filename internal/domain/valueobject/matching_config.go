// Package valueobject contains domain value objects for the reconciliation system.
package valueobject

import "github.com/shopspring/decimal"

// ReconciliationConfig contains the configuration for bank-to-card-cycle matching.
type ReconciliationConfig struct {
	// Date window around the charge date, in calendar days
	DaysBeforeCharge int // 1
	DaysAfterCharge  int // 6

	// Amount tolerance: whichever is greater
	ToleranceRatio     decimal.Decimal // 0.01 = 1%
	MinToleranceAmount decimal.Decimal // 2 currency units
}

// DefaultReconciliationConfig returns the default matching configuration.
func DefaultReconciliationConfig() ReconciliationConfig {
	return ReconciliationConfig{
		DaysBeforeCharge:   1,
		DaysAfterCharge:    6,
		ToleranceRatio:     decimal.NewFromFloat(0.01),
		MinToleranceAmount: decimal.NewFromInt(2),
	}
}

// Tolerance returns the accepted absolute difference for an expected charge.
func (c ReconciliationConfig) Tolerance(expected decimal.Decimal) decimal.Decimal {
	return decimal.Max(expected.Mul(c.ToleranceRatio), c.MinToleranceAmount)
}

// IsWithinTolerance checks if the amount difference is within acceptable tolerance.
func (c ReconciliationConfig) IsWithinTolerance(expected, actual decimal.Decimal) bool {
	diff := actual.Sub(expected).Abs()
	return diff.LessThanOrEqual(c.Tolerance(expected))
}

// IsWithinWindow checks if a day difference (bank date minus charge date) is inside the window.
func (c ReconciliationConfig) IsWithinWindow(dayDiff int) bool {
	return dayDiff >= -c.DaysBeforeCharge && dayDiff <= c.DaysAfterCharge
}
