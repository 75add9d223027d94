package valueobject

import (
	"github.com/shopspring/decimal"
)

// ReconciliationSummary contains counts from a reconciliation run.
type ReconciliationSummary struct {
	ExactMatches          int
	CombinedMatches       int
	NeutralLines          int
	MatchedCycles         int
	UnmatchedCycles       int
	UnmatchedBankExpenses int
}

// LineTotals contains expense and income sums over non-neutral lines.
type LineTotals struct {
	Expenses        decimal.Decimal
	Income          decimal.Decimal
	Net             decimal.Decimal
	ExcludedNeutral decimal.Decimal // Sum of neutral lines left out of Expenses/Income
}
