package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

// Summarize counts the outcome of a reconciliation run.
func Summarize(lines []entity.TransactionLine, cycles []entity.BillingCycle) valueobject.ReconciliationSummary {
	var s valueobject.ReconciliationSummary

	for i := range lines {
		l := &lines[i]
		switch l.Classification {
		case entity.ClassificationPayoff:
			s.ExactMatches++
		case entity.ClassificationCombinedPayoff:
			s.CombinedMatches++
		}
		if l.Neutral {
			s.NeutralLines++
		}
		if l.IsPlainBankExpense() {
			s.UnmatchedBankExpenses++
		}
	}

	for i := range cycles {
		c := &cycles[i]
		if !c.IsMatchTarget() {
			continue
		}
		if c.BankMatchStatus == entity.BankMatchNone {
			s.UnmatchedCycles++
		} else {
			s.MatchedCycles++
		}
	}

	return s
}

// ComputeTotals sums expense and income over lines, leaving out neutral lines
// so a settled card cycle is never counted twice.
func ComputeTotals(lines []entity.TransactionLine) valueobject.LineTotals {
	totals := valueobject.LineTotals{
		Expenses:        decimal.Zero,
		Income:          decimal.Zero,
		ExcludedNeutral: decimal.Zero,
	}

	for i := range lines {
		l := &lines[i]
		amount := l.Amount.Abs()
		if l.Neutral {
			totals.ExcludedNeutral = totals.ExcludedNeutral.Add(amount)
			continue
		}
		if l.Classification == entity.ClassificationExcluded {
			continue
		}
		if l.Direction == entity.LineDirectionIncome {
			totals.Income = totals.Income.Add(amount)
		} else {
			totals.Expenses = totals.Expenses.Add(amount)
		}
	}

	totals.Net = totals.Income.Sub(totals.Expenses)
	return totals
}
