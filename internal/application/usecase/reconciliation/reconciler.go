package reconciliation

import (
	"context"
	"log/slog"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

// Result is the fully reconciled state of one run.
type Result struct {
	Lines  []entity.TransactionLine
	Cycles []entity.BillingCycle
}

// Reconciler runs the credit charge reconciliation pipeline:
// cycle aggregation, exact matching, then combined matching.
type Reconciler struct {
	patterns *PatternStore
}

// NewReconciler creates a new Reconciler instance.
// A nil pattern store reconciles on amounts only.
func NewReconciler(patterns *PatternStore) *Reconciler {
	return &Reconciler{
		patterns: patterns,
	}
}

// Reconcile links bank payoff lines to the card cycles they settle.
// Payoff fields left on the input lines by an earlier run are recomputed.
// Without card lines there is nothing to settle and every line comes back as
// a plain, non-neutral line. The input slice is not modified.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	lines []entity.TransactionLine,
	config valueobject.ReconciliationConfig,
) Result {
	fresh := resetDerived(lines)
	cycles := AggregateCycles(fresh)
	if len(cycles) == 0 {
		return Result{Lines: fresh}
	}

	var rules []*entity.CompiledPatternRule
	if r.patterns != nil {
		rules = r.patterns.Load(ctx)
	}

	exactLines, exactCycles := MatchExact(fresh, cycles, rules, config)
	finalLines, finalCycles := MatchCombined(exactLines, exactCycles, config)

	summary := Summarize(finalLines, finalCycles)
	slog.Info("Credit charge reconciliation completed",
		"lines", len(finalLines),
		"cycles", len(finalCycles),
		"pattern_rules", len(rules),
		"exact_matches", summary.ExactMatches,
		"combined_matches", summary.CombinedMatches,
	)

	return Result{Lines: finalLines, Cycles: finalCycles}
}

// resetDerived copies the lines and clears payoff fields so every run starts from scratch.
func resetDerived(lines []entity.TransactionLine) []entity.TransactionLine {
	out := entity.CloneLines(lines)
	for i := range out {
		l := &out[i]
		if l.Classification == "" || l.Classification.IsPayoff() {
			l.Classification = entity.ClassificationExpense
		}
		l.Neutral = false
		l.RelatedTransactionIDs = nil
		l.MatchReason = ""
		l.MatchedCardLast4 = ""
		l.MatchedCycleKeys = nil
		l.ComboSize = 0
		l.ComboChargeDate = nil
	}
	return out
}
