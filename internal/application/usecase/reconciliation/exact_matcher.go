package reconciliation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

// exactCandidate is a possible single-cycle payoff for a bank line.
type exactCandidate struct {
	line           int
	cycle          int
	lineID         string
	cycleKey       string
	diff           decimal.Decimal
	dayDistance    int
	patternMatched bool
}

// MatchExact links bank expense lines one-to-one to per-card billing cycles.
//
// Every (line, cycle) pair inside the date window and amount tolerance becomes
// a candidate. Candidates are claimed greedily: pattern-confirmed pairs first,
// then the smallest amount difference. The result is not a global optimum; a
// minimum-cost bipartite assignment over the same candidates could replace
// assignExact without changing this function's contract.
//
// The inputs are not modified.
func MatchExact(
	lines []entity.TransactionLine,
	cycles []entity.BillingCycle,
	rules []*entity.CompiledPatternRule,
	config valueobject.ReconciliationConfig,
) ([]entity.TransactionLine, []entity.BillingCycle) {
	outLines := entity.CloneLines(lines)
	outCycles := entity.CloneCycles(cycles)
	if len(outCycles) == 0 {
		return outLines, outCycles
	}

	for i := range outCycles {
		outCycles[i].BankMatchStatus = entity.BankMatchNone
		outCycles[i].BankMatchedAmount = decimal.Zero
		outCycles[i].BankMatchedIDs = nil
	}

	candidates := collectExactCandidates(outLines, outCycles, rules, config)
	for _, c := range assignExact(candidates) {
		line := &outLines[c.line]
		cycle := &outCycles[c.cycle]

		line.Classification = entity.ClassificationPayoff
		line.Neutral = true
		line.RelatedTransactionIDs = append([]string(nil), cycle.TransactionIDs...)
		line.MatchedCardLast4 = cycle.CardLast4
		line.MatchedCycleKeys = []string{cycle.Key}
		if c.patternMatched {
			line.MatchReason = entity.MatchReasonPatternAmount
		} else {
			line.MatchReason = entity.MatchReasonAmount
		}

		cycle.BankMatchedAmount = cycle.BankMatchedAmount.Add(line.Amount.Abs())
		cycle.BankMatchedIDs = append(cycle.BankMatchedIDs, line.ID)
	}

	for i := range outCycles {
		settleExactStatus(&outCycles[i], config)
	}

	return outLines, outCycles
}

// collectExactCandidates builds every (bank line, per-card cycle) pair within window and tolerance.
func collectExactCandidates(
	lines []entity.TransactionLine,
	cycles []entity.BillingCycle,
	rules []*entity.CompiledPatternRule,
	config valueobject.ReconciliationConfig,
) []exactCandidate {
	var candidates []exactCandidate

	for li := range lines {
		line := &lines[li]
		if !line.IsPlainBankExpense() {
			continue
		}

		amount := line.Amount.Abs()
		patternMatched := entity.MatchesAny(rules, line.Description)

		for ci := range cycles {
			cycle := &cycles[ci]
			if !cycle.IsMatchTarget() {
				continue
			}

			days := dayDiff(cycle.ChargeDate, line.Date)
			if !config.IsWithinWindow(days) {
				continue
			}

			net := cycle.NetCharge()
			diff := amount.Sub(net).Abs()
			if diff.GreaterThan(config.Tolerance(net)) {
				continue
			}

			if days < 0 {
				days = -days
			}
			candidates = append(candidates, exactCandidate{
				line:           li,
				cycle:          ci,
				lineID:         line.ID,
				cycleKey:       cycle.Key,
				diff:           diff,
				dayDistance:    days,
				patternMatched: patternMatched,
			})
		}
	}

	return candidates
}

// assignExact sorts candidates and claims them greedily so that each line and
// each cycle is used at most once.
func assignExact(candidates []exactCandidate) []exactCandidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.patternMatched != b.patternMatched {
			return a.patternMatched
		}
		if cmp := a.diff.Cmp(b.diff); cmp != 0 {
			return cmp < 0
		}
		if a.dayDistance != b.dayDistance {
			return a.dayDistance < b.dayDistance
		}
		if a.lineID != b.lineID {
			return a.lineID < b.lineID
		}
		return a.cycleKey < b.cycleKey
	})

	usedLines := make(map[int]bool)
	usedCycles := make(map[int]bool)
	var committed []exactCandidate

	for _, c := range candidates {
		if usedLines[c.line] || usedCycles[c.cycle] {
			continue
		}
		usedLines[c.line] = true
		usedCycles[c.cycle] = true
		committed = append(committed, c)
	}

	return committed
}

// settleExactStatus derives a cycle's bank match status from what was assigned to it.
// Partial matches are never reported: an out-of-tolerance aggregate stays none.
func settleExactStatus(cycle *entity.BillingCycle, config valueobject.ReconciliationConfig) {
	switch {
	case cycle.IsCombined:
		cycle.BankMatchStatus = entity.BankMatchNone
		cycle.BankMatchedAmount = decimal.Zero
		cycle.BankMatchedIDs = nil
	case len(cycle.BankMatchedIDs) == 0:
		cycle.BankMatchStatus = entity.BankMatchNone
	case !config.IsWithinTolerance(cycle.NetCharge(), cycle.BankMatchedAmount):
		cycle.BankMatchStatus = entity.BankMatchNone
	case len(cycle.BankMatchedIDs) > 1:
		cycle.BankMatchStatus = entity.BankMatchMulti
	default:
		cycle.BankMatchStatus = entity.BankMatchFull
	}
}
