package reconciliation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

const (
	minComboSize = 2
	maxComboSize = 4
)

// dateGroup holds the indexes of eligible cycles sharing a charge date.
type dateGroup struct {
	chargeDate time.Time
	cycles     []int
}

// MatchCombined links bank expense lines that are still unclassified to a
// combination of 2 to 4 unmatched per-card cycles sharing one charge date.
//
// For every in-window charge date, combinations of 4 cycles are tried first,
// then 3, then 2; the first combination whose net total is within tolerance
// wins. Lines are processed in input order and a cycle, once grouped, is not
// offered to later lines.
//
// The inputs are not modified.
func MatchCombined(
	lines []entity.TransactionLine,
	cycles []entity.BillingCycle,
	config valueobject.ReconciliationConfig,
) ([]entity.TransactionLine, []entity.BillingCycle) {
	outLines := entity.CloneLines(lines)
	outCycles := entity.CloneCycles(cycles)
	if len(outCycles) == 0 {
		return outLines, outCycles
	}

	for li := range outLines {
		line := &outLines[li]
		if !line.IsPlainBankExpense() {
			continue
		}

		amount := line.Amount.Abs()
		for _, group := range eligibleByDate(outCycles) {
			if !config.IsWithinWindow(dayDiff(group.chargeDate, line.Date)) {
				continue
			}

			combo := findCombination(outCycles, group.cycles, amount, config)
			if combo == nil {
				continue
			}

			applyCombinedMatch(line, outCycles, combo, group.chargeDate)
			break
		}
	}

	return outLines, outCycles
}

// eligibleByDate groups unmatched per-card cycles by charge date, oldest first.
func eligibleByDate(cycles []entity.BillingCycle) []dateGroup {
	byDate := make(map[string]*dateGroup)
	var groups []*dateGroup

	for i := range cycles {
		c := &cycles[i]
		if !c.IsMatchTarget() || c.BankMatchStatus != entity.BankMatchNone {
			continue
		}
		day := c.ChargeDate.Format(entity.CycleDateLayout)
		g, ok := byDate[day]
		if !ok {
			g = &dateGroup{chargeDate: c.ChargeDate}
			byDate[day] = g
			groups = append(groups, g)
		}
		g.cycles = append(g.cycles, i)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].chargeDate.Before(groups[j].chargeDate)
	})

	result := make([]dateGroup, len(groups))
	for i, g := range groups {
		result[i] = *g
	}
	return result
}

// findCombination returns the cycle indexes of the first combination, largest
// size first, whose summed net charge matches the amount within tolerance.
func findCombination(
	cycles []entity.BillingCycle,
	eligible []int,
	amount decimal.Decimal,
	config valueobject.ReconciliationConfig,
) []int {
	size := maxComboSize
	if len(eligible) < size {
		size = len(eligible)
	}

	for ; size >= minComboSize; size-- {
		var found []int
		forEachCombination(len(eligible), size, func(picks []int) bool {
			sum := decimal.Zero
			for _, p := range picks {
				sum = sum.Add(cycles[eligible[p]].NetCharge())
			}
			if !config.IsWithinTolerance(sum, amount) {
				return true
			}
			found = make([]int, len(picks))
			for i, p := range picks {
				found[i] = eligible[p]
			}
			return false
		})
		if found != nil {
			return found
		}
	}

	return nil
}

// forEachCombination calls fn with every k-subset of [0, n) in lexicographic
// order until fn returns false.
func forEachCombination(n, k int, fn func(picks []int) bool) {
	if k <= 0 || k > n {
		return
	}

	picks := make([]int, k)
	for i := range picks {
		picks[i] = i
	}

	for {
		if !fn(picks) {
			return
		}

		i := k - 1
		for i >= 0 && picks[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		picks[i]++
		for j := i + 1; j < k; j++ {
			picks[j] = picks[j-1] + 1
		}
	}
}

// applyCombinedMatch marks the line as a combined payoff and groups its cycles.
func applyCombinedMatch(line *entity.TransactionLine, cycles []entity.BillingCycle, combo []int, chargeDate time.Time) {
	seen := make(map[string]bool)
	related := make([]string, 0)
	keys := make([]string, 0, len(combo))

	for _, idx := range combo {
		cycle := &cycles[idx]
		for _, id := range cycle.TransactionIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			related = append(related, id)
		}
		keys = append(keys, cycle.Key)

		cycle.BankMatchStatus = entity.BankMatchGrouped
		cycle.BankMatchedAmount = cycle.BankMatchedAmount.Add(cycle.NetCharge())
		cycle.BankMatchedIDs = append(cycle.BankMatchedIDs, line.ID)
	}

	date := chargeDate
	line.Classification = entity.ClassificationCombinedPayoff
	line.Neutral = true
	line.RelatedTransactionIDs = related
	line.MatchReason = entity.CombinedMatchReason(len(combo))
	line.MatchedCycleKeys = keys
	line.ComboSize = len(combo)
	line.ComboChargeDate = &date
}
