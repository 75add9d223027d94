package reconciliation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

// AggregateCycles groups card lines into per-card billing cycles and adds one
// combined all-cards cycle per charge date.
// Cycles are ordered by charge date, then card, with the combined cycle last for its date.
func AggregateCycles(lines []entity.TransactionLine) []entity.BillingCycle {
	perCard := make(map[string]*entity.BillingCycle)

	for i := range lines {
		line := &lines[i]
		if line.Source != entity.LineSourceCard {
			continue
		}

		chargeDate := calendarDate(line.EffectiveChargeDate())
		key := entity.CycleKey(chargeDate, line.CardLast4)

		cycle, ok := perCard[key]
		if !ok {
			cycle = newCycle(key, chargeDate, line.CardLast4, false)
			perCard[key] = cycle
		}

		amount := line.Amount.Abs()
		if line.Direction == entity.LineDirectionIncome {
			cycle.TotalRefunds = cycle.TotalRefunds.Add(amount)
		} else {
			cycle.TotalExpenses = cycle.TotalExpenses.Add(amount)
		}
		cycle.TransactionIDs = append(cycle.TransactionIDs, line.ID)
	}

	if len(perCard) == 0 {
		return nil
	}

	cards := make([]*entity.BillingCycle, 0, len(perCard))
	for _, c := range perCard {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool {
		if !cards[i].ChargeDate.Equal(cards[j].ChargeDate) {
			return cards[i].ChargeDate.Before(cards[j].ChargeDate)
		}
		return cards[i].CardLast4 < cards[j].CardLast4
	})

	result := make([]entity.BillingCycle, 0, len(cards)+len(cards)/2+1)
	var combined *entity.BillingCycle
	for _, c := range cards {
		if combined != nil && !combined.ChargeDate.Equal(c.ChargeDate) {
			result = append(result, *combined)
			combined = nil
		}
		if combined == nil {
			combined = newCycle(entity.CycleKey(c.ChargeDate, entity.AllCardsKey), c.ChargeDate, "", true)
		}
		combined.TotalExpenses = combined.TotalExpenses.Add(c.TotalExpenses)
		combined.TotalRefunds = combined.TotalRefunds.Add(c.TotalRefunds)
		combined.TransactionIDs = append(combined.TransactionIDs, c.TransactionIDs...)
		result = append(result, *c)
	}
	result = append(result, *combined)

	return result
}

func newCycle(key string, chargeDate time.Time, cardLast4 string, combined bool) *entity.BillingCycle {
	return &entity.BillingCycle{
		Key:               key,
		ChargeDate:        chargeDate,
		CardLast4:         cardLast4,
		IsCombined:        combined,
		TotalExpenses:     decimal.Zero,
		TotalRefunds:      decimal.Zero,
		BankMatchStatus:   entity.BankMatchNone,
		BankMatchedAmount: decimal.Zero,
	}
}
