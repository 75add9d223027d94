package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func cardExpense(t *testing.T, id, card, purchased, charged, value string) entity.TransactionLine {
	t.Helper()
	charge := day(t, charged)
	return entity.TransactionLine{
		ID:          id,
		Source:      entity.LineSourceCard,
		Date:        day(t, purchased),
		ChargeDate:  &charge,
		Amount:      amount(value),
		Direction:   entity.LineDirectionExpense,
		Description: "purchase " + id,
		CardLast4:   card,
	}
}

func cardRefund(t *testing.T, id, card, purchased, charged, value string) entity.TransactionLine {
	t.Helper()
	line := cardExpense(t, id, card, purchased, charged, value)
	line.Direction = entity.LineDirectionIncome
	return line
}

func bankExpense(t *testing.T, id, date, value, description string) entity.TransactionLine {
	t.Helper()
	return entity.TransactionLine{
		ID:          id,
		Source:      entity.LineSourceBank,
		Date:        day(t, date),
		Amount:      amount(value),
		Direction:   entity.LineDirectionExpense,
		Description: description,
	}
}

func compileRules(t *testing.T, rules ...entity.PatternRule) []*entity.CompiledPatternRule {
	t.Helper()
	compiled := make([]*entity.CompiledPatternRule, 0, len(rules))
	for _, r := range rules {
		c, err := r.Compile()
		require.NoError(t, err)
		compiled = append(compiled, c)
	}
	return compiled
}

func defaultConfig() valueobject.ReconciliationConfig {
	return valueobject.DefaultReconciliationConfig()
}

func lineByID(t *testing.T, lines []entity.TransactionLine, id string) entity.TransactionLine {
	t.Helper()
	for _, l := range lines {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("line %s not found", id)
	return entity.TransactionLine{}
}

func cycleByKey(t *testing.T, cycles []entity.BillingCycle, key string) entity.BillingCycle {
	t.Helper()
	for _, c := range cycles {
		if c.Key == key {
			return c
		}
	}
	t.Fatalf("cycle %s not found", key)
	return entity.BillingCycle{}
}

// failingDirectory fails every operation with err.
type failingDirectory struct {
	err    error
	writes int
}

func (d *failingDirectory) ReadFile(context.Context, string) ([]byte, error) {
	return nil, d.err
}

func (d *failingDirectory) WriteFile(context.Context, string, []byte) error {
	d.writes++
	return d.err
}

var errDiskOffline = errors.New("disk offline")
