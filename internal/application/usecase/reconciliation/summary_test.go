package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

func TestComputeTotals(t *testing.T) {
	t.Run("leaves neutral and excluded lines out", func(t *testing.T) {
		payoff := bankExpense(t, "b1", "2024-03-06", "500", "card payment")
		payoff.Classification = entity.ClassificationPayoff
		payoff.Neutral = true
		excluded := bankExpense(t, "b2", "2024-03-06", "99", "internal transfer")
		excluded.Classification = entity.ClassificationExcluded
		salary := bankExpense(t, "b3", "2024-03-01", "1000", "salary")
		salary.Direction = entity.LineDirectionIncome

		totals := ComputeTotals([]entity.TransactionLine{
			cardExpense(t, "c1", "1234", "2024-02-10", "2024-03-05", "-500"),
			payoff,
			excluded,
			salary,
		})

		assert.True(t, amount("500").Equal(totals.Expenses))
		assert.True(t, amount("1000").Equal(totals.Income))
		assert.True(t, amount("500").Equal(totals.Net))
		assert.True(t, amount("500").Equal(totals.ExcludedNeutral))
	})

	t.Run("is zero for no lines", func(t *testing.T) {
		totals := ComputeTotals(nil)

		assert.True(t, totals.Expenses.IsZero())
		assert.True(t, totals.Income.IsZero())
		assert.True(t, totals.Net.IsZero())
	})
}

func TestSummarize(t *testing.T) {
	lines := []entity.TransactionLine{
		cardExpense(t, "c1", "1111", "2024-02-10", "2024-03-05", "300"),
		cardExpense(t, "c2", "2222", "2024-02-12", "2024-03-05", "450"),
		cardExpense(t, "c3", "3333", "2024-02-12", "2024-03-05", "999"),
		bankExpense(t, "b1", "2024-03-06", "750", "transfer"),
		bankExpense(t, "b2", "2024-03-06", "10", "coffee"),
	}
	exactLines, exactCycles := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())
	outLines, outCycles := MatchCombined(exactLines, exactCycles, defaultConfig())

	summary := Summarize(outLines, outCycles)

	assert.Equal(t, 0, summary.ExactMatches)
	assert.Equal(t, 1, summary.CombinedMatches)
	assert.Equal(t, 1, summary.NeutralLines)
	assert.Equal(t, 2, summary.MatchedCycles)
	assert.Equal(t, 1, summary.UnmatchedCycles)
	assert.Equal(t, 1, summary.UnmatchedBankExpenses)
}
