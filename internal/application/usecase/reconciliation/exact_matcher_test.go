package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

func TestMatchExact_DateWindow(t *testing.T) {
	tests := []struct {
		name     string
		bankDate string
		matched  bool
	}{
		{"two days before charge", "2024-03-03", false},
		{"one day before charge", "2024-03-04", true},
		{"on charge date", "2024-03-05", true},
		{"six days after charge", "2024-03-11", true},
		{"seven days after charge", "2024-03-12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []entity.TransactionLine{
				cardExpense(t, "c1", "1234", "2024-02-20", "2024-03-05", "500"),
				bankExpense(t, "b1", tt.bankDate, "500", "transfer"),
			}

			outLines, outCycles := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())

			bank := lineByID(t, outLines, "b1")
			cycle := cycleByKey(t, outCycles, "2024-03-05::1234")
			if tt.matched {
				assert.Equal(t, entity.ClassificationPayoff, bank.Classification)
				assert.Equal(t, entity.BankMatchFull, cycle.BankMatchStatus)
			} else {
				assert.Empty(t, bank.Classification)
				assert.False(t, bank.Neutral)
				assert.Equal(t, entity.BankMatchNone, cycle.BankMatchStatus)
			}
		})
	}
}

func TestMatchExact_AmountTolerance(t *testing.T) {
	tests := []struct {
		name    string
		net     string
		bank    string
		matched bool
	}{
		{"ratio tolerance upper bound", "1000", "1010", true},
		{"just past ratio tolerance", "1000", "1011", false},
		{"ratio tolerance lower bound", "1000", "990", true},
		{"minimum tolerance for small charges", "100", "102", true},
		{"just past minimum tolerance", "100", "102.01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []entity.TransactionLine{
				cardExpense(t, "c1", "1234", "2024-02-20", "2024-03-05", tt.net),
				bankExpense(t, "b1", "2024-03-06", tt.bank, "transfer"),
			}

			outLines, _ := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())

			matched := lineByID(t, outLines, "b1").Classification == entity.ClassificationPayoff
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestMatchExact(t *testing.T) {
	t.Run("records payoff details on the bank line", func(t *testing.T) {
		lines := []entity.TransactionLine{
			cardExpense(t, "c1", "1234", "2024-02-20", "2024-03-05", "300"),
			cardExpense(t, "c2", "1234", "2024-02-21", "2024-03-05", "200"),
			bankExpense(t, "b1", "2024-03-08", "-500", "transfer"),
		}

		outLines, outCycles := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())

		bank := lineByID(t, outLines, "b1")
		assert.Equal(t, entity.ClassificationPayoff, bank.Classification)
		assert.True(t, bank.Neutral)
		assert.Equal(t, []string{"c1", "c2"}, bank.RelatedTransactionIDs)
		assert.Equal(t, entity.MatchReasonAmount, bank.MatchReason)
		assert.Equal(t, "1234", bank.MatchedCardLast4)
		assert.Equal(t, []string{"2024-03-05::1234"}, bank.MatchedCycleKeys)

		cycle := cycleByKey(t, outCycles, "2024-03-05::1234")
		assert.Equal(t, []string{"b1"}, cycle.BankMatchedIDs)
		assert.True(t, amount("500").Equal(cycle.BankMatchedAmount))
	})

	t.Run("prefers the pattern-confirmed line over a closer amount", func(t *testing.T) {
		lines := []entity.TransactionLine{
			cardExpense(t, "c1", "1234", "2024-02-20", "2024-03-05", "500"),
			bankExpense(t, "b1", "2024-03-06", "500", "transfer"),
			bankExpense(t, "b2", "2024-03-06", "503", "CARD CO PAYMENT"),
		}
		rules := compileRules(t, entity.PatternRule{Value: "card co", Type: entity.PatternTypeContains, Active: true})

		outLines, _ := MatchExact(lines, AggregateCycles(lines), rules, defaultConfig())

		winner := lineByID(t, outLines, "b2")
		assert.Equal(t, entity.ClassificationPayoff, winner.Classification)
		assert.Equal(t, entity.MatchReasonPatternAmount, winner.MatchReason)
		assert.Empty(t, lineByID(t, outLines, "b1").Classification)
	})

	t.Run("picks the cycle with the smallest amount difference", func(t *testing.T) {
		lines := []entity.TransactionLine{
			cardExpense(t, "c1", "1111", "2024-02-20", "2024-03-05", "498"),
			cardExpense(t, "c2", "2222", "2024-02-20", "2024-03-05", "500"),
			bankExpense(t, "b1", "2024-03-06", "500", "transfer"),
		}

		outLines, outCycles := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())

		assert.Equal(t, "2222", lineByID(t, outLines, "b1").MatchedCardLast4)
		assert.Equal(t, entity.BankMatchNone, cycleByKey(t, outCycles, "2024-03-05::1111").BankMatchStatus)
		assert.Equal(t, entity.BankMatchFull, cycleByKey(t, outCycles, "2024-03-05::2222").BankMatchStatus)
	})

	t.Run("links each line and each cycle at most once", func(t *testing.T) {
		lines := []entity.TransactionLine{
			cardExpense(t, "c1", "1111", "2024-02-20", "2024-03-05", "500"),
			cardExpense(t, "c2", "2222", "2024-02-20", "2024-03-05", "500"),
			bankExpense(t, "b1", "2024-03-06", "500", "transfer"),
			bankExpense(t, "b2", "2024-03-07", "500", "transfer"),
			bankExpense(t, "b3", "2024-03-08", "500", "transfer"),
		}

		outLines, outCycles := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())

		perCycle := make(map[string]int)
		payoffs := 0
		for _, l := range outLines {
			if l.Classification != entity.ClassificationPayoff {
				continue
			}
			payoffs++
			require.Len(t, l.MatchedCycleKeys, 1)
			perCycle[l.MatchedCycleKeys[0]]++
		}
		assert.Equal(t, 2, payoffs)
		for key, n := range perCycle {
			assert.Equal(t, 1, n, "cycle %s linked more than once", key)
		}
		for _, c := range outCycles {
			assert.LessOrEqual(t, len(c.BankMatchedIDs), 1)
		}
		// b1 is closest to the charge date on both cycles and wins first
		assert.Equal(t, entity.ClassificationPayoff, lineByID(t, outLines, "b1").Classification)
	})

	t.Run("never links the all-cards cycle", func(t *testing.T) {
		lines := []entity.TransactionLine{
			cardExpense(t, "c1", "1111", "2024-02-20", "2024-03-05", "300"),
			cardExpense(t, "c2", "2222", "2024-02-20", "2024-03-05", "200"),
			bankExpense(t, "b1", "2024-03-06", "500", "transfer"),
		}

		outLines, outCycles := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())

		assert.Empty(t, lineByID(t, outLines, "b1").Classification)
		all := cycleByKey(t, outCycles, "2024-03-05::ALL")
		assert.Equal(t, entity.BankMatchNone, all.BankMatchStatus)
		assert.Empty(t, all.BankMatchedIDs)
		assert.True(t, all.BankMatchedAmount.IsZero())
	})

	t.Run("leaves income and classified bank lines alone", func(t *testing.T) {
		income := bankExpense(t, "b1", "2024-03-06", "500", "salary")
		income.Direction = entity.LineDirectionIncome
		excluded := bankExpense(t, "b2", "2024-03-06", "500", "transfer")
		excluded.Classification = entity.ClassificationExcluded

		lines := []entity.TransactionLine{
			cardExpense(t, "c1", "1234", "2024-02-20", "2024-03-05", "500"),
			income,
			excluded,
		}

		outLines, outCycles := MatchExact(lines, AggregateCycles(lines), nil, defaultConfig())

		assert.Empty(t, lineByID(t, outLines, "b1").Classification)
		assert.Equal(t, entity.ClassificationExcluded, lineByID(t, outLines, "b2").Classification)
		assert.Equal(t, entity.BankMatchNone, cycleByKey(t, outCycles, "2024-03-05::1234").BankMatchStatus)
	})

	t.Run("returns lines unchanged without cycles", func(t *testing.T) {
		lines := []entity.TransactionLine{
			bankExpense(t, "b1", "2024-03-06", "500", "transfer"),
		}

		outLines, outCycles := MatchExact(lines, nil, nil, defaultConfig())

		assert.Equal(t, lines, outLines)
		assert.Empty(t, outCycles)
	})

	t.Run("does not modify its inputs", func(t *testing.T) {
		lines := []entity.TransactionLine{
			cardExpense(t, "c1", "1234", "2024-02-20", "2024-03-05", "500"),
			bankExpense(t, "b1", "2024-03-06", "500", "transfer"),
		}
		cycles := AggregateCycles(lines)
		linesBefore := entity.CloneLines(lines)
		cyclesBefore := entity.CloneCycles(cycles)

		MatchExact(lines, cycles, nil, defaultConfig())

		assert.Equal(t, linesBefore, lines)
		assert.Equal(t, cyclesBefore, cycles)
	})
}
