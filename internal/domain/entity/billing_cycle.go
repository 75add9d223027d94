package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankMatchStatus represents how a billing cycle was settled from the bank side.
type BankMatchStatus string

const (
	BankMatchNone    BankMatchStatus = "none"
	BankMatchFull    BankMatchStatus = "full"
	BankMatchMulti   BankMatchStatus = "multi"
	BankMatchGrouped BankMatchStatus = "grouped"
)

// AllCardsKey is the card part of the key of a combined (all cards) cycle.
const AllCardsKey = "ALL"

// CycleDateLayout is the date layout used inside cycle keys.
const CycleDateLayout = "2006-01-02"

// BillingCycle aggregates the card lines settled by one charge.
// A cycle with an empty CardLast4 and IsCombined set is the informational
// all-cards aggregate for its charge date.
type BillingCycle struct {
	Key            string
	ChargeDate     time.Time
	CardLast4      string
	IsCombined     bool
	TotalExpenses  decimal.Decimal
	TotalRefunds   decimal.Decimal
	TransactionIDs []string

	BankMatchStatus   BankMatchStatus
	BankMatchedAmount decimal.Decimal
	BankMatchedIDs    []string
}

// NetCharge returns total expenses minus total refunds.
func (c *BillingCycle) NetCharge() decimal.Decimal {
	return c.TotalExpenses.Sub(c.TotalRefunds)
}

// IsMatchTarget reports whether the cycle can be linked to a bank line.
func (c *BillingCycle) IsMatchTarget() bool {
	return !c.IsCombined
}

// CycleKey builds the unique key of a cycle for a charge date and card.
func CycleKey(chargeDate time.Time, cardLast4 string) string {
	return chargeDate.Format(CycleDateLayout) + "::" + cardLast4
}

// Clone returns a deep copy of the cycle.
func (c BillingCycle) Clone() BillingCycle {
	out := c
	out.TransactionIDs = append([]string(nil), c.TransactionIDs...)
	out.BankMatchedIDs = append([]string(nil), c.BankMatchedIDs...)
	return out
}

// CloneCycles returns a deep copy of a slice of cycles.
func CloneCycles(cycles []BillingCycle) []BillingCycle {
	if cycles == nil {
		return nil
	}
	out := make([]BillingCycle, len(cycles))
	for i := range cycles {
		out[i] = cycles[i].Clone()
	}
	return out
}
