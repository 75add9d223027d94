package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/usecase/reconciliation"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

// TransactionLineRequest represents one incoming bank or card line.
// Amount accepts either a JSON string or number.
type TransactionLineRequest struct {
	ID             string          `json:"id" binding:"required"`
	Source         string          `json:"source" binding:"required"`
	Date           FlexibleDate    `json:"date"`
	ChargeDate     *FlexibleDate   `json:"charge_date,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      string          `json:"direction" binding:"required"`
	Description    string          `json:"description"`
	CardLast4      string          `json:"card_last4,omitempty"`
	Classification string          `json:"classification,omitempty"`
}

// ReconciliationConfigRequest carries optional overrides of the matching config.
type ReconciliationConfigRequest struct {
	DaysBeforeCharge   *int             `json:"days_before_charge,omitempty"`
	DaysAfterCharge    *int             `json:"days_after_charge,omitempty"`
	ToleranceRatio     *decimal.Decimal `json:"tolerance_ratio,omitempty"`
	MinToleranceAmount *decimal.Decimal `json:"min_tolerance_amount,omitempty"`
}

// RunReconciliationRequest represents the request body for POST /reconciliation.
type RunReconciliationRequest struct {
	Lines  []TransactionLineRequest     `json:"lines" binding:"required,dive"`
	Config *ReconciliationConfigRequest `json:"config,omitempty"`
}

// TransactionLineResponse represents a reconciled line.
type TransactionLineResponse struct {
	ID                    string   `json:"id"`
	Source                string   `json:"source"`
	Date                  string   `json:"date"`
	ChargeDate            *string  `json:"charge_date,omitempty"`
	Amount                string   `json:"amount"`
	Direction             string   `json:"direction"`
	Description           string   `json:"description"`
	CardLast4             string   `json:"card_last4,omitempty"`
	Classification        string   `json:"classification"`
	Neutral               bool     `json:"neutral"`
	RelatedTransactionIDs []string `json:"related_transaction_ids,omitempty"`
	MatchReason           string   `json:"match_reason,omitempty"`
	MatchedCardLast4      string   `json:"matched_card_last4,omitempty"`
	MatchedCycleKeys      []string `json:"matched_cycle_keys,omitempty"`
	ComboSize             int      `json:"combo_size,omitempty"`
	ComboChargeDate       *string  `json:"combo_charge_date,omitempty"`
}

// BillingCycleResponse represents an aggregated card billing cycle.
type BillingCycleResponse struct {
	Key               string   `json:"key"`
	ChargeDate        string   `json:"charge_date"`
	CardLast4         string   `json:"card_last4"`
	IsCombined        bool     `json:"is_combined"`
	TotalExpenses     string   `json:"total_expenses"`
	TotalRefunds      string   `json:"total_refunds"`
	NetCharge         string   `json:"net_charge"`
	TransactionIDs    []string `json:"transaction_ids"`
	BankMatchStatus   string   `json:"bank_match_status"`
	BankMatchedAmount string   `json:"bank_matched_amount"`
	BankMatchedIDs    []string `json:"bank_matched_ids"`
}

// ReconciliationSummaryDTO contains summary counts of a run.
type ReconciliationSummaryDTO struct {
	ExactMatches          int `json:"exact_matches"`
	CombinedMatches       int `json:"combined_matches"`
	NeutralLines          int `json:"neutral_lines"`
	MatchedCycles         int `json:"matched_cycles"`
	UnmatchedCycles       int `json:"unmatched_cycles"`
	UnmatchedBankExpenses int `json:"unmatched_bank_expenses"`
}

// LineTotalsDTO contains expense and income totals excluding neutral lines.
type LineTotalsDTO struct {
	Expenses        string `json:"expenses"`
	Income          string `json:"income"`
	Net             string `json:"net"`
	ExcludedNeutral string `json:"excluded_neutral"`
}

// RunReconciliationResponse represents the response for POST /reconciliation.
type RunReconciliationResponse struct {
	RunID   *string                   `json:"run_id,omitempty"`
	Lines   []TransactionLineResponse `json:"lines"`
	Cycles  []BillingCycleResponse    `json:"cycles"`
	Summary ReconciliationSummaryDTO  `json:"summary"`
	Totals  LineTotalsDTO             `json:"totals"`
}

// ReconciliationRunResponse represents a recorded run.
type ReconciliationRunResponse struct {
	ID               string                   `json:"id"`
	LineCount        int                      `json:"line_count"`
	CycleCount       int                      `json:"cycle_count"`
	Summary          ReconciliationSummaryDTO `json:"summary"`
	NeutralLineIDs   []string                 `json:"neutral_line_ids"`
	MatchedCycleKeys []string                 `json:"matched_cycle_keys"`
	CreatedAt        time.Time                `json:"created_at"`
}

// ReconciliationRunListResponse represents the response for GET /reconciliation/runs.
type ReconciliationRunListResponse struct {
	Runs []ReconciliationRunResponse `json:"runs"`
}

// ToEntity converts the request line into a domain line.
func (r TransactionLineRequest) ToEntity() entity.TransactionLine {
	line := entity.TransactionLine{
		ID:             r.ID,
		Source:         entity.LineSource(r.Source),
		Date:           r.Date.Time,
		Amount:         r.Amount,
		Direction:      entity.LineDirection(r.Direction),
		Description:    r.Description,
		CardLast4:      r.CardLast4,
		Classification: entity.LineClassification(r.Classification),
	}
	if r.ChargeDate != nil && !r.ChargeDate.IsZero() {
		cd := r.ChargeDate.Time
		line.ChargeDate = &cd
	}
	return line
}

// ToLines converts every request line into a domain line.
func (r RunReconciliationRequest) ToLines() []entity.TransactionLine {
	lines := make([]entity.TransactionLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = l.ToEntity()
	}
	return lines
}

// ApplyTo returns base with the requested overrides applied.
func (r *ReconciliationConfigRequest) ApplyTo(base valueobject.ReconciliationConfig) valueobject.ReconciliationConfig {
	if r == nil {
		return base
	}
	if r.DaysBeforeCharge != nil {
		base.DaysBeforeCharge = *r.DaysBeforeCharge
	}
	if r.DaysAfterCharge != nil {
		base.DaysAfterCharge = *r.DaysAfterCharge
	}
	if r.ToleranceRatio != nil {
		base.ToleranceRatio = *r.ToleranceRatio
	}
	if r.MinToleranceAmount != nil {
		base.MinToleranceAmount = *r.MinToleranceAmount
	}
	return base
}

// ToTransactionLineResponse converts a domain line to its response DTO.
func ToTransactionLineResponse(l entity.TransactionLine) TransactionLineResponse {
	return TransactionLineResponse{
		ID:                    l.ID,
		Source:                string(l.Source),
		Date:                  l.Date.Format(OutputDateLayout),
		ChargeDate:            formatDate(l.ChargeDate),
		Amount:                l.Amount.String(),
		Direction:             string(l.Direction),
		Description:           l.Description,
		CardLast4:             l.CardLast4,
		Classification:        string(l.Classification),
		Neutral:               l.Neutral,
		RelatedTransactionIDs: l.RelatedTransactionIDs,
		MatchReason:           l.MatchReason,
		MatchedCardLast4:      l.MatchedCardLast4,
		MatchedCycleKeys:      l.MatchedCycleKeys,
		ComboSize:             l.ComboSize,
		ComboChargeDate:       formatDate(l.ComboChargeDate),
	}
}

// ToBillingCycleResponse converts a domain cycle to its response DTO.
func ToBillingCycleResponse(c entity.BillingCycle) BillingCycleResponse {
	matchedIDs := c.BankMatchedIDs
	if matchedIDs == nil {
		matchedIDs = []string{}
	}
	return BillingCycleResponse{
		Key:               c.Key,
		ChargeDate:        c.ChargeDate.Format(OutputDateLayout),
		CardLast4:         c.CardLast4,
		IsCombined:        c.IsCombined,
		TotalExpenses:     c.TotalExpenses.String(),
		TotalRefunds:      c.TotalRefunds.String(),
		NetCharge:         c.NetCharge().String(),
		TransactionIDs:    c.TransactionIDs,
		BankMatchStatus:   string(c.BankMatchStatus),
		BankMatchedAmount: c.BankMatchedAmount.String(),
		BankMatchedIDs:    matchedIDs,
	}
}

// ToReconciliationSummaryDTO converts the summary value object.
func ToReconciliationSummaryDTO(s valueobject.ReconciliationSummary) ReconciliationSummaryDTO {
	return ReconciliationSummaryDTO{
		ExactMatches:          s.ExactMatches,
		CombinedMatches:       s.CombinedMatches,
		NeutralLines:          s.NeutralLines,
		MatchedCycles:         s.MatchedCycles,
		UnmatchedCycles:       s.UnmatchedCycles,
		UnmatchedBankExpenses: s.UnmatchedBankExpenses,
	}
}

// ToRunReconciliationResponse converts the use case output to a response DTO.
func ToRunReconciliationResponse(output *reconciliation.RunReconciliationOutput) RunReconciliationResponse {
	lines := make([]TransactionLineResponse, len(output.Lines))
	for i, l := range output.Lines {
		lines[i] = ToTransactionLineResponse(l)
	}

	cycles := make([]BillingCycleResponse, len(output.Cycles))
	for i, c := range output.Cycles {
		cycles[i] = ToBillingCycleResponse(c)
	}

	response := RunReconciliationResponse{
		Lines:   lines,
		Cycles:  cycles,
		Summary: ToReconciliationSummaryDTO(output.Summary),
		Totals: LineTotalsDTO{
			Expenses:        output.Totals.Expenses.String(),
			Income:          output.Totals.Income.String(),
			Net:             output.Totals.Net.String(),
			ExcludedNeutral: output.Totals.ExcludedNeutral.String(),
		},
	}
	if output.RunID != nil {
		id := output.RunID.String()
		response.RunID = &id
	}
	return response
}

// ToReconciliationRunListResponse converts recorded runs to a response DTO.
func ToReconciliationRunListResponse(runs []*entity.ReconciliationRun) ReconciliationRunListResponse {
	items := make([]ReconciliationRunResponse, 0, len(runs))
	for _, run := range runs {
		items = append(items, ReconciliationRunResponse{
			ID:               run.ID.String(),
			LineCount:        run.LineCount,
			CycleCount:       run.CycleCount,
			Summary:          ToReconciliationSummaryDTO(run.Summary),
			NeutralLineIDs:   nonNil(run.NeutralLineIDs),
			MatchedCycleKeys: nonNil(run.MatchedCycles),
			CreatedAt:        run.CreatedAt,
		})
	}
	return ReconciliationRunListResponse{Runs: items}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
