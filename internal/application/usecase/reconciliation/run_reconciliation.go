package reconciliation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

// maxWindowDays bounds the configurable date window on either side of a charge date.
const maxWindowDays = 31

// RunReconciliationInput represents the input for a reconciliation run.
type RunReconciliationInput struct {
	Lines  []entity.TransactionLine
	Config *valueobject.ReconciliationConfig // Optional - defaults to the use case config
	Record bool                              // Store the run in the history
}

// RunReconciliationOutput represents the reconciled state plus derived figures.
type RunReconciliationOutput struct {
	RunID   *uuid.UUID
	Lines   []entity.TransactionLine
	Cycles  []entity.BillingCycle
	Summary valueobject.ReconciliationSummary
	Totals  valueobject.LineTotals
}

// RunReconciliationUseCase handles running the reconciliation pipeline.
type RunReconciliationUseCase struct {
	reconciler *Reconciler
	runRepo    adapter.ReconciliationRunRepository
	config     valueobject.ReconciliationConfig
}

// NewRunReconciliationUseCase creates a new RunReconciliationUseCase instance.
// runRepo may be nil, in which case runs are never recorded.
func NewRunReconciliationUseCase(
	reconciler *Reconciler,
	runRepo adapter.ReconciliationRunRepository,
	config valueobject.ReconciliationConfig,
) *RunReconciliationUseCase {
	return &RunReconciliationUseCase{
		reconciler: reconciler,
		runRepo:    runRepo,
		config:     config,
	}
}

// Execute runs the reconciliation over the given lines.
func (uc *RunReconciliationUseCase) Execute(ctx context.Context, input RunReconciliationInput) (*RunReconciliationOutput, error) {
	if len(input.Lines) == 0 {
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeNoTransactionLines,
			"at least one transaction line is required",
			domainerror.ErrNoTransactionLines,
		)
	}

	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	config := uc.config
	if input.Config != nil {
		config = *input.Config
	}
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	result := uc.reconciler.Reconcile(ctx, input.Lines, config)

	output := &RunReconciliationOutput{
		Lines:   result.Lines,
		Cycles:  result.Cycles,
		Summary: Summarize(result.Lines, result.Cycles),
		Totals:  ComputeTotals(result.Lines),
	}

	if input.Record && uc.runRepo != nil {
		run := entity.NewReconciliationRun(
			len(result.Lines),
			len(result.Cycles),
			output.Summary,
			neutralLineIDs(result.Lines),
			matchedCycleKeys(result.Cycles),
		)
		if err := uc.runRepo.Create(ctx, run); err != nil {
			// The reconciliation itself succeeded; history is best effort.
			slog.Error("Failed to record reconciliation run", "error", err)
		} else {
			output.RunID = &run.ID
		}
	}

	return output, nil
}

// ValidateConfig checks that config values are usable.
func ValidateConfig(config valueobject.ReconciliationConfig) error {
	invalid := func(message string) error {
		return domainerror.NewReconciliationError(
			domainerror.ErrCodeInvalidConfig,
			message,
			domainerror.ErrInvalidReconciliationConfig,
		)
	}

	if config.DaysBeforeCharge < 0 || config.DaysBeforeCharge > maxWindowDays {
		return invalid("days before charge must be between 0 and 31")
	}
	if config.DaysAfterCharge < 0 || config.DaysAfterCharge > maxWindowDays {
		return invalid("days after charge must be between 0 and 31")
	}
	if config.ToleranceRatio.IsNegative() || config.ToleranceRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return invalid("tolerance ratio must be between 0 and 1")
	}
	if config.MinToleranceAmount.IsNegative() {
		return invalid("minimum tolerance amount must not be negative")
	}
	return nil
}

// validateLines rejects lines the pipeline cannot interpret.
func validateLines(lines []entity.TransactionLine) error {
	seen := make(map[string]bool, len(lines))
	for i := range lines {
		l := &lines[i]

		var message string
		switch {
		case l.ID == "":
			message = "transaction line id is required"
		case seen[l.ID]:
			message = "duplicate transaction line id: " + l.ID
		case l.Source != entity.LineSourceBank && l.Source != entity.LineSourceCard:
			message = "unknown source for line " + l.ID
		case l.Direction != entity.LineDirectionExpense && l.Direction != entity.LineDirectionIncome:
			message = "unknown direction for line " + l.ID
		case l.Date.IsZero():
			message = "date is required for line " + l.ID
		case !l.Classification.IsInput():
			message = "unsupported classification for line " + l.ID + ": " + string(l.Classification)
		}
		if message != "" {
			return domainerror.NewReconciliationError(
				domainerror.ErrCodeInvalidTransactionLine,
				message,
				domainerror.ErrInvalidTransactionLine,
			)
		}
		seen[l.ID] = true
	}
	return nil
}

func neutralLineIDs(lines []entity.TransactionLine) []string {
	ids := make([]string, 0)
	for i := range lines {
		if lines[i].Neutral {
			ids = append(ids, lines[i].ID)
		}
	}
	return ids
}

func matchedCycleKeys(cycles []entity.BillingCycle) []string {
	keys := make([]string, 0)
	for i := range cycles {
		if cycles[i].IsMatchTarget() && cycles[i].BankMatchStatus != entity.BankMatchNone {
			keys = append(keys, cycles[i].Key)
		}
	}
	return keys
}
