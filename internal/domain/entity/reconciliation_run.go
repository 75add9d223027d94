package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

// ReconciliationRun records the outcome of one reconciliation request.
type ReconciliationRun struct {
	ID             uuid.UUID
	LineCount      int
	CycleCount     int
	Summary        valueobject.ReconciliationSummary
	NeutralLineIDs []string
	MatchedCycles  []string
	CreatedAt      time.Time
}

// NewReconciliationRun creates a new ReconciliationRun entity.
func NewReconciliationRun(
	lineCount int,
	cycleCount int,
	summary valueobject.ReconciliationSummary,
	neutralLineIDs []string,
	matchedCycles []string,
) *ReconciliationRun {
	return &ReconciliationRun{
		ID:             uuid.New(),
		LineCount:      lineCount,
		CycleCount:     cycleCount,
		Summary:        summary,
		NeutralLineIDs: neutralLineIDs,
		MatchedCycles:  matchedCycles,
		CreatedAt:      time.Now().UTC(),
	}
}
