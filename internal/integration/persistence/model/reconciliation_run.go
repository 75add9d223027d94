package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/valueobject"
)

// ReconciliationRunModel represents the reconciliation_runs table in the database.
type ReconciliationRunModel struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	LineCount             int            `gorm:"not null"`
	CycleCount            int            `gorm:"not null"`
	ExactMatches          int            `gorm:"not null;default:0"`
	CombinedMatches       int            `gorm:"not null;default:0"`
	NeutralLines          int            `gorm:"not null;default:0"`
	MatchedCycles         int            `gorm:"not null;default:0"`
	UnmatchedCycles       int            `gorm:"not null;default:0"`
	UnmatchedBankExpenses int            `gorm:"not null;default:0"`
	NeutralLineIDs        pq.StringArray `gorm:"type:text"`
	MatchedCycleKeys      pq.StringArray `gorm:"type:text"`
	CreatedAt             time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the ReconciliationRunModel.
func (ReconciliationRunModel) TableName() string {
	return "reconciliation_runs"
}

// ToEntity converts a ReconciliationRunModel to a domain ReconciliationRun entity.
func (m *ReconciliationRunModel) ToEntity() *entity.ReconciliationRun {
	return &entity.ReconciliationRun{
		ID:         m.ID,
		LineCount:  m.LineCount,
		CycleCount: m.CycleCount,
		Summary: valueobject.ReconciliationSummary{
			ExactMatches:          m.ExactMatches,
			CombinedMatches:       m.CombinedMatches,
			NeutralLines:          m.NeutralLines,
			MatchedCycles:         m.MatchedCycles,
			UnmatchedCycles:       m.UnmatchedCycles,
			UnmatchedBankExpenses: m.UnmatchedBankExpenses,
		},
		NeutralLineIDs: []string(m.NeutralLineIDs),
		MatchedCycles:  []string(m.MatchedCycleKeys),
		CreatedAt:      m.CreatedAt,
	}
}

// FromReconciliationRunEntity converts a domain ReconciliationRun entity to a ReconciliationRunModel.
func FromReconciliationRunEntity(run *entity.ReconciliationRun) *ReconciliationRunModel {
	return &ReconciliationRunModel{
		ID:                    run.ID,
		LineCount:             run.LineCount,
		CycleCount:            run.CycleCount,
		ExactMatches:          run.Summary.ExactMatches,
		CombinedMatches:       run.Summary.CombinedMatches,
		NeutralLines:          run.Summary.NeutralLines,
		MatchedCycles:         run.Summary.MatchedCycles,
		UnmatchedCycles:       run.Summary.UnmatchedCycles,
		UnmatchedBankExpenses: run.Summary.UnmatchedBankExpenses,
		NeutralLineIDs:        pq.StringArray(run.NeutralLineIDs),
		MatchedCycleKeys:      pq.StringArray(run.MatchedCycles),
		CreatedAt:             run.CreatedAt,
	}
}
