package reconciliation

import (
	"context"
	"fmt"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

const (
	// DefaultRunLimit is the default number of runs returned.
	DefaultRunLimit = 20
	// MaxRunLimit is the maximum number of runs returned.
	MaxRunLimit = 100
)

// ListRunsInput represents the input for listing reconciliation runs.
type ListRunsInput struct {
	Limit int
}

// ListRunsOutput represents the recorded reconciliation runs.
type ListRunsOutput struct {
	Runs []*entity.ReconciliationRun
}

// ListRunsUseCase handles listing recorded reconciliation runs.
type ListRunsUseCase struct {
	runRepo adapter.ReconciliationRunRepository
}

// NewListRunsUseCase creates a new ListRunsUseCase instance.
func NewListRunsUseCase(runRepo adapter.ReconciliationRunRepository) *ListRunsUseCase {
	return &ListRunsUseCase{
		runRepo: runRepo,
	}
}

// Execute lists the most recent runs.
func (uc *ListRunsUseCase) Execute(ctx context.Context, input ListRunsInput) (*ListRunsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRunLimit
	} else if limit > MaxRunLimit {
		limit = MaxRunLimit
	}

	runs, err := uc.runRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliation runs: %w", err)
	}

	return &ListRunsOutput{Runs: runs}, nil
}
