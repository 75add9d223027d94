package adapter

import (
	"context"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

// ReconciliationRunRepository defines the interface for reconciliation run history.
type ReconciliationRunRepository interface {
	// Create stores a finished reconciliation run.
	Create(ctx context.Context, run *entity.ReconciliationRun) error

	// FindRecent retrieves the most recent runs, newest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.ReconciliationRun, error)
}
