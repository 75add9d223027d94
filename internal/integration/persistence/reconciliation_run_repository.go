package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/persistence/model"
)

// reconciliationRunRepository implements the adapter.ReconciliationRunRepository interface.
type reconciliationRunRepository struct {
	db *gorm.DB
}

// NewReconciliationRunRepository creates a new reconciliation run repository instance.
func NewReconciliationRunRepository(db *gorm.DB) adapter.ReconciliationRunRepository {
	return &reconciliationRunRepository{
		db: db,
	}
}

// Create stores a finished reconciliation run.
func (r *reconciliationRunRepository) Create(ctx context.Context, run *entity.ReconciliationRun) error {
	m := model.FromReconciliationRunEntity(run)
	return r.db.WithContext(ctx).Create(m).Error
}

// FindRecent retrieves the most recent runs, newest first.
func (r *reconciliationRunRepository) FindRecent(ctx context.Context, limit int) ([]*entity.ReconciliationRun, error) {
	var models []model.ReconciliationRunModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	runs := make([]*entity.ReconciliationRun, len(models))
	for i := range models {
		runs[i] = models[i].ToEntity()
	}
	return runs, nil
}
