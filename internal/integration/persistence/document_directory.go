// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/persistence/model"
)

// maxUpdateAttempts bounds retries when two transactions create the same document.
const maxUpdateAttempts = 3

// errDocumentCreated reports that another transaction inserted the document first.
var errDocumentCreated = errors.New("document created concurrently")

// documentDirectory implements the adapter.TransactionalDirectory interface on a database table.
type documentDirectory struct {
	db *gorm.DB
}

// NewDocumentDirectory creates a new database-backed directory instance.
func NewDocumentDirectory(db *gorm.DB) adapter.TransactionalDirectory {
	return &documentDirectory{
		db: db,
	}
}

// ReadFile returns the content of the named document.
func (d *documentDirectory) ReadFile(ctx context.Context, name string) ([]byte, error) {
	var doc model.DirectoryDocumentModel
	err := d.db.WithContext(ctx).
		Where("name = ?", name).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFileNotFound
		}
		return nil, err
	}
	return doc.Content, nil
}

// WriteFile creates or replaces the named document.
func (d *documentDirectory) WriteFile(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return domainerror.ErrInvalidFileName
	}

	now := time.Now().UTC()
	doc := model.DirectoryDocumentModel{
		ID:        uuid.New(),
		Name:      name,
		Content:   data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(&doc).Error
}

// UpdateFile applies fn to the named document inside a transaction holding a
// row lock, so concurrent updates from any process are applied one at a time.
func (d *documentDirectory) UpdateFile(ctx context.Context, name string, fn adapter.UpdateFunc) error {
	if name == "" {
		return domainerror.ErrInvalidFileName
	}

	var err error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return updateDocument(tx, name, fn)
		})
		if !errors.Is(err, errDocumentCreated) {
			return err
		}
	}
	return err
}

func updateDocument(tx *gorm.DB, name string, fn adapter.UpdateFunc) error {
	var doc model.DirectoryDocumentModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&doc).Error

	found := true
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		found = false
	case err != nil:
		return err
	}

	var current []byte
	if found {
		current = doc.Content
	}
	data, err := fn(current, found)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if found {
		return tx.Model(&doc).Updates(map[string]any{
			"content":    data,
			"updated_at": now,
		}).Error
	}

	// A missing row cannot be locked; a concurrent insert of the same name makes
	// this one a no-op and the whole update is retried against the new row.
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.DirectoryDocumentModel{
		ID:        uuid.New(),
		Name:      name,
		Content:   data,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errDocumentCreated
	}
	return nil
}
