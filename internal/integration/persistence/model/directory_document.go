// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// DirectoryDocumentModel represents the directory_documents table in the database.
// Each row holds one named file of a database-backed directory.
type DirectoryDocumentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Content   []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the DirectoryDocumentModel.
func (DirectoryDocumentModel) TableName() string {
	return "directory_documents"
}
