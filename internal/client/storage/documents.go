package storage

import (
	"context"

	"github.com/iudanet/focuskeeper/internal/models"
)

//go:generate moq -out documentstorage_mock.go . DocumentStorage

// DocumentStorage defines the local per-entity document store.
// Sync engines depend only on this minimal CRUD contract.
type DocumentStorage interface {
	// SaveDocument creates or replaces a document
	SaveDocument(ctx context.Context, doc *models.Document) error

	// GetDocument retrieves a document by type and ID
	// Returns ErrDocumentNotFound if document doesn't exist
	GetDocument(ctx context.Context, entityType models.EntityType, id string) (*models.Document, error)

	// ListDocuments returns all documents of a type owned by userID
	// An empty userID returns documents of every user
	ListDocuments(ctx context.Context, entityType models.EntityType, userID string) ([]*models.Document, error)

	// DeleteDocument removes a document
	// Returns ErrDocumentNotFound if document doesn't exist
	DeleteDocument(ctx context.Context, entityType models.EntityType, id string) error

	// CountDocuments returns the number of documents of a type
	CountDocuments(ctx context.Context, entityType models.EntityType) (int, error)
}
