package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
)

// documentBucket returns the nested bucket holding documents of entityType.
func documentBucket(tx *bbolt.Tx, entityType models.EntityType) (*bbolt.Bucket, error) {
	root := tx.Bucket(bucketDocuments)
	if root == nil {
		return nil, fmt.Errorf("documents bucket not found")
	}
	bucket := root.Bucket([]byte(entityType))
	if bucket == nil {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	return bucket, nil
}

// SaveDocument creates or replaces a document
func (s *Storage) SaveDocument(ctx context.Context, doc *models.Document) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// Сериализуем документ в JSON
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := documentBucket(tx, doc.Type)
		if err != nil {
			return err
		}

		if err := bucket.Put([]byte(doc.ID), data); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		return nil
	})
}

// GetDocument retrieves a document by type and ID
func (s *Storage) GetDocument(ctx context.Context, entityType models.EntityType, id string) (*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var doc *models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := documentBucket(tx, entityType)
		if err != nil {
			return err
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrDocumentNotFound
		}

		doc = &models.Document{}
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments returns all documents of a type owned by userID
func (s *Storage) ListDocuments(ctx context.Context, entityType models.EntityType, userID string) ([]*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var docs []*models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := documentBucket(tx, entityType)
		if err != nil {
			return err
		}

		return bucket.ForEach(func(k, v []byte) error {
			doc := &models.Document{}
			if err := json.Unmarshal(v, doc); err != nil {
				return fmt.Errorf("failed to unmarshal document: %w", err)
			}

			// Фильтруем по userID
			if userID == "" || doc.UserID == userID {
				docs = append(docs, doc)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// DeleteDocument removes a document
func (s *Storage) DeleteDocument(ctx context.Context, entityType models.EntityType, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := documentBucket(tx, entityType)
		if err != nil {
			return err
		}

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrDocumentNotFound
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		return nil
	})
}

// CountDocuments returns the number of documents of a type
func (s *Storage) CountDocuments(ctx context.Context, entityType models.EntityType) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := documentBucket(tx, entityType)
		if err != nil {
			return err
		}
		count = bucket.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
