package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
)

var (
	// BoltDB bucket names
	bucketDocuments      = []byte("documents")
	bucketQueue          = []byte("sync_queue")
	bucketQueueIndex     = []byte("sync_queue_index")
	bucketEntityVersions = []byte("entity_versions")
	bucketMetadata       = []byte("metadata")
)

// Compile-time checks
var (
	_ storage.DocumentStorage = (*Storage)(nil)
	_ storage.QueueStorage    = (*Storage)(nil)
	_ storage.MetadataStorage = (*Storage)(nil)
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketQueue, bucketQueueIndex, bucketEntityVersions, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}

		// Документы лежат во вложенных bucket по типу сущности
		docs, err := tx.CreateBucketIfNotExists(bucketDocuments)
		if err != nil {
			return fmt.Errorf("failed to create documents bucket: %w", err)
		}
		for _, t := range models.AllEntityTypes {
			if _, err := docs.CreateBucketIfNotExists([]byte(t)); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", t, err)
			}
		}

		return nil
	})
}
