package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
)

// seqKey кодирует порядковый номер в big-endian, чтобы курсор шел в FIFO порядке
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// queueBuckets returns the queue and its id index.
func queueBuckets(tx *bbolt.Tx) (*bbolt.Bucket, *bbolt.Bucket, error) {
	queue := tx.Bucket(bucketQueue)
	if queue == nil {
		return nil, nil, fmt.Errorf("sync queue bucket not found")
	}
	index := tx.Bucket(bucketQueueIndex)
	if index == nil {
		return nil, nil, fmt.Errorf("sync queue index bucket not found")
	}
	return queue, index, nil
}

// AppendQueueItem appends an item at the tail of the queue.
func (s *Storage) AppendQueueItem(ctx context.Context, item *models.SyncQueueItem) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		queue, index, err := queueBuckets(tx)
		if err != nil {
			return err
		}
		versions := tx.Bucket(bucketEntityVersions)
		if versions == nil {
			return fmt.Errorf("entity versions bucket not found")
		}

		if index.Get([]byte(item.ID)) != nil {
			return fmt.Errorf("sync queue item %s already exists", item.ID)
		}

		seq, err := queue.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		// Версия растет на каждую мутацию сущности и переживает удаление элементов
		var version uint64
		entityKey := []byte(item.EntityKey())
		if raw := versions.Get(entityKey); raw != nil {
			version = binary.BigEndian.Uint64(raw)
		}
		version++
		if err := versions.Put(entityKey, seqKey(version)); err != nil {
			return fmt.Errorf("failed to save entity version: %w", err)
		}

		item.Seq = seq
		item.Version = int64(version)

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal sync queue item: %w", err)
		}

		key := seqKey(seq)
		if err := queue.Put(key, data); err != nil {
			return fmt.Errorf("failed to save sync queue item: %w", err)
		}
		if err := index.Put([]byte(item.ID), key); err != nil {
			return fmt.Errorf("failed to index sync queue item: %w", err)
		}

		return nil
	})
}

// GetQueueItem retrieves an item by ID
func (s *Storage) GetQueueItem(ctx context.Context, id string) (*models.SyncQueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var item *models.SyncQueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		queue, index, err := queueBuckets(tx)
		if err != nil {
			return err
		}

		key := index.Get([]byte(id))
		if key == nil {
			return storage.ErrQueueItemNotFound
		}
		data := queue.Get(key)
		if data == nil {
			return storage.ErrQueueItemNotFound
		}

		item = &models.SyncQueueItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal sync queue item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateQueueItem replaces an existing item keeping its position
func (s *Storage) UpdateQueueItem(ctx context.Context, item *models.SyncQueueItem) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		queue, index, err := queueBuckets(tx)
		if err != nil {
			return err
		}

		key := index.Get([]byte(item.ID))
		if key == nil {
			return storage.ErrQueueItemNotFound
		}

		// Позиция в очереди не меняется
		item.Seq = binary.BigEndian.Uint64(key)

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal sync queue item: %w", err)
		}
		if err := queue.Put(key, data); err != nil {
			return fmt.Errorf("failed to update sync queue item: %w", err)
		}
		return nil
	})
}

// DeleteQueueItem removes an item
func (s *Storage) DeleteQueueItem(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		queue, index, err := queueBuckets(tx)
		if err != nil {
			return err
		}

		key := index.Get([]byte(id))
		if key == nil {
			return storage.ErrQueueItemNotFound
		}

		if err := queue.Delete(key); err != nil {
			return fmt.Errorf("failed to delete sync queue item: %w", err)
		}
		if err := index.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete sync queue index: %w", err)
		}
		return nil
	})
}

// ListQueueItems returns all items in insertion order
func (s *Storage) ListQueueItems(ctx context.Context) ([]*models.SyncQueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var items []*models.SyncQueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		queue, _, err := queueBuckets(tx)
		if err != nil {
			return err
		}

		return queue.ForEach(func(k, v []byte) error {
			item := &models.SyncQueueItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal sync queue item: %w", err)
			}
			items = append(items, item)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ClearQueue removes every item
// Sequence and entity versions keep growing after a clear.
func (s *Storage) ClearQueue(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		queue, index, err := queueBuckets(tx)
		if err != nil {
			return err
		}

		var keys [][]byte
		if err := queue.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		}); err != nil {
			return err
		}
		for _, k := range keys {
			if err := queue.Delete(k); err != nil {
				return fmt.Errorf("failed to delete sync queue item: %w", err)
			}
		}

		var ids [][]byte
		if err := index.ForEach(func(k, _ []byte) error {
			ids = append(ids, append([]byte(nil), k...))
			return nil
		}); err != nil {
			return err
		}
		for _, id := range ids {
			if err := index.Delete(id); err != nil {
				return fmt.Errorf("failed to delete sync queue index: %w", err)
			}
		}

		return nil
	})
}
