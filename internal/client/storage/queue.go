package storage

import (
	"context"

	"github.com/iudanet/focuskeeper/internal/models"
)

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage defines the durable FIFO log of pending outbound mutations.
type QueueStorage interface {
	// AppendQueueItem appends an item at the tail of the queue.
	// Assigns Seq and the per-entity Version in the same transaction.
	AppendQueueItem(ctx context.Context, item *models.SyncQueueItem) error

	// GetQueueItem retrieves an item by ID
	// Returns ErrQueueItemNotFound if item doesn't exist
	GetQueueItem(ctx context.Context, id string) (*models.SyncQueueItem, error)

	// UpdateQueueItem replaces an existing item keeping its position
	// Returns ErrQueueItemNotFound if item doesn't exist
	UpdateQueueItem(ctx context.Context, item *models.SyncQueueItem) error

	// DeleteQueueItem removes an item
	// Returns ErrQueueItemNotFound if item doesn't exist
	DeleteQueueItem(ctx context.Context, id string) error

	// ListQueueItems returns all items in insertion order
	ListQueueItems(ctx context.Context) ([]*models.SyncQueueItem, error)

	// ClearQueue removes every item
	ClearQueue(ctx context.Context) error
}
