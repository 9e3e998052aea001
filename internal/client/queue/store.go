// Package queue implements the durable FIFO sync queue of outbound mutations.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/retry"
)

// Counts количество элементов очереди по статусам
type Counts struct {
	Pending    int `json:"pending" yaml:"pending"`
	Processing int `json:"processing" yaml:"processing"`
	Failed     int `json:"failed" yaml:"failed"`
}

// Store is the sync queue. Enqueue never consults connectivity.
type Store struct {
	repo   storage.QueueStorage
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a queue Store over repo.
func NewStore(repo storage.QueueStorage, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Enqueue appends a pending mutation to the tail of the queue.
// Returns a VALIDATION SyncError when entity type, entity id or data is missing or invalid.
func (s *Store) Enqueue(
	ctx context.Context,
	userID string,
	entityType models.EntityType,
	entityID string,
	op models.Operation,
	data json.RawMessage,
) (*models.SyncQueueItem, error) {
	if entityType == "" {
		return nil, retry.NewValidationError("entity type is required")
	}
	if !entityType.Valid() {
		return nil, retry.NewValidationError("unknown entity type %q", entityType)
	}
	if entityID == "" {
		return nil, retry.NewValidationError("entity id is required")
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, retry.NewValidationError("data is required")
	}
	if !json.Valid(data) {
		return nil, retry.NewValidationError("data is not valid JSON")
	}

	if op == "" {
		op = models.OperationCreate
	}
	if _, err := models.ParseOperation(string(op)); err != nil {
		return nil, retry.NewValidationError("%v", err)
	}

	now := s.now().UTC()
	item := &models.SyncQueueItem{
		ID:         uuid.New().String(),
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Operation:  op,
		Status:     models.QueueStatusPending,
		Data:       append(json.RawMessage(nil), data...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.AppendQueueItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to enqueue %s %s: %w", op, item.EntityKey(), err)
	}

	s.logger.Debug("Mutation enqueued",
		"item_id", item.ID,
		"entity", item.EntityKey(),
		"operation", op,
		"version", item.Version)

	return item, nil
}

// ListAll returns every item in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]*models.SyncQueueItem, error) {
	items, err := s.repo.ListQueueItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync queue: %w", err)
	}
	return items, nil
}

// Get returns a single item.
func (s *Store) Get(ctx context.Context, id string) (*models.SyncQueueItem, error) {
	return s.repo.GetQueueItem(ctx, id)
}

// update применяет mutate к элементу и сохраняет его на том же месте
func (s *Store) update(ctx context.Context, id string, mutate func(item *models.SyncQueueItem)) (*models.SyncQueueItem, error) {
	item, err := s.repo.GetQueueItem(ctx, id)
	if err != nil {
		return nil, err
	}

	mutate(item)
	item.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateQueueItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update sync queue item %s: %w", id, err)
	}
	return item, nil
}

// MarkProcessing flags an item as being delivered.
func (s *Store) MarkProcessing(ctx context.Context, id string) error {
	_, err := s.update(ctx, id, func(item *models.SyncQueueItem) {
		item.Status = models.QueueStatusProcessing
	})
	return err
}

// MarkCompleted removes a delivered item.
func (s *Store) MarkCompleted(ctx context.Context, id string) error {
	if err := s.repo.DeleteQueueItem(ctx, id); err != nil {
		return fmt.Errorf("failed to complete sync queue item %s: %w", id, err)
	}
	return nil
}

// MarkFailed increments attempt_count and parks the item as failed.
func (s *Store) MarkFailed(ctx context.Context, id, errorMessage string) (*models.SyncQueueItem, error) {
	return s.update(ctx, id, func(item *models.SyncQueueItem) {
		item.Status = models.QueueStatusFailed
		item.AttemptCount++
		item.ErrorMessage = errorMessage
		item.NextAttemptAt = time.Time{}
	})
}

// ScheduleRetry increments attempt_count and keeps the item pending until at.
func (s *Store) ScheduleRetry(ctx context.Context, id, errorMessage string, at time.Time) (*models.SyncQueueItem, error) {
	return s.update(ctx, id, func(item *models.SyncQueueItem) {
		item.Status = models.QueueStatusPending
		item.AttemptCount++
		item.ErrorMessage = errorMessage
		item.NextAttemptAt = at.UTC()
	})
}

// DeleteByID removes one item regardless of status.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return s.repo.DeleteQueueItem(ctx, id)
}

// DeleteAll drops the whole queue.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.repo.ClearQueue(ctx); err != nil {
		return fmt.Errorf("failed to clear sync queue: %w", err)
	}
	s.logger.Warn("Sync queue cleared")
	return nil
}

// ResetFailed moves failed items back to pending. attempt_count is preserved.
func (s *Store) ResetFailed(ctx context.Context) (int, error) {
	return s.forEachWithStatus(ctx, models.QueueStatusFailed, func(item *models.SyncQueueItem) error {
		_, err := s.update(ctx, item.ID, func(it *models.SyncQueueItem) {
			it.Status = models.QueueStatusPending
			it.NextAttemptAt = time.Time{}
		})
		return err
	})
}

// DeleteFailed permanently discards failed items.
func (s *Store) DeleteFailed(ctx context.Context) (int, error) {
	n, err := s.forEachWithStatus(ctx, models.QueueStatusFailed, func(item *models.SyncQueueItem) error {
		return s.repo.DeleteQueueItem(ctx, item.ID)
	})
	if n > 0 {
		s.logger.Warn("Failed sync queue items discarded", "count", n)
	}
	return n, err
}

// RecoverProcessing returns items left processing by a crash to pending.
func (s *Store) RecoverProcessing(ctx context.Context) (int, error) {
	n, err := s.forEachWithStatus(ctx, models.QueueStatusProcessing, func(item *models.SyncQueueItem) error {
		_, err := s.update(ctx, item.ID, func(it *models.SyncQueueItem) {
			it.Status = models.QueueStatusPending
		})
		return err
	})
	if n > 0 {
		s.logger.Info("Recovered interrupted sync queue items", "count", n)
	}
	return n, err
}

// Counts returns the number of items per status.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return Counts{}, err
	}

	var c Counts
	for _, item := range items {
		switch item.Status {
		case models.QueueStatusPending:
			c.Pending++
		case models.QueueStatusProcessing:
			c.Processing++
		case models.QueueStatusFailed:
			c.Failed++
		}
	}
	return c, nil
}

func (s *Store) forEachWithStatus(ctx context.Context, status models.QueueStatus, fn func(item *models.SyncQueueItem) error) (int, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, item := range items {
		if item.Status != status {
			continue
		}
		if err := fn(item); err != nil {
			// Элемент мог быть удален параллельно
			if errors.Is(err, storage.ErrQueueItemNotFound) {
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}
