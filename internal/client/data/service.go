// Package data implements local mutations of tracked entities.
// Every mutation is recorded in the sync queue before the local document is written.
package data

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
	"github.com/iudanet/focuskeeper/internal/validation"
)

//go:generate moq -out enqueuer_mock.go . Enqueuer
//go:generate moq -out service_mock.go . Service

// Enqueuer records outbound mutations.
type Enqueuer interface {
	Enqueue(
		ctx context.Context,
		userID string,
		entityType models.EntityType,
		entityID string,
		op models.Operation,
		data json.RawMessage,
	) (*models.SyncQueueItem, error)
	DeleteByID(ctx context.Context, id string) error
}

// Service определяет интерфейс для клиентского data сервиса
type Service interface {
	Create(ctx context.Context, e models.Entity) error
	Update(ctx context.Context, e models.Entity) error
	Delete(ctx context.Context, entityType models.EntityType, id string) error
	Get(ctx context.Context, id string, out models.Entity) error
	List(ctx context.Context, entityType models.EntityType, userID string) ([]models.Entity, error)
	Count(ctx context.Context, entityType models.EntityType) (int, error)
}

// Option настраивает service
type Option func(s *service)

// WithOnChange registers fn to run after every successful mutation.
func WithOnChange(fn func(ctx context.Context)) Option {
	return func(s *service) {
		s.onChange = fn
	}
}

// service handles client-side entity mutations
type service struct {
	documents storage.DocumentStorage
	queue     Enqueuer
	logger    *slog.Logger
	onChange  func(ctx context.Context)
	now       func() time.Time
}

// NewService creates a new data service
func NewService(documents storage.DocumentStorage, queue Enqueuer, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		documents: documents,
		queue:     queue,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new entity and enqueues a CREATE.
func (s *service) Create(ctx context.Context, e models.Entity) error {
	meta := e.Meta()
	// Генерируем ID если не задан
	if meta.ID == "" {
		meta.ID = uuid.New().String()
	}

	now := s.now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	return s.write(ctx, e, models.OperationCreate)
}

// Update replaces an existing entity and enqueues an UPDATE.
// updated_at always moves forward, even when the wall clock went back.
func (s *service) Update(ctx context.Context, e models.Entity) error {
	meta := e.Meta()
	if meta.ID == "" {
		return retry.NewValidationError("id is required for update")
	}

	existing, err := s.documents.GetDocument(ctx, e.Kind(), meta.ID)
	if err != nil {
		return fmt.Errorf("failed to load %s %s: %w", e.Kind(), meta.ID, err)
	}

	// Владелец и время создания не меняются
	meta.UserID = existing.UserID
	meta.CreatedAt = existing.CreatedAt
	meta.UpdatedAt = nextUpdatedAt(s.now().UTC(), existing.UpdatedAt)

	return s.write(ctx, e, models.OperationUpdate)
}

// Delete removes an entity locally and enqueues a DELETE carrying its last snapshot.
func (s *service) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	existing, err := s.documents.GetDocument(ctx, entityType, id)
	if err != nil {
		return fmt.Errorf("failed to load %s %s: %w", entityType, id, err)
	}

	item, err := s.queue.Enqueue(ctx, existing.UserID, entityType, id, models.OperationDelete, existing.Data)
	if err != nil {
		return err
	}

	if err := s.documents.DeleteDocument(ctx, entityType, id); err != nil {
		s.rollback(ctx, item)
		return fmt.Errorf("failed to delete %s %s: %w", entityType, id, err)
	}

	s.logger.Debug("Entity deleted", "entity_type", entityType, "entity_id", id)
	s.changed(ctx)
	return nil
}

// Get loads an entity into out. The type is taken from out.
func (s *service) Get(ctx context.Context, id string, out models.Entity) error {
	doc, err := s.documents.GetDocument(ctx, out.Kind(), id)
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", out.Kind(), id, err)
	}
	return doc.Decode(out)
}

// List returns all entities of a type owned by userID.
func (s *service) List(ctx context.Context, entityType models.EntityType, userID string) ([]models.Entity, error) {
	docs, err := s.documents.ListDocuments(ctx, entityType, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entityType, err)
	}

	entities := make([]models.Entity, 0, len(docs))
	for _, doc := range docs {
		e := models.NewEntity(doc.Type)
		if e == nil {
			continue
		}
		if err := doc.Decode(e); err != nil {
			// Пропускаем поврежденные записи
			s.logger.Warn("Skipping corrupted document", "entity_type", doc.Type, "entity_id", doc.ID, "error", err)
			continue
		}
		entities = append(entities, e)
	}

	return entities, nil
}

// Count returns the number of stored entities of a type.
func (s *service) Count(ctx context.Context, entityType models.EntityType) (int, error) {
	return s.documents.CountDocuments(ctx, entityType)
}

// write validates e, enqueues op and then saves the document.
// The queue item is removed again when the local write fails.
func (s *service) write(ctx context.Context, e models.Entity, op models.Operation) error {
	if err := validation.ValidateEntity(e); err != nil {
		return retry.NewValidationError("%v", err)
	}

	doc, err := models.NewDocument(e)
	if err != nil {
		return err
	}

	item, err := s.queue.Enqueue(ctx, doc.UserID, doc.Type, doc.ID, op, doc.Data)
	if err != nil {
		return err
	}

	if err := s.documents.SaveDocument(ctx, doc); err != nil {
		s.rollback(ctx, item)
		return fmt.Errorf("failed to save %s %s: %w", doc.Type, doc.ID, err)
	}

	s.logger.Debug("Entity saved", "entity_type", doc.Type, "entity_id", doc.ID, "operation", op)
	s.changed(ctx)
	return nil
}

func (s *service) rollback(ctx context.Context, item *models.SyncQueueItem) {
	err := s.queue.DeleteByID(ctx, item.ID)
	if err != nil && !errors.Is(err, storage.ErrQueueItemNotFound) {
		s.logger.Error("Failed to roll back sync queue item", "item_id", item.ID, "error", err)
	}
}

func (s *service) changed(ctx context.Context) {
	if s.onChange != nil {
		s.onChange(ctx)
	}
}

// nextUpdatedAt возвращает now, но строго позже previous
func nextUpdatedAt(now, previous time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Nanosecond)
}
