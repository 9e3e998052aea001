package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/server/storage"
	"github.com/iudanet/focuskeeper/internal/validation"
	"github.com/iudanet/focuskeeper/pkg/api"
)

// maxPushBody ограничивает размер одной мутации
const maxPushBody = 1 << 20

// remoteKeyFields внутренние ключи таблицы, которые не уходят клиенту
var remoteKeyFields = []string{"pk", "sk", "PK", "SK"}

//go:generate moq -out sync_storage_mock.go . SyncStorage

// SyncStorage is the part of the mirror table the sync endpoints use
type SyncStorage interface {
	PutItem(ctx context.Context, item *models.RemoteItem) (bool, error)
	DeleteItem(ctx context.Context, pk, sk string) error
	ListItemsSince(ctx context.Context, pk string, since time.Time) ([]*models.RemoteItem, error)
}

// SyncHandler handles push and pull requests of the sync clients
type SyncHandler struct {
	logger  *slog.Logger
	storage SyncStorage
	now     func() time.Time
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, storage SyncStorage) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

// Push обрабатывает POST /api/v1/sync: одна мутация одной сущности.
// CREATE и UPDATE записывают строку по LWW, DELETE удаляет ее.
// Data.Applied = false, если на сервере уже более новая версия или удалять нечего.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		WriteError(w, api.MsgAPIKeyRequired, "", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPushBody)).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode push request", "error", err)
		WriteError(w, "invalid request body", api.CodeValidation, http.StatusBadRequest)
		return
	}

	item, op, err := parsePush(req)
	if err != nil {
		h.logger.Warn("Rejected push request", "user_id", userID, "error", err)
		WriteError(w, err.Error(), api.CodeValidation, http.StatusBadRequest)
		return
	}

	// Ключ дает доступ только к данным своего пользователя
	if item.UserID != userID {
		h.logger.Warn("Payload user_id mismatch",
			"expected", userID,
			"got", item.UserID,
			"entity_id", item.EntityID)
		WriteError(w, "payload user_id does not match the API key", api.CodeAccessDenied, http.StatusForbidden)
		return
	}

	now := h.now().UTC()
	applied := true

	switch op {
	case models.OperationDelete:
		err = h.storage.DeleteItem(ctx, item.PK, item.SK)
		if errors.Is(err, storage.ErrItemNotFound) {
			applied, err = false, nil
		}
	default:
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = now
		}
		item.SyncedAt = now
		applied, err = h.storage.PutItem(ctx, item)
	}
	if err != nil {
		h.logger.Error("Failed to apply push", "error", err, "user_id", userID, "sk", item.SK)
		WriteError(w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Push applied",
		"user_id", userID,
		"entity_type", item.EntityType,
		"entity_id", item.EntityID,
		"operation", op,
		"applied", applied)

	WriteJSON(w, api.PushResponse{
		Success: true,
		Data: &api.PushResult{
			EntityType: string(item.EntityType),
			EntityID:   item.EntityID,
			Operation:  string(op),
			Applied:    applied,
		},
	}, http.StatusOK)
}

// parsePush проверяет запрос и строит строку зеркала
func parsePush(req api.PushRequest) (*models.RemoteItem, models.Operation, error) {
	entityType, err := models.ParseEntityType(req.EntityType)
	if err != nil {
		return nil, "", err
	}

	op, err := models.ParseOperation(req.Operation)
	if err != nil {
		return nil, "", err
	}

	if len(req.Payload) == 0 || string(req.Payload) == "null" {
		return nil, "", errors.New("payload is required")
	}

	item, err := models.NewRemoteItem(entityType, req.Payload)
	if err != nil {
		return nil, "", err
	}
	if err := validation.ValidateID(item.EntityID); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateUserID(item.UserID); err != nil {
		return nil, "", err
	}

	return item, op, nil
}

// Pull обрабатывает GET /api/v1/sync/pull?userId=...&lastSyncTime=...
// Возвращает записи, записанные после lastSyncTime, сгруппированные по типу.
// syncTime ответа клиент присылает как lastSyncTime в следующий раз.
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		WriteError(w, api.MsgAPIKeyRequired, "", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	if requested := query.Get("userId"); requested != "" && requested != userID {
		h.logger.Warn("Pull for another user", "expected", userID, "got", requested)
		WriteError(w, "userId does not match the API key", api.CodeAccessDenied, http.StatusForbidden)
		return
	}

	var since time.Time
	if raw := query.Get("lastSyncTime"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			h.logger.Warn("Invalid lastSyncTime parameter", "lastSyncTime", raw, "error", err)
			WriteError(w, "lastSyncTime must be an RFC3339 timestamp", api.CodeValidation, http.StatusBadRequest)
			return
		}
		since = parsed
	}

	items, err := h.storage.ListItemsSince(ctx, models.PartitionKey(userID), since)
	if err != nil {
		h.logger.Error("Failed to list sync items", "error", err, "user_id", userID)
		WriteError(w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	// Водяной знак берется из прочитанных строк, а не из часов сервера:
	// запись, закоммиченная после чтения, получит synced_at больше него
	watermark := since
	data := newPullData()
	for _, item := range items {
		if item.SyncedAt.After(watermark) {
			watermark = item.SyncedAt
		}

		group := data.Group(string(item.EntityType))
		if group == nil {
			h.logger.Warn("Skipping item of unknown type", "sk", item.SK, "entity_type", item.EntityType)
			continue
		}

		payload, err := stripRemoteKeys(item.Data)
		if err != nil {
			h.logger.Warn("Skipping unreadable item", "sk", item.SK, "error", err)
			continue
		}
		*group = append(*group, payload)
	}

	WriteJSON(w, api.PullResponse{
		Success:   true,
		SyncTime:  formatWatermark(watermark),
		Data:      data,
		ItemCount: data.Count(),
	}, http.StatusOK)

	h.logger.Info("Pull completed",
		"user_id", userID,
		"since", since,
		"items", data.Count())
}

// formatWatermark: пустая строка, пока у пользователя нет ни одной записи,
// тогда следующий pull снова будет полным
func formatWatermark(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// newPullData создает группы без nil, чтобы в JSON были пустые массивы
func newPullData() api.PullData {
	return api.PullData{
		Projects:        []json.RawMessage{},
		BigTasks:        []json.RawMessage{},
		SmallTasks:      []json.RawMessage{},
		MoodEntries:     []json.RawMessage{},
		DopamineEntries: []json.RawMessage{},
		WorkSessions:    []json.RawMessage{},
		ScheduleMemos:   []json.RawMessage{},
		SleepSchedules:  []json.RawMessage{},
	}
}

// stripRemoteKeys удаляет pk/sk из сохраненного снимка
func stripRemoteKeys(data json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	stripped := false
	for _, key := range remoteKeyFields {
		if _, ok := fields[key]; ok {
			delete(fields, key)
			stripped = true
		}
	}
	if !stripped {
		return data, nil
	}

	return json.Marshal(fields)
}
