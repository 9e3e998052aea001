package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Префиксы составных ключей удаленной таблицы
const (
	partitionPrefix = "USER#"
	keySeparator    = "#"
)

// RemoteItem is one row of the remote mirror table.
// PK groups all rows of a user, SK addresses one entity inside the group.
type RemoteItem struct {
	UpdatedAt  time.Time       `json:"updated_at"`  // UpdatedAt версия записи для LWW
	CreatedAt  time.Time       `json:"created_at"`  // CreatedAt время первой записи на сервере
	SyncedAt   time.Time       `json:"synced_at"`   // SyncedAt серверное время последней записи, по нему работает pull
	PK         string          `json:"pk"`          // PK "USER#<user_id>"
	SK         string          `json:"sk"`          // SK "<ENTITY_TYPE>#<entity_id>"
	UserID     string          `json:"user_id"`     // UserID владелец записи
	EntityType EntityType      `json:"entity_type"` // EntityType тип сущности
	EntityID   string          `json:"entity_id"`   // EntityID идентификатор сущности
	Data       json.RawMessage `json:"data"`        // Data снимок сущности в том виде, в каком его прислал клиент
}

// PartitionKey returns the pk of every row owned by userID.
func PartitionKey(userID string) string {
	return partitionPrefix + userID
}

// SortKey returns the sk of one entity.
func SortKey(entityType EntityType, entityID string) string {
	return strings.ToUpper(string(entityType)) + keySeparator + entityID
}

// NewRemoteItem builds a mirror row from a pushed entity snapshot.
// The payload must carry id and user_id; timestamps are taken from it when present.
func NewRemoteItem(entityType EntityType, payload json.RawMessage) (*RemoteItem, error) {
	var base Base
	if err := json.Unmarshal(payload, &base); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", entityType, err)
	}
	if base.ID == "" {
		return nil, fmt.Errorf("%s payload has no id", entityType)
	}
	if base.UserID == "" {
		return nil, fmt.Errorf("%s payload has no user_id", entityType)
	}

	return &RemoteItem{
		PK:         PartitionKey(base.UserID),
		SK:         SortKey(entityType, base.ID),
		UserID:     base.UserID,
		EntityType: entityType,
		EntityID:   base.ID,
		Data:       payload,
		CreatedAt:  base.CreatedAt,
		UpdatedAt:  base.UpdatedAt,
	}, nil
}
