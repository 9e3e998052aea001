package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntityType тип синхронизируемой сущности
type EntityType string

const (
	EntityProject       EntityType = "project"
	EntityBigTask       EntityType = "big_task"
	EntitySmallTask     EntityType = "small_task"
	EntityWorkSession   EntityType = "work_session"
	EntityMoodEntry     EntityType = "mood_entry"
	EntityDopamineEntry EntityType = "dopamine_entry"
	EntityScheduleMemo  EntityType = "schedule_memo"
	EntitySleepSchedule EntityType = "sleep_schedule"
)

// AllEntityTypes lists every tracked entity type in a stable order.
// Pull merges run in this order so parents land before children.
var AllEntityTypes = []EntityType{
	EntityProject,
	EntityBigTask,
	EntitySmallTask,
	EntityWorkSession,
	EntityMoodEntry,
	EntityDopamineEntry,
	EntityScheduleMemo,
	EntitySleepSchedule,
}

// Valid reports whether t is one of the tracked entity types.
func (t EntityType) Valid() bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseEntityType converts a raw string into EntityType.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return t, nil
}

// Document is the storage form of any synced entity.
// Data holds the full JSON of the entity, including id, user_id and timestamps.
type Document struct {
	CreatedAt time.Time       `json:"created_at"` // CreatedAt время создания записи
	UpdatedAt time.Time       `json:"updated_at"` // UpdatedAt единственный критерий при разрешении конфликтов
	ID        string          `json:"id"`         // ID идентификатор сущности (UUID)
	UserID    string          `json:"user_id"`    // UserID владелец записи
	Type      EntityType      `json:"type"`       // Type тип сущности
	Data      json.RawMessage `json:"data"`       // Data полный JSON снимок сущности
}

// IsNewerThan reports whether d was written strictly after other.
// Equal timestamps are not newer: the existing record wins a tie.
func (d *Document) IsNewerThan(other *Document) bool {
	return d.UpdatedAt.After(other.UpdatedAt)
}

// NewDocument builds a Document from a typed entity.
func NewDocument(e Entity) (*Document, error) {
	meta := e.Meta()
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", e.Kind(), err)
	}

	return &Document{
		ID:        meta.ID,
		UserID:    meta.UserID,
		Type:      e.Kind(),
		Data:      data,
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}, nil
}

// Decode unmarshals the document payload into out.
func (d *Document) Decode(out Entity) error {
	if out.Kind() != d.Type {
		return fmt.Errorf("document %s is %s, not %s", d.ID, d.Type, out.Kind())
	}
	if err := json.Unmarshal(d.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", d.Type, err)
	}
	return nil
}
