package api

import "encoding/json"

// Пути HTTP API
const (
	PathSync   = "/api/v1/sync"
	PathPull   = "/api/v1/sync/pull"
	PathHealth = "/api/v1/health"
)

// PushRequest представляет одну мутацию, отправляемую на сервер
type PushRequest struct {
	EntityType string          `json:"entity_type"`         // тип сущности (project, big_task, ...)
	Operation  string          `json:"operation,omitempty"` // CREATE, UPDATE, DELETE; пусто = CREATE
	Payload    json.RawMessage `json:"payload"`             // снимок сущности
}

// PushResponse представляет ответ сервера на мутацию
type PushResponse struct {
	Data    *PushResult `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Success bool        `json:"success"`
}

// PushResult описывает, как сервер применил мутацию
type PushResult struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Operation  string `json:"operation"`
	Applied    bool   `json:"applied"` // false если на сервере уже более новая версия
}

// PullData группирует записи по типу сущности.
// Записи возвращаются без внутренних ключей хранилища (pk/sk).
type PullData struct {
	Projects        []json.RawMessage `json:"projects"`
	BigTasks        []json.RawMessage `json:"bigTasks"`
	SmallTasks      []json.RawMessage `json:"smallTasks"`
	MoodEntries     []json.RawMessage `json:"moodEntries"`
	DopamineEntries []json.RawMessage `json:"dopamineEntries"`
	WorkSessions    []json.RawMessage `json:"workSessions"`
	ScheduleMemos   []json.RawMessage `json:"scheduleMemos"`
	SleepSchedules  []json.RawMessage `json:"sleepSchedules"`
}

// PullResponse представляет снимок удаленных данных пользователя
type PullResponse struct {
	SyncTime  string   `json:"syncTime"` // RFC3339Nano synced_at последней отданной записи; пусто, если записей нет
	Data      PullData `json:"data"`
	ItemCount int      `json:"itemCount"`
	Success   bool     `json:"success"`
}

// Count returns the number of records across all groups.
func (d *PullData) Count() int {
	return len(d.Projects) + len(d.BigTasks) + len(d.SmallTasks) +
		len(d.MoodEntries) + len(d.DopamineEntries) + len(d.WorkSessions) +
		len(d.ScheduleMemos) + len(d.SleepSchedules)
}

// Group returns the slot holding records of entityType, or nil for unknown types.
func (d *PullData) Group(entityType string) *[]json.RawMessage {
	switch entityType {
	case "project":
		return &d.Projects
	case "big_task":
		return &d.BigTasks
	case "small_task":
		return &d.SmallTasks
	case "mood_entry":
		return &d.MoodEntries
	case "dopamine_entry":
		return &d.DopamineEntries
	case "work_session":
		return &d.WorkSessions
	case "schedule_memo":
		return &d.ScheduleMemos
	case "sleep_schedule":
		return &d.SleepSchedules
	default:
		return nil
	}
}
