package models

import "time"

// Entity is implemented by every synced domain record.
type Entity interface {
	Kind() EntityType
	Meta() *Base
}

// Base содержит поля, общие для всех синхронизируемых сущностей.
type Base struct {
	CreatedAt time.Time `json:"created_at"` // CreatedAt время создания
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt продвигается при каждой локальной мутации
	ID        string    `json:"id"`         // ID уникальный идентификатор (UUID)
	UserID    string    `json:"user_id"`    // UserID владелец записи
}

// Meta returns the common fields.
func (b *Base) Meta() *Base { return b }

// Project представляет проект верхнего уровня.
type Project struct {
	Deadline *time.Time `json:"deadline,omitempty"` // Deadline опциональный срок
	Name     string     `json:"name"`               // Name название проекта
	Color    string     `json:"color,omitempty"`    // Color цвет метки в UI
	Notes    string     `json:"notes,omitempty"`    // Notes заметки
	Base
	Archived bool `json:"archived"` // Archived проект в архиве
}

func (*Project) Kind() EntityType { return EntityProject }

// BigTask is a milestone-sized task inside a project.
type BigTask struct {
	Deadline  *time.Time `json:"deadline,omitempty"`
	ProjectID string     `json:"project_id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Base
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
}

func (*BigTask) Kind() EntityType { return EntityBigTask }

// SmallTask is a concrete work item under a big task.
type SmallTask struct {
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	BigTaskID      string     `json:"big_task_id"`
	ProjectID      string     `json:"project_id"`
	Name           string     `json:"name"`
	Base
	EstimatedMinutes int  `json:"estimated_minutes"`
	ActualMinutes    int  `json:"actual_minutes"`
	Completed        bool `json:"completed"`
	Emergency        bool `json:"emergency"`
}

func (*SmallTask) Kind() EntityType { return EntitySmallTask }

// WorkSession is a tracked block of focused time.
type WorkSession struct {
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	SmallTaskID string     `json:"small_task_id,omitempty"`
	SessionType string     `json:"session_type"` // focus, break, pomodoro
	Base
	FocusLevel   int `json:"focus_level,omitempty"`
	Interruption int `json:"interruption_count"`
}

func (*WorkSession) Kind() EntityType { return EntityWorkSession }

// MoodEntry is a point-in-time mood log.
type MoodEntry struct {
	RecordedAt time.Time `json:"recorded_at"`
	Notes      string    `json:"notes,omitempty"`
	Base
	Level int `json:"level"` // 1..5
}

func (*MoodEntry) Kind() EntityType { return EntityMoodEntry }

// DopamineEntry is a log of a stimulating activity.
type DopamineEntry struct {
	RecordedAt time.Time `json:"recorded_at"`
	Activity   string    `json:"activity"`
	Notes      string    `json:"notes,omitempty"`
	Base
	Intensity int `json:"intensity"`
}

func (*DopamineEntry) Kind() EntityType { return EntityDopamineEntry }

// ScheduleMemo is a free-form memo pinned to a calendar day.
type ScheduleMemo struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Content string `json:"content"`
	Base
}

func (*ScheduleMemo) Kind() EntityType { return EntityScheduleMemo }

// SleepSchedule stores planned and actual sleep for one night.
type SleepSchedule struct {
	Date            string     `json:"date"` // YYYY-MM-DD
	PlannedBedtime  string     `json:"planned_bedtime"`
	PlannedWakeTime string     `json:"planned_wake_time"`
	ActualBedtime   *time.Time `json:"actual_bedtime,omitempty"`
	ActualWakeTime  *time.Time `json:"actual_wake_time,omitempty"`
	Base
	Quality int `json:"quality,omitempty"`
}

func (*SleepSchedule) Kind() EntityType { return EntitySleepSchedule }

// NewEntity returns an empty typed entity for t, or nil for unknown types.
func NewEntity(t EntityType) Entity {
	switch t {
	case EntityProject:
		return &Project{}
	case EntityBigTask:
		return &BigTask{}
	case EntitySmallTask:
		return &SmallTask{}
	case EntityWorkSession:
		return &WorkSession{}
	case EntityMoodEntry:
		return &MoodEntry{}
	case EntityDopamineEntry:
		return &DopamineEntry{}
	case EntityScheduleMemo:
		return &ScheduleMemo{}
	case EntitySleepSchedule:
		return &SleepSchedule{}
	default:
		return nil
	}
}
