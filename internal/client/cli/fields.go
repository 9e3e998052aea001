package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/focuskeeper/internal/models"
)

// fieldKind определяет, как разбирать введенное значение
type fieldKind int

const (
	kindText fieldKind = iota
	kindInt
	kindFloat
	kindBool
	kindTime
)

// inputTimeLayouts принимаемые форматы времени, кроме RFC3339 и "now"
var inputTimeLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

type field struct {
	key      string
	prompt   string
	kind     fieldKind
	required bool
}

// entityFields lists the interactive prompts per entity type.
var entityFields = map[models.EntityType][]field{
	models.EntityProject: {
		{key: "name", prompt: "Name", required: true},
		{key: "color", prompt: "Color (optional)"},
		{key: "deadline", prompt: "Deadline (YYYY-MM-DD, optional)", kind: kindTime},
		{key: "notes", prompt: "Notes (optional)"},
	},
	models.EntityBigTask: {
		{key: "project_id", prompt: "Project ID", required: true},
		{key: "name", prompt: "Name", required: true},
		{key: "status", prompt: "Status (optional)"},
		{key: "estimated_hours", prompt: "Estimated hours (optional)", kind: kindFloat},
		{key: "deadline", prompt: "Deadline (YYYY-MM-DD, optional)", kind: kindTime},
	},
	models.EntitySmallTask: {
		{key: "big_task_id", prompt: "Big task ID", required: true},
		{key: "project_id", prompt: "Project ID (optional)"},
		{key: "name", prompt: "Name", required: true},
		{key: "estimated_minutes", prompt: "Estimated minutes (optional)", kind: kindInt},
		{key: "scheduled_start", prompt: "Scheduled start (YYYY-MM-DD HH:MM, optional)", kind: kindTime},
		{key: "scheduled_end", prompt: "Scheduled end (YYYY-MM-DD HH:MM, optional)", kind: kindTime},
		{key: "emergency", prompt: "Emergency (y/n, optional)", kind: kindBool},
	},
	models.EntityWorkSession: {
		{key: "start_time", prompt: "Start time (YYYY-MM-DD HH:MM or now)", kind: kindTime, required: true},
		{key: "end_time", prompt: "End time (optional)", kind: kindTime},
		{key: "small_task_id", prompt: "Small task ID (optional)"},
		{key: "session_type", prompt: "Session type (focus, break, pomodoro)"},
		{key: "focus_level", prompt: "Focus level 0-5 (optional)", kind: kindInt},
	},
	models.EntityMoodEntry: {
		{key: "level", prompt: "Mood level 1-5", kind: kindInt, required: true},
		{key: "recorded_at", prompt: "Recorded at (default now)", kind: kindTime},
		{key: "notes", prompt: "Notes (optional)"},
	},
	models.EntityDopamineEntry: {
		{key: "activity", prompt: "Activity", required: true},
		{key: "intensity", prompt: "Intensity 1-10", kind: kindInt, required: true},
		{key: "recorded_at", prompt: "Recorded at (default now)", kind: kindTime},
		{key: "notes", prompt: "Notes (optional)"},
	},
	models.EntityScheduleMemo: {
		{key: "date", prompt: "Date (YYYY-MM-DD)", required: true},
		{key: "content", prompt: "Content", required: true},
	},
	models.EntitySleepSchedule: {
		{key: "date", prompt: "Date (YYYY-MM-DD)", required: true},
		{key: "planned_bedtime", prompt: "Planned bedtime (HH:MM, optional)"},
		{key: "planned_wake_time", prompt: "Planned wake time (HH:MM, optional)"},
		{key: "actual_bedtime", prompt: "Actual bedtime (YYYY-MM-DD HH:MM, optional)", kind: kindTime},
		{key: "actual_wake_time", prompt: "Actual wake time (YYYY-MM-DD HH:MM, optional)", kind: kindTime},
		{key: "quality", prompt: "Quality 0-5 (optional)", kind: kindInt},
	},
}

// defaultNowFields получают текущее время, если значение не введено
var defaultNowFields = map[string]bool{"recorded_at": true}

// promptEntity asks for every field of t and decodes the answers into a new entity.
func (c *Cli) promptEntity(t models.EntityType, now time.Time) (models.Entity, error) {
	values := make(map[string]any)
	for _, f := range entityFields[t] {
		raw, err := c.io.ReadInput(f.prompt + ": ")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.key, err)
		}
		if raw == "" {
			if f.required {
				return nil, fmt.Errorf("%s cannot be empty", f.key)
			}
			if defaultNowFields[f.key] {
				values[f.key] = now.UTC()
			}
			continue
		}

		v, err := parseField(f, raw, now)
		if err != nil {
			return nil, err
		}
		values[f.key] = v
	}

	return decodeEntity(t, values)
}

func parseField(f field, raw string, now time.Time) (any, error) {
	switch f.kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", f.key)
		}
		return n, nil
	case kindFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.key)
		}
		return n, nil
	case kindBool:
		switch strings.ToLower(raw) {
		case "y", "yes", "true", "1":
			return true, nil
		case "n", "no", "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%s must be y or n", f.key)
	case kindTime:
		return parseTime(f.key, raw, now)
	default:
		return raw, nil
	}
}

// parseTime accepts "now", RFC3339 or a local date with optional minutes.
func parseTime(key, raw string, now time.Time) (time.Time, error) {
	if strings.EqualFold(raw, "now") {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range inputTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: cannot parse time %q", key, raw)
}

// decodeEntity builds a typed entity from a JSON object. Unknown keys are ignored.
func decodeEntity(t models.EntityType, values map[string]any) (models.Entity, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", t, err)
	}
	return parseEntity(t, raw)
}

func parseEntity(t models.EntityType, raw []byte) (models.Entity, error) {
	e := models.NewEntity(t)
	if e == nil {
		return nil, fmt.Errorf("unknown entity type %q", t)
	}
	if err := json.Unmarshal(raw, e); err != nil {
		return nil, fmt.Errorf("invalid %s data: %w", t, err)
	}
	return e, nil
}

// entityTypeArg resolves a command argument, accepting plural forms ("projects").
func entityTypeArg(arg string) (models.EntityType, error) {
	arg = strings.ToLower(strings.ReplaceAll(arg, "-", "_"))
	if t, err := models.ParseEntityType(arg); err == nil {
		return t, nil
	}
	for _, singular := range []string{strings.TrimSuffix(arg, "s"), strings.TrimSuffix(arg, "ies") + "y"} {
		if t, err := models.ParseEntityType(singular); err == nil {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q. Use one of: %s", arg, entityTypeNames())
}

func entityTypeNames() string {
	names := make([]string, 0, len(models.AllEntityTypes))
	for _, t := range models.AllEntityTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
