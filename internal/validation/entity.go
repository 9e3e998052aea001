package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/iudanet/focuskeeper/internal/models"
)

// IDPattern определяет допустимый формат идентификатора сущности
// Латинские буквы, цифры, дефис и подчеркивание (UUID подходит)
// Длина: 1-64 символа
var IDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// UserIDPattern определяет допустимый формат идентификатора пользователя
var UserIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]{1,128}$`)

// clockPattern время суток в формате HH:MM
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	// MaxNameLen максимальная длина названия проекта или задачи
	MaxNameLen = 200
	// MaxTextLen максимальная длина заметок и мемо
	MaxTextLen = 10000
	// DateLayout формат календарной даты
	DateLayout = "2006-01-02"
)

// ValidateID проверяет идентификатор сущности
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if !IDPattern.MatchString(id) {
		return fmt.Errorf("id %q can only contain letters, numbers, '-' and '_' (max 64)", id)
	}
	return nil
}

// ValidateUserID проверяет идентификатор пользователя
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	if !UserIDPattern.MatchString(userID) {
		return fmt.Errorf("user id %q contains invalid characters", userID)
	}
	return nil
}

// ValidateDate проверяет дату в формате YYYY-MM-DD
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("date %q must be in YYYY-MM-DD format", date)
	}
	return nil
}

// ValidateClock проверяет время суток в формате HH:MM
func ValidateClock(clock string) error {
	if !clockPattern.MatchString(clock) {
		return fmt.Errorf("time %q must be in HH:MM format", clock)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}
	return nil
}

func validateRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", field, lo, hi, v)
	}
	return nil
}

// ValidateEntity checks the common fields and the per-type rules of e.
func ValidateEntity(e models.Entity) error {
	meta := e.Meta()
	if err := ValidateID(meta.ID); err != nil {
		return err
	}
	if err := ValidateUserID(meta.UserID); err != nil {
		return err
	}

	switch v := e.(type) {
	case *models.Project:
		return validateName(v.Name)
	case *models.BigTask:
		if err := validateName(v.Name); err != nil {
			return err
		}
		if v.ProjectID == "" {
			return fmt.Errorf("big task requires project_id")
		}
		if v.EstimatedHours < 0 || v.ActualHours < 0 {
			return fmt.Errorf("hours cannot be negative")
		}
	case *models.SmallTask:
		if err := validateName(v.Name); err != nil {
			return err
		}
		if v.BigTaskID == "" {
			return fmt.Errorf("small task requires big_task_id")
		}
		if v.EstimatedMinutes < 0 || v.ActualMinutes < 0 {
			return fmt.Errorf("minutes cannot be negative")
		}
		if v.ScheduledStart != nil && v.ScheduledEnd != nil && v.ScheduledEnd.Before(*v.ScheduledStart) {
			return fmt.Errorf("scheduled_end is before scheduled_start")
		}
	case *models.WorkSession:
		if v.StartTime.IsZero() {
			return fmt.Errorf("work session requires start_time")
		}
		if v.EndTime != nil && v.EndTime.Before(v.StartTime) {
			return fmt.Errorf("end_time is before start_time")
		}
		return validateRange("focus_level", v.FocusLevel, 0, 5)
	case *models.MoodEntry:
		if len(v.Notes) > MaxTextLen {
			return fmt.Errorf("notes must not exceed %d characters", MaxTextLen)
		}
		return validateRange("level", v.Level, 1, 5)
	case *models.DopamineEntry:
		if v.Activity == "" {
			return fmt.Errorf("activity cannot be empty")
		}
		return validateRange("intensity", v.Intensity, 1, 10)
	case *models.ScheduleMemo:
		if err := ValidateDate(v.Date); err != nil {
			return err
		}
		if len(v.Content) > MaxTextLen {
			return fmt.Errorf("content must not exceed %d characters", MaxTextLen)
		}
	case *models.SleepSchedule:
		if err := ValidateDate(v.Date); err != nil {
			return err
		}
		for _, clock := range []string{v.PlannedBedtime, v.PlannedWakeTime} {
			if clock == "" {
				continue
			}
			if err := ValidateClock(clock); err != nil {
				return err
			}
		}
		return validateRange("quality", v.Quality, 0, 5)
	default:
		return fmt.Errorf("unsupported entity type %s", e.Kind())
	}

	return nil
}
