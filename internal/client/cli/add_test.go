package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/focuskeeper/internal/client/data"
	"github.com/iudanet/focuskeeper/internal/client/iocli"
	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/config"
	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/retry"
)

func newMockCli(mockIO *iocli.IOMock, svc data.Service) *Cli {
	return &Cli{
		io:   mockIO,
		data: svc,
		cfg:  &config.ClientConfig{UserID: "u1", ServerURL: "http://localhost:8080"},
	}
}

func TestCli_runAdd_FromData(t *testing.T) {
	ctx := context.Background()
	mockIO, out := newTestIO(false)

	var created models.Entity
	svc := &data.ServiceMock{
		CreateFunc: func(ctx context.Context, e models.Entity) error {
			e.Meta().ID = "p-1"
			created = e
			return nil
		},
	}

	c := newMockCli(mockIO, svc)
	err := c.runAdd(ctx, models.EntityProject, `{"name":"Alpha","color":"#fff","user_id":"someone-else"}`, false)
	require.NoError(t, err)

	require.Len(t, svc.CreateCalls(), 1)
	project, ok := created.(*models.Project)
	require.True(t, ok)
	assert.Equal(t, "Alpha", project.Name)
	assert.Equal(t, "#fff", project.Color)
	// Владелец всегда берется из конфигурации
	assert.Equal(t, "u1", project.UserID)

	assert.Contains(t, out.String(), "✓ Added project p-1")
	assert.Contains(t, out.String(), "focuskeeper sync")
	assert.Empty(t, mockIO.ReadInputCalls())
}

func TestCli_runAdd_Interactive(t *testing.T) {
	ctx := context.Background()
	mockIO, out := newTestIO(false, "2026-03-01", "Dentist at 15:00")

	svc := &data.ServiceMock{
		CreateFunc: func(ctx context.Context, e models.Entity) error {
			return nil
		},
	}

	c := newMockCli(mockIO, svc)
	require.NoError(t, c.runAdd(ctx, models.EntityScheduleMemo, "", false))

	require.Len(t, svc.CreateCalls(), 1)
	memo := svc.CreateCalls()[0].E.(*models.ScheduleMemo)
	assert.Equal(t, "2026-03-01", memo.Date)
	assert.Equal(t, "Dentist at 15:00", memo.Content)
	assert.Contains(t, out.String(), "=== Add schedule_memo ===")
}

func TestCli_runAdd_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid json", func(t *testing.T) {
		mockIO, _ := newTestIO(false)
		svc := &data.ServiceMock{}

		err := newMockCli(mockIO, svc).runAdd(ctx, models.EntityProject, `{"name":`, false)
		require.Error(t, err)
		assert.Empty(t, svc.CreateCalls())
	})

	t.Run("validation", func(t *testing.T) {
		mockIO, _ := newTestIO(false)
		svc := &data.ServiceMock{
			CreateFunc: func(ctx context.Context, e models.Entity) error {
				return retry.NewValidationError("name is required")
			},
		}

		err := newMockCli(mockIO, svc).runAdd(ctx, models.EntityProject, `{}`, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add project")
		assert.Equal(t, retry.ErrorValidation, retry.Classify(err))
	})
}

func storedBigTask() models.BigTask {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return models.BigTask{
		Base: models.Base{
			ID:        "bt-1",
			UserID:    "u1",
			CreatedAt: created,
			UpdatedAt: created,
		},
		ProjectID:      "p-1",
		Name:           "Release",
		Status:         "active",
		EstimatedHours: 10,
	}
}

func bigTaskService(stored models.BigTask) *data.ServiceMock {
	return &data.ServiceMock{
		GetFunc: func(ctx context.Context, id string, out models.Entity) error {
			if id != stored.ID {
				return fmt.Errorf("failed to get big_task %s: %w", id, storage.ErrDocumentNotFound)
			}
			*out.(*models.BigTask) = stored
			return nil
		},
		UpdateFunc: func(ctx context.Context, e models.Entity) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, entityType models.EntityType, id string) error {
			return nil
		},
	}
}

func TestCli_runUpdate_MergesPatch(t *testing.T) {
	ctx := context.Background()
	mockIO, out := newTestIO(false)
	svc := bigTaskService(storedBigTask())

	c := newMockCli(mockIO, svc)
	err := c.runUpdate(ctx, models.EntityBigTask, "bt-1", `{"status":"done","actual_hours":12.5,"id":"hijack","user_id":"u2"}`, false)
	require.NoError(t, err)

	require.Len(t, svc.UpdateCalls(), 1)
	task := svc.UpdateCalls()[0].E.(*models.BigTask)
	assert.Equal(t, "bt-1", task.ID)
	assert.Equal(t, "u1", task.UserID)
	assert.Equal(t, "Release", task.Name)
	assert.Equal(t, "p-1", task.ProjectID)
	assert.Equal(t, "done", task.Status)
	assert.InDelta(t, 12.5, task.ActualHours, 1e-9)
	assert.InDelta(t, 10, task.EstimatedHours, 1e-9)

	assert.Contains(t, out.String(), "✓ Updated big_task bt-1")
}

func TestCli_runUpdate_Interactive(t *testing.T) {
	ctx := context.Background()
	// project_id, name, status, estimated_hours, deadline
	mockIO, _ := newTestIO(false, "", "Release 2", "", "", "")
	svc := bigTaskService(storedBigTask())

	c := newMockCli(mockIO, svc)
	require.NoError(t, c.runUpdate(ctx, models.EntityBigTask, "bt-1", "", false))

	task := svc.UpdateCalls()[0].E.(*models.BigTask)
	assert.Equal(t, "Release 2", task.Name)
	assert.Equal(t, "p-1", task.ProjectID)
	assert.Equal(t, "active", task.Status)

	calls := mockIO.ReadInputCalls()
	require.Len(t, calls, 5)
	assert.Equal(t, "Name [Release]: ", calls[1].Prompt)
}

func TestCli_runUpdate_NotFound(t *testing.T) {
	mockIO, _ := newTestIO(false)
	svc := bigTaskService(storedBigTask())

	err := newMockCli(mockIO, svc).runUpdate(context.Background(), models.EntityBigTask, "missing", `{"name":"x"}`, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "big_task not found with ID: missing")
	assert.Empty(t, svc.UpdateCalls())
}

func TestCli_runDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled", func(t *testing.T) {
		mockIO, out := newTestIO(false, "no")
		svc := bigTaskService(storedBigTask())

		require.NoError(t, newMockCli(mockIO, svc).runDelete(ctx, models.EntityBigTask, "bt-1", false, false))
		assert.Empty(t, svc.DeleteCalls())
		assert.Contains(t, out.String(), "name: Release")
		assert.Contains(t, out.String(), "Deletion cancelled.")
	})

	t.Run("confirmed", func(t *testing.T) {
		mockIO, out := newTestIO(false, "yes")
		svc := bigTaskService(storedBigTask())

		require.NoError(t, newMockCli(mockIO, svc).runDelete(ctx, models.EntityBigTask, "bt-1", false, false))
		require.Len(t, svc.DeleteCalls(), 1)
		assert.Equal(t, models.EntityBigTask, svc.DeleteCalls()[0].EntityType)
		assert.Equal(t, "bt-1", svc.DeleteCalls()[0].Id)
		assert.Contains(t, out.String(), "✓ Deleted big_task bt-1")
	})

	t.Run("without prompt", func(t *testing.T) {
		mockIO, _ := newTestIO(false)
		svc := bigTaskService(storedBigTask())

		require.NoError(t, newMockCli(mockIO, svc).runDelete(ctx, models.EntityBigTask, "bt-1", true, false))
		assert.Len(t, svc.DeleteCalls(), 1)
		assert.Empty(t, mockIO.ReadInputCalls())
	})
}

func TestCli_runGet(t *testing.T) {
	mockIO, out := newTestIO(false)
	svc := bigTaskService(storedBigTask())
	c := newMockCli(mockIO, svc)
	c.jsonOut = true

	require.NoError(t, c.runGet(context.Background(), models.EntityBigTask, "bt-1"))

	var got models.BigTask
	require.NoError(t, json.Unmarshal([]byte(out.String()), &got))
	assert.Equal(t, storedBigTask(), got)
}

func projectList() []models.Entity {
	return []models.Entity{
		&models.Project{Base: models.Base{ID: "p-1", UserID: "u1"}, Name: "Alpha", Color: "red"},
		&models.Project{Base: models.Base{ID: "p-2", UserID: "u1"}, Name: "Beta", Archived: true},
	}
}

func TestCli_runList(t *testing.T) {
	ctx := context.Background()
	svc := &data.ServiceMock{
		ListFunc: func(ctx context.Context, entityType models.EntityType, userID string) ([]models.Entity, error) {
			return projectList(), nil
		},
	}

	t.Run("table on terminal", func(t *testing.T) {
		mockIO, out := newTestIO(true)
		require.NoError(t, newMockCli(mockIO, svc).runList(ctx, models.EntityProject))

		text := out.String()
		assert.Contains(t, text, "project (2)")
		assert.Contains(t, text, "name")
		assert.Contains(t, text, "Alpha")
		assert.Contains(t, text, "Beta")
		assert.Contains(t, text, "p-2")
	})

	t.Run("yaml when piped", func(t *testing.T) {
		mockIO, out := newTestIO(false)
		require.NoError(t, newMockCli(mockIO, svc).runList(ctx, models.EntityProject))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out.String()), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Alpha", got[0]["name"])
		assert.Equal(t, true, got[1]["archived"])
	})

	t.Run("json", func(t *testing.T) {
		mockIO, out := newTestIO(true)
		c := newMockCli(mockIO, svc)
		c.jsonOut = true
		require.NoError(t, c.runList(ctx, models.EntityProject))

		var got []models.Project
		require.NoError(t, json.Unmarshal([]byte(out.String()), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Beta", got[1].Name)
	})

	assert.Equal(t, "u1", svc.ListCalls()[0].UserID)
}

func TestCli_runList_Empty(t *testing.T) {
	mockIO, out := newTestIO(true)
	svc := &data.ServiceMock{
		ListFunc: func(ctx context.Context, entityType models.EntityType, userID string) ([]models.Entity, error) {
			return []models.Entity{}, nil
		},
	}

	require.NoError(t, newMockCli(mockIO, svc).runList(context.Background(), models.EntityMoodEntry))
	assert.Contains(t, out.String(), "No mood_entry found.")
	assert.Contains(t, out.String(), "focuskeeper add mood_entry")
}
