package sync

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/focuskeeper/internal/client/api"
	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/retry"
	"github.com/iudanet/focuskeeper/pkg/api"
)

func projectJSON(id string, updatedAt time.Time, name string) json.RawMessage {
	data, _ := json.Marshal(map[string]any{
		"id":         id,
		"user_id":    "u1",
		"name":       name,
		"created_at": testNow,
		"updated_at": updatedAt,
	})
	return data
}

func pullAPI(resp *api.PullResponse) *httpClient.SyncAPIMock {
	return &httpClient.SyncAPIMock{
		PullFunc: func(ctx context.Context, userID, lastSyncTime string) (*api.PullResponse, error) {
			return resp, nil
		},
	}
}

func saveLocal(t *testing.T, e *testEnv, raw json.RawMessage) *models.Document {
	t.Helper()
	doc, err := toDocument(models.EntityProject, raw, "u1")
	require.NoError(t, err)
	require.NoError(t, e.store.SaveDocument(context.Background(), doc))
	return doc
}

func TestPull_LastWriterWins(t *testing.T) {
	t1 := testNow
	tests := []struct {
		name       string
		remoteTime time.Time
		wantRemote bool
	}{
		{name: "remote newer", remoteTime: t1.Add(time.Second), wantRemote: true},
		{name: "remote newer by a nanosecond", remoteTime: t1.Add(time.Nanosecond), wantRemote: true},
		{name: "equal keeps local", remoteTime: t1, wantRemote: false},
		{name: "remote older", remoteTime: t1.Add(-time.Hour), wantRemote: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			e := newTestEnv(t)

			local := saveLocal(t, e, projectJSON("p-1", t1, "local"))
			remote := projectJSON("p-1", tt.remoteTime, "remote")

			svc := e.pullService(pullAPI(&api.PullResponse{
				Success:  true,
				SyncTime: "2026-03-01T12:00:00Z",
				Data:     api.PullData{Projects: []json.RawMessage{remote}},
			}))

			result := svc.PullFromCloud(ctx, "u1")
			require.NoError(t, result.Err)

			got, err := e.store.GetDocument(ctx, models.EntityProject, "p-1")
			require.NoError(t, err)

			if tt.wantRemote {
				assert.Equal(t, 1, result.Updated)
				assert.JSONEq(t, string(remote), string(got.Data))
				assert.True(t, tt.remoteTime.Equal(got.UpdatedAt))
			} else {
				assert.Equal(t, 1, result.Unchanged)
				assert.JSONEq(t, string(local.Data), string(got.Data))
				assert.True(t, t1.Equal(got.UpdatedAt))
			}
		})
	}
}

func TestPull_InsertsUnknownAndStripsKeys(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	svc := e.pullService(pullAPI(&api.PullResponse{
		Success:  true,
		SyncTime: "2026-03-01T12:00:00Z",
		Data: api.PullData{
			WorkSessions: []json.RawMessage{
				json.RawMessage(`{"pk":"USER#u1","sk":"WORK_SESSION#ws-1","id":"ws-1","user_id":"u1","updated_at":"2026-03-01T10:00:00Z","duration_minutes":25}`),
			},
			SleepSchedules: []json.RawMessage{
				json.RawMessage(`{"PK":"USER#u1","SK":"SLEEP_SCHEDULE#s-1","id":"s-1","updated_at":"2026-03-01T10:00:00Z"}`),
			},
		},
		ItemCount: 2,
	}))

	result := svc.PullFromCloud(ctx, "u1")
	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Inserted)

	doc, err := e.store.GetDocument(ctx, models.EntityWorkSession, "ws-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"ws-1","user_id":"u1","updated_at":"2026-03-01T10:00:00Z","duration_minutes":25}`, string(doc.Data))

	sleep, err := e.store.GetDocument(ctx, models.EntitySleepSchedule, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", sleep.UserID, "owner defaults to the pulling user")
	assert.NotContains(t, string(sleep.Data), "SK")
}

func TestPull_ConcurrentCallsFetchOnce(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	apiMock := &httpClient.SyncAPIMock{
		PullFunc: func(ctx context.Context, userID, lastSyncTime string) (*api.PullResponse, error) {
			close(entered)
			<-release
			return &api.PullResponse{Success: true, SyncTime: "2026-03-01T12:00:00Z"}, nil
		},
	}
	svc := e.pullService(apiMock)

	var wg sync.WaitGroup
	wg.Add(1)
	var first *PullResult
	go func() {
		defer wg.Done()
		first = svc.PullFromCloud(ctx, "u1")
	}()

	<-entered
	assert.True(t, e.state.Snapshot().IsPulling)

	second := svc.PullFromCloud(ctx, "u1")
	assert.True(t, second.InProgress)
	assert.Len(t, apiMock.PullCalls(), 1)

	close(release)
	wg.Wait()

	assert.False(t, first.InProgress)
	assert.NoError(t, first.Err)
	assert.Len(t, apiMock.PullCalls(), 1)
	assert.False(t, e.state.Snapshot().IsPulling)
}

func TestPull_FetchErrorIsRecordedNotRaised(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	apiMock := &httpClient.SyncAPIMock{
		PullFunc: func(ctx context.Context, userID, lastSyncTime string) (*api.PullResponse, error) {
			return nil, &httpClient.StatusError{Status: 503, Message: "unavailable"}
		},
	}
	svc := e.pullService(apiMock)

	result := svc.PullFromCloud(ctx, "u1")
	require.Error(t, result.Err)
	assert.Equal(t, retry.ErrorServer, retry.Classify(result.Err))

	st := e.state.Snapshot()
	require.Len(t, st.SyncErrors, 1)
	assert.Equal(t, retry.ErrorServer, st.SyncErrors[0].Type)
	assert.True(t, st.LastPullTime.IsZero())
}

func TestPull_MergeErrorKeepsWatermark(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	require.NoError(t, e.store.SaveLastPullTime(ctx, "2026-02-01T00:00:00Z"))

	svc := e.pullService(pullAPI(&api.PullResponse{
		Success:  true,
		SyncTime: "2026-03-01T12:00:00Z",
		Data: api.PullData{
			Projects: []json.RawMessage{
				json.RawMessage(`{"name":"no id"}`),
				projectJSON("p-2", testNow, "ok"),
				json.RawMessage(`[1,2,3]`),
			},
		},
	}))

	result := svc.PullFromCloud(ctx, "u1")
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 1, result.Inserted)

	var se *retry.SyncError
	require.True(t, errors.As(result.Err, &se))
	assert.Equal(t, retry.ErrorMerge, se.Type)

	// Водяной знак не двигается
	last, err := e.store.GetLastPullTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01T00:00:00Z", last)

	st := e.state.Snapshot()
	require.Len(t, st.SyncErrors, 2)
	assert.Equal(t, retry.ErrorMerge, st.SyncErrors[0].Type)
}

func TestPull_IncrementalWatermark(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	var seen []string
	apiMock := &httpClient.SyncAPIMock{
		PullFunc: func(ctx context.Context, userID, lastSyncTime string) (*api.PullResponse, error) {
			seen = append(seen, lastSyncTime)
			return &api.PullResponse{Success: true, SyncTime: "2026-03-01T12:00:0" + string(rune('0'+len(seen))) + "Z"}, nil
		},
	}
	svc := e.pullService(apiMock)

	svc.PullFromCloud(ctx, "u1")
	svc.PullFromCloud(ctx, "u1")

	assert.Equal(t, []string{"", "2026-03-01T12:00:01Z"}, seen)
	assert.False(t, e.state.Snapshot().LastPullTime.IsZero())
}

func TestPull_NeverPushes(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	saveLocal(t, e, projectJSON("p-1", testNow.Add(time.Hour), "local newer"))
	apiMock := pullAPI(&api.PullResponse{
		Success: true,
		Data:    api.PullData{Projects: []json.RawMessage{projectJSON("p-1", testNow, "remote older")}},
	})
	svc := e.pullService(apiMock)

	result := svc.PullFromCloud(ctx, "u1")
	assert.Equal(t, 1, result.Unchanged)
	assert.Empty(t, apiMock.PushItemCalls())
}

func TestPull_Offline(t *testing.T) {
	e := newTestEnv(t)
	e.network.online.Store(false)

	apiMock := pullAPI(&api.PullResponse{Success: true})
	svc := e.pullService(apiMock)

	result := svc.PullFromCloud(context.Background(), "u1")
	assert.True(t, result.Offline)
	assert.Empty(t, apiMock.PullCalls())
}

func TestPull_StorageReadError(t *testing.T) {
	e := newTestEnv(t)

	docs := &storage.DocumentStorageMock{
		GetDocumentFunc: func(ctx context.Context, entityType models.EntityType, id string) (*models.Document, error) {
			return nil, storage.ErrStorageClosed
		},
	}
	svc := NewPullService(
		pullAPI(&api.PullResponse{Success: true, Data: api.PullData{Projects: []json.RawMessage{projectJSON("p-1", testNow, "x")}}}),
		docs, e.store, e.state, e.network, e.sched, setupTestLogger(),
	)

	result := svc.PullFromCloud(context.Background(), "u1")
	assert.Equal(t, 1, result.Failed)
	assert.ErrorIs(t, result.Err, storage.ErrStorageClosed)
	assert.Empty(t, docs.SaveDocumentCalls())
}

func TestPull_PeriodicPullRunsImmediately(t *testing.T) {
	e := newTestEnv(t)

	apiMock := pullAPI(&api.PullResponse{Success: true})
	svc := e.pullService(apiMock)

	svc.StartPeriodicPull("u1", time.Hour)
	svc.StartPeriodicPull("u1", time.Hour)

	require.Eventually(t, func() bool { return len(apiMock.PullCalls()) == 1 }, time.Second, 5*time.Millisecond)
	svc.StopPeriodicPull()

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, apiMock.PullCalls(), 1)
}

func TestInitialSync(t *testing.T) {
	e := newTestEnv(t)

	apiMock := pullAPI(&api.PullResponse{Success: true, Data: api.PullData{Projects: []json.RawMessage{projectJSON("p-1", testNow, "x")}}})
	result := e.pullService(apiMock).InitialSync(context.Background(), "u1")

	assert.Equal(t, 1, result.Inserted)
	require.Len(t, apiMock.PullCalls(), 1)
	assert.Equal(t, "u1", apiMock.PullCalls()[0].UserID)
}
