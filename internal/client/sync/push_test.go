package sync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/focuskeeper/internal/breaker"
	httpClient "github.com/iudanet/focuskeeper/internal/client/api"
	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/retry"
	"github.com/iudanet/focuskeeper/pkg/api"
)

func enqueue(t *testing.T, e *testEnv, entityType models.EntityType, id string, op models.Operation) *models.SyncQueueItem {
	t.Helper()
	item, err := e.queue.Enqueue(context.Background(), "u1", entityType, id, op, json.RawMessage(`{"id":"`+id+`","user_id":"u1"}`))
	require.NoError(t, err)
	return item
}

func okPushAPI() *httpClient.SyncAPIMock {
	return &httpClient.SyncAPIMock{
		PushItemFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{Success: true}, nil
		},
	}
}

func TestPush_WorkSessionCreate_RemovesItem(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	var received api.PushRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathSync, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(api.PushResponse{Success: true})
	}))
	defer server.Close()

	svc := e.pushService(httpClient.NewClient(server.URL, "key"))

	enqueue(t, e, models.EntityWorkSession, "ws-1", models.OperationCreate)
	require.NoError(t, svc.RefreshCounts(ctx))
	before := e.state.Snapshot().PendingItemsCount
	require.Equal(t, 1, before)

	result := svc.ProcessSyncQueue(ctx)

	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, "work_session", received.EntityType)
	assert.Equal(t, "CREATE", received.Operation)

	items, err := e.queue.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, before-1, e.state.Snapshot().PendingItemsCount)
	assert.Equal(t, breaker.StateClosed, e.breaker.State())

	pushed, err := e.store.GetLastPushTime(ctx)
	require.NoError(t, err)
	assert.False(t, pushed.IsZero())
}

func TestPush_Unauthorized_MarksFailedAfterOneAttempt(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.MsgInvalidAPIKey})
	}))
	defer server.Close()

	svc := e.pushService(httpClient.NewClient(server.URL, "bad"))
	item := enqueue(t, e, models.EntityWorkSession, "ws-1", models.OperationCreate)

	result := svc.ProcessSyncQueue(ctx)
	assert.Equal(t, 1, result.Failed)

	got, err := e.queue.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusFailed, got.Status)
	assert.Equal(t, 1, got.AttemptCount)
	assert.Contains(t, got.ErrorMessage, api.MsgInvalidAPIKey)

	// Повторный проход не трогает failed элемент
	svc.ProcessSyncQueue(ctx)
	assert.Equal(t, int32(1), calls.Load())

	st := e.state.Snapshot()
	assert.Equal(t, 0, st.PendingItemsCount)
	assert.Equal(t, 1, st.FailedItemsCount)
	require.Len(t, st.SyncErrors, 1)
	assert.Equal(t, retry.ErrorAuth, st.SyncErrors[0].Type)
	assert.Equal(t, item.ID, st.SyncErrors[0].ItemID)
}

func TestPush_ServerError_SchedulesDurableRetry(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	apiMock := &httpClient.SyncAPIMock{
		PushItemFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return nil, &httpClient.StatusError{Status: http.StatusServiceUnavailable, Message: "down"}
		},
	}
	svc := e.pushService(apiMock)
	svc.now = func() time.Time { return testNow }

	item := enqueue(t, e, models.EntityProject, "p-1", models.OperationCreate)

	result := svc.ProcessSyncQueue(ctx)
	assert.Equal(t, 1, result.Retried)

	got, err := e.queue.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusPending, got.Status)
	assert.Equal(t, 1, got.AttemptCount)
	assert.True(t, testNow.Add(time.Second).Equal(got.NextAttemptAt), "base delay on first attempt")

	// До NextAttemptAt элемент пропускается
	result = svc.ProcessSyncQueue(ctx)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, apiMock.PushItemCalls(), 1)

	// После - снова отправляется, задержка растет
	svc.now = func() time.Time { return testNow.Add(2 * time.Second) }
	svc.ProcessSyncQueue(ctx)
	assert.Len(t, apiMock.PushItemCalls(), 2)

	got, err = e.queue.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AttemptCount)
	assert.True(t, testNow.Add(2*time.Second).Add(2*time.Second).Equal(got.NextAttemptAt))
}

func TestPush_RetryExhaustion_MarksFailed(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	apiMock := &httpClient.SyncAPIMock{
		PushItemFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return nil, &httpClient.StatusError{Status: http.StatusInternalServerError}
		},
	}
	svc := e.pushService(apiMock)
	e.breaker = breaker.New(breaker.Config{FailureThreshold: 100, ResetTimeout: time.Minute, HalfOpenRequests: 3})
	svc.breaker = e.breaker

	item := enqueue(t, e, models.EntityBigTask, "bt-1", models.OperationUpdate)

	clock := testNow
	svc.now = func() time.Time { return clock }

	for i := 0; i < testRetryConfig().MaxAttempts; i++ {
		svc.ProcessSyncQueue(ctx)
		clock = clock.Add(time.Hour)
	}

	got, err := e.queue.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusFailed, got.Status)
	assert.Equal(t, testRetryConfig().MaxAttempts, got.AttemptCount)
	assert.Len(t, apiMock.PushItemCalls(), testRetryConfig().MaxAttempts)
}

func TestPush_RateLimit_HonoursResetHint(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	reset := time.Now().Add(10 * time.Minute)
	apiMock := &httpClient.SyncAPIMock{
		PushItemFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return nil, &httpClient.StatusError{Status: http.StatusTooManyRequests, Code: api.CodeThrottling, RetryAfter: reset}
		},
	}
	svc := e.pushService(apiMock)

	item := enqueue(t, e, models.EntityMoodEntry, "m-1", models.OperationCreate)
	svc.ProcessSyncQueue(ctx)

	got, err := e.queue.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusPending, got.Status)
	assert.WithinDuration(t, reset, got.NextAttemptAt, time.Second)

	st := e.state.Snapshot()
	require.Len(t, st.SyncErrors, 1)
	assert.Equal(t, retry.ErrorRateLimit, st.SyncErrors[0].Type)
}

func TestPush_PreservesPerEntityOrder(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	var first atomic.Bool
	apiMock := &httpClient.SyncAPIMock{
		PushItemFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			if first.CompareAndSwap(false, true) {
				return nil, &httpClient.StatusError{Status: http.StatusBadGateway}
			}
			return &api.PushResponse{Success: true}, nil
		},
	}
	svc := e.pushService(apiMock)

	create := enqueue(t, e, models.EntityProject, "p-1", models.OperationCreate)
	update := enqueue(t, e, models.EntityProject, "p-1", models.OperationUpdate)
	other := enqueue(t, e, models.EntityProject, "p-2", models.OperationCreate)

	result := svc.ProcessSyncQueue(ctx)
	assert.Equal(t, PushResult{Pushed: 1, Retried: 1, Skipped: 1}, result)

	calls := apiMock.PushItemCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "CREATE", calls[0].Req.Operation)
	assert.JSONEq(t, string(other.Data), string(calls[1].Req.Payload))

	items, err := e.queue.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, create.ID, items[0].ID)
	assert.Equal(t, update.ID, items[1].ID)
	assert.Equal(t, 0, items[1].AttemptCount, "later item was not attempted")
}

func TestPush_OpenBreakerStopsPass(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	apiMock := &httpClient.SyncAPIMock{
		PushItemFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return nil, errors.New("dial tcp 10.0.0.1:443: connect: connection refused")
		},
	}
	svc := e.pushService(apiMock)
	svc.breaker = breaker.New(breaker.Config{FailureThreshold: 1, ResetTimeout: time.Minute, HalfOpenRequests: 1})

	enqueue(t, e, models.EntityProject, "p-1", models.OperationCreate)
	enqueue(t, e, models.EntityProject, "p-2", models.OperationCreate)
	enqueue(t, e, models.EntityProject, "p-3", models.OperationCreate)

	result := svc.ProcessSyncQueue(ctx)
	assert.True(t, result.Stopped)
	assert.Equal(t, 1, result.Retried)
	assert.Len(t, apiMock.PushItemCalls(), 1)
	assert.Equal(t, breaker.StateOpen, svc.breaker.State())

	st := e.state.Snapshot()
	assert.Equal(t, 3, st.PendingItemsCount)
	require.NotEmpty(t, st.SyncErrors)
	assert.Equal(t, retry.ErrorNetwork, st.SyncErrors[0].Type)
}

func TestPush_Offline(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.network.online.Store(false)

	apiMock := okPushAPI()
	svc := e.pushService(apiMock)
	enqueue(t, e, models.EntityWorkSession, "ws-1", models.OperationCreate)

	t.Run("force sync fails fast", func(t *testing.T) {
		_, err := svc.ForceSync(ctx)
		assert.ErrorIs(t, err, ErrOffline)
	})

	t.Run("scheduled drain is a no-op", func(t *testing.T) {
		result := svc.ProcessSyncQueue(ctx)
		assert.Equal(t, PushResult{}, result)
	})

	assert.Empty(t, apiMock.PushItemCalls())
	items, err := e.queue.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPush_ForceSync_InProgress(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	started := make(chan struct{})
	release := make(chan struct{})
	apiMock := &httpClient.SyncAPIMock{
		PushItemFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			close(started)
			<-release
			return &api.PushResponse{Success: true}, nil
		},
	}
	svc := e.pushService(apiMock)
	enqueue(t, e, models.EntityWorkSession, "ws-1", models.OperationCreate)

	done := make(chan PushResult)
	go func() {
		result, _ := svc.ForceSync(ctx)
		done <- result
	}()

	<-started
	assert.True(t, e.state.Snapshot().IsSyncing)

	_, err := svc.ForceSync(ctx)
	assert.ErrorIs(t, err, ErrSyncInProgress)
	assert.Equal(t, PushResult{}, svc.ProcessSyncQueue(ctx))

	close(release)
	result := <-done
	assert.Equal(t, 1, result.Pushed)
	assert.Len(t, apiMock.PushItemCalls(), 1)
	assert.False(t, e.state.Snapshot().IsSyncing)
}

func TestPush_AutoSync(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	apiMock := okPushAPI()
	svc := e.pushService(apiMock)

	svc.StartAutoSync(5 * time.Millisecond)
	handle := svc.autoSync
	svc.StartAutoSync(5 * time.Millisecond)
	assert.Equal(t, handle, svc.autoSync, "second start keeps the existing timer")
	assert.True(t, e.state.Snapshot().AutoSyncEnabled)

	enqueue(t, e, models.EntitySmallTask, "st-1", models.OperationCreate)
	require.Eventually(t, func() bool {
		items, err := e.queue.ListAll(ctx)
		return err == nil && len(items) == 0
	}, time.Second, 5*time.Millisecond)

	svc.StopAutoSync()
	assert.False(t, e.state.Snapshot().AutoSyncEnabled)
	svc.StopAutoSync()
}

func TestPush_RetryAndClearFailedItems(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	svc := e.pushService(okPushAPI())

	a := enqueue(t, e, models.EntityDopamineEntry, "d-1", models.OperationCreate)
	b := enqueue(t, e, models.EntityDopamineEntry, "d-2", models.OperationCreate)
	_, err := e.queue.MarkFailed(ctx, a.ID, "forbidden")
	require.NoError(t, err)
	_, err = e.queue.MarkFailed(ctx, b.ID, "forbidden")
	require.NoError(t, err)

	n, err := svc.RetryFailedItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, e.state.Snapshot().PendingItemsCount)

	got, err := e.queue.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusPending, got.Status)
	assert.Equal(t, 1, got.AttemptCount)

	_, err = e.queue.MarkFailed(ctx, b.ID, "bad request")
	require.NoError(t, err)

	n, err = svc.ClearFailedItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	st := e.state.Snapshot()
	assert.Equal(t, 1, st.PendingItemsCount)
	assert.Equal(t, 0, st.FailedItemsCount)
}
