package sync

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/focuskeeper/internal/breaker"
	httpClient "github.com/iudanet/focuskeeper/internal/client/api"
	"github.com/iudanet/focuskeeper/internal/client/queue"
	"github.com/iudanet/focuskeeper/internal/client/scheduler"
	"github.com/iudanet/focuskeeper/internal/client/storage/boltdb"
	"github.com/iudanet/focuskeeper/internal/retry"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeNetwork управляемое состояние сети
type fakeNetwork struct {
	online atomic.Bool
}

func newFakeNetwork(online bool) *fakeNetwork {
	n := &fakeNetwork{}
	n.online.Store(online)
	return n
}

func (n *fakeNetwork) IsOnline() bool { return n.online.Load() }

type testEnv struct {
	store   *boltdb.Storage
	queue   *queue.Store
	state   *StateStore
	network *fakeNetwork
	sched   *scheduler.Scheduler
	breaker *breaker.CircuitBreaker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sched := scheduler.New(context.Background(), setupTestLogger())
	t.Cleanup(sched.Stop)

	return &testEnv{
		store:   store,
		queue:   queue.NewStore(store, setupTestLogger()),
		state:   NewStateStore(true),
		network: newFakeNetwork(true),
		sched:   sched,
		breaker: breaker.New(breaker.DefaultConfig()),
	}
}

func testRetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.JitterEnabled = false
	return cfg
}

func (e *testEnv) pushService(apiClient httpClient.SyncAPI) *PushService {
	return NewPushService(apiClient, e.queue, e.store, e.breaker, e.state, e.network, e.sched, testRetryConfig(), setupTestLogger())
}

func (e *testEnv) pullService(apiClient httpClient.SyncAPI) *PullService {
	return NewPullService(apiClient, e.store, e.store, e.state, e.network, e.sched, setupTestLogger())
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
