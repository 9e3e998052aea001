// Package app assembles the client components and owns their lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/iudanet/focuskeeper/internal/breaker"
	httpClient "github.com/iudanet/focuskeeper/internal/client/api"
	"github.com/iudanet/focuskeeper/internal/client/data"
	"github.com/iudanet/focuskeeper/internal/client/netstatus"
	"github.com/iudanet/focuskeeper/internal/client/queue"
	"github.com/iudanet/focuskeeper/internal/client/scheduler"
	"github.com/iudanet/focuskeeper/internal/client/storage/boltdb"
	fksync "github.com/iudanet/focuskeeper/internal/client/sync"
	"github.com/iudanet/focuskeeper/internal/config"
)

// App holds every client component. There are no package-level singletons:
// whoever creates an App owns it and must Close it.
type App struct {
	Config    *config.ClientConfig
	Logger    *slog.Logger
	Storage   *boltdb.Storage
	Queue     *queue.Store
	Data      data.Service
	API       *httpClient.Client
	Breaker   *breaker.CircuitBreaker
	State     *fksync.StateStore
	Network   *netstatus.Detector
	Push      *fksync.PushService
	Pull      *fksync.PullService
	scheduler *scheduler.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	unsub     func()
	wg        sync.WaitGroup
	mu        sync.Mutex
	connected atomic.Bool // первый выход в сеть уже был
	started   bool
	closed    bool
}

// New opens local storage and wires the sync components. Nothing runs until Start.
func New(cfg *config.ClientConfig, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Storage: store,
		ctx:     ctx,
		cancel:  cancel,
	}

	a.API = httpClient.NewClient(cfg.ServerURL, cfg.APIKey)
	a.Breaker = breaker.New(cfg.Breaker)
	a.Queue = queue.NewStore(store, logger.With("component", "queue"))
	a.Network = netstatus.NewDetector(a.API, false, logger.With("component", "netstatus"))
	a.State = fksync.NewStateStore(false)
	// Время последней отправки переживает перезапуск
	if last, err := store.GetLastPushTime(ctx); err != nil {
		logger.Warn("Failed to load last push time", "error", err)
	} else if !last.IsZero() {
		a.State.SetLastSyncTime(last)
	}
	a.scheduler = scheduler.New(ctx, logger.With("component", "scheduler"))

	a.Push = fksync.NewPushService(
		a.API,
		a.Queue,
		store,
		a.Breaker,
		a.State,
		a.Network,
		a.scheduler,
		cfg.Retry,
		logger.With("component", "push"),
	)
	a.Pull = fksync.NewPullService(
		a.API,
		store,
		store,
		a.State,
		a.Network,
		a.scheduler,
		logger.With("component", "pull"),
	)

	a.Data = data.NewService(store, a.Queue, logger.With("component", "data"),
		data.WithOnChange(a.refreshCounts))

	if err := a.Push.RefreshCounts(ctx); err != nil {
		logger.Warn("Failed to load sync queue counters", "error", err)
	}

	return a, nil
}

// Start recovers interrupted queue items and starts probing, auto sync and periodic pull.
// It returns immediately; background work stops on Close.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return fmt.Errorf("app is closed")
	}
	if a.started {
		return nil
	}
	a.started = true

	if _, err := a.Queue.RecoverProcessing(a.ctx); err != nil {
		return fmt.Errorf("failed to recover sync queue: %w", err)
	}
	a.refreshCounts(a.ctx)

	a.unsub = a.Network.Subscribe(a.onConnectivity)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.Network.Run(a.ctx, a.Config.ProbeInterval)
	}()

	if a.Config.AutoSync {
		a.Push.StartAutoSync(a.Config.SyncInterval)
	}
	a.Pull.StartPeriodicPull(a.Config.UserID, a.Config.PullInterval)

	a.Logger.Info("Client started",
		"user_id", a.Config.UserID,
		"server", a.Config.ServerURL,
		"auto_sync", a.Config.AutoSync)

	return nil
}

// Context is cancelled when the App is closed.
func (a *App) Context() context.Context {
	return a.ctx
}

// Close stops timers and background work and closes local storage.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	unsub := a.unsub
	a.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	a.Push.StopAutoSync()
	a.Pull.StopPeriodicPull()

	a.cancel()
	a.scheduler.Stop()
	a.wg.Wait()

	if err := a.Storage.Close(); err != nil {
		return fmt.Errorf("failed to close local storage: %w", err)
	}
	return nil
}

// onConnectivity mirrors connectivity into the state and catches up after reconnect.
// The first connection of the process runs the initial sync, later ones a regular pull.
func (a *App) onConnectivity(online bool) {
	a.State.SetOnline(online)
	if !online {
		return
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		a.Push.ProcessSyncQueue(a.ctx)
		if a.connected.CompareAndSwap(false, true) {
			a.Pull.InitialSync(a.ctx, a.Config.UserID)
			return
		}
		a.Pull.PullFromCloud(a.ctx, a.Config.UserID)
	}()
}

func (a *App) refreshCounts(ctx context.Context) {
	if err := a.Push.RefreshCounts(ctx); err != nil {
		a.Logger.Warn("Failed to refresh sync queue counters", "error", err)
	}
}
