package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/focuskeeper/internal/breaker"
	httpClient "github.com/iudanet/focuskeeper/internal/client/api"
	"github.com/iudanet/focuskeeper/internal/client/queue"
	"github.com/iudanet/focuskeeper/internal/client/scheduler"
	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/retry"
	"github.com/iudanet/focuskeeper/pkg/api"
)

// PushResult summarizes one drain pass.
type PushResult struct {
	Pushed  int  `json:"pushed" yaml:"pushed"`   // доставлено и удалено из очереди
	Retried int  `json:"retried" yaml:"retried"` // отложено до NextAttemptAt
	Failed  int  `json:"failed" yaml:"failed"`   // переведено в failed
	Skipped int  `json:"skipped" yaml:"skipped"` // не готово или заблокировано более ранним элементом
	Stopped bool `json:"stopped" yaml:"stopped"` // проход остановлен circuit breaker или потерей сети
}

// PushService drains the sync queue to the server, one item at a time in FIFO order.
type PushService struct {
	apiClient httpClient.SyncAPI
	queue     *queue.Store
	metadata  storage.MetadataStorage
	breaker   *breaker.CircuitBreaker
	state     *StateStore
	network   Connectivity
	scheduler *scheduler.Scheduler
	logger    *slog.Logger
	now       func() time.Time
	retryCfg  retry.Config
	autoSync  scheduler.Handle
	mu        sync.Mutex
	running   atomic.Bool
}

// NewPushService creates a PushService.
func NewPushService(
	apiClient httpClient.SyncAPI,
	q *queue.Store,
	metadata storage.MetadataStorage,
	cb *breaker.CircuitBreaker,
	state *StateStore,
	network Connectivity,
	sched *scheduler.Scheduler,
	retryCfg retry.Config,
	logger *slog.Logger,
) *PushService {
	return &PushService{
		apiClient: apiClient,
		queue:     q,
		metadata:  metadata,
		breaker:   cb,
		state:     state,
		network:   network,
		scheduler: sched,
		retryCfg:  retryCfg,
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessSyncQueue runs one drain pass. It never returns transport errors:
// they are logged and recorded in the state. Offline or overlapping calls are no-ops.
func (s *PushService) ProcessSyncQueue(ctx context.Context) PushResult {
	result, err := s.drain(ctx)
	if err != nil && !errors.Is(err, ErrOffline) && !errors.Is(err, ErrSyncInProgress) {
		s.logger.Error("Sync queue drain failed", "error", err)
		s.state.AddError(ErrorEntry{Type: retry.Classify(err), Message: err.Error()})
	}
	return result
}

// ForceSync drains the queue now. Unlike ProcessSyncQueue it reports
// ErrOffline and ErrSyncInProgress to the caller.
func (s *PushService) ForceSync(ctx context.Context) (PushResult, error) {
	if !s.network.IsOnline() {
		return PushResult{}, ErrOffline
	}
	return s.drain(ctx)
}

// StartAutoSync drains the queue every interval. Calling it again is a no-op.
func (s *PushService) StartAutoSync(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autoSync != 0 {
		return
	}

	s.autoSync = s.scheduler.Schedule(interval, func(ctx context.Context) {
		s.ProcessSyncQueue(ctx)
	}, scheduler.WithName("auto-sync"))
	if s.autoSync == 0 {
		return
	}

	s.state.SetAutoSync(true)
	s.logger.Info("Auto sync started", "interval", interval)
}

// StopAutoSync cancels the next tick. A running pass finishes normally.
func (s *PushService) StopAutoSync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autoSync == 0 {
		return
	}

	s.scheduler.Cancel(s.autoSync)
	s.autoSync = 0
	s.state.SetAutoSync(false)
	s.logger.Info("Auto sync stopped")
}

// RetryFailedItems moves failed items back to pending for the next drain.
func (s *PushService) RetryFailedItems(ctx context.Context) (int, error) {
	n, err := s.queue.ResetFailed(ctx)
	if err != nil {
		return n, fmt.Errorf("failed to reset failed items: %w", err)
	}
	s.logger.Info("Failed items requeued", "count", n)
	return n, s.RefreshCounts(ctx)
}

// ClearFailedItems permanently discards failed items.
func (s *PushService) ClearFailedItems(ctx context.Context) (int, error) {
	n, err := s.queue.DeleteFailed(ctx)
	if err != nil {
		return n, fmt.Errorf("failed to clear failed items: %w", err)
	}
	return n, s.RefreshCounts(ctx)
}

// RefreshCounts reloads pending and failed counters from the queue.
func (s *PushService) RefreshCounts(ctx context.Context) error {
	counts, err := s.queue.Counts(ctx)
	if err != nil {
		return err
	}
	s.state.SetCounts(counts.Pending+counts.Processing, counts.Failed)
	return nil
}

func (s *PushService) drain(ctx context.Context) (PushResult, error) {
	var result PushResult

	// Без сети попытки не начинаются
	if !s.network.IsOnline() {
		return result, ErrOffline
	}

	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug("Sync queue drain already running, skipping")
		return result, ErrSyncInProgress
	}
	defer s.running.Store(false)

	s.state.SetSyncing(true)
	defer s.state.SetSyncing(false)

	items, err := s.queue.ListAll(ctx)
	if err != nil {
		return result, err
	}

	if len(items) > 0 {
		s.logger.Info("Draining sync queue", "items", len(items))
	}

	// Сущности, у которых более ранний элемент ждет повтора
	blocked := make(map[string]bool)

	for _, item := range items {
		if ctx.Err() != nil {
			result.Stopped = true
			break
		}

		if item.Status == models.QueueStatusFailed || item.Status == models.QueueStatusCompleted {
			continue
		}

		key := item.EntityKey()
		if blocked[key] {
			result.Skipped++
			continue
		}
		// Ждет повтора или еще в полете
		if !item.Ready(s.now()) {
			blocked[key] = true
			result.Skipped++
			continue
		}

		if !s.breaker.CanAttempt() {
			s.logger.Warn("Circuit breaker open, stopping drain", "state", s.breaker.State())
			result.Stopped = true
			break
		}
		if !s.network.IsOnline() {
			result.Stopped = true
			break
		}

		if !s.pushItem(ctx, item, &result) {
			blocked[key] = true
		}
	}

	if err := s.RefreshCounts(ctx); err != nil {
		s.logger.Warn("Failed to refresh queue counts", "error", err)
	}

	if !result.Stopped {
		now := s.now()
		s.state.SetLastSyncTime(now)
		if result.Pushed > 0 {
			if err := s.metadata.SaveLastPushTime(ctx, now); err != nil {
				s.logger.Warn("Failed to save last push time", "error", err)
			}
		}
	}

	if result.Pushed+result.Retried+result.Failed > 0 {
		s.logger.Info("Sync queue drain completed",
			"pushed", result.Pushed,
			"retried", result.Retried,
			"failed", result.Failed,
			"skipped", result.Skipped)
	}

	return result, nil
}

// pushItem delivers one item. Returns false if the item is still pending.
func (s *PushService) pushItem(ctx context.Context, item *models.SyncQueueItem, result *PushResult) bool {
	if err := s.queue.MarkProcessing(ctx, item.ID); err != nil {
		s.logger.Warn("Failed to mark item processing", "item_id", item.ID, "error", err)
		return false
	}

	resp, err := s.apiClient.PushItem(ctx, api.PushRequest{
		EntityType: string(item.EntityType),
		Operation:  string(item.Operation),
		Payload:    item.Data,
	})
	if err == nil {
		s.breaker.RecordSuccess()
		if err := s.queue.MarkCompleted(ctx, item.ID); err != nil {
			s.logger.Error("Failed to remove delivered item", "item_id", item.ID, "error", err)
		}
		result.Pushed++

		if resp.Data != nil && !resp.Data.Applied {
			s.logger.Debug("Server kept a newer version",
				"entity", item.EntityKey(),
				"operation", item.Operation)
		}
		return true
	}

	s.breaker.RecordFailure()

	errType := retry.Classify(err)
	attempt := item.AttemptCount + 1

	s.state.AddError(ErrorEntry{
		Time:       s.now(),
		Type:       errType,
		Message:    err.Error(),
		ItemID:     item.ID,
		EntityType: string(item.EntityType),
		EntityID:   item.EntityID,
	})

	if retry.IsRetryable(errType, attempt, s.retryCfg) {
		resetAt, _ := retry.RateLimitReset(err)
		delay := retry.CalculateRetryDelay(errType, attempt, s.retryCfg, resetAt)

		if _, uerr := s.queue.ScheduleRetry(ctx, item.ID, err.Error(), s.now().Add(delay)); uerr != nil {
			s.logger.Error("Failed to schedule retry", "item_id", item.ID, "error", uerr)
		}
		s.logger.Warn("Push failed, will retry",
			"item_id", item.ID,
			"entity", item.EntityKey(),
			"error_type", errType,
			"attempt", attempt,
			"delay", delay,
			"error", err)
		result.Retried++
		return false
	}

	if _, uerr := s.queue.MarkFailed(ctx, item.ID, err.Error()); uerr != nil {
		s.logger.Error("Failed to mark item failed", "item_id", item.ID, "error", uerr)
	}
	s.logger.Error("Push failed permanently",
		"item_id", item.ID,
		"entity", item.EntityKey(),
		"error_type", errType,
		"attempt", attempt,
		"error", err)
	result.Failed++
	return true
}
