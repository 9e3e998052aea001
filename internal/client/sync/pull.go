package sync

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	httpClient "github.com/iudanet/focuskeeper/internal/client/api"
	"github.com/iudanet/focuskeeper/internal/client/scheduler"
	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/retry"
)

// DefaultPullInterval is the period of StartPeriodicPull when none is configured.
const DefaultPullInterval = 5 * time.Minute

// remoteKeyFields are storage keys of the remote table, never part of an entity.
var remoteKeyFields = []string{"pk", "sk", "PK", "SK"}

// PullResult summarizes one pull.
type PullResult struct {
	Err        error  `json:"-" yaml:"-"`
	SyncTime   string `json:"sync_time,omitempty" yaml:"sync_time,omitempty"`
	Fetched    int    `json:"fetched" yaml:"fetched"`         // получено записей
	Inserted   int    `json:"inserted" yaml:"inserted"`       // новых локально
	Updated    int    `json:"updated" yaml:"updated"`         // удаленная версия новее
	Unchanged  int    `json:"unchanged" yaml:"unchanged"`     // локальная версия новее или равна
	Failed     int    `json:"failed" yaml:"failed"`           // ошибки слияния
	InProgress bool   `json:"in_progress" yaml:"in_progress"` // другой pull уже выполняется
	Offline    bool   `json:"offline" yaml:"offline"`
}

// PullService fetches the remote snapshot and merges it into local storage
// with last-writer-wins by updated_at. It never pushes.
type PullService struct {
	apiClient httpClient.SyncAPI
	documents storage.DocumentStorage
	metadata  storage.MetadataStorage
	state     *StateStore
	network   Connectivity
	scheduler *scheduler.Scheduler
	logger    *slog.Logger
	now       func() time.Time
	periodic  scheduler.Handle
	mu        sync.Mutex
	pulling   atomic.Bool
}

// NewPullService creates a PullService.
func NewPullService(
	apiClient httpClient.SyncAPI,
	documents storage.DocumentStorage,
	metadata storage.MetadataStorage,
	state *StateStore,
	network Connectivity,
	sched *scheduler.Scheduler,
	logger *slog.Logger,
) *PullService {
	return &PullService{
		apiClient: apiClient,
		documents: documents,
		metadata:  metadata,
		state:     state,
		network:   network,
		scheduler: sched,
		logger:    logger,
		now:       time.Now,
	}
}

// PullFromCloud fetches and merges the remote records of userID.
// A call made while another pull runs returns immediately without fetching.
// Errors are logged, recorded in the state and returned in the result, never raised.
func (s *PullService) PullFromCloud(ctx context.Context, userID string) *PullResult {
	result := &PullResult{}

	if !s.pulling.CompareAndSwap(false, true) {
		s.logger.Debug("Pull already in progress, skipping", "user_id", userID)
		result.InProgress = true
		return result
	}
	defer s.pulling.Store(false)

	if !s.network.IsOnline() {
		result.Offline = true
		return result
	}

	s.state.SetPulling(true)
	defer s.state.SetPulling(false)

	lastPull, err := s.metadata.GetLastPullTime(ctx)
	if err != nil {
		s.logger.Warn("Failed to get last pull time, doing full pull", "error", err)
		lastPull = ""
	}

	resp, err := s.apiClient.Pull(ctx, userID, lastPull)
	if err != nil {
		s.fail(result, retry.Wrap(err, "pull failed"), "")
		return result
	}

	result.SyncTime = resp.SyncTime
	result.Fetched = resp.Data.Count()

	for _, entityType := range models.AllEntityTypes {
		group := resp.Data.Group(string(entityType))
		if group == nil {
			continue
		}
		for _, raw := range *group {
			s.mergeRecord(ctx, userID, entityType, raw, result)
		}
	}

	// Водяной знак двигается только после полностью чистого слияния
	if result.Failed == 0 {
		if resp.SyncTime != "" {
			if err := s.metadata.SaveLastPullTime(ctx, resp.SyncTime); err != nil {
				s.logger.Warn("Failed to save last pull time", "error", err)
			}
		}
		s.state.SetLastPullTime(s.now())
	}

	s.logger.Info("Pull completed",
		"user_id", userID,
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"failed", result.Failed)

	return result
}

// InitialSync is the first pull after the process reaches the server.
func (s *PullService) InitialSync(ctx context.Context, userID string) *PullResult {
	s.logger.Info("Initial sync", "user_id", userID)
	return s.PullFromCloud(ctx, userID)
}

// StartPeriodicPull pulls immediately and then every interval. Calling it again is a no-op.
func (s *PullService) StartPeriodicPull(userID string, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPullInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.periodic != 0 {
		return
	}

	s.periodic = s.scheduler.Schedule(interval, func(ctx context.Context) {
		s.PullFromCloud(ctx, userID)
	}, scheduler.Immediate(), scheduler.WithName("periodic-pull"))

	s.logger.Info("Periodic pull started", "user_id", userID, "interval", interval)
}

// StopPeriodicPull cancels the next periodic pull.
func (s *PullService) StopPeriodicPull() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.periodic == 0 {
		return
	}
	s.scheduler.Cancel(s.periodic)
	s.periodic = 0
}

// remoteMeta содержит поля, нужные для слияния
type remoteMeta struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
}

func (s *PullService) mergeRecord(ctx context.Context, userID string, entityType models.EntityType, raw json.RawMessage, result *PullResult) {
	remote, err := toDocument(entityType, raw, userID)
	if err != nil {
		s.fail(result, err, entityType)
		return
	}

	local, err := s.documents.GetDocument(ctx, entityType, remote.ID)
	switch {
	case errors.Is(err, storage.ErrDocumentNotFound):
		// Запись создана на другом устройстве
		if err := s.documents.SaveDocument(ctx, remote); err != nil {
			s.fail(result, retry.NewMergeError(err, "failed to insert %s %s", entityType, remote.ID), entityType)
			return
		}
		result.Inserted++
	case err != nil:
		s.fail(result, retry.NewMergeError(err, "failed to read %s %s", entityType, remote.ID), entityType)
	case remote.IsNewerThan(local):
		if err := s.documents.SaveDocument(ctx, remote); err != nil {
			s.fail(result, retry.NewMergeError(err, "failed to update %s %s", entityType, remote.ID), entityType)
			return
		}
		s.logger.Debug("Remote version wins",
			"entity_type", entityType,
			"id", remote.ID,
			"remote_updated_at", remote.UpdatedAt,
			"local_updated_at", local.UpdatedAt)
		result.Updated++
	default:
		// Локальная версия новее или равна: ее доставит следующий push
		result.Unchanged++
	}
}

func (s *PullService) fail(result *PullResult, err error, entityType models.EntityType) {
	if result.Err == nil {
		result.Err = err
	}
	result.Failed++

	var se *retry.SyncError
	errType := retry.Classify(err)
	if errors.As(err, &se) && se.Type != "" {
		errType = se.Type
	}

	s.logger.Warn("Pull error", "entity_type", entityType, "error_type", errType, "error", err)
	s.state.AddError(ErrorEntry{
		Time:       s.now(),
		Type:       errType,
		Message:    err.Error(),
		EntityType: string(entityType),
	})
}

// toDocument strips remote key fields and builds the local Document.
func toDocument(entityType models.EntityType, raw json.RawMessage, userID string) (*models.Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, retry.NewMergeError(err, "malformed %s record", entityType)
	}
	for _, k := range remoteKeyFields {
		delete(fields, k)
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, retry.NewMergeError(err, "failed to encode %s record", entityType)
	}

	var meta remoteMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, retry.NewMergeError(err, "invalid %s record fields", entityType)
	}
	if meta.ID == "" {
		return nil, retry.NewMergeError(nil, "%s record without id", entityType)
	}
	if meta.UserID == "" {
		meta.UserID = userID
	}

	return &models.Document{
		ID:        meta.ID,
		UserID:    meta.UserID,
		Type:      entityType,
		Data:      data,
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}, nil
}
