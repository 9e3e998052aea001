package sync

import (
	"sync"
	"time"

	"github.com/iudanet/focuskeeper/internal/retry"
)

// MaxSyncErrors bounds State.SyncErrors. Oldest entries are dropped first.
const MaxSyncErrors = 50

// ErrorEntry describes one recorded sync failure.
type ErrorEntry struct {
	Time       time.Time       `json:"time" yaml:"time"`
	Type       retry.ErrorType `json:"type" yaml:"type"`
	Message    string          `json:"message" yaml:"message"`
	ItemID     string          `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	EntityType string          `json:"entity_type,omitempty" yaml:"entity_type,omitempty"`
	EntityID   string          `json:"entity_id,omitempty" yaml:"entity_id,omitempty"`
}

// State is a point-in-time view of synchronization.
type State struct {
	LastSyncTime      time.Time    `json:"last_sync_time,omitzero" yaml:"last_sync_time,omitempty"`
	LastPullTime      time.Time    `json:"last_pull_time,omitzero" yaml:"last_pull_time,omitempty"`
	SyncErrors        []ErrorEntry `json:"sync_errors" yaml:"sync_errors"`
	PendingItemsCount int          `json:"pending_items_count" yaml:"pending_items_count"`
	FailedItemsCount  int          `json:"failed_items_count" yaml:"failed_items_count"`
	IsOnline          bool         `json:"is_online" yaml:"is_online"`
	IsSyncing         bool         `json:"is_syncing" yaml:"is_syncing"`
	IsPulling         bool         `json:"is_pulling" yaml:"is_pulling"`
	AutoSyncEnabled   bool         `json:"auto_sync_enabled" yaml:"auto_sync_enabled"`
}

// StateStore holds the process-wide State.
// Readers get snapshots; only the sync engines and the connectivity detector mutate it.
type StateStore struct {
	subscribers map[int]chan State
	state       State
	nextID      int
	mu          sync.RWMutex
}

// NewStateStore creates an empty StateStore.
func NewStateStore(online bool) *StateStore {
	return &StateStore{
		subscribers: make(map[int]chan State),
		state:       State{IsOnline: online, SyncErrors: []ErrorEntry{}},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *StateStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Subscribe returns a channel receiving a snapshot after every change.
// Slow subscribers miss intermediate snapshots, never the latest one.
func (s *StateStore) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	ch <- s.copyLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// SetOnline records connectivity.
func (s *StateStore) SetOnline(online bool) {
	s.update(func(st *State) { st.IsOnline = online })
}

// SetSyncing records whether a push pass is running.
func (s *StateStore) SetSyncing(syncing bool) {
	s.update(func(st *State) { st.IsSyncing = syncing })
}

// SetPulling records whether a pull is running.
func (s *StateStore) SetPulling(pulling bool) {
	s.update(func(st *State) { st.IsPulling = pulling })
}

// SetAutoSync records whether the auto sync timer is active.
func (s *StateStore) SetAutoSync(enabled bool) {
	s.update(func(st *State) { st.AutoSyncEnabled = enabled })
}

// SetLastSyncTime records the end of a push pass.
func (s *StateStore) SetLastSyncTime(t time.Time) {
	s.update(func(st *State) { st.LastSyncTime = t })
}

// SetLastPullTime records the end of a clean pull.
func (s *StateStore) SetLastPullTime(t time.Time) {
	s.update(func(st *State) { st.LastPullTime = t })
}

// SetCounts records queue counters.
func (s *StateStore) SetCounts(pending, failed int) {
	s.update(func(st *State) {
		st.PendingItemsCount = pending
		st.FailedItemsCount = failed
	})
}

// AddError appends e, dropping the oldest entries beyond MaxSyncErrors.
func (s *StateStore) AddError(e ErrorEntry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	s.update(func(st *State) {
		st.SyncErrors = append(st.SyncErrors, e)
		if n := len(st.SyncErrors); n > MaxSyncErrors {
			st.SyncErrors = append([]ErrorEntry(nil), st.SyncErrors[n-MaxSyncErrors:]...)
		}
	})
}

// ClearErrors empties the error list.
func (s *StateStore) ClearErrors() {
	s.update(func(st *State) { st.SyncErrors = []ErrorEntry{} })
}

func (s *StateStore) update(mutate func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.state)
	snapshot := s.copyLocked()

	for _, ch := range s.subscribers {
		// Выбрасываем устаревший снимок, чтобы не блокировать писателя
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (s *StateStore) copyLocked() State {
	st := s.state
	st.SyncErrors = append([]ErrorEntry{}, s.state.SyncErrors...)
	return st
}
