package sync

import "errors"

var (
	// ErrOffline is returned by explicit sync requests while offline.
	ErrOffline = errors.New("cannot sync while offline")

	// ErrSyncInProgress is returned by explicit sync requests while a drain is running.
	ErrSyncInProgress = errors.New("sync already in progress")
)

// Connectivity reports whether the server is reachable.
type Connectivity interface {
	IsOnline() bool
}
