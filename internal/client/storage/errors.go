package storage

import "errors"

// Common client storage errors
var (
	// ErrDocumentNotFound indicates that a local document was not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrQueueItemNotFound indicates that a sync queue item was not found
	ErrQueueItemNotFound = errors.New("sync queue item not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
