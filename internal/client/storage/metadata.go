package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client sync metadata
type MetadataStorage interface {
	// SaveLastPullTime saves the server syncTime of the last clean pull
	SaveLastPullTime(ctx context.Context, syncTime string) error

	// GetLastPullTime retrieves the server syncTime of the last clean pull
	// Returns "" if no pull has been performed yet
	GetLastPullTime(ctx context.Context) (string, error)

	// SaveLastPushTime saves the time the queue was last drained successfully
	SaveLastPushTime(ctx context.Context, t time.Time) error

	// GetLastPushTime retrieves the time of the last successful drain
	// Returns zero time if the queue has never been drained
	GetLastPushTime(ctx context.Context) (time.Time, error)
}
