package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/focuskeeper/internal/client/storage"
)

const (
	keyLastPullTime = "last_pull_time"
	keyLastPushTime = "last_push_time"
)

// putMetadata сохраняет значение в metadata bucket
func (s *Storage) putMetadata(key string, value []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return nil
	})
}

// getMetadata возвращает копию значения или nil, если ключа нет
func (s *Storage) getMetadata(key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var value []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if raw := bucket.Get([]byte(key)); raw != nil {
			value = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

// SaveLastPullTime saves the server syncTime of the last clean pull
func (s *Storage) SaveLastPullTime(ctx context.Context, syncTime string) error {
	return s.putMetadata(keyLastPullTime, []byte(syncTime))
}

// GetLastPullTime retrieves the server syncTime of the last clean pull
// Returns "" if no pull has been performed yet
func (s *Storage) GetLastPullTime(ctx context.Context) (string, error) {
	value, err := s.getMetadata(keyLastPullTime)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// SaveLastPushTime saves the time the queue was last drained successfully
func (s *Storage) SaveLastPushTime(ctx context.Context, t time.Time) error {
	value, err := t.UTC().MarshalText()
	if err != nil {
		return fmt.Errorf("failed to marshal last push time: %w", err)
	}
	return s.putMetadata(keyLastPushTime, value)
}

// GetLastPushTime retrieves the time of the last successful drain
// Returns zero time if the queue has never been drained
func (s *Storage) GetLastPushTime(ctx context.Context) (time.Time, error) {
	value, err := s.getMetadata(keyLastPushTime)
	if err != nil {
		return time.Time{}, err
	}
	if value == nil {
		return time.Time{}, nil
	}

	var t time.Time
	if err := t.UnmarshalText(value); err != nil {
		return time.Time{}, fmt.Errorf("failed to unmarshal last push time: %w", err)
	}
	return t, nil
}
