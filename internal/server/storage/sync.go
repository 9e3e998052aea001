package storage

import (
	"context"
	"time"

	"github.com/iudanet/focuskeeper/internal/models"
)

// SyncStorage defines persistence of the remote mirror table
type SyncStorage interface {
	// PutItem creates or replaces a row keyed by (PK, SK).
	// An existing row is only replaced when item is strictly newer (LWW by UpdatedAt).
	// Returns true if the row was written.
	PutItem(ctx context.Context, item *models.RemoteItem) (bool, error)

	// DeleteItem removes one row.
	// Returns ErrItemNotFound if it doesn't exist.
	DeleteItem(ctx context.Context, pk, sk string) error

	// ListItemsSince returns rows of the partition written after since (by SyncedAt).
	// A zero since returns the whole partition.
	ListItemsSince(ctx context.Context, pk string, since time.Time) ([]*models.RemoteItem, error)

	// Ping checks that the database is reachable
	Ping(ctx context.Context) error
}
