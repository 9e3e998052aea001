package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/focuskeeper/internal/models"
	"github.com/iudanet/focuskeeper/internal/server/storage"
)

const itemColumns = `pk, sk, user_id, entity_type, entity_id, data, updated_at, created_at, synced_at`

// PutItem creates or replaces a row keyed by (pk, sk).
// The conflict clause keeps the stored row unless the incoming one is strictly newer,
// so the check and the write are a single statement.
//
// synced_at is item.SyncedAt raised above every synced_at already in the table.
// Writes are serialised, so a row committed after a read always sorts after
// every row that read returned, whatever the clock said when the push arrived.
func (s *Storage) PutItem(ctx context.Context, item *models.RemoteItem) (bool, error) {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = item.SyncedAt
	}

	query := `
		INSERT INTO sync_items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?,
			MAX(?, (SELECT COALESCE(MAX(synced_at), 0) + 1 FROM sync_items)))
		ON CONFLICT (pk, sk) DO UPDATE SET
			user_id = excluded.user_id,
			entity_type = excluded.entity_type,
			entity_id = excluded.entity_id,
			data = excluded.data,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at
		WHERE excluded.updated_at > sync_items.updated_at
	`

	result, err := s.db.ExecContext(ctx, query,
		item.PK,
		item.SK,
		item.UserID,
		string(item.EntityType),
		item.EntityID,
		[]byte(item.Data),
		timeToInt(item.UpdatedAt),
		timeToInt(createdAt),
		timeToInt(item.SyncedAt),
	)
	if err != nil {
		return false, fmt.Errorf("failed to put sync item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// DeleteItem removes one row
// Returns ErrItemNotFound if it doesn't exist
func (s *Storage) DeleteItem(ctx context.Context, pk, sk string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sync_items WHERE pk = ? AND sk = ?`, pk, sk)
	if err != nil {
		return fmt.Errorf("failed to delete sync item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrItemNotFound
	}

	return nil
}

// ListItemsSince returns rows of the partition written after since.
// Rows are ordered by write time, oldest first. The largest SyncedAt returned
// is a safe value for the next call: later writes get a larger one.
func (s *Storage) ListItemsSince(ctx context.Context, pk string, since time.Time) (items []*models.RemoteItem, err error) {
	query := `
		SELECT ` + itemColumns + `
		FROM sync_items
		WHERE pk = ? AND synced_at > ?
		ORDER BY synced_at ASC, sk ASC
	`

	var after int64
	if !since.IsZero() {
		after = timeToInt(since)
	}

	rows, err := s.db.QueryContext(ctx, query, pk, after)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync items: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	items = []*models.RemoteItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.RemoteItem, error) {
	item := &models.RemoteItem{}
	var entityType string
	var data []byte
	var updatedAt, createdAt, syncedAt int64

	err := row.Scan(
		&item.PK,
		&item.SK,
		&item.UserID,
		&entityType,
		&item.EntityID,
		&data,
		&updatedAt,
		&createdAt,
		&syncedAt,
	)
	if err != nil {
		return nil, err
	}

	item.EntityType = models.EntityType(entityType)
	item.Data = data
	item.UpdatedAt = intToTime(updatedAt)
	item.CreatedAt = intToTime(createdAt)
	item.SyncedAt = intToTime(syncedAt)

	return item, nil
}

// Время хранится в наносекундах: LWW сравнивает метки с точностью до миллисекунд
func timeToInt(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func intToTime(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
