package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Operation тип операции над сущностью
type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// ParseOperation converts a wire value into Operation. Empty means CREATE.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToUpper(s)); op {
	case "":
		return OperationCreate, nil
	case OperationCreate, OperationUpdate, OperationDelete:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operation %q", s)
	}
}

// QueueStatus статус элемента очереди синхронизации
type QueueStatus string

const (
	QueueStatusPending    QueueStatus = "pending"
	QueueStatusProcessing QueueStatus = "processing"
	QueueStatusCompleted  QueueStatus = "completed"
	QueueStatusFailed     QueueStatus = "failed"
)

// SyncQueueItem представляет отложенную операцию для отправки на сервер.
// Data содержит снимок сущности на момент постановки в очередь.
type SyncQueueItem struct {
	CreatedAt     time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" yaml:"updated_at"`
	NextAttemptAt time.Time       `json:"next_attempt_at,omitzero" yaml:"next_attempt_at,omitempty"` // NextAttemptAt не раньше этого времени будет следующая попытка
	ID            string          `json:"id" yaml:"id"`
	UserID        string          `json:"user_id" yaml:"user_id"`
	EntityType    EntityType      `json:"entity_type" yaml:"entity_type"`
	EntityID      string          `json:"entity_id" yaml:"entity_id"`
	Operation     Operation       `json:"operation_type" yaml:"operation_type"`
	Status        QueueStatus     `json:"status" yaml:"status"`
	ErrorMessage  string          `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	Data          json.RawMessage `json:"data" yaml:"-"`
	Seq           uint64          `json:"seq" yaml:"seq"` // Seq позиция в FIFO порядке
	AttemptCount  int             `json:"attempt_count" yaml:"attempt_count"`
	Version       int64           `json:"version" yaml:"version"` // Version счетчик мутаций сущности
}

// Ready reports whether the item may be attempted at now.
func (i *SyncQueueItem) Ready(now time.Time) bool {
	return i.Status == QueueStatusPending && !i.NextAttemptAt.After(now)
}

// EntityKey identifies the entity the item mutates.
func (i *SyncQueueItem) EntityKey() string {
	return string(i.EntityType) + "#" + i.EntityID
}
