package db

import (
	"context"
	"time"
)

// InsertPolicy controls how PutRecord treats an existing key.
type InsertPolicy string

// Insert policies for PutRecord.
const (
	// CreateOnly fails with ErrKeyExists when the key already exists.
	CreateOnly InsertPolicy = "create_only"
	// UpdateOnly fails with ErrKeyNotFound when the key does not exist.
	UpdateOnly InsertPolicy = "update_only"
	// Upsert writes unconditionally.
	Upsert InsertPolicy = "upsert"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers use the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	RecordStore
	HistoryStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RecordStore provides keyed field-map record operations.
type RecordStore interface {
	// PutRecord writes a record's fields under the given insert policy.
	// The existence check and the write are separate commands; the window
	// between them is an accepted limitation of the record path. History
	// appends do not share it.
	PutRecord(ctx context.Context, key string, fields map[string]string, policy InsertPolicy) error
	// GetRecord returns all fields of a record, or ErrKeyNotFound.
	GetRecord(ctx context.Context, key string) (map[string]string, error)
	// IncrRecordField atomically increments a numeric record field and
	// returns the new value. Safe under concurrent callers.
	IncrRecordField(ctx context.Context, key, field string, delta int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// HistoryStore provides ordered, append-only bounded-read collections.
// The backend's atomic list append is the serialization point for
// concurrent appenders; no additional locking happens above it.
type HistoryStore interface {
	// AppendHistory appends a value to the end of the history at key.
	AppendHistory(ctx context.Context, key string, value []byte) error
	// PeekMostRecent returns up to n entries, most recent first.
	// An absent or empty history yields an empty slice and no error.
	PeekMostRecent(ctx context.Context, key string, n int) ([][]byte, error)
	// HistorySize returns the total number of entries at key.
	HistorySize(ctx context.Context, key string) (int64, error)
}
