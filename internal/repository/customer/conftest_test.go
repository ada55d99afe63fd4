package customer

import (
	"context"
	"testing"

	"github.com/kailas-cloud/watchrec/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putRecordFn       func(ctx context.Context, key string, fields map[string]string, policy db.InsertPolicy) error
	getRecordFn       func(ctx context.Context, key string) (map[string]string, error)
	incrRecordFieldFn func(ctx context.Context, key, field string, delta int64) (int64, error)
	appendHistoryFn   func(ctx context.Context, key string, value []byte) error
	peekMostRecentFn  func(ctx context.Context, key string, n int) ([][]byte, error)
	historySizeFn     func(ctx context.Context, key string) (int64, error)
}

func (m *mockStore) PutRecord(ctx context.Context, key string, fields map[string]string, policy db.InsertPolicy) error {
	if m.putRecordFn != nil {
		return m.putRecordFn(ctx, key, fields, policy)
	}
	return nil
}

func (m *mockStore) GetRecord(ctx context.Context, key string) (map[string]string, error) {
	if m.getRecordFn != nil {
		return m.getRecordFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) IncrRecordField(ctx context.Context, key, field string, delta int64) (int64, error) {
	if m.incrRecordFieldFn != nil {
		return m.incrRecordFieldFn(ctx, key, field, delta)
	}
	return 0, nil
}

func (m *mockStore) AppendHistory(ctx context.Context, key string, value []byte) error {
	if m.appendHistoryFn != nil {
		return m.appendHistoryFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) PeekMostRecent(ctx context.Context, key string, n int) ([][]byte, error) {
	if m.peekMostRecentFn != nil {
		return m.peekMostRecentFn(ctx, key, n)
	}
	return nil, nil
}

func (m *mockStore) HistorySize(ctx context.Context, key string) (int64, error) {
	if m.historySizeFn != nil {
		return m.historySizeFn(ctx, key)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "watchrec:"), ms
}
