package ingest

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/watchrec/internal/db"
	"github.com/kailas-cloud/watchrec/internal/domain"
)

// mockMovieIndex implements MovieIndex for tests.
type mockMovieIndex struct {
	putFn           func(ctx context.Context, m *domain.Movie, policy db.InsertPolicy) error
	getFn           func(ctx context.Context, id string) (domain.Movie, error)
	appendWatcherFn func(ctx context.Context, movieID string, w domain.WatchRecord) error
	watcherCountFn  func(ctx context.Context, movieID string) (int64, error)
}

func (m *mockMovieIndex) Put(ctx context.Context, mv *domain.Movie, policy db.InsertPolicy) error {
	if m.putFn != nil {
		return m.putFn(ctx, mv, policy)
	}
	return nil
}

func (m *mockMovieIndex) Get(ctx context.Context, id string) (domain.Movie, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Movie{ID: id}, nil
}

func (m *mockMovieIndex) AppendWatcher(ctx context.Context, movieID string, w domain.WatchRecord) error {
	if m.appendWatcherFn != nil {
		return m.appendWatcherFn(ctx, movieID, w)
	}
	return nil
}

func (m *mockMovieIndex) WatcherCount(ctx context.Context, movieID string) (int64, error) {
	if m.watcherCountFn != nil {
		return m.watcherCountFn(ctx, movieID)
	}
	return 0, nil
}

// mockCustomerIndex implements CustomerIndex for tests.
type mockCustomerIndex struct {
	ensureFn        func(ctx context.Context, id string) error
	appendWatchedFn func(ctx context.Context, customerID string, w domain.WatchRecord) error
	incrFn          func(ctx context.Context, id string) (int64, error)
}

func (m *mockCustomerIndex) Ensure(ctx context.Context, id string) error {
	if m.ensureFn != nil {
		return m.ensureFn(ctx, id)
	}
	return nil
}

func (m *mockCustomerIndex) AppendWatched(ctx context.Context, customerID string, w domain.WatchRecord) error {
	if m.appendWatchedFn != nil {
		return m.appendWatchedFn(ctx, customerID, w)
	}
	return nil
}

func (m *mockCustomerIndex) IncrementRatingsCount(ctx context.Context, id string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, id)
	}
	return 1, nil
}

func newTestService(t *testing.T, policy db.InsertPolicy) (*Service, *mockMovieIndex, *mockCustomerIndex) {
	t.Helper()
	mm := &mockMovieIndex{}
	mc := &mockCustomerIndex{}
	return New(mm, mc, policy, zap.NewNop()), mm, mc
}
