package chi

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/watchrec/internal/db"
	"github.com/kailas-cloud/watchrec/internal/domain"
	healthuc "github.com/kailas-cloud/watchrec/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/watchrec/internal/usecase/ingest"
	recommenduc "github.com/kailas-cloud/watchrec/internal/usecase/recommend"
)

// mockCustomers backs both the recommend and ingest services in tests.
type mockCustomers struct {
	getFn     func(ctx context.Context, id string) (domain.Customer, error)
	watchedFn func(ctx context.Context, customerID string, n int) ([]domain.WatchRecord, error)
}

func (m *mockCustomers) Get(ctx context.Context, id string) (domain.Customer, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Customer{ID: id}, nil
}

func (m *mockCustomers) Watched(ctx context.Context, customerID string, n int) ([]domain.WatchRecord, error) {
	if m.watchedFn != nil {
		return m.watchedFn(ctx, customerID, n)
	}
	return nil, nil
}

func (m *mockCustomers) Ensure(context.Context, string) error { return nil }

func (m *mockCustomers) AppendWatched(context.Context, string, domain.WatchRecord) error {
	return nil
}

func (m *mockCustomers) IncrementRatingsCount(context.Context, string) (int64, error) {
	return 1, nil
}

type mockMovies struct {
	putFn           func(ctx context.Context, mv *domain.Movie, policy db.InsertPolicy) error
	getFn           func(ctx context.Context, id string) (domain.Movie, error)
	watchersFn      func(ctx context.Context, movieID string, n int) ([]domain.WatchRecord, error)
	watcherCountFn  func(ctx context.Context, movieID string) (int64, error)
	appendWatcherFn func(ctx context.Context, movieID string, w domain.WatchRecord) error
}

func (m *mockMovies) Put(ctx context.Context, mv *domain.Movie, policy db.InsertPolicy) error {
	if m.putFn != nil {
		return m.putFn(ctx, mv, policy)
	}
	return nil
}

func (m *mockMovies) Get(ctx context.Context, id string) (domain.Movie, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Movie{ID: id}, nil
}

func (m *mockMovies) Watchers(ctx context.Context, movieID string, n int) ([]domain.WatchRecord, error) {
	if m.watchersFn != nil {
		return m.watchersFn(ctx, movieID, n)
	}
	return nil, nil
}

func (m *mockMovies) WatcherCount(ctx context.Context, movieID string) (int64, error) {
	if m.watcherCountFn != nil {
		return m.watcherCountFn(ctx, movieID)
	}
	return 0, nil
}

func (m *mockMovies) AppendWatcher(ctx context.Context, movieID string, w domain.WatchRecord) error {
	if m.appendWatcherFn != nil {
		return m.appendWatcherFn(ctx, movieID, w)
	}
	return nil
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

// newTestRouter builds a router with real services wired over the mocks.
func newTestRouter(t *testing.T) (chi.Router, *mockCustomers, *mockMovies, *mockPinger) {
	t.Helper()
	mc := &mockCustomers{}
	mm := &mockMovies{}
	mp := &mockPinger{}

	logger := zap.NewNop()
	server := NewServer(
		recommenduc.New(mc, mm),
		ingestuc.New(mm, mc, db.CreateOnly, logger),
		healthuc.New(mp),
		logger,
	)

	r := chi.NewRouter()
	server.Register(r)
	return r, mc, mm, mp
}
