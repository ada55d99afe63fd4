package recommend

import (
	"context"
	"testing"

	"github.com/kailas-cloud/watchrec/internal/domain"
)

// mockCustomers implements CustomerReader for tests.
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

// mockMovies implements MovieReader for tests.
type mockMovies struct {
	getFn          func(ctx context.Context, id string) (domain.Movie, error)
	watchersFn     func(ctx context.Context, movieID string, n int) ([]domain.WatchRecord, error)
	watcherCountFn func(ctx context.Context, movieID string) (int64, error)
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

func newTestService(t *testing.T) (*Service, *mockCustomers, *mockMovies) {
	t.Helper()
	mc := &mockCustomers{}
	mm := &mockMovies{}
	return New(mc, mm), mc, mm
}

// fixture is an in-memory dual index for end-to-end query tests. Both
// histories hold records most recent first, matching the store contract.
type fixture struct {
	watched  map[string][]domain.WatchRecord // customer -> watched history
	watchers map[string][]domain.WatchRecord // movie -> watcher history
	movies   map[string]domain.Movie
}

func (f *fixture) install(t *testing.T, mc *mockCustomers, mm *mockMovies) {
	t.Helper()
	mc.getFn = func(_ context.Context, id string) (domain.Customer, error) {
		if _, ok := f.watched[id]; !ok {
			return domain.Customer{}, &domain.CustomerNotFoundError{ID: id}
		}
		return domain.Customer{ID: id}, nil
	}
	mc.watchedFn = func(_ context.Context, id string, n int) ([]domain.WatchRecord, error) {
		return bounded(f.watched[id], n), nil
	}
	mm.watchersFn = func(_ context.Context, id string, n int) ([]domain.WatchRecord, error) {
		return bounded(f.watchers[id], n), nil
	}
	mm.watcherCountFn = func(_ context.Context, id string) (int64, error) {
		return int64(len(f.watchers[id])), nil
	}
	mm.getFn = func(_ context.Context, id string) (domain.Movie, error) {
		m, ok := f.movies[id]
		if !ok {
			return domain.Movie{}, domain.ErrMovieNotFound
		}
		return m, nil
	}
}

func bounded(records []domain.WatchRecord, n int) []domain.WatchRecord {
	if n < len(records) {
		return records[:n]
	}
	return records
}

func watch(movieID, customerID string, rating int) domain.WatchRecord {
	return domain.WatchRecord{MovieID: movieID, CustomerID: customerID, Rating: rating}
}
