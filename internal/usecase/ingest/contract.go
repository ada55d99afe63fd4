package ingest

import (
	"context"

	"github.com/kailas-cloud/watchrec/internal/db"
	"github.com/kailas-cloud/watchrec/internal/domain"
)

// MovieIndex is the movie-side storage contract for the index builder.
type MovieIndex interface {
	Put(ctx context.Context, m *domain.Movie, policy db.InsertPolicy) error
	Get(ctx context.Context, id string) (domain.Movie, error)
	AppendWatcher(ctx context.Context, movieID string, w domain.WatchRecord) error
	WatcherCount(ctx context.Context, movieID string) (int64, error)
}

// CustomerIndex is the customer-side storage contract for the index builder.
type CustomerIndex interface {
	Ensure(ctx context.Context, id string) error
	AppendWatched(ctx context.Context, customerID string, w domain.WatchRecord) error
	IncrementRatingsCount(ctx context.Context, id string) (int64, error)
}
