package recommend

import (
	"context"

	"github.com/kailas-cloud/watchrec/internal/domain"
)

// CustomerReader reads the customer half of the dual index.
type CustomerReader interface {
	Get(ctx context.Context, id string) (domain.Customer, error)
	Watched(ctx context.Context, customerID string, n int) ([]domain.WatchRecord, error)
}

// MovieReader reads the movie half of the dual index.
type MovieReader interface {
	Get(ctx context.Context, id string) (domain.Movie, error)
	Watchers(ctx context.Context, movieID string, n int) ([]domain.WatchRecord, error)
	WatcherCount(ctx context.Context, movieID string) (int64, error)
}
