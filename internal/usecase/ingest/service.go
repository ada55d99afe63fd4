package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/watchrec/internal/db"
	"github.com/kailas-cloud/watchrec/internal/domain"
	domingest "github.com/kailas-cloud/watchrec/internal/domain/ingest"
)

// Service is the index builder. It ingests one movie at a time and writes
// the two mirrored indices: movie→recent-watchers and customer→recent-watched.
type Service struct {
	movies    MovieIndex
	customers CustomerIndex
	policy    db.InsertPolicy
	logger    *zap.Logger
}

// New creates an ingestion service. policy governs the top-level movie
// write; customer records are always created lazily and appended to.
func New(movies MovieIndex, customers CustomerIndex, policy db.InsertPolicy, logger *zap.Logger) *Service {
	return &Service{movies: movies, customers: customers, policy: policy, logger: logger}
}

// Ingest writes one movie and its full watch list into both indices.
//
// The movie's metadata write goes first and gates the rest: under the
// create-only policy an already-present movie short-circuits with
// AlreadyExists and no history is touched, which makes re-ingesting a
// fully ingested file a no-op. Any other failure of the top-level write
// aborts this movie.
//
// Each watch record then produces two appends (movie watchers, customer
// watched) plus a ratings-count increment. The two appends are not
// transactional; a crash between them leaves that one record one-sided.
// A failure on a single record is counted in the report and ingestion
// continues with the next record.
func (s *Service) Ingest(ctx context.Context, movie domain.Movie) (domingest.Report, error) {
	report := domingest.Report{MovieID: movie.ID}

	if err := s.movies.Put(ctx, &movie, s.policy); err != nil {
		if errors.Is(err, domain.ErrMovieExists) {
			report.AlreadyExists = true
			s.logger.Info("movie already ingested, skipping",
				zap.String("movie_id", movie.ID))
			return report, nil
		}
		return report, fmt.Errorf("put movie %s: %w", movie.ID, err)
	}
	report.Created = true

	for _, w := range movie.Watchers {
		if err := s.appendRecord(ctx, movie.ID, w); err != nil {
			report.Errors++
			s.logger.Warn("failed to append watch record",
				zap.String("movie_id", movie.ID),
				zap.String("customer_id", w.CustomerID),
				zap.Error(err))
			continue
		}
		report.Appended++
	}

	s.logger.Info("ingested movie",
		zap.String("movie_id", movie.ID),
		zap.String("title", movie.Title),
		zap.Int("appended", report.Appended),
		zap.Int("errors", report.Errors))
	return report, nil
}

// appendRecord performs the dual-index write for one watch record.
func (s *Service) appendRecord(ctx context.Context, movieID string, w domain.WatchRecord) error {
	if w.MovieID == "" {
		w.MovieID = movieID
	}

	if err := s.movies.AppendWatcher(ctx, movieID, w); err != nil {
		return fmt.Errorf("append watcher: %w", err)
	}

	if err := s.customers.Ensure(ctx, w.CustomerID); err != nil {
		return fmt.Errorf("ensure customer: %w", err)
	}
	if err := s.customers.AppendWatched(ctx, w.CustomerID, w); err != nil {
		return fmt.Errorf("append watched: %w", err)
	}
	if _, err := s.customers.IncrementRatingsCount(ctx, w.CustomerID); err != nil {
		return fmt.Errorf("increment ratings count: %w", err)
	}
	return nil
}

// Lookup returns a movie's metadata together with its total watcher count.
func (s *Service) Lookup(ctx context.Context, movieID string) (domain.Movie, int64, error) {
	m, err := s.movies.Get(ctx, movieID)
	if err != nil {
		return domain.Movie{}, 0, err
	}
	count, err := s.movies.WatcherCount(ctx, movieID)
	if err != nil {
		return domain.Movie{}, 0, err
	}
	return m, count, nil
}
