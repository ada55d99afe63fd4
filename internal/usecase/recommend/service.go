package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/watchrec/internal/domain"
	"github.com/kailas-cloud/watchrec/internal/domain/similarity"
	"github.com/kailas-cloud/watchrec/internal/domain/vector"
	"github.com/kailas-cloud/watchrec/internal/logger"
)

// DefaultWindow caps how many most-recent history entries are read per
// lookup. Some movies have six-figure watcher counts; the window is a
// hard resource limit, not an adaptive heuristic.
const DefaultWindow = 20

// Service runs the bounded neighbor search: it finds the other customer
// whose recent watch history scores highest against the target's and
// recommends what that neighbor watched and the target has not.
type Service struct {
	customers CustomerReader
	movies    MovieReader
	window    int
}

// New creates a recommendation service with the default window.
func New(customers CustomerReader, movies MovieReader) *Service {
	return &Service{customers: customers, movies: movies, window: DefaultWindow}
}

// WithWindow overrides the bounded-read window.
func (s *Service) WithWindow(n int) *Service {
	if n > 0 {
		s.window = n
	}
	return s
}

// candidate is a neighbor encountered during expansion, with the bounded
// watched history it was scored on.
type candidate struct {
	customerID string
	score      float64
	watched    []domain.WatchRecord
}

// Recommend runs one bounded neighbor search for a customer.
//
// The target lookup is fatal on failure: a missing customer record is
// ErrCustomerNotFound, an empty history is ErrNoHistory. Every expansion
// after that is best-effort; a backend failure inside a branch silently
// drops the candidates of that branch. When no candidate scores, the
// result is an empty list, not an error.
func (s *Service) Recommend(ctx context.Context, customerID string) ([]domain.Movie, error) {
	log := logger.FromContext(ctx)

	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	watched, err := s.customers.Watched(ctx, customerID, s.window)
	if err != nil {
		return nil, fmt.Errorf("watched history for %s: %w", customerID, err)
	}
	if len(watched) == 0 {
		return nil, &domain.NoHistoryError{ID: customerID}
	}

	target := vector.Vectorize(watched)

	// One expansion per watched movie, fanned out concurrently. Each
	// branch reports its local best into its own slot, so the reduction
	// below stays in traversal order and ties resolve deterministically.
	bests := make([]*candidate, len(watched))
	var wg sync.WaitGroup
	for i, w := range watched {
		wg.Add(1)
		go func(slot int, movieID string) {
			defer wg.Done()
			bests[slot] = s.expandMovie(ctx, customerID, movieID, target)
		}(i, w.MovieID)
	}
	wg.Wait()

	// Single-reducer best-match selection: strict >, first seen wins ties.
	var best *candidate
	bestScore := 0.0
	for _, c := range bests {
		if c == nil {
			continue
		}
		if c.score > bestScore {
			bestScore = c.score
			best = c
		}
	}
	if best == nil {
		log.Debug("no candidate neighbor found", zap.String("customer_id", customerID))
		return []domain.Movie{}, nil
	}
	log.Debug("best match",
		zap.String("customer_id", customerID),
		zap.String("neighbor_id", best.customerID),
		zap.Float64("score", best.score))

	return s.assemble(ctx, target, best), nil
}

// expandMovie walks one watched movie's recent watchers and returns the
// branch-local best candidate, or nil when none scores. Backend failures
// inside the branch drop candidates instead of failing the query.
func (s *Service) expandMovie(
	ctx context.Context, targetID, movieID string, target []int64,
) *candidate {
	log := logger.FromContext(ctx)

	size, err := s.movies.WatcherCount(ctx, movieID)
	if err != nil {
		log.Debug("watcher count failed", zap.String("movie_id", movieID), zap.Error(err))
		return nil
	}
	n := s.window
	if size < int64(n) {
		n = int(size)
	}
	if n == 0 {
		return nil
	}

	watchers, err := s.movies.Watchers(ctx, movieID, n)
	if err != nil {
		log.Debug("watcher history failed", zap.String("movie_id", movieID), zap.Error(err))
		return nil
	}

	var best *candidate
	bestScore := 0.0
	for _, watcher := range watchers {
		if watcher.CustomerID == targetID {
			continue
		}
		candWatched, err := s.customers.Watched(ctx, watcher.CustomerID, s.window)
		if err != nil {
			// this candidate contributes no score
			log.Debug("candidate history failed",
				zap.String("candidate_id", watcher.CustomerID), zap.Error(err))
			continue
		}
		score := similarity.Score(target, vector.Vectorize(candWatched))
		if !similarity.Comparable(score) {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = &candidate{customerID: watcher.CustomerID, score: score, watched: candWatched}
		}
	}
	return best
}

// assemble turns the best match into a resolved recommendation list: the
// neighbor's watched movies minus everything in the target's feature
// vector, with display metadata attached and dangling ids dropped.
func (s *Service) assemble(ctx context.Context, target []int64, best *candidate) []domain.Movie {
	log := logger.FromContext(ctx)

	recs := make([]domain.Movie, 0, len(best.watched))
	for _, w := range best.watched {
		id, err := strconv.ParseInt(w.MovieID, 10, 64)
		if err != nil {
			continue
		}
		if vector.Contains(target, id) {
			continue
		}
		m, err := s.movies.Get(ctx, w.MovieID)
		if err != nil {
			// dangling or unreadable id, dropped from the response
			log.Debug("recommended movie did not resolve",
				zap.String("movie_id", w.MovieID), zap.Error(err))
			continue
		}
		recs = append(recs, m)
	}
	return recs
}
