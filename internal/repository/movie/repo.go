package movie

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/watchrec/internal/db"
	"github.com/kailas-cloud/watchrec/internal/domain"
)

// Record field names for the movie hash.
const (
	fieldTitle = "title"
	fieldYear  = "year_of_release"
)

// store is the consumer interface for the movie index (ISP).
type store interface {
	PutRecord(ctx context.Context, key string, fields map[string]string, policy db.InsertPolicy) error
	GetRecord(ctx context.Context, key string) (map[string]string, error)
	AppendHistory(ctx context.Context, key string, value []byte) error
	PeekMostRecent(ctx context.Context, key string, n int) ([][]byte, error)
	HistorySize(ctx context.Context, key string) (int64, error)
}

// Repo persists movie records and the movie→recent-watchers half of the
// dual index.
type Repo struct {
	store  store
	prefix string
}

// New creates a movie repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Put writes the movie's metadata record under the given insert policy.
// A create-only write against an existing movie returns ErrMovieExists.
func (r *Repo) Put(ctx context.Context, m *domain.Movie, policy db.InsertPolicy) error {
	key := r.movieKey(m.ID)
	fields := map[string]string{
		fieldTitle: m.Title,
		fieldYear:  strconv.Itoa(m.Year),
	}
	if err := r.store.PutRecord(ctx, key, fields, policy); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return fmt.Errorf("movie %s: %w", m.ID, domain.ErrMovieExists)
		}
		return fmt.Errorf("put movie %s: %w", key, err)
	}
	return nil
}

// Get returns a movie's metadata (no watcher history).
func (r *Repo) Get(ctx context.Context, id string) (domain.Movie, error) {
	key := r.movieKey(id)
	fields, err := r.store.GetRecord(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Movie{}, fmt.Errorf("movie %s: %w", id, domain.ErrMovieNotFound)
		}
		return domain.Movie{}, fmt.Errorf("get movie %s: %w", key, err)
	}

	year, err := strconv.Atoi(fields[fieldYear])
	if err != nil {
		return domain.Movie{}, domain.NewMalformedInput("movie %s: mistyped year %q", id, fields[fieldYear])
	}
	return domain.Movie{ID: id, Title: fields[fieldTitle], Year: year}, nil
}

// AppendWatcher appends a watch record to the movie's watcher history.
func (r *Repo) AppendWatcher(ctx context.Context, movieID string, w domain.WatchRecord) error {
	data, err := domain.EncodeWatchRecord(w)
	if err != nil {
		return fmt.Errorf("encode watch record: %w", err)
	}
	key := r.watchersKey(movieID)
	if err := r.store.AppendHistory(ctx, key, data); err != nil {
		return fmt.Errorf("append watcher %s: %w", key, err)
	}
	return nil
}

// Watchers returns up to n of the movie's most recent watch records,
// most recent first.
func (r *Repo) Watchers(ctx context.Context, movieID string, n int) ([]domain.WatchRecord, error) {
	key := r.watchersKey(movieID)
	entries, err := r.store.PeekMostRecent(ctx, key, n)
	if err != nil {
		return nil, fmt.Errorf("peek watchers %s: %w", key, err)
	}
	return decodeHistory(entries)
}

// WatcherCount returns the total number of watch records ever appended
// for the movie.
func (r *Repo) WatcherCount(ctx context.Context, movieID string) (int64, error) {
	key := r.watchersKey(movieID)
	n, err := r.store.HistorySize(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("watcher count %s: %w", key, err)
	}
	return n, nil
}

func (r *Repo) movieKey(id string) string {
	return r.prefix + "movies:" + id
}

func (r *Repo) watchersKey(id string) string {
	return r.movieKey(id) + ":watchers"
}

func decodeHistory(entries [][]byte) ([]domain.WatchRecord, error) {
	records := make([]domain.WatchRecord, 0, len(entries))
	for _, e := range entries {
		w, err := domain.DecodeWatchRecord(e)
		if err != nil {
			return nil, err
		}
		records = append(records, w)
	}
	return records, nil
}
