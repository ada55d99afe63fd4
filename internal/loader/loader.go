// Package loader decodes movie rating exports into domain entities.
//
// An export is one JSON document per movie:
//
//	{"movieId": "173", "title": "...", "yearOfRelease": 1999,
//	 "watchedBy": [{"customerId": "2346", "rating": 5, "date": "2005-09-06"}, ...]}
//
// The watchedBy list is presented pre-sorted by recency and is kept in
// file order. Ratings appear as numbers or strings depending on the
// export generation; both are accepted.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/watchrec/internal/domain"
)

type movieFile struct {
	MovieID       string       `json:"movieId"`
	Title         string       `json:"title"`
	YearOfRelease int          `json:"yearOfRelease"`
	WatchedBy     []watchEntry `json:"watchedBy"`
}

type watchEntry struct {
	CustomerID string          `json:"customerId"`
	Rating     json.RawMessage `json:"rating"`
	Date       string          `json:"date"`
}

// DecodeMovie reads one movie export document. Missing or mistyped fields
// report ErrMalformedInput with the offending position.
func DecodeMovie(r io.Reader) (domain.Movie, error) {
	var mf movieFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&mf); err != nil {
		return domain.Movie{}, domain.NewMalformedInput("movie document: %v", err)
	}
	if mf.MovieID == "" {
		return domain.Movie{}, domain.NewMalformedInput("movie document: missing movieId")
	}
	if mf.Title == "" {
		return domain.Movie{}, domain.NewMalformedInput("movie %s: missing title", mf.MovieID)
	}

	m := domain.Movie{
		ID:       mf.MovieID,
		Title:    mf.Title,
		Year:     mf.YearOfRelease,
		Watchers: make([]domain.WatchRecord, 0, len(mf.WatchedBy)),
	}
	for i, e := range mf.WatchedBy {
		if e.CustomerID == "" {
			return domain.Movie{}, domain.NewMalformedInput(
				"movie %s: watchedBy[%d]: missing customerId", mf.MovieID, i)
		}
		rating, err := parseRating(e.Rating)
		if err != nil {
			return domain.Movie{}, domain.NewMalformedInput(
				"movie %s: watchedBy[%d]: %v", mf.MovieID, i, err)
		}
		date, err := domain.ParseWatchDate(e.Date)
		if err != nil {
			return domain.Movie{}, domain.NewMalformedInput(
				"movie %s: watchedBy[%d]: %v", mf.MovieID, i, err)
		}
		m.Watchers = append(m.Watchers, domain.WatchRecord{
			MovieID:    mf.MovieID,
			CustomerID: e.CustomerID,
			Rating:     rating,
			Date:       date,
		})
	}
	return m, nil
}

// DecodeMovieFile opens and decodes a single export file.
func DecodeMovieFile(path string) (domain.Movie, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return domain.Movie{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := DecodeMovie(f)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Files lists the movie export files in dir (movie_*.json), sorted by name.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "movie_") && strings.HasSuffix(name, ".json") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// parseRating accepts a rating as a JSON number or a quoted numeric string.
func parseRating(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing rating")
	}
	s := strings.Trim(string(raw), `"`)
	rating, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("mistyped rating %s", string(raw))
	}
	return rating, nil
}
