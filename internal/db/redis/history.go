package redis

import (
	"context"

	"github.com/kailas-cloud/watchrec/internal/db"
)

// AppendHistory appends a value to the end of the history list at key.
// RPUSH is atomic on the server, so concurrent appenders interleave but
// never lose entries.
func (s *Store) AppendHistory(ctx context.Context, key string, value []byte) error {
	cmd := s.b().Rpush().Key(key).Element(string(value)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	return nil
}

// PeekMostRecent returns up to n entries from the tail of the history,
// most recent first. A missing key yields an empty result.
func (s *Store) PeekMostRecent(ctx context.Context, key string, n int) ([][]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	cmd := s.b().Lrange().Key(key).Start(int64(-n)).Stop(-1).Build()
	entries, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}

	// LRANGE returns oldest first; flip to most-recent-first.
	out := make([][]byte, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = []byte(e)
	}
	return out, nil
}

// HistorySize returns the total number of entries in the history at key.
func (s *Store) HistorySize(ctx context.Context, key string) (int64, error) {
	cmd := s.b().Llen().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpLLen, Err: err}
	}
	return n, nil
}
