package redis

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/watchrec/internal/db"
)

// PutRecord writes the fields of a hash record under the given insert policy.
// CreateOnly and UpdateOnly run an existence check before the write; the two
// commands are not atomic, which mirrors the non-transactional record path
// documented on db.RecordStore.
func (s *Store) PutRecord(
	ctx context.Context, key string, fields map[string]string, policy db.InsertPolicy,
) error {
	switch policy {
	case db.CreateOnly:
		exists, err := s.Exists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			return db.ErrKeyExists
		}
	case db.UpdateOnly:
		exists, err := s.Exists(ctx, key)
		if err != nil {
			return err
		}
		if !exists {
			return db.ErrKeyNotFound
		}
	case db.Upsert:
		// unconditional write
	default:
		return fmt.Errorf("unknown insert policy %q", policy)
	}

	cmd := s.b().Hset().Key(key).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// GetRecord returns all fields of a hash record.
func (s *Store) GetRecord(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	// HGETALL on a missing key returns an empty map, not an error.
	if len(m) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return m, nil
}

// IncrRecordField atomically increments a numeric hash field.
func (s *Store) IncrRecordField(ctx context.Context, key, field string, delta int64) (int64, error) {
	cmd := s.b().Hincrby().Key(key).Field(field).Increment(delta).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpHIncrBy, Err: err}
	}
	return n, nil
}

// Del deletes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists checks if a key exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	cmd := s.b().Exists().Key(key).Build()
	count, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return count > 0, nil
}
