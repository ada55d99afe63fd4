package customer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/watchrec/internal/db"
	"github.com/kailas-cloud/watchrec/internal/domain"
)

// Record field names for the customer hash.
const (
	fieldCustomerID   = "customer_id"
	fieldRatingsCount = "ratings_count"
)

// store is the consumer interface for the customer index (ISP).
type store interface {
	PutRecord(ctx context.Context, key string, fields map[string]string, policy db.InsertPolicy) error
	GetRecord(ctx context.Context, key string) (map[string]string, error)
	IncrRecordField(ctx context.Context, key, field string, delta int64) (int64, error)
	AppendHistory(ctx context.Context, key string, value []byte) error
	PeekMostRecent(ctx context.Context, key string, n int) ([][]byte, error)
	HistorySize(ctx context.Context, key string) (int64, error)
}

// Repo persists customer records and the customer→recent-watched half of
// the dual index.
type Repo struct {
	store  store
	prefix string
}

// New creates a customer repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Get returns a customer's record (no watched history).
func (r *Repo) Get(ctx context.Context, id string) (domain.Customer, error) {
	key := r.customerKey(id)
	fields, err := r.store.GetRecord(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Customer{}, &domain.CustomerNotFoundError{ID: id}
		}
		return domain.Customer{}, fmt.Errorf("get customer %s: %w", key, err)
	}

	count, err := strconv.ParseInt(fields[fieldRatingsCount], 10, 64)
	if err != nil {
		return domain.Customer{}, domain.NewMalformedInput(
			"customer %s: mistyped ratings_count %q", id, fields[fieldRatingsCount],
		)
	}
	return domain.Customer{ID: id, RatingsCount: count}, nil
}

// Ensure creates the customer record with a zero ratings count if it does
// not exist yet. An existing record is left untouched.
func (r *Repo) Ensure(ctx context.Context, id string) error {
	key := r.customerKey(id)
	fields := map[string]string{
		fieldCustomerID:   id,
		fieldRatingsCount: "0",
	}
	err := r.store.PutRecord(ctx, key, fields, db.CreateOnly)
	if err != nil && !errors.Is(err, db.ErrKeyExists) {
		return fmt.Errorf("ensure customer %s: %w", key, err)
	}
	return nil
}

// AppendWatched appends a watch record to the customer's watched history.
func (r *Repo) AppendWatched(ctx context.Context, customerID string, w domain.WatchRecord) error {
	data, err := domain.EncodeWatchRecord(w)
	if err != nil {
		return fmt.Errorf("encode watch record: %w", err)
	}
	key := r.watchedKey(customerID)
	if err := r.store.AppendHistory(ctx, key, data); err != nil {
		return fmt.Errorf("append watched %s: %w", key, err)
	}
	return nil
}

// Watched returns up to n of the customer's most recent watch records,
// most recent first.
func (r *Repo) Watched(ctx context.Context, customerID string, n int) ([]domain.WatchRecord, error) {
	key := r.watchedKey(customerID)
	entries, err := r.store.PeekMostRecent(ctx, key, n)
	if err != nil {
		return nil, fmt.Errorf("peek watched %s: %w", key, err)
	}

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

// IncrementRatingsCount bumps the customer's lifetime append counter and
// returns the new value. HINCRBY keeps it correct under concurrent
// appenders.
func (r *Repo) IncrementRatingsCount(ctx context.Context, id string) (int64, error) {
	key := r.customerKey(id)
	n, err := r.store.IncrRecordField(ctx, key, fieldRatingsCount, 1)
	if err != nil {
		return 0, fmt.Errorf("increment ratings count %s: %w", key, err)
	}
	return n, nil
}

func (r *Repo) customerKey(id string) string {
	return r.prefix + "customers:" + id
}

func (r *Repo) watchedKey(id string) string {
	return r.customerKey(id) + ":watched"
}
