package domain

import (
	"encoding/json"
	"time"
)

// dateLayout is the day-granularity format the rating exports use.
const dateLayout = "2006-01-02"

// WatchRecord is the atomic fact "customer C watched movie M with rating R
// on date D". Immutable once created; the same record is embedded in both
// the movie's watcher history and the customer's watched history.
type WatchRecord struct {
	MovieID    string
	CustomerID string
	Rating     int
	Date       time.Time
}

// watchRecordWire is the stored JSON shape of a watch record.
type watchRecordWire struct {
	MovieID    string `json:"movieId"`
	CustomerID string `json:"customerId"`
	Rating     int    `json:"rating"`
	Date       string `json:"date"`
}

// EncodeWatchRecord serializes a watch record for history storage.
func EncodeWatchRecord(w WatchRecord) ([]byte, error) {
	return json.Marshal(watchRecordWire{
		MovieID:    w.MovieID,
		CustomerID: w.CustomerID,
		Rating:     w.Rating,
		Date:       w.Date.Format(dateLayout),
	})
}

// DecodeWatchRecord deserializes a stored history entry. Missing or
// mistyped fields report ErrMalformedInput instead of producing a
// half-hydrated record.
func DecodeWatchRecord(data []byte) (WatchRecord, error) {
	var wire watchRecordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WatchRecord{}, NewMalformedInput("watch record: %v", err)
	}
	if wire.MovieID == "" {
		return WatchRecord{}, NewMalformedInput("watch record: missing movieId")
	}
	if wire.CustomerID == "" {
		return WatchRecord{}, NewMalformedInput("watch record: missing customerId")
	}
	date, err := ParseWatchDate(wire.Date)
	if err != nil {
		return WatchRecord{}, err
	}
	return WatchRecord{
		MovieID:    wire.MovieID,
		CustomerID: wire.CustomerID,
		Rating:     wire.Rating,
		Date:       date,
	}, nil
}

// ParseWatchDate parses a watch date in either day (2006-01-02) or RFC 3339
// form. An empty or unparseable date reports ErrMalformedInput.
func ParseWatchDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, NewMalformedInput("watch record: missing date")
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, NewMalformedInput("watch record: unparseable date %q", s)
}
