// Package ingest holds the per-movie ingestion outcome types.
package ingest

// Report is the outcome of ingesting one movie. Counters are returned to
// the caller and aggregated there; the builder keeps no shared mutable
// process state.
type Report struct {
	MovieID string
	// Created is true when the movie record write went through (a fresh
	// create, or an upsert under that policy).
	Created bool
	// AlreadyExists is true when a create-only write found the movie
	// already present; no histories were touched.
	AlreadyExists bool
	// Appended counts watch records written to both indices.
	Appended int
	// Errors counts watch records that failed and were skipped.
	Errors int
}

// Totals aggregates reports across an ingestion run.
type Totals struct {
	Movies        int
	Created       int
	AlreadyExists int
	Appended      int
	Errors        int
}

// Add folds one report into the totals.
func (t *Totals) Add(r Report) {
	t.Movies++
	if r.Created {
		t.Created++
	}
	if r.AlreadyExists {
		t.AlreadyExists++
	}
	t.Appended += r.Appended
	t.Errors += r.Errors
}
