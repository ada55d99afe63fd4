package domain

// Movie is a catalog item together with its recent-consumer index entry.
// Watchers holds watch records in ingestion order; the rating exports
// present them pre-sorted by recency and the index builder does not
// re-sort them.
type Movie struct {
	ID       string
	Title    string
	Year     int
	Watchers []WatchRecord
}

// Customer is a consumer together with its recent-item index entry.
// Customers are created lazily by the first watch record referencing
// their id. RatingsCount counts every append ever made for the customer,
// independent of how many entries a bounded read returns.
type Customer struct {
	ID           string
	RatingsCount int64
	Watched      []WatchRecord
}
