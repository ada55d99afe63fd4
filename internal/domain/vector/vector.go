// Package vector turns an ordered watch history into a flat feature vector.
//
// The vector interleaves (movieID, rating) pairs in history order, with a
// single 0 standing in for a record whose movie reference does not parse
// as an integer. It is purely positional: two customers' vectors have no
// alignment guarantee beyond position index.
package vector

import (
	"strconv"

	"github.com/kailas-cloud/watchrec/internal/domain"
)

// Vectorize builds a feature vector from a watch history, preserving order.
// An empty history yields an empty vector.
func Vectorize(history []domain.WatchRecord) []int64 {
	vec := make([]int64, 0, len(history)*2)
	for _, w := range history {
		id, err := strconv.ParseInt(w.MovieID, 10, 64)
		if err != nil {
			vec = append(vec, 0)
			continue
		}
		vec = append(vec, id, int64(w.Rating))
	}
	return vec
}

// Contains reports whether v appears anywhere in the vector. Membership is
// tested against the whole interleaved vector, ratings included; this is
// the historical set-difference behavior and is kept as a contract.
func Contains(vec []int64, v int64) bool {
	for _, e := range vec {
		if e == v {
			return true
		}
	}
	return false
}
