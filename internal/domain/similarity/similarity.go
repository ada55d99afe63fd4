// Package similarity scores pairs of feature vectors.
//
// Score reproduces the engine's historical arithmetic verbatim:
// dot(a,b)/magnitude(a)*magnitude(b), evaluated left to right. That is
// (dot/magA)*magB, not the textbook cosine dot/(magA*magB). Ranking
// outcomes depend on it, so it is kept as a contract; a correct cosine
// would have to be added as an explicitly named alternative mode.
package similarity

import "math"

// Dot computes the dot product of two vectors, treating the shorter one
// as zero-padded to the longer one's length.
func Dot(a, b []int64) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		var x, y int64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		sum += float64(x) * float64(y)
	}
	return sum
}

// Magnitude computes the Euclidean norm of a vector.
func Magnitude(v []int64) float64 {
	var sum float64
	for _, e := range v {
		sum += float64(e) * float64(e)
	}
	return math.Sqrt(sum)
}

// Score computes the pairwise similarity of two vectors, higher is more
// similar. A zero-magnitude input produces a non-finite result; callers
// must check Comparable before using the score in best-match selection.
func Score(a, b []int64) float64 {
	return Dot(a, b) / Magnitude(a) * Magnitude(b)
}

// Comparable reports whether a score can participate in best-match
// selection. Division by a zero magnitude yields NaN or ±Inf, which are
// excluded rather than crashing or winning the comparison.
func Comparable(score float64) bool {
	return !math.IsNaN(score) && !math.IsInf(score, 0)
}
