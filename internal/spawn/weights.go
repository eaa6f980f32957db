package spawn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalize scales raw weights so they sum to one. Negative and NaN weights
// are clamped to zero and counted. ok is false when nothing positive is
// left, in which case out holds only zeros.
func Normalize(raw []float64) (out []float64, negatives int, ok bool) {
	out = make([]float64, len(raw))
	for i, w := range raw {
		if w < 0 || math.IsNaN(w) {
			negatives++
			continue
		}
		out[i] = w
	}
	total := floats.Sum(out)
	if total <= 0 || math.IsInf(total, 0) {
		for i := range out {
			out[i] = 0
		}
		return out, negatives, false
	}
	floats.Scale(1/total, out)
	return out, negatives, true
}

// Pick selects a source index from normalized weights and a uniform r in
// [0,1). Sources are walked in input order, accumulating mass, and the first
// one whose remaining mass (1 - accumulated) is at most r wins. Zero weights
// are never selected. When rounding leaves no winner the last positive
// source is returned; -1 means there is nothing to pick.
func Pick(weights []float64, r float64) int {
	acc := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		acc += w
		if 1-acc <= r {
			return i
		}
	}
	return last
}
