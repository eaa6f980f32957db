package spawn

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalizeSumsToOne(t *testing.T) {
	tests := []struct {
		name string
		raw  []float64
	}{
		{"all equal", []float64{1, 1, 1, 1}},
		{"one dominant", []float64{1000, 1, 1}},
		{"zero entry", []float64{0.5, 0, 0.5}},
		{"negative entry", []float64{-2, 1, 3}},
		{"single", []float64{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, ok := Normalize(tt.raw)
			if !ok {
				t.Fatal("Normalize reported no usable weight")
			}
			sum := 0.0
			for i, w := range out {
				if w < 0 {
					t.Errorf("weight %d = %v, expected non-negative", i, w)
				}
				sum += w
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("sum = %v, expected 1", sum)
			}
		})
	}
}

func TestNormalizeCountsNegatives(t *testing.T) {
	out, negatives, ok := Normalize([]float64{-2, 1, 3})
	if !ok || negatives != 1 {
		t.Fatalf("ok=%v negatives=%d, expected true/1", ok, negatives)
	}
	if out[0] != 0 || math.Abs(out[1]-0.25) > 1e-9 {
		t.Errorf("out = %v, expected [0 0.25 0.75]", out)
	}
}

func TestNormalizeRejectsEmptyAndZero(t *testing.T) {
	if _, _, ok := Normalize(nil); ok {
		t.Error("empty weights reported usable")
	}
	out, _, ok := Normalize([]float64{0, 0})
	if ok {
		t.Error("all-zero weights reported usable")
	}
	for i, w := range out {
		if w != 0 {
			t.Errorf("out[%d] = %v, expected 0", i, w)
		}
	}
	if got := Pick(out, 0.5); got != -1 {
		t.Errorf("Pick over zero weights = %d, expected -1", got)
	}
}

func TestPickRemainingMassRule(t *testing.T) {
	tests := []struct {
		weights []float64
		r       float64
		want    int
	}{
		{[]float64{0.7, 0.3}, 0.31, 0},
		{[]float64{0.7, 0.3}, 0.99, 0},
		{[]float64{0.7, 0.3}, 0.29, 1},
		{[]float64{0.7, 0.3}, 0, 1},
		{[]float64{0, 1}, 0, 1},
		{[]float64{0.5, 0, 0.5}, 0.5, 0},
		{[]float64{0.5, 0, 0.5}, 0.1, 2},
		{[]float64{0.25, 0.25, 0.5, 0}, 0.8, 0},
		{[]float64{0.25, 0.25, 0.5, 0}, 0.5, 1},
		{[]float64{0.25, 0.25, 0.5, 0}, 0.2, 2},
	}
	for _, tt := range tests {
		if got := Pick(tt.weights, tt.r); got != tt.want {
			t.Errorf("Pick(%v, %v) = %d, expected %d", tt.weights, tt.r, got, tt.want)
		}
	}
}

func TestPickConvergesToWeights(t *testing.T) {
	weights, _, _ := Normalize([]float64{0.7, 0.3})
	rng := rand.New(rand.NewSource(42))

	const draws = 10000
	counts := make([]int, 2)
	for i := 0; i < draws; i++ {
		counts[Pick(weights, rng.Float64())]++
	}

	share := float64(counts[0]) / draws
	if math.Abs(share-0.7) > 0.02 {
		t.Errorf("first source share = %.4f, expected 0.7 +/- 0.02", share)
	}
}
