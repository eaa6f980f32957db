package core

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestSampleDiskStaysInside(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	center := r2.Vec{X: 40, Y: 10}
	radius := 12.0

	for i := 0; i < 5000; i++ {
		p := SampleDisk(rng, center, radius)
		if d := r2.Norm(r2.Sub(p, center)); d > radius+1e-9 {
			t.Fatalf("Sample %d at distance %f, expected <= %f", i, d, radius)
		}
	}
}

func TestSampleDiskIsUniform(t *testing.T) {
	// Half the area of a disk lies inside radius R/sqrt(2).
	rng := rand.New(rand.NewSource(99))
	radius := 10.0
	inner := radius / math.Sqrt2
	const n = 20000

	count := 0
	for i := 0; i < n; i++ {
		p := SampleDisk(rng, r2.Vec{}, radius)
		if r2.Norm(p) <= inner {
			count++
		}
	}

	frac := float64(count) / n
	if math.Abs(frac-0.5) > 0.02 {
		t.Errorf("Inner-disk fraction = %f, expected about 0.5", frac)
	}
}

func TestSampleDiskZeroRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	center := r2.Vec{X: 3, Y: 4}
	if p := SampleDisk(rng, center, 0); p != center {
		t.Errorf("SampleDisk with zero radius = %v, expected %v", p, center)
	}
}

func TestDirection(t *testing.T) {
	d := Direction(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5})
	if math.Abs(d.X-0.6) > 1e-9 || math.Abs(d.Y-0.8) > 1e-9 {
		t.Errorf("Direction = %v, expected (0.6, 0.8)", d)
	}

	if z := Direction(r2.Vec{X: 2, Y: 2}, r2.Vec{X: 2, Y: 2}); z != (r2.Vec{}) {
		t.Errorf("Direction between equal points = %v, expected zero", z)
	}
}

func TestOverlaps(t *testing.T) {
	a := r2.Vec{X: 0, Y: 0}
	if !Overlaps(a, 1, r2.Vec{X: 1.5, Y: 0}, 0.5) {
		t.Error("Touching circles should overlap")
	}
	if Overlaps(a, 1, r2.Vec{X: 3, Y: 0}, 0.5) {
		t.Error("Distant circles should not overlap")
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 10, Y: 5}}
	if !b.Contains(r2.Vec{X: 10, Y: 5}) {
		t.Error("Bounds should contain their edge")
	}
	if b.Contains(r2.Vec{X: 10.1, Y: 1}) {
		t.Error("Bounds should not contain points past the edge")
	}
	w, h := b.Size()
	if w != 10 || h != 5 {
		t.Errorf("Size() = (%f, %f), expected (10, 5)", w, h)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
