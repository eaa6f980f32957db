// Package core holds the types shared by every layer of the game: vector
// helpers, the collaborator contracts (audio, UI), the per-session Env, and
// the character screen buffer used by terminal renderers.
package core

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Bounds is an axis-aligned region in world units.
type Bounds struct {
	Min, Max r2.Vec
}

// Contains reports whether p lies inside the bounds (edges included).
func (b Bounds) Contains(p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Size returns the width and height of the bounds.
func (b Bounds) Size() (float64, float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}

// SampleDisk returns a uniformly distributed point inside the disk of the
// given radius around center. Polar sampling with a square-rooted radius keeps
// the density uniform without rejection.
func SampleDisk(rng *rand.Rand, center r2.Vec, radius float64) r2.Vec {
	if radius <= 0 {
		return center
	}
	theta := 2 * math.Pi * rng.Float64()
	rad := radius * math.Sqrt(rng.Float64())
	return r2.Add(center, r2.Vec{X: rad * math.Cos(theta), Y: rad * math.Sin(theta)})
}

// FromAngle returns the unit vector pointing at angle theta (radians).
func FromAngle(theta float64) r2.Vec {
	return r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
}

// AngleTo returns the heading in radians from one point to another.
func AngleTo(from, to r2.Vec) float64 {
	d := r2.Sub(to, from)
	return math.Atan2(d.Y, d.X)
}

// Direction returns the unit vector from one point to another, or the zero
// vector when the points coincide.
func Direction(from, to r2.Vec) r2.Vec {
	d := r2.Sub(to, from)
	if r2.Norm2(d) == 0 {
		return r2.Vec{}
	}
	return r2.Unit(d)
}

// Overlaps reports whether two circles intersect.
func Overlaps(a r2.Vec, ra float64, b r2.Vec, rb float64) bool {
	reach := ra + rb
	return r2.Norm2(r2.Sub(a, b)) <= reach*reach
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
