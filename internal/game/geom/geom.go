// Package geom provides the small 2D vector and distance primitives the
// simulation core needs: point distance, point-to-segment distance, and
// normalization/clamping helpers, as free functions over a plain Vec2.
package geom

import "math"

// Vec2 is a 2D point or vector in feet.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec2) float64 {
	return Vec2{a.X - b.X, a.Y - b.Y}.Len()
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func Normalize(v Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Clamp restricts each component of v to [lo, hi].
func Clamp(v, lo, hi Vec2) Vec2 {
	return Vec2{
		X: math.Max(lo.X, math.Min(hi.X, v.X)),
		Y: math.Max(lo.Y, math.Min(hi.Y, v.Y)),
	}
}

// Clamp1D restricts a scalar to [lo, hi].
func Clamp1D(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Segment is a line segment from From to To.
type Segment struct {
	From, To Vec2
}

// DistanceToLine returns the distance from point to the clamped segment seg
// (i.e. the parameter t is clamped to [0, 1] — distance to the nearest point
// on the finite segment, not the infinite line).
func DistanceToLine(point Vec2, seg Segment) float64 {
	d := seg.To.Sub(seg.From)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq == 0 {
		return Dist(point, seg.From)
	}
	t := (point.X-seg.From.X)*d.X + (point.Y-seg.From.Y)*d.Y
	t /= lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := seg.From.Add(d.Scale(t))
	return Dist(point, proj)
}
