package geometry

import "math"

// =============================================================================
// Primitives
// =============================================================================

// Point is a position on the 2-D plane.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns the point displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// To returns the vector from p to q.
func (p Point) To(q Point) Vector {
	return Vector{X: q.X - p.X, Y: q.Y - p.Y}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return p.To(q).Length()
}

// Vector is a displacement or force on the 2-D plane.
type Vector struct {
	X float64
	Y float64
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Add returns the component-wise sum of v and w.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Unit returns the vector of length 1 pointing in v's direction.
// The zero vector is returned unchanged.
func (v Vector) Unit() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Extents are the positive half-width and half-height of an axis-aligned
// bounding shape. Zero or negative extents are rejected by the layout
// engine's input validation; the geometry functions assume they are positive.
type Extents struct {
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Box is an axis-aligned bounding shape: a center with half-extents.
type Box struct {
	Center Point
	Half   Extents
}

// =============================================================================
// Boundary Resolution
// =============================================================================

// Intersection returns the point where the line from the box center toward
// the given point exits the box boundary, on the side facing toward.
//
// The boundary is approximated by the ellipse inscribed in the bounding box.
// If toward coincides with the center the line's direction is undefined; the
// top boundary point is returned so the result stays finite, but callers are
// expected to guard against coincident centers (pkg/force applies its own
// tie-break before resolving the span).
func (b Box) Intersection(toward Point) Point {
	c := b.Center
	if toward.X == c.X {
		if toward.Y > c.Y {
			return Point{X: c.X, Y: c.Y + b.Half.H}
		}
		return Point{X: c.X, Y: c.Y - b.Half.H}
	}

	m := (toward.Y - c.Y) / (toward.X - c.X)
	d := b.Half.W * b.Half.H / math.Sqrt(b.Half.W*b.Half.W*m*m+b.Half.H*b.Half.H)
	if toward.X > c.X {
		return Point{X: c.X + d, Y: c.Y + d*m}
	}
	return Point{X: c.X - d, Y: c.Y - d*m}
}

// Span is the resolved boundary-to-boundary segment between two boxes:
// the boundary point of each box facing the other, plus per-axis flags
// reporting whether the boxes overlap on that axis.
//
// Overlap is detected by comparing, per axis, the direction of the
// center-to-center delta against the direction of the boundary-point delta.
// When the boxes overlap on an axis the boundary points cross sides and the
// two deltas disagree in sign.
type Span struct {
	From Point // boundary point on the first box, facing the second
	To   Point // boundary point on the second box, facing the first

	OverlapX bool
	OverlapY bool
}

// BoundarySpan resolves the boundary segment between boxes a and b.
func BoundarySpan(a, b Box) Span {
	from := a.Intersection(b.Center)
	to := b.Intersection(a.Center)
	return Span{
		From:     from,
		To:       to,
		OverlapX: (b.Center.X-a.Center.X)*(to.X-from.X) < 0,
		OverlapY: (b.Center.Y-a.Center.Y)*(to.Y-from.Y) < 0,
	}
}

// Vector returns the raw boundary-to-boundary vector From→To.
func (s Span) Vector() Vector {
	return s.From.To(s.To)
}

// Inverted returns the boundary vector with every overlapping axis negated.
// Negating an axis is equivalent to swapping the two boundary offsets on it,
// which keeps the repulsive push well-defined for overlapping shapes.
func (s Span) Inverted() Vector {
	v := s.Vector()
	if s.OverlapX {
		v.X = -v.X
	}
	if s.OverlapY {
		v.Y = -v.Y
	}
	return v
}

// Overlaps reports whether the boxes overlap on at least one axis.
func (s Span) Overlaps() bool {
	return s.OverlapX || s.OverlapY
}
