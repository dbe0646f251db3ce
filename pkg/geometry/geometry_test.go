package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestIntersection(t *testing.T) {
	tests := []struct {
		name   string
		box    Box
		toward Point
		want   Point
	}{
		{
			name:   "RightAxis",
			box:    Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 5}},
			toward: Point{100, 0},
			want:   Point{10, 0},
		},
		{
			name:   "LeftAxis",
			box:    Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 5}},
			toward: Point{-100, 0},
			want:   Point{-10, 0},
		},
		{
			name:   "DownVertical",
			box:    Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 5}},
			toward: Point{0, 100},
			want:   Point{0, 5},
		},
		{
			name:   "UpVertical",
			box:    Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 5}},
			toward: Point{0, -100},
			want:   Point{0, -5},
		},
		{
			name:   "Diagonal45Square",
			box:    Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 10}},
			toward: Point{100, 100},
			want:   Point{100 / math.Sqrt(200), 100 / math.Sqrt(200)},
		},
		{
			name:   "Diagonal45Flat",
			box:    Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 5}},
			toward: Point{100, 100},
			want:   Point{50 / math.Sqrt(125), 50 / math.Sqrt(125)},
		},
		{
			name:   "OffsetCenter",
			box:    Box{Center: Point{50, 30}, Half: Extents{W: 10, H: 5}},
			toward: Point{200, 30},
			want:   Point{60, 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.box.Intersection(tt.toward)
			if !approxEq(got.X, tt.want.X) || !approxEq(got.Y, tt.want.Y) {
				t.Errorf("Intersection = (%v, %v), want (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestIntersectionOnEllipse(t *testing.T) {
	// Every resolved point must satisfy the inscribed ellipse equation
	// (x/a)² + (y/b)² = 1, regardless of direction.
	box := Box{Center: Point{0, 0}, Half: Extents{W: 30, H: 12}}
	for i := 0; i < 16; i++ {
		angle := float64(i) * math.Pi / 8
		toward := Point{X: 500 * math.Cos(angle), Y: 500 * math.Sin(angle)}
		p := box.Intersection(toward)
		r := (p.X/box.Half.W)*(p.X/box.Half.W) + (p.Y/box.Half.H)*(p.Y/box.Half.H)
		if math.Abs(r-1) > 1e-9 {
			t.Errorf("angle %.2f: point (%v, %v) off ellipse, r = %v", angle, p.X, p.Y, r)
		}
	}
}

func TestBoundarySpan(t *testing.T) {
	tests := []struct {
		name         string
		a, b         Box
		wantVec      Vector
		wantOverlapX bool
		wantOverlapY bool
	}{
		{
			name:    "HorizontalSeparated",
			a:       Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 10}},
			b:       Box{Center: Point{200, 0}, Half: Extents{W: 20, H: 10}},
			wantVec: Vector{170, 0},
		},
		{
			name:    "VerticalSeparated",
			a:       Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 10}},
			b:       Box{Center: Point{0, 100}, Half: Extents{W: 10, H: 20}},
			wantVec: Vector{0, 70},
		},
		{
			name:         "OverlappingX",
			a:            Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 10}},
			b:            Box{Center: Point{5, 0}, Half: Extents{W: 10, H: 10}},
			wantVec:      Vector{-15, 0},
			wantOverlapX: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BoundarySpan(tt.a, tt.b)
			v := s.Vector()
			if !approxEq(v.X, tt.wantVec.X) || !approxEq(v.Y, tt.wantVec.Y) {
				t.Errorf("Vector = (%v, %v), want (%v, %v)", v.X, v.Y, tt.wantVec.X, tt.wantVec.Y)
			}
			if s.OverlapX != tt.wantOverlapX {
				t.Errorf("OverlapX = %v, want %v", s.OverlapX, tt.wantOverlapX)
			}
			if s.OverlapY != tt.wantOverlapY {
				t.Errorf("OverlapY = %v, want %v", s.OverlapY, tt.wantOverlapY)
			}
		})
	}
}

func TestSpanGapEqualsCenterDistanceMinusProjections(t *testing.T) {
	// For non-overlapping boxes the boundary points are colinear with the
	// centers, so the gap equals center distance minus both projections.
	a := Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 10}}
	b := Box{Center: Point{200, 0}, Half: Extents{W: 20, H: 10}}

	s := BoundarySpan(a, b)
	gap := s.Vector().Length()
	want := a.Center.DistanceTo(b.Center) - 10 - 20
	if math.Abs(gap-want) > eps {
		t.Errorf("gap = %v, want %v", gap, want)
	}
}

func TestSpanInverted(t *testing.T) {
	a := Box{Center: Point{0, 0}, Half: Extents{W: 10, H: 10}}
	b := Box{Center: Point{5, 0}, Half: Extents{W: 10, H: 10}}

	s := BoundarySpan(a, b)
	if !s.Overlaps() {
		t.Fatal("expected overlap")
	}

	raw := s.Vector()
	inv := s.Inverted()
	if !approxEq(inv.X, -raw.X) {
		t.Errorf("Inverted.X = %v, want %v", inv.X, -raw.X)
	}
	if !approxEq(inv.Y, raw.Y) {
		t.Errorf("Inverted.Y = %v, want %v", inv.Y, raw.Y)
	}

	// The inverted vector must point from a toward b so the repulsive push
	// separates overlapping shapes instead of attracting them.
	if inv.X <= 0 {
		t.Errorf("inverted vector points away from b: %v", inv.X)
	}
}

func TestVectorHelpers(t *testing.T) {
	v := Vector{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	u := v.Unit()
	if math.Abs(u.Length()-1) > eps {
		t.Errorf("Unit length = %v, want 1", u.Length())
	}
	if z := (Vector{}).Unit(); z.X != 0 || z.Y != 0 {
		t.Errorf("zero Unit = %+v, want zero", z)
	}
	sum := v.Add(Vector{-3, 1})
	if sum.X != 0 || sum.Y != 5 {
		t.Errorf("Add = %+v", sum)
	}
	if got := v.Scale(2); got.X != 6 || got.Y != 8 {
		t.Errorf("Scale = %+v", got)
	}
}
