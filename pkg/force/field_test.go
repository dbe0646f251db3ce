package force

import (
	"math"
	"testing"

	"github.com/sbusard/graphlayout/pkg/geometry"
)

func box(x, y, hw, hh float64) geometry.Box {
	return geometry.Box{
		Center: geometry.Point{X: x, Y: y},
		Half:   geometry.Extents{W: hw, H: hh},
	}
}

func TestRepulsionSymmetry(t *testing.T) {
	f := NewField(DefaultConfig())

	tests := []struct {
		name string
		a, b geometry.Box
	}{
		{"Horizontal", box(0, 0, 10, 10), box(200, 0, 20, 10)},
		{"Diagonal", box(0, 0, 15, 5), box(120, 90, 10, 25)},
		{"Vertical", box(0, 0, 10, 10), box(0, 150, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fab := f.Repulsion(tt.a, tt.b)
			fba := f.Repulsion(tt.b, tt.a)
			if math.Abs(fab.X+fba.X) > 1e-12 || math.Abs(fab.Y+fba.Y) > 1e-12 {
				t.Errorf("forces not opposite: %+v vs %+v", fab, fba)
			}
			if fab.Length() == 0 {
				t.Error("expected non-zero repulsion")
			}
		})
	}
}

func TestRepulsionPushesApart(t *testing.T) {
	f := NewField(DefaultConfig())

	// b sits to the right of a, so a must be pushed left.
	got := f.Repulsion(box(0, 0, 10, 10), box(200, 0, 10, 10))
	if got.X >= 0 {
		t.Errorf("force.X = %v, want negative", got.X)
	}

	// Magnitude follows the inverse-square law over the 180 unit gap.
	want := DefaultRepulsion / (180 * 180)
	if math.Abs(got.Length()-want) > 1e-9 {
		t.Errorf("|force| = %v, want %v", got.Length(), want)
	}
}

func TestRepulsionOverlapStillSeparates(t *testing.T) {
	f := NewField(DefaultConfig())

	// Heavily overlapping boxes: the inverted boundary segment must still
	// push a away from b, never attract.
	got := f.Repulsion(box(0, 0, 10, 10), box(3, 0, 10, 10))
	if got.X >= 0 {
		t.Errorf("force.X = %v, want negative (push away from b)", got.X)
	}
	if got.Length() > DefaultMaxForce+1e-12 {
		t.Errorf("|force| = %v exceeds cap %v", got.Length(), DefaultMaxForce)
	}
}

func TestForceCap(t *testing.T) {
	f := NewField(DefaultConfig())
	a := box(0, 0, 10, 10)

	// Bring b arbitrarily close, including exact coincidence. The computed
	// magnitude must never exceed MaxForce.
	for _, d := range []float64{50, 5, 1, 0.1, 0.001, 0} {
		b := box(d, 0, 10, 10)
		if got := f.Repulsion(a, b).Length(); got > DefaultMaxForce+1e-12 {
			t.Errorf("d=%v: |repulsion| = %v exceeds cap", d, got)
		}
		if got := f.Attraction(a, b).Length(); got > DefaultMaxForce+1e-12 {
			t.Errorf("d=%v: |attraction| = %v exceeds cap", d, got)
		}
	}
}

func TestAttractionZeroAtRestLength(t *testing.T) {
	f := NewField(DefaultConfig())

	// Centers 80 apart with half-widths 10+10 leave a 60 unit gap, exactly
	// the minimum spring length: the spring is at rest.
	got := f.Attraction(box(0, 0, 10, 10), box(80, 0, 10, 10))
	if got.Length() > 1e-9 {
		t.Errorf("|force| = %v, want 0 at rest length", got.Length())
	}
}

func TestAttractionDirection(t *testing.T) {
	f := NewField(DefaultConfig())
	a := box(0, 0, 10, 10)

	// Stretched beyond rest length: pulled toward the other body.
	if got := f.Attraction(a, box(300, 0, 10, 10)); got.X <= 0 {
		t.Errorf("stretched spring force.X = %v, want positive", got.X)
	}

	// Compressed below rest length (gap 30 < 60): pushed away.
	if got := f.Attraction(a, box(50, 0, 10, 10)); got.X >= 0 {
		t.Errorf("compressed spring force.X = %v, want negative", got.X)
	}
}

func TestAttractionIgnoresOverlap(t *testing.T) {
	f := NewField(DefaultConfig())

	if got := f.Attraction(box(0, 0, 10, 10), box(5, 0, 10, 10)); got.Length() != 0 {
		t.Errorf("|force| = %v, want 0 for overlapping shapes", got.Length())
	}
	if got := f.Attraction(box(0, 0, 10, 10), box(0, 0, 10, 10)); got.Length() != 0 {
		t.Errorf("|force| = %v, want 0 for coincident shapes", got.Length())
	}
}

func TestAttractionZeroWhenTouching(t *testing.T) {
	f := NewField(DefaultConfig())

	// Centers 20 apart with half-widths 10+10: the boundaries meet exactly,
	// leaving no segment for the spring to act along.
	if got := f.Attraction(box(0, 0, 10, 10), box(20, 0, 10, 10)); got.Length() != 0 {
		t.Errorf("|force| = %v, want 0 for touching shapes", got.Length())
	}
}

func TestAttractionAdaptiveRestLength(t *testing.T) {
	f := NewField(DefaultConfig())

	// Wide shapes: projections sum to 100, above the 60 floor, so the rest
	// gap is 100. Centers 200 apart leave a 100 gap: at rest.
	got := f.Attraction(box(0, 0, 50, 50), box(200, 0, 50, 50))
	if got.Length() > 1e-9 {
		t.Errorf("|force| = %v, want 0 at adaptive rest length", got.Length())
	}
}

func TestCoincidentCentersTieBreak(t *testing.T) {
	f := NewField(DefaultConfig())

	got := f.Repulsion(box(0, 0, 10, 10), box(0, 0, 10, 10))
	if got.X != 0 || got.Y != -DefaultMaxForce {
		t.Errorf("tie-break force = %+v, want (0, %v)", got, -DefaultMaxForce)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Error("tie-break produced NaN")
	}
}

func TestNetSumsPairsAndSprings(t *testing.T) {
	f := NewField(DefaultConfig())

	sys := System{
		IDs: []string{"a", "b", "c"},
		Bodies: map[string]geometry.Box{
			"a": box(0, 0, 10, 10),
			"b": box(300, 0, 10, 10),
			"c": box(150, 200, 10, 10),
		},
		Springs: []Spring{{From: "a", To: "b"}},
	}

	want := f.Repulsion(sys.Bodies["a"], sys.Bodies["b"]).
		Add(f.Repulsion(sys.Bodies["a"], sys.Bodies["c"])).
		Add(f.Attraction(sys.Bodies["a"], sys.Bodies["b"]))

	got := f.Net(sys, "a")
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("Net = %+v, want %+v", got, want)
	}

	// c has no spring: only repulsion contributes.
	wantC := f.Repulsion(sys.Bodies["c"], sys.Bodies["a"]).
		Add(f.Repulsion(sys.Bodies["c"], sys.Bodies["b"]))
	gotC := f.Net(sys, "c")
	if math.Abs(gotC.X-wantC.X) > 1e-12 || math.Abs(gotC.Y-wantC.Y) > 1e-12 {
		t.Errorf("Net(c) = %+v, want %+v", gotC, wantC)
	}
}

func TestNetSkipsSelfLoop(t *testing.T) {
	f := NewField(DefaultConfig())

	sys := System{
		IDs: []string{"a", "b"},
		Bodies: map[string]geometry.Box{
			"a": box(0, 0, 10, 10),
			"b": box(300, 0, 10, 10),
		},
		Springs: []Spring{{From: "a", To: "a"}},
	}

	want := f.Repulsion(sys.Bodies["a"], sys.Bodies["b"])
	got := f.Net(sys, "a")
	if got != want {
		t.Errorf("Net = %+v, want repulsion only %+v", got, want)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"Defaults", func(c *Config) {}, nil},
		{"ZeroStiffness", func(c *Config) { c.SpringStiffness = 0 }, ErrNonPositiveConstant},
		{"NegativeRepulsion", func(c *Config) { c.Repulsion = -1 }, ErrNonPositiveConstant},
		{"ZeroMaxForce", func(c *Config) { c.MaxForce = 0 }, ErrNonPositiveConstant},
		{"ZeroThreshold", func(c *Config) { c.Threshold = 0 }, ErrNonPositiveConstant},
		{"ZeroIterations", func(c *Config) { c.MaxIterations = 0 }, ErrNonPositiveBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err != tt.wantErr {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
