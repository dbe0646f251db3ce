package force

import (
	"github.com/sbusard/graphlayout/pkg/geometry"
)

// tieBreak is the fixed separation direction applied when two body centers
// coincide exactly and the true direction is undefined: straight up in
// canvas coordinates. Documented behavior, not configurable. Being the same
// for both bodies, it only separates a coincident pair when something else
// breaks the symmetry, such as one body being held fixed (see the package
// doc).
var tieBreak = geometry.Vector{X: 0, Y: -1}

// Spring is an edge-induced attraction between two bodies. Direction is
// irrelevant to the physics; the pull is symmetric between both endpoints.
type Spring struct {
	From string
	To   string
}

// System is a frozen snapshot of the simulation state for one step: every
// body's bounding shape at its current position, plus the springs connecting
// them. Forces computed against a System never observe partially updated
// positions.
type System struct {
	// IDs fixes the iteration order over Bodies. Callers sort it once so
	// force summation, and therefore the whole simulation, is deterministic.
	IDs []string

	Bodies  map[string]geometry.Box
	Springs []Spring
}

// Field computes net forces under a fixed configuration.
type Field struct {
	cfg Config
}

// NewField creates a force field with the given constants.
func NewField(cfg Config) *Field {
	return &Field{cfg: cfg}
}

// Config returns the field's constants.
func (f *Field) Config() Config { return f.cfg }

// Net returns the net force on the named body: the sum of one repulsion term
// per other body and one attraction term per spring incident to it.
// Self-loop springs are skipped.
func (f *Field) Net(sys System, id string) geometry.Vector {
	body := sys.Bodies[id]

	var net geometry.Vector
	for _, otherID := range sys.IDs {
		if otherID == id {
			continue
		}
		net = net.Add(f.Repulsion(body, sys.Bodies[otherID]))
	}

	for _, s := range sys.Springs {
		if s.From == s.To {
			continue
		}
		var otherID string
		switch id {
		case s.From:
			otherID = s.To
		case s.To:
			otherID = s.From
		default:
			continue
		}
		net = net.Add(f.Attraction(body, sys.Bodies[otherID]))
	}

	return net
}

// Repulsion returns the Coulomb-like force exerted on body by other,
// measured over the boundary-to-boundary gap. The force points away from
// other and its magnitude is clamped to MaxForce.
func (f *Field) Repulsion(body, other geometry.Box) geometry.Vector {
	if body.Center == other.Center {
		return tieBreak.Scale(f.cfg.MaxForce)
	}

	span := geometry.BoundarySpan(body, other)
	v := span.Inverted()
	gap := v.Length()

	scalar := -f.cfg.MaxForce
	if gap != 0 {
		scalar = f.clamp(-f.cfg.Repulsion / (gap * gap))
		return v.Unit().Scale(scalar)
	}
	// Boundaries touch exactly: fall back to the center line for direction.
	return body.Center.To(other.Center).Unit().Scale(scalar)
}

// Attraction returns the Hooke-like spring force exerted on body by other.
// Overlapping and exactly touching shapes contribute nothing; the repulsion
// term is left alone to separate them. The rest length adapts to the
// combined projections of both shapes along the connecting line, floored at
// MinSpringLength.
func (f *Field) Attraction(body, other geometry.Box) geometry.Vector {
	if body.Center == other.Center {
		// Coincident centers always count as overlapping.
		return geometry.Vector{}
	}

	span := geometry.BoundarySpan(body, other)
	if span.Overlaps() {
		return geometry.Vector{}
	}

	v := span.Vector()
	gap := v.Length()
	if gap == 0 {
		// Exactly touching boundaries leave no segment to pull along, so
		// the spring contributes nothing, same as overlap.
		return geometry.Vector{}
	}

	rest := body.Center.DistanceTo(other.Center) - gap
	if rest < f.cfg.MinSpringLength {
		rest = f.cfg.MinSpringLength
	}

	scalar := f.clamp(-f.cfg.SpringStiffness * (rest - gap) / gap)
	return v.Unit().Scale(scalar)
}

// clamp bounds a force scalar to ±MaxForce.
func (f *Field) clamp(s float64) float64 {
	if s > f.cfg.MaxForce {
		return f.cfg.MaxForce
	}
	if s < -f.cfg.MaxForce {
		return -f.cfg.MaxForce
	}
	return s
}
