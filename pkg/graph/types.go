package graph

import (
	"slices"

	"github.com/sbusard/graphlayout/pkg/errors"
	"github.com/sbusard/graphlayout/pkg/geometry"
	"github.com/sbusard/graphlayout/pkg/layout"
)

// Default node dimensions applied when a node omits its size.
const (
	DefaultNodeWidth  = 80.0
	DefaultNodeHeight = 40.0
)

// =============================================================================
// Graph - Node-Link Serialization
// =============================================================================

// Graph is the canonical serialization format for layout graphs.
// Used for files, API requests and responses, and stored layout results.
//
// The format is human-readable and designed for round-trip fidelity:
// read → layout → write → re-read preserves everything but positions.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a positioned, shaped vertex.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)

	// Center position in layout units.
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`

	// Bounding box dimensions. Zero means "use the default size".
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`

	// Fixed pins the node: the engine reads its position but never moves it.
	Fixed bool `json:"fixed,omitempty" bson:"fixed,omitempty"`

	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Extents returns the node's half-extents, substituting defaults for
// missing dimensions.
func (n *Node) Extents() geometry.Extents {
	w, h := n.Width, n.Height
	if w <= 0 {
		w = DefaultNodeWidth
	}
	if h <= 0 {
		h = DefaultNodeHeight
	}
	return geometry.Extents{W: w / 2, H: h / 2}
}

// Center returns the node's center point.
func (n *Node) Center() geometry.Point {
	return geometry.Point{X: n.X, Y: n.Y}
}

// Box returns the node's bounding shape at its current position.
func (n *Node) Box() geometry.Box {
	return geometry.Box{Center: n.Center(), Half: n.Extents()}
}

// Edge represents a directed edge. Direction only matters for rendering
// (arrowhead); the spring force it induces is symmetric.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the structural contract: well-formed unique node IDs and
// edges whose endpoints exist. Violations are reported with machine-readable
// codes before any layout work starts.
func (g Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return err
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node ID %q", n.ID)
		}
		seen[n.ID] = true

		if n.Width < 0 || n.Height < 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q has negative dimensions", n.ID)
		}
	}

	for _, e := range g.Edges {
		if !seen[e.From] {
			return errors.New(errors.ErrCodeUnknownNode, "edge %s→%s references unknown node %q", e.From, e.To, e.From)
		}
		if !seen[e.To] {
			return errors.New(errors.ErrCodeUnknownNode, "edge %s→%s references unknown node %q", e.From, e.To, e.To)
		}
	}

	return nil
}

// =============================================================================
// Engine Conversion
// =============================================================================

// LayoutInput converts the graph into the layout engine's input snapshot.
// Returns a validation error for malformed graphs.
func (g Graph) LayoutInput() (layout.Input, error) {
	if err := g.Validate(); err != nil {
		return layout.Input{}, err
	}

	in := layout.Input{
		Positions: make(map[string]geometry.Point, len(g.Nodes)),
		Shapes:    make(map[string]geometry.Extents, len(g.Nodes)),
		Edges:     make([]layout.Edge, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		in.Positions[n.ID] = n.Center()
		in.Shapes[n.ID] = n.Extents()
		if n.Fixed {
			if in.Fixed == nil {
				in.Fixed = make(map[string]bool)
			}
			in.Fixed[n.ID] = true
		}
	}
	for i, e := range g.Edges {
		in.Edges[i] = layout.Edge{From: e.From, To: e.To}
	}
	return in, nil
}

// WithPositions returns a copy of the graph with node centers replaced by
// the given mapping. Nodes absent from the mapping keep their position.
func (g Graph) WithPositions(positions map[string]geometry.Point) Graph {
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
	for i := range out.Nodes {
		if p, ok := positions[out.Nodes[i].ID]; ok {
			out.Nodes[i].X = p.X
			out.Nodes[i].Y = p.Y
		}
	}
	return out
}

// Node returns the node with the given ID, if present.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
